package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name          string
		debug, silent bool
		want          zapcore.Level
	}{
		{"default", false, false, zapcore.WarnLevel},
		{"debug", true, false, zapcore.DebugLevel},
		{"silent", false, true, zapcore.ErrorLevel},
		{"debug wins over silent", true, true, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Level(tt.debug, tt.silent))
			logger := New(tt.debug, tt.silent)
			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}
