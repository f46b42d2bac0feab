// Package logging builds the zap logger shared by the CLI and the library.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr. debug enables per-rewrite
// debug output; silent keeps only errors. Otherwise warnings and above are
// shown, which includes every rule diagnostic.
func New(debug, silent bool) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		zap.NewAtomicLevelAt(Level(debug, silent)),
	)
	return zap.New(core)
}

// Level reports the level New would use for the given switches.
func Level(debug, silent bool) zapcore.Level {
	switch {
	case debug:
		return zapcore.DebugLevel
	case silent:
		return zapcore.ErrorLevel
	}
	return zapcore.WarnLevel
}
