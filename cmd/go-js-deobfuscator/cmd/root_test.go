package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/whit3rabbit/jsunmixer/internal/config"
)

// withConfig installs a silent default configuration for the duration of a test.
func withConfig(t *testing.T, mutate func(c *config.Config)) {
	t.Helper()
	c := config.DefaultConfig()
	c.Silent = true
	c.Output.Directory = filepath.Join(t.TempDir(), "out")
	if mutate != nil {
		mutate(c)
	}
	prevCfg, prevLogger, prevOut, prevStdout := cfg, logger, outputFile, toStdout
	cfg, logger, outputFile, toStdout = c, zap.NewNop(), "", false
	t.Cleanup(func() {
		cfg, logger, outputFile, toStdout = prevCfg, prevLogger, prevOut, prevStdout
	})
}

func writeInput(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.js")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestRunDeobfuscateWritesNumberedOutputs(t *testing.T) {
	withConfig(t, nil)
	input := writeInput(t, "function g(){ } var h = g(); g(a=1,b=2);")

	require.NoError(t, runDeobfuscate(rootCmd, []string{input}))
	require.NoError(t, runDeobfuscate(rootCmd, []string{input}))

	for _, name := range []string{"output_1.js", "output_2.js"} {
		content, err := os.ReadFile(filepath.Join(cfg.Output.Directory, name))
		require.NoError(t, err, name)
		assert.Equal(t, "function g() {}\nvar h = g();\nparam1 = a = 1;\nparam2 = b = 2;\n", string(content))
	}
}

func TestRunDeobfuscateOutputFile(t *testing.T) {
	withConfig(t, nil)
	input := writeInput(t, "f(a = 1);")
	outputFile = filepath.Join(t.TempDir(), "clean.js")

	require.NoError(t, runDeobfuscate(rootCmd, []string{input}))
	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "a = 1;\nf(a);\n", string(content))

	_, err = os.Stat(cfg.Output.Directory)
	assert.ErrorIs(t, err, os.ErrNotExist, "numbered output must not be written when -o is given")
}

func TestRunDeobfuscateMissingInput(t *testing.T) {
	withConfig(t, nil)

	err := runDeobfuscate(rootCmd, []string{filepath.Join(t.TempDir(), "nope.js")})
	assert.NoError(t, err)
	_, err = os.Stat(cfg.Output.Directory)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunDeobfuscateSyntaxError(t *testing.T) {
	withConfig(t, nil)
	input := writeInput(t, "function (")

	assert.Error(t, runDeobfuscate(rootCmd, []string{input}))
	_, err := os.Stat(cfg.Output.Directory)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyFlagOverrides(t *testing.T) {
	withConfig(t, nil)
	require.NoError(t, rootCmd.ParseFlags([]string{
		"--hoist=false",
		"--eliminate-calls",
		"--marker-name", "_0x4a2f",
		"--max-passes", "3",
	}))

	applyFlagOverrides(cfg, rootCmd)

	assert.False(t, cfg.Rules.HoistCallAssignments.Enabled)
	assert.True(t, cfg.Rules.EliminatePureAssignmentCalls.Enabled)
	assert.Equal(t, "_0x4a2f", cfg.Rules.UnwrapMarkerCalls.MarkerName)
	assert.Equal(t, 3, cfg.Pipeline.MaxPasses)
	// flags that were not given leave the configuration alone
	assert.True(t, cfg.Rules.StripParamDefaults.Enabled)
	assert.True(t, cfg.Silent)
}

func TestRootHelpMentionsResidualCallRemoval(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "Function20(F9, i1);")
	assert.Contains(t, rootCmd.Long, "--eliminate-calls")
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("eliminate-calls"))
}

func TestRunDeobfuscateEliminatesResidualCalls(t *testing.T) {
	withConfig(t, func(c *config.Config) {
		c.Rules.EliminatePureAssignmentCalls.Enabled = true
	})
	input := writeInput(t, "function f() { Function20(F9 = a(), i1 = b()); }")
	outputFile = filepath.Join(t.TempDir(), "clean.js")

	require.NoError(t, runDeobfuscate(rootCmd, []string{input}))
	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "function f() {\n  F9 = a();\n  i1 = b();\n}\n", string(content))
}
