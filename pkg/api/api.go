// Package api provides the public API for using the JavaScript deobfuscator as a library.
//
// The API exposes the same rewrite rules as the command-line interface and
// works on code strings or on files.
//
// Basic usage example:
//
//	d, err := api.NewDeobfuscator(api.Options{ConfigPath: "config.yaml"})
//	if err != nil {
//	    log.Fatalf("Failed to create deobfuscator: %v", err)
//	}
//
//	result, err := d.DeobfuscateCode("f(a = 1);")
//	if err != nil {
//	    log.Fatalf("Failed to deobfuscate code: %v", err)
//	}
//
//	fmt.Println(result) // a = 1;\nf(a);
package api

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/whit3rabbit/jsunmixer/internal/config"
	"github.com/whit3rabbit/jsunmixer/internal/deobfuscator"
	"github.com/whit3rabbit/jsunmixer/internal/transformer"
)

// PrintInfo prints formatted information to stdout, respecting the Testing flag.
// This function forwards to the internal config.PrintInfo function.
func PrintInfo(format string, args ...interface{}) {
	config.PrintInfo(format, args...)
}

// RuleInfo describes one registered rewrite rule.
type RuleInfo struct {
	Name        string
	Description string
	Enabled     bool
}

// Deobfuscator wraps a configured rewrite pipeline.
type Deobfuscator struct {
	// Context holds the selected rules and the configuration they were built from
	Context *deobfuscator.Context
	// Config holds the configuration settings in effect
	Config *config.Config
}

// Options represents configuration options for creating a new Deobfuscator instance.
type Options struct {
	// ConfigPath is the path to a YAML configuration file.
	// If empty, ./config.yaml is used when present, otherwise the defaults.
	ConfigPath string

	// Silent suppresses informational messages
	Silent bool

	// Rules, when not empty, enables exactly these rules (by name) and
	// disables all others. The configured pipeline order still applies.
	Rules []string

	// Logger receives rule diagnostics. A nil Logger discards them.
	Logger *zap.Logger
}

// NewDeobfuscator creates a new Deobfuscator using the provided options.
//
// Returns an error if the configuration cannot be loaded, names an unknown
// rule or fails validation.
func NewDeobfuscator(options Options) (*Deobfuscator, error) {
	cfg, err := config.LoadConfigSilent(options.ConfigPath, options.Silent)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if len(options.Rules) > 0 {
		for _, r := range transformer.DefaultRules(transformer.DefaultRuleOptions()) {
			_ = cfg.SetRuleEnabled(r.Name(), false)
		}
		for _, name := range options.Rules {
			if err := cfg.SetRuleEnabled(name, true); err != nil {
				return nil, err
			}
		}
	}

	ctx, err := deobfuscator.NewContext(cfg, options.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create deobfuscation context: %w", err)
	}

	return &Deobfuscator{
		Context: ctx,
		Config:  cfg,
	}, nil
}

// DeobfuscateCode rewrites a JavaScript source string.
//
// Returns the generated code, a *syntax.SyntaxError when the input does not
// parse or a *deobfuscator.RoundTripError when the output would not.
func (d *Deobfuscator) DeobfuscateCode(code string) (string, error) {
	return d.Context.Transform(code)
}

// DeobfuscateFile rewrites a JavaScript file and returns the generated code.
func (d *Deobfuscator) DeobfuscateFile(filePath string) (string, error) {
	return deobfuscator.ProcessFile(filePath, d.Context)
}

// DeobfuscateFileToFile rewrites inputFile and writes the result to
// outputFile, creating the parent directory when needed.
func (d *Deobfuscator) DeobfuscateFileToFile(inputFile, outputFile string) error {
	code, err := d.DeobfuscateFile(inputFile)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return fmt.Errorf("failed to create output directory for %s: %w", outputFile, err)
	}
	if err := os.WriteFile(outputFile, []byte(code+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
	}

	PrintInfo("Deobfuscated %s -> %s\n", inputFile, outputFile)
	return nil
}

// AvailableRules lists every registered rule in canonical order along with
// whether this Deobfuscator runs it.
func (d *Deobfuscator) AvailableRules() []RuleInfo {
	selected := make(map[string]bool, len(d.Context.Rules))
	for _, name := range d.Context.RuleNames() {
		selected[name] = true
	}
	rules := d.Context.Registry.Rules()
	infos := make([]RuleInfo, len(rules))
	for i, r := range rules {
		infos[i] = RuleInfo{
			Name:        r.Name(),
			Description: r.Description(),
			Enabled:     selected[r.Name()],
		}
	}
	return infos
}
