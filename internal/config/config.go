package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable override, e.g.
// JSUNMIX_RULES_UNWRAP_MARKER_CALLS_MARKER_NAME.
const EnvPrefix = "JSUNMIX"

// DefaultConfigFile is looked up in the working directory when no config
// path is given. Its absence is not an error.
const DefaultConfigFile = "config.yaml"

// --- Nested Configuration Structs ---

// OutputConfig controls where and how the deobfuscated file is written
type OutputConfig struct {
	Directory string `yaml:"directory" mapstructure:"directory"`
	BaseName  string `yaml:"base_name" mapstructure:"base_name"`
	Extension string `yaml:"extension" mapstructure:"extension"`
	Header    bool   `yaml:"header" mapstructure:"header"` // Prepend a "Generated from file" comment
}

// PipelineConfig controls how the rule set is driven
type PipelineConfig struct {
	Order           []string `yaml:"order" mapstructure:"order"`
	Fixpoint        bool     `yaml:"fixpoint" mapstructure:"fixpoint"`
	MaxPasses       int      `yaml:"max_passes" mapstructure:"max_passes"`
	VerifyRoundTrip bool     `yaml:"verify_round_trip" mapstructure:"verify_round_trip"`
}

// ToggleConfig is used by rules that only have an on/off switch
type ToggleConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// MarkerConfig defines settings for the marker-call unwrapper
type MarkerConfig struct {
	Enabled    bool   `yaml:"enabled" mapstructure:"enabled"`
	MarkerName string `yaml:"marker_name" mapstructure:"marker_name"`
}

// InlinerConfig defines settings for the empty-callee inliner
type InlinerConfig struct {
	Enabled        bool   `yaml:"enabled" mapstructure:"enabled"`
	ParamPrefix    string `yaml:"param_prefix" mapstructure:"param_prefix"`
	RequireBinding bool   `yaml:"require_binding" mapstructure:"require_binding"`
}

// RulesConfig holds the per-rule settings
type RulesConfig struct {
	StripParamDefaults           ToggleConfig  `yaml:"strip_param_defaults" mapstructure:"strip_param_defaults"`
	UnwrapMarkerCalls            MarkerConfig  `yaml:"unwrap_marker_calls" mapstructure:"unwrap_marker_calls"`
	InlineEmptyCallees           InlinerConfig `yaml:"inline_empty_callees" mapstructure:"inline_empty_callees"`
	HoistCallAssignments         ToggleConfig  `yaml:"hoist_call_assignments" mapstructure:"hoist_call_assignments"`
	EliminatePureAssignmentCalls ToggleConfig  `yaml:"eliminate_pure_assignment_calls" mapstructure:"eliminate_pure_assignment_calls"`
	StripDeclarations            ToggleConfig  `yaml:"strip_declarations" mapstructure:"strip_declarations"` // Unsafe, see README
}

// Config holds all configuration settings for the deobfuscator.
// Struct tags control how Viper maps config file keys and environment variables.
type Config struct {
	Silent    bool `yaml:"silent" mapstructure:"silent"`         // Suppress informational messages
	DebugMode bool `yaml:"debug_mode" mapstructure:"debug_mode"` // Enable verbose debug logging

	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Pipeline PipelineConfig `yaml:"pipeline" mapstructure:"pipeline"`
	Rules    RulesConfig    `yaml:"rules" mapstructure:"rules"`
}

// Rule names as used in pipeline.order. They match the transformer registry.
var ruleOrder = []string{
	"strip-param-defaults",
	"unwrap-marker-calls",
	"inline-empty-callees",
	"hoist-call-assignments",
	"eliminate-pure-assignment-calls",
	"strip-declarations",
}

var (
	// Testing controls whether output is suppressed for testing purposes
	Testing bool
)

// PrintInfo prints an informational message unless Testing is set
func PrintInfo(format string, args ...interface{}) {
	if !Testing {
		fmt.Printf(format, args...)
	}
}

// DefaultConfig returns a configuration with default settings.
func DefaultConfig() *Config {
	return &Config{
		Silent:    false,
		DebugMode: false,
		Output: OutputConfig{
			Directory: "out",
			BaseName:  "output",
			Extension: ".js",
			Header:    false,
		},
		Pipeline: PipelineConfig{
			Order:           append([]string(nil), ruleOrder...),
			Fixpoint:        true,
			MaxPasses:       10,
			VerifyRoundTrip: true,
		},
		Rules: RulesConfig{
			StripParamDefaults: ToggleConfig{Enabled: true},
			UnwrapMarkerCalls: MarkerConfig{
				Enabled:    true,
				MarkerName: "FunctionEmpty",
			},
			InlineEmptyCallees: InlinerConfig{
				Enabled:        true,
				ParamPrefix:    "param",
				RequireBinding: true,
			},
			HoistCallAssignments:         ToggleConfig{Enabled: true},
			EliminatePureAssignmentCalls: ToggleConfig{Enabled: false},
			StripDeclarations:            ToggleConfig{Enabled: false},
		},
	}
}

// setDefaults registers every default with viper so that environment
// variables can override keys that do not appear in the config file.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("silent", d.Silent)
	v.SetDefault("debug_mode", d.DebugMode)

	v.SetDefault("output.directory", d.Output.Directory)
	v.SetDefault("output.base_name", d.Output.BaseName)
	v.SetDefault("output.extension", d.Output.Extension)
	v.SetDefault("output.header", d.Output.Header)

	v.SetDefault("pipeline.order", d.Pipeline.Order)
	v.SetDefault("pipeline.fixpoint", d.Pipeline.Fixpoint)
	v.SetDefault("pipeline.max_passes", d.Pipeline.MaxPasses)
	v.SetDefault("pipeline.verify_round_trip", d.Pipeline.VerifyRoundTrip)

	v.SetDefault("rules.strip_param_defaults.enabled", d.Rules.StripParamDefaults.Enabled)
	v.SetDefault("rules.unwrap_marker_calls.enabled", d.Rules.UnwrapMarkerCalls.Enabled)
	v.SetDefault("rules.unwrap_marker_calls.marker_name", d.Rules.UnwrapMarkerCalls.MarkerName)
	v.SetDefault("rules.inline_empty_callees.enabled", d.Rules.InlineEmptyCallees.Enabled)
	v.SetDefault("rules.inline_empty_callees.param_prefix", d.Rules.InlineEmptyCallees.ParamPrefix)
	v.SetDefault("rules.inline_empty_callees.require_binding", d.Rules.InlineEmptyCallees.RequireBinding)
	v.SetDefault("rules.hoist_call_assignments.enabled", d.Rules.HoistCallAssignments.Enabled)
	v.SetDefault("rules.eliminate_pure_assignment_calls.enabled", d.Rules.EliminatePureAssignmentCalls.Enabled)
	v.SetDefault("rules.strip_declarations.enabled", d.Rules.StripDeclarations.Enabled)
}

// LoadConfig reads configuration from file and environment variables,
// then returns a filled and validated Config struct. An empty configPath
// falls back to ./config.yaml, which may be absent.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigSilent(configPath, false)
}

// LoadConfigSilent is LoadConfig with silent forced on when silent is set,
// so no informational line is printed while loading either.
func LoadConfigSilent(configPath string, silent bool) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if silent {
		v.Set("silent", true)
	}

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigFile
	}

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
		if !v.GetBool("silent") {
			PrintInfo("Info: Loaded configuration from %s\n", configPath)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if explicit {
			return nil, fmt.Errorf("specified config file not found: %s", configPath)
		}
		if !v.GetBool("silent") {
			PrintInfo("Info: Configuration file '%s' not found, using default settings.\n", DefaultConfigFile)
		}
	} else {
		return nil, fmt.Errorf("error checking config file %s: %w", configPath, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.Output.Directory = filepath.Clean(cfg.Output.Directory)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes the default configuration to a file.
func SaveConfig(configPath string) error {
	yamlData, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("error marshalling default config: %w", err)
	}
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory for config file %s: %w", configPath, err)
	}
	if err := os.WriteFile(configPath, yamlData, 0644); err != nil {
		return fmt.Errorf("error writing config file %s: %w", configPath, err)
	}
	PrintInfo("Info: Saved default configuration to %s\n", configPath)
	return nil
}

// Validate checks values that would otherwise fail later in the pipeline.
func (c *Config) Validate() error {
	if c.Pipeline.MaxPasses < 1 {
		return fmt.Errorf("pipeline.max_passes must be at least 1, got %d", c.Pipeline.MaxPasses)
	}
	if c.Output.BaseName == "" {
		return errors.New("output.base_name must not be empty")
	}
	if c.Output.Extension != "" && !strings.HasPrefix(c.Output.Extension, ".") {
		return fmt.Errorf("output.extension must start with a dot, got %q", c.Output.Extension)
	}
	if c.Rules.UnwrapMarkerCalls.Enabled && strings.TrimSpace(c.Rules.UnwrapMarkerCalls.MarkerName) == "" {
		return errors.New("rules.unwrap_marker_calls.marker_name must not be empty")
	}
	if c.Rules.InlineEmptyCallees.Enabled && strings.TrimSpace(c.Rules.InlineEmptyCallees.ParamPrefix) == "" {
		return errors.New("rules.inline_empty_callees.param_prefix must not be empty")
	}
	return nil
}

// EnabledRules returns the rule names from pipeline.order whose rule is
// enabled, in that order. Names unknown to the configuration are passed
// through so the registry can reject them.
func (c *Config) EnabledRules() []string {
	enabled := map[string]bool{
		"strip-param-defaults":            c.Rules.StripParamDefaults.Enabled,
		"unwrap-marker-calls":             c.Rules.UnwrapMarkerCalls.Enabled,
		"inline-empty-callees":            c.Rules.InlineEmptyCallees.Enabled,
		"hoist-call-assignments":          c.Rules.HoistCallAssignments.Enabled,
		"eliminate-pure-assignment-calls": c.Rules.EliminatePureAssignmentCalls.Enabled,
		"strip-declarations":              c.Rules.StripDeclarations.Enabled,
	}
	order := c.Pipeline.Order
	if len(order) == 0 {
		order = ruleOrder
	}
	var names []string
	for _, name := range order {
		name = strings.TrimSpace(name)
		on, known := enabled[name]
		if known && !on {
			continue
		}
		names = append(names, name)
	}
	return names
}

// SetRuleEnabled toggles a rule by its registry name.
func (c *Config) SetRuleEnabled(name string, on bool) error {
	switch name {
	case "strip-param-defaults":
		c.Rules.StripParamDefaults.Enabled = on
	case "unwrap-marker-calls":
		c.Rules.UnwrapMarkerCalls.Enabled = on
	case "inline-empty-callees":
		c.Rules.InlineEmptyCallees.Enabled = on
	case "hoist-call-assignments":
		c.Rules.HoistCallAssignments.Enabled = on
	case "eliminate-pure-assignment-calls":
		c.Rules.EliminatePureAssignmentCalls.Enabled = on
	case "strip-declarations":
		c.Rules.StripDeclarations.Enabled = on
	default:
		return fmt.Errorf("unknown rule %q", name)
	}
	return nil
}
