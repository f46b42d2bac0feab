// Package cmd implements the command line interface for the application.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/whit3rabbit/jsunmixer/internal/config"
	"github.com/whit3rabbit/jsunmixer/internal/logging"
)

var (
	cfgFile string         // Variable to hold the config file path from the flag
	cfg     *config.Config // Global variable to hold the loaded configuration
	logger  *zap.Logger

	// Flag variables mapped to config fields for override
	silentMode        bool   // -> cfg.Silent
	debugMode         bool   // -> cfg.DebugMode
	outDir            string // -> cfg.Output.Directory
	stripDefaults     bool   // -> cfg.Rules.StripParamDefaults.Enabled
	unwrapMarker      bool   // -> cfg.Rules.UnwrapMarkerCalls.Enabled
	inlineEmpty       bool   // -> cfg.Rules.InlineEmptyCallees.Enabled
	hoist             bool   // -> cfg.Rules.HoistCallAssignments.Enabled
	eliminateCalls    bool   // -> cfg.Rules.EliminatePureAssignmentCalls.Enabled
	stripDeclarations bool   // -> cfg.Rules.StripDeclarations.Enabled
	markerName        string // -> cfg.Rules.UnwrapMarkerCalls.MarkerName
	maxPasses         int    // -> cfg.Pipeline.MaxPasses
	fixpoint          bool   // -> cfg.Pipeline.Fixpoint
)

// rootCmd represents the base command. Given a file it deobfuscates it.
var rootCmd = &cobra.Command{
	Use:   "go-js-deobfuscator [flags] <input.js>",
	Short: "A CLI tool to undo common JavaScript obfuscation idioms.",
	Long: `go-js-deobfuscator rewrites obfuscated JavaScript into a readable form.

It hoists assignments out of call arguments, strips parameter defaults,
unwraps dispatcher marker calls and inlines calls to empty placeholder
functions. The result is written to out/output_N.js, choosing the first N
that does not exist yet.

Hoisting leaves the call that carried the assignments behind, for example
Function20(F9 = a(), i1 = b()) becomes F9 = a(); i1 = b(); Function20(F9, i1);
Add --eliminate-calls to remove such residual calls from function bodies when
their arguments are only identifiers or literals. It is off by default because
it also removes clean calls like log(x).

Example:
  go-js-deobfuscator input.js
  go-js-deobfuscator --eliminate-calls --stdout input.js   # also drop residual calls
  go-js-deobfuscator -o clean.js --marker-name _0x4a2f input.js`,
	Args: cobra.ExactArgs(1),
	// PersistentPreRunE runs before any subcommand's RunE.
	// Use this to load configuration early.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil { // Only load config once
			loadedCfg, err := config.LoadConfigSilent(cfgFile, silentMode) // both set by PersistentFlags
			if err != nil {
				return fmt.Errorf("error loading configuration: %w", err)
			}
			cfg = loadedCfg

			// Apply command-line flag overrides *after* loading config file
			applyFlagOverrides(cfg, cmd)
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		if logger == nil {
			logger = logging.New(cfg.DebugMode, cfg.Silent)
		}
		return nil
	},
	RunE: runDeobfuscate,
}

// applyFlagOverrides applies command-line flag values to the config struct.
// Only overrides if the flag was explicitly set by the user via cmd.Flags().Changed().
func applyFlagOverrides(cfg *config.Config, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("silent") {
		cfg.Silent = silentMode
	}
	if flags.Changed("debug") {
		cfg.DebugMode = debugMode
	}
	if flags.Changed("out-dir") {
		cfg.Output.Directory = outDir
	}
	if flags.Changed("strip-defaults") {
		cfg.Rules.StripParamDefaults.Enabled = stripDefaults
	}
	if flags.Changed("unwrap-marker") {
		cfg.Rules.UnwrapMarkerCalls.Enabled = unwrapMarker
	}
	if flags.Changed("inline-empty") {
		cfg.Rules.InlineEmptyCallees.Enabled = inlineEmpty
	}
	if flags.Changed("hoist") {
		cfg.Rules.HoistCallAssignments.Enabled = hoist
	}
	if flags.Changed("eliminate-calls") {
		cfg.Rules.EliminatePureAssignmentCalls.Enabled = eliminateCalls
	}
	if flags.Changed("strip-declarations") {
		cfg.Rules.StripDeclarations.Enabled = stripDeclarations
	}
	if flags.Changed("marker-name") {
		cfg.Rules.UnwrapMarkerCalls.MarkerName = markerName
	}
	if flags.Changed("max-passes") {
		cfg.Pipeline.MaxPasses = maxPasses
	}
	if flags.Changed("fixpoint") {
		cfg.Pipeline.Fixpoint = fixpoint
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		// Cobra usually prints the error. We just need to exit non-zero.
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")

	pf.BoolVarP(&silentMode, "silent", "s", false, "Suppress informational output (overrides config)")
	pf.BoolVar(&debugMode, "debug", false, "Log every rewrite at debug level (overrides config)")
	pf.StringVar(&outDir, "out-dir", "out", "Directory receiving output_N.js files (overrides config)")

	pf.BoolVar(&stripDefaults, "strip-defaults", true, "Enable/disable parameter default stripping (overrides config)")
	pf.BoolVar(&unwrapMarker, "unwrap-marker", true, "Enable/disable marker call unwrapping (overrides config)")
	pf.BoolVar(&inlineEmpty, "inline-empty", true, "Enable/disable empty-callee inlining (overrides config)")
	pf.BoolVar(&hoist, "hoist", true, "Enable/disable hoisting of call argument assignments (overrides config)")
	pf.BoolVar(&eliminateCalls, "eliminate-calls", false, "Enable/disable removal of pure-argument call statements (overrides config)")
	pf.BoolVar(&stripDeclarations, "strip-declarations", false, "Enable/disable declaration stripping, unsafe (overrides config)")
	pf.StringVar(&markerName, "marker-name", "FunctionEmpty", "Name of the dispatcher marker function (overrides config)")
	pf.IntVar(&maxPasses, "max-passes", 10, "Maximum number of passes over the rule set (overrides config)")
	pf.BoolVar(&fixpoint, "fixpoint", true, "Re-run the rules until nothing changes (overrides config)")

	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default: next free out/output_N.js)")
	rootCmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the result to stdout instead of a file")

	// Add subcommands
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(configCmd)
}
