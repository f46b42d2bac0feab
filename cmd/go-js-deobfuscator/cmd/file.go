package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/whit3rabbit/jsunmixer/internal/deobfuscator"
)

var (
	outputFile string // Flag variable for output file path
	toStdout   bool
)

// runDeobfuscate processes the single input file named on the command line.
func runDeobfuscate(cmd *cobra.Command, args []string) error {
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}
	filePath := args[0]

	if _, err := os.Stat(filePath); errors.Is(err, os.ErrNotExist) {
		// Reported but not treated as a failure: nothing is written.
		fmt.Fprintf(os.Stderr, "Error: Input file '%s' not found.\n", filePath)
		return nil
	}
	cmd.SilenceUsage = true

	// --- Initialize Deobfuscation Context (Fresh for each invocation) ---
	octx, err := deobfuscator.NewContext(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize deobfuscation context: %w", err)
	}

	// --- Process the File ---
	if !cfg.Silent {
		fmt.Printf("Processing file: %s\n", filePath)
	}
	outputContent, err := deobfuscator.ProcessFile(filePath, octx)
	if err != nil {
		return fmt.Errorf("error processing file %s: %w", filePath, err)
	}

	// --- Write Output ---
	switch {
	case toStdout:
		fmt.Println(outputContent)
	case outputFile != "":
		if err := os.WriteFile(outputFile, []byte(outputContent+"\n"), 0644); err != nil {
			return fmt.Errorf("error writing to output file %s: %w", outputFile, err)
		}
		if !cfg.Silent {
			fmt.Printf("%s %s\n", color.GreenString("Deobfuscated code written to"), outputFile)
		}
	default:
		path, err := deobfuscator.WriteOutputWithIncrement(
			cfg.Output.Directory, cfg.Output.BaseName, cfg.Output.Extension, outputContent+"\n")
		if err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
		if !cfg.Silent {
			fmt.Printf("%s %s\n", color.GreenString("Deobfuscated code written to"), path)
		}
	}
	return nil
}
