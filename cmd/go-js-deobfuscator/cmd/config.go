package cmd

import (
	"github.com/spf13/cobra"

	"github.com/whit3rabbit/jsunmixer/internal/config"
)

// configCmd groups configuration helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Long:  `Writes the default configuration as YAML to path (default ./config.yaml).`,
	Args:  cobra.MaximumNArgs(1),
	// Skip config loading: the file may not exist yet or may be broken.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.DefaultConfigFile
		if len(args) == 1 {
			path = args[0]
		}
		return config.SaveConfig(path)
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
}
