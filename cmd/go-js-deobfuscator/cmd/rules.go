package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/whit3rabbit/jsunmixer/internal/deobfuscator"
)

// rulesCmd lists the registered rules and whether the configuration enables them
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rewrite rules",
	Long: `Prints every registered rewrite rule in canonical order, whether the
current configuration (file, environment and flags) enables it and a short
description.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		octx, err := deobfuscator.NewContext(cfg, logger)
		if err != nil {
			return err
		}

		position := make(map[string]int, len(octx.Rules))
		for i, r := range octx.Rules {
			position[r.Name()] = i + 1
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Order", "Rule", "Enabled", "Description"})
		table.SetAutoWrapText(false)
		for _, rule := range octx.Registry.Rules() {
			order, state := "-", color.RedString("no")
			if n, ok := position[rule.Name()]; ok {
				order, state = fmt.Sprint(n), color.GreenString("yes")
			}
			table.Append([]string{order, rule.Name(), state, rule.Description()})
		}
		table.Render()
		return nil
	},
}
