package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RollCut/internal/engine"
)

func newCompareCmd() *cobra.Command {
	var (
		of orderFlags
		sf settingsFlags
	)

	cmd := &cobra.Command{
		Use:   "compare [orders.csv|orders.xlsx]",
		Short: "Compare the plan against other pricing methods, seeds only and an uncapped stock",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			order, projSettings, err := of.resolve(cmd, args, cfg)
			if err != nil {
				return err
			}
			settings, err := resolveSettings(cmd, cfg, projSettings, &sf)
			if err != nil {
				return err
			}

			scenarios := engine.BuildDefaultScenarios(settings, order)
			results := engine.CompareScenarios(scenarios, order, engine.WithLogger(log))

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SCENARIO\tROLLS\tWASTE\tRELAXED\tPATTERNS\tITERATIONS")
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(tw, "%s\tfailed: %v\t\t\t\t\n", r.Scenario.Name, r.Err)
					continue
				}
				fmt.Fprintf(tw, "%s\t%d\t%.0f\t%.3f\t%d\t%d\n",
					r.Scenario.Name, r.RollsUsed, r.Waste, r.RelaxedWaste, r.PatternsGenerated, r.Iterations)
			}
			return tw.Flush()
		},
	}

	of.register(cmd)
	sf.register(cmd)
	return cmd
}
