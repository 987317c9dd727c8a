package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RollCut/internal/model"
	"github.com/piwi3910/RollCut/internal/project"
)

func newPresetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage master roll presets",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the saved roll presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, path, err := project.LoadOrCreateInventory(configPath)
			if err != nil {
				return err
			}
			log.WithField("file", path).Debug("inventory loaded")

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tWIDTH\tSTOCK\tMATERIAL\tPRICE")
			for _, r := range inv.Rolls {
				stock := "unlimited"
				if r.Available > 0 {
					stock = fmt.Sprintf("%d", r.Available)
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%.2f\n", r.Name, r.Width, stock, r.Material, r.PricePerRoll)
			}
			return tw.Flush()
		},
	}

	var (
		available int
		material  string
		price     float64
	)
	addCmd := &cobra.Command{
		Use:   "add NAME WIDTH",
		Short: "Add a roll preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var width int
			if _, err := fmt.Sscanf(args[1], "%d", &width); err != nil || width <= 0 {
				return fmt.Errorf("invalid width %q", args[1])
			}
			inv, path, err := project.LoadOrCreateInventory(configPath)
			if err != nil {
				return err
			}
			if inv.FindRollByName(args[0]) != nil {
				return fmt.Errorf("preset %q already exists", args[0])
			}
			inv.Rolls = append(inv.Rolls, model.NewRollPresetWithPrice(args[0], width, available, material, price))
			return project.SaveInventory(path, inv)
		},
	}
	addCmd.Flags().IntVar(&available, "available", 0, "rolls in stock, 0 = unlimited")
	addCmd.Flags().StringVar(&material, "material", "", "material name")
	addCmd.Flags().Float64Var(&price, "price", 0, "price per roll")

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge roll presets from an inventory file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, path, err := project.LoadOrCreateInventory(configPath)
			if err != nil {
				return err
			}
			merged, err := project.ImportInventory(args[0], inv)
			if err != nil {
				return err
			}
			log.WithField("added", len(merged.Rolls)-len(inv.Rolls)).Info("presets imported")
			return project.SaveInventory(path, merged)
		},
	}

	cmd.AddCommand(listCmd, addCmd, importCmd)
	return cmd
}
