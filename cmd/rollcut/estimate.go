package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RollCut/internal/model"
)

func newEstimateCmd() *cobra.Command {
	var (
		of           orderFlags
		wastePercent float64
		price        float64
	)

	cmd := &cobra.Command{
		Use:   "estimate [orders.csv|orders.xlsx]",
		Short: "Estimate the master rolls to buy from the ordered width alone",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			order, _, err := of.resolve(cmd, args, cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("waste") {
				wastePercent = cfg.WastePercent
			}
			if !cmd.Flags().Changed("price") {
				price = cfg.PricePerRoll
			}

			est := model.CalculateRollEstimate(order, wastePercent, price)
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Ordered width:   %d mm (%.2f m)\n", est.TotalPieceWidth, est.TotalMeters)
			fmt.Fprintf(w, "Lower bound:     %.2f rolls of %d mm, at least %d\n", est.RollsNeededExact, order.RollWidth, est.RollsNeededMin)
			fmt.Fprintf(w, "With %.0f%% waste: %d rolls\n", est.WastePercent, est.RollsWithWaste)
			if est.PricePerRoll > 0 {
				fmt.Fprintf(w, "Estimated cost:  %.2f\n", est.EstimatedCost)
			}
			return nil
		},
	}

	of.register(cmd)
	cmd.Flags().Float64Var(&wastePercent, "waste", 0, "waste allowance in percent (default from config)")
	cmd.Flags().Float64Var(&price, "price", 0, "price per master roll (default from config)")
	return cmd
}
