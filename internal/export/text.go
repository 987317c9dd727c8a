package export

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/RollCut/internal/model"
)

// WriteReport prints a plain-text summary of the plan: the patterns to cut
// with their roll counts, production per width and the totals.
func WriteReport(w io.Writer, plan *model.Plan) error {
	if plan == nil {
		return fmt.Errorf("no plan to report")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Order %s, master roll %d mm", plan.Order.Name, plan.Order.RollWidth)
	if plan.Order.HasCapacity() {
		fmt.Fprintf(tw, ", %d available", plan.Order.AvailableRolls)
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "PATTERN\tROLLS\tRELAXED\tWASTE\tCUTS")
	for _, u := range plan.Patterns {
		if u.Rolls == 0 && u.RelaxedRolls < 1e-9 {
			continue
		}
		fmt.Fprintf(tw, "#%d\t%d\t%.3f\t%d\t%s\n", u.Pattern.ID, u.Rolls, u.RelaxedRolls, u.Pattern.Waste, u.Pattern.Describe(plan.Order.Pieces))
	}
	fmt.Fprintln(tw)

	produced := plan.Produced()
	over := plan.Overproduction()
	fmt.Fprintln(tw, "PIECE\tWIDTH\tDEMAND\tCUT\tEXTRA")
	for i, p := range plan.Order.Pieces {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", p.Label, p.Width, p.Demand, produced[i], over[i])
	}
	fmt.Fprintln(tw)

	status := "converged"
	if !plan.Converged {
		status = "stopped early"
	}
	fmt.Fprintf(tw, "Rolls cut:\t%d (relaxed %.3f)\n", plan.RollsUsed(), plan.RelaxedRolls())
	fmt.Fprintf(tw, "Waste:\t%.0f mm (relaxed %.3f mm)\n", plan.Waste, plan.RelaxedWaste)
	fmt.Fprintf(tw, "Efficiency:\t%.1f%%\n", plan.Efficiency())
	fmt.Fprintf(tw, "Generation:\t%s after %d iterations, %d patterns added\n", status, len(plan.Iterations), plan.GeneratedPatterns())
	fmt.Fprintf(tw, "Solver:\t%s / %s\n", plan.Backend, plan.Pricing)

	return tw.Flush()
}
