package solver

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// WriteLP writes m in CPLEX LP text format.
func WriteLP(w io.Writer, m *Model) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\\ Model %s\n", m.Name)
	fmt.Fprintf(bw, "%s\n", m.Sense)

	var obj []Term
	for j, v := range m.vars {
		if v.Obj != 0 {
			obj = append(obj, Term{Var: Var(j), Coef: v.Obj})
		}
	}
	expr := formatExpr(m, obj)
	if m.Offset != 0 {
		expr = joinConstant(expr, m.Offset)
	}
	fmt.Fprintf(bw, "  obj: %s\n", expr)

	fmt.Fprintln(bw, "Subject To")
	for _, r := range m.rows {
		fmt.Fprintf(bw, "  %s: %s %s %s\n", r.Name, formatExpr(m, r.Terms), r.Relation, formatNum(r.RHS))
	}

	fmt.Fprintln(bw, "Bounds")
	for _, v := range m.vars {
		switch {
		case math.IsInf(v.Lower, -1) && math.IsInf(v.Upper, 1):
			fmt.Fprintf(bw, "  %s free\n", v.Name)
		case math.IsInf(v.Upper, 1):
			if v.Lower != 0 {
				fmt.Fprintf(bw, "  %s >= %s\n", v.Name, formatNum(v.Lower))
			}
		default:
			fmt.Fprintf(bw, "  %s <= %s <= %s\n", formatNum(v.Lower), v.Name, formatNum(v.Upper))
		}
	}

	var generals []string
	for _, v := range m.vars {
		if v.Kind == Integer {
			generals = append(generals, v.Name)
		}
	}
	if len(generals) > 0 {
		fmt.Fprintln(bw, "Generals")
		fmt.Fprintf(bw, "  %s\n", strings.Join(generals, " "))
	}
	fmt.Fprintln(bw, "End")

	return bw.Flush()
}

// WriteSolution writes sol in the plain "name value" solution format,
// preceded by the objective value.
func WriteSolution(w io.Writer, m *Model, sol *Solution) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Solution for model %s\n", m.Name)
	fmt.Fprintf(bw, "# Status = %s\n", sol.Status)
	fmt.Fprintf(bw, "# Objective value = %s\n", formatNum(sol.Objective))
	for j, v := range m.vars {
		fmt.Fprintf(bw, "%s %s\n", v.Name, formatNum(sol.Value(Var(j))))
	}
	if len(sol.Duals) > 0 {
		fmt.Fprintln(bw, "# Dual prices")
		for i, r := range m.rows {
			if i < len(sol.Duals) {
				fmt.Fprintf(bw, "# %s %s\n", r.Name, formatNum(sol.Duals[i]))
			}
		}
	}
	return bw.Flush()
}

func formatExpr(m *Model, terms []Term) string {
	if len(terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for k, t := range terms {
		coef := t.Coef
		switch {
		case k == 0 && coef < 0:
			sb.WriteString("- ")
			coef = -coef
		case k > 0 && coef < 0:
			sb.WriteString(" - ")
			coef = -coef
		case k > 0:
			sb.WriteString(" + ")
		}
		if coef != 1 {
			sb.WriteString(formatNum(coef))
			sb.WriteString(" ")
		}
		sb.WriteString(m.vars[t.Var].Name)
	}
	return sb.String()
}

func joinConstant(expr string, c float64) string {
	if expr == "0" {
		return formatNum(c)
	}
	if c < 0 {
		return expr + " - " + formatNum(-c)
	}
	return expr + " + " + formatNum(c)
}

func formatNum(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(v, 'g', 12, 64)
}
