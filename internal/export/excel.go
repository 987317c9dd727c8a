package export

import (
	"fmt"

	"github.com/piwi3910/RollCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	sheetSummary    = "Summary"
	sheetPatterns   = "Patterns"
	sheetProduction = "Production"
	sheetIterations = "Iterations"
)

// ExportExcel writes the plan as an .xlsx workbook with a summary sheet,
// one row per pattern in the catalog, production per width and the column
// generation history.
func ExportExcel(path string, plan *model.Plan) error {
	if plan == nil {
		return fmt.Errorf("no plan to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{sheetPatterns, sheetProduction, sheetIterations} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeSummarySheet(f, plan, bold); err != nil {
		return err
	}

	patternRows := make([][]interface{}, 0, len(plan.Patterns))
	for _, u := range plan.Patterns {
		row := []interface{}{u.Pattern.ID, u.Pattern.Describe(plan.Order.Pieces), u.Pattern.Waste, u.Pattern.Seed, u.RelaxedRolls, u.Rolls}
		for _, c := range padCounts(u.Pattern.Counts, len(plan.Order.Pieces)) {
			row = append(row, c)
		}
		patternRows = append(patternRows, row)
	}
	patternHeader := []interface{}{"Pattern", "Cuts", "Waste (mm)", "Seed", "Relaxed Rolls", "Rolls"}
	for _, p := range plan.Order.Pieces {
		patternHeader = append(patternHeader, fmt.Sprintf("%d mm", p.Width))
	}
	if err := writeTable(f, sheetPatterns, patternHeader, patternRows, bold); err != nil {
		return err
	}

	produced := plan.Produced()
	over := plan.Overproduction()
	productionRows := make([][]interface{}, 0, len(plan.Order.Pieces))
	for i, p := range plan.Order.Pieces {
		productionRows = append(productionRows, []interface{}{p.Label, p.Width, p.Demand, produced[i], over[i]})
	}
	if err := writeTable(f, sheetProduction, []interface{}{"Piece", "Width (mm)", "Demand", "Cut", "Extra"}, productionRows, bold); err != nil {
		return err
	}

	iterRows := make([][]interface{}, 0, len(plan.Iterations))
	for _, it := range plan.Iterations {
		var pattern interface{} = ""
		if it.PatternID >= 0 {
			pattern = it.PatternID
		}
		iterRows = append(iterRows, []interface{}{it.Index, it.Objective, it.ReducedCost, pattern, it.Duplicate})
	}
	if err := writeTable(f, sheetIterations, []interface{}{"Iteration", "Objective", "Reduced Cost", "Pattern", "Duplicate"}, iterRows, bold); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, plan *model.Plan, bold int) error {
	rows := [][]interface{}{
		{"Order", plan.Order.Name},
		{"Plan", plan.ID},
		{"Created", plan.CreatedAt.Format("2006-01-02 15:04:05")},
		{"Roll Width (mm)", plan.Order.RollWidth},
		{"Rolls Available", plan.Order.AvailableRolls},
		{"Rolls Cut", plan.RollsUsed()},
		{"Relaxed Rolls", plan.RelaxedRolls()},
		{"Waste (mm)", plan.Waste},
		{"Relaxed Waste (mm)", plan.RelaxedWaste},
		{"Efficiency (%)", plan.Efficiency()},
		{"Patterns Generated", plan.GeneratedPatterns()},
		{"Converged", plan.Converged},
		{"Backend", string(plan.Backend)},
		{"Pricing", string(plan.Pricing)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to address summary row: %w", err)
		}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(1, len(rows))
	if err := f.SetCellStyle(sheetSummary, "A1", last, bold); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}
	return f.SetColWidth(sheetSummary, "A", "A", 22)
}

func writeTable(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, bold int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("failed to address %s header: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address %s row: %w", sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func padCounts(counts []int, n int) []int {
	out := make([]int, n)
	copy(out, counts)
	return out
}
