// Package export provides functionality for exporting cutting plans to
// various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/RollCut/internal/model"
)

// pieceColor represents an RGB color for a piece width.
type pieceColor struct {
	R, G, B int
}

// pieceColors is indexed by width index modulo its length.
var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	barHeight    = 12.0
	barGap       = 9.0
	rollsColumn  = 28.0
)

// ExportPDF generates a PDF document for a cutting plan. The used patterns
// are drawn as roll bars, as many per page as fit, followed by a summary
// page with statistics, production per width and the iteration history.
func ExportPDF(path string, plan *model.Plan) error {
	if plan == nil {
		return fmt.Errorf("no plan to export")
	}
	used := plan.UsedPatterns()
	if len(used) == 0 && plan.Order.TotalDemand() > 0 {
		return fmt.Errorf("plan cuts no rolls")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	barSpace := pageHeight - drawAreaTop - marginBottom - 10.0
	perPage := int(barSpace / (barHeight + barGap))
	for start := 0; start < len(used); start += perPage {
		end := start + perPage
		if end > len(used) {
			end = len(used)
		}
		pdf.AddPage()
		renderPatternPage(pdf, plan, used[start:end], start/perPage+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, plan)

	return pdf.OutputFileAndClose(path)
}

// renderPatternPage draws a set of patterns on the current PDF page.
func renderPatternPage(pdf *fpdf.Fpdf, plan *model.Plan, usages []model.PatternUsage, pageNum int) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Cutting Patterns %d: %s (roll %d mm)", pageNum, plan.Order.Name, plan.Order.RollWidth)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Rolls: %d | Waste: %.0f mm | Efficiency: %.1f%%",
		plan.RollsUsed(), plan.Waste, plan.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight - rollsColumn
	scale := drawWidth / float64(plan.Order.RollWidth)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	y := drawAreaTop
	for _, u := range usages {
		// Roll count
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginLeft, y+(barHeight-6)/2)
		pdf.CellFormat(rollsColumn-4, 6, fmt.Sprintf("%d x", u.Rolls), "", 0, "R", false, 0, "")

		offsetX := marginLeft + rollsColumn
		drawRollBar(pdf, plan.Order.Pieces, u.Pattern, scale, offsetX, y)

		// Caption under the bar
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(80, 80, 80)
		pdf.SetXY(offsetX, y+barHeight+0.5)
		caption := fmt.Sprintf("Pattern #%d: %s | waste %d mm", u.Pattern.ID, u.Pattern.Describe(plan.Order.Pieces), u.Pattern.Waste)
		pdf.CellFormat(drawWidth, 4, tr(caption), "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)

		y += barHeight + barGap
	}
}

// drawRollBar draws one master roll with its cuts from left to right and the
// remaining waste hatched at the end.
func drawRollBar(pdf *fpdf.Fpdf, pieces []model.Piece, p model.Pattern, scale, x, y float64) {
	total := 0.0
	for i, n := range p.Counts {
		if i >= len(pieces) {
			break
		}
		col := pieceColors[i%len(pieceColors)]
		w := float64(pieces[i].Width) * scale
		for k := 0; k < n; k++ {
			px := x + total
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.3)
			pdf.Rect(px, y, w, barHeight, "FD")

			if w > 6 {
				label := fmt.Sprintf("%d", pieces[i].Width)
				pdf.SetFont("Helvetica", "", labelFontSize(w, barHeight))
				lw := pdf.GetStringWidth(label)
				if lw < w-1 {
					pdf.SetXY(px+(w-lw)/2, y+barHeight/2-2)
					pdf.CellFormat(lw, 4, label, "", 0, "C", false, 0, "")
				}
			}
			total += w
		}
	}

	if p.Waste > 0 {
		ww := float64(p.Waste) * scale
		pdf.SetFillColor(255, 200, 200)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.3)
		pdf.Rect(x+total, y, ww, barHeight, "FD")
		drawHatchPattern(pdf, x+total, y, ww, barHeight)
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark waste.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 3.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, plan *model.Plan) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cutting Plan Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	converged := "yes"
	if !plan.Converged {
		converged = "no"
	}
	summaryItems := []struct {
		label string
		value string
	}{
		{"Master Roll Width", fmt.Sprintf("%d mm", plan.Order.RollWidth)},
		{"Rolls Cut", fmt.Sprintf("%d (relaxed %.2f)", plan.RollsUsed(), plan.RelaxedRolls())},
		{"Waste", fmt.Sprintf("%.0f mm (relaxed %.2f mm)", plan.Waste, plan.RelaxedWaste)},
		{"Efficiency", fmt.Sprintf("%.1f%%", plan.Efficiency())},
		{"Patterns Generated", fmt.Sprintf("%d", plan.GeneratedPatterns())},
		{"Converged", converged},
		{"Solver / Pricing", fmt.Sprintf("%s / %s", plan.Backend, plan.Pricing)},
	}
	if plan.Order.HasCapacity() {
		summaryItems = append(summaryItems, struct {
			label string
			value string
		}{"Rolls Available", fmt.Sprintf("%d", plan.Order.AvailableRolls)})
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(70, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	// Production table on the left, iteration history on the right
	renderProductionTable(pdf, plan, marginLeft, y+5)
	renderIterationTable(pdf, plan, pageWidth/2+5, marginTop+18)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("Generated by RollCut - plan %s, %s", plan.ID, plan.CreatedAt.Format("2006-01-02 15:04"))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func renderProductionTable(pdf *fpdf.Fpdf, plan *model.Plan, x, y float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(x, y)
	pdf.CellFormat(100, 7, "Production", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{40, 22, 22, 22, 22}
	headers := []string{"Piece", "Width", "Demand", "Cut", "Extra"}
	drawTableRow(pdf, x, y, colWidths, headers, true, 230)
	y += 6

	produced := plan.Produced()
	over := plan.Overproduction()
	pdf.SetFont("Helvetica", "", 9)
	for i, p := range plan.Order.Pieces {
		if y > pageHeight-marginBottom-10 {
			break
		}
		shade := 255
		if i%2 == 0 {
			shade = 245
		}
		drawTableRow(pdf, x, y, colWidths, []string{
			p.Label,
			fmt.Sprintf("%d", p.Width),
			fmt.Sprintf("%d", p.Demand),
			fmt.Sprintf("%d", produced[i]),
			fmt.Sprintf("%d", over[i]),
		}, false, shade)
		y += 6
	}
}

func renderIterationTable(pdf *fpdf.Fpdf, plan *model.Plan, x, y float64) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(x, y)
	pdf.CellFormat(100, 7, "Column Generation", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{14, 34, 34, 22, 20}
	drawTableRow(pdf, x, y, colWidths, []string{"#", "Objective", "Reduced Cost", "Pattern", "Dup"}, true, 230)
	y += 6

	pdf.SetFont("Helvetica", "", 8)
	for i, it := range plan.Iterations {
		if y > pageHeight-marginBottom-10 {
			pdf.SetXY(x, y)
			pdf.CellFormat(100, 5, fmt.Sprintf("... %d more iterations", len(plan.Iterations)-i), "", 0, "L", false, 0, "")
			break
		}
		pattern := "-"
		if it.PatternID >= 0 {
			pattern = fmt.Sprintf("#%d", it.PatternID)
		}
		dup := ""
		if it.Duplicate {
			dup = "yes"
		}
		shade := 255
		if i%2 == 0 {
			shade = 245
		}
		drawTableRow(pdf, x, y, colWidths, []string{
			fmt.Sprintf("%d", it.Index),
			fmt.Sprintf("%.4f", it.Objective),
			fmt.Sprintf("%.4f", it.ReducedCost),
			pattern,
			dup,
		}, false, shade)
		y += 5
	}
}

func drawTableRow(pdf *fpdf.Fpdf, x, y float64, widths []float64, cells []string, header bool, shade int) {
	if header {
		pdf.SetFont("Helvetica", "B", 9)
	}
	pdf.SetFillColor(shade, shade, shade)
	for i, cell := range cells {
		pdf.SetXY(x, y)
		h := 5.0
		if header {
			h = 6
		}
		pdf.CellFormat(widths[i], h, cell, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	if header {
		pdf.SetFont("Helvetica", "", 9)
	}
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 20:
		return 8
	case minDim > 10:
		return 7
	default:
		return 6
	}
}
