package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/RollCut/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each roll label's QR code.
type LabelInfo struct {
	PlanID    string `json:"plan"`
	Order     string `json:"order"`
	Roll      int    `json:"roll"`  // 1-based position in the cutting sequence
	Total     int    `json:"total"` // Rolls cut in the plan
	PatternID int    `json:"pattern"`
	Cuts      string `json:"cuts"`
	RollWidth int    `json:"roll_width_mm"`
	Waste     int    `json:"waste_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF with one QR-coded label per master roll to
// be cut. Each label names the roll, its pattern and the cuts, and the QR
// code carries the same data as JSON. Labels are laid out on a standard label
// sheet format (Avery 5160 / 3 columns x 10 rows on US Letter).
func ExportLabels(path string, plan *model.Plan) error {
	if plan == nil {
		return fmt.Errorf("no plan to generate labels for")
	}

	labels := CollectLabelInfos(plan)
	if len(labels) == 0 {
		return fmt.Errorf("no rolls cut to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for roll %d: %w", label.Roll, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%s_%d", info.PlanID, info.Roll)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("Roll %d / %d", info.Roll, info.Total), "", 1, "L", false, 0, "")

	// Cuts, truncated to the text area
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.CellFormat(textW, 3.5, truncate(pdf, tr(info.Cuts), textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	meta := fmt.Sprintf("Pattern #%d | %d mm | waste %d mm", info.PatternID, info.RollWidth, info.Waste)
	pdf.CellFormat(textW, 3, truncate(pdf, meta, textW), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.SetFont("Helvetica", "I", 6)
	pdf.CellFormat(textW, 3, truncate(pdf, info.Order, textW), "", 0, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)

	return nil
}

func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectLabelInfos expands the plan's used patterns into one label per
// roll, numbered in cutting order.
func CollectLabelInfos(plan *model.Plan) []LabelInfo {
	total := plan.RollsUsed()
	var labels []LabelInfo
	for _, u := range plan.UsedPatterns() {
		cuts := u.Pattern.Describe(plan.Order.Pieces)
		for k := 0; k < u.Rolls; k++ {
			labels = append(labels, LabelInfo{
				PlanID:    plan.ID,
				Order:     plan.Order.Name,
				Roll:      len(labels) + 1,
				Total:     total,
				PatternID: u.Pattern.ID,
				Cuts:      cuts,
				RollWidth: plan.Order.RollWidth,
				Waste:     u.Pattern.Waste,
			})
		}
	}
	return labels
}
