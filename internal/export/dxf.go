package export

import (
	"fmt"

	"github.com/piwi3910/RollCut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names.
const (
	layerRoll  = "ROLL"
	layerCut   = "CUT"
	layerWaste = "WASTE"
	layerText  = "TEXT"
)

// Band geometry in drawing units (mm).
const (
	dxfBandHeight = 20.0
	dxfBandGap    = 15.0
	dxfTextHeight = 4.0
)

// ExportDXF draws every used pattern as a roll band at true width: the roll
// outline on ROLL, one knife line per cut on CUT, the waste boundary on
// WASTE and a caption on TEXT. Bands are stacked downwards from the origin.
func ExportDXF(path string, plan *model.Plan) error {
	if plan == nil {
		return fmt.Errorf("no plan to export")
	}
	used := plan.UsedPatterns()
	if len(used) == 0 {
		return fmt.Errorf("plan cuts no rolls")
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name string
		col  color.ColorNumber
	}{
		{layerRoll, color.White},
		{layerCut, color.Red},
		{layerWaste, color.Magenta},
		{layerText, color.Green},
	}
	for _, l := range layers {
		if _, err := d.AddLayer(l.name, l.col, dxf.DefaultLineType, false); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", l.name, err)
		}
	}

	y := 0.0
	for _, u := range used {
		if err := drawPatternBand(d, plan, u, y); err != nil {
			return fmt.Errorf("failed to draw pattern %d: %w", u.Pattern.ID, err)
		}
		y -= dxfBandHeight + dxfBandGap
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save DXF: %w", err)
	}
	return nil
}

func drawPatternBand(d *drawing.Drawing, plan *model.Plan, u model.PatternUsage, y float64) error {
	w := float64(plan.Order.RollWidth)
	top := y + dxfBandHeight

	if err := d.ChangeLayer(layerRoll); err != nil {
		return err
	}
	outline := [][4]float64{
		{0, y, w, y},
		{w, y, w, top},
		{w, top, 0, top},
		{0, top, 0, y},
	}
	for _, s := range outline {
		if _, err := d.Line(s[0], s[1], 0, s[2], s[3], 0); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(layerCut); err != nil {
		return err
	}
	x := 0.0
	for i, n := range u.Pattern.Counts {
		if i >= len(plan.Order.Pieces) {
			break
		}
		for k := 0; k < n; k++ {
			x += float64(plan.Order.Pieces[i].Width)
			if x >= w {
				continue
			}
			if _, err := d.Line(x, y, 0, x, top, 0); err != nil {
				return err
			}
		}
	}

	if u.Pattern.Waste > 0 {
		if err := d.ChangeLayer(layerWaste); err != nil {
			return err
		}
		// Diagonal across the waste strip
		if _, err := d.Line(x, y, 0, w, top, 0); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer(layerText); err != nil {
		return err
	}
	caption := fmt.Sprintf("%d x pattern #%d: %s, waste %d", u.Rolls, u.Pattern.ID, u.Pattern.Describe(plan.Order.Pieces), u.Pattern.Waste)
	_, err := d.Text(caption, 0, top+2, 0, dxfTextHeight)
	return err
}
