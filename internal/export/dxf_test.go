package export

import (
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_Entities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")

	if err := ExportDXF(path, buildTestPlan()); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot reopen DXF: %v", err)
	}

	var lines, texts int
	for _, e := range drawing.Entities() {
		switch e.(type) {
		case *entity.Line:
			lines++
		case *entity.Text:
			texts++
		}
	}

	// Three bands: 12 outline edges, knife lines 5 + 12 + 7, one waste diagonal
	if lines != 37 {
		t.Errorf("expected 37 lines, got %d", lines)
	}
	if texts != 3 {
		t.Errorf("expected 3 captions, got %d", texts)
	}
}

func TestExportDXF_NoRollsCut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")

	plan := buildTestPlan()
	for i := range plan.Patterns {
		plan.Patterns[i].Rolls = 0
	}
	if err := ExportDXF(path, plan); err == nil {
		t.Fatal("expected error for plan without rolls, got nil")
	}
}
