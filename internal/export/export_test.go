package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/grihastudio/griha/internal/model"
)

func TestBuildVastuPDF(t *testing.T) {
	room := model.Room{ID: "r1", Name: "master bedroom", RoomType: "bedroom", FacingAngle: 90}
	rep := model.VastuReport{
		RoomID:  "r1",
		Score:   68,
		Grade:   "good",
		Facing:  "east",
		Summary: "bed placement conflicts with the south-west zone",
		Zones: []model.VastuZone{
			{Zone: "north_east", Element: "water", Score: 80, Verdict: "favorable"},
			{Zone: "south_west", Element: "earth", Score: 50, Verdict: "weak"},
		},
		Remedies:   []string{"shift the bed toward the south-west corner"},
		ComputedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}

	out, err := BuildVastuPDF(room, rep)
	if err != nil {
		t.Fatalf("BuildVastuPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header (got %q)", out[:min(8, len(out))])
	}
}

func TestBuildEstimateXLSX(t *testing.T) {
	design := model.Design{ID: "d1", RoomID: "r1", Style: "japandi"}
	est := model.CostEstimate{
		DesignID: "d1",
		Currency: "USD",
		Items: []model.EstimateItem{
			{Label: "oak sideboard", Category: "furniture", Quantity: 1, UnitCost: 650, Subtotal: 650},
			{Label: "linen curtains", Category: "textiles", Quantity: 2, Unit: "panel", UnitCost: 80, Subtotal: 160},
		},
		Subtotal:    810,
		Tax:         72.9,
		Total:       882.9,
		GeneratedAt: time.Now().UTC(),
	}

	out, err := BuildEstimateXLSX(design, est)
	if err != nil {
		t.Fatalf("BuildEstimateXLSX: %v", err)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Errorf("output is not a zip archive (got %q)", out[:min(4, len(out))])
	}
}
