package brief

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grihastudio/griha/internal/model"
)

func writeBrief(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brief.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeBrief(t, `
style: japandi
palette: warm neutrals
budget_usd: 3500
keep_items:
  - bookshelf
  - floor lamp
notes: low furniture, natural wood
variants: 2
`)
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Style != "japandi" {
		t.Errorf("style = %q, want japandi", b.Style)
	}
	if b.BudgetUSD != 3500 {
		t.Errorf("budget = %v, want 3500", b.BudgetUSD)
	}
	if len(b.KeepItems) != 2 || b.KeepItems[0] != "bookshelf" {
		t.Errorf("keep_items = %v", b.KeepItems)
	}
	if b.Variants != 2 {
		t.Errorf("variants = %d, want 2", b.Variants)
	}
}

func TestLoadDefaultsVariants(t *testing.T) {
	path := writeBrief(t, "style: minimalist\n")
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if b.Variants != 1 {
		t.Errorf("variants defaulted to %d, want 1", b.Variants)
	}
}

func TestLoadRequiresStyle(t *testing.T) {
	path := writeBrief(t, "palette: pastel\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "style is required") {
		t.Errorf("missing style: err = %v", err)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeBrief(t, "style: [unterminated\n")
	if _, err := Load(path); err == nil {
		t.Error("bad yaml accepted")
	}
}

func TestValidateClamps(t *testing.T) {
	b := model.DesignBrief{Style: "industrial", Variants: 99}
	if err := Validate(&b); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if b.Variants != maxVariants {
		t.Errorf("variants clamped to %d, want %d", b.Variants, maxVariants)
	}

	neg := model.DesignBrief{Style: "industrial", BudgetUSD: -10}
	if err := Validate(&neg); err == nil {
		t.Error("negative budget accepted")
	}
}
