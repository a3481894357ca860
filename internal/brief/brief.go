// Package brief loads and validates YAML design-brief files for the
// generate flow.
package brief

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/grihastudio/griha/internal/model"
)

// Styles lists the design styles the pickers offer. The backend accepts
// free-form styles too; this is just the curated set.
var Styles = []string{
	"scandinavian",
	"industrial",
	"bohemian",
	"minimalist",
	"mid_century",
	"japandi",
	"traditional_indian",
	"contemporary",
}

const maxVariants = 4

// Load reads a design brief from a YAML file and applies defaults.
func Load(path string) (model.DesignBrief, error) {
	var b model.DesignBrief

	data, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("reading brief: %w", err)
	}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("parsing brief: %w", err)
	}
	if err := Validate(&b); err != nil {
		return b, err
	}
	return b, nil
}

// Validate checks required fields and fills defaults in place.
func Validate(b *model.DesignBrief) error {
	if b.Style == "" {
		return fmt.Errorf("brief: style is required")
	}
	if b.BudgetUSD < 0 {
		return fmt.Errorf("brief: budget_usd must not be negative")
	}
	if b.Variants <= 0 {
		b.Variants = 1
	}
	if b.Variants > maxVariants {
		b.Variants = maxVariants
	}
	return nil
}
