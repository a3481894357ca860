package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/export"
	"github.com/grihastudio/griha/internal/model"

	"github.com/spf13/cobra"
)

var flagEstimateXLSX string

var estimateCmd = &cobra.Command{
	Use:   "estimate <design>",
	Short: "Show the itemized cost estimate for a design",
	Args:  cobra.ExactArgs(1),
	RunE:  runEstimate,
}

func init() {
	estimateCmd.Flags().StringVar(&flagEstimateXLSX, "xlsx", "", "Write the estimate to an XLSX workbook")

	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(_ *cobra.Command, args []string) error {
	rooms, designs, err := loadData()
	if err != nil {
		return err
	}

	design, err := resolveDesign(designs, args[0])
	if err != nil {
		return err
	}

	client, err := apiClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	est, err := client.Estimate(ctx, design.ID)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("ESTIMATE · %s", design.Style)))
	fmt.Println()
	fmt.Printf("  Design %s for %s\n", shortID(design.ID), roomNameIn(rooms, design.RoomID))
	fmt.Println()

	rows := make([][]string, 0, len(est.Items)+4)
	for _, item := range est.Items {
		rows = append(rows, []string{
			item.Label,
			cli.FormatRoomType(item.Category),
			fmt.Sprintf("%g %s", item.Quantity, item.Unit),
			cli.FormatMoney(est.Currency, item.UnitCost),
			cli.FormatMoney(est.Currency, item.Subtotal),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Subtotal", "", "", "", cli.FormatMoney(est.Currency, est.Subtotal)})
	rows = append(rows, []string{"Tax", "", "", "", cli.FormatMoney(est.Currency, est.Tax)})
	rows = append(rows, []string{"TOTAL", "", "", "", cli.FormatMoney(est.Currency, est.Total)})

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Line Items",
		Headers: []string{"Item", "Category", "Qty", "Unit Cost", "Subtotal"},
		Rows:    rows,
	}))

	if !est.GeneratedAt.IsZero() {
		fmt.Printf("  Generated %s\n\n", cli.FormatAgo(est.GeneratedAt))
	}

	if flagEstimateXLSX != "" {
		data, err := export.BuildEstimateXLSX(*design, *est)
		if err != nil {
			return fmt.Errorf("building workbook: %w", err)
		}
		if err := os.WriteFile(flagEstimateXLSX, data, 0o644); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		fmt.Printf("  Wrote %s\n\n", flagEstimateXLSX)
	}

	return nil
}

// resolveDesign finds a design by ID prefix.
func resolveDesign(designs []model.Design, query string) (*model.Design, error) {
	var matches []model.Design
	for _, d := range designs {
		if strings.HasPrefix(d.ID, query) {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no design matches %q (try `griha designs`)", query)
	case 1:
		return &matches[0], nil
	default:
		ids := make([]string, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, shortID(m.ID))
		}
		return nil, fmt.Errorf("%q is ambiguous: %s", query, strings.Join(ids, ", "))
	}
}
