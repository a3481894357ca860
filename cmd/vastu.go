package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/export"
	"github.com/grihastudio/griha/internal/model"
	"github.com/grihastudio/griha/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagVastuPDF     string
	flagVastuRefresh bool
)

var vastuCmd = &cobra.Command{
	Use:   "vastu <room>",
	Short: "Show a room's Vastu orientation report",
	Args:  cobra.ExactArgs(1),
	RunE:  runVastu,
}

func init() {
	vastuCmd.Flags().StringVar(&flagVastuPDF, "pdf", "", "Write the report to a PDF file")
	vastuCmd.Flags().BoolVar(&flagVastuRefresh, "refresh", false, "Recompute on the backend, skip the cached report")

	rootCmd.AddCommand(vastuCmd)
}

func runVastu(_ *cobra.Command, args []string) error {
	rooms, _, err := loadData()
	if err != nil {
		return err
	}

	room, err := resolveRoom(rooms, args[0])
	if err != nil {
		return err
	}

	rep, err := loadVastuReport(room.ID)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("VASTU · %s", room.Name)))
	fmt.Println()
	fmt.Printf("  Score:  %d/100 (%s)\n", rep.Score, rep.Grade)
	fmt.Printf("  Facing: %s (%s)\n", cli.FormatRoomType(rep.Facing), cli.FormatAngle(room.FacingAngle))
	if !rep.ComputedAt.IsZero() {
		fmt.Printf("  Computed: %s\n", cli.FormatAgo(rep.ComputedAt))
	}
	if rep.Summary != "" {
		fmt.Println()
		fmt.Printf("  %s\n", rep.Summary)
	}
	fmt.Println()

	rows := make([][]string, 0, len(rep.Zones))
	for _, z := range rep.Zones {
		rows = append(rows, []string{
			cli.FormatRoomType(z.Zone),
			cli.FormatRoomType(z.Element),
			fmt.Sprintf("%d", z.Score),
			cli.RenderScoreBar(z.Score, 16),
			z.Verdict,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Zones",
		Headers: []string{"Zone", "Element", "Score", "", "Verdict"},
		Rows:    rows,
	}))

	if len(rep.Remedies) > 0 {
		fmt.Println("  Remedies")
		for _, r := range rep.Remedies {
			fmt.Printf("   · %s\n", r)
		}
		fmt.Println()
	}

	if flagVastuPDF != "" {
		data, err := export.BuildVastuPDF(*room, *rep)
		if err != nil {
			return fmt.Errorf("building PDF: %w", err)
		}
		if err := os.WriteFile(flagVastuPDF, data, 0o644); err != nil {
			return fmt.Errorf("writing PDF: %w", err)
		}
		fmt.Printf("  Wrote %s\n\n", flagVastuPDF)
	}

	return nil
}

// loadVastuReport serves the cached report unless --refresh or --no-cache,
// falling through to the API and caching the fresh result.
func loadVastuReport(roomID string) (*model.VastuReport, error) {
	if !flagVastuRefresh && !flagNoCache {
		if cache, err := store.Open(store.DefaultPath()); err == nil {
			rep, cerr := cache.LoadVastuReport(roomID)
			_ = cache.Close()
			if cerr == nil && rep != nil {
				return rep, nil
			}
		}
	}

	client, err := apiClient()
	if err != nil {
		return nil, err
	}

	progressf("  Computing vastu report...\n")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	rep, err := client.VastuReport(ctx, roomID)
	if err != nil {
		return nil, err
	}

	if cache, cerr := store.Open(store.DefaultPath()); cerr == nil {
		_ = cache.SaveVastuReport(*rep)
		_ = cache.Close()
	}
	return rep, nil
}
