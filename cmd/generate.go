package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grihastudio/griha/internal/brief"
	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagGenStyle    string
	flagGenPalette  string
	flagGenBudget   float64
	flagGenVariants int
	flagGenNotes    string
	flagGenBrief    string
	flagGenNoWait   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <room>",
	Short: "Request AI designs for a room and wait for them",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&flagGenStyle, "style", "", "Design style ("+strings.Join(brief.Styles[:4], ", ")+", ...)")
	generateCmd.Flags().StringVar(&flagGenPalette, "palette", "", "Color palette hint")
	generateCmd.Flags().Float64Var(&flagGenBudget, "budget", 0, "Budget ceiling in USD")
	generateCmd.Flags().IntVar(&flagGenVariants, "variants", 1, "Design variants to generate (max 4)")
	generateCmd.Flags().StringVar(&flagGenNotes, "notes", "", "Free-form notes for the generator")
	generateCmd.Flags().StringVar(&flagGenBrief, "brief", "", "YAML brief file (overrides the flags above)")
	generateCmd.Flags().BoolVar(&flagGenNoWait, "no-wait", false, "Submit and exit without polling the job")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, args []string) error {
	client, err := apiClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	rooms, err := client.ListRooms(ctx)
	cancel()
	if err != nil {
		return err
	}

	room, err := resolveRoom(rooms, args[0])
	if err != nil {
		return err
	}

	var b model.DesignBrief
	if flagGenBrief != "" {
		b, err = brief.Load(flagGenBrief)
		if err != nil {
			return err
		}
	} else {
		b = model.DesignBrief{
			Style:     flagGenStyle,
			Palette:   flagGenPalette,
			BudgetUSD: flagGenBudget,
			Notes:     flagGenNotes,
			Variants:  flagGenVariants,
		}
		if err := brief.Validate(&b); err != nil {
			return err
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	job, err := client.RequestDesigns(ctx, room.ID, b)
	cancel()
	if err != nil {
		return err
	}

	fmt.Printf("\n  Queued %d %s design(s) for %s (job %s)\n",
		b.Variants, b.Style, room.Name, shortID(job.ID))

	if flagGenNoWait {
		fmt.Println("  Check back with `griha designs` or `griha daemon`.")
		return nil
	}

	job, err = pollJob(client, job.ID)
	if err != nil {
		return err
	}

	if job.Status == model.JobFailed {
		if job.Error != "" {
			return fmt.Errorf("generation failed: %s", job.Error)
		}
		return fmt.Errorf("generation failed")
	}

	// Show what came out
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	designs, err := client.ListDesigns(ctx, room.ID)
	cancel()
	if err != nil {
		fmt.Printf("  Done. %d design(s) ready, run `griha designs %s`.\n", len(job.DesignIDs), shortID(room.ID))
		return nil
	}

	fresh := make(map[string]bool, len(job.DesignIDs))
	for _, id := range job.DesignIDs {
		fresh[id] = true
	}

	rows := make([][]string, 0, len(job.DesignIDs))
	for _, d := range designs {
		if !fresh[d.ID] {
			continue
		}
		rows = append(rows, []string{
			shortID(d.ID),
			d.Style,
			d.Palette,
			cli.FormatCost(d.EstimatedUSD),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("New Designs · %s", room.Name),
		Headers: []string{"ID", "Style", "Palette", "Ballpark"},
		Rows:    rows,
	}))
	fmt.Println("  `griha estimate <id>` breaks a design down by cost.")
	fmt.Println()
	return nil
}

// pollJob polls the job until it reaches a terminal state, rendering a
// progress bar on stderr.
func pollJob(client jobGetter, jobID string) (*model.GenerationJob, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		job, err := client.GetJob(ctx, jobID)
		if err != nil {
			return nil, err
		}

		progressf("\r  %s %s   ", cli.RenderProgressBar(job.Progress, 30), cli.FormatStatus(job.Status))

		if job.Done() {
			progressf("\n")
			return job, nil
		}

		select {
		case <-ctx.Done():
			progressf("\n")
			return nil, fmt.Errorf("timed out waiting for job %s", shortID(jobID))
		case <-ticker.C:
		}
	}
}

// jobGetter is the slice of the studio client pollJob needs.
type jobGetter interface {
	GetJob(ctx context.Context, id string) (*model.GenerationJob, error)
}
