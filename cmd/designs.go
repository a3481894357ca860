package cmd

import (
	"fmt"

	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/model"

	"github.com/spf13/cobra"
)

var designsCmd = &cobra.Command{
	Use:   "designs [room]",
	Short: "List generated designs, optionally for one room",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDesigns,
}

func init() {
	rootCmd.AddCommand(designsCmd)
}

func runDesigns(_ *cobra.Command, args []string) error {
	rooms, designs, err := loadData()
	if err != nil {
		return err
	}

	query := flagRoom
	if len(args) > 0 {
		query = args[0]
	}

	title := fmt.Sprintf("Designs (%d)", len(designs))
	var room *model.Room
	if query != "" {
		room, err = resolveRoom(rooms, query)
		if err != nil {
			return err
		}
		designs = designsFor(designs, room.ID)
		title = fmt.Sprintf("Designs · %s (%d)", room.Name, len(designs))
	}

	if len(designs) == 0 {
		if room != nil {
			fmt.Printf("\n  No designs for %s yet. Try `griha generate %s --style scandinavian`.\n",
				room.Name, shortID(room.ID))
		} else {
			fmt.Println("\n  No designs yet. Upload a room, then run `griha generate`.")
		}
		return nil
	}

	rows := make([][]string, 0, len(designs))
	for _, d := range designs {
		rows = append(rows, []string{
			shortID(d.ID),
			roomNameIn(rooms, d.RoomID),
			d.Style,
			d.Palette,
			cli.FormatCost(d.EstimatedUSD),
			cli.FormatAgo(d.CreatedAt),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"ID", "Room", "Style", "Palette", "Ballpark", "Created"},
		Rows:    rows,
	}))
	fmt.Println("  `griha estimate <id>` breaks a design down by cost.")
	fmt.Println()
	return nil
}
