package cmd

import (
	"fmt"

	"github.com/grihastudio/griha/internal/cli"

	"github.com/spf13/cobra"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms [room]",
	Short: "List rooms, or show one room's wall orientation",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRooms,
}

func init() {
	rootCmd.AddCommand(roomsCmd)
}

func runRooms(_ *cobra.Command, args []string) error {
	rooms, designs, err := loadData()
	if err != nil {
		return err
	}
	if len(rooms) == 0 {
		fmt.Println("\n  No rooms yet. Start with `griha upload plan.jpg`.")
		return nil
	}

	query := flagRoom
	if len(args) > 0 {
		query = args[0]
	}

	if query != "" {
		room, err := resolveRoom(rooms, query)
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle(room.Name))
		fmt.Println()
		fmt.Printf("  ID:      %s\n", room.ID)
		fmt.Printf("  Type:    %s\n", cli.FormatRoomType(room.RoomType))
		fmt.Printf("  Status:  %s\n", cli.FormatStatus(room.Status))
		fmt.Printf("  Added:   %s\n", cli.FormatAgo(room.CreatedAt))
		fmt.Println()
		fmt.Println(cli.RenderCompass(float64(room.FacingAngle), room.WallMapping, true))
		fmt.Println()

		rows := [][]string{
			{"Top (plan north)", cli.FormatRoomType(string(room.WallMapping.North))},
			{"Right (plan east)", cli.FormatRoomType(string(room.WallMapping.East))},
			{"Bottom (plan south)", cli.FormatRoomType(string(room.WallMapping.South))},
			{"Left (plan west)", cli.FormatRoomType(string(room.WallMapping.West))},
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Wall Orientation",
			Headers: []string{"Plan Wall", "Real-World Facing"},
			Rows:    rows,
		}))

		if n := len(designsFor(designs, room.ID)); n > 0 {
			fmt.Printf("  %d designs, see `griha designs %s`\n", n, shortID(room.ID))
		} else {
			fmt.Printf("  No designs yet. Try `griha generate %s --style scandinavian`\n", shortID(room.ID))
		}
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, []string{
			shortID(r.ID),
			r.Name,
			cli.FormatRoomType(r.RoomType),
			cli.FormatAngle(r.FacingAngle),
			fmt.Sprintf("%d", len(designsFor(designs, r.ID))),
			cli.FormatAgo(r.CreatedAt),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Rooms (%d)", len(rooms)),
		Headers: []string{"ID", "Name", "Type", "Facing", "Designs", "Added"},
		Rows:    rows,
	}))
	fmt.Println("  `griha rooms <name>` shows the compass detail.")
	fmt.Println()
	return nil
}
