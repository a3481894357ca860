package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/compass"
	"github.com/grihastudio/griha/internal/config"
	"github.com/grihastudio/griha/internal/model"
	"github.com/grihastudio/griha/internal/store"
	"github.com/grihastudio/griha/internal/studio"

	"github.com/spf13/cobra"
)

var (
	flagUploadName   string
	flagUploadType   string
	flagUploadFacing float64
	flagUploadYes    bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload <image>",
	Short: "Upload a floor plan with its compass orientation",
	Long: "Upload a floor plan image. The orientation dial maps the plan's walls to\n" +
		"real-world compass directions; the upload is refused until you confirm it.",
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVar(&flagUploadName, "name", "", "Room name (defaults to the file name)")
	uploadCmd.Flags().StringVar(&flagUploadType, "type", "", "Room type (living_room, bedroom, ...)")
	uploadCmd.Flags().Float64Var(&flagUploadFacing, "facing", 0, "Facing angle in degrees, clockwise from north")
	uploadCmd.Flags().BoolVarP(&flagUploadYes, "yes", "y", false, "Confirm the orientation without prompting")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(_ *cobra.Command, args []string) error {
	imagePath := args[0]
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	name := flagUploadName
	if name == "" {
		base := filepath.Base(imagePath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	roomType := flagUploadType
	if roomType == "" {
		roomType = cfg.General.DefaultRoomType
	}
	if !validRoomType(roomType) {
		return fmt.Errorf("unknown room type %q (one of: %s)", roomType, strings.Join(model.RoomTypes, ", "))
	}

	// The dial: rotate, snap, then lock before the upload goes out.
	var dial compass.State
	dial.SetAngle(flagUploadFacing)

	if flagUploadYes {
		dial.Confirm()
	} else if err := confirmOrientation(&dial, cfg.SnapStep()); err != nil {
		return err
	}

	if !dial.Confirmed() {
		return fmt.Errorf("upload canceled: orientation not confirmed")
	}

	client, err := apiClient()
	if err != nil {
		return err
	}

	req := &studio.UploadRequest{
		Name:        name,
		RoomType:    roomType,
		FilePath:    imagePath,
		FacingAngle: dial.FacingAngle(),
		Confirmed:   dial.Confirmed(),
	}

	progressf("  Uploading %s...\n", filepath.Base(imagePath))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	room, err := client.UploadRoom(ctx, req)
	if err != nil {
		return err
	}

	// Record the upload locally, best effort.
	if cache, cerr := store.Open(store.DefaultPath()); cerr == nil {
		_ = cache.LogUpload(model.UploadRecord{
			Ref:         req.Ref,
			RoomID:      room.ID,
			FilePath:    imagePath,
			FacingAngle: req.FacingAngle,
			Confirmed:   req.Confirmed,
			UploadedAt:  time.Now(),
		})
		_ = cache.Close()
	}

	fmt.Println()
	fmt.Printf("  Uploaded %q (%s)\n", room.Name, shortID(room.ID))
	fmt.Printf("  Facing %s · walls mapped:\n", cli.FormatAngle(room.FacingAngle))
	m := room.WallMapping
	fmt.Printf("    plan north → %-6s plan east → %s\n",
		cli.FormatRoomType(string(m.North)), cli.FormatRoomType(string(m.East)))
	fmt.Printf("    plan south → %-6s plan west → %s\n",
		cli.FormatRoomType(string(m.South)), cli.FormatRoomType(string(m.West)))
	fmt.Println()
	fmt.Printf("  Next: `griha generate %s --style scandinavian`\n", shortID(room.ID))
	fmt.Println()
	return nil
}

// confirmOrientation runs the interactive dial loop on stdin.
func confirmOrientation(dial *compass.State, snapStep float64) error {
	reader := bufio.NewReader(os.Stdin)

	fmt.Println()
	fmt.Println("  Orient the floor plan")
	fmt.Println("  Rotate until the needle points where the plan's top wall really faces.")

	for {
		fmt.Println()
		fmt.Println(cli.RenderCompass(dial.Angle(), dial.Mapping(), dial.Confirmed()))
		fmt.Println()
		fmt.Printf("  (a) set angle   (r) +90°   (l) -90°   (n) snap to %g°\n", snapStep)
		fmt.Println("  (c) confirm     (q) cancel")
		fmt.Print("  > ")

		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "a":
			fmt.Print("  Angle (degrees clockwise from north) > ")
			raw, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			deg, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				fmt.Println("  Not a number.")
				continue
			}
			dial.SetAngle(deg)
		case "r":
			dial.Rotate(90)
		case "l":
			dial.Rotate(-90)
		case "n":
			dial.SnapTo(snapStep)
		case "c":
			dial.Confirm()
			return nil
		case "q":
			return fmt.Errorf("upload canceled")
		}
	}
}

func validRoomType(rt string) bool {
	for _, t := range model.RoomTypes {
		if t == rt {
			return true
		}
	}
	return false
}
