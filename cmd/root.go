package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/config"
	"github.com/grihastudio/griha/internal/model"
	"github.com/grihastudio/griha/internal/store"
	"github.com/grihastudio/griha/internal/studio"

	"github.com/spf13/cobra"
)

var (
	flagAPIURL  string
	flagRoom    string
	flagNoCache bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "griha",
	Short: "Griha Studio design client",
	Long:  "Upload floor plans, generate AI interior designs, and check Vastu alignment from the terminal.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Config reads the base URL env-first, so the flag wins everywhere
		// without threading it through every call site.
		if flagAPIURL != "" {
			_ = os.Setenv("GRIHA_API_URL", flagAPIURL)
		}
	},
	RunE: runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "Griha Studio API base URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagRoom, "room", "p", "", "Filter to room (ID prefix or name substring)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the local cache, always hit the API")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// apiClient builds a studio client from config. A nil client means no
// usable token is configured.
func apiClient() (*studio.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	client := studio.NewClient(config.APIBaseURL(cfg), config.Token(cfg))
	if client == nil {
		return nil, errors.New("no API token configured (run `griha auth set-token` or `griha setup`)")
	}
	return client, nil
}

// progressf prints progress to stderr unless --quiet.
func progressf(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// loadData is the shared data loading path used by the read-only commands.
// It asks the API first and falls back to the local cache when the studio
// is unreachable, so tables still render offline.
func loadData() ([]model.Room, []model.Design, error) {
	client, cerr := apiClient()
	if cerr == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		rooms, err := client.ListRooms(ctx)
		if err == nil {
			designs, derr := client.ListDesigns(ctx, "")
			if derr != nil {
				designs = nil
			}
			if !flagNoCache {
				if cache, oerr := store.Open(store.DefaultPath()); oerr == nil {
					_ = cache.SaveRooms(rooms)
					_ = cache.SaveDesigns(designs)
					_ = cache.Close()
				}
			}
			return rooms, designs, nil
		}
		cerr = err
	}

	if flagNoCache {
		return nil, nil, cerr
	}

	cache, err := store.Open(store.DefaultPath())
	if err != nil {
		return nil, nil, cerr
	}
	defer cache.Close()

	rooms, err := cache.LoadRooms()
	if err != nil || len(rooms) == 0 {
		return nil, nil, cerr
	}
	designs, _ := cache.LoadDesigns("")

	if age, aerr := cache.LastRefresh(); aerr == nil && !age.IsZero() {
		progressf("  Offline: cached data from %s (%v)\n", cli.FormatAgo(age), cerr)
	} else {
		progressf("  Offline: serving cached data (%v)\n", cerr)
	}
	return rooms, designs, nil
}

// resolveRoom finds a room by ID prefix or case-insensitive name substring.
func resolveRoom(rooms []model.Room, query string) (*model.Room, error) {
	if query == "" {
		return nil, errors.New("no room given")
	}

	var matches []model.Room
	q := strings.ToLower(query)
	for _, r := range rooms {
		if strings.HasPrefix(r.ID, query) || strings.Contains(strings.ToLower(r.Name), q) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no room matches %q (try `griha rooms`)", query)
	case 1:
		return &matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, m := range matches {
			names = append(names, m.Name)
		}
		return nil, fmt.Errorf("%q is ambiguous: %s", query, strings.Join(names, ", "))
	}
}

// designsFor filters designs down to one room, keeping API order.
func designsFor(designs []model.Design, roomID string) []model.Design {
	var out []model.Design
	for _, d := range designs {
		if d.RoomID == roomID {
			out = append(out, d)
		}
	}
	return out
}

func runOverview(_ *cobra.Command, _ []string) error {
	rooms, designs, err := loadData()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("GRIHA STUDIO"))
	fmt.Println()

	// Account line, best effort
	if client, cerr := apiClient(); cerr == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		acct, aerr := client.Me(ctx)
		cancel()
		if aerr == nil {
			fmt.Printf("  %s · %s plan · %d of %d rooms used\n\n",
				acct.Email, acct.Plan, acct.RoomsUsed, acct.RoomsQuota)
		}
	}

	if len(rooms) == 0 {
		fmt.Println("  No rooms yet. Start with `griha upload plan.jpg`.")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(rooms))
	for _, r := range rooms {
		rows = append(rows, []string{
			r.Name,
			cli.FormatRoomType(r.RoomType),
			cli.FormatAngle(r.FacingAngle),
			fmt.Sprintf("%d", len(designsFor(designs, r.ID))),
			cli.FormatAgo(r.CreatedAt),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Rooms",
		Headers: []string{"Name", "Type", "Facing", "Designs", "Added"},
		Rows:    rows,
	}))

	recent := designs
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if len(recent) > 0 {
		drows := make([][]string, 0, len(recent))
		for _, d := range recent {
			drows = append(drows, []string{
				shortID(d.ID),
				roomNameIn(rooms, d.RoomID),
				d.Style,
				cli.FormatCost(d.EstimatedUSD),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Recent Designs",
			Headers: []string{"ID", "Room", "Style", "Ballpark"},
			Rows:    drows,
		}))
	}

	fmt.Println("  Run `griha tui` for the interactive dashboard.")
	fmt.Println()
	return nil
}

func roomNameIn(rooms []model.Room, roomID string) string {
	for _, r := range rooms {
		if r.ID == roomID {
			return r.Name
		}
	}
	return shortID(roomID)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
