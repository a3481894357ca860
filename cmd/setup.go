package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/config"
	"github.com/grihastudio/griha/internal/model"
	"github.com/grihastudio/griha/internal/store"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to griha!")
	fmt.Println()

	// Show what's already cached locally
	if cache, err := store.Open(store.DefaultPath()); err == nil {
		if n, cerr := cache.RoomCount(); cerr == nil && n > 0 {
			fmt.Printf("  Found %d cached rooms in %s\n\n", n, store.DefaultPath())
		}
		_ = cache.Close()
	}

	// 1. Access token
	fmt.Println("  1. Griha Studio access token")
	fmt.Println("     Create one at grihastudio.com under Account, API tokens.")
	fmt.Println("     Leave blank to browse offline with cached data.")
	existing := config.Token(cfg)
	if existing != "" {
		fmt.Printf("     Current: %s\n", maskToken(existing))
	}
	fmt.Print("     > ")
	token, _ := reader.ReadString('\n')
	token = strings.TrimSpace(token)
	if token != "" {
		cfg.Auth.Token = token
	}
	fmt.Println()

	// 2. Default room type
	fmt.Println("  2. Default room type for uploads")
	for i, rt := range model.RoomTypes {
		marker := ""
		if rt == cfg.General.DefaultRoomType {
			marker = " [current]"
		}
		fmt.Printf("     (%d) %s%s\n", i+1, cli.FormatRoomType(rt), marker)
	}
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	if n, err := strconv.Atoi(strings.TrimSpace(choice)); err == nil && n >= 1 && n <= len(model.RoomTypes) {
		cfg.General.DefaultRoomType = model.RoomTypes[n-1]
	}
	fmt.Println()

	// 3. Theme
	fmt.Println("  3. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Griha Dawn")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "griha-dawn"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}
	fmt.Println()

	// 4. Auto-refresh
	fmt.Println("  4. Refresh dashboard data automatically? (Y/n)")
	fmt.Print("     > ")
	auto, _ := reader.ReadString('\n')
	cfg.TUI.AutoRefresh = strings.ToLower(strings.TrimSpace(auto)) != "n"

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `griha setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
