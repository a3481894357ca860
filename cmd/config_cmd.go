// Package cmd implements the griha CLI commands.
package cmd

import (
	"fmt"

	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/config"
	"github.com/grihastudio/griha/internal/store"
	"github.com/grihastudio/griha/internal/studio"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default room type: %s\n", cli.FormatRoomType(cfg.General.DefaultRoomType))
	if cfg.General.DownloadDir != "" {
		fmt.Printf("    Download dir:      %s\n", cfg.General.DownloadDir)
	}
	fmt.Println()

	fmt.Println("  [Server]")
	base := config.APIBaseURL(cfg)
	if base == "" {
		base = studio.DefaultBaseURL
	}
	fmt.Printf("    Base URL: %s\n", base)
	fmt.Println()

	fmt.Println("  [Auth]")
	token := config.Token(cfg)
	if token != "" {
		fmt.Printf("    Token: %s\n", maskToken(token))
	} else {
		fmt.Println("    Token: not configured")
	}
	fmt.Println()

	fmt.Println("  [Upload]")
	fmt.Printf("    Snap step: %g°\n", cfg.SnapStep())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [TUI]")
	fmt.Printf("    Auto refresh:     %v\n", cfg.TUI.AutoRefresh)
	fmt.Printf("    Refresh interval: %ds\n", cfg.TUI.RefreshIntervalSec)
	fmt.Println()

	fmt.Printf("  Cache: %s", store.DefaultPath())
	if cache, err := store.Open(store.DefaultPath()); err == nil {
		if n, cerr := cache.RoomCount(); cerr == nil {
			fmt.Printf(" (%d rooms)", n)
		}
		_ = cache.Close()
	}
	fmt.Println()
	fmt.Println()

	fmt.Println("  Run `griha setup` to reconfigure.")
	return nil
}
