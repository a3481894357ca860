package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/grihastudio/griha/internal/config"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <design> [dest]",
	Short: "Download the rendered image for a design",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(_ *cobra.Command, args []string) error {
	_, designs, err := loadData()
	if err != nil {
		return err
	}

	design, err := resolveDesign(designs, args[0])
	if err != nil {
		return err
	}
	if design.ImageURL == "" {
		return fmt.Errorf("design %s has no rendered image yet", shortID(design.ID))
	}

	dest, err := downloadDest(design.ImageURL, shortID(design.ID), args)
	if err != nil {
		return err
	}

	client, err := apiClient()
	if err != nil {
		return err
	}

	progressf("Downloading %s...\n", shortID(design.ID))
	if err := client.DownloadImage(context.Background(), design.ImageURL, dest); err != nil {
		return err
	}

	fmt.Printf("Saved %s render to %s\n", design.Style, dest)
	return nil
}

// downloadDest picks the output path: an explicit second argument wins,
// then the configured download directory, then the working directory.
func downloadDest(rawURL, id string, args []string) (string, error) {
	name := fmt.Sprintf("griha-%s%s", id, imageExt(rawURL))

	if len(args) > 1 {
		dest := args[1]
		if info, err := os.Stat(dest); err == nil && info.IsDir() {
			return filepath.Join(dest, name), nil
		}
		return dest, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	dir := cfg.General.DownloadDir
	if dir == "" {
		return name, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating download dir: %w", err)
	}
	return filepath.Join(dir, name), nil
}

func imageExt(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".png"
	}
	if ext := path.Ext(u.Path); ext != "" {
		return ext
	}
	return ".png"
}
