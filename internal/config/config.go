package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all griha configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Server     ServerConfig     `toml:"server"`
	Auth       AuthConfig       `toml:"auth"`
	Upload     UploadConfig     `toml:"upload"`
	Appearance AppearanceConfig `toml:"appearance"`
	TUI        TUIConfig        `toml:"tui"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DefaultRoomType string `toml:"default_room_type"`
	DownloadDir     string `toml:"download_dir,omitempty"`
}

// ServerConfig holds Griha Studio API settings.
type ServerConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
}

// AuthConfig holds the stored access token.
type AuthConfig struct {
	Token string `toml:"token,omitempty"`
}

// UploadConfig holds compass dial settings for room uploads.
type UploadConfig struct {
	SnapStepDeg float64 `toml:"snap_step_deg"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TUIConfig holds dashboard behavior settings.
type TUIConfig struct {
	AutoRefresh        bool `toml:"auto_refresh"`
	RefreshIntervalSec int  `toml:"refresh_interval_sec"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultRoomType: "living_room",
		},
		Upload: UploadConfig{
			SnapStepDeg: 90,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		TUI: TUIConfig{
			AutoRefresh:        true,
			RefreshIntervalSec: 30,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "griha")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "griha")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// A .env file in the working directory is loaded first so development
// overrides are visible to the env lookups below.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Token returns the access token from env var or config, in that order.
func Token(cfg Config) string {
	if tok := os.Getenv("GRIHA_TOKEN"); tok != "" {
		return tok
	}
	return cfg.Auth.Token
}

// APIBaseURL returns the API base URL from env var or config, in that
// order. Empty means the client default.
func APIBaseURL(cfg Config) string {
	if url := os.Getenv("GRIHA_API_URL"); url != "" {
		return url
	}
	return cfg.Server.BaseURL
}

// SnapStep returns the configured dial snap step, falling back to 90 when
// the value is not a positive divisor of 360.
func (c Config) SnapStep() float64 {
	step := c.Upload.SnapStepDeg
	if step <= 0 || math.Mod(360, step) != 0 {
		return 90
	}
	return step
}
