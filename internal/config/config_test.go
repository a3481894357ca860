package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with no file: %v", err)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("default theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
	if cfg.Upload.SnapStepDeg != 90 {
		t.Errorf("default snap step = %v, want 90", cfg.Upload.SnapStepDeg)
	}
	if !cfg.TUI.AutoRefresh {
		t.Error("default auto_refresh = false, want true")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := DefaultConfig()
	cfg.Auth.Token = "eyJtest.token.x"
	cfg.Server.BaseURL = "https://staging.grihastudio.com"
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Upload.SnapStepDeg = 45

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}
	if got := ConfigPath(); got != filepath.Join(dir, "griha", "config.toml") {
		t.Errorf("ConfigPath = %q", got)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Auth.Token != cfg.Auth.Token {
		t.Errorf("token = %q, want %q", loaded.Auth.Token, cfg.Auth.Token)
	}
	if loaded.Server.BaseURL != cfg.Server.BaseURL {
		t.Errorf("base URL = %q, want %q", loaded.Server.BaseURL, cfg.Server.BaseURL)
	}
	if loaded.Appearance.Theme != "tokyo-night" {
		t.Errorf("theme = %q, want tokyo-night", loaded.Appearance.Theme)
	}
	if loaded.Upload.SnapStepDeg != 45 {
		t.Errorf("snap step = %v, want 45", loaded.Upload.SnapStepDeg)
	}
}

func TestTokenEnvOverridesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth.Token = "eyJfrom.config.x"

	t.Setenv("GRIHA_TOKEN", "")
	if got := Token(cfg); got != "eyJfrom.config.x" {
		t.Errorf("Token without env = %q, want config value", got)
	}

	t.Setenv("GRIHA_TOKEN", "eyJfrom.env.x")
	if got := Token(cfg); got != "eyJfrom.env.x" {
		t.Errorf("Token with env = %q, want env value", got)
	}
}

func TestAPIBaseURLEnvOverridesConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.BaseURL = "https://config.example.com"

	t.Setenv("GRIHA_API_URL", "https://env.example.com")
	if got := APIBaseURL(cfg); got != "https://env.example.com" {
		t.Errorf("APIBaseURL = %q, want env value", got)
	}
}

func TestSnapStepFallsBack(t *testing.T) {
	tests := []struct {
		step float64
		want float64
	}{
		{90, 90},
		{45, 45},
		{30, 30},
		{0, 90},
		{-45, 90},
		{70, 90}, // does not divide 360
	}
	for _, tt := range tests {
		cfg := Config{Upload: UploadConfig{SnapStepDeg: tt.step}}
		if got := cfg.SnapStep(); got != tt.want {
			t.Errorf("SnapStep with %v = %v, want %v", tt.step, got, tt.want)
		}
	}
}
