package tui

import (
	"strings"

	"github.com/grihastudio/griha/internal/config"
	"github.com/grihastudio/griha/internal/model"
	"github.com/grihastudio/griha/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues collects the first-run wizard answers.
type setupValues struct {
	Token       string
	RoomType    string
	Theme       string
	AutoRefresh bool
}

// newSetupForm builds the first-run wizard shown when no config file exists.
func newSetupForm(vals *setupValues) *huh.Form {
	defaults := config.DefaultConfig()
	if vals.RoomType == "" {
		vals.RoomType = defaults.General.DefaultRoomType
	}
	if vals.Theme == "" {
		vals.Theme = defaults.Appearance.Theme
	}
	vals.AutoRefresh = defaults.TUI.AutoRefresh

	themeNames := make([]string, len(theme.All))
	for i, th := range theme.All {
		themeNames[i] = th.Name
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to griha").
				Description("A couple of questions and the dashboard is yours."),

			huh.NewInput().
				Title("Griha Studio API token").
				Description("Create one at grihastudio.com under Account, API tokens.\nLeave blank to browse offline with cached data.").
				Placeholder("eyJ...").
				EchoMode(huh.EchoModePassword).
				Value(&vals.Token),

			huh.NewSelect[string]().
				Title("Default room type").
				Options(huh.NewOptions(model.RoomTypes...)...).
				Value(&vals.RoomType),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(themeNames...)...).
				Value(&vals.Theme),

			huh.NewConfirm().
				Title("Refresh data automatically?").
				Value(&vals.AutoRefresh),
		),
	)
}

// saveSetupConfig persists the wizard answers to the config file.
func (a *App) saveSetupConfig() error {
	cfg := loadConfigOrDefault()

	if token := strings.TrimSpace(a.setupVals.Token); token != "" {
		cfg.Auth.Token = token
	}
	if a.setupVals.RoomType != "" {
		cfg.General.DefaultRoomType = a.setupVals.RoomType
	}
	if a.setupVals.Theme != "" {
		cfg.Appearance.Theme = a.setupVals.Theme
		theme.SetActive(a.setupVals.Theme)
	}
	cfg.TUI.AutoRefresh = a.setupVals.AutoRefresh
	a.autoRefresh = cfg.TUI.AutoRefresh
	a.upload.snapStep = cfg.SnapStep()

	return config.Save(cfg)
}
