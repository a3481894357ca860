package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/config"
	"github.com/grihastudio/griha/internal/model"
	"github.com/grihastudio/griha/internal/store"
	"github.com/grihastudio/griha/internal/studio"
	"github.com/grihastudio/griha/internal/tui/components"
	"github.com/grihastudio/griha/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldToken = iota
	settingsFieldAPIURL
	settingsFieldTheme
	settingsFieldRoomType
	settingsFieldDownloadDir
	settingsFieldSnapStep
	settingsFieldAutoRefresh
	settingsFieldRefreshInterval
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message briefly
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 512
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldToken:
		ti.Placeholder = "eyJ..."
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
		if cfg.Auth.Token != "" {
			ti.SetValue(cfg.Auth.Token)
		}
	case settingsFieldAPIURL:
		ti.Placeholder = studio.DefaultBaseURL
		ti.SetValue(cfg.Server.BaseURL)
	case settingsFieldTheme:
		names := make([]string, len(theme.All))
		for i, th := range theme.All {
			names[i] = th.Name
		}
		ti.Placeholder = strings.Join(names, ", ")
		ti.SetValue(cfg.Appearance.Theme)
	case settingsFieldRoomType:
		ti.Placeholder = strings.Join(model.RoomTypes, ", ")
		ti.SetValue(cfg.General.DefaultRoomType)
	case settingsFieldDownloadDir:
		ti.Placeholder = "~/Downloads"
		ti.SetValue(cfg.General.DownloadDir)
	case settingsFieldSnapStep:
		ti.Placeholder = "90 (degrees, must divide 360)"
		ti.SetValue(strconv.FormatFloat(cfg.Upload.SnapStepDeg, 'f', -1, 64))
	case settingsFieldAutoRefresh:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(a.autoRefresh))
	case settingsFieldRefreshInterval:
		ti.Placeholder = "30 (seconds, minimum 10)"
		intervalSec := int(a.refreshInterval.Seconds())
		if intervalSec < 10 {
			intervalSec = 30
		}
		ti.SetValue(strconv.Itoa(intervalSec))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSave() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldToken:
		cfg.Auth.Token = val
	case settingsFieldAPIURL:
		cfg.Server.BaseURL = val
	case settingsFieldTheme:
		for _, th := range theme.All {
			if th.Name == val {
				cfg.Appearance.Theme = val
				theme.SetActive(val)
				break
			}
		}
	case settingsFieldRoomType:
		for _, rt := range model.RoomTypes {
			if rt == val {
				cfg.General.DefaultRoomType = val
				break
			}
		}
	case settingsFieldDownloadDir:
		cfg.General.DownloadDir = val
	case settingsFieldSnapStep:
		if step, err := strconv.ParseFloat(val, 64); err == nil && step > 0 && step <= 360 {
			cfg.Upload.SnapStepDeg = step
			a.upload.snapStep = cfg.SnapStep()
		}
	case settingsFieldAutoRefresh:
		cfg.TUI.AutoRefresh = val == "true" || val == "1" || val == "yes"
		a.autoRefresh = cfg.TUI.AutoRefresh
	case settingsFieldRefreshInterval:
		if interval, err := strconv.Atoi(val); err == nil && interval >= 10 {
			cfg.TUI.RefreshIntervalSec = interval
			a.refreshInterval = time.Duration(interval) * time.Second
		}
	}

	a.settings.saveErr = config.Save(cfg)
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) > 16 {
		return token[:8] + "..." + token[len(token)-4:]
	}
	return "****"
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	apiURL := cfg.Server.BaseURL
	if apiURL == "" {
		apiURL = "(default)"
	}
	downloadDir := cfg.General.DownloadDir
	if downloadDir == "" {
		downloadDir = "(current directory)"
	}

	refreshIntervalSec := int(a.refreshInterval.Seconds())
	if refreshIntervalSec < 10 {
		refreshIntervalSec = 30
	}

	fields := []field{
		{"API Token", maskToken(cfg.Auth.Token)},
		{"API URL", apiURL},
		{"Theme", cfg.Appearance.Theme},
		{"Default Room Type", cfg.General.DefaultRoomType},
		{"Download Dir", downloadDir},
		{"Snap Step", fmt.Sprintf("%g°", cfg.SnapStep())},
		{"Auto Refresh", strconv.FormatBool(a.autoRefresh)},
		{"Refresh Interval", fmt.Sprintf("%ds", refreshIntervalSec)},
	}

	var formBody strings.Builder
	for i, f := range fields {
		// Show text input if currently editing this field
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			innerW := components.CardInnerWidth(cw)
			padLen := innerW - usedWidth
			if padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// Account card
	var acctBody strings.Builder
	if a.account != nil {
		acctBody.WriteString(labelStyle.Render("Email: ") + valueStyle.Render(a.account.Email))
		acctBody.WriteString("   " + labelStyle.Render("Plan: ") + valueStyle.Render(a.account.Plan))
		acctBody.WriteString("\n")
		acctBody.WriteString(components.QuotaBar("Rooms", a.account.RoomsUsed, a.account.RoomsQuota, 6, 24))
	} else if config.Token(cfg) == "" {
		acctBody.WriteString(labelStyle.Render("Not signed in. Set an API token to connect."))
	} else {
		acctBody.WriteString(labelStyle.Render("Account details unavailable."))
	}

	// General info card
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Cache:        ") + valueStyle.Render(store.DefaultPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Rooms loaded: ") + valueStyle.Render(strconv.Itoa(len(a.rooms))) + "\n")
	infoBody.WriteString(labelStyle.Render("Last refresh: ") + valueStyle.Render(cli.FormatAgo(a.lastRefresh)))
	if n := len(a.uploadLog); n > 0 {
		infoBody.WriteString("\n")
		infoBody.WriteString(labelStyle.Render("Uploads:      ") + valueStyle.Render(fmt.Sprintf("%d recent", n)))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Account", acctBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))

	return b.String()
}
