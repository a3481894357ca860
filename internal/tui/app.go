// Package tui provides the interactive Bubble Tea dashboard for griha.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/config"
	"github.com/grihastudio/griha/internal/model"
	"github.com/grihastudio/griha/internal/store"
	"github.com/grihastudio/griha/internal/studio"
	"github.com/grihastudio/griha/internal/tui/components"
	"github.com/grihastudio/griha/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// CachedDataMsg paints locally cached data before the API answers.
type CachedDataMsg struct {
	Rooms   []model.Room
	Designs []model.Design
	Uploads []model.UploadRecord
}

// DataLoadedMsg is sent when the initial API load finishes.
type DataLoadedMsg struct {
	Rooms    []model.Room
	Designs  []model.Design
	Jobs     []model.GenerationJob
	Err      error
	LoadTime time.Duration
}

// RefreshDataMsg is sent when a background data refresh completes.
type RefreshDataMsg struct {
	Rooms    []model.Room
	Designs  []model.Design
	Jobs     []model.GenerationJob
	Err      error
	LoadTime time.Duration
}

// AccountMsg delivers the signed-in account details.
type AccountMsg struct {
	Account *model.Account
	Err     error
}

// JobsMsg delivers the current active generation jobs.
type JobsMsg struct {
	Jobs []model.GenerationJob
	Err  error
}

// UploadDoneMsg reports the outcome of a room upload.
type UploadDoneMsg struct {
	Room *model.Room
	Err  error
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	rooms     []model.Room
	designs   []model.Design
	jobs      []model.GenerationJob
	uploadLog []model.UploadRecord
	reports   map[string]*model.VastuReport
	estimates map[string]*model.CostEstimate
	account   *model.Account
	loaded    bool
	loadErr   error
	loadTime  time.Duration

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// Background fetch flags
	jobPolling       bool
	vastuFetching    bool
	vastuErr         error
	estimateFetching bool
	estimateErr      error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	roomsState  roomsState
	upload      uploadState
	designState designsState
	vastu       vastuState
	settings    settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	// Loading
	spinner spinner.Model
	loadSub chan tea.Msg // cached + loaded messages from the loader goroutine
	ticks   int
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	// Scroll navigation
	scrollOverhead    = 10 // approximate header + status bar height for half-page calc
	minHalfPageScroll = 1  // minimum lines for half-page scroll
	minContentHeight  = 5  // minimum content area height

	// Active jobs are polled every 20 ticks (5s at the 250ms tick rate).
	jobPollTicks = 20
)

// loadConfigOrDefault loads config, returning defaults on error.
// This ensures the TUI can always start even if config is corrupted.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// studioClient builds an API client from the current config.
func studioClient() (*studio.Client, error) {
	cfg := loadConfigOrDefault()
	client := studio.NewClient(config.APIBaseURL(cfg), config.Token(cfg))
	if client == nil {
		return nil, errors.New("no API token configured (run griha auth set-token)")
	}
	return client, nil
}

// NewApp creates a new TUI app model.
func NewApp() App {
	needSetup := !config.Exists()

	cfg := loadConfigOrDefault()
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	refreshInterval := time.Duration(cfg.TUI.RefreshIntervalSec) * time.Second
	if refreshInterval < 10*time.Second {
		refreshInterval = 30 * time.Second
	}

	return App{
		needSetup:       needSetup,
		autoRefresh:     cfg.TUI.AutoRefresh,
		refreshInterval: refreshInterval,
		reports:         make(map[string]*model.VastuReport),
		estimates:       make(map[string]*model.CostEstimate),
		upload:          newUploadState(cfg),
		spinner:         sp,
		loadSub:         make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		loadDataCmd(a.loadSub),
		a.spinner.Tick,
		tickCmd(),
	}

	cfg := loadConfigOrDefault()
	if config.Token(cfg) != "" {
		cmds = append(cmds, fetchAccountCmd())
	}

	return tea.Batch(cmds...)
}

func (a *App) recompute() {
	sort.Slice(a.rooms, func(i, j int) bool {
		return a.rooms[i].CreatedAt.After(a.rooms[j].CreatedAt)
	})
	sort.Slice(a.designs, func(i, j int) bool {
		return a.designs[i].CreatedAt.After(a.designs[j].CreatedAt)
	})

	clamp := func(cursor *int, n int) {
		if *cursor >= n {
			*cursor = n - 1
		}
		if *cursor < 0 {
			*cursor = 0
		}
	}
	clamp(&a.roomsState.cursor, len(a.rooms))
	clamp(&a.designState.cursor, len(a.designs))
	clamp(&a.vastu.cursor, len(a.rooms))
	a.roomsState.detailScroll = 0
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.scrollActiveList(-1)
			return a, nil

		case tea.MouseButtonWheelDown:
			a.scrollActiveList(1)
			return a, nil

		case tea.MouseButtonLeft:
			// Tab bar occupies the first row
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		// Global: quit
		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		// Settings tab has its own keybindings (text input)
		if a.activeTab == 4 && a.settings.editing {
			return a.updateSettingsInput(msg)
		}

		// Upload tab overlays intercept all keys
		if a.activeTab == 1 && a.upload.picking {
			return a.updateUploadPicker(msg)
		}
		if a.activeTab == 1 && a.upload.focus == upFieldName && a.upload.nameIn.Focused() {
			return a.updateUploadName(msg)
		}

		// Help toggle
		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}

		// Dismiss help
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		// Rooms tab keybindings
		if a.activeTab == 0 {
			switch key {
			case "q":
				if a.roomsState.viewMode == roomsViewDetail {
					a.roomsState.viewMode = roomsViewSplit
					return a, nil
				}
				return a, tea.Quit
			case "enter":
				if a.roomsState.viewMode == roomsViewSplit {
					a.roomsState.viewMode = roomsViewDetail
				}
				return a, nil
			case "esc":
				if a.roomsState.viewMode == roomsViewDetail {
					a.roomsState.viewMode = roomsViewSplit
				}
				return a, nil
			case "j", "down":
				if a.roomsState.cursor < len(a.rooms)-1 {
					a.roomsState.cursor++
					a.roomsState.detailScroll = 0
				}
				return a, nil
			case "k", "up":
				if a.roomsState.cursor > 0 {
					a.roomsState.cursor--
					a.roomsState.detailScroll = 0
				}
				return a, nil
			case "g":
				a.roomsState.cursor = 0
				a.roomsState.offset = 0
				a.roomsState.detailScroll = 0
				return a, nil
			case "G":
				a.roomsState.cursor = len(a.rooms) - 1
				if a.roomsState.cursor < 0 {
					a.roomsState.cursor = 0
				}
				return a, nil
			case "J":
				a.roomsState.detailScroll++
				return a, nil
			case "K":
				if a.roomsState.detailScroll > 0 {
					a.roomsState.detailScroll--
				}
				return a, nil
			case "ctrl+d":
				halfPage := (a.height - scrollOverhead) / 2
				if halfPage < minHalfPageScroll {
					halfPage = minHalfPageScroll
				}
				a.roomsState.detailScroll += halfPage
				return a, nil
			case "ctrl+u":
				halfPage := (a.height - scrollOverhead) / 2
				if halfPage < minHalfPageScroll {
					halfPage = minHalfPageScroll
				}
				a.roomsState.detailScroll -= halfPage
				if a.roomsState.detailScroll < 0 {
					a.roomsState.detailScroll = 0
				}
				return a, nil
			case "v":
				// Carry the selection over to the vastu tab
				a.vastu.cursor = a.roomsState.cursor
				a.activeTab = 3
				return a, nil
			}
		}

		// Upload tab keybindings
		if a.activeTab == 1 {
			switch key {
			case "tab":
				return a.uploadFocusNext(1)
			case "shift+tab":
				return a.uploadFocusNext(-1)
			case "j", "down":
				if a.upload.focus == upFieldType {
					a.upload.typeIdx = (a.upload.typeIdx + 1) % len(model.RoomTypes)
					return a, nil
				}
			case "k", "up":
				if a.upload.focus == upFieldType {
					a.upload.typeIdx = (a.upload.typeIdx - 1 + len(model.RoomTypes)) % len(model.RoomTypes)
					return a, nil
				}
			case "left", "right", "shift+left", "shift+right":
				if a.upload.focus == upFieldType {
					dir := 1
					if key == "left" || key == "shift+left" {
						dir = -1
					}
					a.upload.typeIdx = (a.upload.typeIdx + dir + len(model.RoomTypes)) % len(model.RoomTypes)
					return a, nil
				}
				if a.upload.focus == upFieldDial {
					if a.upload.dial.Confirmed() {
						a.upload.lockedHint = true
						return a, nil
					}
					delta := 5.0
					if strings.HasPrefix(key, "shift+") {
						delta = 45
					}
					if strings.HasSuffix(key, "left") {
						delta = -delta
					}
					a.upload.dial.Rotate(delta)
					return a, nil
				}
			case "n":
				if a.upload.focus == upFieldDial {
					if a.upload.dial.Confirmed() {
						a.upload.lockedHint = true
						return a, nil
					}
					a.upload.dial.SnapTo(a.upload.snapStep)
					return a, nil
				}
			case "c":
				if a.upload.focus == upFieldDial {
					a.upload.dial.Confirm()
					a.upload.lockedHint = false
					return a, nil
				}
			case "u":
				if a.upload.focus == upFieldDial {
					a.upload.dial.Reset()
					a.upload.lockedHint = false
					return a, nil
				}
			case "enter":
				switch a.upload.focus {
				case upFieldFile:
					a.upload.picking = true
					return a, a.upload.picker.Init()
				case upFieldType:
					return a.uploadFocusNext(1)
				case upFieldDial:
					if a.upload.submitting {
						return a, nil
					}
					return a.uploadSubmit()
				}
				return a, nil
			case "esc":
				a.upload.result = ""
				a.upload.resultErr = nil
				a.upload.lockedHint = false
				return a, nil
			}
		}

		// Designs tab keybindings
		if a.activeTab == 2 {
			switch key {
			case "j", "down":
				if a.designState.cursor < len(a.designs)-1 {
					a.designState.cursor++
					a.estimateErr = nil
				}
				return a, nil
			case "k", "up":
				if a.designState.cursor > 0 {
					a.designState.cursor--
					a.estimateErr = nil
				}
				return a, nil
			case "g":
				a.designState.cursor = 0
				a.designState.offset = 0
				return a, nil
			case "G":
				a.designState.cursor = len(a.designs) - 1
				if a.designState.cursor < 0 {
					a.designState.cursor = 0
				}
				return a, nil
			case "enter":
				if a.designState.cursor < len(a.designs) && !a.estimateFetching {
					sel := a.designs[a.designState.cursor]
					a.estimateFetching = true
					a.estimateErr = nil
					return a, tea.Batch(fetchEstimateCmd(sel.ID), a.spinner.Tick)
				}
				return a, nil
			}
		}

		// Vastu tab keybindings
		if a.activeTab == 3 {
			switch key {
			case "j", "down":
				if a.vastu.cursor < len(a.rooms)-1 {
					a.vastu.cursor++
					a.vastuErr = nil
				}
				return a, nil
			case "k", "up":
				if a.vastu.cursor > 0 {
					a.vastu.cursor--
					a.vastuErr = nil
				}
				return a, nil
			case "g":
				a.vastu.cursor = 0
				a.vastu.offset = 0
				return a, nil
			case "G":
				a.vastu.cursor = len(a.rooms) - 1
				if a.vastu.cursor < 0 {
					a.vastu.cursor = 0
				}
				return a, nil
			case "enter":
				if a.vastu.cursor < len(a.rooms) && !a.vastuFetching {
					sel := a.rooms[a.vastu.cursor]
					_, haveReport := a.reports[sel.ID]
					a.vastuFetching = true
					a.vastuErr = nil
					return a, tea.Batch(fetchVastuCmd(sel.ID, haveReport), a.spinner.Tick)
				}
				return a, nil
			}
		}

		// Settings tab navigation (non-editing mode)
		if a.activeTab == 4 {
			switch key {
			case "j", "down":
				if a.settings.cursor < settingsFieldCount-1 {
					a.settings.cursor++
				}
				return a, nil
			case "k", "up":
				if a.settings.cursor > 0 {
					a.settings.cursor--
				}
				return a, nil
			case "enter":
				return a.settingsStartEdit()
			}
		}

		// Global quit from non-rooms tabs
		if key == "q" {
			return a, tea.Quit
		}

		// Manual refresh
		if key == "R" && !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd()
		}

		// Tab navigation
		switch key {
		case "r":
			a.activeTab = 0
		case "u":
			a.activeTab = 1
		case "d":
			a.activeTab = 2
		case "v":
			a.activeTab = 3
		case "x":
			a.activeTab = 4
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil

	case CachedDataMsg:
		a.rooms = msg.Rooms
		a.designs = msg.Designs
		a.uploadLog = msg.Uploads
		a.loaded = true
		a.refreshing = true // the API fetch is still in flight
		a.recompute()
		return a, waitForLoadMsg(a.loadSub)

	case DataLoadedMsg:
		a.loaded = true
		a.refreshing = false
		a.loadTime = msg.LoadTime
		a.lastRefresh = time.Now()
		a.loadErr = msg.Err
		if msg.Err == nil {
			a.rooms = msg.Rooms
			a.designs = msg.Designs
			a.jobs = msg.Jobs
			a.recompute()
		}

		// Activate first-run setup once the initial load settles
		if a.needSetup {
			a.setupForm = newSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}

		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Err == nil {
			a.rooms = msg.Rooms
			a.designs = msg.Designs
			a.jobs = msg.Jobs
			a.loadErr = nil
			a.recompute()
		} else {
			a.loadErr = msg.Err
		}
		return a, nil

	case AccountMsg:
		if msg.Err == nil {
			a.account = msg.Account
		}
		return a, nil

	case JobsMsg:
		a.jobPolling = false
		if msg.Err != nil {
			return a, nil
		}
		finished := len(msg.Jobs) < len(a.jobs)
		a.jobs = msg.Jobs
		if finished && !a.refreshing {
			// A job reached a terminal state; pick up its designs.
			a.refreshing = true
			return a, refreshDataCmd()
		}
		return a, nil

	case UploadDoneMsg:
		a.upload.submitting = false
		if msg.Err != nil {
			a.upload.resultErr = msg.Err
			return a, nil
		}
		cfg := loadConfigOrDefault()
		result := "Room uploaded."
		if msg.Room != nil {
			result = fmt.Sprintf("Room %q uploaded · walls mapped from %s", msg.Room.Name, cli.FormatAngle(msg.Room.FacingAngle))
		}
		a.upload = newUploadState(cfg)
		a.upload.result = result
		if !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd()
		}
		return a, nil

	case EstimateMsg:
		a.estimateFetching = false
		if msg.Err != nil {
			a.estimateErr = msg.Err
			return a, nil
		}
		a.estimates[msg.DesignID] = msg.Estimate
		return a, nil

	case VastuMsg:
		a.vastuFetching = false
		if msg.Err != nil {
			a.vastuErr = msg.Err
			return a, nil
		}
		a.reports[msg.RoomID] = msg.Report
		return a, nil

	case spinner.TickMsg:
		if !a.loaded || a.upload.submitting || a.vastuFetching || a.estimateFetching {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		a.ticks++

		cmds := []tea.Cmd{tickCmd()}

		// Poll active jobs for progress
		if a.loaded && len(a.jobs) > 0 && !a.jobPolling && a.ticks%jobPollTicks == 0 {
			a.jobPolling = true
			cmds = append(cmds, pollJobsCmd())
		}

		// Auto-refresh room and design data
		if a.loaded && a.autoRefresh && !a.refreshing {
			if time.Since(a.lastRefresh) >= a.refreshInterval {
				a.refreshing = true
				cmds = append(cmds, refreshDataCmd())
			}
		}

		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// The filepicker reads directories asynchronously
	if a.activeTab == 1 && a.upload.picking {
		return a.updateUploadPicker(msg)
	}

	return a, nil
}

func (a *App) scrollActiveList(dir int) {
	switch a.activeTab {
	case 0:
		next := a.roomsState.cursor + dir
		if next >= 0 && next < len(a.rooms) {
			a.roomsState.cursor = next
			a.roomsState.detailScroll = 0
		}
	case 2:
		next := a.designState.cursor + dir
		if next >= 0 && next < len(a.designs) {
			a.designState.cursor = next
		}
	case 3:
		next := a.vastu.cursor + dir
		if next >= 0 && next < len(a.rooms) {
			a.vastu.cursor = next
		}
	}
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		_ = a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil

		// Load for real now that a token may be configured
		cmds := []tea.Cmd{}
		if !a.refreshing {
			a.refreshing = true
			cmds = append(cmds, refreshDataCmd())
		}
		cfg := loadConfigOrDefault()
		if config.Token(cfg) != "" && a.account == nil {
			cmds = append(cmds, fetchAccountCmd())
		}
		return a, tea.Batch(cmds...)
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  griha needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	w := a.width
	h := a.height

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	spinnerStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ griha"))
	b.WriteString(subtitleStyle.Render(" · Griha Studio"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Contacting the studio..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	h := a.height
	w := a.width

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"r u d v x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"J K", "Scroll detail pane"},
		{"^d ^u", "Half-page scroll"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Orientation dial"))
	b.WriteString("\n")
	dialBindings := []struct{ key, desc string }{
		{"← →", "Rotate 5°"},
		{"shift ← →", "Rotate 45°"},
		{"n", "Snap to nearest step"},
		{"c", "Confirm (locks the dial)"},
		{"u", "Reset to 0°, unlocked"},
		{"Enter", "Upload the room"},
	}
	for _, bind := range dialBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"Enter", "Expand / Confirm"},
		{"Esc", "Back / Cancel"},
		{"R", "Refresh data"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Render header (tab bar + context pill)
	pillStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	pillAccentStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	cfg := loadConfigOrDefault()
	host := strings.TrimPrefix(strings.TrimPrefix(config.APIBaseURL(cfg), "https://"), "http://")

	contextStr := pillStyle.Render(" ") + pillAccentStyle.Render(host)
	contextStr += pillStyle.Render(" │ ") + pillAccentStyle.Render(fmt.Sprintf("%d rooms", len(a.rooms)))
	if a.account != nil {
		contextStr += pillStyle.Render(" │ ") + pillAccentStyle.Render(a.account.Plan)
	}
	if a.loadErr != nil {
		contextStr += pillStyle.Render(" │ ") +
			lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render("offline")
	}
	contextStr += pillStyle.Render(" ")

	contextRowStyle := lipgloss.NewStyle().
		Background(t.Surface).
		Width(w)

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		contextRowStyle.Render(contextStr)

	// 2. Render status bar
	dataAge := ""
	if !a.lastRefresh.IsZero() {
		dataAge = cli.FormatAgo(a.lastRefresh)
	}
	statusBar := components.RenderStatusBar(w, dataAge, a.refreshing, a.autoRefresh)

	// 3. Calculate content zone height
	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Render tab content
	var content string
	switch a.activeTab {
	case 0:
		content = a.renderRoomsContent(cw, contentH)
	case 1:
		content = a.renderUploadTab(cw)
	case 2:
		content = a.renderDesignsTab(cw, contentH)
	case 3:
		content = a.renderVastuTab(cw, contentH)
	case 4:
		content = a.renderSettingsTab(cw)
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background (fixes gaps between cards)
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Place content with background fill (handles centering when w > cw)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	// 8. Stack vertically
	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	// 9. Ensure entire terminal is filled with background
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Data helpers ───────────────────────────────────────────────

// designsForRoom returns the designs for one room, newest first.
func (a App) designsForRoom(roomID string) []model.Design {
	var out []model.Design
	for _, d := range a.designs {
		if d.RoomID == roomID {
			out = append(out, d)
		}
	}
	return out
}

// roomName resolves a room ID to its display name.
func (a App) roomName(roomID string) string {
	for _, r := range a.rooms {
		if r.ID == roomID {
			return r.Name
		}
	}
	return shortID(roomID)
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadDataCmd starts the initial data load in a background goroutine.
// Cached data is streamed first so the dashboard paints before the API
// answers, then the fresh result follows through sub.
func loadDataCmd(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			if cache, err := store.Open(store.DefaultPath()); err == nil {
				rooms, _ := cache.LoadRooms()
				designs, _ := cache.LoadDesigns("")
				uploads, _ := cache.RecentUploads(20)
				_ = cache.Close()
				if len(rooms) > 0 {
					sub <- CachedDataMsg{Rooms: rooms, Designs: designs, Uploads: uploads}
				}
			}

			rooms, designs, jobs, err := fetchAll()
			sub <- DataLoadedMsg{
				Rooms:    rooms,
				Designs:  designs,
				Jobs:     jobs,
				Err:      err,
				LoadTime: time.Since(start),
			}
		}()

		// Block until the first message (cached data or the API result)
		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// fetchAll loads rooms, designs and active jobs, caching what it can.
func fetchAll() ([]model.Room, []model.Design, []model.GenerationJob, error) {
	client, err := studioClient()
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rooms, err := client.ListRooms(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	designs, err := client.ListDesigns(ctx, "")
	if err != nil {
		return rooms, nil, nil, err
	}
	jobs, _ := client.ListActiveJobs(ctx)

	// Refresh the local cache, best effort
	if cache, cerr := store.Open(store.DefaultPath()); cerr == nil {
		_ = cache.SaveRooms(rooms)
		_ = cache.SaveDesigns(designs)
		_ = cache.Close()
	}

	return rooms, designs, jobs, nil
}

// refreshDataCmd refreshes studio data in the background.
func refreshDataCmd() tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		rooms, designs, jobs, err := fetchAll()
		return RefreshDataMsg{
			Rooms:    rooms,
			Designs:  designs,
			Jobs:     jobs,
			Err:      err,
			LoadTime: time.Since(start),
		}
	}
}

// pollJobsCmd fetches the active job list for progress updates.
func pollJobsCmd() tea.Cmd {
	return func() tea.Msg {
		client, err := studioClient()
		if err != nil {
			return JobsMsg{Err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		jobs, err := client.ListActiveJobs(ctx)
		return JobsMsg{Jobs: jobs, Err: err}
	}
}

// fetchAccountCmd loads the signed-in account in a background goroutine.
func fetchAccountCmd() tea.Cmd {
	return func() tea.Msg {
		client, err := studioClient()
		if err != nil {
			return AccountMsg{Err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		acct, err := client.Me(ctx)
		return AccountMsg{Account: acct, Err: err}
	}
}

// ─── Layout helpers ─────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
// This ensures gaps between cards and empty lines have proper background fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
