package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/grihastudio/griha/internal/compass"
	"github.com/grihastudio/griha/internal/config"
	"github.com/grihastudio/griha/internal/model"
	"github.com/grihastudio/griha/internal/store"
	"github.com/grihastudio/griha/internal/studio"
	"github.com/grihastudio/griha/internal/tui/components"
	"github.com/grihastudio/griha/internal/tui/theme"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Upload tab focus targets, cycled with tab/shift+tab.
const (
	upFieldName = iota
	upFieldType
	upFieldFile
	upFieldDial
	upFieldCount
)

// uploadState holds the upload tab state: the form fields and the
// orientation dial for the room being submitted.
type uploadState struct {
	focus      int
	nameIn     textinput.Model
	typeIdx    int
	picker     filepicker.Model
	picking    bool // filepicker overlay active
	file       string
	dial       compass.State
	snapStep   float64
	submitting bool
	result     string
	resultErr  error
	lockedHint bool // rotation pressed while confirmed
}

func newUploadState(cfg config.Config) uploadState {
	ti := textinput.New()
	ti.Placeholder = "Living room"
	ti.CharLimit = 64
	ti.Width = 28

	fp := filepicker.New()
	fp.AllowedTypes = []string{".jpg", ".jpeg", ".png", ".webp"}
	if home, err := os.UserHomeDir(); err == nil {
		fp.CurrentDirectory = home
	}
	fp.Height = 12

	typeIdx := 0
	for i, rt := range model.RoomTypes {
		if rt == cfg.General.DefaultRoomType {
			typeIdx = i
			break
		}
	}

	return uploadState{
		focus:    upFieldDial,
		nameIn:   ti,
		typeIdx:  typeIdx,
		picker:   fp,
		snapStep: cfg.SnapStep(),
	}
}

// updateUploadPicker routes messages to the filepicker overlay.
func (a App) updateUploadPicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		a.upload.picking = false
		return a, nil
	}

	var cmd tea.Cmd
	a.upload.picker, cmd = a.upload.picker.Update(msg)

	if ok, path := a.upload.picker.DidSelectFile(msg); ok {
		a.upload.file = path
		a.upload.picking = false
	}
	return a, cmd
}

// updateUploadName routes key events to the room name input.
func (a App) updateUploadName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab":
		a.upload.nameIn.Blur()
		a.upload.focus = upFieldType
		return a, nil
	case "esc":
		a.upload.nameIn.Blur()
		a.upload.focus = upFieldDial
		return a, nil
	}

	var cmd tea.Cmd
	a.upload.nameIn, cmd = a.upload.nameIn.Update(msg)
	return a, cmd
}

// uploadFocusNext advances field focus, managing the text input blur/focus.
func (a App) uploadFocusNext(dir int) (tea.Model, tea.Cmd) {
	a.upload.nameIn.Blur()
	a.upload.focus = (a.upload.focus + dir + upFieldCount) % upFieldCount
	if a.upload.focus == upFieldName {
		a.upload.nameIn.Focus()
		return a, a.upload.nameIn.Cursor.BlinkCmd()
	}
	return a, nil
}

// uploadSubmit validates the form and kicks off the async upload.
func (a App) uploadSubmit() (tea.Model, tea.Cmd) {
	a.upload.result = ""
	a.upload.resultErr = nil

	name := strings.TrimSpace(a.upload.nameIn.Value())
	switch {
	case name == "":
		a.upload.resultErr = errors.New("room name is required")
		return a.uploadFocusTo(upFieldName)
	case a.upload.file == "":
		a.upload.resultErr = errors.New("choose a floor plan image first")
		a.upload.focus = upFieldFile
		return a, nil
	case !a.upload.dial.Confirmed():
		a.upload.resultErr = errors.New("confirm the orientation (c) before uploading")
		a.upload.focus = upFieldDial
		return a, nil
	}

	req := &studio.UploadRequest{
		Name:        name,
		RoomType:    model.RoomTypes[a.upload.typeIdx],
		FilePath:    a.upload.file,
		FacingAngle: a.upload.dial.FacingAngle(),
		Confirmed:   a.upload.dial.Confirmed(),
	}

	a.upload.submitting = true
	return a, tea.Batch(submitUploadCmd(req), a.spinner.Tick)
}

func (a App) uploadFocusTo(field int) (tea.Model, tea.Cmd) {
	a.upload.nameIn.Blur()
	a.upload.focus = field
	if field == upFieldName {
		a.upload.nameIn.Focus()
		return a, a.upload.nameIn.Cursor.BlinkCmd()
	}
	return a, nil
}

// submitUploadCmd performs the multipart upload off the UI goroutine.
func submitUploadCmd(req *studio.UploadRequest) tea.Cmd {
	return func() tea.Msg {
		client, err := studioClient()
		if err != nil {
			return UploadDoneMsg{Err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		room, err := client.UploadRoom(ctx, req)
		if err != nil {
			return UploadDoneMsg{Err: err}
		}

		// Record the upload locally, best effort.
		if cache, cerr := store.Open(store.DefaultPath()); cerr == nil {
			_ = cache.LogUpload(model.UploadRecord{
				Ref:         req.Ref,
				RoomID:      room.ID,
				FilePath:    req.FilePath,
				FacingAngle: req.FacingAngle,
				Confirmed:   req.Confirmed,
				UploadedAt:  time.Now(),
			})
			_ = cache.Close()
		}

		return UploadDoneMsg{Room: room}
	}
}

func (a App) renderUploadTab(cw int) string {
	t := theme.Active
	up := a.upload

	if up.picking {
		hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("[enter] select  [esc] cancel")
		return components.ContentCard("Choose image", up.picker.View()+"\n"+hint, cw)
	}

	halves := components.LayoutRow(cw, 2)
	if a.isCompactLayout() {
		halves = []int{cw, cw}
	}

	formCard := components.ContentCard("New room", a.renderUploadForm(halves[0]), halves[0])
	dialCard := components.ContentCard("Orientation", a.renderUploadDial(halves[1]), halves[1])

	var b strings.Builder
	if a.isCompactLayout() {
		b.WriteString(formCard)
		b.WriteString("\n")
		b.WriteString(dialCard)
	} else {
		b.WriteString(components.CardRow([]string{formCard, dialCard}))
	}

	// Submission status line under the cards
	switch {
	case up.submitting:
		b.WriteString("\n ")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Render(a.spinner.View() + " uploading..."))
	case up.resultErr != nil:
		b.WriteString("\n ")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render(up.resultErr.Error()))
	case up.result != "":
		b.WriteString("\n ")
		b.WriteString(lipgloss.NewStyle().Foreground(t.Green).Render(up.result))
	}

	return b.String()
}

func (a App) renderUploadForm(w int) string {
	t := theme.Active
	up := a.upload

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	marker := func(field int) string {
		if up.focus == field {
			return markerStyle.Render("▸ ")
		}
		return "  "
	}

	fileDisplay := up.file
	if fileDisplay == "" {
		fileDisplay = "(press enter to browse)"
	} else {
		fileDisplay = truncStr(fileDisplay, components.CardInnerWidth(w)-10)
	}

	var b strings.Builder
	b.WriteString(marker(upFieldName))
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-6s", "Name")))
	if up.focus == upFieldName {
		b.WriteString(up.nameIn.View())
	} else if v := strings.TrimSpace(up.nameIn.Value()); v != "" {
		b.WriteString(valueStyle.Render(v))
	} else {
		b.WriteString(dimStyle.Render("(unnamed)"))
	}
	b.WriteString("\n")

	b.WriteString(marker(upFieldType))
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-6s", "Type")))
	typeStr := model.RoomTypes[up.typeIdx]
	b.WriteString(valueStyle.Render("‹ " + typeStr + " ›"))
	b.WriteString("\n")

	b.WriteString(marker(upFieldFile))
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-6s", "Image")))
	b.WriteString(valueStyle.Render(fileDisplay))
	b.WriteString("\n\n")

	b.WriteString(dimStyle.Render("[tab] next field  [j/k] change type"))

	return b.String()
}

func (a App) renderUploadDial(w int) string {
	t := theme.Active
	up := a.upload

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange)
	focusStyle := lipgloss.NewStyle().Foreground(t.AccentBright)

	var b strings.Builder
	if up.focus == upFieldDial {
		b.WriteString(focusStyle.Render("▾ dial focused"))
	} else {
		b.WriteString(dimStyle.Render("  tab to the dial to rotate"))
	}
	b.WriteString("\n\n")

	b.WriteString(components.Dial(up.dial.Angle(), up.dial.Mapping(), up.dial.Confirmed()))
	b.WriteString("\n\n")

	if up.lockedHint {
		b.WriteString(warnStyle.Render("dial is locked · press u to reset"))
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("[←/→] 5°  [shift] 45°  [n] snap %g°", up.snapStep)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[c] confirm  [u] reset  [enter] upload"))

	return b.String()
}
