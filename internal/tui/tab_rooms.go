package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/model"
	"github.com/grihastudio/griha/internal/tui/components"
	"github.com/grihastudio/griha/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Rooms view modes. Split is iota (0) so it's the default zero value.
const (
	roomsViewSplit  = iota // List + detail side by side (default)
	roomsViewDetail        // Full-screen detail
)

// roomsState holds the rooms tab state.
type roomsState struct {
	cursor       int
	viewMode     int
	offset       int // scroll offset for the list
	detailScroll int
}

func (a App) renderRoomsContent(cw, h int) string {
	t := theme.Active

	if len(a.rooms) == 0 {
		body := lipgloss.NewStyle().Foreground(t.TextMuted).Render("No rooms yet. Press u to upload a floor plan.")
		if a.loadErr != nil {
			body += "\n\n" + lipgloss.NewStyle().Foreground(t.Orange).Render(a.loadErr.Error())
		}
		return components.ContentCard("Rooms", body, cw)
	}

	switch a.roomsState.viewMode {
	case roomsViewDetail:
		return a.renderRoomDetail(cw, h)
	default:
		return a.renderRoomsSplit(cw, h)
	}
}

func (a App) renderRoomsSplit(cw, h int) string {
	t := theme.Active
	rs := a.roomsState

	if rs.cursor >= len(a.rooms) {
		return ""
	}

	metricRow := a.renderRoomMetrics(cw)
	h -= lipgloss.Height(metricRow)

	leftW := cw / 3
	if leftW < 32 {
		leftW = 32
	}
	rightW := cw - leftW

	leftInner := components.CardInnerWidth(leftW)

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	var leftBody strings.Builder
	visible := h - 6 // card border (2) + title (1) + hint rows
	if visible < 5 {
		visible = 5
	}

	offset := rs.offset
	if rs.cursor < offset {
		offset = rs.cursor
	}
	if rs.cursor >= offset+visible {
		offset = rs.cursor - visible + 1
	}

	end := offset + visible
	if end > len(a.rooms) {
		end = len(a.rooms)
	}

	nameW := leftInner - 8
	if nameW < 10 {
		nameW = 10
	}
	for i := offset; i < end; i++ {
		r := a.rooms[i]
		line := fmt.Sprintf("%-*s %3d° %s", nameW, truncStr(r.Name, nameW), r.FacingAngle, cli.CardinalLetter(r.Facing()))
		if len(line) > leftInner {
			line = line[:leftInner]
		}
		if i == rs.cursor {
			leftBody.WriteString(selectedStyle.Render(line))
		} else {
			leftBody.WriteString(rowStyle.Render(line))
		}
		leftBody.WriteString("\n")
	}

	leftCard := components.ContentCard(fmt.Sprintf("Rooms (%d)", len(a.rooms)), leftBody.String(), leftW)

	sel := a.rooms[rs.cursor]
	rightCard := components.ContentCard("Room "+shortID(sel.ID), a.renderRoomBody(sel, rightW), rightW)

	return metricRow + "\n" + components.CardRow([]string{leftCard, rightCard})
}

// renderRoomMetrics is the stat strip above the rooms list. All four cards
// carry a note line so the row renders at a uniform height.
func (a App) renderRoomMetrics(cw int) string {
	active := 0
	for _, j := range a.jobs {
		if !j.Done() {
			active++
		}
	}

	jobNote := "idle"
	if active > 0 {
		jobNote = "generating"
	}

	designNote := "none yet"
	if len(a.designs) > 0 {
		designNote = "latest " + cli.FormatAgo(a.designs[0].CreatedAt)
	}

	uploadVal, uploadNote := "never", "run griha upload"
	if len(a.uploadLog) > 0 {
		uploadVal = cli.FormatAgo(a.uploadLog[0].UploadedAt)
		uploadNote = truncStr(filepath.Base(a.uploadLog[0].FilePath), 18)
	}

	metrics := []components.Metric{
		{Label: "Rooms", Value: fmt.Sprintf("%d", len(a.rooms)), Note: "newest " + cli.FormatAgo(a.rooms[0].CreatedAt)},
		{Label: "Designs", Value: fmt.Sprintf("%d", len(a.designs)), Note: designNote},
		{Label: "Active jobs", Value: fmt.Sprintf("%d", active), Note: jobNote},
		{Label: "Last upload", Value: uploadVal, Note: uploadNote},
	}
	return components.MetricCardRow(metrics, cw)
}

func (a App) renderRoomDetail(cw, h int) string {
	rs := a.roomsState
	if rs.cursor >= len(a.rooms) {
		return ""
	}
	sel := a.rooms[rs.cursor]

	body := a.renderRoomBody(sel, cw)

	// Apply detail scroll
	lines := strings.Split(body, "\n")
	if rs.detailScroll > 0 {
		if rs.detailScroll >= len(lines) {
			lines = nil
		} else {
			lines = lines[rs.detailScroll:]
		}
		body = strings.Join(lines, "\n")
	}

	return components.ContentCard("Room "+shortID(sel.ID), body, cw)
}

// renderRoomBody generates the full detail content for a room.
// Used by both the split right pane and the full-screen detail view.
func (a App) renderRoomBody(sel model.Room, w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var body strings.Builder
	body.WriteString(mutedStyle.Render(cli.FormatRoomType(sel.RoomType) + " · created " + cli.FormatAgo(sel.CreatedAt)))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n\n")

	body.WriteString(fmt.Sprintf("%s %s    %s %s\n\n",
		labelStyle.Render("Facing:"),
		valueStyle.Render(cli.FormatAngle(sel.FacingAngle)),
		labelStyle.Render("Status:"),
		valueStyle.Render(cli.FormatStatus(sel.Status))))

	// Wall orientation table
	body.WriteString(headerStyle.Render("WALL ORIENTATION"))
	body.WriteString("\n")
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %s", "Plan wall", "Faces")))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", 22)))
	body.WriteString("\n")

	m := sel.WallMapping
	walls := []struct {
		slot  string
		faces string
	}{
		{"North", cli.FormatRoomType(string(m.North))},
		{"East", cli.FormatRoomType(string(m.East))},
		{"South", cli.FormatRoomType(string(m.South))},
		{"West", cli.FormatRoomType(string(m.West))},
	}
	for _, wl := range walls {
		body.WriteString(valueStyle.Render(fmt.Sprintf("%-12s %s", wl.slot, wl.faces)))
		body.WriteString("\n")
	}

	designs := a.designsForRoom(sel.ID)
	body.WriteString("\n")
	body.WriteString(fmt.Sprintf("%s %s",
		labelStyle.Render("Designs:"),
		valueStyle.Render(fmt.Sprintf("%d", len(designs)))))
	if len(designs) > 0 {
		body.WriteString(labelStyle.Render("  latest " + cli.FormatAgo(designs[0].CreatedAt)))
		body.WriteString("\n")
		body.WriteString(labelStyle.Render("Activity: "))
		body.WriteString(components.Sparkline(designActivity(designs, 14), t.Blue))
	}
	body.WriteString("\n")

	if sel.ImageURL != "" {
		body.WriteString("\n")
		body.WriteString(labelStyle.Render("Image: "))
		body.WriteString(mutedStyle.Render(truncStr(sel.ImageURL, innerW-8)))
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("[Enter] expand  [j/k] navigate  [v] vastu  [q] quit"))

	return body.String()
}

// designActivity buckets design creation times into per-day counts for the
// last n days, oldest first.
func designActivity(designs []model.Design, n int) []float64 {
	counts := make([]float64, n)
	today := time.Now().Truncate(24 * time.Hour)
	for _, d := range designs {
		age := int(today.Sub(d.CreatedAt.Truncate(24*time.Hour)).Hours() / 24)
		if age < 0 || age >= n {
			continue
		}
		counts[n-1-age]++
	}
	return counts
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
