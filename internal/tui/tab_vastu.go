package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/model"
	"github.com/grihastudio/griha/internal/store"
	"github.com/grihastudio/griha/internal/tui/components"
	"github.com/grihastudio/griha/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// vastuState holds the vastu tab state. The tab shares the room list data
// but keeps its own cursor.
type vastuState struct {
	cursor int
	offset int
}

// VastuMsg delivers a vastu report for one room.
type VastuMsg struct {
	RoomID string
	Report *model.VastuReport
	Err    error
}

// fetchVastuCmd loads the vastu report for a room: from the local cache
// unless refresh is set, then from the API, caching the result.
func fetchVastuCmd(roomID string, refresh bool) tea.Cmd {
	return func() tea.Msg {
		if !refresh {
			if cache, err := store.Open(store.DefaultPath()); err == nil {
				rep, cerr := cache.LoadVastuReport(roomID)
				_ = cache.Close()
				if cerr == nil && rep != nil {
					return VastuMsg{RoomID: roomID, Report: rep}
				}
			}
		}

		client, err := studioClient()
		if err != nil {
			return VastuMsg{RoomID: roomID, Err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		rep, err := client.VastuReport(ctx, roomID)
		if err != nil {
			return VastuMsg{RoomID: roomID, Err: err}
		}

		if cache, cerr := store.Open(store.DefaultPath()); cerr == nil {
			_ = cache.SaveVastuReport(*rep)
			_ = cache.Close()
		}
		return VastuMsg{RoomID: roomID, Report: rep}
	}
}

func (a App) renderVastuTab(cw, h int) string {
	t := theme.Active

	if len(a.rooms) == 0 {
		msg := "No rooms to analyze. Press u to upload a floor plan first."
		return components.ContentCard("Vastu", lipgloss.NewStyle().Foreground(t.TextMuted).Render(msg), cw)
	}

	vs := a.vastu
	if vs.cursor >= len(a.rooms) {
		return ""
	}

	leftW := cw / 3
	if leftW < 30 {
		leftW = 30
	}
	rightW := cw - leftW

	leftInner := components.CardInnerWidth(leftW)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	visible := h - 6
	if visible < 5 {
		visible = 5
	}
	offset := vs.offset
	if vs.cursor < offset {
		offset = vs.cursor
	}
	if vs.cursor >= offset+visible {
		offset = vs.cursor - visible + 1
	}
	end := offset + visible
	if end > len(a.rooms) {
		end = len(a.rooms)
	}

	var leftBody strings.Builder
	for i := offset; i < end; i++ {
		r := a.rooms[i]
		score := "  -"
		if rep, ok := a.reports[r.ID]; ok && rep != nil {
			score = fmt.Sprintf("%3d", rep.Score)
		}
		line := fmt.Sprintf("%-*s %s", leftInner-4, truncStr(r.Name, leftInner-4), score)
		if i == vs.cursor {
			leftBody.WriteString(selectedStyle.Render(line))
		} else {
			leftBody.WriteString(rowStyle.Render(line))
		}
		leftBody.WriteString("\n")
	}

	leftCard := components.ContentCard("Rooms", leftBody.String(), leftW)

	sel := a.rooms[vs.cursor]
	rightCard := components.ContentCard("Vastu · "+sel.Name, a.renderVastuBody(sel, rightW), rightW)

	return components.CardRow([]string{leftCard, rightCard})
}

func (a App) renderVastuBody(sel model.Room, w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	rep, ok := a.reports[sel.ID]
	if !ok || rep == nil {
		var b strings.Builder
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Facing %s.", cli.FormatAngle(sel.FacingAngle))))
		b.WriteString("\n\n")
		if a.vastuFetching {
			b.WriteString(mutedStyle.Render(a.spinner.View() + " analyzing orientation..."))
		} else if a.vastuErr != nil {
			b.WriteString(lipgloss.NewStyle().Foreground(t.Red).Render(a.vastuErr.Error()))
			b.WriteString("\n\n")
			b.WriteString(mutedStyle.Render("[Enter] retry"))
		} else {
			b.WriteString(mutedStyle.Render("[Enter] compute vastu report"))
		}
		return b.String()
	}

	scoreStyle := lipgloss.NewStyle().Foreground(scoreGradeColor(rep.Score)).Bold(true)

	var b strings.Builder
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%d", rep.Score)))
	b.WriteString(labelStyle.Render("/100  grade "))
	b.WriteString(valueStyle.Render(rep.Grade))
	b.WriteString(labelStyle.Render("  facing "))
	b.WriteString(valueStyle.Render(rep.Facing))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n\n")

	if rep.Summary != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextPrimary).Width(innerW).Render(rep.Summary))
		b.WriteString("\n\n")
	}

	if len(rep.Zones) > 0 {
		b.WriteString(headerStyle.Render("ZONES"))
		b.WriteString("\n")
		labels := make([]string, len(rep.Zones))
		scores := make([]int, len(rep.Zones))
		for i, z := range rep.Zones {
			labels[i] = zoneAbbrev(z.Zone)
			scores[i] = z.Score
		}
		barW := innerW
		if barW > 48 {
			barW = 48
		}
		b.WriteString(components.ScoreBars(labels, scores, barW))
		b.WriteString("\n")
	}

	if len(rep.Remedies) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("REMEDIES"))
		b.WriteString("\n")
		for _, r := range rep.Remedies {
			b.WriteString(valueStyle.Render("• "))
			b.WriteString(lipgloss.NewStyle().Foreground(t.TextPrimary).Width(innerW-2).Render(r))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("computed %s · [Enter] refresh", cli.FormatAgo(rep.ComputedAt))))

	return b.String()
}

func scoreGradeColor(score int) lipgloss.Color {
	t := theme.Active
	switch {
	case score >= 75:
		return t.Green
	case score >= 50:
		return t.Yellow
	default:
		return t.Red
	}
}

// zoneAbbrev shortens backend zone names for bar labels: "north_east" -> NE.
func zoneAbbrev(zone string) string {
	parts := strings.Split(zone, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
	}
	if b.Len() == 0 {
		return "?"
	}
	return b.String()
}
