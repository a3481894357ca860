package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grihastudio/griha/internal/cli"
	"github.com/grihastudio/griha/internal/model"
	"github.com/grihastudio/griha/internal/tui/components"
	"github.com/grihastudio/griha/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// designsState holds the designs tab state.
type designsState struct {
	cursor int
	offset int
}

// EstimateMsg delivers a lazily fetched cost estimate for one design.
type EstimateMsg struct {
	DesignID string
	Estimate *model.CostEstimate
	Err      error
}

// fetchEstimateCmd loads the itemized cost estimate for a design.
func fetchEstimateCmd(designID string) tea.Cmd {
	return func() tea.Msg {
		client, err := studioClient()
		if err != nil {
			return EstimateMsg{DesignID: designID, Err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		est, err := client.Estimate(ctx, designID)
		return EstimateMsg{DesignID: designID, Estimate: est, Err: err}
	}
}

func (a App) renderDesignsTab(cw, h int) string {
	t := theme.Active
	var b strings.Builder

	// Active generation jobs on top
	if len(a.jobs) > 0 {
		var jb strings.Builder
		innerW := components.CardInnerWidth(cw)
		barW := innerW - 40
		if barW < 10 {
			barW = 10
		}
		for i, job := range a.jobs {
			room := a.roomName(job.RoomID)
			jb.WriteString(lipgloss.NewStyle().Foreground(t.TextPrimary).Render(fmt.Sprintf("%-18s", truncStr(room, 18))))
			jb.WriteString(" ")
			jb.WriteString(components.ProgressBar(float64(job.Progress)/100, barW))
			jb.WriteString(" ")
			jb.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Render(cli.FormatStatus(job.Status)))
			if i < len(a.jobs)-1 {
				jb.WriteString("\n")
			}
		}
		b.WriteString(components.ContentCard(fmt.Sprintf("Generating (%d)", len(a.jobs)), jb.String(), cw))
		b.WriteString("\n")
		h -= len(a.jobs) + 3
	}

	if len(a.designs) == 0 {
		msg := "No designs yet. Upload a room, then run griha generate."
		b.WriteString(components.ContentCard("Designs", lipgloss.NewStyle().Foreground(t.TextMuted).Render(msg), cw))
		return b.String()
	}

	b.WriteString(a.renderDesignsSplit(cw, h))
	return b.String()
}

func (a App) renderDesignsSplit(cw, h int) string {
	t := theme.Active
	ds := a.designState

	if ds.cursor >= len(a.designs) {
		return ""
	}

	leftW := cw * 2 / 5
	if leftW < 36 {
		leftW = 36
	}
	rightW := cw - leftW

	leftInner := components.CardInnerWidth(leftW)

	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	visible := h - 5
	if visible < 5 {
		visible = 5
	}

	offset := ds.offset
	if ds.cursor < offset {
		offset = ds.cursor
	}
	if ds.cursor >= offset+visible {
		offset = ds.cursor - visible + 1
	}
	end := offset + visible
	if end > len(a.designs) {
		end = len(a.designs)
	}

	var leftBody strings.Builder
	for i := offset; i < end; i++ {
		d := a.designs[i]
		line := fmt.Sprintf("%-8s %-14s %s", shortID(d.ID), truncStr(a.roomName(d.RoomID), 14), truncStr(d.Style, leftInner-25))
		if len(line) > leftInner {
			line = line[:leftInner]
		}
		if i == ds.cursor {
			leftBody.WriteString(selectedStyle.Render(line))
		} else {
			leftBody.WriteString(rowStyle.Render(line))
		}
		leftBody.WriteString("\n")
	}

	leftCard := components.ContentCard(fmt.Sprintf("Designs (%d)", len(a.designs)), leftBody.String(), leftW)

	sel := a.designs[ds.cursor]
	rightCard := components.ContentCard("Design "+shortID(sel.ID), a.renderDesignBody(sel, rightW), rightW)

	return components.CardRow([]string{leftCard, rightCard})
}

func (a App) renderDesignBody(sel model.Design, w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green)
	redStyle := lipgloss.NewStyle().Foreground(t.Red)

	var body strings.Builder
	body.WriteString(mutedStyle.Render(a.roomName(sel.RoomID) + " · " + cli.FormatAgo(sel.CreatedAt)))
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n\n")

	body.WriteString(fmt.Sprintf("%s %s", labelStyle.Render("Style:"), valueStyle.Render(sel.Style)))
	if sel.Palette != "" {
		body.WriteString(fmt.Sprintf("    %s %s", labelStyle.Render("Palette:"), valueStyle.Render(sel.Palette)))
	}
	body.WriteString("\n")
	if sel.EstimatedUSD > 0 {
		body.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render("Ballpark:"), valueStyle.Render(cli.FormatCost(sel.EstimatedUSD))))
	}
	if sel.ImageURL != "" {
		body.WriteString(labelStyle.Render("Render: "))
		body.WriteString(mutedStyle.Render(truncStr(sel.ImageURL, innerW-9)))
		body.WriteString("\n")
	}

	// Itemized estimate, loaded on demand
	if est, ok := a.estimates[sel.ID]; ok && est != nil {
		body.WriteString("\n")
		body.WriteString(headerStyle.Render("COST ESTIMATE"))
		body.WriteString("\n")
		body.WriteString(headerStyle.Render(fmt.Sprintf("%-24s %5s %12s", "Item", "Qty", "Subtotal")))
		body.WriteString("\n")
		body.WriteString(mutedStyle.Render(strings.Repeat("─", 44)))
		body.WriteString("\n")
		for _, item := range est.Items {
			body.WriteString(valueStyle.Render(fmt.Sprintf("%-24s %5.0f %12s",
				truncStr(item.Label, 24), item.Quantity,
				cli.FormatMoney(est.Currency, item.Subtotal))))
			body.WriteString("\n")
		}
		body.WriteString(mutedStyle.Render(strings.Repeat("─", 44)))
		body.WriteString("\n")
		body.WriteString(fmt.Sprintf("%-24s %5s %s\n",
			labelStyle.Render("Tax"), "",
			valueStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(est.Currency, est.Tax)))))
		body.WriteString(fmt.Sprintf("%-24s %5s %s\n",
			valueStyle.Render("Total"), "",
			greenStyle.Render(fmt.Sprintf("%12s", cli.FormatMoney(est.Currency, est.Total)))))
	} else if a.estimateFetching {
		body.WriteString("\n")
		body.WriteString(mutedStyle.Render(a.spinner.View() + " loading estimate..."))
		body.WriteString("\n")
	} else if a.estimateErr != nil {
		body.WriteString("\n")
		body.WriteString(redStyle.Render("estimate failed: " + a.estimateErr.Error()))
		body.WriteString("\n")
		body.WriteString(mutedStyle.Render("[Enter] retry"))
		body.WriteString("\n")
	} else {
		body.WriteString("\n")
		body.WriteString(mutedStyle.Render("[Enter] load cost estimate"))
		body.WriteString("\n")
	}

	body.WriteString("\n")
	body.WriteString(mutedStyle.Render("[j/k] navigate  [q] quit"))

	return body.String()
}
