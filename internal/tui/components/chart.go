package components

import (
	"fmt"
	"strings"

	"github.com/grihastudio/griha/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// scoreColor maps a 0-100 score to a verdict color: high scores are good.
func scoreColor(score int) lipgloss.Color {
	t := theme.Active
	switch {
	case score >= 75:
		return t.Green
	case score >= 50:
		return t.Yellow
	case score >= 25:
		return t.Orange
	default:
		return t.Red
	}
}

// ScoreBars renders one horizontal bar per label, scaled to a fixed 0-100
// range and colored by score band. Used for vastu zone scores.
func ScoreBars(labels []string, scores []int, width int) string {
	if len(labels) == 0 || len(labels) != len(scores) {
		return ""
	}
	t := theme.Active

	labelW := 0
	for _, l := range labels {
		if len(l) > labelW {
			labelW = len(l)
		}
	}

	// label + space + bar + space + 3-digit score
	barMax := width - labelW - 6
	if barMax < 4 {
		barMax = 4
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	var b strings.Builder
	for i, l := range labels {
		score := scores[i]
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		barLen := score * barMax / 100

		color := scoreColor(score)
		barStyle := lipgloss.NewStyle().Foreground(color)
		numStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", labelW, l)))
		b.WriteString(" ")
		b.WriteString(barStyle.Render(strings.Repeat("█", barLen)))
		b.WriteString(barStyle.Render(strings.Repeat("░", barMax-barLen)))
		b.WriteString(" ")
		b.WriteString(numStyle.Render(fmt.Sprintf("%3d", score)))
		if i < len(labels)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}
