package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/grihastudio/griha/internal/compass"
	"github.com/grihastudio/griha/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// needleGlyphs are 45° sector arrows, clockwise from north.
var needleGlyphs = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// needleFor returns the sector arrow nearest to the given angle.
func needleFor(angle float64) rune {
	idx := int(math.Round(compass.Normalize(angle)/45)) % 8
	return needleGlyphs[idx]
}

// slotLetter returns the display letter for a mapped cardinal.
func slotLetter(c compass.Cardinal) string {
	if c == "" {
		return "?"
	}
	return strings.ToUpper(string(c)[:1])
}

// Dial renders the floor-plan orientation dial: the four plan slots on a
// fixed rose, each labeled with the real-world cardinal it currently faces,
// plus a needle arrow for the facing angle itself. While confirmed the dial
// is drawn with an accent border and a lock line.
func Dial(angle float64, m compass.Mapping, confirmed bool) string {
	t := theme.Active

	borderColor := t.BorderBright
	if confirmed {
		borderColor = t.BorderAccent
	}
	roseStyle := lipgloss.NewStyle().Foreground(borderColor)
	slotStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	needleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	angleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	lockStyle := lipgloss.NewStyle().Foreground(t.Orange)
	openStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	top := slotLetter(m.North)
	right := slotLetter(m.East)
	bottom := slotLetter(m.South)
	left := slotLetter(m.West)
	needle := string(needleFor(angle))
	facing := slotLetter(compass.FacingCardinal(angle))

	var b strings.Builder
	b.WriteString("   " + roseStyle.Render("╭─────") + slotStyle.Render(top) + roseStyle.Render("─────╮"))
	b.WriteString("\n")
	b.WriteString("   " + roseStyle.Render("│") + strings.Repeat(" ", 11) + roseStyle.Render("│"))
	b.WriteString("\n")
	b.WriteString("  " + slotStyle.Render(left) + roseStyle.Render("┤") +
		strings.Repeat(" ", 5) + needleStyle.Render(needle) + strings.Repeat(" ", 5) +
		roseStyle.Render("├") + slotStyle.Render(right))
	b.WriteString("\n")
	b.WriteString("   " + roseStyle.Render("│") + strings.Repeat(" ", 11) + roseStyle.Render("│"))
	b.WriteString("\n")
	b.WriteString("   " + roseStyle.Render("╰─────") + slotStyle.Render(bottom) + roseStyle.Render("─────╯"))
	b.WriteString("\n")
	b.WriteString("     " + angleStyle.Render(fmt.Sprintf("%g°", compass.Normalize(angle))) +
		mutedStyle.Render(" facing ") + angleStyle.Render(facing))
	b.WriteString("\n")
	if confirmed {
		b.WriteString("   " + lockStyle.Render("● confirmed · locked"))
	} else {
		b.WriteString("   " + openStyle.Render("○ not confirmed"))
	}

	return b.String()
}
