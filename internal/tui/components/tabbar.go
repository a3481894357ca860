package components

import (
	"strings"

	"github.com/grihastudio/griha/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Rooms", Key: 'r', KeyPos: 0},
	{Name: "Upload", Key: 'u', KeyPos: 0},
	{Name: "Designs", Key: 'd', KeyPos: 0},
	{Name: "Vastu", Key: 'v', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

// TabVisualWidth returns the rendered cell width for a tab. Mouse hitboxes
// in the app are computed from the same rules, so any change to the tab
// renderer has to keep this in sync.
func TabVisualWidth(tab Tab, active bool) int {
	w := len(tab.Name) + 2 // one padding space each side
	if !active {
		w += 2 // bracket pair around the shortcut letter
		if tab.KeyPos < 0 {
			w++ // trailing shortcut letter not part of the name
		}
	}
	return w
}

// RenderTabBar renders the single-row tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Accent).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var parts []string
	for i, tab := range Tabs {
		var rendered string
		switch {
		case i == activeIdx:
			rendered = activeStyle.Render(" " + tab.Name + " ")
		case tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name):
			before := tab.Name[:tab.KeyPos]
			key := string(tab.Name[tab.KeyPos])
			after := tab.Name[tab.KeyPos+1:]
			rendered = inactiveStyle.Render(" "+before) +
				dimStyle.Render("[") + keyStyle.Render(key) + dimStyle.Render("]") +
				inactiveStyle.Render(after+" ")
		default:
			// Shortcut letter is not in the name (e.g. "Settings" with 'x')
			rendered = inactiveStyle.Render(" "+tab.Name) +
				dimStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimStyle.Render("]") +
				inactiveStyle.Render(" ")
		}
		parts = append(parts, rendered)
	}

	row := strings.Join(parts, dimStyle.Render("│"))

	// Pad the row out to the full terminal width.
	pad := width - lipgloss.Width(row)
	if pad > 0 {
		row += strings.Repeat(" ", pad)
	}
	return row
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
