package components

import (
	"strings"
	"testing"

	"github.com/grihastudio/griha/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
	theme.SetActive("flexoki-dark")
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	tests := []struct {
		total int
		n     int
	}{
		{100, 3},
		{99, 4},
		{7, 2},
		{10, 1},
	}
	for _, tt := range tests {
		widths := LayoutRow(tt.total, tt.n)
		if len(widths) != tt.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tt.total, tt.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tt.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tt.total, tt.n, sum)
		}
	}
}

func TestCardRowHeightAndWidth(t *testing.T) {
	short := ContentCard("Short", "one line", 24)
	tall := ContentCard("Tall", "a\nb\nc\nd\ne", 30)

	joined := CardRow([]string{tall, short})
	lines := strings.Split(joined, "\n")

	tallLines := len(strings.Split(tall, "\n"))
	if len(lines) != tallLines {
		t.Errorf("joined height = %d, want tallest card height %d", len(lines), tallLines)
	}

	for i, line := range lines {
		if w := lipgloss.Width(line); w != 54 {
			t.Errorf("line %d width = %d, want 54", i, w)
		}
	}
}

func TestContentCardWidth(t *testing.T) {
	card := ContentCard("Title", "body", 40)
	for i, line := range strings.Split(card, "\n") {
		if w := lipgloss.Width(line); w != 40 {
			t.Errorf("line %d width = %d, want 40", i, w)
		}
	}
}

func TestMetricCardRow(t *testing.T) {
	metrics := []Metric{
		{Label: "Rooms", Value: "4", Note: "2 this week"},
		{Label: "Designs", Value: "12"},
		{Label: "Jobs", Value: "1 active"},
	}
	row := MetricCardRow(metrics, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
	if !strings.Contains(row, "Rooms") || !strings.Contains(row, "1 active") {
		t.Error("metric row is missing label or value text")
	}
}

func TestRenderTabBarWidthMatchesHitboxes(t *testing.T) {
	for active := range Tabs {
		row := RenderTabBar(active, 0)

		want := len(Tabs) - 1 // separators
		for i, tab := range Tabs {
			want += TabVisualWidth(tab, i == active)
		}

		if got := lipgloss.Width(row); got != want {
			t.Errorf("active=%d: rendered width %d, want %d from TabVisualWidth", active, got, want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('u'); got != 1 {
		t.Errorf("TabIdxByKey('u') = %d, want 1", got)
	}
	if got := TabIdxByKey('x'); got != 4 {
		t.Errorf("TabIdxByKey('x') = %d, want 4", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestProgressBar(t *testing.T) {
	out := ProgressBar(0.5, 10)
	if !strings.Contains(out, "50%") {
		t.Errorf("ProgressBar(0.5) missing percentage: %q", out)
	}
}

func TestQuotaBar(t *testing.T) {
	out := QuotaBar("Rooms", 3, 10, 8, 20)
	if !strings.Contains(out, "3/10") {
		t.Errorf("QuotaBar missing count: %q", out)
	}
}

func TestScoreBars(t *testing.T) {
	labels := []string{"NE", "SW", "Center"}
	scores := []int{82, 41, 67}

	out := ScoreBars(labels, scores, 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("ScoreBars rendered %d lines, want 3", len(lines))
	}
	if !strings.Contains(lines[0], "82") {
		t.Errorf("first bar missing score: %q", lines[0])
	}
	if !strings.Contains(lines[2], "Center") {
		t.Errorf("last bar missing label: %q", lines[2])
	}
}

func TestScoreBarsMismatchedInput(t *testing.T) {
	if out := ScoreBars([]string{"NE"}, []int{10, 20}, 40); out != "" {
		t.Errorf("mismatched input should render nothing, got %q", out)
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 1, 2, 4}, lipgloss.Color("#FFFFFF"))
	if out == "" {
		t.Fatal("Sparkline returned empty string")
	}
	if !strings.Contains(out, "█") {
		t.Error("peak value should render a full block")
	}
	if Sparkline(nil, lipgloss.Color("#FFFFFF")) != "" {
		t.Error("empty input should render nothing")
	}
}
