package components

import (
	"strings"
	"testing"

	"github.com/grihastudio/griha/internal/compass"
)

func TestNeedleFor(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '↑'},
		{44, '↗'},
		{90, '→'},
		{200, '↓'},
		{225, '↙'},
		{315, '↖'},
		{337.5, '↑'}, // rounds up past the last sector and wraps
		{-90, '←'},
	}
	for _, tt := range tests {
		if got := needleFor(tt.angle); got != tt.want {
			t.Errorf("needleFor(%v) = %c, want %c", tt.angle, got, tt.want)
		}
	}
}

func TestDialQuarterTurnSlots(t *testing.T) {
	out := Dial(90, compass.MapDirections(90), false)
	lines := strings.Split(out, "\n")
	if len(lines) != 7 {
		t.Fatalf("dial rendered %d lines, want 7", len(lines))
	}

	// After one quarter turn the plan's north wall faces west.
	if !strings.Contains(lines[0], "W") {
		t.Errorf("top slot should read W: %q", lines[0])
	}
	if !strings.Contains(lines[4], "E") {
		t.Errorf("bottom slot should read E: %q", lines[4])
	}
	if !strings.Contains(lines[2], "S") || !strings.Contains(lines[2], "N") {
		t.Errorf("middle row should carry left S and right N: %q", lines[2])
	}
	if !strings.Contains(lines[2], "→") {
		t.Errorf("needle should point east at 90°: %q", lines[2])
	}
	if !strings.Contains(lines[5], "90°") {
		t.Errorf("info line should show the angle: %q", lines[5])
	}
}

func TestDialIdentityAtZero(t *testing.T) {
	out := Dial(0, compass.Identity(), false)
	lines := strings.Split(out, "\n")

	if !strings.Contains(lines[0], "N") {
		t.Errorf("top slot should read N at rest: %q", lines[0])
	}
	if !strings.Contains(lines[6], "not confirmed") {
		t.Errorf("unlocked dial should say not confirmed: %q", lines[6])
	}
}

func TestDialLocked(t *testing.T) {
	out := Dial(200, compass.MapDirections(200), true)
	lines := strings.Split(out, "\n")

	if !strings.Contains(lines[6], "locked") {
		t.Errorf("confirmed dial should show the lock line: %q", lines[6])
	}
}
