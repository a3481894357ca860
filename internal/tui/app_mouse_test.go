package tui

import "testing"

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := 0; active < 5; active++ {
		a := App{activeTab: active}
		pos := 0

		for i := 0; i < 5; i++ {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < 4 {
				pos++ // separator
			}
		}
	}
}

func TestTabAtXPastBarReturnsNone(t *testing.T) {
	a := App{activeTab: 0}
	if got := a.tabAtX(500); got != -1 {
		t.Fatalf("tabAtX(500) = %d, want -1", got)
	}
}

// tabWidthForTest mirrors the tab renderer's width rules independently of
// TabVisualWidth so a regression in either side fails the test.
func tabWidthForTest(tabIdx, activeIdx int) int {
	nameWidths := []int{
		len("Rooms"),
		len("Upload"),
		len("Designs"),
		len("Vastu"),
		len("Settings"),
	}

	w := nameWidths[tabIdx] + 2 // horizontal padding in tab renderer
	if tabIdx != activeIdx {
		w += 2 // bracket pair around the shortcut letter
		if tabIdx == 4 {
			w++ // inactive Settings renders a trailing [x]
		}
	}
	return w
}
