package compass

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{90, 90},
		{200, 200},
		{359.5, 359.5},
		{360, 0},
		{450, 90},
		{720, 0},
		{-30, 330},
		{-90, 270},
		{-360, 0},
		{-0.5, 359.5},
		{1080.25, 0.25},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, deg := range []float64{-721, -360, -30, -0.5, 0, 44.9, 180, 359.9, 360, 1234} {
		once := Normalize(deg)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%v)) = %v, want %v", deg, twice, once)
		}
		if once < 0 || once >= 360 {
			t.Errorf("Normalize(%v) = %v, outside [0,360)", deg, once)
		}
	}
}

func TestNormalizePeriodic(t *testing.T) {
	// Whole-degree inputs keep float arithmetic exact across full turns.
	for deg := -720.0; deg <= 720; deg++ {
		base := Normalize(deg)
		for _, k := range []float64{-2, -1, 1, 3} {
			if got := Normalize(deg + 360*k); got != base {
				t.Fatalf("Normalize(%v) = %v, want %v (same as Normalize(%v))", deg+360*k, got, base, deg)
			}
		}
	}
}

func TestSnap(t *testing.T) {
	tests := []struct {
		deg  float64
		step float64
		want float64
	}{
		{0, 90, 0},
		{44, 90, 0},
		{44.9, 90, 0},
		{46, 90, 90},
		{89, 90, 90},
		{91, 90, 90},
		{134, 90, 90},
		{136, 90, 180},
		{200, 90, 180},
		{226, 90, 270},
		{300, 90, 270},
		{316, 90, 0},
		{359, 90, 0},
		{-30, 90, 0},
		{-50, 90, 270},
		{22, 45, 0},
		{23, 45, 45},
		{100, 45, 90},
	}
	for _, tt := range tests {
		if got := Snap(tt.deg, tt.step); got != tt.want {
			t.Errorf("Snap(%v, %v) = %v, want %v", tt.deg, tt.step, got, tt.want)
		}
	}
}

// Halfway values round up. Uploaded rooms store the snapped angle, so this
// convention has to stay stable across releases.
func TestSnapHalfwayRoundsUp(t *testing.T) {
	tests := []struct {
		deg  float64
		want float64
	}{
		{45, 90},
		{135, 180},
		{225, 270},
		{315, 0},
	}
	for _, tt := range tests {
		if got := Snap(tt.deg, 90); got != tt.want {
			t.Errorf("Snap(%v, 90) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestSnapNonPositiveStep(t *testing.T) {
	if got := Snap(123.4, 0); got != 123.4 {
		t.Errorf("Snap(123.4, 0) = %v, want 123.4", got)
	}
	if got := Snap(-30, -90); got != 330 {
		t.Errorf("Snap(-30, -90) = %v, want 330", got)
	}
}

func TestSnapIdempotent(t *testing.T) {
	for deg := 0.0; deg < 360; deg += 7.3 {
		once := Snap(deg, 90)
		if twice := Snap(once, 90); twice != once {
			t.Errorf("Snap(Snap(%v)) = %v, want %v", deg, twice, once)
		}
	}
}

func TestMapDirectionsIdentityAtZero(t *testing.T) {
	if got := MapDirections(0); got != Identity() {
		t.Errorf("MapDirections(0) = %+v, want identity", got)
	}
}

func TestMapDirectionsQuarterTurn(t *testing.T) {
	want := Mapping{North: West, East: North, South: East, West: South}
	if got := MapDirections(90); got != want {
		t.Errorf("MapDirections(90) = %+v, want %+v", got, want)
	}
}

func TestMapDirections(t *testing.T) {
	tests := []struct {
		deg  float64
		want Mapping
	}{
		{0, Identity()},
		{44, Identity()},
		{45, Mapping{North: West, East: North, South: East, West: South}},
		{90, Mapping{North: West, East: North, South: East, West: South}},
		{180, Mapping{North: South, East: West, South: North, West: East}},
		{200, Mapping{North: South, East: West, South: North, West: East}},
		{270, Mapping{North: East, East: South, South: West, West: North}},
		{315, Identity()},
		{330, Identity()},
		{-90, Mapping{North: East, East: South, South: West, West: North}},
		{450, Mapping{North: West, East: North, South: East, West: South}},
	}
	for _, tt := range tests {
		if got := MapDirections(tt.deg); got != tt.want {
			t.Errorf("MapDirections(%v) = %+v, want %+v", tt.deg, got, tt.want)
		}
	}
}

func TestMapDirectionsPermutation(t *testing.T) {
	for deg := -360.0; deg <= 720; deg += 13.7 {
		m := MapDirections(deg)
		seen := map[Cardinal]bool{}
		for _, c := range m.Slots() {
			if seen[c] {
				t.Fatalf("MapDirections(%v) repeats %s: %+v", deg, c, m)
			}
			seen[c] = true
		}
		if len(seen) != 4 {
			t.Fatalf("MapDirections(%v) covers %d cardinals: %+v", deg, len(seen), m)
		}
	}
}

func TestMapDirectionsPeriodic(t *testing.T) {
	for deg := 0.0; deg < 360; deg++ {
		base := MapDirections(deg)
		if got := MapDirections(deg + 720); got != base {
			t.Errorf("MapDirections(%v+720) = %+v, want %+v", deg, got, base)
		}
		if got := MapDirections(deg - 360); got != base {
			t.Errorf("MapDirections(%v-360) = %+v, want %+v", deg, got, base)
		}
	}
}

func TestQuarterTurns(t *testing.T) {
	tests := []struct {
		deg  float64
		want int
	}{
		{0, 0},
		{44, 0},
		{45, 1},
		{90, 1},
		{180, 2},
		{269, 3},
		{315, 0},
		{-90, 3},
	}
	for _, tt := range tests {
		if got := QuarterTurns(tt.deg); got != tt.want {
			t.Errorf("QuarterTurns(%v) = %d, want %d", tt.deg, got, tt.want)
		}
	}
}

func FuzzNormalize(f *testing.F) {
	for _, seed := range []float64{0, 45, -30, 359.999, 360, -360, 1e9, -1e9, 0.0001} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, deg float64) {
		if math.IsNaN(deg) || math.IsInf(deg, 0) {
			return
		}
		got := Normalize(deg)
		if got < 0 || got >= 360 {
			t.Fatalf("Normalize(%v) = %v, outside [0,360)", deg, got)
		}
		if again := Normalize(got); again != got {
			t.Fatalf("Normalize(%v) not idempotent: %v then %v", deg, got, again)
		}
	})
}
