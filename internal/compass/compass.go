// Package compass implements the orientation model behind room uploads:
// angle normalization, quadrant snapping, and the rotated wall mapping a
// user confirms before a photo is submitted.
package compass

import "math"

// Cardinal is one of the four compass points.
type Cardinal string

const (
	North Cardinal = "north"
	East  Cardinal = "east"
	South Cardinal = "south"
	West  Cardinal = "west"
)

// cycle lists the cardinals in clockwise order for rotation arithmetic.
var cycle = [4]Cardinal{North, East, South, West}

// Mapping assigns a cardinal to each of the four dial slots. Slots are named
// after their occupants at zero rotation: North is the top slot, East the
// right one, and so on. A Mapping is always a permutation of the four
// cardinals.
type Mapping struct {
	North Cardinal `json:"north"`
	East  Cardinal `json:"east"`
	South Cardinal `json:"south"`
	West  Cardinal `json:"west"`
}

// Identity returns the zero-rotation mapping: each slot holds its namesake.
func Identity() Mapping {
	return Mapping{North: North, East: East, South: South, West: West}
}

// Slots returns the occupants in slot order top, right, bottom, left.
func (m Mapping) Slots() [4]Cardinal {
	return [4]Cardinal{m.North, m.East, m.South, m.West}
}

// Normalize reduces an angle in degrees to the canonical range [0, 360).
// It is a true modulo, so negative inputs wrap upward: Normalize(-30) == 330.
func Normalize(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// Snap rounds deg to the nearest multiple of step and normalizes the result.
// Halfway values round up: Snap(45, 90) == 90, and Snap(315, 90) wraps to 0.
// A non-positive step leaves the angle unsnapped.
func Snap(deg, step float64) float64 {
	if step <= 0 {
		return Normalize(deg)
	}
	return Normalize(math.Round(Normalize(deg)/step) * step)
}

// QuarterTurns reduces deg to a clockwise quarter-turn count in [0,3],
// rounding to the nearest quarter.
func QuarterTurns(deg float64) int {
	return int(math.Round(Normalize(deg)/90)) % 4
}

// FacingCardinal names the compass point nearest to deg, so 0 is north and
// 100 is east.
func FacingCardinal(deg float64) Cardinal {
	return cycle[QuarterTurns(deg)]
}

// MapDirections returns the wall mapping for a facing angle. Turning the
// dial clockwise carries the labels backward past the fixed slots, so at a
// quarter turn the top slot reads west:
//
//	MapDirections(90) == Mapping{North: West, East: North, South: East, West: South}
//
// The result is the identity at 0 and a permutation at every angle.
func MapDirections(deg float64) Mapping {
	steps := QuarterTurns(deg)
	return Mapping{
		North: cycle[(0-steps+4)%4],
		East:  cycle[(1-steps+4)%4],
		South: cycle[(2-steps+4)%4],
		West:  cycle[(3-steps+4)%4],
	}
}
