package compass

import (
	"math"
	"time"
)

// State is the orientation selection for a single upload flow: the dial
// angle, the confirmation lock, and an advisory timestamp of the last
// change. The zero value is ready to use (angle 0, unlocked). Each upload
// flow owns its own State; the package keeps no shared instance.
type State struct {
	angle     float64
	confirmed bool
	updated   time.Time
}

// NewState returns an unlocked state at angle 0.
func NewState() *State {
	return &State{}
}

// SetAngle turns the dial to deg, normalized into [0, 360). While the
// selection is confirmed the dial is locked and the call is ignored.
func (s *State) SetAngle(deg float64) {
	if s.confirmed {
		return
	}
	s.angle = Normalize(deg)
	s.updated = time.Now()
}

// Rotate adjusts the current angle by delta degrees. Ignored while locked.
func (s *State) Rotate(delta float64) {
	s.SetAngle(s.angle + delta)
}

// SnapTo rounds the current angle to the nearest multiple of step.
// Ignored while locked.
func (s *State) SnapTo(step float64) {
	s.SetAngle(Snap(s.angle, step))
}

// Confirm locks the selection at the current angle. SetAngle, Rotate and
// SnapTo are ignored until Reset.
func (s *State) Confirm() {
	s.confirmed = true
	s.updated = time.Now()
}

// Reset unlocks the selection and returns the dial to angle 0.
func (s *State) Reset() {
	s.angle = 0
	s.confirmed = false
	s.updated = time.Now()
}

// Angle reports the current dial angle in [0, 360).
func (s *State) Angle() float64 { return s.angle }

// Confirmed reports whether the selection is locked.
func (s *State) Confirmed() bool { return s.confirmed }

// Mapping reports the wall mapping at the current angle.
func (s *State) Mapping() Mapping { return MapDirections(s.angle) }

// LastUpdated reports when the state last changed. Display only; no
// ordering logic hangs off it.
func (s *State) LastUpdated() time.Time { return s.updated }

// FacingAngle reports the angle rounded to a whole degree for submission,
// wrapped so 359.6 rounds to 0 rather than 360.
func (s *State) FacingAngle() int {
	return int(math.Round(s.angle)) % 360
}
