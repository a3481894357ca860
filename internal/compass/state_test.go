package compass

import "testing"

func TestStateZeroValue(t *testing.T) {
	var st State
	if st.Angle() != 0 {
		t.Errorf("zero state angle = %v, want 0", st.Angle())
	}
	if st.Confirmed() {
		t.Error("zero state is confirmed, want unlocked")
	}
	if st.Mapping() != Identity() {
		t.Errorf("zero state mapping = %+v, want identity", st.Mapping())
	}
	if !st.LastUpdated().IsZero() {
		t.Error("zero state has a LastUpdated timestamp")
	}
}

func TestSetAngleNormalizes(t *testing.T) {
	st := NewState()
	st.SetAngle(-30)
	if st.Angle() != 330 {
		t.Errorf("after SetAngle(-30): angle = %v, want 330", st.Angle())
	}
	st.SetAngle(450)
	if st.Angle() != 90 {
		t.Errorf("after SetAngle(450): angle = %v, want 90", st.Angle())
	}
	if st.LastUpdated().IsZero() {
		t.Error("SetAngle did not touch LastUpdated")
	}
}

func TestConfirmLocksDial(t *testing.T) {
	st := NewState()
	st.SetAngle(200)
	st.Confirm()
	if !st.Confirmed() {
		t.Fatal("Confirm did not lock the state")
	}
	locked := st.Mapping()

	// All mutation paths are inert while locked.
	st.SetAngle(10)
	st.Rotate(45)
	st.SnapTo(90)
	if st.Angle() != 200 {
		t.Errorf("locked angle moved to %v, want 200", st.Angle())
	}
	if st.Mapping() != locked {
		t.Errorf("locked mapping changed to %+v, want %+v", st.Mapping(), locked)
	}

	st.Reset()
	if st.Confirmed() {
		t.Error("Reset left the state locked")
	}
	if st.Angle() != 0 {
		t.Errorf("after Reset: angle = %v, want 0", st.Angle())
	}
	if st.Mapping() != Identity() {
		t.Errorf("after Reset: mapping = %+v, want identity", st.Mapping())
	}

	// Unlocked again: the dial turns.
	st.SetAngle(10)
	if st.Angle() != 10 {
		t.Errorf("after unlock, SetAngle(10): angle = %v, want 10", st.Angle())
	}
}

func TestRotateAccumulates(t *testing.T) {
	st := NewState()
	st.Rotate(50)
	st.Rotate(50)
	if st.Angle() != 100 {
		t.Errorf("after two Rotate(50): angle = %v, want 100", st.Angle())
	}
	st.Rotate(-130)
	if st.Angle() != 330 {
		t.Errorf("Rotate past zero: angle = %v, want 330", st.Angle())
	}
}

func TestSnapTo(t *testing.T) {
	st := NewState()
	st.SetAngle(130)
	st.SnapTo(90)
	if st.Angle() != 90 {
		t.Errorf("SnapTo(90) from 130: angle = %v, want 90", st.Angle())
	}
	if st.Mapping() != MapDirections(90) {
		t.Errorf("mapping after snap = %+v, want quarter turn", st.Mapping())
	}
}

func TestConfirmIsIdempotent(t *testing.T) {
	st := NewState()
	st.SetAngle(90)
	st.Confirm()
	st.Confirm()
	if !st.Confirmed() || st.Angle() != 90 {
		t.Errorf("double Confirm: confirmed=%v angle=%v, want locked at 90", st.Confirmed(), st.Angle())
	}
}

func TestFacingAngle(t *testing.T) {
	tests := []struct {
		set  float64
		want int
	}{
		{0, 0},
		{200.4, 200},
		{200.5, 201},
		{359.4, 359},
		{359.6, 0},
		{-30, 330},
	}
	for _, tt := range tests {
		st := NewState()
		st.SetAngle(tt.set)
		if got := st.FacingAngle(); got != tt.want {
			t.Errorf("FacingAngle after SetAngle(%v) = %d, want %d", tt.set, got, tt.want)
		}
	}
}

// Two flows never share dial state.
func TestStatesAreIndependent(t *testing.T) {
	a, b := NewState(), NewState()
	a.SetAngle(90)
	a.Confirm()
	if b.Confirmed() || b.Angle() != 0 {
		t.Errorf("second state affected by first: confirmed=%v angle=%v", b.Confirmed(), b.Angle())
	}
}
