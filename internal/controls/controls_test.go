package controls

import (
	"errors"
	"math"
	"testing"
)

func TestAxisResolve(t *testing.T) {
	thrust := DefaultScheme().Thrust

	tests := []struct {
		name     string
		lo, hi   bool
		strength float32
		want     float32
	}{
		{"nothing held", false, false, 0, 2},
		{"lo held", true, false, 0, -40},
		{"hi held", false, true, 0, 40},
		{"both held", true, true, 0, 2},
		{"keys beat analog", true, false, 1, -40},
		{"full forward", false, false, 1, 40},
		{"full back", false, false, -1, -40},
		{"half forward", false, false, 0.5, 21},
		{"half back", false, false, -0.5, -19},
		{"clamped high", false, false, 3, 40},
		{"clamped low", false, false, -3, -40},
		{"nan", false, false, float32(math.NaN()), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := thrust.Resolve(tt.lo, tt.hi, tt.strength)
			if math.Abs(float64(got-tt.want)) > 1e-4 {
				t.Errorf("Resolve(%v, %v, %v) = %v, want %v", tt.lo, tt.hi, tt.strength, got, tt.want)
			}
		})
	}
}

func TestAxisResolveInverted(t *testing.T) {
	// Roll runs from positive Lo to negative Hi.
	roll := DefaultScheme().Roll
	if got := roll.Resolve(false, false, -1); got != 0.05 {
		t.Errorf("full negative strength = %v, want Lo 0.05", got)
	}
	if got := roll.Resolve(false, false, 1); got != -0.05 {
		t.Errorf("full positive strength = %v, want Hi -0.05", got)
	}
}

type recorder struct {
	roll, pitch, yaw, thrust float32
}

func (r *recorder) SetCameraRollVel(v float32)  { r.roll = v }
func (r *recorder) SetCameraPitchVel(v float32) { r.pitch = v }
func (r *recorder) SetCameraYawVel(v float32)   { r.yaw = v }
func (r *recorder) SetThrust(v float32)         { r.thrust = v }

func TestSchemeApply(t *testing.T) {
	var st State
	DesktopKeys.Press(&st, "w")
	DesktopKeys.Press(&st, "a")
	DesktopKeys.Press(&st, "q")
	DesktopKeys.Press(&st, "e")
	st.SetStrength(Thrust, 1)

	var r recorder
	DefaultScheme().Apply(st, &r)

	want := recorder{roll: 0, pitch: -0.05, yaw: -0.05, thrust: 40}
	if r != want {
		t.Errorf("Apply() = %+v, want %+v", r, want)
	}

	st.Reset()
	DefaultScheme().Apply(st, &r)
	if want := (recorder{thrust: 2}); r != want {
		t.Errorf("Apply() after Reset = %+v, want %+v", r, want)
	}
}

func TestKeymaps(t *testing.T) {
	for name, km := range map[string]Keymap{"desktop": DesktopKeys, "terminal": TerminalKeys} {
		t.Run(name, func(t *testing.T) {
			seen := make(map[Binding]string)
			for key, b := range km {
				if prev, dup := seen[b]; dup {
					t.Errorf("%s and %s both bound to %v hi=%v", prev, key, b.Control, b.Hi)
				}
				seen[b] = key
			}
			if len(seen) != 2*len(Controls) {
				t.Errorf("%d bindings, want %d", len(seen), 2*len(Controls))
			}
		})
	}

	var st State
	if TerminalKeys.Press(&st, "shift") {
		t.Error("terminal keymap should not bind shift")
	}
	if !TerminalKeys.Press(&st, "space") || !st[Thrust].Hi {
		t.Error("space should raise thrust")
	}
}

func TestSchemeValidate(t *testing.T) {
	if err := DefaultScheme().Validate(); err != nil {
		t.Fatalf("default scheme: %v", err)
	}
	s := DefaultScheme()
	s.Yaw.Hi = float32(math.Inf(1))
	if err := s.Validate(); !errors.Is(err, ErrInvalidAxis) {
		t.Errorf("Validate() = %v, want ErrInvalidAxis", err)
	}
}

func TestControlString(t *testing.T) {
	names := []string{"roll", "pitch", "yaw", "thrust"}
	for i, c := range Controls {
		if c.String() != names[i] {
			t.Errorf("Controls[%d].String() = %q, want %q", i, c.String(), names[i])
		}
	}
}
