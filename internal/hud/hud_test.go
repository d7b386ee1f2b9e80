package hud

import (
	"math"
	"testing"
	"time"
)

var identity = [9]float32{1, 0, 0, 0, 1, 0, 0, 0, 1}

func TestCompassIdentity(t *testing.T) {
	needles := Compass(identity, 50)

	// Z points into the screen, so it is drawn first.
	if needles[0].Axis != AxisZ {
		t.Fatalf("first needle = %v, want Z", needles[0].Axis)
	}
	byAxis := map[Axis]Needle{}
	for _, n := range needles {
		byAxis[n.Axis] = n
	}
	if n := byAxis[AxisX]; n.X != 50 || n.Y != 0 {
		t.Errorf("X needle = (%v, %v), want (50, 0)", n.X, n.Y)
	}
	// Screen y grows downwards.
	if n := byAxis[AxisY]; n.X != 0 || n.Y != -50 {
		t.Errorf("Y needle = (%v, %v), want (0, -50)", n.X, n.Y)
	}
	if n := byAxis[AxisZ]; n.X != 0 || n.Y != 0 {
		t.Errorf("Z needle = (%v, %v), want (0, 0)", n.X, n.Y)
	}
}

func TestCompassOrder(t *testing.T) {
	vecs := [9]float32{0, 0, 0, 0, 0, 0, -0.5, 0.9, 0.1}
	needles := Compass(vecs, 1)
	want := []Axis{AxisY, AxisZ, AxisX}
	for i, n := range needles {
		if n.Axis != want[i] {
			t.Errorf("needle %d = %v, want %v", i, n.Axis, want[i])
		}
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name string
		z    [3]float32
		want string
	}{
		{"forward", [3]float32{0, 0, 1}, "Forward (Z+)"},
		{"backwards", [3]float32{0.1, 0.2, -0.9}, "Backwards (Z-)"},
		{"right", [3]float32{0.8, 0.1, 0.5}, "Right (X+)"},
		{"left", [3]float32{-0.8, 0.1, 0.5}, "Left (X-)"},
		{"up", [3]float32{0, 0.7, 0.6}, "Up (Y+)"},
		{"down", [3]float32{0, -0.7, 0.6}, "Down (Y-)"},
		{"zero", [3]float32{}, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vecs := [9]float32{6: tt.z[0], 7: tt.z[1], 8: tt.z[2]}
			if got := Heading(vecs); got != tt.want {
				t.Errorf("Heading() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFPSMeter(t *testing.T) {
	start := time.Unix(0, 0)
	m := NewFPSMeter(start)

	if m.FPS() != 0 {
		t.Errorf("FPS() before any bucket closed = %v", m.FPS())
	}

	// 60 frames per second for two seconds.
	frame := time.Second / 60
	now := start
	for i := 0; i < 120; i++ {
		m.Frame(now)
		now = now.Add(frame)
	}
	if got := m.FPS(); math.Abs(got-60) > 4.5 {
		t.Errorf("FPS() = %v, want ~60", got)
	}

	// A long stall closes several empty buckets.
	m.Frame(now.Add(2 * time.Second))
	if got := m.FPS(); got != 0 {
		t.Errorf("FPS() after stall = %v, want 0", got)
	}
}

func TestAxisColors(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		r, g, b := a.RGB()
		for _, c := range []float32{r, g, b} {
			if c < 0 || c > 1 {
				t.Errorf("%v: component %v out of range", a, c)
			}
		}
		seen[a.Hex()] = true
	}
	if len(seen) != 3 {
		t.Error("axis colors are not distinct")
	}
}
