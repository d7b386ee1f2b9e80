package controls

import (
	"math"
	"testing"
)

func TestStickStrength(t *testing.T) {
	tests := []struct {
		raw  int16
		want float32
	}{
		{0, 0},
		{3000, 0},
		{-3000, 0},
		{32767, 1},
		{-32768, -1},
		{-32767, -1},
	}
	for _, tt := range tests {
		got := StickStrength(tt.raw)
		if math.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("StickStrength(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	// Just past the dead zone the output starts near zero.
	edgeF := float32(32767) * (DeadZone + 0.01)
	edge := int16(edgeF)
	if got := StickStrength(edge); got <= 0 || got > 0.05 {
		t.Errorf("StickStrength(%d) = %v, want small positive", edge, got)
	}
}

func TestTriggerStrength(t *testing.T) {
	if got := TriggerStrength(0); got != 0 {
		t.Errorf("TriggerStrength(0) = %v", got)
	}
	if got := TriggerStrength(-5); got != 0 {
		t.Errorf("TriggerStrength(-5) = %v", got)
	}
	if got := TriggerStrength(32767); got != 1 {
		t.Errorf("TriggerStrength(max) = %v", got)
	}
}

func TestGamepadApply(t *testing.T) {
	var st State
	Gamepad{LeftX: 32767, LeftY: 32767, RightX: -32767, RightTrigger: 32767}.Apply(&st)

	var r recorder
	DefaultScheme().Apply(st, &r)

	// Stick down pitches with negative strength, towards Lo.
	want := recorder{roll: 0.05, pitch: 0.05, yaw: 0.05, thrust: 40}
	for name, pair := range map[string][2]float32{
		"roll":   {r.roll, want.roll},
		"pitch":  {r.pitch, want.pitch},
		"yaw":    {r.yaw, want.yaw},
		"thrust": {r.thrust, want.thrust},
	} {
		if math.Abs(float64(pair[0]-pair[1])) > 1e-5 {
			t.Errorf("%s = %v, want %v", name, pair[0], pair[1])
		}
	}
}
