// Package controls maps digital and analog input to camera rates.
package controls

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// ErrInvalidAxis is returned by Validate for an axis with non-finite values.
var ErrInvalidAxis = errors.New("invalid control axis")

// Control identifies one of the flight controls.
type Control int

const (
	Roll Control = iota
	Pitch
	Yaw
	Thrust

	numControls
)

// Controls lists every control in application order.
var Controls = [numControls]Control{Roll, Pitch, Yaw, Thrust}

func (c Control) String() string {
	switch c {
	case Roll:
		return "roll"
	case Pitch:
		return "pitch"
	case Yaw:
		return "yaw"
	case Thrust:
		return "thrust"
	default:
		return fmt.Sprintf("control(%d)", int(c))
	}
}

// Axis is the value range of one control. Lo and Hi are the values while
// only the lo or hi key is held; Normal is the resting value.
type Axis struct {
	Lo     float32 `yaml:"lo"`
	Hi     float32 `yaml:"hi"`
	Normal float32 `yaml:"normal"`
}

// Resolve returns the axis value for the given key state and analog
// strength. Keys win over the analog input; holding both keys gives Normal.
// strength is clamped to [-1, 1].
func (a Axis) Resolve(lo, hi bool, strength float32) float32 {
	switch {
	case lo && hi:
		return a.Normal
	case lo:
		return a.Lo
	case hi:
		return a.Hi
	}

	if math32.IsNaN(strength) {
		return a.Normal
	}
	strength = max(-1, min(1, strength))
	switch {
	case strength < 0:
		return a.Normal + (a.Normal-a.Lo)*strength
	case strength > 0:
		return a.Normal + (a.Hi-a.Normal)*strength
	default:
		return a.Normal
	}
}

func (a Axis) validate() error {
	for _, v := range [...]float32{a.Lo, a.Hi, a.Normal} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return ErrInvalidAxis
		}
	}
	return nil
}

// Input is the raw state of one control for a frame.
type Input struct {
	Lo       bool
	Hi       bool
	Strength float32
}

// State holds the input of every control for a frame.
type State [numControls]Input

// Press marks the lo or hi key of c as held.
func (s *State) Press(c Control, hi bool) {
	if hi {
		s[c].Hi = true
	} else {
		s[c].Lo = true
	}
}

// SetStrength sets the analog strength of c.
func (s *State) SetStrength(c Control, strength float32) {
	s[c].Strength = strength
}

// Reset clears all input.
func (s *State) Reset() {
	*s = State{}
}

// Target receives the resolved control values.
type Target interface {
	SetCameraRollVel(rate float32)
	SetCameraPitchVel(rate float32)
	SetCameraYawVel(rate float32)
	SetThrust(value float32)
}

// Scheme is the set of axes for all controls.
type Scheme struct {
	Roll   Axis `yaml:"roll"`
	Pitch  Axis `yaml:"pitch"`
	Yaw    Axis `yaml:"yaw"`
	Thrust Axis `yaml:"thrust"`
}

// DefaultScheme returns the stock flight controls.
func DefaultScheme() Scheme {
	return Scheme{
		Roll:   Axis{Lo: 0.05, Hi: -0.05, Normal: 0},
		Pitch:  Axis{Lo: 0.05, Hi: -0.05, Normal: 0},
		Yaw:    Axis{Lo: -0.05, Hi: 0.05, Normal: 0},
		Thrust: Axis{Lo: -40, Hi: 40, Normal: 2},
	}
}

// Axis returns the axis of c.
func (s Scheme) Axis(c Control) Axis {
	switch c {
	case Roll:
		return s.Roll
	case Pitch:
		return s.Pitch
	case Yaw:
		return s.Yaw
	default:
		return s.Thrust
	}
}

// Resolve returns the value of every control for st.
func (s Scheme) Resolve(st State) [numControls]float32 {
	var out [numControls]float32
	for _, c := range Controls {
		in := st[c]
		out[c] = s.Axis(c).Resolve(in.Lo, in.Hi, in.Strength)
	}
	return out
}

// Apply resolves st and pushes the values into t.
func (s Scheme) Apply(st State, t Target) {
	v := s.Resolve(st)
	t.SetCameraRollVel(v[Roll])
	t.SetCameraPitchVel(v[Pitch])
	t.SetCameraYawVel(v[Yaw])
	t.SetThrust(v[Thrust])
}

// Validate checks that every axis holds finite values.
func (s Scheme) Validate() error {
	for _, c := range Controls {
		if err := s.Axis(c).validate(); err != nil {
			return fmt.Errorf("%w: %s", err, c)
		}
	}
	return nil
}
