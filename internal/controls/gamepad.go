package controls

// DeadZone is the fraction of stick travel ignored around the center.
const DeadZone float32 = 0.15

// StickStrength converts a raw stick axis reading to [-1, 1], with the
// dead zone removed and the remaining travel rescaled.
func StickStrength(raw int16) float32 {
	v := float32(raw) / 32767
	v = max(-1, min(1, v))
	switch {
	case v > DeadZone:
		return (v - DeadZone) / (1 - DeadZone)
	case v < -DeadZone:
		return (v + DeadZone) / (1 - DeadZone)
	default:
		return 0
	}
}

// TriggerStrength converts a raw trigger reading to [0, 1].
func TriggerStrength(raw int16) float32 {
	if raw <= 0 {
		return 0
	}
	return float32(raw) / 32767
}

// Gamepad is one frame of controller axes in raw units.
type Gamepad struct {
	LeftX, LeftY int16
	RightX       int16
	LeftTrigger  int16
	RightTrigger int16
}

// Apply sets the analog strength of every control from g: yaw on the left
// stick's x, pitch on its inverted y, roll on the right stick's x and
// thrust on the right trigger minus the left.
func (g Gamepad) Apply(st *State) {
	st.SetStrength(Yaw, StickStrength(g.LeftX))
	st.SetStrength(Pitch, -StickStrength(g.LeftY))
	st.SetStrength(Roll, StickStrength(g.RightX))
	st.SetStrength(Thrust, TriggerStrength(g.RightTrigger)-TriggerStrength(g.LeftTrigger))
}
