package controls

// Binding ties a key to one end of a control.
type Binding struct {
	Control Control
	Hi      bool
}

// Keymap maps lower-case key names to bindings.
type Keymap map[string]Binding

// DesktopKeys is the keyboard layout for windowed hosts.
var DesktopKeys = Keymap{
	"s":     {Pitch, false},
	"w":     {Pitch, true},
	"a":     {Yaw, false},
	"d":     {Yaw, true},
	"q":     {Roll, false},
	"e":     {Roll, true},
	"c":     {Thrust, false},
	"shift": {Thrust, true},
}

// TerminalKeys replaces shift with space, since terminals do not report
// modifier keys on their own.
var TerminalKeys = Keymap{
	"s":     {Pitch, false},
	"w":     {Pitch, true},
	"a":     {Yaw, false},
	"d":     {Yaw, true},
	"q":     {Roll, false},
	"e":     {Roll, true},
	"c":     {Thrust, false},
	"space": {Thrust, true},
}

// Press marks key as held in st. It reports whether key is bound.
func (k Keymap) Press(st *State, key string) bool {
	b, ok := k[key]
	if !ok {
		return false
	}
	st.Press(b.Control, b.Hi)
	return true
}
