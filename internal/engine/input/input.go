// Package input handles SDL2 input events and turns keyboard and game
// controller state into flight controls.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/starfield/internal/controls"
	"github.com/Faultbox/starfield/internal/logger"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// keyNames maps scancodes to controls.Keymap key names.
var keyNames = map[sdl.Scancode]string{
	sdl.SCANCODE_W:      "w",
	sdl.SCANCODE_A:      "a",
	sdl.SCANCODE_S:      "s",
	sdl.SCANCODE_D:      "d",
	sdl.SCANCODE_Q:      "q",
	sdl.SCANCODE_E:      "e",
	sdl.SCANCODE_C:      "c",
	sdl.SCANCODE_SPACE:  "space",
	sdl.SCANCODE_LSHIFT: "shift",
	sdl.SCANCODE_RSHIFT: "shift",
}

// Input handles all input processing.
type Input struct {
	events     []Event
	keymap     controls.Keymap
	controller *sdl.GameController
}

// New creates a new input handler using keymap for flight keys.
func New(keymap controls.Keymap) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		keymap: keymap,
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.ControllerDeviceEvent:
			i.handleController(e)
		}
	}

	return false
}

func (i *Input) handleController(e *sdl.ControllerDeviceEvent) {
	switch e.Type {
	case sdl.CONTROLLERDEVICEADDED:
		if i.controller != nil {
			return
		}
		gc := sdl.GameControllerOpen(int(e.Which))
		if gc == nil {
			logger.Warn("failed to open game controller", zap.Int32("index", int32(e.Which)))
			return
		}
		i.controller = gc
		logger.Info("game controller connected", zap.String("name", gc.Name()))

	case sdl.CONTROLLERDEVICEREMOVED:
		if i.controller == nil {
			return
		}
		if i.controller.Joystick().InstanceID() == sdl.JoystickID(e.Which) {
			logger.Info("game controller disconnected")
			i.controller.Close()
			i.controller = nil
		}
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Controls returns the flight control state: held keys from the keyboard
// and analog strengths from the open game controller, if any.
func (i *Input) Controls() controls.State {
	var st controls.State

	keys := sdl.GetKeyboardState()
	for sc, name := range keyNames {
		if int(sc) < len(keys) && keys[sc] != 0 {
			i.keymap.Press(&st, name)
		}
	}

	if gc := i.controller; gc != nil {
		controls.Gamepad{
			LeftX:        gc.Axis(sdl.CONTROLLER_AXIS_LEFTX),
			LeftY:        gc.Axis(sdl.CONTROLLER_AXIS_LEFTY),
			RightX:       gc.Axis(sdl.CONTROLLER_AXIS_RIGHTX),
			LeftTrigger:  gc.Axis(sdl.CONTROLLER_AXIS_TRIGGERLEFT),
			RightTrigger: gc.Axis(sdl.CONTROLLER_AXIS_TRIGGERRIGHT),
		}.Apply(&st)
	}
	return st
}

// Close releases the game controller.
func (i *Input) Close() {
	if i.controller != nil {
		i.controller.Close()
		i.controller = nil
	}
}
