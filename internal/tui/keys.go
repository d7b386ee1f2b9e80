package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Faultbox/starfield/internal/controls"
)

// heldKeys approximates key state from a stream of presses. Terminals
// report presses and auto-repeats but never releases, so a key counts as
// held until window has passed since its last press.
type heldKeys struct {
	window time.Duration
	last   map[string]time.Time
}

func newHeldKeys(window time.Duration) *heldKeys {
	return &heldKeys{
		window: window,
		last:   make(map[string]time.Time),
	}
}

func (h *heldKeys) press(key string, now time.Time) {
	h.last[key] = now
}

// state returns the control state for the keys still held at now.
func (h *heldKeys) state(km controls.Keymap, now time.Time) controls.State {
	var st controls.State
	for key, at := range h.last {
		if now.Sub(at) >= h.window {
			delete(h.last, key)
			continue
		}
		km.Press(&st, key)
	}
	return st
}

// keyName normalizes a key message to a controls.Keymap name.
func keyName(msg tea.KeyMsg) string {
	if msg.Type == tea.KeySpace {
		return "space"
	}
	return strings.ToLower(msg.String())
}
