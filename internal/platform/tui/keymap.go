package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dash-arena/internal/core"
)

// KeyMap defines the arena key bindings.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Dash    key.Binding
	Start   key.Binding
	Pause   key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Dash, k.Start, k.Pause, k.Restart, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Dash, k.Start, k.Pause, k.Restart, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("wasd/arrows", "move"),
		),
		Down:  key.NewBinding(key.WithKeys("s", "down")),
		Left:  key.NewBinding(key.WithKeys("a", "left")),
		Right: key.NewBinding(key.WithKeys("d", "right")),
		Dash: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "dash"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "esc"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to an action.
// Movement actions are held; the rest are one-shot edges.
func (k KeyMap) MapKey(msg tea.KeyMsg) (action core.Action, held bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, false
	case key.Matches(msg, k.Up):
		return core.ActionUp, true
	case key.Matches(msg, k.Down):
		return core.ActionDown, true
	case key.Matches(msg, k.Left):
		return core.ActionLeft, true
	case key.Matches(msg, k.Right):
		return core.ActionRight, true
	case key.Matches(msg, k.Dash):
		return core.ActionDash, false
	case key.Matches(msg, k.Start):
		return core.ActionStart, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// Hold windows for HeldKeys. Terminals report key presses but never
// releases, so a key counts as held until its auto-repeat stops arriving.
// The first press waits out the OS repeat delay; later repeats are dense.
const (
	InitialHoldWindow = 500 * time.Millisecond
	RepeatHoldWindow  = 120 * time.Millisecond
)

type heldKey struct {
	last      time.Time
	repeating bool
}

// HeldKeys reconstructs held-key state from key press events.
type HeldKeys struct {
	keys map[core.Action]heldKey
}

// NewHeldKeys creates an empty tracker.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{keys: make(map[core.Action]heldKey)}
}

// Press records a press (or auto-repeat) of a at now.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	prev, ok := h.keys[a]
	repeating := ok && now.Sub(prev.last) <= h.window(prev)
	h.keys[a] = heldKey{last: now, repeating: repeating}
}

// Fill sets every action still held at now on frame and forgets expired ones.
func (h *HeldKeys) Fill(frame *core.InputFrame, now time.Time) {
	for a, k := range h.keys {
		if now.Sub(k.last) > h.window(k) {
			delete(h.keys, a)
			continue
		}
		frame.Set(a)
	}
}

// Release forgets every held key.
func (h *HeldKeys) Release() {
	clear(h.keys)
}

func (h *HeldKeys) window(k heldKey) time.Duration {
	if k.repeating {
		return RepeatHoldWindow
	}
	return InitialHoldWindow
}
