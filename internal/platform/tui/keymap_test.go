package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/dash-arena/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		held     bool
	}{
		{"w", runeKey('w'), core.ActionUp, true},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, true},
		{"s", runeKey('s'), core.ActionDown, true},
		{"a", runeKey('a'), core.ActionLeft, true},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionDash, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart, false},
		{"p", runeKey('p'), core.ActionPause, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"r", runeKey('r'), core.ActionRestart, false},
		{"q", runeKey('q'), core.ActionQuit, false},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, false},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, held := keys.MapKey(tt.msg)
			if action != tt.expected || held != tt.held {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.msg.String(), action, held, tt.expected, tt.held)
			}
		})
	}
}

func TestHeldKeysSinglePress(t *testing.T) {
	h := NewHeldKeys()
	t0 := time.Unix(100, 0)
	h.Press(core.ActionLeft, t0)

	frame := core.NewInputFrame()
	h.Fill(&frame, t0.Add(InitialHoldWindow))
	if !frame.Has(core.ActionLeft) {
		t.Error("key should be held through the initial window")
	}

	frame = core.NewInputFrame()
	h.Fill(&frame, t0.Add(InitialHoldWindow+time.Millisecond))
	if frame.Has(core.ActionLeft) {
		t.Error("key should be released after the initial window")
	}
}

func TestHeldKeysRepeatWindow(t *testing.T) {
	h := NewHeldKeys()
	t0 := time.Unix(100, 0)
	h.Press(core.ActionUp, t0)
	t1 := t0.Add(450 * time.Millisecond)
	h.Press(core.ActionUp, t1) // OS auto-repeat kicks in

	frame := core.NewInputFrame()
	h.Fill(&frame, t1.Add(RepeatHoldWindow))
	if !frame.Has(core.ActionUp) {
		t.Error("repeating key should be held through the repeat window")
	}

	frame = core.NewInputFrame()
	h.Fill(&frame, t1.Add(RepeatHoldWindow+10*time.Millisecond))
	if frame.Has(core.ActionUp) {
		t.Error("repeating key should be released once repeats stop")
	}
}

func TestHeldKeysLatePressStartsOver(t *testing.T) {
	h := NewHeldKeys()
	t0 := time.Unix(100, 0)
	h.Press(core.ActionRight, t0)
	t1 := t0.Add(2 * time.Second)
	h.Press(core.ActionRight, t1) // A fresh press, not a repeat

	frame := core.NewInputFrame()
	h.Fill(&frame, t1.Add(300*time.Millisecond))
	if !frame.Has(core.ActionRight) {
		t.Error("fresh press should use the initial window")
	}
}

func TestHeldKeysRelease(t *testing.T) {
	h := NewHeldKeys()
	now := time.Unix(100, 0)
	h.Press(core.ActionUp, now)
	h.Press(core.ActionLeft, now)

	h.Release()

	frame := core.NewInputFrame()
	h.Fill(&frame, now)
	if len(frame.Actions) != 0 {
		t.Errorf("expected no held keys after Release, got %v", frame.Actions)
	}
}

func TestFrameDT(t *testing.T) {
	base := time.Unix(100, 0)

	tests := []struct {
		name     string
		prev     time.Time
		now      time.Time
		rate     int
		expected float64
	}{
		{"first tick", time.Time{}, base, 60, 1.0 / 60},
		{"default rate", time.Time{}, base, 0, 1.0 / 60},
		{"normal", base, base.Add(20 * time.Millisecond), 60, 0.02},
		{"stall capped", base, base.Add(3 * time.Second), 60, 0.25},
		{"backwards", base, base.Add(-time.Second), 60, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameDT(tt.prev, tt.now, tt.rate); got != tt.expected {
				t.Errorf("frameDT() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestKeyMapHelp(t *testing.T) {
	keys := DefaultKeyMap()

	if len(keys.ShortHelp()) == 0 {
		t.Error("ShortHelp() should not be empty")
	}
	groups := keys.FullHelp()
	if len(groups) != 2 || len(groups[0]) != 4 {
		t.Errorf("FullHelp() = %d groups, expected movement and actions", len(groups))
	}
}
