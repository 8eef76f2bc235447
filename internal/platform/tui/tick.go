// Package tui provides the Bubble Tea integration for the arena.
// It handles the terminal UI loop, input mapping, and result recording.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrameDT caps the elapsed time fed into one simulation step so a
// stalled terminal does not teleport the player.
const maxFrameDT = 250 * time.Millisecond

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameDT returns the seconds between two ticks, capped at maxFrameDT.
// A zero previous tick yields the nominal interval.
func frameDT(prev, now time.Time, tickRate int) float64 {
	if tickRate <= 0 {
		tickRate = 60
	}
	if prev.IsZero() {
		return 1 / float64(tickRate)
	}
	d := now.Sub(prev)
	if d < 0 {
		d = 0
	}
	if d > maxFrameDT {
		d = maxFrameDT
	}
	return d.Seconds()
}
