package match

import (
	"errors"
	"sync"

	"github.com/vovakirdan/dash-arena/internal/timer"
)

// ErrDuplicateInstance is returned by Host.Open while a match is still live.
var ErrDuplicateInstance = errors.New("match: a match is already live")

// Host owns the single live match of a session.
// Open constructs it once; Teardown releases the slot so a new match can be
// opened. Consumers receive the *Match returned by Open instead of looking
// it up globally.
type Host struct {
	mu   sync.Mutex
	live *Match
}

// NewHost creates an empty host.
func NewHost() *Host {
	return &Host{}
}

// Open creates the live match. Fails with ErrDuplicateInstance if one exists.
func (h *Host) Open(rules Rules, clock timer.Clock) (*Match, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.live != nil {
		return nil, ErrDuplicateInstance
	}
	m := New(rules, clock)
	m.host = h
	h.live = m
	return m, nil
}

// Current returns the live match, if any.
func (h *Host) Current() (*Match, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.live, h.live != nil
}

// Teardown releases the live match. Safe to call when nothing is live.
func (h *Host) Teardown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.live != nil {
		h.live.host = nil
		h.live.phaseHooks = nil
		h.live.roundHooks = nil
	}
	h.live = nil
}
