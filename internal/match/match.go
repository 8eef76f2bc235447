package match

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/dash-arena/internal/timer"
)

var (
	// ErrInvalidTransition is returned when an operation does not apply to the current phase.
	ErrInvalidTransition = errors.New("match: invalid phase transition")

	// ErrNegativeScore is returned by AddScore for negative deltas.
	ErrNegativeScore = errors.New("match: score delta must not be negative")
)

// Rules are the tunables a match is created with.
type Rules struct {
	RoundDuration time.Duration // Length of a round for progress display
	KillsPerRound int           // Kills needed to advance a round
}

// DefaultRules returns a 25s round with a quota of 10 kills.
func DefaultRules() Rules {
	return Rules{
		RoundDuration: 25 * time.Second,
		KillsPerRound: 10,
	}
}

// Match owns the phase machine, score and round progression.
// It is not safe for concurrent use; the host drives it from one loop.
type Match struct {
	rules Rules
	clock timer.Clock

	phase        Phase
	score        int
	round        int
	killsInRound int
	roundStart   time.Time

	phaseHooks []func(from, to Phase)
	roundHooks []func(round int)

	host *Host
}

// New creates a match in the Ready phase.
// Most callers go through Host.Open, which enforces a single live match.
func New(rules Rules, clock timer.Clock) *Match {
	if rules.KillsPerRound <= 0 {
		rules.KillsPerRound = DefaultRules().KillsPerRound
	}
	if rules.RoundDuration <= 0 {
		rules.RoundDuration = DefaultRules().RoundDuration
	}
	m := &Match{rules: rules, clock: clock}
	m.reset()
	return m
}

func (m *Match) reset() {
	m.phase = PhaseReady
	m.score = 0
	m.round = 1
	m.killsInRound = 0
	m.roundStart = m.clock.Now()
}

// OnPhaseChange registers fn to run after every phase change.
func (m *Match) OnPhaseChange(fn func(from, to Phase)) {
	m.phaseHooks = append(m.phaseHooks, fn)
}

// OnRoundAdvance registers fn to run after the round number increases.
func (m *Match) OnRoundAdvance(fn func(round int)) {
	m.roundHooks = append(m.roundHooks, fn)
}

func (m *Match) setPhase(to Phase) {
	from := m.phase
	m.phase = to
	if from == to {
		return
	}
	for _, fn := range m.phaseHooks {
		fn(from, to)
	}
}

// Initialize resets the match to Ready with zero score and round 1.
// Valid from every phase.
func (m *Match) Initialize() {
	from := m.phase
	m.reset()
	if from != PhaseReady {
		for _, fn := range m.phaseHooks {
			fn(from, PhaseReady)
		}
	}
}

// Start moves Ready to Playing and restarts the round clock.
func (m *Match) Start() error {
	to, ok := next("start", m.phase)
	if !ok {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, m.phase)
	}
	m.roundStart = m.clock.Now()
	m.setPhase(to)
	return nil
}

// TogglePause flips between Playing and Paused.
func (m *Match) TogglePause() error {
	to, ok := next("pause", m.phase)
	if !ok {
		return fmt.Errorf("%w: pause from %s", ErrInvalidTransition, m.phase)
	}
	m.setPhase(to)
	return nil
}

// GameOver ends the match. It returns true when this call performed the
// transition and false when the match was already over.
func (m *Match) GameOver() bool {
	to, ok := next("gameover", m.phase)
	if !ok {
		return false
	}
	m.setPhase(to)
	return true
}

// AddScore adds a non-negative number of points.
func (m *Match) AddScore(points int) error {
	if points < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeScore, points)
	}
	m.score += points
	return nil
}

// EnemyKilled counts a kill toward the round quota and reports whether
// the round advanced.
func (m *Match) EnemyKilled() bool {
	m.killsInRound++
	if m.killsInRound < m.rules.KillsPerRound {
		return false
	}
	m.round++
	m.killsInRound = 0
	m.roundStart = m.clock.Now()
	for _, fn := range m.roundHooks {
		fn(m.round)
	}
	return true
}

// RoundProgress returns elapsed round time as a fraction of the round duration,
// clamped to [0, 1]. It never advances the round.
func (m *Match) RoundProgress() float64 {
	elapsed := m.clock.Now().Sub(m.roundStart)
	p := float64(elapsed) / float64(m.rules.RoundDuration)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Phase returns the current phase.
func (m *Match) Phase() Phase { return m.phase }

// Score returns the accumulated score.
func (m *Match) Score() int { return m.score }

// Round returns the current round, starting at 1.
func (m *Match) Round() int { return m.round }

// KillsInRound returns kills counted toward the current round's quota.
func (m *Match) KillsInRound() int { return m.killsInRound }

// Rules returns the match tunables.
func (m *Match) Rules() Rules { return m.rules }
