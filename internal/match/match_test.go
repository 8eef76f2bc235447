package match

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/dash-arena/internal/timer"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestMatch() (*Match, *timer.ManualClock) {
	clock := timer.NewManualClock(epoch)
	return New(DefaultRules(), clock), clock
}

func TestNewMatchIsReady(t *testing.T) {
	m, _ := newTestMatch()

	if m.Phase() != PhaseReady {
		t.Errorf("Phase() = %v, expected Ready", m.Phase())
	}
	if m.Score() != 0 || m.Round() != 1 || m.KillsInRound() != 0 {
		t.Errorf("fresh match: score=%d round=%d kills=%d", m.Score(), m.Round(), m.KillsInRound())
	}
}

func TestEnemyKilledAdvancesEveryTenth(t *testing.T) {
	m, _ := newTestMatch()

	for i := 1; i <= 35; i++ {
		advanced := m.EnemyKilled()

		wantAdvance := i%10 == 0
		if advanced != wantAdvance {
			t.Fatalf("kill %d: advanced = %v, expected %v", i, advanced, wantAdvance)
		}
		if want := 1 + i/10; m.Round() != want {
			t.Fatalf("kill %d: round = %d, expected %d", i, m.Round(), want)
		}
		if want := i % 10; m.KillsInRound() != want {
			t.Fatalf("kill %d: kills = %d, expected %d", i, m.KillsInRound(), want)
		}
		if m.KillsInRound() > 9 {
			t.Fatalf("kill %d: kills in round exceeded quota: %d", i, m.KillsInRound())
		}
	}
}

func TestRoundAdvanceResetsRoundClock(t *testing.T) {
	m, clock := newTestMatch()
	_ = m.Start()

	clock.Advance(20 * time.Second)
	for i := 0; i < 10; i++ {
		m.EnemyKilled()
	}

	if p := m.RoundProgress(); p != 0 {
		t.Errorf("RoundProgress() right after advance = %v, expected 0", p)
	}
}

func TestRoundAdvanceHook(t *testing.T) {
	m, _ := newTestMatch()
	var rounds []int
	m.OnRoundAdvance(func(r int) { rounds = append(rounds, r) })

	for i := 0; i < 20; i++ {
		m.EnemyKilled()
	}

	if len(rounds) != 2 || rounds[0] != 2 || rounds[1] != 3 {
		t.Errorf("round hook saw %v, expected [2 3]", rounds)
	}
}

func TestTogglePauseIsPureToggle(t *testing.T) {
	m, clock := newTestMatch()
	if err := m.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	_ = m.AddScore(40)
	m.EnemyKilled()
	clock.Advance(3 * time.Second)
	progress := m.RoundProgress()

	if err := m.TogglePause(); err != nil {
		t.Fatalf("first TogglePause() failed: %v", err)
	}
	if m.Phase() != PhasePaused {
		t.Fatalf("Phase() = %v, expected Paused", m.Phase())
	}
	if err := m.TogglePause(); err != nil {
		t.Fatalf("second TogglePause() failed: %v", err)
	}

	if m.Phase() != PhasePlaying {
		t.Errorf("Phase() = %v, expected Playing", m.Phase())
	}
	if m.Score() != 40 || m.Round() != 1 || m.KillsInRound() != 1 {
		t.Errorf("toggle changed state: score=%d round=%d kills=%d", m.Score(), m.Round(), m.KillsInRound())
	}
	if m.RoundProgress() != progress {
		t.Errorf("toggle changed round progress: %v -> %v", progress, m.RoundProgress())
	}
}

func TestGameOverFromAnyPhase(t *testing.T) {
	setups := map[string]func(m *Match){
		"ready":   func(m *Match) {},
		"playing": func(m *Match) { _ = m.Start() },
		"paused": func(m *Match) {
			_ = m.Start()
			_ = m.TogglePause()
		},
		"gameover": func(m *Match) { m.GameOver() },
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			m, _ := newTestMatch()
			setup(m)
			wasOver := m.Phase() == PhaseGameOver

			changed := m.GameOver()

			if m.Phase() != PhaseGameOver {
				t.Errorf("Phase() = %v, expected GameOver", m.Phase())
			}
			if changed == wasOver {
				t.Errorf("GameOver() = %v with prior phase over=%v", changed, wasOver)
			}
		})
	}
}

func TestGameOverRejectsStartAndPause(t *testing.T) {
	m, _ := newTestMatch()
	_ = m.Start()
	_ = m.AddScore(15)
	m.GameOver()

	if err := m.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start() in GameOver = %v, expected ErrInvalidTransition", err)
	}
	if err := m.TogglePause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("TogglePause() in GameOver = %v, expected ErrInvalidTransition", err)
	}
	if m.Phase() != PhaseGameOver || m.Score() != 15 {
		t.Errorf("rejected ops changed state: phase=%v score=%d", m.Phase(), m.Score())
	}
}

func TestInvalidTransitions(t *testing.T) {
	m, _ := newTestMatch()

	if err := m.TogglePause(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("TogglePause() in Ready = %v, expected ErrInvalidTransition", err)
	}
	_ = m.Start()
	if err := m.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start() in Playing = %v, expected ErrInvalidTransition", err)
	}
	_ = m.TogglePause()
	if err := m.Start(); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Start() in Paused = %v, expected ErrInvalidTransition", err)
	}
}

func TestInitializeResetsEverything(t *testing.T) {
	m, clock := newTestMatch()
	_ = m.Start()
	_ = m.AddScore(100)
	for i := 0; i < 13; i++ {
		m.EnemyKilled()
	}
	m.GameOver()
	clock.Advance(10 * time.Second)

	m.Initialize()

	if m.Phase() != PhaseReady {
		t.Errorf("Phase() = %v, expected Ready", m.Phase())
	}
	if m.Score() != 0 || m.Round() != 1 || m.KillsInRound() != 0 {
		t.Errorf("after Initialize: score=%d round=%d kills=%d", m.Score(), m.Round(), m.KillsInRound())
	}
	if m.RoundProgress() != 0 {
		t.Errorf("RoundProgress() = %v, expected 0", m.RoundProgress())
	}
	if err := m.Start(); err != nil {
		t.Errorf("Start() after Initialize failed: %v", err)
	}
}

func TestAddScoreRejectsNegative(t *testing.T) {
	m, _ := newTestMatch()
	_ = m.AddScore(10)

	err := m.AddScore(-5)
	if !errors.Is(err, ErrNegativeScore) {
		t.Errorf("AddScore(-5) = %v, expected ErrNegativeScore", err)
	}
	if m.Score() != 10 {
		t.Errorf("Score() = %d, expected 10", m.Score())
	}
	if err := m.AddScore(0); err != nil {
		t.Errorf("AddScore(0) failed: %v", err)
	}
}

func TestRoundProgress(t *testing.T) {
	m, clock := newTestMatch()
	_ = m.Start()

	clock.Advance(12500 * time.Millisecond)
	if p := m.RoundProgress(); math.Abs(p-0.5) > 1e-9 {
		t.Errorf("RoundProgress() at 12.5s = %v, expected 0.5", p)
	}

	clock.Advance(17500 * time.Millisecond)
	if p := m.RoundProgress(); p != 1 {
		t.Errorf("RoundProgress() at 30s = %v, expected 1", p)
	}
	if m.Round() != 1 {
		t.Errorf("Round() = %d, expected 1 (progress never advances)", m.Round())
	}
}

func TestStartRestartsRoundClock(t *testing.T) {
	m, clock := newTestMatch()
	clock.Advance(40 * time.Second)

	_ = m.Start()

	if p := m.RoundProgress(); p != 0 {
		t.Errorf("RoundProgress() after Start = %v, expected 0", p)
	}
}

func TestPhaseHooks(t *testing.T) {
	m, _ := newTestMatch()
	type change struct{ from, to Phase }
	var seen []change
	m.OnPhaseChange(func(from, to Phase) { seen = append(seen, change{from, to}) })

	_ = m.Start()
	_ = m.TogglePause()
	_ = m.TogglePause()
	m.GameOver()
	m.GameOver()
	m.Initialize()

	expected := []change{
		{PhaseReady, PhasePlaying},
		{PhasePlaying, PhasePaused},
		{PhasePaused, PhasePlaying},
		{PhasePlaying, PhaseGameOver},
		{PhaseGameOver, PhaseReady},
	}
	if len(seen) != len(expected) {
		t.Fatalf("saw %d changes %v, expected %v", len(seen), seen, expected)
	}
	for i := range expected {
		if seen[i] != expected[i] {
			t.Errorf("change %d = %v, expected %v", i, seen[i], expected[i])
		}
	}
}

func TestNewFillsInvalidRules(t *testing.T) {
	m := New(Rules{}, timer.NewManualClock(epoch))

	if m.Rules() != DefaultRules() {
		t.Errorf("Rules() = %+v, expected defaults", m.Rules())
	}
}
