// Package sim runs the arena headless on a manual clock with a scripted
// bot at the controls. Runs are deterministic for a given seed.
package sim

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dash-arena/internal/config"
	"github.com/vovakirdan/dash-arena/internal/core"
	"github.com/vovakirdan/dash-arena/internal/games/arena"
	"github.com/vovakirdan/dash-arena/internal/match"
	"github.com/vovakirdan/dash-arena/internal/timer"
)

// Options configures a simulation run.
type Options struct {
	Config   config.ArenaConfig
	Runtime  core.RuntimeConfig
	MaxTicks int         // Stop after this many ticks even if the match is still running
	Logger   *log.Logger // Optional; discards when nil
	Start    time.Time   // Manual clock origin; zero uses a fixed epoch
}

// Summary is the outcome of a run.
type Summary struct {
	Ticks    int
	Score    int
	Round    int
	HP       int
	Dashes   int
	GameOver bool
	Elapsed  time.Duration // Simulated time
}

// dashRange is how close an enemy must be, in world units, before the bot dashes.
const dashRange = 1.2

// Run plays one match and returns its summary.
func Run(opts Options) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rate := opts.Runtime.TickRate
	if rate <= 0 {
		rate = 60
		opts.Runtime.TickRate = rate
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Unix(0, 0)
	}

	clock := timer.NewManualClock(start)
	g, err := arena.New(opts.Config, clock, match.NewHost())
	if err != nil {
		return Summary{}, err
	}
	defer g.Close()

	g.Reset(opts.Runtime)
	m := g.Match()
	m.OnPhaseChange(func(from, to match.Phase) {
		logger.Info("phase changed", "from", from, "to", to, "t", clock.Now().Sub(start))
	})
	m.OnRoundAdvance(func(round int) {
		logger.Info("round advanced", "round", round, "score", m.Score())
	})

	step := time.Second / time.Duration(rate)
	dt := step.Seconds()
	var s Summary

	for s.Ticks < opts.MaxTicks {
		in := core.NewInputFrame()
		if s.Ticks == 0 {
			in.Set(core.ActionStart)
		}
		dash := s.Ticks > 0 && steer(g, &in)

		clock.Advance(step)
		res := g.StepDT(dt, in)
		s.Ticks++

		if dash {
			s.Dashes++
			logger.Debug("dash", "t", g.Controller().LastDash().Sub(start), "charges", g.Controller().DashCharges())
		}

		if res.State.GameOver {
			break
		}
	}

	s.Score = m.Score()
	s.Round = m.Round()
	s.HP = g.Controller().HP()
	s.GameOver = m.Phase() == match.PhaseGameOver
	s.Elapsed = clock.Now().Sub(start)
	logger.Info("run finished", "ticks", s.Ticks, "score", s.Score, "round", s.Round, "hp", s.HP)
	return s, nil
}

// steer points the bot at the nearest enemy and dashes when it is close.
// It reports whether a dash was requested and will be accepted.
func steer(g *arena.Game, in *core.InputFrame) bool {
	pos := g.PlayerPosition()
	target, ok := nearest(pos, g.Enemies())
	if !ok {
		return false
	}
	d := target.Sub(pos)
	const deadZone = 0.05
	if d.X > deadZone {
		in.Set(core.ActionRight)
	} else if d.X < -deadZone {
		in.Set(core.ActionLeft)
	}
	if d.Y > deadZone {
		in.Set(core.ActionUp)
	} else if d.Y < -deadZone {
		in.Set(core.ActionDown)
	}

	ctrl := g.Controller()
	if d.Len() < dashRange && ctrl.CanDash() && !ctrl.IsDashing() && ctrl.DashCharges() > 0 {
		in.Set(core.ActionDash)
		return true
	}
	return false
}

func nearest(from core.Vec2, enemies []arena.Enemy) (core.Vec2, bool) {
	best := math.MaxFloat64
	var at core.Vec2
	for _, e := range enemies {
		if d := e.Pos.Dist(from); d < best {
			best = d
			at = e.Pos
		}
	}
	return at, best < math.MaxFloat64
}
