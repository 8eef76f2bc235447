// Package arena implements the top-down dash arena: the player moves with
// WASD, dashes through chasing enemies to defeat them, and loses when
// contact damage drains their health. Match progress and the player
// controller live in their own packages; this package wires them to a
// playfield.
package arena

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/dash-arena/internal/config"
	"github.com/vovakirdan/dash-arena/internal/core"
	"github.com/vovakirdan/dash-arena/internal/match"
	"github.com/vovakirdan/dash-arena/internal/player"
	"github.com/vovakirdan/dash-arena/internal/timer"
)

// Visual characters for rendering
const (
	PlayerRight = '►'
	PlayerLeft  = '◄'
	DashRight   = '»'
	DashLeft    = '«'
	EnemyChar   = 'x'
	ChargeFull  = '●'
	ChargeEmpty = '○'
)

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 0.5

// Game implements the arena simulation.
type Game struct {
	cfg     config.ArenaConfig
	runtime core.RuntimeConfig
	clock   timer.Clock
	queue   *timer.Queue
	spawns  *timer.Group
	host    *match.Host

	match   *match.Match
	ctrl    *player.Controller
	body    *player.PointBody
	clip    player.Anim
	enemies *EnemyManager

	worldW, worldH float64
	invulnUntil    time.Time
}

// New opens the host's match and creates a game around it.
// It fails if the host already has a live match.
func New(cfg config.ArenaConfig, clock timer.Clock, host *match.Host) (*Game, error) {
	m, err := host.Open(cfg.Match.Rules(), clock)
	if err != nil {
		return nil, fmt.Errorf("arena: %w", err)
	}
	q := timer.NewQueue(clock)
	g := &Game{
		cfg:     cfg,
		clock:   clock,
		queue:   q,
		spawns:  timer.NewGroup(q),
		host:    host,
		match:   m,
		runtime: core.DefaultConfig(),
	}
	m.OnPhaseChange(g.onPhaseChange)
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "arena"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dash Arena"
}

// Reset initializes or restarts the game. Pending dash and spawn timers are
// discarded along with the old controller.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.layout()

	if g.ctrl != nil {
		g.ctrl.Destroy()
	}
	g.spawns.StopAll()
	g.match.Initialize()

	g.body = &player.PointBody{Pos: core.V2(g.worldW/2, g.worldH/2)}
	g.clip = player.AnimIdle
	g.ctrl = player.New(g.cfg.Player.Tuning(), g.match, g.queue, g.clock, g.body, g)

	if g.enemies == nil {
		g.enemies = NewEnemyManager(runtime.Seed, g.worldW, g.worldH, g.cfg.Arena.EnemySpeed, g.cfg.Arena.MaxEnemies)
	} else {
		g.enemies.Resize(g.worldW, g.worldH)
		g.enemies.Reset(runtime.Seed)
	}
	g.invulnUntil = time.Time{}
}

// Resize adapts the playfield to a new screen size without restarting.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	g.layout()
	if g.enemies != nil {
		g.enemies.Resize(g.worldW, g.worldH)
	}
	if g.body != nil {
		g.clampBody()
	}
}

// layout derives the world size from the screen: one HUD row and a box border.
func (g *Game) layout() {
	cpu := g.cfg.Arena.CellsPerUnit
	fieldW := max(1, g.runtime.ScreenW-2)
	fieldH := max(1, g.runtime.ScreenH-3)
	g.worldW = float64(fieldW) / cpu
	g.worldH = float64(fieldH) / (cpu * cellAspect)
}

// Step advances the game by one tick at the nominal tick rate.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	rate := g.runtime.TickRate
	if rate <= 0 {
		rate = 60
	}
	return g.StepDT(1/float64(rate), in)
}

// StepDT advances the game by dt seconds.
func (g *Game) StepDT(dt float64, in core.InputFrame) core.StepResult {
	// Dash and spawn timers fire first, on the same timeline as the frame.
	g.queue.RunDue()

	switch g.match.Phase() {
	case match.PhaseReady:
		if in.Has(core.ActionStart) || in.Has(core.ActionDash) {
			//nolint:errcheck // Phase is Ready, Start cannot fail
			g.match.Start()
		}
		return core.StepResult{State: g.State()}
	case match.PhaseGameOver:
		if in.Has(core.ActionRestart) {
			g.Reset(g.runtime)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		//nolint:errcheck // Playing and Paused both accept a toggle
		g.match.TogglePause()
	}
	if g.match.Phase() != match.PhasePlaying {
		return core.StepResult{State: g.State()}
	}

	g.ctrl.Update(dt, in.Intent())
	g.clampBody()
	g.enemies.Update(dt, g.body.Pos)
	g.resolveContacts()

	return core.StepResult{State: g.State()}
}

// resolveContacts defeats enemies hit during a dash and applies contact
// damage otherwise, with a grace period between hits.
func (g *Game) resolveContacts() {
	now := g.clock.Now()
	g.enemies.Touching(g.body.Pos, g.cfg.Arena.HitRadius, func() bool {
		if g.match.Phase() != match.PhasePlaying {
			return false
		}
		if g.ctrl.IsDashing() {
			g.match.EnemyKilled()
			//nolint:errcheck // KillPoints is validated non-negative
			g.match.AddScore(g.cfg.Arena.KillPoints)
			return true
		}
		if now.Before(g.invulnUntil) {
			return false
		}
		g.invulnUntil = now.Add(g.cfg.Arena.Invulnerable())
		//nolint:errcheck // ContactDamage is validated non-negative
		g.ctrl.TakeDamage(g.cfg.Arena.ContactDamage)
		return false
	})
}

func (g *Game) clampBody() {
	g.body.Pos.X = core.ClampF(g.body.Pos.X, 0, g.worldW)
	g.body.Pos.Y = core.ClampF(g.body.Pos.Y, 0, g.worldH)
}

func (g *Game) onPhaseChange(from, to match.Phase) {
	if to == match.PhasePlaying {
		g.scheduleSpawn()
		return
	}
	if from == match.PhasePlaying {
		g.spawns.StopAll()
	}
}

func (g *Game) scheduleSpawn() {
	if g.spawns.Pending() > 0 {
		return
	}
	g.spawns.After(g.cfg.Arena.SpawnInterval(), func() {
		if g.match.Phase() != match.PhasePlaying {
			return
		}
		g.enemies.Spawn()
		g.scheduleSpawn()
	})
}

// Play records the animation the controller asked for.
func (g *Game) Play(a player.Anim) {
	g.clip = a
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w < 3 || h < 4 {
		return
	}

	dst.DrawBox(core.NewRect(0, 1, w, h-1))

	for _, e := range g.enemies.Enemies() {
		x, y := g.toScreen(e.Pos)
		dst.SetColor(x, y, EnemyChar, core.ColorRed)
	}
	g.drawPlayer(dst)
	g.drawHUD(dst)

	switch g.match.Phase() {
	case match.PhaseReady:
		g.drawCenteredMessage(dst, "DASH ARENA", "Press Enter or Space to start")
	case match.PhasePaused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case match.PhaseGameOver:
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  Round: %d  |  Press R to restart", g.match.Score(), g.match.Round()))
	}
}

func (g *Game) drawPlayer(dst *core.Screen) {
	x, y := g.toScreen(g.body.Pos)
	glyph := PlayerRight
	if g.ctrl.FacingLeft() {
		glyph = PlayerLeft
	}
	color := core.ColorBrightWhite
	if g.clip == player.AnimMove {
		color = core.ColorGreen
	}
	if g.ctrl.IsDashing() {
		glyph = DashRight
		if g.ctrl.FacingLeft() {
			glyph = DashLeft
		}
		color = core.ColorCyan
	} else if g.clock.Now().Before(g.invulnUntil) {
		color = core.ColorYellow
	}
	dst.SetColor(x, y, glyph, color)
}

func (g *Game) drawHUD(dst *core.Screen) {
	var charges strings.Builder
	for i := 0; i < g.ctrl.MaxDashCharges(); i++ {
		if i < g.ctrl.DashCharges() {
			charges.WriteRune(ChargeFull)
		} else {
			charges.WriteRune(ChargeEmpty)
		}
	}
	hud := fmt.Sprintf(" Score: %d  Round: %d  Kills: %d/%d  HP: %d/%d  Dash: %s ",
		g.match.Score(), g.match.Round(), g.match.KillsInRound(), g.match.Rules().KillsPerRound,
		g.ctrl.HP(), g.ctrl.MaxHP(), charges.String())
	dst.DrawText(1, 0, hud)
}

// toScreen maps world coordinates (Y up) to a cell inside the box.
func (g *Game) toScreen(p core.Vec2) (int, int) {
	cpu := g.cfg.Arena.CellsPerUnit
	w, h := g.runtime.ScreenW, g.runtime.ScreenH
	x := 1 + int(p.X*cpu)
	y := (h - 2) - int(p.Y*cpu*cellAspect)
	return core.Clamp(x, 1, max(1, w-2)), core.Clamp(y, 2, max(2, h-2))
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := g.match.Phase()
	return core.GameState{
		Score:    g.match.Score(),
		Round:    g.match.Round(),
		GameOver: phase == match.PhaseGameOver,
		Paused:   phase == match.PhasePaused,
	}
}

// Close destroys the controller, cancels timers and releases the match.
func (g *Game) Close() {
	if g.ctrl != nil {
		g.ctrl.Destroy()
	}
	g.spawns.Close()
	g.host.Teardown()
}

// Match returns the live match.
func (g *Game) Match() *match.Match { return g.match }

// Controller returns the player controller.
func (g *Game) Controller() *player.Controller { return g.ctrl }

// PlayerPosition returns the player's world position.
func (g *Game) PlayerPosition() core.Vec2 { return g.body.Pos }

// Enemies returns the live enemies.
func (g *Game) Enemies() []Enemy { return g.enemies.Enemies() }

// WorldSize returns the playfield size in world units.
func (g *Game) WorldSize() (float64, float64) { return g.worldW, g.worldH }

// Queue returns the timer queue driving dash and spawn timers.
func (g *Game) Queue() *timer.Queue { return g.queue }
