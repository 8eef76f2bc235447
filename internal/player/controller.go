package player

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/dash-arena/internal/core"
	"github.com/vovakirdan/dash-arena/internal/match"
	"github.com/vovakirdan/dash-arena/internal/timer"
)

// ErrInvalidDamage is returned by TakeDamage for negative amounts.
var ErrInvalidDamage = errors.New("player: damage must not be negative")

// Tuning holds the controller constants supplied at construction.
type Tuning struct {
	Speed          float64       // Base speed in world units per second
	DashSpeed      float64       // Speed while dashing
	DashDuration   time.Duration // How long a dash lasts
	DashCooldown   time.Duration // Time from a dash until input unlocks and one charge returns
	MaxDashCharges int
	MaxHP          int
}

// DefaultTuning returns the stock player constants.
func DefaultTuning() Tuning {
	return Tuning{
		Speed:          1.6,
		DashSpeed:      4,
		DashDuration:   200 * time.Millisecond,
		DashCooldown:   500 * time.Millisecond,
		MaxDashCharges: 3,
		MaxHP:          10,
	}
}

// Controller owns one player's kinematic state, dash charges and health.
type Controller struct {
	tuning Tuning
	match  MatchLink
	clock  timer.Clock
	timers *timer.Group
	body   Body
	anim   Animator

	hp         int
	dashing    bool
	canDash    bool
	charges    int
	lastDash   time.Time
	facingLeft bool
	direction  core.Vec2
	moving     bool
	defeated   bool
	destroyed  bool
}

// New creates a controller at full health with a full charge pool.
// Dash timers are scheduled through sched and scoped to the controller,
// so Destroy discards any that are still pending. anim may be nil.
func New(t Tuning, m MatchLink, sched timer.Scheduler, clock timer.Clock, body Body, anim Animator) *Controller {
	if t.MaxHP < 1 {
		t.MaxHP = 1
	}
	if t.MaxDashCharges < 0 {
		t.MaxDashCharges = 0
	}
	return &Controller{
		tuning:  t,
		match:   m,
		clock:   clock,
		timers:  timer.NewGroup(sched),
		body:    body,
		anim:    anim,
		hp:      t.MaxHP,
		canDash: true,
		charges: t.MaxDashCharges,
	}
}

// Update advances the controller by dt seconds using the held-input snapshot.
// Nothing happens unless the match is Playing.
func (c *Controller) Update(dt float64, in core.Intent) {
	if c.destroyed || c.match.Phase() != match.PhasePlaying {
		return
	}
	core.Invariant(dt >= 0, "negative dt")
	if dt < 0 {
		dt = 0
	}

	if in.Dash {
		c.TryDash()
	}

	dir := in.Axis()
	if dir.X != 0 {
		c.facingLeft = dir.X < 0
	}
	if dir.X != 0 && dir.Y != 0 {
		dir = dir.Normalized()
	}
	c.direction = dir

	speed := c.tuning.Speed
	if c.dashing {
		speed = c.tuning.DashSpeed
	}
	delta := dir.Scale(speed * dt)
	c.body.SetPosition(c.body.Position().Add(delta))
	c.body.SetFacing(c.facingLeft)

	c.moving = !delta.IsZero()
	if c.anim != nil {
		if c.moving {
			c.anim.Play(AnimMove)
		} else {
			c.anim.Play(AnimIdle)
		}
	}
}

// TryDash starts a dash if the match is Playing, the cooldown gate is open,
// no dash is running and a charge is available. Gated attempts are ignored
// and return false.
func (c *Controller) TryDash() bool {
	if c.destroyed || c.defeated || c.match.Phase() != match.PhasePlaying {
		return false
	}
	if !c.canDash || c.dashing || c.charges <= 0 {
		return false
	}

	c.dashing = true
	c.canDash = false
	c.charges--
	c.lastDash = c.clock.Now()

	// Both timers count from the same trigger and may fire in either order.
	c.timers.After(c.tuning.DashDuration, func() {
		c.dashing = false
	})
	c.timers.After(c.tuning.DashCooldown, func() {
		c.canDash = true
		c.recharge()
	})
	return true
}

func (c *Controller) recharge() {
	if c.charges < c.tuning.MaxDashCharges {
		c.charges++
	}
	core.Invariant(c.charges <= c.tuning.MaxDashCharges, "charges above max")
	if c.charges > c.tuning.MaxDashCharges {
		c.charges = c.tuning.MaxDashCharges
	}
}

// TakeDamage subtracts amount from hp, flooring at zero. Reaching zero
// signals GameOver to the match exactly once; later damage is a no-op.
func (c *Controller) TakeDamage(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidDamage, amount)
	}
	if c.destroyed || c.defeated {
		return nil
	}

	c.hp -= amount
	if c.hp < 0 {
		c.hp = 0
	}
	if c.hp == 0 {
		c.defeated = true
		c.match.GameOver()
	}
	return nil
}

// Destroy cancels pending dash timers and freezes the controller.
func (c *Controller) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.timers.Close()
}

// HP returns current health.
func (c *Controller) HP() int { return c.hp }

// MaxHP returns the health cap.
func (c *Controller) MaxHP() int { return c.tuning.MaxHP }

// IsDashing reports whether a dash is in progress.
func (c *Controller) IsDashing() bool { return c.dashing }

// DashCharges returns the number of available dash charges.
func (c *Controller) DashCharges() int { return c.charges }

// MaxDashCharges returns the charge pool size.
func (c *Controller) MaxDashCharges() int { return c.tuning.MaxDashCharges }

// CanDash reports whether the cooldown gate accepts a new dash.
func (c *Controller) CanDash() bool { return c.canDash }

// LastDash returns when the most recent dash started.
func (c *Controller) LastDash() time.Time { return c.lastDash }

// FacingLeft reports the facing derived from the last horizontal input.
func (c *Controller) FacingLeft() bool { return c.facingLeft }

// Direction returns the movement direction applied on the last update.
func (c *Controller) Direction() core.Vec2 { return c.direction }

// Moving reports whether the last update displaced the body.
func (c *Controller) Moving() bool { return c.moving }

// Defeated reports whether hp reached zero.
func (c *Controller) Defeated() bool { return c.defeated }

// Tuning returns the controller constants.
func (c *Controller) Tuning() Tuning { return c.tuning }
