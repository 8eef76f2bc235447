// Package player implements the per-frame movement and dash controller for
// one player entity. The controller never touches an engine directly: it
// writes through the Body and Animator sinks and reports defeat through a
// MatchLink.
package player

import (
	"github.com/vovakirdan/dash-arena/internal/core"
	"github.com/vovakirdan/dash-arena/internal/match"
)

// Body receives the computed position and facing.
type Body interface {
	Position() core.Vec2
	SetPosition(p core.Vec2)
	SetFacing(left bool)
}

// Anim is an animation request.
type Anim int

const (
	AnimIdle Anim = iota
	AnimMove
)

// String returns the animation clip name.
func (a Anim) String() string {
	if a == AnimMove {
		return "player_move"
	}
	return "player_idle"
}

// Animator accepts fire-and-forget animation requests.
type Animator interface {
	Play(a Anim)
}

// MatchLink is the part of the match the controller depends on.
// *match.Match satisfies it.
type MatchLink interface {
	Phase() match.Phase
	GameOver() bool
}

// PointBody is a minimal Body holding a position in memory.
type PointBody struct {
	Pos        core.Vec2
	FacingLeft bool
}

// Position returns the stored position.
func (b *PointBody) Position() core.Vec2 { return b.Pos }

// SetPosition stores p.
func (b *PointBody) SetPosition(p core.Vec2) { b.Pos = p }

// SetFacing stores the facing flag.
func (b *PointBody) SetFacing(left bool) { b.FacingLeft = left }
