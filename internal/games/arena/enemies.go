package arena

import (
	"math/rand/v2"

	"github.com/vovakirdan/dash-arena/internal/core"
)

// Enemy is a chaser that walks straight at the player.
type Enemy struct {
	Pos   core.Vec2
	Alive bool
}

// EnemyManager spawns enemies on the field edge and moves them.
type EnemyManager struct {
	rng     *rand.Rand
	enemies []Enemy
	width   float64
	height  float64
	speed   float64
	max     int
}

// NewEnemyManager creates a manager for a field of the given world size.
func NewEnemyManager(seed int64, width, height, speed float64, max int) *EnemyManager {
	m := &EnemyManager{speed: speed, max: max}
	m.Resize(width, height)
	m.Reset(seed)
	return m
}

// Reset clears all enemies and reseeds the RNG.
func (m *EnemyManager) Reset(seed int64) {
	m.rng = rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
	m.enemies = m.enemies[:0]
}

// Resize updates the field bounds.
func (m *EnemyManager) Resize(width, height float64) {
	m.width = width
	m.height = height
}

// Spawn adds one enemy on a random edge unless the cap is reached.
func (m *EnemyManager) Spawn() bool {
	if m.Count() >= m.max {
		return false
	}
	var p core.Vec2
	switch m.rng.IntN(4) {
	case 0:
		p = core.V2(m.rng.Float64()*m.width, 0)
	case 1:
		p = core.V2(m.rng.Float64()*m.width, m.height)
	case 2:
		p = core.V2(0, m.rng.Float64()*m.height)
	default:
		p = core.V2(m.width, m.rng.Float64()*m.height)
	}
	m.enemies = append(m.enemies, Enemy{Pos: p, Alive: true})
	return true
}

// Update moves every live enemy toward target and drops dead ones.
func (m *EnemyManager) Update(dt float64, target core.Vec2) {
	live := m.enemies[:0]
	for _, e := range m.enemies {
		if !e.Alive {
			continue
		}
		step := target.Sub(e.Pos)
		if d := step.Len(); d > 0 {
			move := m.speed * dt
			if move > d {
				move = d
			}
			e.Pos = e.Pos.Add(step.Normalized().Scale(move))
		}
		live = append(live, e)
	}
	m.enemies = live
}

// Touching calls fn for every live enemy within radius of p.
// fn returns true to kill the enemy.
func (m *EnemyManager) Touching(p core.Vec2, radius float64, fn func() bool) {
	for i := range m.enemies {
		e := &m.enemies[i]
		if !e.Alive || e.Pos.Dist(p) > radius {
			continue
		}
		if fn() {
			e.Alive = false
		}
	}
}

// Count returns the number of live enemies.
func (m *EnemyManager) Count() int {
	n := 0
	for _, e := range m.enemies {
		if e.Alive {
			n++
		}
	}
	return n
}

// Enemies returns the live enemies.
func (m *EnemyManager) Enemies() []Enemy {
	out := make([]Enemy, 0, len(m.enemies))
	for _, e := range m.enemies {
		if e.Alive {
			out = append(out, e)
		}
	}
	return out
}
