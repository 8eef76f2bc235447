// Package config provides YAML-based arena configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/dash-arena/internal/match"
	"github.com/vovakirdan/dash-arena/internal/player"
)

// ArenaConfig contains every tunable of the arena.
type ArenaConfig struct {
	Player PlayerConfig `yaml:"player"`
	Match  MatchConfig  `yaml:"match"`
	Arena  FieldConfig  `yaml:"arena"`
}

// PlayerConfig defines movement, dash and health constants.
type PlayerConfig struct {
	Speed          float64 `yaml:"speed"`
	DashSpeed      float64 `yaml:"dash_speed"`
	DashDurationMS int     `yaml:"dash_duration_ms"`
	DashCooldownMS int     `yaml:"dash_cooldown_ms"`
	MaxDashCharges int     `yaml:"max_dash_charges"`
	MaxHP          int     `yaml:"max_hp"`
}

// MatchConfig defines round progression.
type MatchConfig struct {
	RoundDurationS float64 `yaml:"round_duration_s"`
	KillsPerRound  int     `yaml:"kills_per_round"`
}

// FieldConfig defines the playfield and its enemies.
type FieldConfig struct {
	CellsPerUnit    float64 `yaml:"cells_per_unit"` // Horizontal screen cells per world unit
	EnemySpeed      float64 `yaml:"enemy_speed"`
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"`
	MaxEnemies      int     `yaml:"max_enemies"`
	ContactDamage   int     `yaml:"contact_damage"`
	KillPoints      int     `yaml:"kill_points"`
	InvulnerableMS  int     `yaml:"invulnerable_ms"`
	HitRadius       float64 `yaml:"hit_radius"`
}

// Tuning converts the player section to controller constants.
func (p PlayerConfig) Tuning() player.Tuning {
	return player.Tuning{
		Speed:          p.Speed,
		DashSpeed:      p.DashSpeed,
		DashDuration:   time.Duration(p.DashDurationMS) * time.Millisecond,
		DashCooldown:   time.Duration(p.DashCooldownMS) * time.Millisecond,
		MaxDashCharges: p.MaxDashCharges,
		MaxHP:          p.MaxHP,
	}
}

// Rules converts the match section to match rules.
func (m MatchConfig) Rules() match.Rules {
	return match.Rules{
		RoundDuration: time.Duration(m.RoundDurationS * float64(time.Second)),
		KillsPerRound: m.KillsPerRound,
	}
}

// SpawnInterval returns the enemy spawn period.
func (f FieldConfig) SpawnInterval() time.Duration {
	return time.Duration(f.SpawnIntervalMS) * time.Millisecond
}

// Invulnerable returns the grace period after the player is hit.
func (f FieldConfig) Invulnerable() time.Duration {
	return time.Duration(f.InvulnerableMS) * time.Millisecond
}

// Validate reports every tunable that is out of range.
func (c ArenaConfig) Validate() error {
	var errs []error
	check := func(ok bool, field string) {
		if !ok {
			errs = append(errs, fmt.Errorf("%s is out of range", field))
		}
	}

	check(c.Player.Speed > 0, "player.speed")
	check(c.Player.DashSpeed > 0, "player.dash_speed")
	check(c.Player.DashDurationMS > 0, "player.dash_duration_ms")
	check(c.Player.DashCooldownMS > 0, "player.dash_cooldown_ms")
	check(c.Player.MaxDashCharges >= 0, "player.max_dash_charges")
	check(c.Player.MaxHP > 0, "player.max_hp")
	check(c.Match.RoundDurationS > 0, "match.round_duration_s")
	check(c.Match.KillsPerRound > 0, "match.kills_per_round")
	check(c.Arena.CellsPerUnit > 0, "arena.cells_per_unit")
	check(c.Arena.EnemySpeed >= 0, "arena.enemy_speed")
	check(c.Arena.SpawnIntervalMS > 0, "arena.spawn_interval_ms")
	check(c.Arena.MaxEnemies >= 0, "arena.max_enemies")
	check(c.Arena.ContactDamage >= 0, "arena.contact_damage")
	check(c.Arena.KillPoints >= 0, "arena.kill_points")
	check(c.Arena.InvulnerableMS >= 0, "arena.invulnerable_ms")
	check(c.Arena.HitRadius > 0, "arena.hit_radius")

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid arena config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a flag value to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *ArenaConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHP += cfg.Player.MaxHP / 2
		cfg.Arena.EnemySpeed *= 0.75
		cfg.Arena.MaxEnemies = max(1, cfg.Arena.MaxEnemies*2/3)
	case DifficultyHard:
		cfg.Player.MaxHP = max(1, cfg.Player.MaxHP*2/3)
		cfg.Arena.EnemySpeed *= 1.3
		cfg.Arena.MaxEnemies += cfg.Arena.MaxEnemies / 2
		cfg.Arena.ContactDamage++
	}
}
