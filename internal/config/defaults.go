package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultArenaConfig returns the hard-coded arena configuration.
// It mirrors defaults/arena.yaml and backs it if the embed fails to parse.
func DefaultArenaConfig() ArenaConfig {
	return ArenaConfig{
		Player: PlayerConfig{
			Speed:          1.6,
			DashSpeed:      4.0,
			DashDurationMS: 200,
			DashCooldownMS: 500,
			MaxDashCharges: 3,
			MaxHP:          10,
		},
		Match: MatchConfig{
			RoundDurationS: 25,
			KillsPerRound:  10,
		},
		Arena: FieldConfig{
			CellsPerUnit:    10,
			EnemySpeed:      0.8,
			SpawnIntervalMS: 1500,
			MaxEnemies:      8,
			ContactDamage:   1,
			KillPoints:      10,
			InvulnerableMS:  600,
			HitRadius:       0.3,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultArenaYAML
}
