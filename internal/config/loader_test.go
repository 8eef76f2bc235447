package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults failed to parse: %v", err)
	}
	if cfg != DefaultArenaConfig() {
		t.Errorf("embedded defaults differ from hardcoded:\n%+v\n%+v", cfg, DefaultArenaConfig())
	}
}

func TestParsePartialOverride(t *testing.T) {
	data := []byte(`
player:
  max_hp: 4
  dash_cooldown_ms: 800
arena:
  max_enemies: 2
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Player.MaxHP != 4 {
		t.Errorf("expected max_hp 4, got %d", cfg.Player.MaxHP)
	}
	if cfg.Player.Tuning().DashCooldown != 800*time.Millisecond {
		t.Errorf("expected cooldown 800ms, got %v", cfg.Player.Tuning().DashCooldown)
	}
	if cfg.Arena.MaxEnemies != 2 {
		t.Errorf("expected max_enemies 2, got %d", cfg.Arena.MaxEnemies)
	}

	// Untouched keys keep their defaults
	def := DefaultArenaConfig()
	if cfg.Player.Speed != def.Player.Speed || cfg.Match != def.Match {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"zero hp", "player:\n  max_hp: 0\n", "player.max_hp"},
		{"negative charges", "player:\n  max_dash_charges: -1\n", "player.max_dash_charges"},
		{"zero quota", "match:\n  kills_per_round: 0\n", "match.kills_per_round"},
		{"zero round", "match:\n  round_duration_s: 0\n", "match.round_duration_s"},
		{"zero spawn", "arena:\n  spawn_interval_ms: 0\n", "arena.spawn_interval_ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error naming %s, got %v", tt.field, err)
			}
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := DefaultArenaConfig()
	cfg.Player.Speed = 0
	cfg.Arena.HitRadius = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, field := range []string{"player.speed", "arena.hit_radius"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("error %q does not mention %s", err, field)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte("player: [unclosed")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.yaml")
	if err := os.WriteFile(path, []byte("match:\n  kills_per_round: 5\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Match.Rules().KillsPerRound != 5 {
		t.Errorf("expected quota 5, got %d", cfg.Match.KillsPerRound)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultArenaConfig()
	ApplyPreset(&cfg, DifficultyHard)

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip changed config:\n%+v\n%+v", cfg, back)
	}
}

func TestConversions(t *testing.T) {
	cfg := DefaultArenaConfig()

	rules := cfg.Match.Rules()
	if rules.RoundDuration != 25*time.Second || rules.KillsPerRound != 10 {
		t.Errorf("unexpected rules: %+v", rules)
	}
	tuning := cfg.Player.Tuning()
	if tuning.DashDuration != 200*time.Millisecond || tuning.MaxDashCharges != 3 {
		t.Errorf("unexpected tuning: %+v", tuning)
	}
	if cfg.Arena.SpawnInterval() != 1500*time.Millisecond {
		t.Errorf("expected spawn interval 1.5s, got %v", cfg.Arena.SpawnInterval())
	}
	if cfg.Arena.Invulnerable() != 600*time.Millisecond {
		t.Errorf("expected invulnerability 600ms, got %v", cfg.Arena.Invulnerable())
	}
}

func TestPresets(t *testing.T) {
	def := DefaultArenaConfig()

	easy := DefaultArenaConfig()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Player.MaxHP <= def.Player.MaxHP || easy.Arena.EnemySpeed >= def.Arena.EnemySpeed {
		t.Errorf("easy preset should be gentler: %+v", easy)
	}

	hard := DefaultArenaConfig()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Player.MaxHP >= def.Player.MaxHP || hard.Arena.ContactDamage <= def.Arena.ContactDamage {
		t.Errorf("hard preset should be harsher: %+v", hard)
	}

	normal := DefaultArenaConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if normal != def {
		t.Error("normal preset should not change the config")
	}

	for _, cfg := range []ArenaConfig{easy, hard} {
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset produced invalid config: %v", err)
		}
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in       string
		expected DifficultyPreset
	}{
		{"easy", DifficultyEasy},
		{"normal", DifficultyNormal},
		{"hard", DifficultyHard},
		{"nightmare", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ParsePreset(tt.in); got != tt.expected {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
