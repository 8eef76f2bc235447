package main

import (
	"os"
	"path/filepath"
	"testing"
)

func withFlags(t *testing.T, configPath, difficulty string) {
	t.Helper()
	oldConfig, oldDifficulty := flagConfig, flagDifficulty
	flagConfig, flagDifficulty = configPath, difficulty
	t.Cleanup(func() {
		flagConfig, flagDifficulty = oldConfig, oldDifficulty
	})
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arena.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	return path
}

func TestLoadConfigAppliesPreset(t *testing.T) {
	withFlags(t, writeConfig(t, "arena:\n  contact_damage: 2\n"), "hard")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}
	if cfg.Arena.ContactDamage != 3 {
		t.Errorf("ContactDamage = %d, expected 3", cfg.Arena.ContactDamage)
	}
}

func TestLoadConfigUnknownDifficulty(t *testing.T) {
	withFlags(t, writeConfig(t, "match:\n  kills_per_round: 5\n"), "brutal")

	if _, err := loadConfig(); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestLoadConfigRevalidatesAfterPreset(t *testing.T) {
	// Valid on its own, but the hard preset overflows the damage.
	withFlags(t, writeConfig(t, "arena:\n  contact_damage: 9223372036854775807\n"), "hard")

	if _, err := loadConfig(); err == nil {
		t.Error("expected a preset that breaks the config to be rejected")
	}
}
