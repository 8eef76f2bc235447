// arena is a terminal dash arena: move, dash through enemies, survive the rounds.
//
// Usage:
//
//	arena play              - Play in the terminal
//	arena sim               - Run a headless bot match and print the summary
//	arena scores            - Show the best recorded matches
//	arena config            - Print the effective configuration as YAML
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.arena/results.db)
//	--config <path>     - Custom arena config YAML
//	--difficulty <name> - Difficulty preset: easy, normal, hard
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dash-arena/internal/config"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arena",
	Short: "Dash Arena - a top-down dash brawler in your terminal",
	Long: `Dash Arena is a terminal game: steer with WASD, dash through the
enemies that chase you, and clear ten kills to advance each round.

Available commands:
  play     - Play in the terminal
  sim      - Headless bot match
  scores   - View best matches
  config   - Print effective configuration

Examples:
  arena play
  arena play --difficulty hard
  arena sim --seed 42 --ticks 7200
  arena scores`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arena/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the arena config from the global flags.
func loadConfig() (config.ArenaConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("difficulty %s: %w", preset, err)
		}
	}
	return cfg, nil
}
