package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/dash-arena/internal/core"
	"github.com/vovakirdan/dash-arena/internal/games/arena"
	"github.com/vovakirdan/dash-arena/internal/match"
	"github.com/vovakirdan/dash-arena/internal/platform/tui"
	"github.com/vovakirdan/dash-arena/internal/storage"
	"github.com/vovakirdan/dash-arena/internal/timer"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a match in the terminal.

Controls:
  WASD/Arrows - Move
  Space       - Dash (defeats enemies on contact)
  Enter       - Start
  P/Esc       - Pause
  R           - Restart (after game over)
  Q/Ctrl+C    - Quit

Examples:
  arena play
  arena play --difficulty easy
  arena play --config ./my-arena.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	logger, logFile, err := tui.OpenLogFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		logger = nil
	} else {
		defer logFile.Close()
	}

	game, err := arena.New(cfg, timer.SystemClock{}, match.NewHost())
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}
	defer game.Close()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	if logger != nil {
		logger.Info("starting", "screen", fmt.Sprintf("%dx%d", width, height), "fps", flagFPS)
	}

	if err := tui.Run(game, store, logger, runtime); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
