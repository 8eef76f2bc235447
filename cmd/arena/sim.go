package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/dash-arena/internal/core"
	"github.com/vovakirdan/dash-arena/internal/sim"
	"github.com/vovakirdan/dash-arena/internal/storage"
)

var (
	flagTicks  int
	flagSave   bool
	flagQuiet  bool
	flagWidth  int
	flagHeight int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless bot match",
	Long: `Run one match without a terminal UI. A simple bot steers toward the
nearest enemy and dashes when it is in range. Time is simulated, so runs
finish instantly and are reproducible for a given --seed.

Examples:
  arena sim
  arena sim --seed 7 --ticks 36000
  arena sim --difficulty hard --save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 60*120, "Maximum ticks to simulate")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Record the result in the database")
	simCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "Only print the summary")
	simCmd.Flags().IntVar(&flagWidth, "width", 80, "Virtual screen width")
	simCmd.Flags().IntVar(&flagHeight, "height", 24, "Virtual screen height")
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arena-sim",
	})
	if flagQuiet {
		logger.SetLevel(log.WarnLevel)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("simulating", "seed", seed, "ticks", flagTicks, "fps", flagFPS)

	summary, err := sim.Run(sim.Options{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  flagWidth,
			ScreenH:  flagHeight,
			TickRate: flagFPS,
			Seed:     seed,
		},
		MaxTicks: flagTicks,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	outcome := "survived"
	if summary.GameOver {
		outcome = "defeated"
	}
	fmt.Printf("Outcome: %s after %s (%d ticks)\n", outcome, summary.Elapsed.Round(time.Millisecond), summary.Ticks)
	fmt.Printf("Score:   %d\n", summary.Score)
	fmt.Printf("Round:   %d\n", summary.Round)
	fmt.Printf("HP left: %d\n", summary.HP)
	fmt.Printf("Dashes:  %d\n", summary.Dashes)

	if !flagSave || summary.Score <= 0 {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	if _, err := store.SaveResult(storage.Result{
		GameID:   "arena-sim",
		Score:    summary.Score,
		Round:    summary.Round,
		Duration: summary.Elapsed,
	}); err != nil {
		return err
	}
	logger.Info("result saved", "db", flagDBPath)
	return nil
}
