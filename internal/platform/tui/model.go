package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/dash-arena/internal/core"
	"github.com/vovakirdan/dash-arena/internal/games/arena"
	"github.com/vovakirdan/dash-arena/internal/match"
	"github.com/vovakirdan/dash-arena/internal/storage"
)

// footerRows is the space below the playfield: progress bar and help line.
const footerRows = 2

// Model is the Bubble Tea model for running the arena.
type Model struct {
	game      *arena.Game
	screen    *core.Screen
	store     *storage.Store
	logger    *log.Logger
	config    core.RuntimeConfig
	keys      KeyMap
	held      *HeldKeys
	edges     core.InputFrame // One-shot actions since the last tick
	help      help.Model
	progress  progress.Model
	lastTick  time.Time
	run       *runInfo
	gameState core.GameState
	quitting  bool
}

// runInfo tracks the current match run for result recording.
type runInfo struct {
	id      string
	started time.Time
	saved   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game *arena.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = max(10, cfg.ScreenW-20)

	m := Model{
		game:     game,
		screen:   core.NewScreen(cfg.ScreenW, max(4, cfg.ScreenH-footerRows)),
		store:    store,
		logger:   logger,
		config:   cfg,
		keys:     DefaultKeyMap(),
		held:     NewHeldKeys(),
		edges:    core.NewInputFrame(),
		help:     help.New(),
		progress: bar,
		run:      &runInfo{id: storage.NewRunID(), started: time.Now()},
	}
	m.watchMatch()
	return m
}

// watchMatch logs match events as they happen. The match outlives restarts,
// so this runs once and the hooks read the run through its pointer.
func (m Model) watchMatch() {
	mt := m.game.Match()
	run := m.run
	mt.OnPhaseChange(func(from, to match.Phase) {
		m.logger.Info("phase changed", "run", run.id, "from", from, "to", to)
	})
	mt.OnRoundAdvance(func(round int) {
		m.logger.Info("round advanced", "run", run.id, "round", round, "score", mt.Score())
	})
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// gameConfig returns the runtime config sized to the playfield area.
func (m Model) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = m.screen.Height()
	return cfg
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, held := m.keys.MapKey(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case msg.String() == "ctrl+s":
		m.saveScreenshot()
	case held:
		m.held.Press(action, time.Now())
	case action != core.ActionNone:
		m.edges.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events without restarting the match.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	h := max(4, msg.Height-footerRows)
	m.screen.Resize(msg.Width, h)
	m.game.Resize(msg.Width, h)
	m.progress.Width = max(10, msg.Width-20)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDT(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	frame := core.NewInputFrame()
	m.held.Fill(&frame, now)
	for a := range m.edges.Actions {
		frame.Set(a)
	}
	m.edges.Clear()

	wasOver := m.gameState.GameOver
	result := m.game.StepDT(dt, frame)
	m.gameState = result.State

	if wasOver && !m.gameState.GameOver {
		*m.run = runInfo{id: storage.NewRunID(), started: now}
		m.held.Release()
	}

	// Save result on game over (once)
	if m.gameState.GameOver && !m.run.saved {
		m.recordResult(now)
	}

	return m, tickCmd(m.config.TickRate)
}

func (m Model) recordResult(now time.Time) {
	m.run.saved = true
	m.logger.Info("match over", "run", m.run.id, "score", m.gameState.Score, "round", m.gameState.Round)
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	_, err := m.store.SaveResult(storage.Result{
		RunID:    m.run.id,
		GameID:   m.game.ID(),
		Score:    m.gameState.Score,
		Round:    m.gameState.Round,
		Duration: now.Sub(m.run.started),
	})
	if err != nil {
		m.logger.Error("could not save result", "run", m.run.id, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arena", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var sb strings.Builder
	sb.WriteString(RenderScreen(m.screen))
	sb.WriteString("\n Round ")
	sb.WriteString(m.progress.ViewAs(m.game.Match().RoundProgress()))
	sb.WriteString("\n ")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// Run starts the Bubble Tea program for the game.
func Run(game *arena.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// OpenLogFile creates a logger writing to ~/.arena/arena.log.
// The alternate screen owns stdout, so the TUI never logs to the terminal.
func OpenLogFile() (*log.Logger, io.Closer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("tui: cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".arena")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "arena.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("tui: cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "arena",
	})
	return logger, f, nil
}
