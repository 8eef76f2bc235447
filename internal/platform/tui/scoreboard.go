package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/dash-arena/internal/storage"
)

const maxBoardRows = 100

// Board is one result table the scoreboard can show.
type Board struct {
	GameID string
	Title  string
}

// DefaultBoards lists the played and simulated result tables.
func DefaultBoards() []Board {
	return []Board{
		{GameID: "arena", Title: "Played"},
		{GameID: "arena-sim", Title: "Simulated"},
	}
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Next, k.Prev, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "switch table"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "previous table"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel browses recorded results.
type ScoreboardModel struct {
	boards  []Board
	cursor  int
	store   *storage.Store
	results []storage.Result
	best    int
	err     error
	table   table.Model
	help    help.Model
	keys    ScoreboardKeyMap
	width   int
	height  int
	now     func() time.Time
	done    bool
}

// NewScoreboardModel creates a scoreboard showing the first board.
func NewScoreboardModel(store *storage.Store, boards []Board, width, height int) ScoreboardModel {
	if len(boards) == 0 {
		boards = DefaultBoards()
	}
	m := ScoreboardModel{
		boards: boards,
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
		now:    time.Now,
	}
	m.table = m.newTable()
	m.load()
	return m
}

func (m *ScoreboardModel) newTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 9},
		{Title: "Round", Width: 5},
		{Title: "Length", Width: 8},
		{Title: "When", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load reads the selected board from the store.
func (m *ScoreboardModel) load() {
	m.results, m.best, m.err = nil, 0, nil
	if m.store != nil {
		id := m.boards[m.cursor].GameID
		m.results, m.err = m.store.TopResults(id, maxBoardRows)
		if m.err == nil {
			m.best, m.err = m.store.BestRound(id)
		}
	}

	rows := make([]table.Row, len(m.results))
	for i, r := range m.results {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			humanize.Comma(int64(r.Score)),
			fmt.Sprintf("%d", r.Round),
			r.Duration.Truncate(time.Second).String(),
			humanize.RelTime(r.CreatedAt, m.now(), "ago", "from now"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation between boards and rows.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cursor = (m.cursor + 1) % len(m.boards)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cursor = (m.cursor - 1 + len(m.boards)) % len(m.boards)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(3, m.height-8))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the tabs, the table and the help line.
func (m ScoreboardModel) View() string {
	if m.done {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTab := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	tabs := make([]string, len(m.boards))
	for i, b := range m.boards {
		if i == m.cursor {
			tabs[i] = activeTab.Render(b.Title)
		} else {
			tabs[i] = tabStyle.Render(b.Title)
		}
	}

	var body string
	switch {
	case m.err != nil:
		body = dim.Render("Could not read results: " + m.err.Error())
	case len(m.results) == 0:
		body = dim.Italic(true).Padding(1, 2).Render("No matches recorded yet.\nRun 'arena play' to set a score!")
	default:
		body = m.table.View()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("DASH ARENA - BEST MATCHES"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	b.WriteString(frame.Render(body))
	b.WriteString("\n")
	if len(m.results) > 0 {
		b.WriteString(dim.Render(fmt.Sprintf(" %d matches  best round %d", len(m.results), m.best)))
		b.WriteString("\n")
	}
	b.WriteString(dim.Render(m.help.View(m.keys)))
	return b.String()
}

// RunScoreboard shows the scoreboard until the user quits.
func RunScoreboard(store *storage.Store, boards []Board, width, height int) error {
	_, err := tea.NewProgram(NewScoreboardModel(store, boards, width, height), tea.WithAltScreen()).Run()
	return err
}
