package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// resizer is implemented by games that can adapt to a new screen size
// without losing their state.
type resizer interface {
	Resize(w, h int)
}

// progressReporter is implemented by games that track level and cleared lines.
type progressReporter interface {
	Level() int
	Lines() int
}

// Options configures optional collaborators of the host.
type Options struct {
	Store  *storage.Store // Leaderboard; nil disables recording
	Keys   KeyMap
	Logger *log.Logger // nil discards log output
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	config      core.RuntimeConfig
	keys        KeyMap
	help        help.Model
	logger      *log.Logger
	inputFrame  core.InputFrame
	gameState   core.GameState
	board       table.Model
	leaderboard []storage.ScoreEntry
	lastRank    int // Leaderboard position of the last finished game, 0 before any
	showSidebar bool
	quitting    bool
	scoreSaved  bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := opts.Keys
	if len(keys.Quit.Keys()) == 0 {
		keys = DefaultKeyMap()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		config:     cfg,
		keys:       keys,
		help:       help.New(),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		board:      newLeaderboardTable(),
	}
	m.layout(cfg.ScreenW, cfg.ScreenH)
	m.loadLeaderboard(0)

	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("game ready", "game", m.game.ID(), "seed", m.config.Seed, "tps", m.config.TickRate)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the mapped action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.logger.Info("quit", "score", m.gameState.Score)
		return m, tea.Quit
	}

	m.inputFrame.Set(action)
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.layout(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.Started {
		m.game.Reset(m.config)
	}

	return m, nil
}

// layout splits the terminal between the board, the sidebar and the help footer.
func (m *Model) layout(w, h int) {
	m.showSidebar = w >= minWidthForSidebar
	gameW := w
	if m.showSidebar {
		gameW -= sidebarWidth
	}
	gameH := max(h-footerHeight, 0)

	m.config.ScreenW = gameW
	m.config.ScreenH = gameH
	m.screen.Resize(gameW, gameH)
	m.help.Width = w
}

// handleTick runs one simulation step with the queued actions.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prev := m.gameState
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.observe(prev, result)

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// observe logs state transitions and records finished games.
func (m *Model) observe(prev core.GameState, result core.StepResult) {
	state := result.State

	if prev.GameOver && !state.GameOver {
		m.scoreSaved = false
		m.logger.Info("game restarted")
	}
	if !prev.Started && state.Started {
		m.logger.Info("game started")
	}
	if prev.Paused != state.Paused && !state.GameOver {
		m.logger.Debug("pause toggled", "paused", state.Paused)
	}
	if result.Cleared > 0 {
		m.logger.Debug("rows cleared", "rows", result.Cleared, "score", state.Score)
	}

	if state.GameOver && !m.scoreSaved {
		m.recordGameOver(state.Score)
		m.scoreSaved = true
	}
}

// recordGameOver saves the final score and refreshes the leaderboard.
func (m *Model) recordGameOver(score int) {
	entry := storage.ScoreEntry{
		GameID: m.game.ID(),
		Score:  score,
		Seed:   m.config.Seed,
	}
	if p, ok := m.game.(progressReporter); ok {
		entry.Level = p.Level()
		entry.Lines = p.Lines()
	}

	if m.store == nil {
		m.logger.Info("game over", "score", entry.Score, "level", entry.Level, "lines", entry.Lines)
		return
	}

	id, err := m.store.SaveScore(entry)
	if err != nil {
		m.logger.Warn("cannot save score", "error", err)
		return
	}

	rank, err := m.store.Rank(entry.GameID, entry.Score)
	if err != nil {
		m.logger.Warn("cannot rank score", "error", err)
		rank = 0
	}
	m.lastRank = rank
	m.logger.Info("game over", "score", entry.Score, "level", entry.Level, "lines", entry.Lines, "rank", rank)

	m.loadLeaderboard(id)
}

// loadLeaderboard reloads the sidebar, highlighting the given entry.
func (m *Model) loadLeaderboard(highlight int64) {
	if m.store == nil {
		return
	}

	entries, err := m.store.TopScores(m.game.ID(), leaderboardSize)
	if err != nil {
		m.logger.Warn("cannot load leaderboard", "error", err)
		return
	}
	m.leaderboard = entries
	setLeaderboard(&m.board, entries, highlight)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	view := RenderScreen(m.screen)

	if m.showSidebar {
		view = lipgloss.JoinHorizontal(lipgloss.Top, view, renderSidebar(m.board, m.leaderboard, m.lastRank))
	}

	return lipgloss.JoinVertical(lipgloss.Left, view, helpStyle.Render(m.help.View(m.keys)))
}

// State returns the game state observed on the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// Leaderboard returns the entries currently shown in the sidebar.
func (m Model) Leaderboard() []storage.ScoreEntry {
	return m.leaderboard
}

// LastRank returns the leaderboard position of the last finished game,
// or 0 when none has been ranked.
func (m Model) LastRank() int {
	return m.lastRank
}

// Run starts the Bubble Tea program with the given model.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
