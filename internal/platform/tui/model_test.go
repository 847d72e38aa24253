package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// scriptedGame ends after a fixed number of running steps.
type scriptedGame struct {
	resets   int
	steps    int
	endAfter int
	score    int
	started  bool
	over     bool
	seen     []core.Action
	width    int
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.score = 0
	g.started = false
	g.over = false
	g.width = cfg.ScreenW
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.seen = append(g.seen, in.Actions...)
	cleared := 0
	if in.Has(core.ActionStart) {
		if g.over {
			g.Reset(core.RuntimeConfig{ScreenW: g.width})
		}
		g.started = true
	}
	if g.started && !g.over {
		g.steps++
		if g.steps%2 == 0 {
			g.score += 40
			cleared = 1
		}
		if g.steps >= g.endAfter {
			g.over = true
		}
	}
	return core.StepResult{State: g.State(), Cleared: cleared}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.over, Started: g.started}
}

func (g *scriptedGame) Level() int { return 1 }
func (g *scriptedGame) Lines() int { return g.score / 40 }

func (g *scriptedGame) Resize(w, h int) { g.width = w }

func newTestModel(t *testing.T, g *scriptedGame, w, h int) Model {
	t.Helper()
	store, err := storage.Open()
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = w, h
	cfg.Seed = 7
	m := NewModel(g, cfg, Options{Store: store})
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func TestModelQueuesActionsForNextTick(t *testing.T) {
	g := &scriptedGame{endAfter: 100}
	m := newTestModel(t, g, 100, 30)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = update(t, m, runeKey('x'))
	if len(g.seen) != 0 {
		t.Fatal("actions should not reach the game before a tick")
	}

	m = update(t, m, TickMsg{})
	want := []core.Action{core.ActionStart, core.ActionLeft}
	if len(g.seen) != len(want) {
		t.Fatalf("seen %v, want %v", g.seen, want)
	}
	for i := range want {
		if g.seen[i] != want[i] {
			t.Errorf("seen[%d] = %v, want %v", i, g.seen[i], want[i])
		}
	}

	// Frame is cleared after each tick
	m = update(t, m, TickMsg{})
	if len(g.seen) != len(want) {
		t.Errorf("frame not cleared, seen %v", g.seen)
	}
	if !m.State().Started {
		t.Error("model should observe the started state")
	}
}

func TestModelRecordsGameOverOnce(t *testing.T) {
	g := &scriptedGame{endAfter: 4}
	m := newTestModel(t, g, 100, 30)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for range 10 {
		m = update(t, m, TickMsg{})
	}

	if !m.State().GameOver {
		t.Fatal("game should be over")
	}
	board := m.Leaderboard()
	if len(board) != 1 {
		t.Fatalf("expected 1 leaderboard entry, got %d", len(board))
	}
	if board[0].Score != 80 || board[0].Lines != 2 || board[0].Seed != 7 {
		t.Errorf("unexpected entry: %+v", board[0])
	}
	if m.LastRank() != 1 {
		t.Errorf("LastRank() = %d, expected 1", m.LastRank())
	}
	if !strings.Contains(m.View(), "Last game ranked #1") {
		t.Error("sidebar should show the rank of the finished game")
	}

	// Start again from game over and finish a second game
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	for range 10 {
		m = update(t, m, TickMsg{})
	}
	if got := len(m.Leaderboard()); got != 2 {
		t.Errorf("expected 2 leaderboard entries after second game, got %d", got)
	}
}

func TestModelQuit(t *testing.T) {
	g := &scriptedGame{endAfter: 100}
	m := newTestModel(t, g, 100, 30)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelLayout(t *testing.T) {
	tests := []struct {
		name      string
		w, h      int
		sidebar   bool
		wantGameW int
	}{
		{"wide terminal shows sidebar", 100, 30, true, 100 - sidebarWidth},
		{"narrow terminal hides sidebar", 50, 30, false, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &scriptedGame{endAfter: 100}
			m := newTestModel(t, g, 80, 24)
			m = update(t, m, tea.WindowSizeMsg{Width: tt.w, Height: tt.h})

			if m.showSidebar != tt.sidebar {
				t.Errorf("showSidebar = %v, want %v", m.showSidebar, tt.sidebar)
			}
			if g.width != tt.wantGameW {
				t.Errorf("game width = %d, want %d", g.width, tt.wantGameW)
			}
			if m.screen.Height() != tt.h-footerHeight {
				t.Errorf("screen height = %d, want %d", m.screen.Height(), tt.h-footerHeight)
			}

			view := m.View()
			if !strings.Contains(view, "scripted") {
				t.Error("view should contain the game render")
			}
			if strings.Contains(view, "SESSION BEST") != tt.sidebar {
				t.Errorf("sidebar presence mismatch for width %d", tt.w)
			}
		})
	}
}
