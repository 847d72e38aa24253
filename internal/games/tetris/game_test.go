package tetris

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir()) // keep user config out of tests

	g := New()
	g.Reset(core.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists("tetris"))

	g, err := registry.Create("tetris")
	require.NoError(t, err)
	assert.Equal(t, "Tetris", g.Title())
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed and inputs should produce identical snapshots
	g1 := newTestGame(t, 12345)
	g2 := newTestGame(t, 12345)

	script := map[int][]core.Action{
		0:   {core.ActionStart},
		10:  {core.ActionLeft, core.ActionLeft},
		20:  {core.ActionRotate},
		30:  {core.ActionHardDrop},
		45:  {core.ActionRight, core.ActionRotate, core.ActionRotate},
		60:  {core.ActionHardDrop},
		90:  {core.ActionSoftDrop},
		120: {core.ActionHardDrop},
	}

	for i := range 600 {
		in := frame(script[i]...)
		g1.Step(in)
		g2.Step(in)
	}

	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
}

func TestStepGravityTiming(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(frame(core.ActionStart))
	for range 59 {
		g.Step(frame())
	}
	assert.Equal(t, 0, g.Snapshot().Position.Y, "60 ticks at 60fps do not exceed one second")

	g.Step(frame())
	assert.Equal(t, 1, g.Snapshot().Position.Y)
}

func TestStepAppliesActionsInOrder(t *testing.T) {
	g := newTestGame(t, 5)
	g.Step(frame(core.ActionStart))
	start := g.Snapshot().Position.X

	// Pause first: the moves that follow are ignored.
	g.Step(frame(core.ActionPause, core.ActionLeft, core.ActionLeft))
	assert.Equal(t, start, g.Snapshot().Position.X)

	// Resume first: both moves apply.
	g.Step(frame(core.ActionPause, core.ActionLeft, core.ActionLeft))
	assert.Equal(t, start-2, g.Snapshot().Position.X)
}

func TestGameState(t *testing.T) {
	g := newTestGame(t, 9)
	assert.False(t, g.State().Started)

	g.Step(frame(core.ActionStart))
	assert.True(t, g.State().Started)
	assert.False(t, g.State().Paused)

	g.Step(frame(core.ActionPause))
	assert.True(t, g.State().Paused)

	g.Step(frame(core.ActionPause))
	assert.False(t, g.State().Paused)
}

func TestRestartAction(t *testing.T) {
	g := newTestGame(t, 11)
	g.Step(frame(core.ActionStart))
	g.Step(frame(core.ActionHardDrop))
	grid := g.Session().Grid()
	require.Equal(t, 4, grid.Filled())

	res := g.Step(frame(core.ActionRestart))

	assert.True(t, res.State.Started)
	grid = g.Session().Grid()
	assert.Equal(t, 0, grid.Filled())
	assert.Equal(t, PhaseRunning, g.Session().Phase())
}

func TestStepReportsClearedRows(t *testing.T) {
	g := newTestGame(t, 2)
	g.Step(frame(core.ActionStart))

	s := g.Session()
	forceActive(s, KindI)
	for _, x := range []int{0, 1, 2, 7, 8, 9} {
		s.grid[19][x] = Cell(KindZ)
	}

	res := g.Step(frame(core.ActionHardDrop))
	assert.Equal(t, 1, res.Cleared)
	assert.Equal(t, 40, res.State.Score)
}

func TestStepClearedRowsAcrossRestart(t *testing.T) {
	setup := func(t *testing.T) *Game {
		g := newTestGame(t, 2)
		g.Step(frame(core.ActionStart))
		s := g.Session()
		forceActive(s, KindI)
		for _, x := range []int{0, 1, 2, 7, 8, 9} {
			s.grid[19][x] = Cell(KindZ)
		}
		return g
	}

	t.Run("restart after earlier clear", func(t *testing.T) {
		g := setup(t)
		require.Equal(t, 1, g.Step(frame(core.ActionHardDrop)).Cleared)

		res := g.Step(frame(core.ActionRestart))
		assert.Equal(t, 0, res.Cleared)
		assert.Equal(t, 0, g.Session().Lines())
	})

	t.Run("clear then restart in one frame", func(t *testing.T) {
		g := setup(t)

		res := g.Step(frame(core.ActionHardDrop, core.ActionRestart))
		assert.Equal(t, 1, res.Cleared)
		assert.Equal(t, 0, res.State.Score)
	})
}

func TestTooSmallScreenPauses(t *testing.T) {
	g := newTestGame(t, 4)
	g.Resize(20, 10)

	res := g.Step(frame(core.ActionStart))
	assert.True(t, res.State.Paused)
	assert.False(t, res.State.Started, "input ignored while the window is too small")

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")

	g.Resize(80, 24)
	res = g.Step(frame(core.ActionStart))
	assert.True(t, res.State.Started)
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 8)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	assert.Contains(t, screen.String(), "Enter to start")

	g.Step(frame(core.ActionStart, core.ActionHardDrop))
	g.Render(screen)
	out := screen.String()
	assert.Contains(t, out, "NEXT")
	assert.Contains(t, out, "SCORE")
	assert.NotContains(t, out, "Enter to start")
	assert.Equal(t, 4*cellW, strings.Count(out, string(BlockChar))-previewBlocks(g), "settled piece plus falling piece")

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	assert.Contains(t, screen.String(), "Paused")
}

// previewBlocks counts block glyphs drawn for the falling and next pieces.
func previewBlocks(g *Game) int {
	snap := g.Snapshot()
	n := 0
	for _, s := range []Shape{snap.Active, snap.Next} {
		for _, row := range s {
			for _, c := range row {
				if c != Empty {
					n += cellW
				}
			}
		}
	}
	return n
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, core.ColorCyan, ColorOf(Cell(KindI)))
	assert.Equal(t, core.ColorRed, ColorOf(Cell(KindZ)))
	assert.Equal(t, core.ColorDefault, ColorOf(Cell(200)))
}
