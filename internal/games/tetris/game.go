package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts a Session to the platform's fixed-tick game interface.
type Game struct {
	session  *Session
	runtime  core.RuntimeConfig
	rules    Rules
	step     time.Duration // Simulated time per Step
	tick     uint64
	tooSmall bool
}

// New creates a new tetris game. Call Reset before stepping.
func New() *Game {
	return &Game{rules: DefaultRules()}
}

func init() {
	registry.Register("tetris", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tetris"
}

// RulesFromConfig converts loaded configuration into engine rules.
func RulesFromConfig(cfg config.TetrisConfig) Rules {
	rules := DefaultRules()
	copy(rules.LinePoints[:], cfg.Scoring.LinePoints)
	rules.LinesPerLevel = cfg.Scoring.LinesPerLevel
	rules.BaseInterval = time.Duration(cfg.Speed.BaseIntervalMs) * time.Millisecond
	rules.IntervalStep = time.Duration(cfg.Speed.StepMs) * time.Millisecond
	rules.MinInterval = time.Duration(cfg.Speed.MinIntervalMs) * time.Millisecond
	return rules
}

// Reset initializes a fresh session in the Ready phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	g.rules = RulesFromConfig(cfg)

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.step = time.Second / time.Duration(tickRate)
	g.tick = 0
	g.session = NewSession(runtime.Seed, g.rules)
	g.checkScreenSize()
}

// Resize updates the known screen size without touching game state.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.checkScreenSize()
}

func (g *Game) checkScreenSize() {
	g.tooSmall = g.runtime.ScreenW < MinScreenW || g.runtime.ScreenH < MinScreenH
}

// Step applies this frame's actions in order, then advances gravity by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	cleared := 0
	for _, a := range in.Actions {
		cleared += g.clearedBy(func() { g.apply(a) })
	}
	cleared += g.clearedBy(func() { g.session.Tick(g.step) })

	return core.StepResult{
		State:   g.State(),
		Cleared: cleared,
	}
}

// clearedBy runs fn and returns the rows it cleared. A reset inside fn
// drops the line count, which counts as nothing cleared.
func (g *Game) clearedBy(fn func()) int {
	before := g.session.Lines()
	fn()
	return max(g.session.Lines()-before, 0)
}

// apply translates a platform action into session commands.
func (g *Game) apply(a core.Action) {
	switch a {
	case core.ActionLeft:
		g.session.Command(CmdMoveLeft)
	case core.ActionRight:
		g.session.Command(CmdMoveRight)
	case core.ActionRotate:
		g.session.Command(CmdRotate)
	case core.ActionSoftDrop:
		g.session.Command(CmdSoftDrop)
	case core.ActionHardDrop:
		g.session.Command(CmdHardDrop)
	case core.ActionPause:
		g.session.Command(CmdTogglePause)
	case core.ActionStart:
		g.session.Command(CmdStart)
	case core.ActionRestart:
		g.session.Command(CmdReset)
		g.session.Command(CmdStart)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := g.session.Phase()
	return core.GameState{
		Score:    g.session.Score(),
		GameOver: phase == PhaseOver,
		Paused:   phase == PhasePaused || g.tooSmall,
		Started:  phase != PhaseReady,
	}
}

// Level returns the current level.
func (g *Game) Level() int {
	return g.session.Level()
}

// Lines returns the total rows cleared in this session.
func (g *Game) Lines() int {
	return g.session.Lines()
}

// Session exposes the underlying session for hosts that drive it directly.
func (g *Game) Session() *Session {
	return g.session
}

// Snapshot returns the session snapshot stamped with the host tick count.
func (g *Game) Snapshot() Snapshot {
	snap := g.session.Snapshot()
	snap.Tick = g.tick
	return snap
}
