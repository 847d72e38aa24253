package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Phase is the session lifecycle state.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseRunning
	PhasePaused
	PhaseOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Command is a discrete player or host request.
type Command int

const (
	CmdMoveLeft Command = iota
	CmdMoveRight
	CmdRotate
	CmdSoftDrop
	CmdHardDrop
	CmdTogglePause
	CmdStart
	CmdReset
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdMoveLeft:
		return "MoveLeft"
	case CmdMoveRight:
		return "MoveRight"
	case CmdRotate:
		return "Rotate"
	case CmdSoftDrop:
		return "SoftDrop"
	case CmdHardDrop:
		return "HardDrop"
	case CmdTogglePause:
		return "TogglePause"
	case CmdStart:
		return "Start"
	case CmdReset:
		return "Reset"
	default:
		return "Unknown"
	}
}

// Session is one independent game: board, falling piece, queue and score.
// It is not safe for concurrent use; hosts serialize Tick and Command calls.
type Session struct {
	rng         *rand.Rand
	grid        Grid
	ctrl        *Controller
	next        Shape
	progress    *Progression
	phase       Phase
	dropCounter time.Duration
	finalScore  int
	lastCleared int
}

// NewSession creates a session in the Ready phase.
func NewSession(seed int64, rules Rules) *Session {
	s := &Session{
		rng:      rand.New(rand.NewSource(seed)),
		progress: NewProgression(rules),
	}
	s.ctrl = NewController(&s.grid)
	return s
}

// Tick advances gravity by the elapsed time. Ignored unless running.
func (s *Session) Tick(delta time.Duration) {
	if s.phase != PhaseRunning {
		return
	}
	s.dropCounter += delta
	if s.dropCounter > s.progress.FallInterval() {
		s.softDrop()
	}
}

// Command applies a discrete command. Commands that do not apply to the
// current phase are ignored.
func (s *Session) Command(cmd Command) {
	switch cmd {
	case CmdStart:
		s.Start()
		return
	case CmdReset:
		s.Reset()
		return
	case CmdTogglePause:
		s.TogglePause()
		return
	}

	if s.phase != PhaseRunning {
		return
	}

	switch cmd {
	case CmdMoveLeft:
		s.ctrl.Move(-1)
	case CmdMoveRight:
		s.ctrl.Move(1)
	case CmdRotate:
		s.ctrl.Rotate()
	case CmdSoftDrop:
		s.softDrop()
	case CmdHardDrop:
		s.ctrl.HardDrop()
		s.settle()
		s.dropCounter = 0
	}
}

// Start begins play from Ready, resumes from Paused, and starts over from Over.
func (s *Session) Start() {
	switch s.phase {
	case PhaseRunning:
		return
	case PhasePaused:
		s.phase = PhaseRunning
		return
	case PhaseOver:
		s.Reset()
	}

	s.phase = PhaseRunning
	if !s.ctrl.Active() {
		s.spawn()
	}
}

// TogglePause switches between Running and Paused.
func (s *Session) TogglePause() {
	switch s.phase {
	case PhaseRunning:
		s.phase = PhasePaused
	case PhasePaused:
		s.phase = PhaseRunning
	}
}

// Reset clears the board, progression and piece queue and returns to Ready.
func (s *Session) Reset() {
	s.grid.Clear()
	s.ctrl.Clear()
	s.progress.Reset()
	s.next = nil
	s.dropCounter = 0
	s.finalScore = 0
	s.lastCleared = 0
	s.phase = PhaseReady
}

func (s *Session) softDrop() {
	if s.ctrl.SoftDrop() {
		s.settle()
	}
	s.dropCounter = 0
}

// settle locks the piece, scores cleared rows and spawns the queued piece.
func (s *Session) settle() {
	s.lastCleared = s.ctrl.Settle()
	s.progress.ApplyClearedRows(s.lastCleared)
	s.spawn()
}

func (s *Session) spawn() {
	if s.next == nil {
		s.next = Instantiate(RandomKind(s.rng))
	}
	queued, collided := s.ctrl.Spawn(s.next, s.rng)
	s.next = queued
	if collided {
		s.phase = PhaseOver
		s.finalScore = s.progress.Score()
	}
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the current score.
func (s *Session) Score() int { return s.progress.Score() }

// Level returns the current level.
func (s *Session) Level() int { return s.progress.Level() }

// Lines returns the total cleared rows.
func (s *Session) Lines() int { return s.progress.Lines() }

// FallInterval returns the current automatic drop interval.
func (s *Session) FallInterval() time.Duration { return s.progress.FallInterval() }

// FinalScore returns the score captured when the game ended, or 0.
func (s *Session) FinalScore() int { return s.finalScore }

// LastCleared returns the rows removed by the most recent settle.
func (s *Session) LastCleared() int { return s.lastCleared }

// Grid returns a copy of the settled blocks.
func (s *Session) Grid() Grid { return s.grid }

// Active returns a copy of the falling piece and its position.
// The shape is nil when no piece is in play.
func (s *Session) Active() (Shape, core.Vec2) {
	return s.ctrl.Shape().Clone(), s.ctrl.Position()
}

// Next returns a copy of the queued piece, nil before the first spawn.
func (s *Session) Next() Shape { return s.next.Clone() }
