package tetris

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Snapshot is a read-only copy of everything a renderer or test needs.
type Snapshot struct {
	Tick         uint64 // Host steps since Reset (zero for bare sessions)
	Phase        Phase
	Grid         Grid
	Active       Shape // Nil when no piece is in play
	Position     core.Vec2
	Next         Shape
	Score        int
	Level        int
	Lines        int
	FallInterval time.Duration
	FinalScore   int
	LastCleared  int
}

// Snapshot returns the current session state. Shapes are deep copies.
func (s *Session) Snapshot() Snapshot {
	active, pos := s.Active()
	return Snapshot{
		Phase:        s.phase,
		Grid:         s.grid,
		Active:       active,
		Position:     pos,
		Next:         s.Next(),
		Score:        s.progress.Score(),
		Level:        s.progress.Level(),
		Lines:        s.progress.Lines(),
		FallInterval: s.progress.FallInterval(),
		FinalScore:   s.finalScore,
		LastCleared:  s.lastCleared,
	}
}

// Composite returns the grid with the active piece drawn in.
// Piece cells above the top edge are dropped.
func (snap Snapshot) Composite() Grid {
	g := snap.Grid
	for y, row := range snap.Active {
		for x, c := range row {
			gx, gy := x+snap.Position.X, y+snap.Position.Y
			if c == Empty || gy < 0 || gy >= Rows || gx < 0 || gx >= Cols {
				continue
			}
			g[gy][gx] = c
		}
	}
	return g
}
