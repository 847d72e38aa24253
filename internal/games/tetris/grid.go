package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Board dimensions.
const (
	Rows = 20
	Cols = 10
)

// Grid holds the settled blocks. Row 0 is the top.
type Grid [Rows][Cols]Cell

// At returns the cell at column x, row y.
// Panics on out-of-range coordinates: callers never address cells outside the board.
func (g *Grid) At(x, y int) Cell {
	mustInBounds(x, y)
	return g[y][x]
}

// Set writes a cell at column x, row y.
func (g *Grid) Set(x, y int, c Cell) {
	mustInBounds(x, y)
	g[y][x] = c
}

func mustInBounds(x, y int) {
	if x < 0 || x >= Cols || y < 0 || y >= Rows {
		panic(fmt.Sprintf("tetris: grid index (%d, %d) out of range", x, y))
	}
}

// Clear empties every cell.
func (g *Grid) Clear() {
	*g = Grid{}
}

// Collides reports whether shape placed at pos overlaps a settled block or
// leaves the board through the sides or the floor. Cells above the top edge
// only fail the column bounds check; there is nothing to overlap there.
func (g *Grid) Collides(s Shape, pos core.Vec2) bool {
	for y, row := range s {
		for x, c := range row {
			if c == Empty {
				continue
			}
			gx, gy := x+pos.X, y+pos.Y
			if gy >= Rows || gx < 0 || gx >= Cols {
				return true
			}
			if gy >= 0 && g[gy][gx] != Empty {
				return true
			}
		}
	}
	return false
}

// Merge copies the shape's occupied cells into the grid.
// The caller must have verified the placement with Collides.
func (g *Grid) Merge(s Shape, pos core.Vec2) {
	for y, row := range s {
		for x, c := range row {
			if c == Empty {
				continue
			}
			g.Set(x+pos.X, y+pos.Y, c)
		}
	}
}

// rowComplete reports whether every cell of row y is occupied.
func (g *Grid) rowComplete(y int) bool {
	for _, c := range g[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// SweepCompletedRows removes full rows, shifting the rows above them down and
// inserting empty rows at the top. Returns the number of rows removed.
func (g *Grid) SweepCompletedRows() int {
	cleared := 0
	for y := Rows - 1; y >= 0; {
		if !g.rowComplete(y) {
			y--
			continue
		}
		// Row y now receives the row above it, so it is checked again.
		copy(g[1:y+1], g[0:y])
		g[0] = [Cols]Cell{}
		cleared++
	}
	return cleared
}

// Cells returns a copy of the grid as a slice of rows.
func (g *Grid) Cells() [][]Cell {
	out := make([][]Cell, Rows)
	for y := range g {
		out[y] = make([]Cell, Cols)
		copy(out[y], g[y][:])
	}
	return out
}

// Filled returns the number of occupied cells.
func (g *Grid) Filled() int {
	n := 0
	for y := range g {
		for _, c := range g[y] {
			if c != Empty {
				n++
			}
		}
	}
	return n
}
