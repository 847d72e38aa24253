// Package tetris implements the falling-block puzzle engine: piece catalog,
// settled-block grid, active piece control, scoring progression and the
// session state machine that ties them together.
package tetris

import (
	"fmt"
	"math/rand"
)

// Kind identifies one of the seven tetromino shapes.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// KindCount is the number of playable kinds.
const KindCount = 7

// String returns the conventional letter for the kind.
func (k Kind) String() string {
	if k == KindNone || k > KindZ {
		return "-"
	}
	return string("IJLOSTZ"[k-1])
}

// Cell is a grid or shape cell value: 0 is empty, otherwise the Kind occupying it.
type Cell uint8

// Empty is the value of an unoccupied cell.
const Empty Cell = 0

// Kind returns the piece kind stored in the cell.
func (c Cell) Kind() Kind {
	return Kind(c)
}

// Shape is a square matrix of cells describing a piece in one orientation.
type Shape [][]Cell

// Catalog templates. Never handed out directly; Instantiate copies them.
var templates = [KindCount + 1]Shape{
	KindI: {
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	},
	KindJ: {
		{2, 0, 0},
		{2, 2, 2},
		{0, 0, 0},
	},
	KindL: {
		{0, 0, 3},
		{3, 3, 3},
		{0, 0, 0},
	},
	KindO: {
		{4, 4},
		{4, 4},
	},
	KindS: {
		{0, 5, 5},
		{5, 5, 0},
		{0, 0, 0},
	},
	KindT: {
		{0, 6, 0},
		{6, 6, 6},
		{0, 0, 0},
	},
	KindZ: {
		{7, 7, 0},
		{0, 7, 7},
		{0, 0, 0},
	},
}

// Kinds returns all playable kinds in catalog order.
func Kinds() []Kind {
	return []Kind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}
}

// Instantiate returns a fresh, independently owned copy of the kind's template.
func Instantiate(k Kind) Shape {
	if k == KindNone || k > KindZ {
		panic(fmt.Sprintf("tetris: unknown piece kind %d", k))
	}
	return templates[k].Clone()
}

// RandomKind picks one of the seven kinds with uniform probability.
func RandomKind(rng *rand.Rand) Kind {
	return Kind(rng.Intn(KindCount) + 1)
}

// Width returns the number of columns in the shape matrix.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows in the shape matrix.
func (s Shape) Height() int {
	return len(s)
}

// Kind returns the kind encoded in the shape's occupied cells.
func (s Shape) Kind() Kind {
	for _, row := range s {
		for _, c := range row {
			if c != Empty {
				return c.Kind()
			}
		}
	}
	return KindNone
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for y, row := range s {
		out[y] = make([]Cell, len(row))
		copy(out[y], row)
	}
	return out
}

// Equal reports whether two shapes have identical dimensions and cells.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(o[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != o[y][x] {
				return false
			}
		}
	}
	return true
}

// Rotate turns the shape 90 degrees clockwise in place:
// transpose, then reverse every row.
func (s Shape) Rotate() {
	for y := range s {
		for x := 0; x < y; x++ {
			s[x][y], s[y][x] = s[y][x], s[x][y]
		}
	}
	for _, row := range s {
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
}
