package tetris

import (
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Controller owns the falling piece and moves it against a grid.
type Controller struct {
	grid  *Grid
	shape Shape
	pos   core.Vec2
}

// NewController creates a controller bound to the given grid.
func NewController(g *Grid) *Controller {
	return &Controller{grid: g}
}

// Shape returns the active shape. Nil before the first spawn.
func (c *Controller) Shape() Shape {
	return c.shape
}

// Position returns the offset of the shape's top-left corner in the grid.
func (c *Controller) Position() core.Vec2 {
	return c.pos
}

// Active reports whether a piece is in play.
func (c *Controller) Active() bool {
	return c.shape != nil
}

// Clear drops the active piece without merging it.
func (c *Controller) Clear() {
	c.shape = nil
	c.pos = core.Vec2{}
}

// Spawn takes ownership of next and places it centered on the top row.
// It returns a freshly generated piece for the caller to queue and whether
// the spawned piece already collides, which means the board is topped out.
func (c *Controller) Spawn(next Shape, rng *rand.Rand) (Shape, bool) {
	c.shape = next
	c.pos = core.Vec2{
		X: Cols/2 - next.Width()/2,
		Y: 0,
	}
	queued := Instantiate(RandomKind(rng))
	return queued, c.grid.Collides(c.shape, c.pos)
}

// Move shifts the piece horizontally by dx. Returns false and leaves the
// piece in place when the shifted position collides.
func (c *Controller) Move(dx int) bool {
	c.pos.X += dx
	if c.grid.Collides(c.shape, c.pos) {
		c.pos.X -= dx
		return false
	}
	return true
}

// Rotate turns the piece clockwise. A colliding result is nudged sideways by
// +1, -2, +3, -4, ... columns (applied cumulatively) until it fits. The bound
// is checked right after each nudge: once the following nudge is positive and
// wider than the shape, the rotation is abandoned without testing the position
// just reached, and the piece is restored exactly. For three and four wide
// shapes this tries net shifts of +1, -1 and +2; for O only +1.
func (c *Controller) Rotate() bool {
	original := c.shape.Clone()
	originalX := c.pos.X

	c.shape.Rotate()
	offset := 1
	for c.grid.Collides(c.shape, c.pos) {
		c.pos.X += offset
		offset = -(offset + core.Sign(offset))
		if offset > c.shape.Width() {
			c.shape = original
			c.pos.X = originalX
			return false
		}
	}
	return true
}

// SoftDrop moves the piece one row down. When that is blocked the piece
// stays put and SoftDrop reports it as settled.
func (c *Controller) SoftDrop() bool {
	c.pos.Y++
	if c.grid.Collides(c.shape, c.pos) {
		c.pos.Y--
		return true
	}
	return false
}

// HardDrop moves the piece down to the lowest free position.
// Returns the number of rows travelled. The piece is always settled afterwards.
func (c *Controller) HardDrop() int {
	start := c.pos.Y
	for !c.grid.Collides(c.shape, c.pos) {
		c.pos.Y++
	}
	c.pos.Y--
	return c.pos.Y - start
}

// Settle merges the piece into the grid, sweeps completed rows and releases
// the piece. Returns the number of rows cleared.
func (c *Controller) Settle() int {
	c.grid.Merge(c.shape, c.pos)
	c.shape = nil
	return c.grid.SweepCompletedRows()
}

