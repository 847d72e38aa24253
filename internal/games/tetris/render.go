package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Layout: each board cell is two characters wide.
const (
	cellW      = 2
	boardW     = Cols*cellW + 2 // Including border
	boardH     = Rows + 2
	panelGap   = 2
	panelW     = 14
	MinScreenW = boardW + panelGap + panelW
	MinScreenH = boardH
)

// Visual characters for rendering
const (
	BlockChar = '█'
	EmptyChar = '·'
)

// kindColors maps piece kinds to screen colors.
var kindColors = [KindCount + 1]core.Color{
	KindNone: core.ColorGray,
	KindI:    core.ColorCyan,
	KindJ:    core.ColorBlue,
	KindL:    core.ColorOrange,
	KindO:    core.ColorYellow,
	KindS:    core.ColorGreen,
	KindT:    core.ColorMagenta,
	KindZ:    core.ColorRed,
}

// ColorOf returns the display color for a cell.
func ColorOf(c Cell) core.Color {
	if int(c) >= len(kindColors) {
		return core.ColorDefault
	}
	return kindColors[c]
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	snap := g.Snapshot()
	originX := (dst.Width() - MinScreenW) / 2
	originY := (dst.Height() - MinScreenH) / 2

	board := core.NewRect(originX, originY, boardW, boardH)
	renderBoard(dst, board, snap)
	renderPanel(dst, board.Right()+panelGap, originY, snap)

	switch snap.Phase {
	case PhaseReady:
		renderOverlay(dst, board, "TETRIS", "Enter to start")
	case PhasePaused:
		renderOverlay(dst, board, "Paused", "P to continue")
	case PhaseOver:
		renderOverlay(dst, board, "Game Over", fmt.Sprintf("Score %d", snap.FinalScore), "R to restart")
	}
}

func renderBoard(dst *core.Screen, r core.Rect, snap Snapshot) {
	dst.DrawBox(r, core.ColorGray)

	grid := snap.Composite()
	for y := range Rows {
		for x := range Cols {
			sx := r.X + 1 + x*cellW
			sy := r.Y + 1 + y
			c := grid[y][x]
			if c == Empty {
				dst.SetColored(sx, sy, ' ', core.ColorDefault)
				dst.SetColored(sx+1, sy, EmptyChar, core.ColorGray)
				continue
			}
			color := ColorOf(c)
			dst.SetColored(sx, sy, BlockChar, color)
			dst.SetColored(sx+1, sy, BlockChar, color)
		}
	}
}

func renderPanel(dst *core.Screen, x, y int, snap Snapshot) {
	preview := core.NewRect(x, y, panelW, 6)
	dst.DrawBox(preview, core.ColorGray)
	dst.DrawText(x+2, y, " NEXT ")

	// Preview area is 4x4 cells; smaller shapes are centered.
	offX := (4 - snap.Next.Width()) / 2
	offY := (4 - snap.Next.Height()) / 2
	for py, row := range snap.Next {
		for px, c := range row {
			if c == Empty {
				continue
			}
			sx := x + 3 + (px+offX)*cellW
			sy := y + 1 + py + offY
			dst.SetColored(sx, sy, BlockChar, ColorOf(c))
			dst.SetColored(sx+1, sy, BlockChar, ColorOf(c))
		}
	}

	stats := []struct {
		label string
		value int
	}{
		{"SCORE", snap.Score},
		{"LEVEL", snap.Level},
		{"LINES", snap.Lines},
	}
	row := y + 7
	for _, s := range stats {
		dst.DrawTextColored(x+1, row, s.label, core.ColorGray)
		dst.DrawText(x+1, row+1, fmt.Sprintf("%d", s.value))
		row += 3
	}
}

// renderOverlay draws a centered message box over the board.
func renderOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	boxW := board.W - 4
	boxH := len(lines) + 2
	box := core.NewRect(board.X+2, board.Y+(board.H-boxH)/2, boxW, boxH)

	for yy := box.Y; yy < box.Bottom(); yy++ {
		for xx := box.X; xx < box.Right(); xx++ {
			dst.Set(xx, yy, ' ')
		}
	}
	dst.DrawBox(box, core.ColorWhite)

	for i, line := range lines {
		tx := box.X + (box.W-len([]rune(line)))/2
		dst.DrawText(tx, box.Y+1+i, line)
	}
}
