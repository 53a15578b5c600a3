package renderer

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/trytobebee/gridsnake/pkg/config"
	"github.com/trytobebee/gridsnake/pkg/game"
)

// Cell types for the board
const (
	cellEmpty = iota
	cellWall
	cellHead
	cellBody
	cellFood
	cellCrash
)

// TerminalRenderer draws snapshots as an emoji board framed by walls.
type TerminalRenderer struct {
	out    io.Writer
	board  [][]int
	buffer strings.Builder
}

// NewTerminalRenderer creates a renderer writing to stdout.
func NewTerminalRenderer() *TerminalRenderer {
	return NewTerminalRendererTo(os.Stdout)
}

// NewTerminalRendererTo creates a renderer writing to out.
func NewTerminalRendererTo(out io.Writer) *TerminalRenderer {
	return &TerminalRenderer{out: out}
}

// ShowCursor shows the cursor (call on exit)
func (r *TerminalRenderer) ShowCursor() {
	fmt.Fprint(r.out, "\033[?25h")
}

// HideCursor hides the cursor (call on start)
func (r *TerminalRenderer) HideCursor() {
	fmt.Fprint(r.out, "\033[?25l")
}

// cells returns the board side in cells for snap.
func cells(snap game.Snapshot) int {
	if snap.Mode == game.ModeSmooth {
		return int(math.Round(float64(snap.GridSize) / snap.CellSize))
	}
	return snap.GridSize
}

// resize reuses the board between frames; it only reallocates when the size changes.
func (r *TerminalRenderer) resize(n int) {
	side := n + 2
	if len(r.board) == side {
		for y := range r.board {
			for x := range r.board[y] {
				r.board[y][x] = cellEmpty
			}
		}
		return
	}
	r.board = make([][]int, side)
	for i := range r.board {
		r.board[i] = make([]int, side)
	}
}

// put marks a cell given in board coordinates, ignoring anything off the board.
func (r *TerminalRenderer) put(p game.Point, cell int) {
	x, y := p.X+1, p.Y+1
	if y < 0 || y >= len(r.board) || x < 0 || x >= len(r.board[y]) {
		return
	}
	r.board[y][x] = cell
}

// Rasterize converts a continuous position into a board cell.
func Rasterize(v game.Vec, gridSize int, cellSize float64) game.Point {
	half := float64(gridSize) / 2
	return game.Point{
		X: int(math.Floor((v.X + half) / cellSize)),
		Y: int(math.Floor((v.Y + half) / cellSize)),
	}
}

func (r *TerminalRenderer) layout(snap game.Snapshot) {
	n := cells(snap)
	r.resize(n)

	for i := 0; i < n+2; i++ {
		r.board[0][i] = cellWall
		r.board[n+1][i] = cellWall
		r.board[i][0] = cellWall
		r.board[i][n+1] = cellWall
	}

	var snake []game.Point
	food := snap.Food
	if snap.Mode == game.ModeSmooth {
		for _, v := range snap.Segments {
			snake = append(snake, Rasterize(v, snap.GridSize, snap.CellSize))
		}
		food = Rasterize(snap.FoodPos, snap.GridSize, snap.CellSize)
	} else {
		snake = snap.Snake
	}

	if !snap.Won {
		r.put(food, cellFood)
	}
	// Draw tail first so the head wins a shared cell.
	for i := len(snake) - 1; i >= 0; i-- {
		if i == 0 {
			r.put(snake[i], cellHead)
		} else {
			r.put(snake[i], cellBody)
		}
	}

	if snap.GameOver && snap.CrashPoint != nil {
		crash := game.Point{X: int(snap.CrashPoint.X), Y: int(snap.CrashPoint.Y)}
		if snap.Mode == game.ModeSmooth {
			crash = Rasterize(*snap.CrashPoint, snap.GridSize, snap.CellSize)
		}
		// Wall hits land outside the play area; clamp onto the wall cell.
		crash.X = clamp(crash.X, -1, n)
		crash.Y = clamp(crash.Y, -1, n)
		r.put(crash, cellCrash)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Render draws snap in one write.
func (r *TerminalRenderer) Render(snap game.Snapshot) {
	r.layout(snap)
	r.buffer.Reset()

	r.buffer.WriteString("\033[H\033[2J\033[3J")
	r.buffer.WriteString("\n  🐍 SNAKE 🐍\n")
	fmt.Fprintf(&r.buffer, "  Score: %d  |  Food: %d  |  Mode: %s\n\n", snap.Score, snap.FoodEaten, snap.Mode)

	for _, row := range r.board {
		r.buffer.WriteString("  ")
		for _, cell := range row {
			switch cell {
			case cellWall:
				r.buffer.WriteString(config.CharWall)
			case cellHead:
				r.buffer.WriteString(config.CharHead)
			case cellBody:
				r.buffer.WriteString(config.CharBody)
			case cellFood:
				r.buffer.WriteString(config.CharFood)
			case cellCrash:
				r.buffer.WriteString(config.CharCrash)
			default:
				r.buffer.WriteString(config.CharEmpty)
			}
		}
		r.buffer.WriteString("\n")
	}

	r.buffer.WriteString("\n  Use WASD or Arrow keys to move\n")
	r.buffer.WriteString("  P to pause, Q to quit\n")

	switch {
	case snap.Won:
		r.buffer.WriteString("\n  🏆 BOARD CLEARED! Press R to restart or Q to quit\n")
	case snap.GameOver:
		fmt.Fprintf(&r.buffer, "\n  💀 GAME OVER (%s)! Press R to restart or Q to quit\n", snap.Cause)
	case snap.Paused:
		r.buffer.WriteString("\n  ⏸️  PAUSED - Press P to continue\n")
	}

	io.WriteString(r.out, r.buffer.String())
}
