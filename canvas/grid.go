// Package canvas draws scene nodes into a grid of character cells. The
// terminal host paints the grid to the screen and the text exporter prints
// it.
package canvas

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"
)

var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid grid size")
)

// continuation fills the second cell of a wide rune.
const continuation = '\x00'

// Attr is a presentation flag on a cell.
type Attr uint8

const (
	AttrReverse Attr = 1 << iota
	AttrDim
)

// Cell is one character position. Color is a hex string, empty for the
// terminal default.
type Cell struct {
	Rune  rune
	Color string
	Attr  Attr
}

// Continuation reports whether the cell is covered by the wide rune to its
// left.
func (c Cell) Continuation() bool { return c.Rune == continuation }

// Grid is a rectangular matrix of cells, origin top-left. It is not safe
// for concurrent writes.
type Grid struct {
	cells  [][]Cell
	width  int
	height int
}

// NewGrid creates a blank grid.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	g := &Grid{width: width, height: height, cells: make([][]Cell, height)}
	for y := range g.cells {
		g.cells[y] = make([]Cell, width)
	}
	g.Clear()
	return g, nil
}

// Size returns the width and height in cells.
func (g *Grid) Size() (width, height int) { return g.width, g.height }

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the cell at x, y; a blank cell when out of bounds.
func (g *Grid) Get(x, y int) Cell {
	if !g.inside(x, y) {
		return Cell{Rune: ' '}
	}
	return g.cells[y][x]
}

// Set writes r at x, y, merging box-drawing strokes with what is there.
func (g *Grid) Set(x, y int, r rune, color string) error {
	if !g.inside(x, y) {
		return ErrOutOfBounds
	}
	c := &g.cells[y][x]
	c.Rune = merge(c.Rune, r)
	if color != "" {
		c.Color = color
	}
	return nil
}

// Mark ORs attr into the cell at x, y.
func (g *Grid) Mark(x, y int, attr Attr) {
	if g.inside(x, y) {
		g.cells[y][x].Attr |= attr
	}
}

// Clear resets every cell to a blank.
func (g *Grid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

// String returns the runes row by row, without colors.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width + 1))
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if r := g.cells[y][x].Rune; r != continuation {
				sb.WriteRune(r)
			}
		}
		if y < g.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// BoxStyle holds the runes of a box outline.
type BoxStyle struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

var (
	SquareBox  = BoxStyle{'┌', '┐', '└', '┘', '─', '│'}
	RoundedBox = BoxStyle{'╭', '╮', '╰', '╯', '─', '│'}
	DashedBox  = BoxStyle{'┌', '┐', '└', '┘', '╌', '╎'}
)

// DrawBox outlines the cells [x, x+w) × [y, y+h), clipping at the edges.
func (g *Grid) DrawBox(x, y, w, h int, style BoxStyle, color string) {
	if w <= 0 || h <= 0 {
		return
	}
	if w == 1 || h == 1 {
		for i := 0; i < w; i++ {
			for j := 0; j < h; j++ {
				g.Set(x+i, y+j, '□', color)
			}
		}
		return
	}
	right, bottom := x+w-1, y+h-1
	g.DrawHLine(x+1, right-1, y, style.Horizontal, color)
	g.DrawHLine(x+1, right-1, bottom, style.Horizontal, color)
	g.DrawVLine(x, y+1, bottom-1, style.Vertical, color)
	g.DrawVLine(right, y+1, bottom-1, style.Vertical, color)
	g.Set(x, y, style.TopLeft, color)
	g.Set(right, y, style.TopRight, color)
	g.Set(x, bottom, style.BottomLeft, color)
	g.Set(right, bottom, style.BottomRight, color)
}

// DrawHLine draws from x1 to x2 inclusive on row y.
func (g *Grid) DrawHLine(x1, x2, y int, r rune, color string) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := max(x1, 0); x <= min(x2, g.width-1); x++ {
		g.Set(x, y, r, color)
	}
}

// DrawVLine draws from y1 to y2 inclusive on column x.
func (g *Grid) DrawVLine(x, y1, y2 int, r rune, color string) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := max(y1, 0); y <= min(y2, g.height-1); y++ {
		g.Set(x, y, r, color)
	}
}

// DrawLine draws between two cells with Bresenham's algorithm.
func (g *Grid) DrawLine(x1, y1, x2, y2 int, r rune, color string) {
	dx, dy := abs(x2-x1), -abs(y2-y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	e := dx + dy
	for {
		g.Set(x1, y1, r, color)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// DrawText writes s starting at x, y and returns the number of cells
// used. Wide runes take two cells; zero-width runes are dropped. Text never
// merges with box strokes.
func (g *Grid) DrawText(x, y int, s string, color string) int {
	if y < 0 || y >= g.height {
		return 0
	}
	cx := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if cx+w > g.width {
			break
		}
		if cx >= 0 {
			g.cells[y][cx] = Cell{Rune: r, Color: color, Attr: g.cells[y][cx].Attr}
			if w == 2 {
				g.cells[y][cx+1] = Cell{Rune: continuation, Color: color}
			}
		}
		cx += w
	}
	return cx - x
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
