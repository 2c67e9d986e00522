package canvas

import (
	"math"

	"coursecanvas/core"
	"coursecanvas/fonts"
	"coursecanvas/geometry"
	"coursecanvas/scene"
	"coursecanvas/textedit"
)

// Viewport maps canvas space onto cells. One cell covers CellW × CellH
// canvas units and Origin is the canvas point shown at cell 0,0.
type Viewport struct {
	Origin core.Point
	CellW  float64
	CellH  float64
}

// DefaultViewport uses cells twice as tall as they are wide, close to a
// typical terminal font.
func DefaultViewport() Viewport {
	return Viewport{CellW: 8, CellH: 16}
}

// ToCell returns the cell containing canvas point p.
func (v Viewport) ToCell(p core.Point) (x, y int) {
	return int(math.Floor((p.X - v.Origin.X) / v.CellW)), int(math.Floor((p.Y - v.Origin.Y) / v.CellH))
}

// ToCanvas returns the canvas point at the centre of cell x, y.
func (v Viewport) ToCanvas(x, y int) core.Point {
	return core.Pt(v.Origin.X+(float64(x)+0.5)*v.CellW, v.Origin.Y+(float64(y)+0.5)*v.CellH)
}

// Span returns the cell-space extent covering r, at least one cell each way.
func (v Viewport) Span(r core.Rect) (x, y, w, h int) {
	x, y = v.ToCell(r.Min())
	x2, y2 := v.ToCell(r.Max())
	return x, y, max(x2-x+1, 1), max(y2-y+1, 1)
}

// Draw paints every visible node of s into g, bottom-most first.
func (v Viewport) Draw(g *Grid, s scene.Adapter) {
	for _, e := range s.Snapshot() {
		if e.Node.Hidden {
			continue
		}
		v.drawEntry(g, s, e)
	}
}

func (v Viewport) drawEntry(g *Grid, s scene.Adapter, e scene.Entry) {
	n := e.Node
	x, y, w, h := v.Span(e.Bounds)
	switch n.Kind {
	case scene.KindStroke:
		v.drawStroke(g, s, e)
	case scene.KindRect:
		g.DrawBox(x, y, w, h, SquareBox, n.Style.Stroke)
	case scene.KindEllipse:
		g.DrawBox(x, y, w, h, RoundedBox, n.Style.Stroke)
	case scene.KindTable:
		drawTable(g, x, y, w, h, n.Rows, n.Columns, n.Style.Stroke)
	case scene.KindText:
		v.drawText(g, e)
	case scene.KindHandle, scene.KindPreview:
		g.DrawBox(x, y, w, h, DashedBox, n.Style.Stroke)
	case scene.KindHighlight:
		for j := y; j < y+h; j++ {
			for i := x; i < x+w; i++ {
				g.Mark(i, j, AttrReverse)
			}
		}
	case scene.KindCaret:
		g.Mark(x, y, AttrReverse)
	}
}

func (v Viewport) drawStroke(g *Grid, s scene.Adapter, e scene.Entry) {
	n := e.Node
	if len(n.Points) == 0 {
		return
	}
	r := '·'
	if n.Style.Width >= 8 {
		r = '█'
	}
	color := n.Style.Stroke
	if len(n.Points) == 1 {
		cx, cy := v.ToCell(s.ToGlobal(e.ID, n.Points[0]))
		g.Set(cx, cy, r, color)
		return
	}
	start, segs := geometry.SmoothSegments(n.Points)
	flat := geometry.Flatten(start, segs, 4)
	px, py := v.ToCell(s.ToGlobal(e.ID, flat[0]))
	for _, p := range flat[1:] {
		cx, cy := v.ToCell(s.ToGlobal(e.ID, p))
		g.DrawLine(px, py, cx, cy, r, color)
		px, py = cx, cy
	}
}

// drawTable outlines the table and splits it into rows × cols cells where
// there is room.
func drawTable(g *Grid, x, y, w, h, rows, cols int, color string) {
	g.DrawBox(x, y, w, h, SquareBox, color)
	right, bottom := x+w-1, y+h-1
	for i := 1; i < rows; i++ {
		ry := y + i*(h-1)/rows
		if ry <= y || ry >= bottom {
			continue
		}
		g.DrawHLine(x+1, right-1, ry, '─', color)
		g.Set(x, ry, '├', color)
		g.Set(right, ry, '┤', color)
	}
	for i := 1; i < cols; i++ {
		cx := x + i*(w-1)/cols
		if cx <= x || cx >= right {
			continue
		}
		g.DrawVLine(cx, y+1, bottom-1, '│', color)
		g.Set(cx, y, '┬', color)
		g.Set(cx, bottom, '┴', color)
	}
}

// drawText wraps the node's text to its width in cells and writes it
// inside the node's box.
func (v Viewport) drawText(g *Grid, e scene.Entry) {
	x, y, w, h := v.Span(e.Bounds)
	if e.Node.Text == "" {
		return
	}
	a := textedit.NewTextArea(0, core.Rect{W: float64(w), H: float64(h)}, fonts.CellMeasurer{}, 0)
	a.SetText(e.Node.Text)
	runes := a.Runes()
	for i, l := range a.Lines() {
		if i >= h {
			return
		}
		end := l.End
		for end > l.Start && (runes[end-1] == '\n' || runes[end-1] == ' ') {
			end--
		}
		g.DrawText(x, y+i, string(runes[l.Start:end]), e.Node.Style.Fill)
	}
}
