package canvas

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecanvas/core"
	"coursecanvas/scene"
)

func newGrid(t *testing.T, w, h int) *Grid {
	t.Helper()
	g, err := NewGrid(w, h)
	require.NoError(t, err)
	return g
}

func TestNewGridInvalidSize(t *testing.T) {
	_, err := NewGrid(0, 3)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestSetOutOfBounds(t *testing.T) {
	g := newGrid(t, 2, 2)
	assert.ErrorIs(t, g.Set(2, 0, 'x', ""), ErrOutOfBounds)
	assert.Equal(t, ' ', g.Get(-1, 0).Rune)
}

func TestDrawBox(t *testing.T) {
	g := newGrid(t, 4, 3)
	g.DrawBox(0, 0, 4, 3, SquareBox, "")
	want := "┌──┐\n│  │\n└──┘"
	assert.Equal(t, want, g.String())
}

func TestLinesJoin(t *testing.T) {
	g := newGrid(t, 3, 3)
	g.DrawHLine(0, 2, 1, '─', "")
	g.DrawVLine(1, 0, 2, '│', "")
	assert.Equal(t, '┼', g.Get(1, 1).Rune)
}

func TestDrawLineEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
		cells          int
	}{
		{"horizontal", 0, 0, 4, 0, 5},
		{"vertical", 2, 0, 2, 3, 4},
		{"diagonal", 0, 0, 3, 3, 4},
		{"reverse", 4, 2, 0, 0, 5},
		{"single", 1, 1, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGrid(t, 5, 5)
			g.DrawLine(tt.x1, tt.y1, tt.x2, tt.y2, '*', "")
			assert.Equal(t, '*', g.Get(tt.x1, tt.y1).Rune)
			assert.Equal(t, '*', g.Get(tt.x2, tt.y2).Rune)
			assert.Equal(t, tt.cells, strings.Count(g.String(), "*"))
		})
	}
}

func TestDrawTextWideRunes(t *testing.T) {
	g := newGrid(t, 6, 1)
	n := g.DrawText(0, 0, "a世b", "#ff0000")
	assert.Equal(t, 4, n)
	assert.Equal(t, "a世b  ", g.String())
	assert.Equal(t, "#ff0000", g.Get(1, 0).Color)

	g.Clear()
	assert.Equal(t, 4, g.DrawText(2, 0, "世界世", ""), "a wide rune that does not fit is dropped")
}

func TestViewportRoundTrip(t *testing.T) {
	v := Viewport{Origin: core.Pt(-16, 32), CellW: 8, CellH: 16}
	x, y := v.ToCell(core.Pt(-16, 32))
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	for _, c := range [][2]int{{0, 0}, {3, 7}, {-2, 5}} {
		x, y := v.ToCell(v.ToCanvas(c[0], c[1]))
		assert.Equal(t, c, [2]int{x, y})
	}
}

func drawScene(t *testing.T, w, h int, nodes ...scene.Node) *Grid {
	t.Helper()
	s := scene.NewMemory()
	for _, n := range nodes {
		s.Add(n)
	}
	g := newGrid(t, w, h)
	Viewport{CellW: 1, CellH: 1}.Draw(g, s)
	return g
}

func TestDrawRectAndTable(t *testing.T) {
	rect := scene.NewNode(scene.KindRect, core.Pt(0, 0))
	rect.Size = core.Size{W: 3, H: 2}
	g := drawScene(t, 5, 4, rect)
	assert.Equal(t, "┌──┐ \n│  │ \n└──┘ \n     ", g.String())

	table := scene.NewNode(scene.KindTable, core.Pt(0, 0))
	table.Size = core.Size{W: 6, H: 4}
	table.Rows, table.Columns = 2, 2
	g = drawScene(t, 7, 5, table)
	assert.Equal(t, strings.Join([]string{
		"┌──┬──┐",
		"│  │  │",
		"├──┼──┤",
		"│  │  │",
		"└──┴──┘",
	}, "\n"), g.String())
}

func TestDrawTextWraps(t *testing.T) {
	n := scene.NewNode(scene.KindText, core.Pt(1, 0))
	n.Size = core.Size{W: 5, H: 2}
	n.Text = "hello world"
	g := drawScene(t, 8, 3, n)
	rows := strings.Split(g.String(), "\n")
	assert.Equal(t, " hello  ", rows[0])
	assert.Equal(t, " world  ", rows[1])
}

func TestHighlightAndCaretReverse(t *testing.T) {
	text := scene.NewNode(scene.KindText, core.Pt(0, 0))
	text.Size = core.Size{W: 9, H: 0}
	text.Text = "abc"
	hl := scene.NewNode(scene.KindHighlight, core.Pt(0, 0))
	hl.Size = core.Size{W: 1, H: 0}
	g := drawScene(t, 10, 1, text, hl)
	assert.NotZero(t, g.Get(0, 0).Attr&AttrReverse)
	assert.NotZero(t, g.Get(1, 0).Attr&AttrReverse)
	assert.Zero(t, g.Get(2, 0).Attr&AttrReverse)
	assert.Equal(t, 'a', g.Get(0, 0).Rune, "highlight keeps the text")
}

func TestStrokeTouchesEndpoints(t *testing.T) {
	n := scene.NewNode(scene.KindStroke, core.Point{})
	n.Points = []core.Point{core.Pt(0, 0), core.Pt(4, 2), core.Pt(8, 0)}
	n.Style.Width = 2
	g := drawScene(t, 10, 4, n)
	assert.Equal(t, '·', g.Get(0, 0).Rune)
	assert.Equal(t, '·', g.Get(8, 0).Rune)
}

func TestHiddenNodesSkipped(t *testing.T) {
	n := scene.NewNode(scene.KindRect, core.Pt(0, 0))
	n.Size = core.Size{W: 2, H: 2}
	n.Hidden = true
	g := drawScene(t, 4, 4, n)
	assert.Equal(t, "", strings.TrimSpace(g.String()))
}
