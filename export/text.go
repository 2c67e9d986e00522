package export

import (
	"fmt"
	"io"
	"math"

	"coursecanvas/canvas"
	"coursecanvas/core"
	"coursecanvas/document"
	"coursecanvas/scene"
)

// TextExporter draws the page into a character grid, the same view the
// terminal editor shows.
type TextExporter struct {
	columns int
}

// NewTextExporter creates a text exporter whose output is columns cells
// wide.
func NewTextExporter(columns int) *TextExporter {
	if columns <= 0 {
		columns = 100
	}
	return &TextExporter{columns: columns}
}

func (e *TextExporter) FileExtension() string { return ".txt" }
func (e *TextExporter) FormatName() string    { return "Text preview" }

// Export writes the grid followed by a newline.
func (e *TextExporter) Export(w io.Writer, d document.Document) error {
	g, err := e.Render(d)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, g.String())
	return err
}

// Render returns the page as a grid. Cells are twice as tall as they are
// wide, so the grid keeps the page's proportions in a terminal.
func (e *TextExporter) Render(d document.Document) (*canvas.Grid, error) {
	if err := d.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	pw, ph := d.Layout.PageSize()
	cellW := float64(pw) / float64(e.columns)
	cellH := cellW * 2
	rows := max(int(math.Ceil(float64(ph)/cellH)), 1)

	g, err := canvas.NewGrid(e.columns, rows)
	if err != nil {
		return nil, err
	}
	s := scene.NewMemory()
	s.Load(d.Nodes)
	canvas.Viewport{Origin: core.Point{}, CellW: cellW, CellH: cellH}.Draw(g, s)
	return g, nil
}
