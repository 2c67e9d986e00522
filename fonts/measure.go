package fonts

import (
	"unicode/utf8"

	ggtext "github.com/gogpu/gg/text"
	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
)

// Measurer reports text advances for layout. Every measurer in this package
// satisfies textedit.Measurer.
type Measurer interface {
	Advance(s string) float64
	LineHeight() float64
}

// XMeasurer measures with an x/image font face.
type XMeasurer struct {
	Face font.Face
}

// Advance returns the pixel width of s.
func (m XMeasurer) Advance(s string) float64 {
	return float64(font.MeasureString(m.Face, s)) / 64
}

// LineHeight returns the face's recommended line spacing in pixels.
func (m XMeasurer) LineHeight() float64 {
	return float64(m.Face.Metrics().Height) / 64
}

// GGMeasurer measures with a gg text face, matching what the PNG exporter
// draws.
type GGMeasurer struct {
	Face ggtext.Face
}

// Advance returns the pixel width of s.
func (m GGMeasurer) Advance(s string) float64 {
	return m.Face.Advance(s)
}

// LineHeight returns ascent+descent+gap.
func (m GGMeasurer) LineHeight() float64 {
	return m.Face.Metrics().LineHeight()
}

// CellMeasurer measures in terminal cells. East Asian wide runes take two.
type CellMeasurer struct{}

// Advance returns the cell width of s.
func (CellMeasurer) Advance(s string) float64 {
	return float64(runewidth.StringWidth(s))
}

// LineHeight is one cell.
func (CellMeasurer) LineHeight() float64 {
	return 1
}

// Monospace is a fixed-pitch measurer: every rune is CharWidth wide.
type Monospace struct {
	CharWidth float64
	Line      float64
}

// Advance returns CharWidth per rune.
func (m Monospace) Advance(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * m.CharWidth
}

// LineHeight returns Line.
func (m Monospace) LineHeight() float64 {
	return m.Line
}
