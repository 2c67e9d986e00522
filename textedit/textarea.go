// Package textedit implements editable canvas text: a bounded buffer with
// wrapped line layout, a caret, range selection with highlight rendering and
// the overlay input session that bridges keyboard input into the buffer.
package textedit

import (
	"math"
	"slices"
	"sort"
	"strings"

	"coursecanvas/core"
	"coursecanvas/scene"
)

// Measurer reports text advances. fonts.XMeasurer, fonts.GGMeasurer and
// fonts.CellMeasurer all satisfy it.
type Measurer interface {
	Advance(s string) float64
	LineHeight() float64
}

// Line is one wrapped line as a [Start, End) span of buffer offsets. A hard
// break rune belongs to the end of the line it terminates.
type Line struct {
	Start int
	End   int
}

// TextArea is a bounded region holding a rune buffer and its line layout.
type TextArea struct {
	ID   int
	Node scene.NodeID // owning scene node, Root until published

	bounds  core.Rect
	padding float64
	buf     []rune
	lines   []Line
	measure Measurer
	active  bool
}

// NewTextArea creates an empty area. padding insets the text from the
// bounds on every side.
func NewTextArea(id int, bounds core.Rect, m Measurer, padding float64) *TextArea {
	a := &TextArea{
		ID:      id,
		bounds:  bounds,
		padding: padding,
		measure: m,
	}
	a.layout()
	return a
}

// Text returns the buffer contents.
func (a *TextArea) Text() string { return string(a.buf) }

// Len returns the buffer length in runes.
func (a *TextArea) Len() int { return len(a.buf) }

// Runes returns a copy of the buffer.
func (a *TextArea) Runes() []rune { return slices.Clone(a.buf) }

// RuneAt returns the rune at offset, or 0 outside the buffer.
func (a *TextArea) RuneAt(offset int) rune {
	if offset < 0 || offset >= len(a.buf) {
		return 0
	}
	return a.buf[offset]
}

// Lines returns a copy of the line index.
func (a *TextArea) Lines() []Line { return slices.Clone(a.lines) }

// LineCount returns the number of laid out lines (at least one).
func (a *TextArea) LineCount() int { return len(a.lines) }

// LineHeight returns the height of one line.
func (a *TextArea) LineHeight() float64 { return a.measure.LineHeight() }

// Bounds returns the area rectangle in its parent's space.
func (a *TextArea) Bounds() core.Rect { return a.bounds }

// Padding returns the text inset.
func (a *TextArea) Padding() float64 { return a.padding }

// Active reports whether the area is receiving input.
func (a *TextArea) Active() bool { return a.active }

// SetActive flags the area as receiving input.
func (a *TextArea) SetActive(active bool) { a.active = active }

// Contains reports whether p, in the area's parent space, is inside it.
func (a *TextArea) Contains(p core.Point) bool { return a.bounds.Contains(p) }

// MoveTo moves the area without changing its size.
func (a *TextArea) MoveTo(p core.Point) {
	a.bounds.X, a.bounds.Y = p.X, p.Y
}

// SetWidth changes the wrap width and reflows.
func (a *TextArea) SetWidth(w float64) {
	a.bounds.W = w
	a.layout()
}

// SetMeasurer swaps the font metrics and reflows.
func (a *TextArea) SetMeasurer(m Measurer) {
	a.measure = m
	a.layout()
}

// SetText replaces the whole buffer.
func (a *TextArea) SetText(s string) {
	a.buf = []rune(sanitize(s))
	a.layout()
}

// InsertText inserts text at offset (clamped) and returns the number of
// runes inserted.
func (a *TextArea) InsertText(text string, at int) int {
	ins := []rune(sanitize(text))
	if len(ins) == 0 {
		return 0
	}
	at = core.ClampInt(at, 0, len(a.buf))
	a.buf = slices.Insert(a.buf, at, ins...)
	a.layout()
	return len(ins)
}

// DeleteText removes up to length runes starting at offset and returns the
// number removed.
func (a *TextArea) DeleteText(at, length int) int {
	at = core.ClampInt(at, 0, len(a.buf))
	end := core.ClampInt(at+length, at, len(a.buf))
	if end == at {
		return 0
	}
	a.buf = slices.Delete(a.buf, at, end)
	a.layout()
	return end - at
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// wrapWidth is the usable text width; zero or less disables soft wrapping.
func (a *TextArea) wrapWidth() float64 {
	return a.bounds.W - 2*a.padding
}

func (a *TextArea) advance(from, to int) float64 {
	if to <= from {
		return 0
	}
	return a.measure.Advance(string(a.buf[from:to]))
}

// layout rebuilds the line index. Hard breaks split at '\n'; soft breaks
// split after the last whitespace that fits, or mid-word when one word is
// wider than the area. The index always tiles [0, len) without gaps.
func (a *TextArea) layout() {
	a.lines = a.lines[:0]
	n := len(a.buf)
	maxW := a.wrapWidth()

	start := 0
	for {
		hard := n
		if i := slices.Index(a.buf[start:], '\n'); i >= 0 {
			hard = start + i
		}

		end := hard
		if maxW > 0 && a.advance(start, hard) > maxW {
			end = a.fit(start, hard, maxW)
			// a space right after the fitting prefix may hang past the edge
			if b := a.lastSpace(start, min(end+1, hard)); b > start {
				end = b
			}
		}
		if end < hard {
			a.lines = append(a.lines, Line{Start: start, End: end})
			start = end
			continue
		}

		if hard < n {
			a.lines = append(a.lines, Line{Start: start, End: hard + 1})
			start = hard + 1
			continue
		}
		a.lines = append(a.lines, Line{Start: start, End: n})
		break
	}

	if need := float64(len(a.lines))*a.LineHeight() + 2*a.padding; need > a.bounds.H {
		a.bounds.H = need
	}
}

// fit returns the largest end in (start, limit] whose prefix fits maxW,
// never less than start+1 so layout always makes progress.
func (a *TextArea) fit(start, limit int, maxW float64) int {
	k := sort.Search(limit-start, func(i int) bool {
		return a.advance(start, start+i+1) > maxW
	})
	return max(start+k, start+1)
}

// lastSpace returns the offset just after the last whitespace in
// [start, end), or -1.
func (a *TextArea) lastSpace(start, end int) int {
	for i := end - 1; i >= start; i-- {
		if isSpace(a.buf[i]) {
			return i + 1
		}
	}
	return -1
}

// LineForOffset returns the index of the line holding the caret at offset.
// An offset on a soft-wrap boundary belongs to the following line.
func (a *TextArea) LineForOffset(offset int) int {
	offset = core.ClampInt(offset, 0, len(a.buf))
	i := sort.Search(len(a.lines), func(i int) bool { return a.lines[i].Start > offset })
	return max(i-1, 0)
}

// drawnEnd is where line i's text stops: a hard break is not drawn, a
// trailing wrap space is.
func (a *TextArea) drawnEnd(i int) int {
	l := a.lines[i]
	if i < len(a.lines)-1 && a.buf[l.End-1] == '\n' {
		return l.End - 1
	}
	return l.End
}

// caretEnd is the last caret offset on line i. Every line but the last ends
// on an offset LineForOffset gives to the next line, after a hard break or
// on a soft-wrap boundary, so the caret stops one short.
func (a *TextArea) caretEnd(i int) int {
	l := a.lines[i]
	if i == len(a.lines)-1 {
		return l.End
	}
	return max(l.End-1, l.Start)
}

// LineStart returns the first offset of line i.
func (a *TextArea) LineStart(i int) int {
	return a.lines[core.ClampInt(i, 0, len(a.lines)-1)].Start
}

// LineEnd returns the last caret offset drawn on line i.
func (a *TextArea) LineEnd(i int) int {
	return a.caretEnd(core.ClampInt(i, 0, len(a.lines)-1))
}

// lineX returns the local x of offset measured along line i.
func (a *TextArea) lineX(i, offset int) float64 {
	l := a.lines[i]
	offset = core.ClampInt(offset, l.Start, a.drawnEnd(i))
	return a.padding + a.advance(l.Start, offset)
}

// lineTop returns the local y of the top of line i.
func (a *TextArea) lineTop(i int) float64 {
	return a.padding + float64(i)*a.LineHeight()
}

// CharacterPosition returns the local-space top-left of the caret at offset.
func (a *TextArea) CharacterPosition(offset int) core.Point {
	offset = core.ClampInt(offset, 0, len(a.buf))
	i := a.LineForOffset(offset)
	return core.Point{X: a.lineX(i, offset), Y: a.lineTop(i)}
}

// CursorPositionFromPoint returns the offset nearest to a local-space point.
func (a *TextArea) CursorPositionFromPoint(p core.Point) int {
	lh := a.LineHeight()
	i := 0
	if lh > 0 {
		i = int(math.Floor((p.Y - a.padding) / lh))
	}
	i = core.ClampInt(i, 0, len(a.lines)-1)

	l := a.lines[i]
	best, bestDist := l.Start, math.Inf(1)
	for off := l.Start; off <= a.caretEnd(i); off++ {
		d := math.Abs(a.lineX(i, off) - p.X)
		if d < bestDist {
			best, bestDist = off, d
		}
	}
	return best
}

// ToLocal converts a point in the area's parent space to local space.
func (a *TextArea) ToLocal(p core.Point) core.Point {
	return p.Sub(a.bounds.Min())
}

// Publish writes the area's text and geometry into its scene node, creating
// the node on first use.
func (a *TextArea) Publish(s scene.Adapter, style scene.Style, fontSize float64) scene.NodeID {
	apply := func(n *scene.Node) {
		n.Kind = scene.KindText
		n.Position = a.bounds.Min()
		n.Size = core.Size{W: a.bounds.W, H: a.bounds.H}
		n.Text = a.Text()
		n.FontSize = fontSize
		n.Style = style
	}
	if a.Node != scene.Root && s.Update(a.Node, apply) {
		return a.Node
	}
	n := scene.NewNode(scene.KindText, a.bounds.Min())
	apply(&n)
	a.Node = s.Add(n)
	return a.Node
}
