package textedit

import (
	"coursecanvas/colors"
	"coursecanvas/core"
	"coursecanvas/scene"
)

// NoSelection is returned by ReplaceSelection when nothing was selected.
const NoSelection = -1

// MinHighlightWidth keeps zero-width line segments visible.
const MinHighlightWidth = 2.0

// Range is a character span. Start and End may arrive in either order;
// Min and Max give the normalized bounds.
type Range struct {
	Start int
	End   int
}

// Min returns the lower bound.
func (r Range) Min() int { return min(r.Start, r.End) }

// Max returns the upper bound.
func (r Range) Max() int { return max(r.Start, r.End) }

// Len returns the number of selected runes.
func (r Range) Len() int { return r.Max() - r.Min() }

// HasSelection reports whether the range covers at least one rune.
func (r Range) HasSelection() bool { return r.Start != r.End }

// Selection is the range selection of one TextArea, with its highlight
// graphics.
type Selection struct {
	area      *TextArea
	rng       Range
	anchor    int
	anchored  bool
	scene     scene.Adapter
	color     string
	highlight []scene.NodeID
}

// NewSelection creates an empty selection. s may be nil for headless use;
// highlights are then computed but not drawn.
func NewSelection(area *TextArea, s scene.Adapter) *Selection {
	return &Selection{area: area, scene: s, color: colors.DefaultHighlight}
}

// SetColor sets the highlight color for subsequent renders.
func (s *Selection) SetColor(hex string) {
	s.color = hex
	s.render()
}

// Range returns the normalized range.
func (s *Selection) Range() Range { return s.rng }

// Start returns the lower bound.
func (s *Selection) Start() int { return s.rng.Min() }

// End returns the upper bound.
func (s *Selection) End() int { return s.rng.Max() }

// HasSelection reports whether anything is selected.
func (s *Selection) HasSelection() bool { return s.rng.HasSelection() }

// Text returns the selected text.
func (s *Selection) Text() string {
	if !s.HasSelection() {
		return ""
	}
	return string(s.area.buf[s.rng.Min():s.rng.Max()])
}

// SetSelection clamps both bounds to the buffer, normalizes their order and
// re-renders the highlight.
func (s *Selection) SetSelection(start, end int) {
	n := s.area.Len()
	start = core.ClampInt(start, 0, n)
	end = core.ClampInt(end, 0, n)
	s.rng = Range{Start: min(start, end), End: max(start, end)}
	s.anchor, s.anchored = s.rng.Start, true
	s.render()
}

// SetAnchor collapses the selection at offset and remembers it as the
// anchor for ExtendSelectionTo.
func (s *Selection) SetAnchor(offset int) {
	offset = core.ClampInt(offset, 0, s.area.Len())
	s.rng = Range{Start: offset, End: offset}
	s.anchor, s.anchored = offset, true
	s.render()
}

// ClearSelection empties the range, forgets the anchor and removes the
// highlight graphics.
func (s *Selection) ClearSelection() {
	s.rng = Range{}
	s.anchor, s.anchored = 0, false
	s.clearHighlight()
}

// SelectAll selects the whole buffer.
func (s *Selection) SelectAll() {
	s.SetSelection(0, s.area.Len())
}

// SelectWordAt expands to the word around position. A position on a
// boundary rune selects that rune alone. Returns false on an empty buffer.
func (s *Selection) SelectWordAt(position int) bool {
	buf := s.area.buf
	if len(buf) == 0 {
		return false
	}
	position = core.ClampInt(position, 0, len(buf))

	start, end := position, position
	for start > 0 && !isWordBoundary(buf[start-1]) {
		start--
	}
	for end < len(buf) && !isWordBoundary(buf[end]) {
		end++
	}
	if start == end {
		if position == len(buf) {
			start = position - 1
		} else {
			end = position + 1
		}
	}
	s.SetSelection(start, end)
	return true
}

// ExtendSelectionTo moves the end bound to position, keeping the anchor.
// Without an anchor the selection starts at offset 0.
func (s *Selection) ExtendSelectionTo(position int) {
	anchor := 0
	if s.anchored {
		anchor = s.anchor
	}
	n := s.area.Len()
	position = core.ClampInt(position, 0, n)
	s.rng = Range{Start: min(anchor, position), End: max(anchor, position)}
	s.anchor, s.anchored = anchor, true
	s.render()
}

// DeleteSelection removes the selected span and collapses the selection at
// its start. Returns false if nothing was selected.
func (s *Selection) DeleteSelection() bool {
	if !s.HasSelection() {
		return false
	}
	start := s.rng.Min()
	s.area.DeleteText(start, s.rng.Len())
	s.SetAnchor(start)
	return true
}

// ReplaceSelection deletes the selected span and inserts text in its place.
// It returns the caret offset after the inserted text, or NoSelection.
func (s *Selection) ReplaceSelection(text string) int {
	if !s.HasSelection() {
		return NoSelection
	}
	start := s.rng.Min()
	s.area.DeleteText(start, s.rng.Len())
	n := s.area.InsertText(text, start)
	s.SetAnchor(start + n)
	return start + n
}

// HighlightRects returns the local-space rectangles covering the selection:
// one for a single-line span, else one per covered line where the first runs
// from the start offset to its line end, the last from its line start to
// the end offset, and lines between are covered in full.
func (s *Selection) HighlightRects() []core.Rect {
	if !s.HasSelection() {
		return nil
	}
	a := s.area
	start, end := s.rng.Min(), s.rng.Max()
	first := a.LineForOffset(start)
	last := a.LineForOffset(end - 1)
	lh := a.LineHeight()

	span := func(line, from, to int) core.Rect {
		x0, x1 := a.lineX(line, from), a.lineX(line, to)
		return core.Rect{X: x0, Y: a.lineTop(line), W: max(x1-x0, MinHighlightWidth), H: lh}
	}

	if first == last {
		return []core.Rect{span(first, start, end)}
	}

	rects := make([]core.Rect, 0, last-first+1)
	rects = append(rects, span(first, start, a.lines[first].End))
	for i := first + 1; i < last; i++ {
		rects = append(rects, span(i, a.lines[i].Start, a.lines[i].End))
	}
	rects = append(rects, span(last, a.lines[last].Start, end))
	return rects
}

// Refresh redraws the highlight after the area reflowed.
func (s *Selection) Refresh() {
	n := s.area.Len()
	s.rng = Range{Start: min(s.rng.Min(), n), End: min(s.rng.Max(), n)}
	s.render()
}

func (s *Selection) render() {
	s.clearHighlight()
	if s.scene == nil {
		return
	}
	origin := core.Point{}
	if s.area.Node == scene.Root {
		origin = s.area.Bounds().Min()
	}
	for _, r := range s.HighlightRects() {
		n := scene.NewNode(scene.KindHighlight, r.Min().Add(origin))
		n.Parent = s.area.Node
		n.Size = core.Size{W: r.W, H: r.H}
		n.Style = scene.Style{Fill: s.color}
		s.highlight = append(s.highlight, s.scene.Add(n))
	}
}

func (s *Selection) clearHighlight() {
	if s.scene != nil {
		for _, id := range s.highlight {
			s.scene.Remove(id)
		}
	}
	s.highlight = s.highlight[:0]
}
