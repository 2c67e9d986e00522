package textedit

import (
	"coursecanvas/core"
)

// Cursor is the caret bound to one TextArea.
type Cursor struct {
	area    *TextArea
	offset  int
	pos     core.Point
	visible bool
}

// NewCursor creates a caret at offset 0 of area.
func NewCursor(area *TextArea) *Cursor {
	c := &Cursor{area: area}
	c.SetPosition(0)
	return c
}

// Area returns the bound text area.
func (c *Cursor) Area() *TextArea { return c.area }

// Offset returns the caret's buffer offset.
func (c *Cursor) Offset() int { return c.offset }

// Position returns the caret's local-space top-left.
func (c *Cursor) Position() core.Point { return c.pos }

// Height returns the caret height.
func (c *Cursor) Height() float64 { return c.area.LineHeight() }

// Visible reports the blink phase.
func (c *Cursor) Visible() bool { return c.visible }

// Blink toggles the blink phase.
func (c *Cursor) Blink() { c.visible = !c.visible }

// SetPosition moves the caret to offset, clamped to the buffer, and
// re-derives its pixel position.
func (c *Cursor) SetPosition(offset int) {
	c.offset = core.ClampInt(offset, 0, c.area.Len())
	c.pos = c.area.CharacterPosition(c.offset)
	c.visible = true
}

// Refresh re-derives the pixel position after a reflow.
func (c *Cursor) Refresh() {
	c.SetPosition(c.offset)
}

// MoveLeft steps back one grapheme cluster.
func (c *Cursor) MoveLeft() {
	c.SetPosition(prevGrapheme(c.area.buf, c.offset))
}

// MoveRight steps forward one grapheme cluster.
func (c *Cursor) MoveRight() {
	c.SetPosition(nextGrapheme(c.area.buf, c.offset))
}

// MoveUp moves to the nearest offset on the previous line, keeping x.
func (c *Cursor) MoveUp() {
	line := c.area.LineForOffset(c.offset)
	if line == 0 {
		c.SetPosition(0)
		return
	}
	c.moveToLine(line - 1)
}

// MoveDown moves to the nearest offset on the next line, keeping x.
func (c *Cursor) MoveDown() {
	line := c.area.LineForOffset(c.offset)
	if line >= c.area.LineCount()-1 {
		c.SetPosition(c.area.Len())
		return
	}
	c.moveToLine(line + 1)
}

func (c *Cursor) moveToLine(line int) {
	y := c.area.lineTop(line) + c.area.LineHeight()/2
	c.SetPosition(c.area.CursorPositionFromPoint(core.Point{X: c.pos.X, Y: y}))
}

// Home moves to the start of the current line.
func (c *Cursor) Home() {
	c.SetPosition(c.area.LineStart(c.area.LineForOffset(c.offset)))
}

// End moves to the end of the current line.
func (c *Cursor) End() {
	c.SetPosition(c.area.LineEnd(c.area.LineForOffset(c.offset)))
}

// WordLeft moves to the start of the previous word.
func (c *Cursor) WordLeft() {
	buf, pos := c.area.buf, c.offset
	for pos > 0 && isWordBoundary(buf[pos-1]) {
		pos--
	}
	for pos > 0 && !isWordBoundary(buf[pos-1]) {
		pos--
	}
	c.SetPosition(pos)
}

// WordRight moves past the end of the next word.
func (c *Cursor) WordRight() {
	buf, pos := c.area.buf, c.offset
	for pos < len(buf) && isWordBoundary(buf[pos]) {
		pos++
	}
	for pos < len(buf) && !isWordBoundary(buf[pos]) {
		pos++
	}
	c.SetPosition(pos)
}
