package textedit

import (
	"unicode"
)

// Key names a non-printable editing key.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyEnter
	KeyEscape
	KeySelectAll         // Ctrl+A
	KeyDeleteWord        // Ctrl+W
	KeyDeleteToLineStart // Ctrl+U
	KeyDeleteToLineEnd   // Ctrl+K
)

// Input is one keyboard event: either a printable rune or a special key.
// Mod is the platform confirm modifier (Ctrl or Cmd).
type Input struct {
	Rune  rune
	Key   Key
	Shift bool
	Mod   bool
}

// IsSpecial reports whether the input is a special key.
func (in Input) IsSpecial() bool { return in.Key != KeyNone }

// Action tells the caller what an input asked for beyond editing.
type Action int

const (
	ActionNone Action = iota
	ActionEdited
	ActionMoved
	ActionConfirm
	ActionCancel
)

// Editor applies editing commands to a TextArea, keeping the caret and
// range selection consistent with the buffer.
type Editor struct {
	Area      *TextArea
	Cursor    *Cursor
	Selection *Selection
}

// NewEditor binds a caret and selection to area.
func NewEditor(area *TextArea, sel *Selection) *Editor {
	if sel == nil {
		sel = NewSelection(area, nil)
	}
	return &Editor{Area: area, Cursor: NewCursor(area), Selection: sel}
}

// Type inserts text at the caret, replacing the selected range if any.
func (e *Editor) Type(text string) {
	if e.Selection.HasSelection() {
		e.Cursor.SetPosition(e.Selection.ReplaceSelection(text))
		e.Selection.ClearSelection()
		return
	}
	n := e.Area.InsertText(text, e.Cursor.Offset())
	e.Cursor.SetPosition(e.Cursor.Offset() + n)
}

// Newline inserts a hard break.
func (e *Editor) Newline() { e.Type("\n") }

// deleteSelection removes the selected range and parks the caret at its start.
func (e *Editor) deleteSelection() bool {
	if !e.Selection.HasSelection() {
		return false
	}
	start := e.Selection.Start()
	e.Selection.DeleteSelection()
	e.Selection.ClearSelection()
	e.Cursor.SetPosition(start)
	return true
}

// DeleteSelection removes the selected range. Returns false if nothing was
// selected.
func (e *Editor) DeleteSelection() bool { return e.deleteSelection() }

// Backspace deletes the selection or the grapheme before the caret.
func (e *Editor) Backspace() {
	if e.deleteSelection() {
		return
	}
	pos := e.Cursor.Offset()
	if pos == 0 {
		return
	}
	prev := prevGrapheme(e.Area.buf, pos)
	e.Area.DeleteText(prev, pos-prev)
	e.Cursor.SetPosition(prev)
}

// Delete deletes the selection or the grapheme after the caret.
func (e *Editor) Delete() {
	if e.deleteSelection() {
		return
	}
	pos := e.Cursor.Offset()
	next := nextGrapheme(e.Area.buf, pos)
	if next > pos {
		e.Area.DeleteText(pos, next-pos)
		e.Cursor.Refresh()
	}
}

// DeleteWordBackward deletes the previous word and any spaces after it.
func (e *Editor) DeleteWordBackward() {
	if e.deleteSelection() {
		return
	}
	pos := e.Cursor.Offset()
	if pos == 0 {
		return
	}
	buf := e.Area.buf
	start := pos
	for start > 0 && buf[start-1] == ' ' {
		start--
	}
	for start > 0 && !unicode.IsSpace(buf[start-1]) {
		start--
	}
	if start < pos {
		e.Area.DeleteText(start, pos-start)
		e.Cursor.SetPosition(start)
	}
}

// DeleteToLineStart deletes back to the previous hard break.
func (e *Editor) DeleteToLineStart() {
	pos := e.Cursor.Offset()
	buf := e.Area.buf
	start := pos
	for start > 0 && buf[start-1] != '\n' {
		start--
	}
	if start < pos {
		e.Area.DeleteText(start, pos-start)
		e.Cursor.SetPosition(start)
	}
}

// DeleteToLineEnd deletes forward to the next hard break.
func (e *Editor) DeleteToLineEnd() {
	pos := e.Cursor.Offset()
	buf := e.Area.buf
	end := pos
	for end < len(buf) && buf[end] != '\n' {
		end++
	}
	if end > pos {
		e.Area.DeleteText(pos, end-pos)
		e.Cursor.Refresh()
	}
}

// SelectAll selects the buffer and parks the caret at its end.
func (e *Editor) SelectAll() {
	e.Selection.SelectAll()
	e.Cursor.SetPosition(e.Area.Len())
}

// PlaceCaret moves the caret to offset and collapses the selection there.
func (e *Editor) PlaceCaret(offset int) {
	e.Selection.ClearSelection()
	e.Selection.SetAnchor(offset)
	e.Cursor.SetPosition(offset)
}

// ExtendTo grows the range from its anchor to offset and moves the caret.
func (e *Editor) ExtendTo(offset int) {
	e.Selection.ExtendSelectionTo(offset)
	e.Cursor.SetPosition(offset)
}

// SelectWordAt selects the word around offset.
func (e *Editor) SelectWordAt(offset int) bool {
	if !e.Selection.SelectWordAt(offset) {
		return false
	}
	e.Cursor.SetPosition(e.Selection.End())
	return true
}

// move applies a caret motion, extending the selection when shift is held.
func (e *Editor) move(shift bool, fn func()) {
	from := e.Cursor.Offset()
	fn()
	if shift {
		if !e.Selection.HasSelection() {
			e.Selection.SetAnchor(from)
		}
		e.Selection.ExtendSelectionTo(e.Cursor.Offset())
		return
	}
	e.Selection.ClearSelection()
}

// Handle applies one input and reports what it did.
func (e *Editor) Handle(in Input) Action {
	switch in.Key {
	case KeyEscape:
		return ActionCancel
	case KeyEnter:
		if in.Mod {
			return ActionConfirm
		}
		e.Newline()
		return ActionEdited
	case KeyBackspace:
		e.Backspace()
		return ActionEdited
	case KeyDelete:
		e.Delete()
		return ActionEdited
	case KeyDeleteWord:
		e.DeleteWordBackward()
		return ActionEdited
	case KeyDeleteToLineStart:
		e.DeleteToLineStart()
		return ActionEdited
	case KeyDeleteToLineEnd:
		e.DeleteToLineEnd()
		return ActionEdited
	case KeySelectAll:
		e.SelectAll()
		return ActionMoved
	case KeyLeft:
		if in.Mod {
			e.move(in.Shift, e.Cursor.WordLeft)
		} else {
			e.move(in.Shift, e.Cursor.MoveLeft)
		}
		return ActionMoved
	case KeyRight:
		if in.Mod {
			e.move(in.Shift, e.Cursor.WordRight)
		} else {
			e.move(in.Shift, e.Cursor.MoveRight)
		}
		return ActionMoved
	case KeyUp:
		e.move(in.Shift, e.Cursor.MoveUp)
		return ActionMoved
	case KeyDown:
		e.move(in.Shift, e.Cursor.MoveDown)
		return ActionMoved
	case KeyHome:
		e.move(in.Shift, e.Cursor.Home)
		return ActionMoved
	case KeyEnd:
		e.move(in.Shift, e.Cursor.End)
		return ActionMoved
	}

	if unicode.IsPrint(in.Rune) {
		e.Type(string(in.Rune))
		return ActionEdited
	}
	return ActionNone
}
