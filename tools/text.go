package tools

import (
	"time"

	"coursecanvas/core"
	"coursecanvas/scene"
	"coursecanvas/textedit"
)

// textState distinguishes a placed caret from confirmed editing.
type textState int

const (
	textIdle textState = iota
	textCaretPlaced
	textEditing
)

// TextTool creates and edits text areas. Dragging on empty canvas creates
// an area when both sides reach the configured minimum; double-click
// creates a default-sized one or starts editing an existing one. Finalized
// areas left empty are removed from the scene.
type TextTool struct {
	base
	overlay *textedit.Overlay

	areas    map[scene.NodeID]*textedit.Editor
	cur      *textedit.Editor
	state    textState
	caret    scene.NodeID
	fontSize float64
	nextID   int

	drag      dragBox
	selecting bool

	lastDown   time.Time
	lastDownAt core.Point
}

// NewTextTool creates the text tool around the overlay that captures its
// keyboard input. A nil overlay gets a default one.
func NewTextTool(overlay *textedit.Overlay) *TextTool {
	if overlay == nil {
		overlay = textedit.NewOverlay()
	}
	t := &TextTool{
		base:    base{id: Text, mode: ModeBuild},
		overlay: overlay,
	}
	overlay.OnClose = t.closed
	return t
}

// Overlay returns the input overlay.
func (t *TextTool) Overlay() *textedit.Overlay { return t.overlay }

// Editing returns the editor of the active area.
func (t *TextTool) Editing() (*textedit.Editor, bool) {
	return t.cur, t.cur != nil
}

// EditBegan reports whether the active area moved past a placed caret into
// editing.
func (t *TextTool) EditBegan() bool { return t.state == textEditing }

func (t *TextTool) Activate(ctx *Context) {
	t.base.Activate(ctx)
	t.areas = make(map[scene.NodeID]*textedit.Editor)
	if t.fontSize == 0 {
		t.fontSize = ctx.Config.Fonts.DefaultSize
	}
	restore(ctx, t.UpdateSetting, SettingFontSize)
}

// Deactivate finalizes the active area and drops any drag in progress.
func (t *TextTool) Deactivate() {
	t.overlay.Close()
	t.drag.discard()
	t.selecting = false
	if t.active() {
		t.ctx.Selection.Clear()
	}
	t.areas = nil
	t.base.Deactivate()
}

// Blur reports that the host's input surface lost focus.
func (t *TextTool) Blur() bool { return t.overlay.Blur() }

func (t *TextTool) isDoubleClick(ev PointerEvent) bool {
	cfg := t.ctx.Config.Text
	double := !t.lastDown.IsZero() &&
		ev.Time.Sub(t.lastDown) <= cfg.DoubleClickInterval &&
		ev.Point.Distance(t.lastDownAt) <= cfg.DoubleClickSlop
	if double {
		t.lastDown = time.Time{}
	} else {
		t.lastDown, t.lastDownAt = ev.Time, ev.Point
	}
	return double
}

func (t *TextTool) PointerDown(ev PointerEvent) {
	double := t.isDoubleClick(ev)
	e, hit := t.areaAt(ev.Point)

	if hit && e == t.cur {
		off := t.offsetAt(e, ev.Point)
		switch {
		case double:
			e.SelectWordAt(off)
			t.state = textEditing
		case ev.Shift:
			e.ExtendTo(off)
		default:
			e.PlaceCaret(off)
			t.selecting = true
		}
		t.overlay.Focus()
		t.refresh()
		return
	}

	if hit {
		t.finalize()
		t.open(e, textCaretPlaced)
		if double {
			t.state = textEditing
		}
		e.PlaceCaret(t.offsetAt(e, ev.Point))
		t.refresh()
		return
	}

	t.finalize()
	if double {
		cfg := t.ctx.Config.Text
		r := core.Rect{X: ev.Point.X, Y: ev.Point.Y, W: cfg.DefaultWidth, H: cfg.DefaultHeight}
		t.open(t.create(r), textEditing)
		t.refresh()
		return
	}
	t.drag.begin(t.ctx.Scene, ev.Point)
}

func (t *TextTool) PointerMove(ev PointerEvent) {
	if t.drag.active {
		t.drag.move(ev.Point)
		return
	}
	if t.selecting && t.cur != nil {
		t.cur.ExtendTo(t.offsetAt(t.cur, ev.Point))
		t.refresh()
	}
}

func (t *TextTool) PointerUp(ev PointerEvent) {
	if t.selecting {
		t.PointerMove(ev)
		t.selecting = false
		return
	}
	r, ok := t.drag.finish(ev.Point)
	if !ok {
		return
	}
	minSize := t.ctx.Config.Text.MinAreaSize
	if r.W < minSize || r.H < minSize {
		return
	}
	t.open(t.create(r), textEditing)
	t.refresh()
}

func (t *TextTool) PointerCancel(PointerEvent) {
	t.drag.discard()
	t.selecting = false
}

// HandleText feeds a key to the active area.
func (t *TextTool) HandleText(in TextInput) bool {
	if t.cur == nil || !t.overlay.Attached() {
		return false
	}
	e := t.cur
	switch t.overlay.Input(in) {
	case textedit.ActionEdited:
		t.state = textEditing
	case textedit.ActionNone:
		return false
	}
	if t.cur == e {
		t.refresh()
	}
	return true
}

func (t *TextTool) UpdateSetting(key string, value any) {
	switch key {
	case SettingFontSize:
		size, ok := asFloat(value)
		if !ok || size <= 0 {
			return
		}
		t.fontSize = size
		if t.cur != nil && t.active() {
			t.cur.Area.SetMeasurer(t.ctx.Measurer(size))
			t.refresh()
		}
	case SettingColor:
		if s, ok := asString(value); ok && t.active() {
			if t.ctx.Colors.SetStroke(string(t.id), s) == nil && t.cur != nil {
				t.refresh()
			}
		}
	}
}

// areaAt returns the editor of the topmost text node under p, adopting
// nodes this activation has not seen yet.
func (t *TextTool) areaAt(p core.Point) (*textedit.Editor, bool) {
	hit, ok := scene.TopmostAt(t.ctx.Scene, p, func(e scene.Entry) bool {
		return e.Node.Kind == scene.KindText && !e.Node.Hidden
	})
	if !ok {
		return nil, false
	}
	if e, ok := t.areas[hit.ID]; ok {
		return e, true
	}

	n := hit.Node
	size := n.FontSize
	if size == 0 {
		size = t.fontSize
	}
	bounds := core.Rect{X: n.Position.X, Y: n.Position.Y, W: n.Size.W, H: n.Size.H}
	a := textedit.NewTextArea(t.nextAreaID(), bounds, t.ctx.Measurer(size), t.ctx.Config.Text.Padding)
	a.SetText(n.Text)
	a.Node = hit.ID
	e := textedit.NewEditor(a, textedit.NewSelection(a, t.ctx.Scene))
	t.areas[hit.ID] = e
	return e, true
}

func (t *TextTool) nextAreaID() int {
	t.nextID++
	return t.nextID
}

// offsetAt maps a global point to the nearest buffer offset of e.
func (t *TextTool) offsetAt(e *textedit.Editor, p core.Point) int {
	local := t.ctx.Scene.ToLocal(e.Area.Node, p)
	return e.Area.CursorPositionFromPoint(local)
}

// create adds a new area covering r and publishes its node.
func (t *TextTool) create(r core.Rect) *textedit.Editor {
	cfg := t.ctx.Config.Text
	a := textedit.NewTextArea(t.nextAreaID(), r, t.ctx.Measurer(t.fontSize), cfg.Padding)
	t.publish(a)
	e := textedit.NewEditor(a, textedit.NewSelection(a, t.ctx.Scene))
	t.areas[a.Node] = e
	return e
}

func (t *TextTool) publish(a *textedit.TextArea) {
	a.Publish(t.ctx.Scene, scene.Style{Fill: t.ctx.Paint().Stroke}, t.fontSize)
}

func (t *TextTool) open(e *textedit.Editor, state textState) {
	t.cur = e
	t.state = state
	t.overlay.Open(e)
}

// finalize ends the active session, keeping its text.
func (t *TextTool) finalize() {
	t.overlay.Close()
}

// closed runs when the overlay session ends for any reason.
func (t *TextTool) closed(a *textedit.TextArea, _ textedit.Outcome) {
	if t.caret != scene.Root && t.ctx != nil {
		t.ctx.Scene.Remove(t.caret)
	}
	t.caret = scene.Root
	if t.cur != nil && t.cur.Area == a {
		t.cur = nil
		t.state = textIdle
	}
	if !t.active() {
		return
	}
	if a.Len() == 0 {
		t.ctx.Scene.Remove(a.Node)
		delete(t.areas, a.Node)
		return
	}
	t.publish(a)
}

// refresh republishes the active area and moves the caret node.
func (t *TextTool) refresh() {
	e := t.cur
	if e == nil {
		return
	}
	t.publish(e.Area)
	e.Selection.Refresh()
	e.Cursor.Refresh()

	pos := e.Cursor.Position()
	place := func(n *scene.Node) {
		n.Position = pos
		n.Size = core.Size{W: 1, H: e.Cursor.Height()}
	}
	if t.caret != scene.Root && t.ctx.Scene.Update(t.caret, place) {
		return
	}
	n := scene.NewNode(scene.KindCaret, pos)
	n.Parent = e.Area.Node
	place(&n)
	n.Style = scene.Style{Fill: t.ctx.Paint().Stroke}
	t.caret = t.ctx.Scene.Add(n)
}
