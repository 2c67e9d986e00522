package tools

import (
	"coursecanvas/core"
	"coursecanvas/scene"
)

// ShapesTool drag-creates rectangles and ellipses.
type ShapesTool struct {
	base
	kind  scene.Kind
	width float64
	drag  dragBox
}

// NewShapesTool creates the shapes tool, drawing rectangles by default.
func NewShapesTool() *ShapesTool {
	return &ShapesTool{base: base{id: Shapes, mode: ModeBuild}, kind: scene.KindRect}
}

func (t *ShapesTool) Activate(ctx *Context) {
	t.base.Activate(ctx)
	if t.width == 0 {
		t.width = ctx.Config.Shapes.PenWidth
	}
	restore(ctx, t.UpdateSetting, SettingShape, SettingWidth)
}

// Deactivate drops an unfinished drag.
func (t *ShapesTool) Deactivate() {
	t.drag.discard()
	t.base.Deactivate()
}

// Kind returns the shape the next drag creates.
func (t *ShapesTool) Kind() scene.Kind { return t.kind }

func (t *ShapesTool) PointerDown(ev PointerEvent) { t.drag.begin(t.ctx.Scene, ev.Point) }
func (t *ShapesTool) PointerMove(ev PointerEvent) { t.drag.move(ev.Point) }
func (t *ShapesTool) PointerCancel(PointerEvent)  { t.drag.discard() }

func (t *ShapesTool) PointerUp(ev PointerEvent) {
	r, ok := t.drag.finish(ev.Point)
	if !ok || !bigEnough(r, t.ctx.Config.Shapes.MinSize) {
		return
	}
	paint := t.ctx.Paint()
	n := scene.NewNode(t.kind, r.Min())
	n.Size = core.Size{W: r.W, H: r.H}
	n.Style = scene.Style{Stroke: paint.Stroke, Fill: paint.Fill, Width: t.width}
	t.ctx.Scene.Add(n)
}

func (t *ShapesTool) UpdateSetting(key string, value any) {
	switch key {
	case SettingShape:
		switch s, _ := asString(value); s {
		case "rect", "rectangle":
			t.kind = scene.KindRect
		case "ellipse", "circle":
			t.kind = scene.KindEllipse
		}
	case SettingWidth:
		if w, ok := asFloat(value); ok && w >= 0 {
			t.width = w
		}
	case SettingColor:
		if s, ok := asString(value); ok && t.active() {
			t.ctx.Colors.SetStroke(string(t.id), s)
		}
	case SettingFill:
		if s, ok := asString(value); ok && t.active() {
			t.ctx.Colors.SetFill(string(t.id), s)
		}
	}
}

// TablesTool drag-creates tables with a configurable grid.
type TablesTool struct {
	base
	rows    int
	columns int
	drag    dragBox
}

// NewTablesTool creates the tables tool.
func NewTablesTool() *TablesTool {
	return &TablesTool{base: base{id: Tables, mode: ModeBuild}}
}

func (t *TablesTool) Activate(ctx *Context) {
	t.base.Activate(ctx)
	if t.rows == 0 {
		t.rows = ctx.Config.Shapes.TableRows
	}
	if t.columns == 0 {
		t.columns = ctx.Config.Shapes.TableColumns
	}
	restore(ctx, t.UpdateSetting, SettingRows, SettingColumns)
}

// Deactivate drops an unfinished drag.
func (t *TablesTool) Deactivate() {
	t.drag.discard()
	t.base.Deactivate()
}

func (t *TablesTool) PointerDown(ev PointerEvent) { t.drag.begin(t.ctx.Scene, ev.Point) }
func (t *TablesTool) PointerMove(ev PointerEvent) { t.drag.move(ev.Point) }
func (t *TablesTool) PointerCancel(PointerEvent)  { t.drag.discard() }

func (t *TablesTool) PointerUp(ev PointerEvent) {
	r, ok := t.drag.finish(ev.Point)
	if !ok || !bigEnough(r, t.ctx.Config.Shapes.MinSize) {
		return
	}
	n := scene.NewNode(scene.KindTable, r.Min())
	n.Size = core.Size{W: r.W, H: r.H}
	n.Rows, n.Columns = t.rows, t.columns
	n.Style = scene.Style{Stroke: t.ctx.Paint().Stroke, Width: 1}
	t.ctx.Scene.Add(n)
}

func (t *TablesTool) UpdateSetting(key string, value any) {
	switch key {
	case SettingRows:
		if n, ok := asInt(value); ok && n > 0 {
			t.rows = n
		}
	case SettingColumns:
		if n, ok := asInt(value); ok && n > 0 {
			t.columns = n
		}
	case SettingColor:
		if s, ok := asString(value); ok && t.active() {
			t.ctx.Colors.SetStroke(string(t.id), s)
		}
	}
}

func bigEnough(r core.Rect, minSize float64) bool {
	return r.W >= minSize && r.H >= minSize
}
