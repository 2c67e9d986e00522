package tools

import (
	"coursecanvas/colors"
	"coursecanvas/core"
	"coursecanvas/motion"
	"coursecanvas/scene"
)

// StrokeTool draws freehand strokes. Pen and Brush are the same tool with
// different widths and opacity.
type StrokeTool struct {
	base
	width   float64
	opacity float64
	rec     *motion.Recorder
	node    scene.NodeID
}

// NewPenTool creates the pen: thin, opaque strokes.
func NewPenTool() *StrokeTool {
	return &StrokeTool{base: base{id: Pen, mode: ModeBuild}, opacity: 1}
}

// NewBrushTool creates the brush: wide, translucent strokes.
func NewBrushTool() *StrokeTool {
	return &StrokeTool{base: base{id: Brush, mode: ModeBuild}, opacity: 0.5}
}

func (t *StrokeTool) Activate(ctx *Context) {
	t.base.Activate(ctx)
	t.rec = motion.NewRecorder(ctx.Config.Path.MinSampleDistance)
	if t.width == 0 {
		t.width = ctx.Config.Shapes.PenWidth
		if t.id == Brush {
			t.width = ctx.Config.Shapes.BrushWidth
		}
	}
	restore(ctx, t.UpdateSetting, SettingWidth, SettingOpacity)
}

// Deactivate keeps a stroke of two or more points and drops anything
// shorter.
func (t *StrokeTool) Deactivate() {
	if t.active() {
		t.commit()
	}
	t.base.Deactivate()
}

func (t *StrokeTool) stroke() string {
	c := t.ctx.Paint().Stroke
	if t.opacity < 1 {
		c = colors.WithAlpha(c, t.opacity)
	}
	return c
}

func (t *StrokeTool) PointerDown(ev PointerEvent) {
	t.commit()
	t.rec.Begin(ev.Point)
	n := scene.NewNode(scene.KindStroke, core.Point{})
	n.Points = []core.Point{ev.Point}
	n.Style = scene.Style{Stroke: t.stroke(), Width: t.width}
	t.node = t.ctx.Scene.Add(n)
}

func (t *StrokeTool) PointerMove(ev PointerEvent) {
	if !t.rec.Recording() || !t.rec.Add(ev.Point) {
		return
	}
	pts := t.rec.Points()
	t.ctx.Scene.Update(t.node, func(n *scene.Node) { n.Points = pts })
}

func (t *StrokeTool) PointerUp(ev PointerEvent) {
	t.PointerMove(ev)
	t.commit()
}

func (t *StrokeTool) PointerCancel(PointerEvent) {
	t.commit()
}

func (t *StrokeTool) commit() {
	if t.rec == nil || !t.rec.Recording() {
		return
	}
	pts := t.rec.Finish()
	if len(pts) < 2 {
		t.ctx.Scene.Remove(t.node)
	} else {
		t.ctx.Scene.Update(t.node, func(n *scene.Node) { n.Points = pts })
	}
	t.node = scene.Root
}

func (t *StrokeTool) UpdateSetting(key string, value any) {
	switch key {
	case SettingWidth:
		if w, ok := asFloat(value); ok && w > 0 {
			t.width = w
		}
	case SettingOpacity:
		if o, ok := asFloat(value); ok {
			t.opacity = core.Clamp(o, 0, 1)
		}
	case SettingColor:
		if s, ok := asString(value); ok && t.active() {
			t.ctx.Colors.SetStroke(string(t.id), s)
		}
	}
}
