package tools

import (
	"coursecanvas/core"
	"coursecanvas/motion"
	"coursecanvas/scene"
)

// PathTool records a freehand motion path. On commit the capture is
// simplified, blended at the current adherence and stored as the motion
// path of the target object, or of the stroke itself when no target is set.
type PathTool struct {
	base
	adherence   float64
	toleranceSq float64
	rec         *motion.Recorder
	node        scene.NodeID
}

// NewPathTool creates the path tool.
func NewPathTool() *PathTool {
	return &PathTool{base: base{id: Path, mode: ModeAnimate}, adherence: -1}
}

func (t *PathTool) Activate(ctx *Context) {
	t.base.Activate(ctx)
	t.rec = motion.NewRecorder(ctx.Config.Path.MinSampleDistance)
	if t.adherence < 0 {
		t.adherence = ctx.Config.Path.Adherence
		t.toleranceSq = ctx.Config.Path.ToleranceSq
	}
	restore(ctx, t.UpdateSetting, SettingAdherence, SettingTolerance)
}

// Deactivate commits or discards the path in progress.
func (t *PathTool) Deactivate() {
	if t.active() {
		t.commit()
	}
	t.base.Deactivate()
}

// Adherence returns the current blend factor.
func (t *PathTool) Adherence() float64 { return t.adherence }

func (t *PathTool) PointerDown(ev PointerEvent) {
	t.commit()
	t.rec.Begin(ev.Point)
	n := scene.NewNode(scene.KindStroke, core.Point{})
	n.Name = "motion-path"
	n.Points = []core.Point{ev.Point}
	n.Style = scene.Style{Stroke: t.ctx.Paint().Stroke, Width: t.ctx.Config.Path.StrokeWidth}
	t.node = t.ctx.Scene.Add(n)
}

func (t *PathTool) PointerMove(ev PointerEvent) {
	if !t.rec.Recording() || !t.rec.Add(ev.Point) {
		return
	}
	pts := t.rec.Points()
	t.ctx.Scene.Update(t.node, func(n *scene.Node) { n.Points = pts })
}

func (t *PathTool) PointerUp(ev PointerEvent) {
	t.PointerMove(ev)
	t.commit()
}

func (t *PathTool) PointerCancel(PointerEvent) {
	t.commit()
}

func (t *PathTool) commit() {
	if t.rec == nil || !t.rec.Recording() {
		return
	}
	raw := t.rec.Finish()
	node := t.node
	t.node = scene.Root
	if len(raw) < 2 {
		t.ctx.Scene.Remove(node)
		return
	}

	pts := motion.Effective(raw, t.toleranceSq, t.adherence)
	t.ctx.Scene.Update(node, func(n *scene.Node) { n.Points = pts })

	owner := node
	if v, ok := t.ctx.Setting(SettingTarget); ok {
		if id, ok := asNodeID(v); ok {
			if _, exists := t.ctx.Scene.Node(id); exists {
				owner = id
			}
		}
	}
	t.ctx.Motion.Commit(owner, pts)
}

func (t *PathTool) UpdateSetting(key string, value any) {
	switch key {
	case SettingAdherence:
		if a, ok := asFloat(value); ok {
			t.adherence = core.Clamp(a, 0, 1)
		}
	case SettingTolerance:
		if tol, ok := asFloat(value); ok && tol >= 0 {
			t.toleranceSq = tol
		}
	case SettingColor:
		if s, ok := asString(value); ok && t.active() {
			t.ctx.Colors.SetStroke(string(t.id), s)
		}
	}
}
