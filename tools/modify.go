package tools

import (
	"coursecanvas/core"
	"coursecanvas/scene"
	"coursecanvas/selection"
	"coursecanvas/timeline"
)

// ModifyTool selects a working target by hit-testing on pointer up, lets
// it be dragged, rotated and scaled, and records keyframes of its pose at
// the current timeline time.
type ModifyTool struct {
	base
	target   scene.NodeID
	time     float64
	dragging bool
	moved    bool
	last     core.Point
}

// NewModifyTool creates the modify tool.
func NewModifyTool() *ModifyTool {
	return &ModifyTool{base: base{id: Modify, mode: ModeAnimate}}
}

func (t *ModifyTool) Activate(ctx *Context) {
	t.base.Activate(ctx)
	t.target = scene.Root
	restore(ctx, t.UpdateSetting, SettingTime)
}

// Deactivate clears the selection and handle. Captured keyframes stay.
func (t *ModifyTool) Deactivate() {
	if t.active() {
		t.ctx.Selection.Clear()
		t.ctx.Transform.Detach()
	}
	t.target = scene.Root
	t.dragging, t.moved = false, false
	t.base.Deactivate()
}

// Target returns the working target.
func (t *ModifyTool) Target() (scene.NodeID, bool) {
	return t.target, t.target != scene.Root
}

// Time returns the current timeline time.
func (t *ModifyTool) Time() float64 { return t.time }

func (t *ModifyTool) PointerDown(ev PointerEvent) {
	t.dragging, t.moved = false, false
	if t.target == scene.Root {
		return
	}
	for _, e := range t.ctx.Scene.Snapshot() {
		if e.ID == t.target && e.Bounds.Contains(ev.Point) {
			t.dragging = true
			t.last = ev.Point
			return
		}
	}
}

func (t *ModifyTool) PointerMove(ev PointerEvent) {
	if !t.dragging {
		return
	}
	moveBy(t.ctx.Scene, t.target, t.last, ev.Point)
	t.ctx.Transform.Refresh()
	t.last = ev.Point
	t.moved = true
}

func (t *ModifyTool) PointerUp(ev PointerEvent) {
	if t.dragging {
		t.PointerMove(ev)
	}
	moved := t.moved
	t.dragging, t.moved = false, false
	if moved {
		return
	}

	ctx := t.ctx
	hit, ok := scene.TopmostAt(ctx.Scene, ev.Point, scene.ContentOnly)
	if !ok {
		t.target = scene.Root
		ctx.Selection.Clear()
		return
	}
	if !ctx.Transform.Attach(hit.ID) {
		return
	}
	t.target = hit.ID
	ctx.Selection.Set(selection.Target{ID: hit.ID, Node: hit.Node})
}

func (t *ModifyTool) PointerCancel(PointerEvent) {
	t.dragging, t.moved = false, false
}

func (t *ModifyTool) UpdateSetting(key string, value any) {
	switch key {
	case SettingTime:
		if f, ok := asFloat(value); ok && f >= 0 {
			t.time = f
		}
	case SettingCaptureKeyframe:
		if asTrigger(value) {
			t.Capture()
		}
	case SettingRotation:
		if r, ok := asFloat(value); ok {
			t.apply(func(n *scene.Node) { n.Rotation = r })
		}
	case SettingScale:
		if s, ok := asScale(value); ok && s.X != 0 && s.Y != 0 {
			t.apply(func(n *scene.Node) { n.Scale = s })
		}
	}
}

func (t *ModifyTool) apply(fn func(*scene.Node)) {
	if !t.active() || t.target == scene.Root {
		return
	}
	if t.ctx.Scene.Update(t.target, fn) {
		t.ctx.Transform.Refresh()
	}
}

// Capture records the working target's pose at the current time. Returns
// false when there is no resolvable target.
func (t *ModifyTool) Capture() bool {
	if !t.active() || t.target == scene.Root {
		return false
	}
	n, ok := t.ctx.Scene.Node(t.target)
	if !ok {
		t.target = scene.Root
		return false
	}
	t.ctx.Timeline.Add(t.target, timeline.Keyframe{
		Time:     t.time,
		Position: scene.GlobalPosition(t.ctx.Scene, n),
		Rotation: n.Rotation,
		Scale:    n.Scale,
	})
	return true
}
