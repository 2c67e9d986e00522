package tools

import (
	"coursecanvas/core"
	"coursecanvas/scene"
)

// EraserTool removes the topmost content node under the pointer while the
// button is held. Erased nodes leave the selection and lose their motion
// path and keyframes.
type EraserTool struct {
	base
	erasing bool
}

// NewEraserTool creates the eraser.
func NewEraserTool() *EraserTool {
	return &EraserTool{base: base{id: Eraser, mode: ModeBuild}}
}

func (t *EraserTool) Deactivate() {
	t.erasing = false
	t.base.Deactivate()
}

func (t *EraserTool) PointerDown(ev PointerEvent) {
	t.erasing = true
	t.eraseAt(ev.Point)
}

func (t *EraserTool) PointerMove(ev PointerEvent) {
	if t.erasing {
		t.eraseAt(ev.Point)
	}
}

func (t *EraserTool) PointerUp(PointerEvent)     { t.erasing = false }
func (t *EraserTool) PointerCancel(PointerEvent) { t.erasing = false }

func (t *EraserTool) eraseAt(p core.Point) {
	ctx := t.ctx
	hit, ok := scene.TopmostAt(ctx.Scene, p, scene.ContentOnly)
	if !ok {
		return
	}
	ctx.Selection.Drop(hit.ID)
	ctx.Scene.Remove(hit.ID)
	ctx.Motion.Remove(hit.ID)
	ctx.Timeline.Clear(hit.ID)
	ctx.Transform.Refresh()
}
