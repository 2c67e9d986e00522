package tools

import (
	"coursecanvas/core"
	"coursecanvas/scene"
	"coursecanvas/selection"
)

// SelectionTool picks the topmost node under the pointer and drags the
// selection around.
type SelectionTool struct {
	base
	dragging bool
	last     core.Point
}

// NewSelectionTool creates the selection tool.
func NewSelectionTool() *SelectionTool {
	return &SelectionTool{base: base{id: Selection, mode: ModeBuild}}
}

// Deactivate clears the selection.
func (t *SelectionTool) Deactivate() {
	if t.active() {
		t.ctx.Selection.Clear()
	}
	t.dragging = false
	t.base.Deactivate()
}

func (t *SelectionTool) PointerDown(ev PointerEvent) {
	ctx := t.ctx
	hit, ok := scene.TopmostAt(ctx.Scene, ev.Point, scene.ContentOnly)
	if !ok {
		if !ev.Shift {
			ctx.Selection.Clear()
		}
		return
	}

	target := selection.Target{ID: hit.ID, Node: hit.Node}
	switch {
	case ev.Shift && ctx.Selection.Contains(hit.ID):
		ctx.Selection.Drop(hit.ID)
		return
	case ev.Shift:
		ctx.Selection.Set(append(ctx.Selection.Targets(), target)...)
	case !ctx.Selection.Contains(hit.ID):
		ctx.Selection.Set(target)
	}
	ctx.Transform.Attach(hit.ID)
	t.dragging = true
	t.last = ev.Point
}

func (t *SelectionTool) PointerMove(ev PointerEvent) {
	if !t.dragging {
		return
	}
	ctx := t.ctx
	for _, tg := range ctx.Selection.Targets() {
		moveBy(ctx.Scene, tg.ID, t.last, ev.Point)
	}
	ctx.Transform.Refresh()
	t.last = ev.Point
}

func (t *SelectionTool) PointerUp(ev PointerEvent) {
	if t.dragging {
		t.PointerMove(ev)
	}
	t.dragging = false
}

func (t *SelectionTool) PointerCancel(PointerEvent) {
	t.dragging = false
}

// moveBy translates a node by the global drag from a to b, measured in its
// parent's space.
func moveBy(s scene.Adapter, id scene.NodeID, a, b core.Point) {
	n, ok := s.Node(id)
	if !ok {
		return
	}
	d := s.ToLocal(n.Parent, b).Sub(s.ToLocal(n.Parent, a))
	if d == (core.Point{}) {
		return
	}
	s.Update(id, func(n *scene.Node) { n.Position = n.Position.Add(d) })
}
