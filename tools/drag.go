package tools

import (
	"coursecanvas/colors"
	"coursecanvas/core"
	"coursecanvas/scene"
)

// dragBox tracks a drag-to-create gesture and its dashed preview.
type dragBox struct {
	scene   scene.Adapter
	start   core.Point
	cur     core.Point
	preview scene.NodeID
	active  bool
}

func (d *dragBox) begin(s scene.Adapter, p core.Point) {
	d.discard()
	d.scene = s
	d.start, d.cur = p, p
	d.active = true
}

// move updates the preview, creating it on the first movement.
func (d *dragBox) move(p core.Point) {
	if !d.active {
		return
	}
	d.cur = p
	r := d.rect()
	place := func(n *scene.Node) {
		n.Position = r.Min()
		n.Size = core.Size{W: r.W, H: r.H}
	}
	if d.preview != scene.Root && d.scene.Update(d.preview, place) {
		return
	}
	n := scene.NewNode(scene.KindPreview, r.Min())
	place(&n)
	n.Style = scene.Style{Stroke: colors.DefaultHandle, Width: 1}
	d.preview = d.scene.Add(n)
}

func (d *dragBox) rect() core.Rect {
	return core.RectFromPoints(d.start, d.cur)
}

// finish ends the gesture, removing the preview, and returns the dragged
// rectangle.
func (d *dragBox) finish(p core.Point) (core.Rect, bool) {
	if !d.active {
		return core.Rect{}, false
	}
	d.cur = p
	r := d.rect()
	d.discard()
	return r, true
}

// discard drops the gesture and its preview without committing anything.
func (d *dragBox) discard() {
	if d.preview != scene.Root && d.scene != nil {
		d.scene.Remove(d.preview)
	}
	d.preview = scene.Root
	d.active = false
}
