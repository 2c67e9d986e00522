package selection

import (
	"coursecanvas/colors"
	"coursecanvas/core"
	"coursecanvas/scene"
)

// handlePadding is the gap between a node's bounds and its handle frame.
const handlePadding = 4

// TransformHelper places a manipulation handle around exactly one node.
type TransformHelper struct {
	scene  scene.Adapter
	color  string
	target scene.NodeID
	handle scene.NodeID
}

// NewTransformHelper creates a helper drawing handles into s.
func NewTransformHelper(s scene.Adapter) *TransformHelper {
	return &TransformHelper{scene: s, color: colors.DefaultHandle}
}

// SetColor changes the handle color for future attachments.
func (h *TransformHelper) SetColor(hex string) {
	if norm, err := colors.Normalize(hex); err == nil {
		h.color = norm
	}
}

// Attach frames the node with a handle, detaching any previous handle.
// Returns false, leaving no handle, when the node cannot be resolved.
func (h *TransformHelper) Attach(id scene.NodeID) bool {
	bounds, ok := h.boundsOf(id)
	if !ok {
		return false
	}
	h.Detach()

	n := scene.NewNode(scene.KindHandle, bounds.Min())
	n.Size = core.Size{W: bounds.W, H: bounds.H}
	n.Style = scene.Style{Stroke: h.color, Width: 1}
	h.handle = h.scene.Add(n)
	h.target = id
	return true
}

// Detach removes the handle if one is attached.
func (h *TransformHelper) Detach() {
	if h.handle != scene.Root {
		h.scene.Remove(h.handle)
	}
	h.handle = scene.Root
	h.target = scene.Root
}

// Attached returns the node currently carrying the handle.
func (h *TransformHelper) Attached() (scene.NodeID, bool) {
	return h.target, h.target != scene.Root
}

// Handle returns the id of the handle node itself.
func (h *TransformHelper) Handle() (scene.NodeID, bool) {
	return h.handle, h.handle != scene.Root
}

// Refresh re-frames the handle after its target moved or resized. A target
// that disappeared takes its handle with it.
func (h *TransformHelper) Refresh() {
	if h.target == scene.Root {
		return
	}
	bounds, ok := h.boundsOf(h.target)
	if !ok {
		h.Detach()
		return
	}
	h.scene.Update(h.handle, func(n *scene.Node) {
		n.Position = bounds.Min()
		n.Size = core.Size{W: bounds.W, H: bounds.H}
	})
}

func (h *TransformHelper) boundsOf(id scene.NodeID) (core.Rect, bool) {
	if id == scene.Root {
		return core.Rect{}, false
	}
	for _, e := range h.scene.Snapshot() {
		if e.ID == id {
			return e.Bounds.Inset(-handlePadding), true
		}
	}
	return core.Rect{}, false
}
