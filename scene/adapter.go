package scene

import "coursecanvas/core"

// Adapter is the scene capability the tools consume. Implementations own
// rendering; tools only add, remove, inspect and convert coordinates.
type Adapter interface {
	// Add inserts the node on top of the z-order and returns its new id.
	// The ID field of n is ignored.
	Add(n Node) NodeID

	// Remove deletes a node and its descendants. Returns false if the id
	// is unknown.
	Remove(id NodeID) bool

	// Node returns a copy of the node.
	Node(id NodeID) (Node, bool)

	// Update mutates a node in place. Returns false if the id is unknown.
	Update(id NodeID, fn func(*Node)) bool

	// Snapshot returns every node with its global bounds, bottom-most first.
	Snapshot() []Entry

	// ToGlobal converts p from the local space of frame to global space.
	// Root converts to itself.
	ToGlobal(frame NodeID, p core.Point) core.Point

	// ToLocal converts a global point into the local space of frame.
	ToLocal(frame NodeID, p core.Point) core.Point
}

// Viewport is implemented by adapters that can pan and repaint the canvas
// background. The scene tool uses it when available.
type Viewport interface {
	ViewOrigin() core.Point
	SetViewOrigin(p core.Point)
	Background() string
	SetBackground(hex string)
}

// HitFilter decides whether an entry takes part in hit-testing.
type HitFilter func(Entry) bool

// ContentOnly skips editor chrome and hidden nodes.
func ContentOnly(e Entry) bool {
	return !e.Node.Kind.IsChrome() && !e.Node.Hidden
}

// TopmostAt returns the topmost entry whose global bounds contain p,
// walking the snapshot in reverse z-order.
func TopmostAt(s Adapter, p core.Point, filter HitFilter) (Entry, bool) {
	snap := s.Snapshot()
	for i := len(snap) - 1; i >= 0; i-- {
		e := snap[i]
		if filter != nil && !filter(e) {
			continue
		}
		if e.Bounds.Contains(p) {
			return e, true
		}
	}
	return Entry{}, false
}

// GlobalPosition resolves a node's position in global space: its
// parent-relative position converted through the parent when it has one,
// else the raw position.
func GlobalPosition(s Adapter, n Node) core.Point {
	if n.Parent == Root {
		return n.Position
	}
	return s.ToGlobal(n.Parent, n.Position)
}
