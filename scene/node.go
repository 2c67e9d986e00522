// Package scene defines the contract the tools need from the renderer's
// scene graph and an in-memory implementation of it.
package scene

import (
	"slices"

	"coursecanvas/core"
)

// NodeID identifies a node. Zero is the root and never a real node.
type NodeID int

// Root is the implicit parent of top-level nodes.
const Root NodeID = 0

// Kind tags what a node draws.
type Kind string

const (
	KindStroke    Kind = "stroke"
	KindText      Kind = "text"
	KindRect      Kind = "rect"
	KindEllipse   Kind = "ellipse"
	KindTable     Kind = "table"
	KindGroup     Kind = "group"
	KindHandle    Kind = "handle"    // transform affordance
	KindHighlight Kind = "highlight" // text selection rectangle
	KindCaret     Kind = "caret"
	KindPreview   Kind = "preview" // drag-to-create outline
)

// IsChrome reports whether nodes of this kind are editor decoration rather
// than course content. Chrome is skipped by hit-testing and export.
func (k Kind) IsChrome() bool {
	switch k {
	case KindHandle, KindHighlight, KindCaret, KindPreview:
		return true
	}
	return false
}

// Style holds paint settings. Colors are hex strings ("#rrggbb" or
// "#rrggbbaa"); an empty color means no paint.
type Style struct {
	Stroke  string  `yaml:"stroke,omitempty" json:"stroke,omitempty"`
	Fill    string  `yaml:"fill,omitempty" json:"fill,omitempty"`
	Width   float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Opacity float64 `yaml:"opacity,omitempty" json:"opacity,omitempty"`
}

// Node is one drawable in the scene. Position, Rotation and Scale place the
// node inside its parent's local space; Points and Size are in the node's
// own local space.
type Node struct {
	ID       NodeID       `yaml:"id" json:"id"`
	Kind     Kind         `yaml:"kind" json:"kind"`
	Name     string       `yaml:"name,omitempty" json:"name,omitempty"`
	Parent   NodeID       `yaml:"parent,omitempty" json:"parent,omitempty"`
	Position core.Point   `yaml:"position" json:"position"`
	Rotation float64      `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	Scale    core.Point   `yaml:"scale" json:"scale"`
	Size     core.Size    `yaml:"size,omitempty" json:"size,omitempty"`
	Points   []core.Point `yaml:"points,omitempty" json:"points,omitempty"`
	Text     string       `yaml:"text,omitempty" json:"text,omitempty"`
	FontSize float64      `yaml:"font_size,omitempty" json:"font_size,omitempty"`
	Rows     int          `yaml:"rows,omitempty" json:"rows,omitempty"`
	Columns  int          `yaml:"columns,omitempty" json:"columns,omitempty"`
	Style    Style        `yaml:"style,omitempty" json:"style,omitempty"`
	Hidden   bool         `yaml:"hidden,omitempty" json:"hidden,omitempty"`
}

// NewNode returns a node of the given kind at pos with unit scale.
func NewNode(kind Kind, pos core.Point) Node {
	return Node{Kind: kind, Position: pos, Scale: core.Pt(1, 1)}
}

// LocalBounds returns the node's extent in its own local space.
func (n Node) LocalBounds() core.Rect {
	if len(n.Points) > 0 {
		b := core.BoundsOf(n.Points)
		if pad := n.Style.Width / 2; pad > 0 {
			b = b.Inset(-pad)
		}
		return b
	}
	return core.Rect{W: n.Size.W, H: n.Size.H}
}

// Clone returns a deep copy.
func (n Node) Clone() Node {
	n.Points = slices.Clone(n.Points)
	return n
}

// Entry is one element of a scene snapshot.
type Entry struct {
	ID     NodeID
	Node   Node
	Bounds core.Rect // global axis-aligned bounds
}
