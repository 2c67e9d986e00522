// Package document persists a canvas: its content nodes, motion paths,
// keyframe tracks and page layout. It also provides undo history over
// document snapshots and a debounced autosaver.
package document

import (
	"slices"

	"coursecanvas/config"
	"coursecanvas/core"
	"coursecanvas/motion"
	"coursecanvas/scene"
	"coursecanvas/timeline"
)

// Version is the current document format version.
const Version = 1

// Document is a point-in-time copy of everything a canvas saves. Editor
// chrome (handles, highlights, carets, previews) is never part of it.
type Document struct {
	Version    int              `yaml:"version"`
	Course     string           `yaml:"course,omitempty"`
	Layout     config.Layout    `yaml:"layout"`
	Background string           `yaml:"background,omitempty"`
	View       core.Point       `yaml:"view"`
	Nodes      []scene.Node     `yaml:"nodes"`
	Motion     []motion.Path    `yaml:"motion,omitempty"`
	Timeline   []timeline.Track `yaml:"timeline,omitempty"`
}

// Clone returns a deep copy.
func (d Document) Clone() Document {
	c := d
	c.Nodes = slices.Clone(d.Nodes)
	for i := range c.Nodes {
		c.Nodes[i] = c.Nodes[i].Clone()
	}
	c.Motion = slices.Clone(d.Motion)
	for i := range c.Motion {
		c.Motion[i].Points = slices.Clone(c.Motion[i].Points)
	}
	c.Timeline = slices.Clone(d.Timeline)
	for i := range c.Timeline {
		c.Timeline[i].Keyframes = slices.Clone(c.Timeline[i].Keyframes)
	}
	return c
}

// Node returns the node with the given id.
func (d Document) Node(id scene.NodeID) (scene.Node, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return scene.Node{}, false
}

// Workspace is the set of live stores a document is captured from and
// applied to.
type Workspace struct {
	Course   string
	Layout   config.Layout
	Scene    *scene.Memory
	Motion   *motion.Store
	Timeline *timeline.Store
}

// NewWorkspace creates empty stores for a course.
func NewWorkspace(course string, layout config.Layout) *Workspace {
	return &Workspace{
		Course:   course,
		Layout:   layout,
		Scene:    scene.NewMemory(),
		Motion:   motion.NewStore(),
		Timeline: timeline.NewStore(),
	}
}

// Capture snapshots the workspace. Motion paths and tracks of objects that
// no longer exist are left out.
func (w *Workspace) Capture() Document {
	d := Document{
		Version:    Version,
		Course:     w.Course,
		Layout:     w.Layout,
		Background: w.Scene.Background(),
		View:       w.Scene.ViewOrigin(),
	}

	alive := make(map[scene.NodeID]bool)
	for _, n := range w.Scene.Nodes() {
		if n.Kind.IsChrome() {
			continue
		}
		alive[n.ID] = true
		d.Nodes = append(d.Nodes, n)
	}
	for _, p := range w.Motion.All() {
		if alive[p.ObjectID] {
			d.Motion = append(d.Motion, p)
		}
	}
	for _, t := range w.Timeline.Tracks() {
		if alive[t.ObjectID] {
			d.Timeline = append(d.Timeline, t)
		}
	}
	return d
}

// Apply replaces the workspace contents with d.
func (w *Workspace) Apply(d Document) {
	d = d.Clone()
	w.Course = d.Course
	w.Layout = d.Layout
	w.Scene.Load(d.Nodes)
	if d.Background != "" {
		w.Scene.SetBackground(d.Background)
	}
	w.Scene.SetViewOrigin(d.View)
	w.Motion.Load(d.Motion)
	w.Timeline.Load(d.Timeline)
}
