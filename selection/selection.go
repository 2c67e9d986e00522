// Package selection owns "what is selected" and "what has a handle".
// Tools never keep their own selection state; they go through Manager.
package selection

import (
	"slices"

	"coursecanvas/scene"
)

// Target is one selected node.
type Target struct {
	ID   scene.NodeID
	Node scene.Node
}

// Manager is the single writer of the current selection.
type Manager struct {
	targets   []Target
	transform *TransformHelper
	listeners []func([]Target)
}

// NewManager creates an empty selection. transform may be nil when no
// handle should follow the selection.
func NewManager(transform *TransformHelper) *Manager {
	return &Manager{transform: transform}
}

// OnChange registers fn to receive the new selection after every change.
func (m *Manager) OnChange(fn func([]Target)) {
	m.listeners = append(m.listeners, fn)
}

func (m *Manager) changed() {
	for _, fn := range m.listeners {
		fn(m.Targets())
	}
}

// Set replaces the selection atomically. Duplicate ids keep their first
// occurrence.
func (m *Manager) Set(targets ...Target) {
	next := make([]Target, 0, len(targets))
	seen := make(map[scene.NodeID]bool, len(targets))
	for _, t := range targets {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		next = append(next, Target{ID: t.ID, Node: t.Node.Clone()})
	}
	m.targets = next
	m.changed()
}

// Clear empties the selection and detaches any transform handle.
func (m *Manager) Clear() {
	if m.transform != nil {
		m.transform.Detach()
	}
	if len(m.targets) == 0 {
		return
	}
	m.targets = nil
	m.changed()
}

// Drop removes one node from the selection, detaching the handle if it was
// framing that node. Returns false if the node was not selected.
func (m *Manager) Drop(id scene.NodeID) bool {
	i := slices.IndexFunc(m.targets, func(t Target) bool { return t.ID == id })
	if i < 0 {
		return false
	}
	if m.transform != nil {
		if attached, ok := m.transform.Attached(); ok && attached == id {
			m.transform.Detach()
		}
	}
	m.targets = slices.Delete(slices.Clone(m.targets), i, i+1)
	m.changed()
	return true
}

// Targets returns a copy of the selection.
func (m *Manager) Targets() []Target {
	out := make([]Target, len(m.targets))
	for i, t := range m.targets {
		out[i] = Target{ID: t.ID, Node: t.Node.Clone()}
	}
	return out
}

// Primary returns the first selected target.
func (m *Manager) Primary() (Target, bool) {
	if len(m.targets) == 0 {
		return Target{}, false
	}
	t := m.targets[0]
	return Target{ID: t.ID, Node: t.Node.Clone()}, true
}

// Contains reports whether id is selected.
func (m *Manager) Contains(id scene.NodeID) bool {
	return slices.ContainsFunc(m.targets, func(t Target) bool { return t.ID == id })
}

// Len returns the number of selected targets.
func (m *Manager) Len() int {
	return len(m.targets)
}

// Transform returns the handle helper the manager detaches on Clear.
func (m *Manager) Transform() *TransformHelper {
	return m.transform
}
