package scene

import (
	"math"
	"slices"
	"sync"

	"coursecanvas/core"
	"coursecanvas/geometry"
)

// Memory is an in-process scene graph. It backs the terminal host and the
// tests; a browser host would put its renderer behind Adapter instead.
type Memory struct {
	mu         sync.RWMutex
	nodes      map[NodeID]*Node
	order      []NodeID // z-order, bottom first
	nextID     NodeID
	view       core.Point
	background string
	observers  []func()
}

var (
	_ Adapter  = (*Memory)(nil)
	_ Viewport = (*Memory)(nil)
)

// NewMemory creates an empty scene.
func NewMemory() *Memory {
	return &Memory{
		nodes:      make(map[NodeID]*Node),
		nextID:     1,
		background: "#ffffff",
	}
}

// Observe registers fn to run after every structural or content change.
// Observers run outside the scene lock.
func (m *Memory) Observe(fn func()) {
	m.mu.Lock()
	m.observers = append(m.observers, fn)
	m.mu.Unlock()
}

func (m *Memory) notify() {
	m.mu.RLock()
	obs := slices.Clone(m.observers)
	m.mu.RUnlock()
	for _, fn := range obs {
		fn()
	}
}

// Add implements Adapter.
func (m *Memory) Add(n Node) NodeID {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	n = n.Clone()
	n.ID = id
	if n.Scale == (core.Point{}) {
		n.Scale = core.Pt(1, 1)
	}
	if _, ok := m.nodes[n.Parent]; !ok {
		n.Parent = Root
	}
	m.nodes[id] = &n
	m.order = append(m.order, id)
	m.mu.Unlock()

	m.notify()
	return id
}

// Remove implements Adapter.
func (m *Memory) Remove(id NodeID) bool {
	m.mu.Lock()
	if _, ok := m.nodes[id]; !ok {
		m.mu.Unlock()
		return false
	}

	doomed := map[NodeID]bool{id: true}
	// children may sit anywhere in z-order; sweep until no new descendants
	for changed := true; changed; {
		changed = false
		for nid, n := range m.nodes {
			if !doomed[nid] && doomed[n.Parent] {
				doomed[nid] = true
				changed = true
			}
		}
	}
	for nid := range doomed {
		delete(m.nodes, nid)
	}
	m.order = slices.DeleteFunc(m.order, func(nid NodeID) bool { return doomed[nid] })
	m.mu.Unlock()

	m.notify()
	return true
}

// Node implements Adapter.
func (m *Memory) Node(id NodeID) (Node, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.nodes[id]
	if !ok {
		return Node{}, false
	}
	return n.Clone(), true
}

// Update implements Adapter. fn must not call back into the scene.
func (m *Memory) Update(id NodeID, fn func(*Node)) bool {
	m.mu.Lock()
	n, ok := m.nodes[id]
	if !ok {
		m.mu.Unlock()
		return false
	}
	fn(n)
	n.ID = id
	m.mu.Unlock()

	m.notify()
	return true
}

// Raise moves a node to the top of the z-order.
func (m *Memory) Raise(id NodeID) bool {
	m.mu.Lock()
	i := slices.Index(m.order, id)
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	m.order = append(slices.Delete(m.order, i, i+1), id)
	m.mu.Unlock()

	m.notify()
	return true
}

// Snapshot implements Adapter.
func (m *Memory) Snapshot() []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Entry, 0, len(m.order))
	for _, id := range m.order {
		n := m.nodes[id]
		out = append(out, Entry{
			ID:     id,
			Node:   n.Clone(),
			Bounds: m.globalBoundsLocked(n),
		})
	}
	return out
}

// Len returns the number of nodes.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// Nodes returns copies of all nodes in z-order.
func (m *Memory) Nodes() []Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Node, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.nodes[id].Clone())
	}
	return out
}

// Load replaces the scene content, keeping node ids.
func (m *Memory) Load(nodes []Node) {
	m.mu.Lock()
	m.nodes = make(map[NodeID]*Node, len(nodes))
	m.order = m.order[:0]
	m.nextID = 1
	for _, n := range nodes {
		if n.ID == Root {
			continue
		}
		c := n.Clone()
		m.nodes[c.ID] = &c
		m.order = append(m.order, c.ID)
		if c.ID >= m.nextID {
			m.nextID = c.ID + 1
		}
	}
	m.mu.Unlock()

	m.notify()
}

// ToGlobal implements Adapter.
func (m *Memory) ToGlobal(frame NodeID, p core.Point) core.Point {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.toGlobalLocked(frame, p)
}

func (m *Memory) toGlobalLocked(frame NodeID, p core.Point) core.Point {
	for id := frame; id != Root; {
		n, ok := m.nodes[id]
		if !ok {
			break
		}
		p = geometry.Transform(p, n.Position, n.Rotation, n.Scale)
		id = n.Parent
	}
	return p
}

// ToLocal implements Adapter.
func (m *Memory) ToLocal(frame NodeID, p core.Point) core.Point {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var chain []*Node
	for id := frame; id != Root; {
		n, ok := m.nodes[id]
		if !ok {
			break
		}
		chain = append(chain, n)
		id = n.Parent
	}
	for i := len(chain) - 1; i >= 0; i-- {
		n := chain[i]
		p = geometry.InverseTransform(p, n.Position, n.Rotation, n.Scale)
	}
	return p
}

func (m *Memory) globalBoundsLocked(n *Node) core.Rect {
	local := n.LocalBounds()
	corners := []core.Point{
		local.Min(),
		core.Pt(local.X+local.W, local.Y),
		local.Max(),
		core.Pt(local.X, local.Y+local.H),
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		g := m.toGlobalLocked(n.ID, c)
		minX = math.Min(minX, g.X)
		minY = math.Min(minY, g.Y)
		maxX = math.Max(maxX, g.X)
		maxY = math.Max(maxY, g.Y)
	}
	return core.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// ViewOrigin implements Viewport.
func (m *Memory) ViewOrigin() core.Point {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.view
}

// SetViewOrigin implements Viewport.
func (m *Memory) SetViewOrigin(p core.Point) {
	m.mu.Lock()
	m.view = p
	m.mu.Unlock()
	m.notify()
}

// Background implements Viewport.
func (m *Memory) Background() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.background
}

// SetBackground implements Viewport.
func (m *Memory) SetBackground(hex string) {
	m.mu.Lock()
	m.background = hex
	m.mu.Unlock()
	m.notify()
}
