package motion

import (
	"maps"
	"slices"
	"sync"

	"coursecanvas/core"
	"coursecanvas/scene"
)

// Path is the motion path of one scene object.
type Path struct {
	ObjectID scene.NodeID `yaml:"object"`
	Points   []core.Point `yaml:"points"`
}

// Length returns the polyline length.
func (p Path) Length() float64 {
	l := 0.0
	for i := 1; i < len(p.Points); i++ {
		l += p.Points[i-1].Distance(p.Points[i])
	}
	return l
}

// PointAt returns the point at fraction t in [0,1] of the arc length.
func (p Path) PointAt(t float64) core.Point {
	switch len(p.Points) {
	case 0:
		return core.Point{}
	case 1:
		return p.Points[0]
	}
	t = core.Clamp(t, 0, 1)
	target := t * p.Length()
	for i := 1; i < len(p.Points); i++ {
		a, b := p.Points[i-1], p.Points[i]
		seg := a.Distance(b)
		if target <= seg {
			if seg == 0 {
				return a
			}
			return a.Lerp(b, target/seg)
		}
		target -= seg
	}
	return p.Points[len(p.Points)-1]
}

// Store holds the latest motion path per object. Committing a path for an
// object that already has one supersedes it.
type Store struct {
	mu    sync.RWMutex
	paths map[scene.NodeID]Path
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{paths: make(map[scene.NodeID]Path)}
}

// Commit stores points as the path of id.
func (s *Store) Commit(id scene.NodeID, points []core.Point) Path {
	p := Path{ObjectID: id, Points: slices.Clone(points)}
	s.mu.Lock()
	s.paths[id] = p
	s.mu.Unlock()
	return p
}

// Get returns the path of id.
func (s *Store) Get(id scene.NodeID) (Path, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.paths[id]
	if !ok {
		return Path{}, false
	}
	p.Points = slices.Clone(p.Points)
	return p, true
}

// Remove drops the path of id.
func (s *Store) Remove(id scene.NodeID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.paths[id]; !ok {
		return false
	}
	delete(s.paths, id)
	return true
}

// IDs returns the object ids with a path, ascending.
func (s *Store) IDs() []scene.NodeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.paths))
}

// All returns every path ordered by object id.
func (s *Store) All() []Path {
	ids := s.IDs()
	out := make([]Path, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.Get(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Load replaces the store contents.
func (s *Store) Load(paths []Path) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = make(map[scene.NodeID]Path, len(paths))
	for _, p := range paths {
		p.Points = slices.Clone(p.Points)
		s.paths[p.ObjectID] = p
	}
}
