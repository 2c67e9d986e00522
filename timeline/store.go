// Package timeline stores per-object animation keyframes and samples poses
// between them.
package timeline

import (
	"cmp"
	"maps"
	"slices"
	"sync"

	"coursecanvas/core"
	"coursecanvas/scene"
)

// Keyframe is an object's pose at a point in time. Position is global;
// Rotation is in radians.
type Keyframe struct {
	Time     float64    `yaml:"time"`
	Position core.Point `yaml:"position"`
	Rotation float64    `yaml:"rotation"`
	Scale    core.Point `yaml:"scale"`
}

// Track is the keyframe list of one object, ordered by time.
type Track struct {
	ObjectID  scene.NodeID `yaml:"object"`
	Keyframes []Keyframe   `yaml:"keyframes"`
}

// Store holds keyframes per object. Keyframes of one object are kept in
// ascending time order and a keyframe added at an existing time replaces
// the one already there.
type Store struct {
	mu     sync.RWMutex
	tracks map[scene.NodeID][]Keyframe
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{tracks: make(map[scene.NodeID][]Keyframe)}
}

func byTime(a Keyframe, t float64) int { return cmp.Compare(a.Time, t) }

// Add records kf for id. Returns true if it replaced a keyframe at the same
// time.
func (s *Store) Add(id scene.NodeID, kf Keyframe) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kfs := s.tracks[id]
	i, found := slices.BinarySearchFunc(kfs, kf.Time, byTime)
	if found {
		kfs[i] = kf
		return true
	}
	s.tracks[id] = slices.Insert(kfs, i, kf)
	return false
}

// Keyframes returns a copy of id's keyframes in ascending time order.
func (s *Store) Keyframes(id scene.NodeID) []Keyframe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tracks[id])
}

// Remove deletes the keyframe of id at exactly time t.
func (s *Store) Remove(id scene.NodeID, t float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kfs := s.tracks[id]
	i, found := slices.BinarySearchFunc(kfs, t, byTime)
	if !found {
		return false
	}
	kfs = slices.Delete(kfs, i, i+1)
	if len(kfs) == 0 {
		delete(s.tracks, id)
	} else {
		s.tracks[id] = kfs
	}
	return true
}

// Clear drops every keyframe of id.
func (s *Store) Clear(id scene.NodeID) {
	s.mu.Lock()
	delete(s.tracks, id)
	s.mu.Unlock()
}

// Objects returns the ids that have keyframes, ascending.
func (s *Store) Objects() []scene.NodeID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.tracks))
}

// Duration returns the time of id's last keyframe, or 0.
func (s *Store) Duration(id scene.NodeID) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	kfs := s.tracks[id]
	if len(kfs) == 0 {
		return 0
	}
	return kfs[len(kfs)-1].Time
}

// Tracks returns every track ordered by object id.
func (s *Store) Tracks() []Track {
	ids := s.Objects()
	out := make([]Track, 0, len(ids))
	for _, id := range ids {
		out = append(out, Track{ObjectID: id, Keyframes: s.Keyframes(id)})
	}
	return out
}

// Load replaces the store contents. Keyframes are re-sorted and duplicate
// times resolved in favour of the later entry.
func (s *Store) Load(tracks []Track) {
	s.mu.Lock()
	s.tracks = make(map[scene.NodeID][]Keyframe, len(tracks))
	s.mu.Unlock()
	for _, tr := range tracks {
		for _, kf := range tr.Keyframes {
			s.Add(tr.ObjectID, kf)
		}
	}
}
