// Package motion captures freehand paths, reduces them with Douglas-Peucker
// simplification and stores the adherence-blended result as the motion path
// of a scene object.
package motion

import (
	"slices"

	"coursecanvas/core"
)

// Recorder collects pointer samples, dropping any that land closer than
// MinDistance to the last kept point.
type Recorder struct {
	MinDistance float64
	points      []core.Point
	recording   bool
}

// NewRecorder creates a recorder with the given sampling gate.
func NewRecorder(minDistance float64) *Recorder {
	return &Recorder{MinDistance: minDistance}
}

// Begin starts a new capture at p, discarding any previous one.
func (r *Recorder) Begin(p core.Point) {
	r.points = append(r.points[:0], p)
	r.recording = true
}

// Add appends p if it is far enough from the last point. Returns whether p
// was kept.
func (r *Recorder) Add(p core.Point) bool {
	if !r.recording {
		return false
	}
	last := r.points[len(r.points)-1]
	if last.DistanceSq(p) < r.MinDistance*r.MinDistance {
		return false
	}
	r.points = append(r.points, p)
	return true
}

// Recording reports whether a capture is in progress.
func (r *Recorder) Recording() bool { return r.recording }

// Len returns the number of kept points.
func (r *Recorder) Len() int { return len(r.points) }

// Points returns a copy of the kept points.
func (r *Recorder) Points() []core.Point { return slices.Clone(r.points) }

// Finish ends the capture and returns its points.
func (r *Recorder) Finish() []core.Point {
	pts := r.Points()
	r.Reset()
	return pts
}

// Reset drops the capture.
func (r *Recorder) Reset() {
	r.points = r.points[:0]
	r.recording = false
}
