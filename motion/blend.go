package motion

import (
	"math"
	"slices"

	"coursecanvas/core"
	"coursecanvas/geometry"
)

// Blend mixes a captured path with its simplification. keep are the
// ascending indices into original that survived simplification. Adherence 1
// returns the original points. Below that the result has one point per kept
// index: simplified point i is pulled toward the original point at the same
// proportional position, round(i*(N-1)/(M-1)), so 0 returns the simplified
// points exactly.
func Blend(original []core.Point, keep []int, adherence float64) []core.Point {
	adherence = core.Clamp(adherence, 0, 1)
	switch {
	case len(original) == 0:
		return nil
	case adherence >= 1 || len(keep) < 2:
		return slices.Clone(original)
	}

	n, m := len(original), len(keep)
	out := make([]core.Point, m)
	for i, k := range keep {
		match := int(math.Round(float64(i*(n-1)) / float64(m-1)))
		out[i] = original[k].Lerp(original[match], adherence)
	}
	return out
}

// Effective simplifies points with toleranceSq and blends the result at the
// given adherence. This is the sequence persisted as a motion path.
func Effective(points []core.Point, toleranceSq, adherence float64) []core.Point {
	if len(points) < 2 {
		return slices.Clone(points)
	}
	return Blend(points, geometry.SimplifyIndices(points, toleranceSq), adherence)
}
