package geometry

import "coursecanvas/core"

// Simplify reduces a point sequence with the Douglas-Peucker algorithm.
// toleranceSq is the squared perpendicular distance below which interior
// points are dropped. The first and last points are always kept and the
// result is an index-ordered subsequence of points.
func Simplify(points []core.Point, toleranceSq float64) []core.Point {
	keep := SimplifyIndices(points, toleranceSq)
	out := make([]core.Point, len(keep))
	for i, idx := range keep {
		out[i] = points[idx]
	}
	return out
}

// SimplifyIndices returns the ascending indices Simplify would keep.
func SimplifyIndices(points []core.Point, toleranceSq float64) []int {
	n := len(points)
	if n <= 2 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	marked := make([]bool, n)
	marked[0], marked[n-1] = true, true
	markSegment(points, 0, n-1, toleranceSq, marked)

	idx := make([]int, 0, n)
	for i, m := range marked {
		if m {
			idx = append(idx, i)
		}
	}
	return idx
}

// markSegment keeps the farthest point from the first-last chord if it is
// outside the tolerance, then recurses into both halves.
func markSegment(points []core.Point, first, last int, toleranceSq float64, marked []bool) {
	if last-first < 2 {
		return
	}

	maxDist := toleranceSq
	index := -1
	for i := first + 1; i < last; i++ {
		d := LineDistanceSq(points[i], points[first], points[last])
		if d > maxDist {
			index = i
			maxDist = d
		}
	}

	if index < 0 {
		return
	}

	marked[index] = true
	markSegment(points, first, index, toleranceSq, marked)
	markSegment(points, index, last, toleranceSq, marked)
}
