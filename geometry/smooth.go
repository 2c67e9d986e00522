package geometry

import "coursecanvas/core"

// Segment is one piece of a smoothed stroke. Line segments leave Ctrl
// equal to To.
type Segment struct {
	Ctrl core.Point
	To   core.Point
	Quad bool
}

// SmoothSegments turns a captured point sequence into quadratic curve
// segments that pass through the midpoints of consecutive points, using each
// captured point as the control point. A final straight segment reaches the
// true last point. The returned start point is where drawing begins.
func SmoothSegments(points []core.Point) (start core.Point, segs []Segment) {
	switch len(points) {
	case 0:
		return core.Point{}, nil
	case 1:
		return points[0], nil
	case 2:
		return points[0], []Segment{{Ctrl: points[1], To: points[1]}}
	}

	start = points[0]
	segs = make([]Segment, 0, len(points))
	for i := 1; i < len(points)-1; i++ {
		mid := points[i].Mid(points[i+1])
		segs = append(segs, Segment{Ctrl: points[i], To: mid, Quad: true})
	}
	last := points[len(points)-1]
	segs = append(segs, Segment{Ctrl: last, To: last})
	return start, segs
}

// QuadPoint evaluates the quadratic bezier from p0 through control c to p1
// at parameter t.
func QuadPoint(p0, c, p1 core.Point, t float64) core.Point {
	mt := 1 - t
	return core.Point{
		X: mt*mt*p0.X + 2*mt*t*c.X + t*t*p1.X,
		Y: mt*mt*p0.Y + 2*mt*t*c.Y + t*t*p1.Y,
	}
}

// Flatten samples smoothed segments back into a polyline, steps points per
// curve. Used by renderers that only draw straight lines.
func Flatten(start core.Point, segs []Segment, steps int) []core.Point {
	if steps < 1 {
		steps = 1
	}
	out := []core.Point{start}
	cur := start
	for _, s := range segs {
		if !s.Quad {
			out = append(out, s.To)
			cur = s.To
			continue
		}
		for i := 1; i <= steps; i++ {
			out = append(out, QuadPoint(cur, s.Ctrl, s.To, float64(i)/float64(steps)))
		}
		cur = s.To
	}
	return out
}
