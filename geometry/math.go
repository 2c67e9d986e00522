// Package geometry holds the point-sequence algorithms used by the drawing
// tools: simplification, curve smoothing and affine helpers.
package geometry

import (
	"math"

	"coursecanvas/core"
)

// LineDistanceSq returns the squared perpendicular distance from p to the
// line through a and b. A degenerate chord (a == b) falls back to the point
// distance.
func LineDistanceSq(p, a, b core.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.DistanceSq(a)
	}
	cross := (p.X-a.X)*dy - (p.Y-a.Y)*dx
	return cross * cross / lenSq
}

// Rotate rotates p around the origin by angle radians.
func Rotate(p core.Point, angle float64) core.Point {
	sin, cos := math.Sincos(angle)
	return core.Point{
		X: p.X*cos - p.Y*sin,
		Y: p.X*sin + p.Y*cos,
	}
}

// Transform applies scale, then rotation, then translation to p.
func Transform(p core.Point, translate core.Point, rotation float64, scale core.Point) core.Point {
	scaled := core.Point{X: p.X * scale.X, Y: p.Y * scale.Y}
	return Rotate(scaled, rotation).Add(translate)
}

// InverseTransform undoes Transform. Zero scale components collapse to the
// origin on that axis instead of dividing by zero.
func InverseTransform(p core.Point, translate core.Point, rotation float64, scale core.Point) core.Point {
	q := Rotate(p.Sub(translate), -rotation)
	if scale.X != 0 {
		q.X /= scale.X
	} else {
		q.X = 0
	}
	if scale.Y != 0 {
		q.Y /= scale.Y
	} else {
		q.Y = 0
	}
	return q
}
