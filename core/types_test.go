package core

import (
	"testing"
)

func TestRectFromPoints(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want Rect
	}{
		{"top-left to bottom-right", Pt(0, 0), Pt(10, 20), Rect{0, 0, 10, 20}},
		{"bottom-right to top-left", Pt(10, 20), Pt(0, 0), Rect{0, 0, 10, 20}},
		{"mixed corners", Pt(10, 0), Pt(0, 20), Rect{0, 0, 10, 20}},
		{"degenerate", Pt(5, 5), Pt(5, 5), Rect{5, 5, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RectFromPoints(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}

	inside := []Point{Pt(10, 10), Pt(30, 20), Pt(15, 15)}
	for _, p := range inside {
		if !r.Contains(p) {
			t.Errorf("Expected %v to be inside %v", p, r)
		}
	}

	outside := []Point{Pt(9, 10), Pt(31, 20), Pt(15, 21)}
	for _, p := range outside {
		if r.Contains(p) {
			t.Errorf("Expected %v to be outside %v", p, r)
		}
	}
}

func TestBoundsOf(t *testing.T) {
	got := BoundsOf([]Point{Pt(3, 4), Pt(-1, 10), Pt(7, 2)})
	want := Rect{X: -1, Y: 2, W: 8, H: 8}
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if empty := BoundsOf(nil); empty != (Rect{}) {
		t.Errorf("Expected empty rect, got %v", empty)
	}
}

func TestPointLerp(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, -10)
	if got := a.Lerp(b, 0.5); got != Pt(5, -5) {
		t.Errorf("Expected (5,-5), got %v", got)
	}
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Expected %v, got %v", a, got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Expected %v, got %v", b, got)
	}
}
