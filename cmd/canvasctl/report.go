package main

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"coursecanvas/core"
	"coursecanvas/document"
	"coursecanvas/scene"
	"coursecanvas/timeline"
	"coursecanvas/tools"
)

var title = cases.Title(language.English)

// label turns identifiers like "captureKeyframe" or "font_size" into
// "Capture Keyframe" and "Font Size".
func label(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
			continue
		case i > 0 && r >= 'A' && r <= 'Z':
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return title.String(b.String())
}

func point(p core.Point) string {
	return fmt.Sprintf("%.1f, %.1f", p.X, p.Y)
}

func clip(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", "⏎")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// summaryRows describes the document as label/value pairs.
func summaryRows(d document.Document) [][]string {
	w, h := d.Layout.PageSize()
	counts := make(map[scene.Kind]int)
	for _, n := range d.Nodes {
		counts[n.Kind]++
	}
	kinds := make([]string, 0, len(counts))
	for k, c := range counts {
		kinds = append(kinds, fmt.Sprintf("%s %d", label(string(k)), c))
	}
	sort.Strings(kinds)

	keyframes := 0
	for _, t := range d.Timeline {
		keyframes += len(t.Keyframes)
	}
	return [][]string{
		{"Field", "Value"},
		{"Course", d.Course},
		{"Version", fmt.Sprint(d.Version)},
		{"Page", fmt.Sprintf("%s %s, %d×%d px at %.0f dpi", strings.ToUpper(d.Layout.Page), label(string(d.Layout.Orientation)), w, h, d.Layout.DPI)},
		{"Background", d.Background},
		{"Nodes", fmt.Sprintf("%d (%s)", len(d.Nodes), strings.Join(kinds, ", "))},
		{"Motion paths", fmt.Sprint(len(d.Motion))},
		{"Animated objects", fmt.Sprintf("%d, %d keyframes", len(d.Timeline), keyframes)},
	}
}

// nodeRows lists every node in z-order.
func nodeRows(d document.Document) [][]string {
	rows := [][]string{{"ID", "Kind", "Parent", "Position", "Size", "Content"}}
	for _, n := range d.Nodes {
		content := ""
		switch n.Kind {
		case scene.KindText:
			content = clip(n.Text, 24)
		case scene.KindStroke:
			content = fmt.Sprintf("%d points", len(n.Points))
		case scene.KindTable:
			content = fmt.Sprintf("%d×%d", n.Rows, n.Columns)
		}
		parent := "-"
		if n.Parent != scene.Root {
			parent = fmt.Sprint(n.Parent)
		}
		rows = append(rows, []string{
			fmt.Sprint(n.ID),
			label(string(n.Kind)),
			parent,
			point(n.Position),
			fmt.Sprintf("%.0f×%.0f", n.Size.W, n.Size.H),
			content,
		})
	}
	return rows
}

// keyframeRows lists keyframes grouped by object, in time order.
func keyframeRows(d document.Document) [][]string {
	rows := [][]string{{"Object", "Time", "Position", "Rotation", "Scale"}}
	tracks := append([]timeline.Track(nil), d.Timeline...)
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].ObjectID < tracks[j].ObjectID })
	for _, t := range tracks {
		for _, kf := range t.Keyframes {
			rows = append(rows, []string{
				fmt.Sprint(t.ObjectID),
				fmt.Sprintf("%.2fs", kf.Time),
				point(kf.Position),
				fmt.Sprintf("%.1f°", kf.Rotation*180/math.Pi),
				point(kf.Scale),
			})
		}
	}
	return rows
}

// motionRows lists motion paths with their length and end points.
func motionRows(d document.Document) [][]string {
	rows := [][]string{{"Object", "Points", "Length", "Start", "End"}}
	for _, p := range d.Motion {
		rows = append(rows, []string{
			fmt.Sprint(p.ObjectID),
			fmt.Sprint(len(p.Points)),
			fmt.Sprintf("%.1f", p.Length()),
			point(p.PointAt(0)),
			point(p.PointAt(1)),
		})
	}
	return rows
}

// toolRows lists the built-in tools in toolbar order with their hotkeys.
func toolRows() [][]string {
	rows := [][]string{{"Key", "Tool", "Mode"}}
	for i, f := range tools.Defaults(nil, nil) {
		t := f()
		key := fmt.Sprint((i + 1) % 10)
		rows = append(rows, []string{key, label(string(t.ID())), label(string(t.Mode()))})
	}
	return rows
}

// sample returns the pose of object id at time t, interpolated from d's
// keyframes, and the matching point along its motion path. The path is
// walked over the keyframe duration, or read at its end when there is none.
func sample(d document.Document, id scene.NodeID, t float64, eased bool) (pose timeline.Keyframe, posed bool, along core.Point, onPath bool) {
	s := timeline.NewStore()
	s.Load(d.Timeline)
	if eased {
		pose, posed = s.SampleEased(id, t)
	} else {
		pose, posed = s.Sample(id, t)
	}

	for _, p := range d.Motion {
		if p.ObjectID != id {
			continue
		}
		frac := 1.0
		if dur := s.Duration(id); dur > 0 {
			frac = t / dur
		}
		along, onPath = p.PointAt(frac), true
	}
	return pose, posed, along, onPath
}
