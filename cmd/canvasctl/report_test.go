package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecanvas/config"
	"coursecanvas/core"
	"coursecanvas/document"
	"coursecanvas/motion"
	"coursecanvas/scene"
	"coursecanvas/timeline"
)

func sampleDoc() document.Document {
	rect := scene.NewNode(scene.KindRect, core.Pt(10, 20))
	rect.ID = 1
	rect.Size = core.Size{W: 30, H: 40}
	text := scene.NewNode(scene.KindText, core.Pt(0, 0))
	text.ID = 2
	text.Parent = 1
	text.Text = "Pythagoras\ntheorem and a long tail"

	return document.Document{
		Version:    document.Version,
		Course:     "geometry",
		Layout:     config.DefaultLayout(),
		Background: "#ffffff",
		Nodes:      []scene.Node{rect, text},
		Motion:     []motion.Path{{ObjectID: 1, Points: []core.Point{core.Pt(0, 0), core.Pt(100, 0)}}},
		Timeline: []timeline.Track{{ObjectID: 1, Keyframes: []timeline.Keyframe{
			{Time: 0, Position: core.Pt(0, 0), Scale: core.Pt(1, 1)},
			{Time: 2, Position: core.Pt(10, 20), Scale: core.Pt(1, 1)},
		}}},
	}
}

func TestLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"selection", "Selection"},
		{"captureKeyframe", "Capture Keyframe"},
		{"font_size", "Font Size"},
		{"landscape", "Landscape"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, label(tt.in))
		})
	}
}

func TestSummaryRows(t *testing.T) {
	rows := summaryRows(sampleDoc())
	got := make(map[string]string)
	for _, r := range rows[1:] {
		got[r[0]] = r[1]
	}
	assert.Equal(t, "geometry", got["Course"])
	assert.Equal(t, "A4 Landscape, 1123×794 px at 96 dpi", got["Page"])
	assert.Equal(t, "2 (Rect 1, Text 1)", got["Nodes"])
	assert.Equal(t, "1, 2 keyframes", got["Animated objects"])
}

func TestNodeRows(t *testing.T) {
	rows := nodeRows(sampleDoc())
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "Rect", "-", "10.0, 20.0", "30×40", ""}, rows[1])
	assert.Equal(t, "1", rows[2][2])
	assert.Equal(t, "Pythagoras⏎theorem and …", rows[2][5])
}

func TestKeyframeAndMotionRows(t *testing.T) {
	d := sampleDoc()
	kf := keyframeRows(d)
	require.Len(t, kf, 3)
	assert.Equal(t, []string{"1", "2.00s", "10.0, 20.0", "0.0°", "1.0, 1.0"}, kf[2])

	m := motionRows(d)
	require.Len(t, m, 2)
	assert.Equal(t, []string{"1", "2", "100.0", "0.0, 0.0", "100.0, 0.0"}, m[1])
}

func TestToolRows(t *testing.T) {
	rows := toolRows()
	require.Len(t, rows, 11)
	assert.Equal(t, []string{"1", "Selection", "Build"}, rows[1])
	assert.Equal(t, []string{"0", "Modify", "Animate"}, rows[10])
}

func TestSample(t *testing.T) {
	d := sampleDoc()

	pose, posed, along, onPath := sample(d, 1, 1, false)
	require.True(t, posed)
	require.True(t, onPath)
	assert.Equal(t, core.Pt(5, 10), pose.Position)
	assert.Equal(t, core.Pt(50, 0), along)

	linear, _, _, _ := sample(d, 1, 0.5, false)
	eased, _, _, _ := sample(d, 1, 0.5, true)
	assert.Less(t, eased.Position.X, linear.Position.X, "ease-in starts slower")

	_, posed, _, onPath = sample(d, 2, 1, false)
	assert.False(t, posed)
	assert.False(t, onPath)
}

func TestLayoutRows(t *testing.T) {
	rows := layoutRows("geometry", config.DefaultLayout())
	require.Len(t, rows, 2)
	assert.Equal(t, "1123×794", rows[1][3])
	assert.Equal(t, "Landscape", rows[1][2])
}

func TestRunUnknownCommand(t *testing.T) {
	assert.Error(t, run("frobnicate", nil))
	assert.Error(t, run("info", nil), "a document path is required")
}
