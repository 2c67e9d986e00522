package textedit

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecanvas/core"
	"coursecanvas/fonts"
	"coursecanvas/scene"
)

var mono = fonts.Monospace{CharWidth: 10, Line: 20}

func newArea(text string, width float64) *TextArea {
	a := NewTextArea(1, core.Rect{W: width, H: 20}, mono, 0)
	a.SetText(text)
	return a
}

func assertCovers(t *testing.T, a *TextArea) {
	t.Helper()
	lines := a.Lines()
	require.NotEmpty(t, lines)
	assert.Equal(t, 0, lines[0].Start)
	for i := 1; i < len(lines); i++ {
		assert.Equal(t, lines[i-1].End, lines[i].Start, "line %d must start where %d ends", i, i-1)
		assert.Greater(t, lines[i-1].End, lines[i-1].Start, "only the last line may be empty")
	}
	assert.Equal(t, a.Len(), lines[len(lines)-1].End)
}

func TestLayout(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width float64
		want  []Line
	}{
		{"empty", "", 100, []Line{{0, 0}}},
		{"fits", "hello", 100, []Line{{0, 5}}},
		{"hard break", "hello\nworld", 0, []Line{{0, 6}, {6, 11}}},
		{"trailing break", "abc\n", 0, []Line{{0, 4}, {4, 4}}},
		{"wrap at space", "hello world", 60, []Line{{0, 6}, {6, 11}}},
		{"space hangs past edge", "hello world", 50, []Line{{0, 6}, {6, 11}}},
		{"long word breaks", "abcdefghij", 40, []Line{{0, 4}, {4, 8}, {8, 10}}},
		{"three lines", "aaaa bbbb cccc", 40, []Line{{0, 5}, {5, 10}, {10, 14}}},
		{"wrap then hard break", "aaaa bbbb\ncc", 40, []Line{{0, 5}, {5, 10}, {10, 12}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArea(tt.text, tt.width)
			assert.Equal(t, tt.want, a.Lines())
			assertCovers(t, a)
		})
	}
}

func TestLineIndexCoversBufferAfterEdits(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []rune("ab cd\nxyz ")

	for run := 0; run < 50; run++ {
		a := newArea("", float64(30+rng.Intn(80)))
		for step := 0; step < 100; step++ {
			if rng.Intn(3) == 0 && a.Len() > 0 {
				at := rng.Intn(a.Len())
				a.DeleteText(at, 1+rng.Intn(5))
			} else {
				ins := make([]rune, 1+rng.Intn(6))
				for i := range ins {
					ins[i] = alphabet[rng.Intn(len(alphabet))]
				}
				a.InsertText(string(ins), rng.Intn(a.Len()+1))
			}
			assertCovers(t, a)
		}
	}
}

func TestInsertDeleteClamp(t *testing.T) {
	a := newArea("abc", 0)
	assert.Equal(t, 2, a.InsertText("xy", 99))
	assert.Equal(t, "abcxy", a.Text())
	assert.Equal(t, 1, a.InsertText("z", -4))
	assert.Equal(t, "zabcxy", a.Text())
	assert.Equal(t, 2, a.DeleteText(4, 10))
	assert.Equal(t, "zabc", a.Text())
	assert.Zero(t, a.DeleteText(4, 1))
	assert.Zero(t, a.InsertText("", 0))
}

func TestCarriageReturnsBecomeBreaks(t *testing.T) {
	a := newArea("a\r\nb\rc", 0)
	assert.Equal(t, "a\nb\nc", a.Text())
	assert.Equal(t, 3, a.LineCount())
}

func TestCharacterPosition(t *testing.T) {
	a := newArea("hello world", 60)
	assert.Equal(t, core.Pt(30, 0), a.CharacterPosition(3))
	assert.Equal(t, core.Pt(0, 20), a.CharacterPosition(6), "wrap boundary belongs to the next line")
	assert.Equal(t, core.Pt(50, 20), a.CharacterPosition(11))
	assert.Equal(t, core.Pt(50, 20), a.CharacterPosition(99))

	b := newArea("hello\nworld", 0)
	assert.Equal(t, core.Pt(50, 0), b.CharacterPosition(5))
	assert.Equal(t, core.Pt(0, 20), b.CharacterPosition(6))
}

func TestCursorPositionFromPointInvertsCharacterPosition(t *testing.T) {
	a := newArea("hello world\nsecond line", 60)
	for off := 0; off <= a.Len(); off++ {
		p := a.CharacterPosition(off)
		got := a.CursorPositionFromPoint(p.Add(core.Pt(1, 5)))
		assert.Equal(t, p, a.CharacterPosition(got), "offset %d", off)
	}

	assert.Equal(t, 9, a.CursorPositionFromPoint(core.Pt(34, 25)))
	assert.Equal(t, 0, a.CursorPositionFromPoint(core.Pt(-50, -50)))
	assert.Equal(t, a.Len(), a.CursorPositionFromPoint(core.Pt(999, 999)))
}

func TestClickPastWrappedLineStaysOnLine(t *testing.T) {
	a := newArea("hello worlds", 60)
	require.Equal(t, []Line{{0, 6}, {6, 12}}, a.Lines())

	off := a.CursorPositionFromPoint(core.Pt(999, 5))
	assert.Equal(t, 5, off)
	assert.Equal(t, 0, a.LineForOffset(off))
	assert.Equal(t, 12, a.CursorPositionFromPoint(core.Pt(999, 25)))

	b := newArea("abcdefgh", 50)
	require.Equal(t, []Line{{0, 5}, {5, 8}}, b.Lines())
	assert.Equal(t, 0, b.LineForOffset(b.CursorPositionFromPoint(core.Pt(999, 5))), "mid-word break")
}

func TestPaddingOffsetsLayout(t *testing.T) {
	a := NewTextArea(1, core.Rect{W: 80, H: 10}, mono, 10)
	a.SetText("hello world")
	assert.Equal(t, []Line{{0, 6}, {6, 11}}, a.Lines())
	assert.Equal(t, core.Pt(10, 30), a.CharacterPosition(6))
	assert.Equal(t, 60.0, a.Bounds().H, "height grows to two lines plus padding")
}

func TestSetWidthReflows(t *testing.T) {
	a := newArea("aaaa bbbb cccc", 200)
	assert.Equal(t, 1, a.LineCount())
	a.SetWidth(40)
	assert.Equal(t, 3, a.LineCount())
	assertCovers(t, a)
}

func TestPublish(t *testing.T) {
	s := scene.NewMemory()
	a := NewTextArea(1, core.Rect{X: 5, Y: 6, W: 100, H: 20}, mono, 0)
	a.SetText("hi")

	id := a.Publish(s, scene.Style{Fill: "#000000"}, 16)
	n, ok := s.Node(id)
	require.True(t, ok)
	assert.Equal(t, scene.KindText, n.Kind)
	assert.Equal(t, "hi", n.Text)
	assert.Equal(t, core.Pt(5, 6), n.Position)

	a.InsertText("!", 2)
	assert.Equal(t, id, a.Publish(s, scene.Style{}, 16), "republishing updates the same node")
	n, _ = s.Node(id)
	assert.Equal(t, "hi!", n.Text)
}
