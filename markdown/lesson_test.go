package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lesson = "# Triangles\n" +
	"\n" +
	"```canvas figures/right.yaml\n" +
	"old\n" +
	"```\n" +
	"\n" +
	"```go\n" +
	"fmt.Println(1)\n" +
	"```\n" +
	"\n" +
	"- item\n" +
	"  ```Canvas\n" +
	"  nested\n" +
	"  more\n" +
	"  ```\n" +
	"```canvas never-closed.yaml\n" +
	"x\n"

func TestBlocks(t *testing.T) {
	blocks := Parse(lesson).Blocks()
	require.Len(t, blocks, 2)

	assert.Equal(t, "figures/right.yaml", blocks[0].Source)
	assert.Equal(t, "old", blocks[0].Content)
	assert.Equal(t, 2, blocks[0].StartLine)
	assert.Equal(t, 4, blocks[0].EndLine)

	assert.Empty(t, blocks[1].Source)
	assert.Equal(t, "  ", blocks[1].Indent)
	assert.Equal(t, "nested\nmore", blocks[1].Content)
	assert.NotEqual(t, blocks[0].Hash, blocks[1].Hash)
}

func TestReplace(t *testing.T) {
	l := Parse(lesson)
	b := l.Blocks()[1]
	require.NoError(t, l.Replace(b, "a\n\nb\n"))

	got := l.Blocks()
	require.Len(t, got, 2)
	assert.Equal(t, "a\n\nb", got[1].Content)
	assert.Contains(t, l.String(), "  ```Canvas\n  a\n\n  b\n  ```\n", "indent kept, blank lines not padded")
	assert.Equal(t, "old", got[0].Content)
}

func TestReplaceDetectsEdits(t *testing.T) {
	tests := []struct {
		name string
		edit func(l *Lesson)
	}{
		{"body changed", func(l *Lesson) { l.lines[3] = "edited" }},
		{"fence moved", func(l *Lesson) { l.lines = append([]string{"intro"}, l.lines...) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Parse(lesson)
			b := l.Blocks()[0]
			tt.edit(l)
			assert.ErrorIs(t, l.Replace(b, "new"), ErrModified)
		})
	}
}

func TestReplaceRejectsBadBounds(t *testing.T) {
	l := Parse(lesson)
	assert.Error(t, l.Replace(Block{StartLine: 5, EndLine: 2}, "x"))
	assert.Error(t, l.Replace(Block{StartLine: 0, EndLine: 500}, "x"))
}

func TestDescribe(t *testing.T) {
	blocks := Parse(lesson).Blocks()
	assert.Equal(t, "1. figures/right.yaml (line 3, 1 lines)", Describe(blocks[0], 0))
	assert.Equal(t, "2. (no source) (line 12, 2 lines)", Describe(blocks[1], 1))
}
