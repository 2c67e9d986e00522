package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"#FF0000", "#ff0000"},
		{"00ff00", "#00ff00"},
		{"#abc", "#aabbcc"},
		{"#11223380", "#11223380"},
		{"#112233ff", "#112233"},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "#12", "#zzzzzz", "#112233zz"} {
		_, err := Normalize(bad)
		assert.ErrorIs(t, err, ErrBadColor, bad)
	}
}

func TestManagerFallbackAndOverride(t *testing.T) {
	m := NewManager(Paint{})
	assert.Equal(t, DefaultStroke, m.Paint("pen").Stroke)

	require.NoError(t, m.SetStroke("pen", "#FF0000"))
	assert.Equal(t, "#ff0000", m.Paint("pen").Stroke)
	assert.Equal(t, DefaultStroke, m.Paint("brush").Stroke, "other tools keep the base paint")

	assert.Error(t, m.SetStroke("pen", "nope"))
	assert.Equal(t, "#ff0000", m.Paint("pen").Stroke, "invalid colors leave the paint unchanged")

	require.NoError(t, m.SetFill("shapes", "#00ff00"))
	assert.Equal(t, "#00ff00", m.Paint("shapes").Fill)
	assert.Equal(t, DefaultStroke, m.Paint("shapes").Stroke)
	require.NoError(t, m.SetFill("shapes", ""))
	assert.Empty(t, m.Paint("shapes").Fill)
}

func TestBlendEndpoints(t *testing.T) {
	assert.Equal(t, "#000000", Blend("#000000", "#ffffff", 0))
	assert.Equal(t, "#ffffff", Blend("#000000", "#ffffff", 1))
	mid := Blend("#000000", "#ffffff", 0.5)
	r, g, b := RGB255(mid)
	assert.Greater(t, r, uint8(0))
	assert.Less(t, r, uint8(255))
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestWithAlpha(t *testing.T) {
	assert.Equal(t, "#ff000080", WithAlpha("#ff0000", 0.5))
	assert.Equal(t, "#ff0000", WithAlpha("#ff000080", 1))
	assert.Equal(t, "oops", WithAlpha("oops", 0.5))
}
