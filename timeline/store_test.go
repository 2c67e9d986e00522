package timeline

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecanvas/core"
	"coursecanvas/scene"
)

func kf(t, x float64) Keyframe {
	return Keyframe{Time: t, Position: core.Pt(x, 0), Scale: core.Pt(1, 1)}
}

func TestKeyframesOrderedForAnyInsertionOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for run := 0; run < 100; run++ {
		s := NewStore()
		n := 1 + rng.Intn(30)
		for i := 0; i < n; i++ {
			s.Add(1, kf(float64(rng.Intn(20)), float64(i)))
		}
		kfs := s.Keyframes(1)
		require.NotEmpty(t, kfs)
		for i := 1; i < len(kfs); i++ {
			assert.Less(t, kfs[i-1].Time, kfs[i].Time, "times strictly ascend once duplicates collapse")
		}
	}
}

func TestDuplicateTimeLastWriteWins(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Add(1, kf(2, 10)))
	assert.False(t, s.Add(1, kf(1, 5)))
	assert.True(t, s.Add(1, kf(2, 99)))

	kfs := s.Keyframes(1)
	require.Len(t, kfs, 2)
	assert.Equal(t, 99.0, kfs[1].Position.X)
}

func TestTracksAreIndependent(t *testing.T) {
	s := NewStore()
	s.Add(2, kf(1, 1))
	s.Add(1, kf(1, 2))
	s.Add(1, kf(3, 2))

	assert.Equal(t, []scene.NodeID{1, 2}, s.Objects())
	assert.Equal(t, 3.0, s.Duration(1))
	assert.Equal(t, 1.0, s.Duration(2))
	assert.Zero(t, s.Duration(9))

	s.Clear(1)
	assert.Equal(t, []scene.NodeID{2}, s.Objects())
}

func TestRemove(t *testing.T) {
	s := NewStore()
	s.Add(1, kf(1, 0))
	s.Add(1, kf(2, 0))
	assert.False(t, s.Remove(1, 1.5))
	assert.True(t, s.Remove(1, 1))
	assert.Len(t, s.Keyframes(1), 1)
	assert.True(t, s.Remove(1, 2))
	assert.Empty(t, s.Objects(), "empty tracks disappear")
}

func TestKeyframesReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Add(1, kf(1, 5))
	kfs := s.Keyframes(1)
	kfs[0].Position.X = 42
	assert.Equal(t, 5.0, s.Keyframes(1)[0].Position.X)
}

func TestSample(t *testing.T) {
	s := NewStore()
	_, ok := s.Sample(1, 0)
	assert.False(t, ok)

	s.Add(1, Keyframe{Time: 0, Position: core.Pt(0, 0), Rotation: 0, Scale: core.Pt(1, 1)})
	s.Add(1, Keyframe{Time: 2, Position: core.Pt(100, 50), Rotation: math.Pi, Scale: core.Pt(3, 1)})

	tests := []struct {
		time float64
		pos  core.Point
		rot  float64
		sx   float64
	}{
		{-1, core.Pt(0, 0), 0, 1},
		{0, core.Pt(0, 0), 0, 1},
		{1, core.Pt(50, 25), math.Pi / 2, 2},
		{2, core.Pt(100, 50), math.Pi, 3},
		{5, core.Pt(100, 50), math.Pi, 3},
	}
	for _, tt := range tests {
		got, ok := s.Sample(1, tt.time)
		require.True(t, ok)
		assert.Equal(t, tt.time, got.Time)
		assert.InDelta(t, tt.pos.X, got.Position.X, 1e-9)
		assert.InDelta(t, tt.pos.Y, got.Position.Y, 1e-9)
		assert.InDelta(t, tt.rot, got.Rotation, 1e-9)
		assert.InDelta(t, tt.sx, got.Scale.X, 1e-9)
	}
}

func TestSampleEased(t *testing.T) {
	s := NewStore()
	s.Add(1, kf(0, 0))
	s.Add(1, kf(1, 100))

	mid, _ := s.SampleEased(1, 0.5)
	assert.InDelta(t, 50, mid.Position.X, 1e-9, "ease-in-out is symmetric")
	early, _ := s.SampleEased(1, 0.25)
	assert.InDelta(t, 6.25, early.Position.X, 1e-9)
	linear, _ := s.Sample(1, 0.25)
	assert.Less(t, early.Position.X, linear.Position.X)
}

func TestLoadResolvesDuplicates(t *testing.T) {
	s := NewStore()
	s.Load([]Track{{ObjectID: 4, Keyframes: []Keyframe{kf(3, 1), kf(1, 1), kf(3, 7)}}})
	kfs := s.Keyframes(4)
	require.Len(t, kfs, 2)
	assert.Equal(t, 1.0, kfs[0].Time)
	assert.Equal(t, 7.0, kfs[1].Position.X)
	assert.Len(t, s.Tracks(), 1)
}
