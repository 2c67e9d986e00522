package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecanvas/core"
	"coursecanvas/scene"
)

func addRect(s *scene.Memory, x, y, w, h float64) scene.NodeID {
	n := scene.NewNode(scene.KindRect, core.Pt(x, y))
	n.Size = core.Size{W: w, H: h}
	return s.Add(n)
}

func countKind(s *scene.Memory, k scene.Kind) int {
	c := 0
	for _, n := range s.Nodes() {
		if n.Kind == k {
			c++
		}
	}
	return c
}

func TestSetReplacesAtomically(t *testing.T) {
	m := NewManager(nil)
	var seen [][]Target
	m.OnChange(func(ts []Target) { seen = append(seen, ts) })

	m.Set(Target{ID: 1}, Target{ID: 2}, Target{ID: 1})
	assert.Equal(t, 2, m.Len(), "duplicates collapse")
	m.Set(Target{ID: 3})

	require.Len(t, seen, 2)
	assert.Len(t, seen[0], 2)
	assert.Len(t, seen[1], 1, "listeners never observe a partial selection")
	assert.True(t, m.Contains(3))
	assert.False(t, m.Contains(1))
}

func TestTargetsReturnsCopy(t *testing.T) {
	m := NewManager(nil)
	m.Set(Target{ID: 1})
	ts := m.Targets()
	ts[0].ID = 99
	p, ok := m.Primary()
	require.True(t, ok)
	assert.Equal(t, scene.NodeID(1), p.ID)
}

func TestAttachSingleHandle(t *testing.T) {
	s := scene.NewMemory()
	a := addRect(s, 0, 0, 10, 10)
	b := addRect(s, 50, 50, 10, 10)
	h := NewTransformHelper(s)

	require.True(t, h.Attach(a))
	require.True(t, h.Attach(b))
	assert.Equal(t, 1, countKind(s, scene.KindHandle), "attaching a new node detaches the previous handle")

	got, ok := h.Attached()
	require.True(t, ok)
	assert.Equal(t, b, got)

	hid, _ := h.Handle()
	hn, _ := s.Node(hid)
	assert.Equal(t, core.Pt(46, 46), hn.Position)
	assert.Equal(t, core.Size{W: 18, H: 18}, hn.Size)
}

func TestAttachUnresolvedNodeFails(t *testing.T) {
	s := scene.NewMemory()
	a := addRect(s, 0, 0, 10, 10)
	h := NewTransformHelper(s)
	require.True(t, h.Attach(a))

	assert.False(t, h.Attach(999))
	assert.False(t, h.Attach(scene.Root))
	got, ok := h.Attached()
	assert.True(t, ok, "failed attach leaves the existing handle alone")
	assert.Equal(t, a, got)
}

func TestClearDetaches(t *testing.T) {
	s := scene.NewMemory()
	a := addRect(s, 0, 0, 10, 10)
	h := NewTransformHelper(s)
	m := NewManager(h)

	m.Set(Target{ID: a})
	h.Attach(a)
	m.Clear()

	assert.Zero(t, m.Len())
	_, ok := h.Attached()
	assert.False(t, ok)
	assert.Zero(t, countKind(s, scene.KindHandle))
}

func TestRefreshFollowsTarget(t *testing.T) {
	s := scene.NewMemory()
	a := addRect(s, 0, 0, 10, 10)
	h := NewTransformHelper(s)
	h.Attach(a)

	s.Update(a, func(n *scene.Node) { n.Position = core.Pt(100, 100) })
	h.Refresh()
	hid, _ := h.Handle()
	hn, _ := s.Node(hid)
	assert.Equal(t, core.Pt(96, 96), hn.Position)

	s.Remove(a)
	h.Refresh()
	_, ok := h.Attached()
	assert.False(t, ok)
	assert.Zero(t, countKind(s, scene.KindHandle))
}

func TestDropDetachesMatchingHandle(t *testing.T) {
	s := scene.NewMemory()
	a := addRect(s, 0, 0, 10, 10)
	b := addRect(s, 20, 0, 10, 10)
	h := NewTransformHelper(s)
	m := NewManager(h)
	m.Set(Target{ID: a}, Target{ID: b})
	h.Attach(b)

	assert.True(t, m.Drop(a))
	_, ok := h.Attached()
	assert.True(t, ok, "handle stays on b")

	assert.True(t, m.Drop(b))
	_, ok = h.Attached()
	assert.False(t, ok)
	assert.False(t, m.Drop(b))
}
