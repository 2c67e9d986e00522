package document

import (
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecanvas/config"
	"coursecanvas/core"
	"coursecanvas/scene"
	"coursecanvas/timeline"
)

func populated(t *testing.T) (*Workspace, scene.NodeID) {
	t.Helper()
	w := NewWorkspace("algebra-1", config.DefaultLayout())

	rect := scene.NewNode(scene.KindRect, core.Pt(10, 20))
	rect.Size = core.Size{W: 30, H: 40}
	id := w.Scene.Add(rect)

	text := scene.NewNode(scene.KindText, core.Pt(100, 100))
	text.Text = "x² + 1"
	w.Scene.Add(text)

	w.Scene.Add(scene.NewNode(scene.KindHandle, core.Pt(0, 0)))
	w.Scene.SetBackground("#fafafa")

	w.Motion.Commit(id, []core.Point{core.Pt(0, 0), core.Pt(50, 25)})
	w.Timeline.Add(id, timeline.Keyframe{Time: 1, Position: core.Pt(10, 20), Scale: core.Pt(1, 1)})
	return w, id
}

func TestCaptureSkipsChrome(t *testing.T) {
	w, id := populated(t)
	d := w.Capture()

	assert.Equal(t, Version, d.Version)
	assert.Equal(t, "algebra-1", d.Course)
	assert.Equal(t, "#fafafa", d.Background)
	require.Len(t, d.Nodes, 2)
	for _, n := range d.Nodes {
		assert.False(t, n.Kind.IsChrome(), "captured %s", n.Kind)
	}
	require.Len(t, d.Motion, 1)
	assert.Equal(t, id, d.Motion[0].ObjectID)
	require.Len(t, d.Timeline, 1)
}

func TestCaptureDropsOrphanedAnimation(t *testing.T) {
	w, id := populated(t)
	w.Scene.Remove(id)
	d := w.Capture()
	assert.Empty(t, d.Motion)
	assert.Empty(t, d.Timeline)
}

func TestSaveOpenRoundTrip(t *testing.T) {
	w, id := populated(t)
	path := filepath.Join(t.TempDir(), "course", "canvas.yaml")
	require.NoError(t, Save(path, w.Capture()))
	_, err := os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file is renamed away")

	d, err := Open(path)
	require.NoError(t, err)

	other := NewWorkspace("", config.DefaultLayout())
	other.Apply(d)
	n, ok := other.Scene.Node(id)
	require.True(t, ok, "node ids survive a round trip")
	assert.Equal(t, core.Pt(10, 20), n.Position)
	assert.Equal(t, core.Size{W: 30, H: 40}, n.Size)
	assert.Equal(t, "#fafafa", other.Scene.Background())
	assert.Equal(t, "algebra-1", other.Course)

	p, ok := other.Motion.Get(id)
	require.True(t, ok)
	assert.Equal(t, core.Pt(50, 25), p.Points[1])
	assert.Len(t, other.Timeline.Keyframes(id), 1)

	next := other.Scene.Add(scene.NewNode(scene.KindRect, core.Point{}))
	assert.Greater(t, int(next), int(id), "new ids do not collide with loaded ones")
}

func TestUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		check   func(*testing.T, Document)
	}{
		{
			name: "missing version and layout get defaults",
			yaml: "nodes: []\n",
			check: func(t *testing.T, d Document) {
				assert.Equal(t, Version, d.Version)
				assert.Equal(t, config.DefaultLayout(), d.Layout)
			},
		},
		{
			name:    "newer version",
			yaml:    "version: 99\n",
			wantErr: ErrVersion,
		},
		{
			name:    "bad layout",
			yaml:    "layout:\n  page: napkin\n  orientation: portrait\n  dpi: 96\n",
			wantErr: config.ErrInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Unmarshal([]byte(tt.yaml))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			tt.check(t, d)
		})
	}
}

func TestUnmarshalGarbage(t *testing.T) {
	_, err := Unmarshal([]byte("nodes: {"))
	assert.Error(t, err)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestHistoryUndoRedo(t *testing.T) {
	w, id := populated(t)
	h := NewHistory(10)
	require.True(t, h.Push(w.Capture()))
	assert.False(t, h.Push(w.Capture()), "unchanged state is not recorded")

	w.Scene.Update(id, func(n *scene.Node) { n.Position = core.Pt(99, 99) })
	require.True(t, h.Push(w.Capture()))
	assert.True(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	d, ok := h.Undo()
	require.True(t, ok)
	n, _ := d.Node(id)
	assert.Equal(t, core.Pt(10, 20), n.Position)

	d, ok = h.Redo()
	require.True(t, ok)
	n, _ = d.Node(id)
	assert.Equal(t, core.Pt(99, 99), n.Position)

	_, ok = h.Redo()
	assert.False(t, ok)
}

func TestHistoryPushAfterUndoDropsRedo(t *testing.T) {
	h := NewHistory(10)
	for i := range 3 {
		h.Push(Document{Course: string(rune('a' + i))})
	}
	h.Undo()
	h.Push(Document{Course: "z"})
	cur, total := h.Stats()
	assert.Equal(t, 3, cur)
	assert.Equal(t, 3, total)
	assert.False(t, h.CanRedo())
}

func TestHistoryCapacity(t *testing.T) {
	h := NewHistory(3)
	for i := range 5 {
		h.Push(Document{Course: string(rune('a' + i))})
	}
	_, total := h.Stats()
	assert.Equal(t, 3, total)

	var seen []string
	for h.CanUndo() {
		d, _ := h.Undo()
		seen = append(seen, d.Course)
	}
	assert.Equal(t, []string{"d", "c"}, seen)
}

func TestHistoryReturnsCopies(t *testing.T) {
	h := NewHistory(5)
	h.Push(Document{Nodes: []scene.Node{{ID: 1, Points: []core.Point{{X: 1}}}}})
	h.Push(Document{})
	d, _ := h.Undo()
	d.Nodes[0].Points[0].X = 42
	h.Redo()
	d, _ = h.Undo()
	assert.Equal(t, 1.0, d.Nodes[0].Points[0].X)
}

func TestAutosaveCoalesces(t *testing.T) {
	var calls atomic.Int32
	a := NewAutosaver(30*time.Millisecond, func() error {
		calls.Add(1)
		return nil
	})
	defer a.Stop()

	for range 10 {
		a.Touch()
	}
	assert.True(t, a.Dirty())
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.EqualValues(t, 1, calls.Load(), "a burst of changes saves once")
	assert.False(t, a.Dirty())
	assert.Equal(t, 1, a.Saves())
}

func TestAutosaveFlush(t *testing.T) {
	var calls int
	a := NewAutosaver(time.Hour, func() error {
		calls++
		return nil
	})
	require.NoError(t, a.Flush())
	assert.Zero(t, calls, "nothing to save")

	a.Touch()
	require.NoError(t, a.Flush())
	assert.Equal(t, 1, calls)

	a.Stop()
	a.Touch()
	assert.False(t, a.Dirty())
	assert.ErrorIs(t, a.Flush(), ErrStopped)
}

func TestAutosaveFailureStaysDirty(t *testing.T) {
	boom := errors.New("disk full")
	fail := true
	a := NewAutosaver(time.Hour, func() error {
		if fail {
			return boom
		}
		return nil
	})
	defer a.Stop()

	a.Touch()
	assert.ErrorIs(t, a.Flush(), boom)
	assert.True(t, a.Dirty())
	assert.ErrorIs(t, a.Err(), boom)

	fail = false
	require.NoError(t, a.Flush())
	assert.False(t, a.Dirty())
	assert.NoError(t, a.Err())
}
