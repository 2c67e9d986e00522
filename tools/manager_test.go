package tools

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecanvas/config"
	"coursecanvas/core"
	"coursecanvas/scene"
)

type harness struct {
	m     *Manager
	mem   *scene.Memory
	clock time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{mem: scene.NewMemory(), clock: time.Unix(1000, 0)}
	h.m = NewManager(Services{
		Scene:  h.mem,
		Config: config.Default(),
		Now:    func() time.Time { return h.clock },
	})
	require.NoError(t, h.m.RegisterAll(Defaults(nil, nil)))
	return h
}

func (h *harness) use(t *testing.T, id ID) {
	t.Helper()
	require.NoError(t, h.m.SetTool(id))
}

// tick moves the clock past the double-click window.
func (h *harness) tick() { h.clock = h.clock.Add(time.Second) }

func (h *harness) down(x, y float64) {
	h.tick()
	h.m.RoutePointer(PointerEvent{Kind: PointerDown, Point: core.Pt(x, y), Screen: core.Pt(x, y)})
}

func (h *harness) move(x, y float64) {
	h.m.RoutePointer(PointerEvent{Kind: PointerMove, Point: core.Pt(x, y), Screen: core.Pt(x, y)})
}

func (h *harness) up(x, y float64) {
	h.m.RoutePointer(PointerEvent{Kind: PointerUp, Point: core.Pt(x, y), Screen: core.Pt(x, y)})
}

func (h *harness) drag(x0, y0, x1, y1 float64) {
	h.down(x0, y0)
	h.move(x1, y1)
	h.up(x1, y1)
}

func (h *harness) click(x, y float64) {
	h.down(x, y)
	h.up(x, y)
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.m.RouteText(TextInput{Rune: r})
	}
}

func (h *harness) nodes(k scene.Kind) []scene.Node {
	var out []scene.Node
	for _, n := range h.mem.Nodes() {
		if n.Kind == k {
			out = append(out, n)
		}
	}
	return out
}

func (h *harness) addRect(x, y, w, hgt float64) scene.NodeID {
	n := scene.NewNode(scene.KindRect, core.Pt(x, y))
	n.Size = core.Size{W: w, H: hgt}
	return h.mem.Add(n)
}

func TestRegisterAllTools(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, IDs, h.m.Registered())

	for _, id := range IDs {
		tool, ok := h.m.Tool(id)
		require.True(t, ok)
		want := ModeBuild
		if id == Path || id == Modify {
			want = ModeAnimate
		}
		assert.Equal(t, want, tool.Mode(), "mode of %s", id)
	}
}

func TestSetToolUnknown(t *testing.T) {
	h := newHarness(t)
	h.use(t, Selection)

	err := h.m.SetTool("lasso")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTool))
	assert.Equal(t, Selection, h.m.ActiveID(), "unknown id leaves the current tool active")
}

func TestRegisterActiveToolFails(t *testing.T) {
	h := newHarness(t)
	h.use(t, Pen)
	err := h.m.Register(func() Tool { return NewPenTool() })
	assert.True(t, errors.Is(err, ErrToolActive))
	assert.NoError(t, h.m.Register(func() Tool { return NewBrushTool() }))
}

func TestEventsWithoutActiveToolAreDropped(t *testing.T) {
	h := newHarness(t)
	assert.NotPanics(t, func() {
		h.drag(0, 0, 50, 50)
		h.m.RouteSetting(SettingColor, "#ff0000")
		assert.False(t, h.m.RouteText(TextInput{Rune: 'x'}))
	})
	assert.Zero(t, h.mem.Len())
}

func TestOneToolActiveAtATime(t *testing.T) {
	h := newHarness(t)
	var log []string
	rec := func(id ID) Factory {
		return func() Tool { return &recordingTool{base: base{id: id, mode: ModeBuild}, log: &log} }
	}
	require.NoError(t, h.m.Register(rec("a")))
	require.NoError(t, h.m.Register(rec("b")))

	h.use(t, "a")
	h.use(t, "a")
	h.use(t, "b")
	h.m.Close()
	assert.Equal(t, []string{"a+", "a-", "b+", "b-"}, log)
	_, ok := h.m.Active()
	assert.False(t, ok)
}

type recordingTool struct {
	base
	log *[]string
}

func (r *recordingTool) Activate(ctx *Context) {
	r.base.Activate(ctx)
	*r.log = append(*r.log, string(r.id)+"+")
}

func (r *recordingTool) Deactivate() {
	*r.log = append(*r.log, string(r.id)+"-")
	r.base.Deactivate()
}

func (r *recordingTool) PointerDown(PointerEvent) {}
func (r *recordingTool) PointerMove(PointerEvent) {}
func (r *recordingTool) PointerUp(PointerEvent)   {}

type panicTool struct{ base }

func (p *panicTool) PointerDown(PointerEvent) { panic("boom") }
func (p *panicTool) PointerMove(PointerEvent) {}
func (p *panicTool) PointerUp(PointerEvent)   {}
func (p *panicTool) UpdateSetting(string, any) {
	var m map[string]int
	m["x"] = 1
}

func TestPanickingToolDoesNotCrashDispatch(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.m.Register(func() Tool { return &panicTool{base{id: "boom", mode: ModeBuild}} }))
	h.use(t, "boom")

	assert.NotPanics(t, func() {
		h.down(1, 1)
		h.m.RouteSetting("anything", 1)
	})
	assert.Equal(t, ID("boom"), h.m.ActiveID())

	h.use(t, Shapes)
	h.drag(0, 0, 40, 40)
	assert.Len(t, h.nodes(scene.KindRect), 1, "dispatch keeps working afterwards")
}

func TestContextInvalidAfterDeactivate(t *testing.T) {
	h := newHarness(t)
	h.use(t, Pen)
	ctx := h.m.ctx
	h.m.RouteSetting(SettingWidth, 5.0)
	v, ok := ctx.Setting(SettingWidth)
	require.True(t, ok)
	assert.Equal(t, 5.0, v)

	h.use(t, Brush)
	assert.False(t, ctx.Valid())
	_, ok = ctx.Setting(SettingWidth)
	assert.False(t, ok)
	assert.NotSame(t, ctx, h.m.ctx, "every activation gets a fresh context")
}

func TestSettingForRestoresOnActivation(t *testing.T) {
	h := newHarness(t)
	h.use(t, Selection)
	h.m.SettingFor(Path, SettingAdherence, 0.2)

	tool, _ := h.m.Tool(Path)
	h.use(t, Path)
	assert.Equal(t, 0.2, tool.(*PathTool).Adherence())
}

func TestUnknownSettingLeavesToolsAlone(t *testing.T) {
	h := newHarness(t)
	for _, id := range IDs {
		h.use(t, id)
		before := h.mem.Len()
		for _, v := range []any{nil, "x", 42, -1.5, true} {
			h.m.RouteSetting("noSuchSetting", v)
		}
		assert.Equal(t, id, h.m.ActiveID(), "tool %s", id)
		assert.Equal(t, before, h.mem.Len(), "tool %s", id)
	}

	h.use(t, Shapes)
	h.m.RouteSetting(SettingShape, "ellipse")
	h.m.RouteSetting("noSuchSetting", "rect")
	h.m.RouteSetting(SettingShape+"s", "rect")
	h.drag(0, 0, 50, 40)
	require.Len(t, h.nodes(scene.KindEllipse), 1, "ellipse setting survives unknown keys")
	assert.Equal(t, core.Size{W: 50, H: 40}, h.nodes(scene.KindEllipse)[0].Size)
	assert.Empty(t, h.nodes(scene.KindRect))
}

func TestOnCommitFires(t *testing.T) {
	h := newHarness(t)
	n := 0
	h.m.OnCommit(func() { n++ })
	h.use(t, Pen)
	n = 0
	h.down(0, 0)
	h.move(10, 10)
	assert.Zero(t, n, "down and move do not commit")
	h.up(20, 20)
	assert.Equal(t, 1, n)
}
