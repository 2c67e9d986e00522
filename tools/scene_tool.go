package tools

import (
	"coursecanvas/colors"
	"coursecanvas/config"
	"coursecanvas/core"
	"coursecanvas/scene"
)

// SceneTool edits canvas-wide settings: background color and page layout.
// Dragging pans the view when the scene supports it.
type SceneTool struct {
	base
	layout   config.Layout
	onLayout func(config.Layout)
	panning  bool
	last     core.Point
}

// NewSceneTool creates the scene tool. onLayout, if set, receives every
// accepted layout change so the host can resize and persist the canvas.
func NewSceneTool(onLayout func(config.Layout)) *SceneTool {
	return &SceneTool{base: base{id: Scene, mode: ModeBuild}, onLayout: onLayout}
}

func (t *SceneTool) Activate(ctx *Context) {
	t.base.Activate(ctx)
	if t.layout.Page == "" {
		t.layout = ctx.Config.Layout
	}
}

func (t *SceneTool) Deactivate() {
	t.panning = false
	t.base.Deactivate()
}

// Layout returns the current page layout.
func (t *SceneTool) Layout() config.Layout { return t.layout }

func (t *SceneTool) viewport() (scene.Viewport, bool) {
	vp, ok := t.ctx.Scene.(scene.Viewport)
	return vp, ok
}

func (t *SceneTool) PointerDown(ev PointerEvent) {
	if _, ok := t.viewport(); ok {
		t.panning = true
		t.last = ev.Screen
	}
}

func (t *SceneTool) PointerMove(ev PointerEvent) {
	if !t.panning {
		return
	}
	vp, _ := t.viewport()
	d := ev.Screen.Sub(t.last)
	vp.SetViewOrigin(vp.ViewOrigin().Sub(d))
	t.last = ev.Screen
}

func (t *SceneTool) PointerUp(ev PointerEvent) {
	t.PointerMove(ev)
	t.panning = false
}

func (t *SceneTool) PointerCancel(PointerEvent) { t.panning = false }

func (t *SceneTool) UpdateSetting(key string, value any) {
	switch key {
	case SettingBackground:
		s, ok := asString(value)
		if !ok {
			return
		}
		norm, err := colors.Normalize(s)
		if err != nil {
			return
		}
		if vp, ok := t.viewport(); ok {
			vp.SetBackground(norm)
		}
	case SettingPage:
		if s, ok := asString(value); ok {
			next := t.layout
			next.Page = s
			t.setLayout(next)
		}
	case SettingOrientation:
		if s, ok := asString(value); ok {
			next := t.layout
			next.Orientation = config.Orientation(s)
			t.setLayout(next)
		}
	}
}

func (t *SceneTool) setLayout(l config.Layout) {
	if l.Validate() != nil {
		return
	}
	t.layout = l
	if t.onLayout != nil {
		t.onLayout(l)
	}
}
