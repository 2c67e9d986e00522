package tools

import (
	"time"

	"coursecanvas/colors"
	"coursecanvas/config"
	"coursecanvas/fonts"
	"coursecanvas/motion"
	"coursecanvas/scene"
	"coursecanvas/selection"
	"coursecanvas/textedit"
	"coursecanvas/timeline"
)

// Services are the collaborators the host constructs and injects. Fonts
// may be nil, in which case text is measured with the built-in fallback
// face.
type Services struct {
	Scene     scene.Adapter
	Selection *selection.Manager
	Transform *selection.TransformHelper
	Timeline  *timeline.Store
	Motion    *motion.Store
	Colors    *colors.Manager
	Fonts     *fonts.Library
	Config    config.Config
	Now       func() time.Time
}

// withDefaults fills in the services a host may leave out.
func (s Services) withDefaults() Services {
	if s.Scene == nil {
		s.Scene = scene.NewMemory()
	}
	if s.Transform == nil {
		s.Transform = selection.NewTransformHelper(s.Scene)
	}
	if s.Selection == nil {
		s.Selection = selection.NewManager(s.Transform)
	}
	if s.Timeline == nil {
		s.Timeline = timeline.NewStore()
	}
	if s.Motion == nil {
		s.Motion = motion.NewStore()
	}
	if s.Colors == nil {
		s.Colors = colors.NewManager(colors.Paint{})
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	return s
}

// Context is the per-activation bundle handed to a tool. It stops being
// valid when the tool is deactivated.
type Context struct {
	Services

	tool     ID
	settings map[string]any
	valid    bool
}

func newContext(svc Services, tool ID, settings map[string]any) *Context {
	return &Context{Services: svc, tool: tool, settings: settings, valid: true}
}

// Valid reports whether the activation this context belongs to is current.
func (c *Context) Valid() bool { return c != nil && c.valid }

func (c *Context) invalidate() { c.valid = false }

// Tool returns the id of the tool the context was built for.
func (c *Context) Tool() ID { return c.tool }

// Setting returns the last value routed to this tool for key.
func (c *Context) Setting(key string) (any, bool) {
	if !c.Valid() {
		return nil, false
	}
	v, ok := c.settings[key]
	return v, ok
}

// SetSetting records a value for key without forwarding it to the tool.
func (c *Context) SetSetting(key string, value any) {
	if c.Valid() {
		c.settings[key] = value
	}
}

// Paint returns the colors configured for the context's tool.
func (c *Context) Paint() colors.Paint {
	return c.Colors.Paint(string(c.tool))
}

// Measurer returns text metrics for size, using the nearest loaded font
// variant.
func (c *Context) Measurer(size float64) textedit.Measurer {
	if c.Fonts == nil {
		return fonts.Fallback.Measurer()
	}
	v, _ := c.Fonts.Face(c.Config.Fonts.Family, size)
	return v.Measurer()
}

// restore replays the stored values of keys into a tool's setting hook.
func restore(ctx *Context, update func(string, any), keys ...string) {
	for _, k := range keys {
		if v, ok := ctx.Setting(k); ok {
			update(k, v)
		}
	}
}
