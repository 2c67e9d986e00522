// Package tools implements the canvas tools and the manager that routes
// pointer, keyboard and setting events to whichever tool is active.
//
// Every tool is constructed once at registration. Each activation receives a
// fresh Context carrying the injected services; the context is invalid once
// the tool is deactivated. At most one tool is active at a time.
package tools

import (
	"time"

	"coursecanvas/core"
	"coursecanvas/textedit"
)

// ID identifies a tool variant.
type ID string

const (
	Selection ID = "selection"
	Pen       ID = "pen"
	Brush     ID = "brush"
	Text      ID = "text"
	Shapes    ID = "shapes"
	Tables    ID = "tables"
	Eraser    ID = "eraser"
	Scene     ID = "scene"
	Path      ID = "path"
	Modify    ID = "modify"
)

// IDs lists every tool variant in toolbar order.
var IDs = []ID{Selection, Pen, Brush, Text, Shapes, Tables, Eraser, Scene, Path, Modify}

// Mode groups tools into authoring and animation.
type Mode string

const (
	ModeBuild   Mode = "build"
	ModeAnimate Mode = "animate"
)

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerCancel
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	}
	return "unknown"
}

// PointerEvent is one pointer sample. Point is in global canvas space;
// Screen is the same sample in host space, before the view origin is
// applied.
type PointerEvent struct {
	Kind   PointerKind
	Point  core.Point
	Screen core.Point
	Shift  bool
	Mod    bool
	Time   time.Time
}

// Tool is the capability every tool variant implements.
type Tool interface {
	ID() ID
	Mode() Mode
	Activate(ctx *Context)
	Deactivate()
	PointerDown(ev PointerEvent)
	PointerMove(ev PointerEvent)
	PointerUp(ev PointerEvent)
	PointerCancel(ev PointerEvent)
	UpdateSetting(key string, value any)
}

// TextInput is one keyboard event routed to a text-capable tool.
type TextInput = textedit.Input

// TextReceiver is implemented by tools that accept keyboard input.
type TextReceiver interface {
	HandleText(in TextInput) bool
}

// Factory builds a tool.
type Factory func() Tool

// base carries the identity and context every tool needs and no-op
// defaults for the optional hooks.
type base struct {
	id   ID
	mode Mode
	ctx  *Context
}

func (b *base) ID() ID     { return b.id }
func (b *base) Mode() Mode { return b.mode }

func (b *base) Activate(ctx *Context) { b.ctx = ctx }
func (b *base) Deactivate()           { b.ctx = nil }

func (b *base) PointerCancel(PointerEvent)  {}
func (b *base) UpdateSetting(string, any) {}

// active reports whether the tool holds a live context.
func (b *base) active() bool { return b.ctx != nil && b.ctx.Valid() }
