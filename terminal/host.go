// Package terminal hosts the canvas tools in a terminal. It turns tcell
// mouse and key events into tool events, draws the scene as character cells
// and owns the document lifecycle: history, autosave and export.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"coursecanvas/canvas"
	"coursecanvas/colors"
	"coursecanvas/config"
	"coursecanvas/core"
	"coursecanvas/document"
	"coursecanvas/export"
	"coursecanvas/fonts"
	"coursecanvas/logging"
	"coursecanvas/textedit"
	"coursecanvas/tools"
)

// Options configure a Host.
type Options struct {
	Config config.Config
	Fonts  *fonts.Library
	// Path is the document file. Empty disables saving and autosave.
	Path string
	// LayoutDir, when set, receives the course layout whenever the scene
	// tool changes it.
	LayoutDir string
	Now       func() time.Time
}

// Host runs the editor on a tcell screen. All methods except Run's event
// wait must be called from the goroutine that owns the screen.
type Host struct {
	screen tcell.Screen
	opts   Options
	ws     *document.Workspace
	mgr    *tools.Manager
	view   canvas.Viewport

	history   *document.History
	autosave  *document.Autosaver
	restoring bool

	mu     sync.Mutex
	latest document.Document

	pressed  bool
	lastX    int
	lastY    int
	animTime float64
	status   string
	log      *slog.Logger
}

// NewHost wires the tool manager to ws and the screen. The screen must
// already be initialized; the caller finalizes it after Close.
func NewHost(screen tcell.Screen, ws *document.Workspace, opts Options) (*Host, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Config.Layout = ws.Layout

	h := &Host{
		screen:  screen,
		opts:    opts,
		ws:      ws,
		view:    canvas.DefaultViewport(),
		history: document.NewHistory(opts.Config.History.Capacity),
		log:     logging.For("terminal"),
	}

	h.mgr = tools.NewManager(tools.Services{
		Scene:    ws.Scene,
		Timeline: ws.Timeline,
		Motion:   ws.Motion,
		Colors:   colors.NewManager(colors.Paint{}),
		Fonts:    opts.Fonts,
		Config:   opts.Config,
		Now:      opts.Now,
	})
	newOverlay := func() *textedit.Overlay {
		return textedit.NewOverlay(textedit.WithClock(opts.Now), textedit.WithBlurGrace(opts.Config.Text.BlurGrace))
	}
	if err := h.mgr.RegisterAll(tools.Defaults(newOverlay, h.layoutChanged)); err != nil {
		return nil, fmt.Errorf("register tools: %w", err)
	}

	h.latest = ws.Capture()
	h.history.Push(h.latest)
	if opts.Path != "" {
		h.autosave = document.NewAutosaver(opts.Config.Autosave.Quiet, h.saveLatest)
	}
	h.mgr.OnCommit(h.committed)

	if err := h.mgr.SetTool(tools.Selection); err != nil {
		return nil, err
	}
	return h, nil
}

// Manager exposes the tool manager, mainly for tests and scripted input.
func (h *Host) Manager() *tools.Manager { return h.mgr }

// Workspace returns the live stores.
func (h *Host) Workspace() *document.Workspace { return h.ws }

// Status returns the message shown on the bottom line.
func (h *Host) Status() string { return h.status }

// committed records a history step and schedules an autosave when the
// document actually changed.
func (h *Host) committed() {
	if h.restoring {
		return
	}
	d := h.ws.Capture()
	if !h.history.Push(d) {
		return
	}
	h.mu.Lock()
	h.latest = d
	h.mu.Unlock()
	if h.autosave != nil {
		h.autosave.Touch()
	}
}

// saveLatest runs on the autosave timer, so it only reads the snapshot
// taken on the event loop.
func (h *Host) saveLatest() error {
	h.mu.Lock()
	d := h.latest
	h.mu.Unlock()
	return document.Save(h.opts.Path, d)
}

func (h *Host) layoutChanged(l config.Layout) {
	h.ws.Layout = l
	if h.opts.LayoutDir == "" {
		return
	}
	if err := config.SaveLayout(h.opts.LayoutDir, h.ws.Course, l); err != nil {
		h.log.Warn("save layout failed", "course", h.ws.Course, "error", err)
		h.status = "layout not saved: " + err.Error()
	}
}

// Run draws and dispatches events until the user quits or ctx ends.
func (h *Host) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		h.Draw()
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		if h.HandleEvent(ev) {
			return nil
		}
	}
}

// Close ends any gesture in progress and writes pending changes.
func (h *Host) Close() error {
	h.mgr.Close()
	if h.autosave == nil {
		return nil
	}
	err := h.autosave.Flush()
	h.autosave.Stop()
	return err
}

// HandleEvent applies one screen event. It returns true when the user
// asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventKey:
		return h.handleKey(ev)
	}
	return false
}

// pointer builds a tool event for cell x, y. Point is the cell centre in
// canvas space; Screen is the same cell before the view origin applies.
func (h *Host) pointer(kind tools.PointerKind, x, y int, mods tcell.ModMask) tools.PointerEvent {
	v := h.viewport()
	return tools.PointerEvent{
		Kind:   kind,
		Point:  v.ToCanvas(x, y),
		Screen: core.Pt(float64(x)*v.CellW, float64(y)*v.CellH),
		Shift:  mods&tcell.ModShift != 0,
		Mod:    mods&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0,
	}
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !h.pressed:
		h.pressed = true
		h.mgr.RoutePointer(h.pointer(tools.PointerDown, x, y, ev.Modifiers()))
	case down && (x != h.lastX || y != h.lastY):
		h.mgr.RoutePointer(h.pointer(tools.PointerMove, x, y, ev.Modifiers()))
	case !down && h.pressed:
		h.pressed = false
		h.mgr.RoutePointer(h.pointer(tools.PointerUp, x, y, ev.Modifiers()))
	}
	h.lastX, h.lastY = x, y
}

// SetTool switches tools and reports the result on the status line.
func (h *Host) SetTool(id tools.ID) {
	h.cancelGesture()
	if err := h.mgr.SetTool(id); err != nil {
		h.status = err.Error()
		return
	}
	h.status = ""
}

func (h *Host) cancelGesture() {
	if h.pressed {
		h.pressed = false
		h.mgr.RoutePointer(h.pointer(tools.PointerCancel, h.lastX, h.lastY, tcell.ModNone))
	}
}

// Undo restores the previous history state.
func (h *Host) Undo() bool { return h.restore(h.history.Undo) }

// Redo reapplies the next history state.
func (h *Host) Redo() bool { return h.restore(h.history.Redo) }

func (h *Host) restore(step func() (document.Document, bool)) bool {
	h.cancelGesture()
	id := h.mgr.ActiveID()

	h.restoring = true
	defer func() { h.restoring = false }()

	// Tools hold node references, so they let go before the scene reloads.
	h.mgr.Close()
	d, ok := step()
	if ok {
		h.ws.Apply(d)
		h.mu.Lock()
		h.latest = d
		h.mu.Unlock()
		if h.autosave != nil {
			h.autosave.Touch()
		}
	}
	if id != "" {
		_ = h.mgr.SetTool(id)
	}
	return ok
}

// Save writes the document now.
func (h *Host) Save() error {
	if h.opts.Path == "" {
		return fmt.Errorf("save: no document path")
	}
	h.committed()
	if h.autosave != nil {
		h.autosave.Touch()
		return h.autosave.Flush()
	}
	return h.saveLatest()
}

// Export writes the page next to the document in the given format and
// returns the file written.
func (h *Host) Export(format export.Format) (string, error) {
	e, err := export.NewExporter(format, export.Options{
		Fonts:       h.opts.Fonts,
		TextPadding: h.opts.Config.Text.Padding,
	})
	if err != nil {
		return "", err
	}
	base := h.opts.Path
	if base == "" {
		base = h.ws.Course
	}
	if base == "" {
		base = "canvas"
	}
	out := strings.TrimSuffix(base, filepath.Ext(base)) + e.FileExtension()

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := e.Export(f, h.ws.Capture()); err != nil {
		f.Close()
		return "", fmt.Errorf("export %s: %w", format, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	h.log.Info("exported", "format", format, "path", out)
	return out, nil
}
