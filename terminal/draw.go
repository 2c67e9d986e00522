package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"coursecanvas/canvas"
	"coursecanvas/colors"
	"coursecanvas/core"
	"coursecanvas/tools"
)

const pageColor = "#6b7280"

// viewport follows the scene's pan offset.
func (h *Host) viewport() canvas.Viewport {
	v := h.view
	v.Origin = h.ws.Scene.ViewOrigin()
	return v
}

// Draw renders the page outline, the scene and the status line, then shows
// the screen.
func (h *Host) Draw() {
	w, ht := h.screen.Size()
	h.screen.Clear()
	if w <= 0 || ht <= 1 {
		h.screen.Show()
		return
	}

	g, err := canvas.NewGrid(w, ht-1)
	if err != nil {
		h.log.Error("grid", "error", err)
		return
	}
	v := h.viewport()
	pw, ph := h.ws.Layout.PageSize()
	x, y, gw, gh := v.Span(core.Rect{W: float64(pw), H: float64(ph)})
	g.DrawBox(x, y, gw, gh, canvas.DashedBox, pageColor)
	v.Draw(g, h.ws.Scene)

	h.paint(g)
	h.drawStatus(w, ht-1)
	h.screen.Show()
}

func (h *Host) paint(g *canvas.Grid) {
	gw, gh := g.Size()
	bg := tcell.StyleDefault
	if hex := h.ws.Scene.Background(); hex != "" {
		bg = bg.Background(rgb(hex)).
			Foreground(rgb(colors.DefaultStroke))
	}
	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			c := g.Get(x, y)
			if c.Continuation() {
				continue
			}
			h.screen.SetContent(x, y, c.Rune, nil, cellStyle(bg, c))
		}
	}
}

func rgb(hex string) tcell.Color {
	r, g, b := colors.RGB255(hex)
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func cellStyle(base tcell.Style, c canvas.Cell) tcell.Style {
	st := base
	if c.Color != "" {
		st = st.Foreground(rgb(c.Color))
	}
	if c.Attr&canvas.AttrReverse != 0 {
		st = st.Reverse(true)
	}
	if c.Attr&canvas.AttrDim != 0 {
		st = st.Dim(true)
	}
	return st
}

// statusLine describes the active tool, history position and any message.
func (h *Host) statusLine() string {
	id := h.mgr.ActiveID()
	mode := ""
	if t, ok := h.mgr.Active(); ok {
		mode = string(t.Mode())
	}
	cur, total := h.history.Stats()
	s := fmt.Sprintf(" %s [%s]  history %d/%d", id, mode, cur, total)
	if id == tools.Modify {
		s += fmt.Sprintf("  t=%.1fs", h.animTime)
	}
	if h.autosave != nil && h.autosave.Dirty() {
		s += "  *"
	}
	if h.status != "" {
		s += "  " + h.status
	}
	return s
}

func (h *Host) drawStatus(w, y int) {
	st := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, r := range h.statusLine() {
		rw := runewidth.RuneWidth(r)
		if x+rw > w {
			break
		}
		h.screen.SetContent(x, y, r, nil, st)
		x += max(rw, 1)
	}
	for ; x < w; x++ {
		h.screen.SetContent(x, y, ' ', nil, st)
	}
}
