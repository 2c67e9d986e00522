package terminal

import (
	"github.com/gdamore/tcell/v2"

	"coursecanvas/export"
	"coursecanvas/textedit"
	"coursecanvas/tools"
)

// keyframeStep is how far , and . move the modify tool's time.
const keyframeStep = 0.5

// textInput translates a key into editor input. ok is false for keys the
// editor has no use for.
func textInput(ev *tcell.EventKey) (in textedit.Input, ok bool) {
	mods := ev.Modifiers()
	in.Shift = mods&tcell.ModShift != 0
	in.Mod = mods&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0

	switch ev.Key() {
	case tcell.KeyRune:
		in.Rune = ev.Rune()
		in.Mod = false
	case tcell.KeyLeft:
		in.Key = textedit.KeyLeft
	case tcell.KeyRight:
		in.Key = textedit.KeyRight
	case tcell.KeyUp:
		in.Key = textedit.KeyUp
	case tcell.KeyDown:
		in.Key = textedit.KeyDown
	case tcell.KeyHome:
		in.Key = textedit.KeyHome
	case tcell.KeyEnd:
		in.Key = textedit.KeyEnd
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		in.Key = textedit.KeyBackspace
	case tcell.KeyDelete:
		in.Key = textedit.KeyDelete
	case tcell.KeyEnter:
		in.Key = textedit.KeyEnter
	case tcell.KeyEscape:
		in.Key = textedit.KeyEscape
	case tcell.KeyCtrlA:
		in.Key = textedit.KeySelectAll
	case tcell.KeyCtrlW:
		in.Key = textedit.KeyDeleteWord
	case tcell.KeyCtrlU:
		in.Key = textedit.KeyDeleteToLineStart
	case tcell.KeyCtrlK:
		in.Key = textedit.KeyDeleteToLineEnd
	case tcell.KeyCtrlD:
		// Ctrl+Enter is indistinguishable from Enter in most terminals.
		in.Key, in.Mod = textedit.KeyEnter, true
	default:
		return in, false
	}
	return in, true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	if in, ok := textInput(ev); ok && h.mgr.RouteText(in) {
		return false
	}

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		return true
	case tcell.KeyCtrlS:
		if err := h.Save(); err != nil {
			h.status = err.Error()
		} else {
			h.status = "saved " + h.opts.Path
		}
	case tcell.KeyCtrlZ:
		if !h.Undo() {
			h.status = "nothing to undo"
		}
	case tcell.KeyCtrlY:
		if !h.Redo() {
			h.status = "nothing to redo"
		}
	case tcell.KeyCtrlE:
		h.exportAs(export.FormatPNG)
	case tcell.KeyCtrlT:
		h.exportAs(export.FormatText)
	case tcell.KeyEscape:
		h.cancelGesture()
	case tcell.KeyTab:
		h.SetTool(h.nextTool(1))
	case tcell.KeyBacktab:
		h.SetTool(h.nextTool(-1))
	case tcell.KeyRune:
		h.handleRune(ev.Rune())
	}
	return false
}

func (h *Host) exportAs(f export.Format) {
	out, err := h.Export(f)
	if err != nil {
		h.status = err.Error()
		return
	}
	h.status = "exported " + out
}

func (h *Host) nextTool(step int) tools.ID {
	cur := 0
	for i, id := range tools.IDs {
		if id == h.mgr.ActiveID() {
			cur = i
		}
	}
	n := len(tools.IDs)
	return tools.IDs[((cur+step)%n+n)%n]
}

// handleRune maps single-key shortcuts. Digits pick tools in toolbar
// order, 0 being the tenth.
func (h *Host) handleRune(r rune) {
	switch {
	case r >= '1' && r <= '9':
		if i := int(r - '1'); i < len(tools.IDs) {
			h.SetTool(tools.IDs[i])
		}
		return
	case r == '0' && len(tools.IDs) >= 10:
		h.SetTool(tools.IDs[9])
		return
	}

	switch r {
	case 'r':
		h.mgr.SettingFor(tools.Shapes, tools.SettingShape, "rect")
	case 'o':
		h.mgr.SettingFor(tools.Shapes, tools.SettingShape, "ellipse")
	case 'k':
		if h.mgr.ActiveID() == tools.Modify {
			h.mgr.RouteSetting(tools.SettingCaptureKeyframe, true)
		}
	case ',':
		h.stepTime(-keyframeStep)
	case '.':
		h.stepTime(keyframeStep)
	}
}

// stepTime moves the modify tool's keyframe time, never below zero.
func (h *Host) stepTime(d float64) {
	h.animTime = max(h.animTime+d, 0)
	h.mgr.SettingFor(tools.Modify, tools.SettingTime, h.animTime)
}
