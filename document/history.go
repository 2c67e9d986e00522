package document

import "reflect"

// History keeps document snapshots for undo and redo. Pushing after an
// undo drops the redo branch; past capacity the oldest snapshot goes.
type History struct {
	states  []Document
	current int
	max     int
}

// NewHistory creates a history holding at most max snapshots. A
// non-positive max gets 50.
func NewHistory(max int) *History {
	if max <= 0 {
		max = 50
	}
	return &History{
		states:  make([]Document, 0, max),
		current: -1,
		max:     max,
	}
}

// Push records d as the newest state. A snapshot equal to the current one
// is ignored and Push returns false.
func (h *History) Push(d Document) bool {
	if h.current >= 0 && reflect.DeepEqual(h.states[h.current], d) {
		return false
	}
	if h.current < len(h.states)-1 {
		h.states = h.states[:h.current+1]
	}
	h.states = append(h.states, d.Clone())
	if len(h.states) > h.max {
		h.states = h.states[1:]
	} else {
		h.current++
	}
	return true
}

func (h *History) CanUndo() bool { return h.current > 0 }

func (h *History) CanRedo() bool { return h.current < len(h.states)-1 }

// Undo steps back and returns a copy of that state.
func (h *History) Undo() (Document, bool) {
	if !h.CanUndo() {
		return Document{}, false
	}
	h.current--
	return h.states[h.current].Clone(), true
}

// Redo steps forward and returns a copy of that state.
func (h *History) Redo() (Document, bool) {
	if !h.CanRedo() {
		return Document{}, false
	}
	h.current++
	return h.states[h.current].Clone(), true
}

// Clear drops every state.
func (h *History) Clear() {
	h.states = h.states[:0]
	h.current = -1
}

// Stats returns the 1-based current position and the number of states.
func (h *History) Stats() (current, total int) {
	return h.current + 1, len(h.states)
}
