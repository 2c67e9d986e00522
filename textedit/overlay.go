package textedit

import (
	"time"
)

// DefaultBlurGrace is how long after Open a focus loss is ignored.
const DefaultBlurGrace = 300 * time.Millisecond

// Outcome is how an overlay session ended.
type Outcome int

const (
	OutcomeOpen Outcome = iota
	OutcomeConfirmed
	OutcomeCancelled
	OutcomeBlurred
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfirmed:
		return "confirmed"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeBlurred:
		return "blurred"
	default:
		return "open"
	}
}

// Overlay is the text-entry surface layered over one TextArea. Edits apply
// to the area as they arrive; Cancel restores the text the area held when
// the session opened.
type Overlay struct {
	grace time.Duration
	now   func() time.Time

	editor   *Editor
	original string
	opened   time.Time
	attached bool
	focused  bool
	outcome  Outcome

	// OnClose runs once when the session ends, after the area holds its
	// final text.
	OnClose func(area *TextArea, outcome Outcome)
}

// OverlayOption configures an Overlay.
type OverlayOption func(*Overlay)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) OverlayOption {
	return func(o *Overlay) { o.now = now }
}

// WithBlurGrace sets the blur grace period.
func WithBlurGrace(d time.Duration) OverlayOption {
	return func(o *Overlay) { o.grace = d }
}

// NewOverlay creates a detached overlay.
func NewOverlay(opts ...OverlayOption) *Overlay {
	o := &Overlay{grace: DefaultBlurGrace, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Open attaches the overlay to the editor's area and focuses it. An overlay
// already open on another area is confirmed first.
func (o *Overlay) Open(e *Editor) {
	if o.attached {
		if o.editor == e {
			o.focused = true
			return
		}
		o.Confirm()
	}
	o.editor = e
	o.original = e.Area.Text()
	o.opened = o.now()
	o.attached = true
	o.focused = true
	o.outcome = OutcomeOpen
	e.Area.SetActive(true)
}

// Editor returns the attached editor, or nil.
func (o *Overlay) Editor() *Editor {
	if !o.attached {
		return nil
	}
	return o.editor
}

// Attached reports whether a session is open.
func (o *Overlay) Attached() bool { return o.attached }

// Focused reports whether the overlay holds keyboard focus.
func (o *Overlay) Focused() bool { return o.attached && o.focused }

// Outcome returns how the last session ended.
func (o *Overlay) Outcome() Outcome { return o.outcome }

// Focus gives the overlay keyboard focus again.
func (o *Overlay) Focus() {
	if o.attached {
		o.focused = true
	}
}

// Input feeds one key to the editor. Confirm and cancel gestures end the
// session. Returns the editor's action, or ActionNone when detached.
func (o *Overlay) Input(in Input) Action {
	if !o.attached {
		return ActionNone
	}
	o.focused = true
	act := o.editor.Handle(in)
	switch act {
	case ActionConfirm:
		o.Confirm()
	case ActionCancel:
		o.Cancel()
	}
	return act
}

// Confirm keeps the edited text and ends the session.
func (o *Overlay) Confirm() bool {
	if !o.attached {
		return false
	}
	o.finish(OutcomeConfirmed)
	return true
}

// Cancel restores the original text and ends the session.
func (o *Overlay) Cancel() bool {
	if !o.attached {
		return false
	}
	if o.editor.Area.Text() != o.original {
		o.editor.Area.SetText(o.original)
	}
	o.finish(OutcomeCancelled)
	return true
}

// Blur handles focus loss. Within the grace period after Open it only drops
// focus; afterwards it commits like Confirm. Returns true if the session
// ended.
func (o *Overlay) Blur() bool {
	if !o.attached {
		return false
	}
	if o.now().Sub(o.opened) < o.grace {
		o.focused = false
		return false
	}
	o.finish(OutcomeBlurred)
	return true
}

// Close ends the session keeping the text as typed. Used by tool teardown.
func (o *Overlay) Close() {
	if o.attached {
		o.finish(OutcomeConfirmed)
	}
}

func (o *Overlay) finish(outcome Outcome) {
	e := o.editor
	o.attached = false
	o.focused = false
	o.outcome = outcome
	o.editor = nil
	e.Selection.ClearSelection()
	e.Area.SetActive(false)
	if o.OnClose != nil {
		o.OnClose(e.Area, outcome)
	}
}
