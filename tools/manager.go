package tools

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"coursecanvas/logging"
)

var (
	// ErrUnknownTool is returned by SetTool for an id nobody registered.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrToolActive is returned by Register when replacing the active tool.
	ErrToolActive = errors.New("tool is active")
)

// Manager owns the registered tools and routes events to the active one.
type Manager struct {
	svc      Services
	tools    map[ID]Tool
	settings map[ID]map[string]any

	active Tool
	ctx    *Context

	onCommit []func()
	log      *slog.Logger
}

// NewManager creates a manager over the injected services. Missing
// services get private defaults.
func NewManager(svc Services) *Manager {
	return &Manager{
		svc:      svc.withDefaults(),
		tools:    make(map[ID]Tool),
		settings: make(map[ID]map[string]any),
		log:      logging.For("tools"),
	}
}

// Services returns the services handed to every activation.
func (m *Manager) Services() Services { return m.svc }

// OnCommit registers fn to run after every event that may have changed the
// document: pointer up or cancel, settings, text input and tool switches.
func (m *Manager) OnCommit(fn func()) {
	m.onCommit = append(m.onCommit, fn)
}

func (m *Manager) committed() {
	for _, fn := range m.onCommit {
		fn()
	}
}

// Register builds the tool and files it under its id.
func (m *Manager) Register(f Factory) error {
	t := f()
	if t == nil {
		return errors.New("factory returned nil tool")
	}
	id := t.ID()
	if m.active != nil && m.active.ID() == id {
		return fmt.Errorf("register %q: %w", id, ErrToolActive)
	}
	m.tools[id] = t
	m.log.Debug("registered tool", "tool", id, "mode", t.Mode())
	return nil
}

// Registered returns the registered ids in toolbar order, then any extras
// sorted by name.
func (m *Manager) Registered() []ID {
	var out []ID
	for _, id := range IDs {
		if _, ok := m.tools[id]; ok {
			out = append(out, id)
		}
	}
	for _, id := range slices.Sorted(maps.Keys(m.tools)) {
		if !slices.Contains(IDs, id) {
			out = append(out, id)
		}
	}
	return out
}

// Tool returns a registered tool.
func (m *Manager) Tool(id ID) (Tool, bool) {
	t, ok := m.tools[id]
	return t, ok
}

// Active returns the active tool.
func (m *Manager) Active() (Tool, bool) {
	return m.active, m.active != nil
}

// ActiveID returns the active tool's id, or "".
func (m *Manager) ActiveID() ID {
	if m.active == nil {
		return ""
	}
	return m.active.ID()
}

// SetTool deactivates the current tool and activates id with a fresh
// context. Selecting the active tool again does nothing. An unknown id
// leaves the current tool active.
func (m *Manager) SetTool(id ID) error {
	next, ok := m.tools[id]
	if !ok {
		return fmt.Errorf("set tool %q: %w", id, ErrUnknownTool)
	}
	if m.active == next {
		return nil
	}

	m.deactivate()

	settings := m.settings[id]
	if settings == nil {
		settings = make(map[string]any)
		m.settings[id] = settings
	}
	m.ctx = newContext(m.svc, id, settings)
	m.active = next
	m.guard(id, "activate", func() { next.Activate(m.ctx) })
	m.log.Debug("tool activated", "tool", id)
	m.committed()
	return nil
}

// Close deactivates the active tool.
func (m *Manager) Close() {
	if m.active != nil {
		m.deactivate()
		m.committed()
	}
}

func (m *Manager) deactivate() {
	prev := m.active
	if prev == nil {
		return
	}
	m.guard(prev.ID(), "deactivate", prev.Deactivate)
	m.ctx.invalidate()
	m.active, m.ctx = nil, nil
	m.log.Debug("tool deactivated", "tool", prev.ID())
}

// RoutePointer forwards ev to the active tool. Events arriving while no
// tool is active are dropped. A zero Time is stamped with the services
// clock.
func (m *Manager) RoutePointer(ev PointerEvent) {
	t := m.active
	if t == nil {
		return
	}
	if ev.Time.IsZero() {
		ev.Time = m.svc.Now()
	}

	var fn func(PointerEvent)
	switch ev.Kind {
	case PointerDown:
		fn = t.PointerDown
	case PointerMove:
		fn = t.PointerMove
	case PointerUp:
		fn = t.PointerUp
	case PointerCancel:
		fn = t.PointerCancel
	default:
		return
	}
	m.guard(t.ID(), ev.Kind.String(), func() { fn(ev) })

	if ev.Kind == PointerUp || ev.Kind == PointerCancel {
		m.committed()
	}
}

// RouteSetting stores value under key for the active tool and forwards it.
func (m *Manager) RouteSetting(key string, value any) {
	t := m.active
	if t == nil {
		return
	}
	m.settings[t.ID()][key] = value
	m.guard(t.ID(), "setting", func() { t.UpdateSetting(key, value) })
	m.committed()
}

// SettingFor stores value for tool and forwards it only if that tool is
// active. A stored value is restored on the tool's next activation.
func (m *Manager) SettingFor(tool ID, key string, value any) {
	if m.active != nil && m.active.ID() == tool {
		m.RouteSetting(key, value)
		return
	}
	s := m.settings[tool]
	if s == nil {
		s = make(map[string]any)
		m.settings[tool] = s
	}
	s[key] = value
}

// RouteText forwards keyboard input to the active tool if it accepts text.
// Returns whether the input was consumed.
func (m *Manager) RouteText(in TextInput) bool {
	r, ok := m.active.(TextReceiver)
	if !ok {
		return false
	}
	var handled bool
	m.guard(m.active.ID(), "text", func() { handled = r.HandleText(in) })
	if handled {
		m.committed()
	}
	return handled
}

// guard runs a tool hook, containing any panic so dispatch keeps going.
func (m *Manager) guard(id ID, op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("tool handler panicked", "tool", id, "event", op, "panic", r)
		}
	}()
	fn()
}
