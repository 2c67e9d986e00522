// Package colors manages per-tool paint colors. The manager is constructed
// by the host and handed to tools through their runtime context; color
// changes arrive as setting updates, never as broadcasts.
package colors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrBadColor is returned for strings that are not #rgb, #rrggbb or #rrggbbaa.
var ErrBadColor = errors.New("bad color")

// Default colors used when a tool has no explicit setting.
const (
	DefaultStroke    = "#1f2933"
	DefaultHighlight = "#3b82f680"
	DefaultHandle    = "#2563eb"
)

// Paint is the pair of colors a tool draws with.
type Paint struct {
	Stroke string
	Fill   string
}

// Manager holds the current paint for every tool id.
type Manager struct {
	paints map[string]Paint
	base   Paint
}

// NewManager creates a manager whose tools fall back to base.
func NewManager(base Paint) *Manager {
	if base.Stroke == "" {
		base.Stroke = DefaultStroke
	}
	return &Manager{paints: make(map[string]Paint), base: base}
}

// Paint returns the paint for a tool, falling back to the base paint.
func (m *Manager) Paint(tool string) Paint {
	p, ok := m.paints[tool]
	if !ok {
		return m.base
	}
	if p.Stroke == "" {
		p.Stroke = m.base.Stroke
	}
	return p
}

// SetStroke sets a tool's stroke color. Invalid colors leave it unchanged.
func (m *Manager) SetStroke(tool, hex string) error {
	norm, err := Normalize(hex)
	if err != nil {
		return err
	}
	p := m.paints[tool]
	p.Stroke = norm
	m.paints[tool] = p
	return nil
}

// SetFill sets a tool's fill color. An empty string clears the fill.
func (m *Manager) SetFill(tool, hex string) error {
	p := m.paints[tool]
	if hex == "" {
		p.Fill = ""
		m.paints[tool] = p
		return nil
	}
	norm, err := Normalize(hex)
	if err != nil {
		return err
	}
	p.Fill = norm
	m.paints[tool] = p
	return nil
}

// Parse decodes a hex color with optional alpha.
func Parse(hex string) (colorful.Color, float64, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}

	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrBadColor, hex)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, 0, fmt.Errorf("%w: %q", ErrBadColor, hex)
	}
	return c, alpha, nil
}

// Normalize returns the canonical lower-case form: #rrggbb, or #rrggbbaa
// when alpha is below one.
func Normalize(hex string) (string, error) {
	c, a, err := Parse(hex)
	if err != nil {
		return "", err
	}
	return Format(c, a), nil
}

// Format renders a color and alpha as hex.
func Format(c colorful.Color, alpha float64) string {
	if alpha >= 1 {
		return c.Clamped().Hex()
	}
	return fmt.Sprintf("%s%02x", c.Clamped().Hex(), uint8(alpha*255+0.5))
}

// WithAlpha replaces the alpha of a color. Invalid input yields the input.
func WithAlpha(hex string, alpha float64) string {
	c, _, err := Parse(hex)
	if err != nil {
		return hex
	}
	return Format(c, alpha)
}

// Blend mixes two colors in Lab space; t=0 gives a, t=1 gives b.
func Blend(a, b string, t float64) string {
	ca, aa, err := Parse(a)
	if err != nil {
		return b
	}
	cb, ab, err := Parse(b)
	if err != nil {
		return a
	}
	return Format(ca.BlendLab(cb, t), aa+(ab-aa)*t)
}

// RGB255 returns the 8-bit channels of a color, black for invalid input.
func RGB255(hex string) (r, g, b uint8) {
	c, _, err := Parse(hex)
	if err != nil {
		return 0, 0, 0
	}
	return c.Clamped().RGB255()
}
