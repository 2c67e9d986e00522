// Package demo plays scripted input into the editor for recorded course
// walkthroughs. Scripts are YAML lists of key presses, typed text and mouse
// gestures in screen cells; the player posts them as tcell events so they
// go through the same event loop as a real user.
package demo

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"

	"coursecanvas/logging"
)

// Command represents a single demo command
type Command struct {
	Type     string `yaml:"type"`               // key, text, click, drag, pause
	Value    string `yaml:"value,omitempty"`    // key name, text, "x,y" or "x,y x,y"
	Delay    int    `yaml:"delay,omitempty"`    // ms after the command
	Variance int    `yaml:"variance,omitempty"` // ms, ±
}

// Script represents a demo script
type Script struct {
	Name         string    `yaml:"name"`
	Description  string    `yaml:"description,omitempty"`
	BaseDelay    int       `yaml:"base_delay,omitempty"`
	BaseVariance int       `yaml:"base_variance,omitempty"`
	Commands     []Command `yaml:"commands"`
}

const (
	defaultDelay    = 300
	defaultVariance = 100
	minDelay        = 50
)

// Parse decodes a script and fills in default timing.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse demo script: %w", err)
	}
	if s.BaseDelay == 0 {
		s.BaseDelay = defaultDelay
	}
	if s.BaseVariance == 0 {
		s.BaseVariance = defaultVariance
	}
	for i, c := range s.Commands {
		if _, err := c.Events(); err != nil {
			return nil, fmt.Errorf("command %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// Load reads a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read demo script: %w", err)
	}
	return Parse(data)
}

var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
}

// keyEvent parses "ctrl+s", "tab" or a single character.
func keyEvent(name string) (*tcell.EventKey, error) {
	lower := strings.ToLower(name)
	if k, ok := namedKeys[lower]; ok {
		return tcell.NewEventKey(k, 0, tcell.ModNone), nil
	}
	if l, ok := strings.CutPrefix(lower, "ctrl+"); ok && len(l) == 1 && l[0] >= 'a' && l[0] <= 'z' {
		return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(l[0]-'a'), 0, tcell.ModCtrl), nil
	}
	if r := []rune(name); len(r) == 1 {
		return tcell.NewEventKey(tcell.KeyRune, r[0], tcell.ModNone), nil
	}
	return nil, fmt.Errorf("unknown key %q", name)
}

func cell(s string) (x, y int, err error) {
	xs, ys, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return 0, 0, fmt.Errorf("cell %q: want x,y", s)
	}
	if x, err = strconv.Atoi(strings.TrimSpace(xs)); err != nil {
		return 0, 0, fmt.Errorf("cell %q: %w", s, err)
	}
	if y, err = strconv.Atoi(strings.TrimSpace(ys)); err != nil {
		return 0, 0, fmt.Errorf("cell %q: %w", s, err)
	}
	return x, y, nil
}

func mouse(x, y int, b tcell.ButtonMask) tcell.Event {
	return tcell.NewEventMouse(x, y, b, tcell.ModNone)
}

// Events expands the command into screen events. A drag moves one cell
// at a time so tools see every intermediate point.
func (c Command) Events() ([]tcell.Event, error) {
	switch c.Type {
	case "key":
		ev, err := keyEvent(c.Value)
		if err != nil {
			return nil, err
		}
		return []tcell.Event{ev}, nil
	case "text":
		var out []tcell.Event
		for _, r := range c.Value {
			out = append(out, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
		}
		return out, nil
	case "click":
		x, y, err := cell(c.Value)
		if err != nil {
			return nil, err
		}
		return []tcell.Event{mouse(x, y, tcell.Button1), mouse(x, y, tcell.ButtonNone)}, nil
	case "drag":
		from, to, ok := strings.Cut(strings.TrimSpace(c.Value), " ")
		if !ok {
			return nil, fmt.Errorf("drag %q: want x,y x,y", c.Value)
		}
		x0, y0, err := cell(from)
		if err != nil {
			return nil, err
		}
		x1, y1, err := cell(to)
		if err != nil {
			return nil, err
		}
		steps := max(abs(x1-x0), abs(y1-y0))
		out := []tcell.Event{mouse(x0, y0, tcell.Button1)}
		for i := 1; i <= steps; i++ {
			out = append(out, mouse(x0+(x1-x0)*i/steps, y0+(y1-y0)*i/steps, tcell.Button1))
		}
		return append(out, mouse(x1, y1, tcell.ButtonNone)), nil
	case "pause":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown command type %q", c.Type)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Player plays back demo scripts
type Player struct {
	post func(tcell.Event) error
	rand *rand.Rand
	wait func(context.Context, time.Duration) error
}

// NewPlayer creates a player that delivers events through post, usually
// a screen's PostEvent.
func NewPlayer(post func(tcell.Event) error) *Player {
	return &Player{
		post: post,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
		wait: sleep,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// delay returns the pause after c with its random variance applied.
func (p *Player) delay(s *Script, c Command) time.Duration {
	d := c.Delay
	if d == 0 {
		d = s.BaseDelay
	}
	v := c.Variance
	if v == 0 {
		v = s.BaseVariance
	}
	if v > 0 {
		d += p.rand.Intn(v*2) - v
	}
	return time.Duration(max(d, minDelay)) * time.Millisecond
}

// Play posts every command of s in order and returns when the script ends
// or ctx is done.
func (p *Player) Play(ctx context.Context, s *Script) error {
	log := logging.For("demo")
	log.Info("playing", "script", s.Name, "commands", len(s.Commands))
	for i, c := range s.Commands {
		events, err := c.Events()
		if err != nil {
			return fmt.Errorf("command %d: %w", i+1, err)
		}
		for j, ev := range events {
			if err := p.post(ev); err != nil {
				return fmt.Errorf("command %d: %w", i+1, err)
			}
			// Typed text gets a short gap per character.
			if c.Type == "text" && j < len(events)-1 {
				if err := p.wait(ctx, time.Duration(30+p.rand.Intn(40))*time.Millisecond); err != nil {
					return err
				}
			}
		}
		if err := p.wait(ctx, p.delay(s, c)); err != nil {
			return err
		}
	}
	log.Info("finished", "script", s.Name)
	return nil
}

// Example returns a script that draws a labelled square and keyframes it.
func Example() string {
	s := Script{
		Name:         "Labelled square",
		Description:  "Draws a square, labels it and records two keyframes",
		BaseDelay:    400,
		BaseVariance: 150,
		Commands: []Command{
			{Type: "key", Value: "5", Delay: 800},
			{Type: "drag", Value: "4,3 14,8"},
			{Type: "key", Value: "4", Delay: 600},
			{Type: "drag", Value: "4,10 20,12"},
			{Type: "text", Value: "Area = a²"},
			{Type: "key", Value: "ctrl+d"},
			{Type: "key", Value: "0", Delay: 600},
			{Type: "click", Value: "8,5"},
			{Type: "key", Value: "k"},
			{Type: "text", Value: "...."},
			{Type: "drag", Value: "8,5 30,5"},
			{Type: "key", Value: "k"},
			{Type: "pause", Delay: 2000},
		},
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		panic(err)
	}
	return string(data)
}
