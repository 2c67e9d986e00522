package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"coursecanvas/core"
)

// Orientation of the page.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// pageSizes in millimetres, portrait.
var pageSizes = map[string]core.Size{
	"a3":     {W: 297, H: 420},
	"a4":     {W: 210, H: 297},
	"a5":     {W: 148, H: 210},
	"letter": {W: 215.9, H: 279.4},
	"legal":  {W: 215.9, H: 355.6},
	"16:9":   {W: 254, H: 142.875},
}

const mmPerInch = 25.4

// Margins in millimetres.
type Margins struct {
	Top    float64 `yaml:"top"`
	Right  float64 `yaml:"right"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
}

// Layout is the course page layout the canvas is sized from.
type Layout struct {
	Page        string      `yaml:"page"`
	Orientation Orientation `yaml:"orientation"`
	Margins     Margins     `yaml:"margins"`
	DPI         float64     `yaml:"dpi"`
}

// DefaultLayout is an A4 landscape page at 96 DPI with 10mm margins.
func DefaultLayout() Layout {
	return Layout{
		Page:        "a4",
		Orientation: Landscape,
		Margins:     Margins{Top: 10, Right: 10, Bottom: 10, Left: 10},
		DPI:         96,
	}
}

// Validate reports unknown pages, orientations or margins that swallow the page.
func (l Layout) Validate() error {
	size, ok := pageSizes[strings.ToLower(l.Page)]
	if !ok {
		return fmt.Errorf("%w: unknown page size %q", ErrInvalid, l.Page)
	}
	if l.Orientation != Portrait && l.Orientation != Landscape {
		return fmt.Errorf("%w: unknown orientation %q", ErrInvalid, l.Orientation)
	}
	if l.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive", ErrInvalid)
	}
	if l.Orientation == Landscape {
		size.W, size.H = size.H, size.W
	}
	if l.Margins.Left+l.Margins.Right >= size.W || l.Margins.Top+l.Margins.Bottom >= size.H {
		return fmt.Errorf("%w: margins exceed the page", ErrInvalid)
	}
	return nil
}

func (l Layout) toPixels(mm float64) float64 {
	return mm / mmPerInch * l.DPI
}

// PageSize returns the full page in pixels.
func (l Layout) PageSize() (width, height int) {
	size, ok := pageSizes[strings.ToLower(l.Page)]
	if !ok {
		size = pageSizes["a4"]
	}
	if l.Orientation == Landscape {
		size.W, size.H = size.H, size.W
	}
	return int(math.Round(l.toPixels(size.W))), int(math.Round(l.toPixels(size.H)))
}

// ContentRect returns the drawable area inside the margins, in pixels.
func (l Layout) ContentRect() core.Rect {
	w, h := l.PageSize()
	left := l.toPixels(l.Margins.Left)
	top := l.toPixels(l.Margins.Top)
	return core.Rect{
		X: left,
		Y: top,
		W: float64(w) - left - l.toPixels(l.Margins.Right),
		H: float64(h) - top - l.toPixels(l.Margins.Bottom),
	}
}

func layoutPath(dir, courseID string) string {
	return filepath.Join(dir, courseID+".layout.yaml")
}

// LoadLayout reads the layout stored for a course. A course without a stored
// layout gets the default one.
func LoadLayout(dir, courseID string) (Layout, error) {
	data, err := os.ReadFile(layoutPath(dir, courseID))
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultLayout(), nil
	}
	if err != nil {
		return DefaultLayout(), fmt.Errorf("read layout for %s: %w", courseID, err)
	}

	l := DefaultLayout()
	if err := yaml.Unmarshal(data, &l); err != nil {
		return DefaultLayout(), fmt.Errorf("parse layout for %s: %w", courseID, err)
	}
	if err := l.Validate(); err != nil {
		return DefaultLayout(), err
	}
	return l, nil
}

// SaveLayout stores the layout for a course.
func SaveLayout(dir, courseID string, l Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(layoutPath(dir, courseID), data, 0644)
}
