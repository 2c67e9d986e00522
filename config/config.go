// Package config holds the editor configuration: tool thresholds, font
// variants, autosave timing and the page layout that sizes the canvas.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config is the full editor configuration.
type Config struct {
	Text     TextConfig     `yaml:"text"`
	Path     PathConfig     `yaml:"path"`
	Shapes   ShapeConfig    `yaml:"shapes"`
	Fonts    FontConfig     `yaml:"fonts"`
	Autosave AutosaveConfig `yaml:"autosave"`
	History  HistoryConfig  `yaml:"history"`
	Layout   Layout         `yaml:"layout"`
}

// TextConfig tunes the text tool.
type TextConfig struct {
	MinAreaSize         float64       `yaml:"min_area_size"`         // both drag dimensions must reach this
	DefaultWidth        float64       `yaml:"default_width"`         // area created by double-click
	DefaultHeight       float64       `yaml:"default_height"`
	DoubleClickInterval time.Duration `yaml:"double_click_interval"`
	DoubleClickSlop     float64       `yaml:"double_click_slop"`
	BlurGrace           time.Duration `yaml:"blur_grace"` // blur inside this window after open is ignored
	Padding             float64       `yaml:"padding"`
}

// PathConfig tunes freehand capture and simplification.
type PathConfig struct {
	MinSampleDistance float64 `yaml:"min_sample_distance"`
	ToleranceSq       float64 `yaml:"tolerance_sq"`
	Adherence         float64 `yaml:"adherence"`
	StrokeWidth       float64 `yaml:"stroke_width"`
}

// ShapeConfig tunes the shapes and tables tools.
type ShapeConfig struct {
	MinSize      float64 `yaml:"min_size"`
	TableRows    int     `yaml:"table_rows"`
	TableColumns int     `yaml:"table_columns"`
	PenWidth     float64 `yaml:"pen_width"`
	BrushWidth   float64 `yaml:"brush_width"`
}

// FontConfig lists the pre-generated bitmap font variants.
type FontConfig struct {
	Family      string    `yaml:"family"`
	Sizes       []float64 `yaml:"sizes"`
	DefaultSize float64   `yaml:"default_size"`
	Dir         string    `yaml:"dir"` // optional directory of <family>.ttf overrides
}

// AutosaveConfig controls debounced document persistence.
type AutosaveConfig struct {
	Quiet time.Duration `yaml:"quiet"`
	Path  string        `yaml:"path"`
}

// HistoryConfig bounds undo history.
type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Text: TextConfig{
			MinAreaSize:         30,
			DefaultWidth:        200,
			DefaultHeight:       40,
			DoubleClickInterval: 400 * time.Millisecond,
			DoubleClickSlop:     4,
			BlurGrace:           300 * time.Millisecond,
			Padding:             4,
		},
		Path: PathConfig{
			MinSampleDistance: 3,
			ToleranceSq:       4,
			Adherence:         0.5,
			StrokeWidth:       2,
		},
		Shapes: ShapeConfig{
			MinSize:      10,
			TableRows:    3,
			TableColumns: 3,
			PenWidth:     2,
			BrushWidth:   12,
		},
		Fonts: FontConfig{
			Family:      "goregular",
			Sizes:       []float64{12, 16, 24, 32, 48},
			DefaultSize: 16,
		},
		Autosave: AutosaveConfig{
			Quiet: 2 * time.Second,
		},
		History: HistoryConfig{
			Capacity: 100,
		},
		Layout: DefaultLayout(),
	}
}

// Load reads a YAML config file on top of the defaults. Keys missing from
// the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	switch {
	case c.Text.MinAreaSize < 0:
		return fmt.Errorf("%w: text.min_area_size must be >= 0", ErrInvalid)
	case c.Text.DefaultWidth <= 0 || c.Text.DefaultHeight <= 0:
		return fmt.Errorf("%w: text default size must be positive", ErrInvalid)
	case c.Path.MinSampleDistance < 0:
		return fmt.Errorf("%w: path.min_sample_distance must be >= 0", ErrInvalid)
	case c.Path.ToleranceSq < 0:
		return fmt.Errorf("%w: path.tolerance_sq must be >= 0", ErrInvalid)
	case c.Path.Adherence < 0 || c.Path.Adherence > 1:
		return fmt.Errorf("%w: path.adherence must be within [0,1]", ErrInvalid)
	case len(c.Fonts.Sizes) == 0:
		return fmt.Errorf("%w: fonts.sizes must list at least one size", ErrInvalid)
	case c.History.Capacity <= 0:
		return fmt.Errorf("%w: history.capacity must be positive", ErrInvalid)
	}
	return c.Layout.Validate()
}
