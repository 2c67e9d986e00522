// Package fonts loads the bitmap font variants used for canvas text.
//
// Variants are generated at a fixed list of sizes. Lookups for a size that
// was not generated return the nearest loaded size; lookups before anything
// has loaded return the built-in 7x13 face so the editor stays usable while
// fonts are still on their way.
package fonts

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	ggtext "github.com/gogpu/gg/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/sync/errgroup"

	"coursecanvas/config"
	"coursecanvas/logging"
)

// builtin maps family names to bundled TTF data.
var builtin = map[string][]byte{
	"goregular": goregular.TTF,
	"gomono":    gomono.TTF,
	"gobold":    gobold.TTF,
}

// Variant is one family at one size.
type Variant struct {
	Family string
	Size   float64
	Face   font.Face   // rasterizing face for x/image consumers
	GG     ggtext.Face // nil for the fallback variant
}

// Measurer returns the measurer matching what the exporter draws.
func (v *Variant) Measurer() Measurer {
	if v.GG != nil {
		return GGMeasurer{Face: v.GG}
	}
	return XMeasurer{Face: v.Face}
}

// Fallback is served while nothing has loaded or after a load failure.
var Fallback = &Variant{Family: "basic", Size: 13, Face: basicfont.Face7x13}

// Library holds the loaded variants. It is safe for concurrent use: Preload
// runs off the event loop while tools call Face.
type Library struct {
	cfg config.FontConfig

	mu       sync.RWMutex
	variants map[string][]*Variant // family -> ascending size
	ready    chan struct{}
	once     sync.Once
}

// NewLibrary creates an empty library for the configured family and sizes.
func NewLibrary(cfg config.FontConfig) *Library {
	return &Library{
		cfg:      cfg,
		variants: make(map[string][]*Variant),
		ready:    make(chan struct{}),
	}
}

// Ready is closed once Preload has finished, successfully or not.
func (l *Library) Ready() <-chan struct{} {
	return l.ready
}

// Preload parses the configured family and generates every size
// concurrently. A family that cannot be loaded is logged and left empty;
// lookups then fall back to the built-in face.
func (l *Library) Preload(ctx context.Context) error {
	defer l.once.Do(func() { close(l.ready) })

	log := logging.For("fonts")
	data, err := l.familyData(l.cfg.Family)
	if err != nil {
		log.Warn("font family unavailable, using fallback", "family", l.cfg.Family, "err", err)
		return nil
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		log.Warn("font parse failed, using fallback", "family", l.cfg.Family, "err", err)
		return nil
	}
	source, err := ggtext.NewFontSource(data)
	if err != nil {
		log.Warn("gg font source failed, measuring with x/image only", "family", l.cfg.Family, "err", err)
		source = nil
	}

	results := make([]*Variant, len(l.cfg.Sizes))
	g, gctx := errgroup.WithContext(ctx)
	for i, size := range l.cfg.Sizes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingNone,
			})
			if err != nil {
				return fmt.Errorf("face %s@%v: %w", l.cfg.Family, size, err)
			}
			v := &Variant{Family: l.cfg.Family, Size: size, Face: face}
			if source != nil {
				v.GG = source.Face(size)
			}
			results[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn("font preload incomplete", "family", l.cfg.Family, "err", err)
	}

	loaded := 0
	for _, v := range results {
		if v != nil {
			l.add(v)
			loaded++
		}
	}
	log.Info("fonts loaded", "family", l.cfg.Family, "variants", loaded)
	return ctx.Err()
}

func (l *Library) familyData(family string) ([]byte, error) {
	if l.cfg.Dir != "" {
		data, err := os.ReadFile(filepath.Join(l.cfg.Dir, family+".ttf"))
		if err == nil {
			return data, nil
		}
		if !os.IsNotExist(err) {
			return nil, err
		}
	}
	data, ok := builtin[family]
	if !ok {
		return nil, fmt.Errorf("unknown font family %q", family)
	}
	return data, nil
}

// add registers a variant, keeping sizes sorted. Lists handed out by Face
// are never written again; add always builds a new one.
func (l *Library) add(v *Variant) {
	l.mu.Lock()
	defer l.mu.Unlock()
	list := slices.Clone(l.variants[v.Family])
	i := sort.Search(len(list), func(i int) bool { return list[i].Size >= v.Size })
	if i < len(list) && list[i].Size == v.Size {
		list[i] = v
	} else {
		list = slices.Insert(list, i, v)
	}
	l.variants[v.Family] = list
}

// Face returns the variant for family at size. exact is false when a
// different size, or the fallback face, was substituted.
func (l *Library) Face(family string, size float64) (v *Variant, exact bool) {
	if family == "" {
		family = l.cfg.Family
	}

	l.mu.RLock()
	list := l.variants[family]
	l.mu.RUnlock()

	if len(list) == 0 {
		return Fallback, false
	}

	best := list[0]
	for _, cand := range list[1:] {
		if math.Abs(cand.Size-size) < math.Abs(best.Size-size) {
			best = cand
		}
	}
	if best.Size != size {
		logging.For("fonts").Debug("font size substituted", "family", family, "want", size, "got", best.Size)
	}
	return best, best.Size == size
}

// Sizes returns the loaded sizes for a family in ascending order.
func (l *Library) Sizes(family string) []float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	list := l.variants[family]
	out := make([]float64, len(list))
	for i, v := range list {
		out[i] = v.Size
	}
	return out
}
