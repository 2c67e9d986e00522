package export

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"

	"coursecanvas/document"
)

// ThumbnailExporter renders the page and shrinks it to fit a box, keeping
// the page's aspect ratio.
type ThumbnailExporter struct {
	page *PNGExporter
	w, h int
}

// NewThumbnailExporter creates a thumbnail exporter bounded by
// opts.ThumbWidth × opts.ThumbHeight.
func NewThumbnailExporter(opts Options) *ThumbnailExporter {
	opts = opts.withDefaults()
	return &ThumbnailExporter{page: NewPNGExporter(opts), w: opts.ThumbWidth, h: opts.ThumbHeight}
}

func (e *ThumbnailExporter) FileExtension() string { return ".thumb.png" }
func (e *ThumbnailExporter) FormatName() string    { return "Thumbnail" }

// Export writes the thumbnail as PNG.
func (e *ThumbnailExporter) Export(w io.Writer, d document.Document) error {
	img, err := e.page.Render(d)
	if err != nil {
		return err
	}
	if err := imaging.Encode(w, Thumbnail(img, e.w, e.h), imaging.PNG); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return nil
}

// Thumbnail scales img down to fit within w × h. Images already inside the
// box are returned unscaled.
func Thumbnail(img image.Image, w, h int) image.Image {
	return imaging.Fit(img, w, h, imaging.Lanczos)
}
