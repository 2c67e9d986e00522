// Package export renders saved canvases to files: PNG pages, thumbnails,
// character-cell previews and the raw YAML document.
package export

import (
	"fmt"
	"io"
	"strings"

	"coursecanvas/document"
	"coursecanvas/fonts"
)

// Format names an export format.
type Format string

const (
	FormatPNG       Format = "png"
	FormatThumbnail Format = "thumbnail"
	FormatText      Format = "text"
	FormatYAML      Format = "yaml"
)

// Exporter writes a document in one format.
type Exporter interface {
	Export(w io.Writer, d document.Document) error
	FileExtension() string
	FormatName() string
}

// Options tune the exporters. Zero values get defaults.
type Options struct {
	Fonts       *fonts.Library // nil draws text with the built-in face
	TextPadding float64
	ThumbWidth  int
	ThumbHeight int
	Columns     int // width of text previews in cells
}

func (o Options) withDefaults() Options {
	if o.ThumbWidth <= 0 {
		o.ThumbWidth = 320
	}
	if o.ThumbHeight <= 0 {
		o.ThumbHeight = 240
	}
	if o.Columns <= 0 {
		o.Columns = 100
	}
	return o
}

// NewExporter returns the exporter for format.
func NewExporter(format Format, opts Options) (Exporter, error) {
	opts = opts.withDefaults()
	switch format {
	case FormatPNG:
		return NewPNGExporter(opts), nil
	case FormatThumbnail:
		return NewThumbnailExporter(opts), nil
	case FormatText:
		return NewTextExporter(opts.Columns), nil
	case FormatYAML:
		return YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png", "image":
		return FormatPNG, nil
	case "thumbnail", "thumb":
		return FormatThumbnail, nil
	case "text", "txt", "ascii":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s", s)
	}
}

// AvailableFormats lists every format NewExporter accepts.
func AvailableFormats() []Format {
	return []Format{FormatPNG, FormatThumbnail, FormatText, FormatYAML}
}

// YAMLExporter writes the document itself.
type YAMLExporter struct{}

func (YAMLExporter) Export(w io.Writer, d document.Document) error {
	data, err := document.Marshal(d)
	if err != nil {
		return fmt.Errorf("export yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func (YAMLExporter) FileExtension() string { return ".yaml" }
func (YAMLExporter) FormatName() string    { return "Canvas document (YAML)" }
