package export

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecanvas/config"
	"coursecanvas/core"
	"coursecanvas/document"
	"coursecanvas/scene"
)

// page is 254×143 pixels.
func page(nodes ...scene.Node) document.Document {
	for i := range nodes {
		nodes[i].ID = scene.NodeID(i + 1)
	}
	return document.Document{
		Version: document.Version,
		Course:  "geometry",
		Layout: config.Layout{
			Page:        "16:9",
			Orientation: config.Portrait,
			Margins:     config.Margins{Top: 5, Right: 5, Bottom: 5, Left: 5},
			DPI:         25.4,
		},
		Background: "#ff0000",
		Nodes:      nodes,
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"IMAGE", FormatPNG, false},
		{"thumb", FormatThumbnail, false},
		{"ascii", FormatText, false},
		{"yml", FormatYAML, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewExporterCoversEveryFormat(t *testing.T) {
	for _, f := range AvailableFormats() {
		e, err := NewExporter(f, Options{})
		require.NoError(t, err, f)
		assert.NotEmpty(t, e.FileExtension())
		assert.NotEmpty(t, e.FormatName())
	}
	_, err := NewExporter("svg", Options{})
	assert.Error(t, err)
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestPNGPageSizeAndPaint(t *testing.T) {
	rect := scene.NewNode(scene.KindRect, core.Pt(100, 50))
	rect.Size = core.Size{W: 40, H: 40}
	rect.Style.Fill = "#0000ff"
	rect.Style.Stroke = "#0000ff"

	var buf bytes.Buffer
	require.NoError(t, NewPNGExporter(Options{}).Export(&buf, page(rect)))
	img := decode(t, buf.Bytes())

	assert.Equal(t, image.Rect(0, 0, 254, 143), img.Bounds())

	r, g, b, _ := img.At(2, 2).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0, 0}, [3]uint32{r, g, b}, "background")

	r, g, b, _ = img.At(120, 70).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0xffff}, [3]uint32{r, g, b}, "rect fill")
}

func TestPNGSkipsChromeAndHidden(t *testing.T) {
	handle := scene.NewNode(scene.KindHandle, core.Pt(0, 0))
	handle.Size = core.Size{W: 254, H: 143}
	handle.Style.Fill = "#00ff00"
	hidden := scene.NewNode(scene.KindRect, core.Pt(0, 0))
	hidden.Size = core.Size{W: 254, H: 143}
	hidden.Style.Fill = "#00ff00"
	hidden.Hidden = true

	img, err := NewPNGExporter(Options{}).Render(page(handle, hidden))
	require.NoError(t, err)
	r, g, _, _ := img.At(127, 70).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
}

func TestPNGRendersEveryKind(t *testing.T) {
	group := scene.NewNode(scene.KindGroup, core.Pt(20, 20))
	stroke := scene.NewNode(scene.KindStroke, core.Pt(0, 0))
	stroke.Points = []core.Point{core.Pt(0, 0), core.Pt(10, 30), core.Pt(40, 10)}
	stroke.Style.Width = 3
	stroke.Parent = 1
	dot := scene.NewNode(scene.KindStroke, core.Pt(0, 0))
	dot.Points = []core.Point{core.Pt(5, 5)}
	ellipse := scene.NewNode(scene.KindEllipse, core.Pt(60, 60))
	ellipse.Size = core.Size{W: 30, H: 20}
	ellipse.Style.Opacity = 0.5
	table := scene.NewNode(scene.KindTable, core.Pt(120, 10))
	table.Size = core.Size{W: 60, H: 40}
	table.Rows, table.Columns = 2, 3
	text := scene.NewNode(scene.KindText, core.Pt(10, 100))
	text.Size = core.Size{W: 200, H: 30}
	text.Text = "Pythagoras\na² + b² = c²"

	_, err := NewPNGExporter(Options{TextPadding: 4}).Render(page(group, stroke, dot, ellipse, table, text))
	assert.NoError(t, err)
}

func TestPNGInvalidLayout(t *testing.T) {
	d := page()
	d.Layout.Page = "napkin"
	_, err := NewPNGExporter(Options{}).Render(d)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestThumbnailFitsBox(t *testing.T) {
	var buf bytes.Buffer
	e := NewThumbnailExporter(Options{ThumbWidth: 100, ThumbHeight: 100})
	require.NoError(t, e.Export(&buf, page()))
	b := decode(t, buf.Bytes()).Bounds()
	assert.Equal(t, 100, b.Dx())
	assert.InDelta(t, 56, b.Dy(), 1)
}

func TestThumbnailDoesNotUpscale(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	assert.Equal(t, img.Bounds(), Thumbnail(img, 100, 100).Bounds())
}

func TestTextPreview(t *testing.T) {
	rect := scene.NewNode(scene.KindRect, core.Pt(0, 0))
	rect.Size = core.Size{W: 100, H: 50}
	text := scene.NewNode(scene.KindText, core.Pt(130, 20))
	text.Size = core.Size{W: 100, H: 20}
	text.Text = "hi"

	var buf bytes.Buffer
	require.NoError(t, NewTextExporter(50).Export(&buf, page(rect, text)))
	out := buf.String()
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, rows, 15, "143px at 5.08px per column and two columns per row")
	assert.True(t, strings.HasPrefix(rows[0], "┌"))
	assert.Contains(t, out, "hi")
}

func TestYAMLExportOpens(t *testing.T) {
	rect := scene.NewNode(scene.KindRect, core.Pt(3, 4))
	var buf bytes.Buffer
	require.NoError(t, YAMLExporter{}.Export(&buf, page(rect)))

	d, err := document.Unmarshal(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, d.Nodes, 1)
	assert.Equal(t, core.Pt(3, 4), d.Nodes[0].Position)
	assert.Equal(t, "#ff0000", d.Background)
}
