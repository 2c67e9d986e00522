package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"coursecanvas/colors"
	"coursecanvas/core"
	"coursecanvas/document"
	"coursecanvas/fonts"
	"coursecanvas/geometry"
	"coursecanvas/logging"
	"coursecanvas/scene"
	"coursecanvas/textedit"
)

// PNGExporter rasterizes a document page at the layout's pixel size.
type PNGExporter struct {
	opts Options
}

// NewPNGExporter creates a PNG exporter.
func NewPNGExporter(opts Options) *PNGExporter {
	return &PNGExporter{opts: opts.withDefaults()}
}

func (e *PNGExporter) FileExtension() string { return ".png" }
func (e *PNGExporter) FormatName() string    { return "PNG image" }

// Export renders d and encodes it as PNG.
func (e *PNGExporter) Export(w io.Writer, d document.Document) error {
	img, err := e.Render(d)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Render draws every visible content node of d in z-order.
func (e *PNGExporter) Render(d document.Document) (image.Image, error) {
	if err := d.Layout.Validate(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	w, h := d.Layout.PageSize()
	dc := gg.NewContext(w, h)
	defer dc.Close()

	bg := d.Background
	if bg == "" {
		bg = "#ffffff"
	}
	dc.ClearWithColor(gg.Hex(bg))

	r := &pageRenderer{
		dc:    dc,
		opts:  e.opts,
		nodes: make(map[scene.NodeID]scene.Node, len(d.Nodes)),
	}
	for _, n := range d.Nodes {
		r.nodes[n.ID] = n
	}
	for _, n := range d.Nodes {
		if n.Kind.IsChrome() || n.Hidden {
			continue
		}
		if err := r.draw(n); err != nil {
			return nil, fmt.Errorf("render node %d: %w", n.ID, err)
		}
	}
	return r.finish(), nil
}

// pendingText is text drawn with an x/image face after the vector pass,
// used when no gg face is available.
type pendingText struct {
	s     string
	face  font.Face
	color color.Color
	x, y  float64
}

type pageRenderer struct {
	dc       *gg.Context
	opts     Options
	nodes    map[scene.NodeID]scene.Node
	fallback []pendingText
}

// chain returns n's ancestors from the top-level one down, then n.
func (r *pageRenderer) chain(n scene.Node) []scene.Node {
	out := []scene.Node{n}
	seen := map[scene.NodeID]bool{n.ID: true}
	for p := n.Parent; p != scene.Root && !seen[p]; {
		parent, ok := r.nodes[p]
		if !ok {
			break
		}
		seen[p] = true
		out = append(out, parent)
		p = parent.Parent
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func scaleOf(n scene.Node) core.Point {
	s := n.Scale
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	return s
}

// toGlobal maps a point in n's local space to the page.
func (r *pageRenderer) toGlobal(n scene.Node, p core.Point) core.Point {
	c := r.chain(n)
	for i := len(c) - 1; i >= 0; i-- {
		p = geometry.Transform(p, c[i].Position, c[i].Rotation, scaleOf(c[i]))
	}
	return p
}

func paint(hex string, opacity float64) string {
	if opacity > 0 && opacity < 1 {
		return colors.WithAlpha(hex, opacity)
	}
	return hex
}

func (r *pageRenderer) draw(n scene.Node) error {
	if n.Kind == scene.KindText {
		r.drawText(n)
		return nil
	}

	dc := r.dc
	dc.Push()
	defer dc.Pop()
	for _, a := range r.chain(n) {
		s := scaleOf(a)
		dc.Translate(a.Position.X, a.Position.Y)
		dc.Rotate(a.Rotation)
		dc.Scale(s.X, s.Y)
	}

	switch n.Kind {
	case scene.KindStroke:
		return r.stroke(n)
	case scene.KindRect:
		return r.shape(n, func() { dc.DrawRectangle(0, 0, n.Size.W, n.Size.H) })
	case scene.KindEllipse:
		rx, ry := n.Size.W/2, n.Size.H/2
		return r.shape(n, func() { dc.DrawEllipse(rx, ry, rx, ry) })
	case scene.KindTable:
		return r.table(n)
	}
	return nil
}

// shape fills then outlines the path built by path.
func (r *pageRenderer) shape(n scene.Node, path func()) error {
	dc := r.dc
	if n.Style.Fill != "" {
		path()
		dc.SetHexColor(paint(n.Style.Fill, n.Style.Opacity))
		if err := dc.Fill(); err != nil {
			return err
		}
	}
	stroke := n.Style.Stroke
	if stroke == "" && n.Style.Fill == "" {
		stroke = colors.DefaultStroke
	}
	if stroke == "" {
		return nil
	}
	path()
	dc.SetHexColor(paint(stroke, n.Style.Opacity))
	dc.SetLineWidth(lineWidth(n))
	return dc.Stroke()
}

func lineWidth(n scene.Node) float64 {
	if n.Style.Width > 0 {
		return n.Style.Width
	}
	return 1
}

func (r *pageRenderer) stroke(n scene.Node) error {
	dc := r.dc
	if len(n.Points) == 0 {
		return nil
	}
	hex := n.Style.Stroke
	if hex == "" {
		hex = colors.DefaultStroke
	}
	dc.SetHexColor(paint(hex, n.Style.Opacity))
	if len(n.Points) == 1 {
		p := n.Points[0]
		dc.DrawCircle(p.X, p.Y, lineWidth(n)/2)
		return dc.Fill()
	}
	start, segs := geometry.SmoothSegments(n.Points)
	dc.MoveTo(start.X, start.Y)
	for _, s := range segs {
		if s.Quad {
			dc.QuadraticTo(s.Ctrl.X, s.Ctrl.Y, s.To.X, s.To.Y)
		} else {
			dc.LineTo(s.To.X, s.To.Y)
		}
	}
	dc.SetLineWidth(lineWidth(n))
	return dc.Stroke()
}

func (r *pageRenderer) table(n scene.Node) error {
	w, h := n.Size.W, n.Size.H
	err := r.shape(n, func() { r.dc.DrawRectangle(0, 0, w, h) })
	if err != nil {
		return err
	}
	dc := r.dc
	for i := 1; i < n.Rows; i++ {
		y := h * float64(i) / float64(n.Rows)
		dc.DrawLine(0, y, w, y)
	}
	for i := 1; i < n.Columns; i++ {
		x := w * float64(i) / float64(n.Columns)
		dc.DrawLine(x, 0, x, h)
	}
	stroke := n.Style.Stroke
	if stroke == "" {
		stroke = colors.DefaultStroke
	}
	dc.SetHexColor(paint(stroke, n.Style.Opacity))
	dc.SetLineWidth(lineWidth(n))
	return dc.Stroke()
}

// drawText lays the text out exactly as the editor does and draws it
// upright at the node's page position.
func (r *pageRenderer) drawText(n scene.Node) {
	if n.Text == "" {
		return
	}
	size := n.FontSize
	if size <= 0 {
		size = 16
	}
	v := fonts.Fallback
	if r.opts.Fonts != nil {
		v, _ = r.opts.Fonts.Face("", size)
	}

	pad := r.opts.TextPadding
	a := textedit.NewTextArea(0, core.Rect{W: n.Size.W, H: n.Size.H}, v.Measurer(), pad)
	a.SetText(n.Text)
	origin := r.toGlobal(n, core.Point{})

	hex := n.Style.Fill
	if hex == "" {
		hex = colors.DefaultStroke
	}
	var ascent float64
	if v.GG != nil {
		r.dc.SetFont(v.GG)
		r.dc.SetHexColor(paint(hex, n.Style.Opacity))
		ascent = v.GG.Metrics().Ascent
	} else {
		ascent = float64(v.Face.Metrics().Ascent) / 64
	}

	runes := a.Runes()
	lh := a.LineHeight()
	for i, l := range a.Lines() {
		end := l.End
		if end > l.Start && runes[end-1] == '\n' {
			end--
		}
		line := string(runes[l.Start:end])
		x := origin.X + pad
		y := origin.Y + pad + float64(i)*lh + ascent
		if v.GG != nil {
			r.dc.DrawString(line, x, y)
			continue
		}
		cr, cg, cb := colors.RGB255(hex)
		r.fallback = append(r.fallback, pendingText{
			s: line, face: v.Face, color: color.RGBA{cr, cg, cb, 0xff}, x: x, y: y,
		})
	}
}

// finish returns the page, drawing any fallback text on top.
func (r *pageRenderer) finish() image.Image {
	if err := r.dc.FlushGPU(); err != nil {
		logging.For("export").Debug("gpu flush", "error", err)
	}
	img := r.dc.Image()
	if len(r.fallback) == 0 {
		return img
	}
	dst := image.NewRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	for _, t := range r.fallback {
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(t.color),
			Face: t.face,
			Dot:  fixed.P(int(t.x+0.5), int(t.y+0.5)),
		}
		d.DrawString(t.s)
	}
	return dst
}
