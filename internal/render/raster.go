package render

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/colornames"
	"golang.org/x/image/math/fixed"

	"svgmap/internal/geom"
	"svgmap/internal/mapel"
)

// MaxRasterSide bounds both sides of a raster, in pixels.
const MaxRasterSide = 16384

// ErrEmptyViewport is returned when a map has no area to rasterize.
var ErrEmptyViewport = errors.New("render: empty viewport")

// patternColors stands in for the template paint servers the rasterizer
// cannot draw.
var patternColors = map[string]color.Color{
	"green": color.RGBA{0xAA, 0xBB, 0x88, 0xFF},
}

// ParseColor converts a CSS paint value to a color. It returns nil for
// "none" and for values it does not know.
func ParseColor(v string) color.Color {
	v = strings.TrimSpace(v)
	switch {
	case v == "" || v == "none":
		return nil
	case strings.HasPrefix(v, "url(#") && strings.HasSuffix(v, ")"):
		return patternColors[v[len("url(#"):len(v)-1]]
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:])
	}
	if c, ok := colornames.Map[strings.ToLower(v)]; ok {
		return c
	}
	return nil
}

func parseHex(h string) color.Color {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return nil
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xFF}
}

// viewport picks the District box, or every element when there is none.
func viewport(m *mapel.Map) (geom.BBox, error) {
	bb := m.BBox()
	if bb == (geom.BBox{}) {
		bb = m.Extent()
	}
	if !(bb.Width() > 0 && bb.Height() > 0) {
		return geom.BBox{}, ErrEmptyViewport
	}
	return bb, nil
}

// Raster draws m into an image width pixels wide, keeping the viewport
// aspect ratio. Elements are painted in map order with their category
// style; filters and markers are not drawn.
func Raster(m *mapel.Map, width int) (*image.RGBA, error) {
	bb, err := viewport(m)
	if err != nil {
		return nil, err
	}
	if width <= 0 || width > MaxRasterSide {
		return nil, errors.New("render: raster width out of range")
	}
	scale := float64(width) / bb.Width()
	height := int(math.Ceil(bb.Height() * scale))
	if height > MaxRasterSide {
		return nil, errors.New("render: raster height out of range")
	}
	if height < 1 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	p := newPainter(img, bb, scale)
	for _, e := range m.Elements {
		p.element(e)
	}
	return img, nil
}

// RasterPNG encodes the raster of m as PNG.
func RasterPNG(w io.Writer, m *mapel.Map, width int) error {
	img, err := Raster(m, width)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

type painter struct {
	filler *rasterx.Filler
	dasher *rasterx.Dasher
	origin geom.BBox
	scale  float64
}

func newPainter(img *image.RGBA, origin geom.BBox, scale float64) *painter {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	return &painter{
		filler: rasterx.NewFiller(w, h, scanner),
		dasher: rasterx.NewDasher(w, h, scanner),
		origin: origin,
		scale:  scale,
	}
}

func (p *painter) toFixed(pt geom.Point) fixed.Point26_6 {
	return rasterx.ToFixedP((pt.X-p.origin.MinX)*p.scale, (pt.Y-p.origin.MinY)*p.scale)
}

func (p *painter) element(e mapel.Element) {
	st := e.Style()
	fill, stroke := ParseColor(st.Fill), ParseColor(st.Stroke)
	width := math.Max(st.StrokeWidth*p.scale, 0.5)
	geom.Walk(e.Geometry, func(leaf geom.Geometry) {
		switch v := leaf.(type) {
		case geom.Point:
			p.circle(v, fill, stroke)
		case geom.LineString:
			p.path(v.Points, false, fill, stroke, width)
		case geom.Polygon:
			p.path(v.Ring.Points, true, fill, stroke, width)
		}
	})
}

func (p *painter) circle(pt geom.Point, fill, stroke color.Color) {
	c := fill
	if c == nil {
		c = stroke
	}
	if c == nil {
		return
	}
	r := math.Max(PointRadius*p.scale, 1)
	cx, cy := (pt.X-p.origin.MinX)*p.scale, (pt.Y-p.origin.MinY)*p.scale
	p.filler.Clear()
	rasterx.AddCircle(cx, cy, r, p.filler)
	p.filler.SetColor(c)
	p.filler.Draw()
}

// path fills then strokes a point run, like an SVG polyline or polygon.
func (p *painter) path(pts []geom.Point, closed bool, fill, stroke color.Color, width float64) {
	if len(pts) < 2 {
		return
	}
	if fill != nil && len(pts) > 2 {
		p.filler.Clear()
		p.filler.Start(p.toFixed(pts[0]))
		for _, pt := range pts[1:] {
			p.filler.Line(p.toFixed(pt))
		}
		p.filler.Stop(true)
		p.filler.SetColor(fill)
		p.filler.Draw()
	}
	if stroke != nil {
		p.dasher.SetStroke(fixed.Int26_6(width*64), fixed.Int26_6(4*64),
			rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
		p.dasher.Clear()
		p.dasher.Start(p.toFixed(pts[0]))
		for _, pt := range pts[1:] {
			p.dasher.Line(p.toFixed(pt))
		}
		p.dasher.Stop(closed)
		p.dasher.SetColor(stroke)
		p.dasher.Draw()
	}
}
