// Package render turns a loaded map into SVG and PNG output.
package render

import (
	"svgmap/internal/geom"
	"svgmap/internal/mapel"
)

// PointRadius is the circle radius, in map units, used for point shapes.
const PointRadius = 4.0

// ViewBox is the visible area of the document.
type ViewBox struct {
	X, Y          float64
	Width, Height float64
}

// ViewBoxOf converts a bounding box to origin and size.
func ViewBoxOf(b geom.BBox) ViewBox {
	return ViewBox{X: b.MinX, Y: b.MinY, Width: b.Width(), Height: b.Height()}
}

// Class is the CSS rule data of one category.
type Class struct {
	Name string
	mapel.Style
}

// Item is the SVG fragment of one element.
type Item struct {
	Class string
	SVG   string
}

// Document is the data handed to the template.
type Document struct {
	BBox        ViewBox
	Classes     []Class
	Items       []Item
	PointRadius float64
}

// NewDocument collects the template data of m. Items keep map order.
func NewDocument(m *mapel.Map) Document {
	d := Document{
		BBox:        ViewBoxOf(m.BBox()),
		Classes:     make([]Class, 0, len(mapel.ClassOrder)),
		Items:       make([]Item, 0, len(m.Elements)),
		PointRadius: PointRadius,
	}
	for _, c := range mapel.ClassOrder {
		d.Classes = append(d.Classes, Class{Name: c.String(), Style: c.Style()})
	}
	for _, e := range m.Elements {
		d.Items = append(d.Items, Item{Class: e.Category.String(), SVG: e.SVG()})
	}
	return d
}
