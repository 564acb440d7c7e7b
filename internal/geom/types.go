package geom

import "math"

// BBox is an axis-aligned bounding box in source coordinates.
type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// EmptyBBox returns the box of a shape with no coordinates. It is the
// identity of Union and reports IsEmpty.
func EmptyBBox() BBox {
	return BBox{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// IsEmpty reports whether b covers no coordinate at all.
func (b BBox) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Union returns the element-wise min/max of b and o.
func (b BBox) Union(o BBox) BBox {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Pad grows b by ratio of its width and height on every side.
func (b BBox) Pad(ratio float64) BBox {
	if b.IsEmpty() {
		return b
	}
	dx, dy := b.Width()*ratio, b.Height()*ratio
	return BBox{MinX: b.MinX - dx, MinY: b.MinY - dy, MaxX: b.MaxX + dx, MaxY: b.MaxY + dy}
}

// Intersects reports whether the two boxes share at least one point.
func (b BBox) Intersects(o BBox) bool {
	if b.IsEmpty() || o.IsEmpty() {
		return false
	}
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX && b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Geometry is one of Point, LineString, Polygon or Composite. The set is
// closed: no type outside this package can implement it.
type Geometry interface {
	// Kind names the variant ("Point", "LineString", "Polygon", "Composite").
	Kind() string
	// BBox returns the bounding box of every coordinate in the shape.
	BBox() BBox
	// SVG serializes the shape with class as its CSS class.
	SVG(class string) string

	sealed()
}

type Point struct {
	X, Y float64
}

// LineString is an open sequence of points. It may be empty.
type LineString struct {
	Points []Point
}

// Polygon keeps only the outer ring of its source; holes are dropped.
type Polygon struct {
	Ring LineString
}

// Composite holds the members of a MultiPoint, MultiLineString,
// MultiPolygon or GeometryCollection.
type Composite struct {
	Members []Geometry
}

func (Point) sealed()      {}
func (LineString) sealed() {}
func (Polygon) sealed()    {}
func (Composite) sealed()  {}

func (Point) Kind() string      { return "Point" }
func (LineString) Kind() string { return "LineString" }
func (Polygon) Kind() string    { return "Polygon" }
func (Composite) Kind() string  { return "Composite" }

func (p Point) BBox() BBox {
	return BBox{MinX: p.X, MinY: p.Y, MaxX: p.X, MaxY: p.Y}
}

// BBox of an empty line string is EmptyBBox, never the zero box.
func (ls LineString) BBox() BBox {
	bb := EmptyBBox()
	for _, p := range ls.Points {
		if p.X < bb.MinX {
			bb.MinX = p.X
		}
		if p.Y < bb.MinY {
			bb.MinY = p.Y
		}
		if p.X > bb.MaxX {
			bb.MaxX = p.X
		}
		if p.Y > bb.MaxY {
			bb.MaxY = p.Y
		}
	}
	return bb
}

func (pg Polygon) BBox() BBox { return pg.Ring.BBox() }

// BBox is the union of the member boxes. A composite without members has
// the zero box (0,0,0,0).
func (c Composite) BBox() BBox {
	if len(c.Members) == 0 {
		return BBox{}
	}
	bb := EmptyBBox()
	for _, m := range c.Members {
		bb = bb.Union(m.BBox())
	}
	return bb
}

// NumPoints counts the coordinates held by g.
func NumPoints(g Geometry) int {
	n := 0
	Walk(g, func(leaf Geometry) {
		switch v := leaf.(type) {
		case Point:
			n++
		case LineString:
			n += len(v.Points)
		case Polygon:
			n += len(v.Ring.Points)
		}
	})
	return n
}

// Walk calls fn for every non-composite shape in g, depth first and in
// member order.
func Walk(g Geometry, fn func(Geometry)) {
	switch v := g.(type) {
	case Composite:
		for _, m := range v.Members {
			Walk(m, fn)
		}
	case nil:
	default:
		fn(v)
	}
}
