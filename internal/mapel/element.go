package mapel

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"svgmap/internal/geom"
)

// Padding is the share of the District extent added on every side of the
// map bounding box.
const Padding = 0.1

// ErrMalformedDocument reports an input that is not a feature collection.
var ErrMalformedDocument = errors.New("malformed document")

// Element is one styled shape of a map.
type Element struct {
	Category Category
	Geometry geom.Geometry
}

// SVG renders the element's shape with its category name as CSS class.
func (e Element) SVG() string { return e.Geometry.SVG(e.Category.String()) }

func (e Element) BBox() geom.BBox { return e.Geometry.BBox() }

func (e Element) Style() Style { return StyleOf(e.Category) }

// FromFeature builds an element from a feature record. The geometry is read
// from the "geometry" member, or from the record itself when it is a bare
// geometry object carrying an "id". A Feature without geometry yields no
// element.
//
// Geometry errors are returned whatever the category. An unknown "id" is not
// an error: ok is false and the feature is meant to be skipped.
func FromFeature(f gjson.Result) (e Element, ok bool, err error) {
	g := f.Get("geometry")
	switch {
	case g.Exists() && g.Type != gjson.Null:
	case f.Get("type").String() == "Feature":
		return Element{}, false, nil
	default:
		g = f
	}
	shape, err := geom.Parse(g)
	if err != nil {
		return Element{}, false, err
	}
	c, ok := ParseCategory(f.Get("id").String())
	if !ok {
		return Element{}, false, nil
	}
	return Element{Category: c, Geometry: shape}, true, nil
}

// Map is an ordered list of elements. Element order is input order and is
// the paint order; it is not sorted by Style.ZOrder.
type Map struct {
	Elements []Element
	// Skipped counts features that produced no element.
	Skipped int
}

// Load builds a map from a GeoJSON "features" array.
func Load(features gjson.Result) (*Map, error) {
	if !features.IsArray() {
		return nil, fmt.Errorf("%w: features is not an array", ErrMalformedDocument)
	}
	m := &Map{}
	for i, f := range features.Array() {
		e, ok, err := FromFeature(f)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		if !ok {
			m.Skipped++
			continue
		}
		m.Elements = append(m.Elements, e)
	}
	return m, nil
}

// LoadJSON parses a FeatureCollection document.
func LoadJSON(data []byte) (*Map, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformedDocument)
	}
	doc := gjson.ParseBytes(data)
	features := doc.Get("features")
	if !features.Exists() {
		return nil, fmt.Errorf("%w: missing features", ErrMalformedDocument)
	}
	return Load(features)
}

// LoadFile reads and parses a FeatureCollection file.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := LoadJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// BBox returns the union of the District element boxes grown by Padding on
// every side, or the zero box when the map has no District.
func (m *Map) BBox() geom.BBox {
	bb := geom.EmptyBBox()
	for _, e := range m.Elements {
		if e.Category != District {
			continue
		}
		bb = bb.Union(e.BBox())
	}
	if bb.IsEmpty() {
		return geom.BBox{}
	}
	return bb.Pad(Padding)
}

// Extent returns the unpadded union of every element box, or the zero box
// for a map without coordinates.
func (m *Map) Extent() geom.BBox {
	bb := geom.EmptyBBox()
	for _, e := range m.Elements {
		bb = bb.Union(e.BBox())
	}
	if bb.IsEmpty() {
		return geom.BBox{}
	}
	return bb
}

// Counts returns the number of elements per category.
func (m *Map) Counts() map[Category]int {
	out := make(map[Category]int)
	for _, e := range m.Elements {
		out[e.Category]++
	}
	return out
}
