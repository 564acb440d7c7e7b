package geom

import (
	"github.com/tidwall/gjson"
)

// ParseJSON parses a single GeoJSON geometry object.
func ParseJSON(json string) (Geometry, error) {
	if !gjson.Valid(json) {
		return nil, malformed("", "invalid json")
	}
	return Parse(gjson.Parse(json))
}

// Parse builds the shape described by a GeoJSON geometry object.
//
// Polygons keep only their outer ring, and each polygon of a MultiPolygon
// becomes a bare LineString member of the returned Composite.
func Parse(g gjson.Result) (Geometry, error) {
	if !g.IsObject() {
		return nil, malformed("", "geometry is not an object")
	}
	t := g.Get("type")
	if !t.Exists() {
		return nil, malformed("", "missing type")
	}
	gt := t.String()
	if gt == "GeometryCollection" {
		geoms := g.Get("geometries")
		if !geoms.Exists() {
			return nil, malformed(gt, "missing geometries")
		}
		return orNil(parseMulti(gt, geoms, Parse))
	}
	switch gt {
	case "Point", "LineString", "Polygon", "MultiPoint", "MultiLineString", "MultiPolygon":
	default:
		return nil, &UnsupportedGeometryTypeError{Type: gt}
	}
	coords := g.Get("coordinates")
	if !coords.Exists() {
		return nil, malformed(gt, "missing coordinates")
	}
	switch gt {
	case "Point":
		return orNil(parsePoint(gt, coords))
	case "LineString":
		return orNil(parseLineString(gt, coords))
	case "Polygon":
		ring, err := parseOuterRing(gt, coords)
		if err != nil {
			return nil, err
		}
		return Polygon{Ring: ring}, nil
	case "MultiPoint":
		return orNil(parseMulti(gt, coords, func(v gjson.Result) (Geometry, error) {
			return orNil(parsePoint(gt, v))
		}))
	case "MultiLineString":
		return orNil(parseMulti(gt, coords, func(v gjson.Result) (Geometry, error) {
			return orNil(parseLineString(gt, v))
		}))
	default: // MultiPolygon
		return orNil(parseMulti(gt, coords, func(v gjson.Result) (Geometry, error) {
			return orNil(parseOuterRing(gt, v))
		}))
	}
}

// orNil drops the partial shape that accompanies a parse error.
func orNil[T Geometry](g T, err error) (Geometry, error) {
	if err != nil {
		return nil, err
	}
	return g, nil
}

// parsePoint reads a position. Positions carrying altitude keep x and y.
func parsePoint(gt string, v gjson.Result) (Point, error) {
	if !v.IsArray() {
		return Point{}, malformed(gt, "position is not an array")
	}
	a := v.Array()
	if len(a) < 2 {
		return Point{}, malformed(gt, "position has %d values, want 2", len(a))
	}
	if a[0].Type != gjson.Number || a[1].Type != gjson.Number {
		return Point{}, malformed(gt, "position %s is not numeric", v.Raw)
	}
	return Point{X: a[0].Float(), Y: a[1].Float()}, nil
}

func parseLineString(gt string, v gjson.Result) (LineString, error) {
	if !v.IsArray() {
		return LineString{}, malformed(gt, "line is not an array")
	}
	a := v.Array()
	pts := make([]Point, 0, len(a))
	for _, el := range a {
		pt, err := parsePoint(gt, el)
		if err != nil {
			return LineString{}, err
		}
		pts = append(pts, pt)
	}
	return LineString{Points: pts}, nil
}

// parseOuterRing returns ring 0 of a polygon coordinate array.
func parseOuterRing(gt string, v gjson.Result) (LineString, error) {
	if !v.IsArray() {
		return LineString{}, malformed(gt, "polygon is not an array")
	}
	rings := v.Array()
	if len(rings) == 0 {
		return LineString{}, malformed(gt, "polygon has no outer ring")
	}
	return parseLineString(gt, rings[0])
}

func parseMulti(gt string, v gjson.Result, each func(gjson.Result) (Geometry, error)) (Composite, error) {
	if !v.IsArray() {
		return Composite{}, malformed(gt, "members are not an array")
	}
	a := v.Array()
	members := make([]Geometry, 0, len(a))
	for _, el := range a {
		m, err := each(el)
		if err != nil {
			return Composite{}, err
		}
		members = append(members, m)
	}
	return Composite{Members: members}, nil
}
