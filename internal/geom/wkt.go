package geom

import (
	"strconv"
	"strings"
)

// ParseWKT parses a subset of WKT into the same shapes Parse produces.
// Supported: POINT(x y), MULTIPOINT(x y, ...), LINESTRING(x y, ...),
// MULTILINESTRING((x y, ...), ...), POLYGON((x y, ...), ...).
// Polygon holes are dropped like their GeoJSON counterparts.
func ParseWKT(wkt string) (Geometry, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, malformed("", "empty wkt")
	}
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return nil, malformed("", "wkt: missing parentheses")
	}
	tag := strings.ToUpper(strings.TrimSpace(s[:i]))
	body := s[i+1 : j]
	switch tag {
	case "POINT":
		pts, err := parseTuples(tag, body)
		if err != nil {
			return nil, err
		}
		if len(pts) != 1 {
			return nil, malformed(tag, "want 1 position, got %d", len(pts))
		}
		return pts[0], nil
	case "MULTIPOINT":
		// both "(1 2, 3 4)" and "((1 2), (3 4))" are valid
		pts, err := parseTuples(tag, strings.NewReplacer("(", "", ")", "").Replace(body))
		if err != nil {
			return nil, err
		}
		members := make([]Geometry, 0, len(pts))
		for _, p := range pts {
			members = append(members, p)
		}
		return Composite{Members: members}, nil
	case "LINESTRING":
		pts, err := parseTuples(tag, body)
		if err != nil {
			return nil, err
		}
		return LineString{Points: pts}, nil
	case "POLYGON":
		rings, err := parseRings(tag, body)
		if err != nil {
			return nil, err
		}
		return Polygon{Ring: rings[0]}, nil
	case "MULTILINESTRING":
		rings, err := parseRings(tag, body)
		if err != nil {
			return nil, err
		}
		members := make([]Geometry, 0, len(rings))
		for _, r := range rings {
			members = append(members, r)
		}
		return Composite{Members: members}, nil
	}
	return nil, &UnsupportedGeometryTypeError{Type: tag}
}

// parseRings splits "(x y, ...), (x y, ...)" into line strings.
func parseRings(tag, body string) ([]LineString, error) {
	body = strings.TrimSpace(body)
	if !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
		return nil, malformed(tag, "wkt: rings must be parenthesized")
	}
	var rings []LineString
	for _, rp := range strings.Split(body[1:len(body)-1], ")") {
		rp = strings.TrimSpace(rp)
		rp = strings.TrimPrefix(rp, ",")
		rp = strings.TrimSpace(rp)
		rp = strings.TrimPrefix(rp, "(")
		if strings.TrimSpace(rp) == "" {
			continue
		}
		pts, err := parseTuples(tag, rp)
		if err != nil {
			return nil, err
		}
		rings = append(rings, LineString{Points: pts})
	}
	if len(rings) == 0 {
		return nil, malformed(tag, "wkt: no rings")
	}
	return rings, nil
}

// parseTuples reads comma separated "x y" tuples; extra ordinates are ignored.
func parseTuples(tag, block string) ([]Point, error) {
	var out []Point
	for _, tup := range strings.Split(block, ",") {
		parts := strings.Fields(strings.TrimSpace(tup))
		if len(parts) < 2 {
			return nil, malformed(tag, "wkt: position %q has %d values, want 2", strings.TrimSpace(tup), len(parts))
		}
		x, err1 := strconv.ParseFloat(parts[0], 64)
		y, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			return nil, malformed(tag, "wkt: position %q is not numeric", strings.TrimSpace(tup))
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out, nil
}
