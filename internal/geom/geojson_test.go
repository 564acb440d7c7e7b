package geom

import (
	"errors"
	"testing"

	"github.com/kr/pretty"
)

func TestParseVariants(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Geometry
	}{
		{
			name: "point",
			json: `{"type":"Point","coordinates":[1.5,-2]}`,
			want: Point{X: 1.5, Y: -2},
		},
		{
			name: "point with altitude",
			json: `{"type":"Point","coordinates":[1,2,30]}`,
			want: Point{X: 1, Y: 2},
		},
		{
			name: "linestring",
			json: `{"type":"LineString","coordinates":[[0,0],[1,2],[3,4]]}`,
			want: LineString{Points: []Point{{0, 0}, {1, 2}, {3, 4}}},
		},
		{
			name: "empty linestring",
			json: `{"type":"LineString","coordinates":[]}`,
			want: LineString{Points: []Point{}},
		},
		{
			name: "multipoint",
			json: `{"type":"MultiPoint","coordinates":[[0,1],[2,3]]}`,
			want: Composite{Members: []Geometry{Point{X: 0, Y: 1}, Point{X: 2, Y: 3}}},
		},
		{
			name: "multilinestring",
			json: `{"type":"MultiLineString","coordinates":[[[0,0],[1,1]],[[2,2]]]}`,
			want: Composite{Members: []Geometry{
				LineString{Points: []Point{{0, 0}, {1, 1}}},
				LineString{Points: []Point{{2, 2}}},
			}},
		},
		{
			name: "geometry collection",
			json: `{"type":"GeometryCollection","geometries":[
				{"type":"Point","coordinates":[5,5]},
				{"type":"GeometryCollection","geometries":[]}
			]}`,
			want: Composite{Members: []Geometry{
				Point{X: 5, Y: 5},
				Composite{Members: []Geometry{}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSON(tt.json)
			if err != nil {
				t.Fatalf("ParseJSON failed: %v", err)
			}
			if diff := pretty.Diff(tt.want, got); len(diff) > 0 {
				t.Errorf("shape mismatch: %v", diff)
			}
		})
	}
}

func TestParsePolygonKeepsOuterRing(t *testing.T) {
	g, err := ParseJSON(`{"type":"Polygon","coordinates":[
		[[0,0],[10,0],[10,10],[0,10],[0,0]],
		[[2,2],[3,2],[3,3],[2,2]]
	]}`)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	pg, ok := g.(Polygon)
	if !ok {
		t.Fatalf("Expected Polygon, got %T", g)
	}
	if n := NumPoints(pg); n != 5 {
		t.Errorf("Expected 5 points from ring 0, got %d", n)
	}
	want := BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}
	if got := pg.BBox(); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestParseMultiPolygonFlattensToRings(t *testing.T) {
	g, err := ParseJSON(`{"type":"MultiPolygon","coordinates":[
		[[[0,0],[1,0],[1,1],[0,0]], [[0.2,0.2],[0.4,0.2],[0.2,0.2]]],
		[[[5,5],[6,5],[6,6],[5,5]]],
		[[[9,9],[9,8],[8,8],[9,9]]]
	]}`)
	if err != nil {
		t.Fatalf("ParseJSON failed: %v", err)
	}
	c, ok := g.(Composite)
	if !ok {
		t.Fatalf("Expected Composite, got %T", g)
	}
	if len(c.Members) != 3 {
		t.Fatalf("Expected 3 members, got %d", len(c.Members))
	}
	for i, m := range c.Members {
		ls, ok := m.(LineString)
		if !ok {
			t.Errorf("member %d: expected LineString, got %T", i, m)
			continue
		}
		if len(ls.Points) != 4 {
			t.Errorf("member %d: expected outer ring of 4 points, got %d", i, len(ls.Points))
		}
	}
	first := c.Members[0].(LineString)
	if diff := pretty.Diff([]Point{{0, 0}, {1, 0}, {1, 1}, {0, 0}}, first.Points); len(diff) > 0 {
		t.Errorf("ring mismatch: %v", diff)
	}
}

func TestParseUnsupportedType(t *testing.T) {
	for _, js := range []string{
		`{"type":"Circle","coordinates":[0,0]}`,
		`{"type":"Feature","geometry":null}`,
		`{"type":"GeometryCollection","geometries":[{"type":"Curve"}]}`,
	} {
		g, err := ParseJSON(js)
		if !errors.Is(err, ErrUnsupportedGeometryType) {
			t.Errorf("%s: expected unsupported type error, got %v", js, err)
		}
		if g != nil {
			t.Errorf("%s: expected nil geometry, got %#v", js, g)
		}
		var ue *UnsupportedGeometryTypeError
		if !errors.As(err, &ue) || ue.Type == "" {
			t.Errorf("%s: expected *UnsupportedGeometryTypeError with type, got %#v", js, err)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", `{"type":`},
		{"not an object", `[1,2]`},
		{"missing type", `{"coordinates":[0,0]}`},
		{"missing coordinates", `{"type":"Point"}`},
		{"short pair", `{"type":"Point","coordinates":[1]}`},
		{"non numeric pair", `{"type":"Point","coordinates":["a","b"]}`},
		{"scalar coordinates", `{"type":"LineString","coordinates":7}`},
		{"short pair in line", `{"type":"LineString","coordinates":[[0,0],[1]]}`},
		{"polygon without rings", `{"type":"Polygon","coordinates":[]}`},
		{"multipolygon without rings", `{"type":"MultiPolygon","coordinates":[[]]}`},
		{"missing geometries", `{"type":"GeometryCollection"}`},
		{"nested malformed", `{"type":"GeometryCollection","geometries":[{"type":"Point","coordinates":[]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ParseJSON(tt.json)
			if !errors.Is(err, ErrMalformedGeometry) {
				t.Fatalf("Expected malformed geometry error, got %v", err)
			}
			if g != nil {
				t.Errorf("Expected nil geometry, got %#v", g)
			}
		})
	}
}
