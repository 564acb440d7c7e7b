package geom

import (
	"strings"
	"testing"
)

func TestPointSVG(t *testing.T) {
	got := Point{X: 12.3456789012345, Y: -0.1}.SVG("Road")
	want := `<circle class="Road" cx="12.3456789012345" cy="-0.1" />`
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestLineAndPolygonSVG(t *testing.T) {
	pts := []Point{{0, 0}, {1.5, 2}, {3, 4.25}}
	tests := []struct {
		name string
		g    Geometry
		want string
	}{
		{"polyline", LineString{Points: pts}, `<polyline class="Wall" points="0,0 1.5,2 3,4.25 " />`},
		{"polygon", Polygon{Ring: LineString{Points: pts}}, `<polygon class="Wall" points="0,0 1.5,2 3,4.25 " />`},
		{"empty polyline", LineString{}, `<polyline class="Wall" points="" />`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.SVG("Wall"); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCompositeSVG(t *testing.T) {
	c := Composite{Members: []Geometry{
		Point{X: 1, Y: 2},
		Composite{Members: []Geometry{LineString{Points: []Point{{0, 0}, {1, 1}}}}},
	}}
	want := `<circle class="Tree" cx="1" cy="2" />` + "\n" +
		`<polyline class="Tree" points="0,0 1,1 " />` + "\n" + "\n"
	if got := c.SVG("Tree"); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if got := (Composite{}).SVG("Tree"); got != "" {
		t.Errorf("Expected empty fragment, got %q", got)
	}
}

func TestFormatNumberIsExact(t *testing.T) {
	tests := map[float64]string{
		0:                   "0",
		10:                  "10",
		-3.5:                "-3.5",
		0.1:                 "0.1",
		1e-7:                "0.0000001",
		1234567.125:         "1234567.125",
		36.79280025660657:   "36.79280025660657",
		0.30000000000000004: "0.30000000000000004",
	}
	for v, want := range tests {
		if got := FormatNumber(v); got != want {
			t.Errorf("FormatNumber(%v): expected %s, got %s", v, want, got)
		}
		if strings.ContainsAny(FormatNumber(v), "eE") {
			t.Errorf("FormatNumber(%v) used an exponent", v)
		}
	}
}
