package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kr/pretty"

	"svgmap/internal/geom"
	"svgmap/internal/mapel"
)

func testMap() *mapel.Map {
	return &mapel.Map{Elements: []mapel.Element{
		{Category: mapel.District, Geometry: geom.Polygon{Ring: geom.LineString{Points: []geom.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
		}}}},
		{Category: mapel.Road, Geometry: geom.LineString{Points: []geom.Point{{X: 0, Y: 5}, {X: 10, Y: 5}}}},
		{Category: mapel.Tree, Geometry: geom.Point{X: 2.5, Y: 7.125}},
	}}
}

func TestNewDocument(t *testing.T) {
	d := NewDocument(testMap())
	want := ViewBox{X: -1, Y: -1, Width: 12, Height: 12}
	if d.BBox != want {
		t.Errorf("viewbox mismatch: %v", pretty.Diff(want, d.BBox))
	}
	if len(d.Classes) != len(mapel.ClassOrder) {
		t.Fatalf("Expected %d classes, got %d", len(mapel.ClassOrder), len(d.Classes))
	}
	if d.Classes[0].Name != "Building" || d.Classes[len(d.Classes)-1].Name != "River" {
		t.Errorf("unexpected class order: first %s, last %s", d.Classes[0].Name, d.Classes[len(d.Classes)-1].Name)
	}
	var classes []string
	for _, it := range d.Items {
		classes = append(classes, it.Class)
	}
	if diff := pretty.Diff([]string{"District", "Road", "Tree"}, classes); len(diff) > 0 {
		t.Errorf("item order mismatch: %v", diff)
	}
}

func TestNewDocumentWithoutDistrict(t *testing.T) {
	d := NewDocument(&mapel.Map{})
	if d.BBox != (ViewBox{}) {
		t.Errorf("Expected zero viewbox, got %+v", d.BBox)
	}
	if len(d.Items) != 0 {
		t.Errorf("Expected no items, got %d", len(d.Items))
	}
}

func TestRenderDefaultTemplate(t *testing.T) {
	var buf bytes.Buffer
	if err := NewRenderer().Render(&buf, testMap()); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`viewBox="-1 -1 12 12"`,
		`.Road { stroke: #FFF2C8; stroke-width: 8; fill: none;`,
		`.River { stroke: #779988; stroke-width: 36.79280025660657;`,
		`.Building { stroke: none; stroke-width: 1; fill: #D6A36E;`,
		`filter: url(#shadow); } /* z-order 0 */`,
		`<polyline class="Road" points="0,5 10,5 " />`,
		`<circle class="Tree" cx="2.5" cy="7.125" />`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("output does not end with </svg>")
	}
	district := strings.Index(out, `<polygon class="District"`)
	road := strings.Index(out, `<polyline class="Road"`)
	if district < 0 || road < 0 || district > road {
		t.Error("items are not in map order")
	}
}

func TestRenderFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.svg")
	tmpl := `<svg viewBox="{{num .BBox.X}} {{num .BBox.Y}} {{num .BBox.Width}} {{num .BBox.Height}}">{{range .Items}}{{.SVG}}{{end}}</svg>`
	if err := os.WriteFile(path, []byte(tmpl), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := NewRendererFromFile(path)
	if err != nil {
		t.Fatalf("NewRendererFromFile failed: %v", err)
	}
	var buf bytes.Buffer
	if err := r.Render(&buf, &mapel.Map{Elements: testMap().Elements[2:]}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	want := `<svg viewBox="0 0 0 0"><circle class="Tree" cx="2.5" cy="7.125" /></svg>`
	if buf.String() != want {
		t.Errorf("Expected %s, got %s", want, buf.String())
	}
}

func TestRenderFromFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := NewRendererFromFile(filepath.Join(dir, "missing.svg")); err == nil {
		t.Error("Expected error for missing template")
	}
	bad := filepath.Join(dir, "bad.svg")
	if err := os.WriteFile(bad, []byte(`{{range .Items}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewRendererFromFile(bad); err == nil {
		t.Error("Expected parse error")
	}
}
