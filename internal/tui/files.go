package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/tidwall/gjson"

	"svgmap/internal/geom"
	"svgmap/internal/mapel"
)

// pastedCategory styles shapes that arrive without a category.
const pastedCategory = mapel.Building

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".geojson" || ext == ".json" || ext == ".wkt" {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

func isDocument(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	return ext == ".geojson" || ext == ".json"
}

// loadPath loads a map document or a WKT shape into the model.
func (m *Model) loadPath(p string) {
	var doc *mapel.Map
	switch ext := strings.ToLower(filepath.Ext(p)); {
	case isDocument(p):
		d, err := mapel.LoadFile(p)
		if err != nil {
			m.status = "load error: " + err.Error()
			return
		}
		doc = d
	case ext == ".wkt":
		data, err := os.ReadFile(p)
		if err != nil {
			m.status = "load error: " + err.Error()
			return
		}
		g, err := geom.ParseWKT(string(data))
		if err != nil {
			m.status = "wkt error: " + err.Error()
			return
		}
		doc = single(g)
	default:
		m.status = "unsupported file: " + ext
		return
	}
	m.selPath = p
	m.setMap(doc)
	m.status = "loaded: " + filepath.Base(p) + "  " + summary(doc)
}

// parsePasted reads a FeatureCollection, a single Feature, a bare GeoJSON
// geometry or WKT.
func parsePasted(s string) (*mapel.Map, error) {
	if !strings.HasPrefix(s, "{") {
		g, err := geom.ParseWKT(s)
		if err != nil {
			return nil, err
		}
		return single(g), nil
	}
	if !gjson.Valid(s) {
		return nil, fmt.Errorf("%w: invalid json", mapel.ErrMalformedDocument)
	}
	doc := gjson.Parse(s)
	switch {
	case doc.Get("features").Exists():
		return mapel.Load(doc.Get("features"))
	case doc.Get("type").String() == "Feature":
		e, ok, err := mapel.FromFeature(doc)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("feature has no known category: %q", doc.Get("id").String())
		}
		return &mapel.Map{Elements: []mapel.Element{e}}, nil
	}
	g, err := geom.Parse(doc)
	if err != nil {
		return nil, err
	}
	return single(g), nil
}

func single(g geom.Geometry) *mapel.Map {
	return &mapel.Map{Elements: []mapel.Element{{Category: pastedCategory, Geometry: g}}}
}

func summary(doc *mapel.Map) string {
	return fmt.Sprintf("elements=%d skipped=%d", len(doc.Elements), doc.Skipped)
}
