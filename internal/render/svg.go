package render

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"svgmap/internal/geom"
	"svgmap/internal/mapel"
)

//go:embed map-template.svg
var defaultTemplate string

var funcs = template.FuncMap{
	"num": geom.FormatNumber,
}

// Renderer executes an SVG map template. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer returns a renderer using the built-in template.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("map-template.svg").Funcs(funcs).Parse(defaultTemplate))}
}

// NewRendererFromFile parses the template at path. The template sees a
// Document and may call num to format numbers.
func NewRendererFromFile(path string) (*Renderer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := template.New(filepath.Base(path)).Funcs(funcs).Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return &Renderer{tmpl: t}, nil
}

// Render writes the SVG document of m to w.
func (r *Renderer) Render(w io.Writer, m *mapel.Map) error {
	return r.RenderDocument(w, NewDocument(m))
}

func (r *Renderer) RenderDocument(w io.Writer, d Document) error {
	return r.tmpl.Execute(w, d)
}
