// Package batch converts GeoJSON map documents to SVG files.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"svgmap/internal/geom"
	"svgmap/internal/mapel"
	"svgmap/internal/render"
)

// Options controls where output goes and how many documents run at once.
type Options struct {
	// OutDir receives the output files. Empty means next to each input.
	OutDir string

	// PNG also writes a raster preview of PNGWidth pixels.
	PNG      bool
	PNGWidth int

	// Workers is the number of documents converted concurrently.
	// 0 uses runtime.NumCPU(); 1 converts serially.
	Workers int

	// Progress is called after each document, successful or not.
	Progress func(done, total int)
}

// DefaultOptions returns options writing SVG only, beside the inputs.
func DefaultOptions() Options {
	return Options{
		PNGWidth: 1024,
		Workers:  runtime.NumCPU(),
	}
}

// Result describes one converted document.
type Result struct {
	Input    string
	SVG      string
	PNG      string
	Elements int
	Skipped  int
	BBox     geom.BBox
}

// Converter turns map documents into output files.
type Converter struct {
	renderer *render.Renderer
	opts     Options
	log      logrus.FieldLogger
}

// New returns a converter. A nil renderer uses the built-in template and a
// nil logger discards everything.
func New(r *render.Renderer, opts Options, log logrus.FieldLogger) *Converter {
	if r == nil {
		r = render.NewRenderer()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Converter{renderer: r, opts: opts, log: log}
}

// Scan lists the *.json files directly inside dir, sorted by name.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Expand replaces every directory argument by the documents Scan finds in
// it. File arguments are kept as given.
func Expand(args []string) ([]string, error) {
	var out []string
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, a)
			continue
		}
		found, err := Scan(a)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

// OutputPath maps in to the same base name with ext, in outDir when set.
func OutputPath(in, outDir, ext string) string {
	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in)) + ext
	if outDir == "" {
		return filepath.Join(filepath.Dir(in), base)
	}
	return filepath.Join(outDir, base)
}

// ConvertFile loads one document and writes its SVG, and its PNG when
// enabled. Nothing is written when the document fails to load.
func (c *Converter) ConvertFile(ctx context.Context, path string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	m, err := mapel.LoadFile(path)
	if err != nil {
		return Result{}, err
	}
	res := Result{
		Input:    path,
		SVG:      OutputPath(path, c.opts.OutDir, ".svg"),
		Elements: len(m.Elements),
		Skipped:  m.Skipped,
		BBox:     m.BBox(),
	}
	log := c.log.WithFields(logrus.Fields{"file": path})
	if m.Skipped > 0 {
		log.WithFields(logrus.Fields{"skipped": m.Skipped}).Debug("features without a known category were dropped")
	}
	if res.BBox == (geom.BBox{}) {
		log.Warn("map has no district, viewBox is empty")
	}

	var buf bytes.Buffer
	if err := c.renderer.Render(&buf, m); err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := writeFile(res.SVG, buf.Bytes()); err != nil {
		return Result{}, err
	}

	if c.opts.PNG {
		buf.Reset()
		if err := render.RasterPNG(&buf, m, c.opts.PNGWidth); err != nil {
			return Result{}, fmt.Errorf("%s: %w", path, err)
		}
		res.PNG = OutputPath(path, c.opts.OutDir, ".png")
		if err := writeFile(res.PNG, buf.Bytes()); err != nil {
			return Result{}, err
		}
	}

	log.WithFields(logrus.Fields{
		"svg":      res.SVG,
		"elements": res.Elements,
	}).Info("generated")
	return res, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Run converts every path. A failing document never stops the others:
// its error is collected and the remaining documents are still converted.
// Results are returned in input order, failed documents left out.
func (c *Converter) Run(ctx context.Context, paths []string) ([]Result, []error) {
	if len(paths) == 0 {
		return nil, nil
	}

	workers := c.opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	type convertResult struct {
		index int
		res   Result
		err   error
	}

	jobs := make(chan int, len(paths))
	results := make(chan convertResult, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				res, err := c.ConvertFile(ctx, paths[index])
				results <- convertResult{index: index, res: res, err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	byIndex := make(map[int]Result, len(paths))
	errIndex := make(map[int]error)
	done := 0
	for r := range results {
		done++
		if c.opts.Progress != nil {
			c.opts.Progress(done, len(paths))
		}
		if r.err != nil {
			c.log.WithFields(logrus.Fields{"file": paths[r.index]}).WithError(r.err).Error("conversion failed")
			errIndex[r.index] = r.err
			continue
		}
		byIndex[r.index] = r.res
	}

	var (
		out  []Result
		errs []error
	)
	for i := range paths {
		if res, ok := byIndex[i]; ok {
			out = append(out, res)
		}
		if err, ok := errIndex[i]; ok {
			errs = append(errs, err)
		}
	}
	return out, errs
}
