package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"svgmap/internal/geom"
	"svgmap/internal/mapel"
)

// cellToLonLat converts a map cell coordinate back to map units using bbox, zoom, and pan.
func (m Model) cellToLonLat(cx, cy, w, h int) (float64, float64, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	if w <= 1 || h <= 1 {
		return 0, 0, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	lon := m.bbox.MinX + nx*(m.bbox.MaxX-m.bbox.MinX)
	lat := m.bbox.MinY + ny*(m.bbox.MaxY-m.bbox.MinY)
	return lon, lat, true
}

// viewBBox is the map area covered by a w x h canvas.
func (m Model) viewBBox(w, h int) (geom.BBox, bool) {
	x0, y0, ok := m.cellToLonLat(0, h-1, w, h)
	if !ok {
		return geom.BBox{}, false
	}
	x1, y1, _ := m.cellToLonLat(w-1, 0, w, h)
	return geom.BBox{MinX: min(x0, x1), MinY: min(y0, y1), MaxX: max(x0, x1), MaxY: max(y0, y1)}, true
}

// onScreen returns the visible elements of the loaded map that intersect
// the canvas, in map order.
func (m Model) onScreen(w, h int) []mapel.Element {
	if m.doc == nil {
		return nil
	}
	vb, ok := m.viewBBox(w, h)
	if !ok {
		return nil
	}
	var out []mapel.Element
	for _, e := range m.ix.Search(vb) {
		if m.visible(e) {
			out = append(out, e)
		}
	}
	return out
}

func (m Model) renderAsciiMap(w, h int) string {
	lines := make([]string, h)
	for y := range lines {
		lines[y] = strings.Repeat(" ", w)
	}
	// High-resolution braille buffer for crisp lines/edges
	br := newBrailleBuf(w, h)

	for _, e := range m.onScreen(w, h) {
		geom.Walk(e.Geometry, func(g geom.Geometry) {
			switch s := g.(type) {
			case geom.Polygon:
				if m.showPolys {
					m.drawPolygon(br, s.Ring.Points, w, h)
				}
			case geom.LineString:
				if m.showLines {
					m.drawPolyline(br, s.Points, w, h)
				}
			case geom.Point:
				if m.showPoints {
					mx, my, ok := m.screenXYMicro(s.X, s.Y, w, h)
					if ok {
						br.setPixel(mx, my)
					}
				}
			}
		})
	}

	// Composite braille overlay onto base lines
	braLines := br.toLines()
	for y := 0; y < h && y < len(braLines); y++ {
		base := []rune(lines[y])
		over := []rune(braLines[y])
		for x := 0; x < len(base) && x < len(over); x++ {
			if over[x] != ' ' {
				base[x] = over[x]
			}
		}
		lines[y] = string(base)
	}

	// Hover highlight: draw an orange circle at the hovered vertex cell
	if m.hovering {
		cx := m.hoverMicX / 2
		cy := m.hoverMicY / 4
		if cy >= 0 && cy < len(lines) {
			r := []rune(lines[cy])
			if cx >= 0 && cx < len(r) {
				circle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("◯")
				lines[cy] = string(r[:cx]) + circle + string(r[cx+1:])
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) project(pts []geom.Point, w, h int) [][2]int {
	out := make([][2]int, 0, len(pts))
	for _, p := range pts {
		mx, my, ok := m.screenXYMicro(p.X, p.Y, w, h)
		if !ok {
			continue
		}
		out = append(out, [2]int{mx, my})
	}
	return out
}

func (m Model) drawPolyline(br *brailleBuf, pts []geom.Point, w, h int) {
	mic := m.project(pts, w, h)
	for i := 1; i < len(mic); i++ {
		br.drawLineMicro(mic[i-1][0], mic[i-1][1], mic[i][0], mic[i][1])
	}
	if len(mic) == 1 {
		br.setPixel(mic[0][0], mic[0][1])
	}
}

// drawPolygon fills the ring with the even-odd rule per microgrid scanline,
// then draws its edges.
func (m Model) drawPolygon(br *brailleBuf, ring []geom.Point, w, h int) {
	mic := m.project(ring, w, h)
	if len(mic) < 3 {
		m.drawPolyline(br, ring, w, h)
		return
	}
	hMic := h * 4
	for yMic := 0; yMic < hMic; yMic++ {
		var xs []int
		for i := range mic {
			a := mic[i]
			b := mic[(i+1)%len(mic)]
			if a[1] == b[1] { // horizontal edge: skip
				continue
			}
			y0, y1 := a[1], b[1]
			x0, x1 := a[0], b[0]
			if (yMic >= y0 && yMic < y1) || (yMic >= y1 && yMic < y0) {
				t := float64(yMic-y0) / float64(y1-y0)
				xs = append(xs, int(float64(x0)+t*float64(x1-x0)))
			}
		}
		sort.Ints(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for xMic := max(0, xs[i]); xMic <= min(xs[i+1], w*2-1); xMic++ {
				br.setPixel(xMic, yMic)
			}
		}
	}
	for i := range mic {
		a := mic[i]
		b := mic[(i+1)%len(mic)]
		br.drawLineMicro(a[0], a[1], b[0], b[1])
	}
}

// screenXYMicro maps map coordinates into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(lon, lat float64, w, h int) (int, int, bool) {
	if !(m.bbox.MaxX > m.bbox.MinX && m.bbox.MaxY > m.bbox.MinY) {
		return 0, 0, false
	}
	nx := (lon - m.bbox.MinX) / (m.bbox.MaxX - m.bbox.MinX)
	ny := (lat - m.bbox.MinY) / (m.bbox.MaxY - m.bbox.MinY)
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// inspectNearest finds the element closest to the viewport center.
func (m Model) inspectNearest(w, h int) (mapel.Element, float64, float64, bool) {
	if m.ix == nil {
		return mapel.Element{}, 0, 0, false
	}
	lon, lat, ok := m.cellToLonLat(w/2, h/2, w, h)
	if !ok {
		return mapel.Element{}, 0, 0, false
	}
	e, ok := m.ix.Nearest(lon, lat)
	return e, lon, lat, ok
}

// nearestVertex returns the microgrid position of the visible vertex closest
// to (hx, hy).
func (m Model) nearestVertex(hx, hy, w, h int) (int, int) {
	best := 1<<31 - 1
	bx, by := hx, hy
	for _, e := range m.onScreen(w, h) {
		eachVertex(e.Geometry, func(p geom.Point) {
			mx, my, ok := m.screenXYMicro(p.X, p.Y, w, h)
			if !ok {
				return
			}
			dx := mx - hx
			dy := my - hy
			if d := dx*dx + dy*dy; d < best {
				best = d
				bx, by = mx, my
			}
		})
	}
	return bx, by
}
