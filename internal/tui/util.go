package tui

import "svgmap/internal/geom"

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the screen geometry shared by View and mouse handling.
type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

func (m Model) layout() layout {
	l := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	sw := 0
	if m.showSidebar {
		sw = sidebarWidth
		l.mapX = sidebarWidth + 1
	}
	l.mapW = max(10, l.contentW-sw-1)
	l.mapH = l.contentH
	return l
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// eachVertex calls fn for every coordinate of g.
func eachVertex(g geom.Geometry, fn func(geom.Point)) {
	geom.Walk(g, func(leaf geom.Geometry) {
		switch s := leaf.(type) {
		case geom.Point:
			fn(s)
		case geom.LineString:
			for _, p := range s.Points {
				fn(p)
			}
		case geom.Polygon:
			for _, p := range s.Ring.Points {
				fn(p)
			}
		}
	})
}
