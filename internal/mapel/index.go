package mapel

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"svgmap/internal/geom"
)

// Index answers spatial queries over the elements of a map.
type Index struct {
	rtree    *rtreego.Rtree
	elements []Element
}

// indexedElement wraps an element position for R-tree storage.
type indexedElement struct {
	pos    int
	bounds geom.BBox
}

// Bounds implements rtreego.Spatial.
func (ie *indexedElement) Bounds() rtreego.Rect {
	return toRect(ie.bounds)
}

// toRect converts b to an R-tree rectangle. Degenerate sides get a small
// length since the tree rejects zero-size rectangles.
func toRect(b geom.BBox) rtreego.Rect {
	const epsilon = 1e-9
	w, h := b.Width(), b.Height()
	if w < epsilon {
		w = epsilon
	}
	if h < epsilon {
		h = epsilon
	}
	rect, _ := rtreego.NewRect(rtreego.Point{b.MinX, b.MinY}, []float64{w, h})
	return rect
}

// Index builds an R-tree over the element boxes. Elements without
// coordinates are left out.
func (m *Map) Index() *Index {
	ix := &Index{
		rtree:    rtreego.NewTree(2, 25, 50),
		elements: m.Elements,
	}
	for i, e := range m.Elements {
		bb := e.BBox()
		if bb.IsEmpty() {
			continue
		}
		ix.rtree.Insert(&indexedElement{pos: i, bounds: bb})
	}
	return ix
}

// Size returns the number of indexed elements.
func (ix *Index) Size() int { return ix.rtree.Size() }

// Search returns the elements whose box intersects bb, in map order.
func (ix *Index) Search(bb geom.BBox) []Element {
	if bb.IsEmpty() {
		return nil
	}
	spatials := ix.rtree.SearchIntersect(toRect(bb))
	pos := make([]int, 0, len(spatials))
	for _, s := range spatials {
		ie := s.(*indexedElement)
		// the epsilon padding can report near misses
		if ie.bounds.Intersects(bb) {
			pos = append(pos, ie.pos)
		}
	}
	sort.Ints(pos)
	out := make([]Element, 0, len(pos))
	for _, p := range pos {
		out = append(out, ix.elements[p])
	}
	return out
}

// Nearest returns the element whose box is closest to (x, y).
func (ix *Index) Nearest(x, y float64) (Element, bool) {
	s := ix.rtree.NearestNeighbor(rtreego.Point{x, y})
	if s == nil {
		return Element{}, false
	}
	return ix.elements[s.(*indexedElement).pos], true
}
