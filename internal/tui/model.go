// Package tui is a terminal previewer for map documents.
package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"svgmap/internal/batch"
	"svgmap/internal/geom"
	"svgmap/internal/mapel"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	doc  *mapel.Map
	ix   *mapel.Index
	bbox geom.BBox
	conv *batch.Converter

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// shape layers
	showPoints bool
	showLines  bool
	showPolys  bool

	// category layers, toggled from the layer table
	hidden     map[mapel.Category]bool
	showLayers bool
	tbl        table.Model

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
}

// New returns an empty previewer. conv writes the SVG of the loaded
// document on request.
func New(conv *batch.Converter) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "svgmap ready",
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
		hidden:      map[mapel.Category]bool{},
		conv:        conv,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Maps"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste a GeoJSON geometry, feature or collection, or WKT. Enter renders; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithColumns(layerColumns), table.WithFocused(true))
	m.tbl.SetHeight(len(mapel.ClassOrder) + 1)
	m.refreshDir()
	return m
}

// NewWithPath preloads a document at launch.
func NewWithPath(conv *batch.Converter, path string) Model {
	m := New(conv)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// setMap replaces the displayed map and resets the viewport onto it.
func (m *Model) setMap(doc *mapel.Map) {
	m.doc = doc
	m.ix = doc.Index()
	m.bbox = fitBox(doc)
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.inspectPopup = ""
	m.hovering = false
	m.hoverHasGeo = false
	if m.showLayers {
		m.refreshLayers()
	}
}

// fitBox is the area shown at zoom 1: the district box, or every element
// when the map has no district.
func fitBox(doc *mapel.Map) geom.BBox {
	bb := doc.BBox()
	if bb == (geom.BBox{}) {
		bb = doc.Extent()
	}
	if bb.Width() == 0 || bb.Height() == 0 {
		bb = geom.BBox{MinX: bb.MinX - 0.5, MinY: bb.MinY - 0.5, MaxX: bb.MaxX + 0.5, MaxY: bb.MaxY + 0.5}
	}
	return bb
}
