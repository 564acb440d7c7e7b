package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"svgmap/internal/batch"
	"svgmap/internal/geom"
)

// convertedMsg reports the outcome of writing the SVG of the loaded document.
type convertedMsg struct {
	res batch.Result
	err error
}

func convertCmd(conv *batch.Converter, path string) tea.Cmd {
	return func() tea.Msg {
		res, err := conv.ConvertFile(context.Background(), path)
		return convertedMsg{res: res, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
		}
	case convertedMsg:
		if msg.err != nil {
			m.status = "convert error: " + msg.err.Error()
		} else {
			m.status = fmt.Sprintf("wrote %s  elements=%d", msg.res.SVG, msg.res.Elements)
		}
		return m, nil
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showLayers {
			switch msg.String() {
			case "enter", " ":
				m.toggleSelectedLayer()
				return m, nil
			case "up", "down", "k", "j", "home", "end":
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			}
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			m.inspectPopup = ""
			m.showLayers = false
		case "1":
			m.showPoints = !m.showPoints
			m.status = fmt.Sprintf("points: %v", m.showPoints)
		case "2":
			m.showLines = !m.showLines
			m.status = fmt.Sprintf("lines: %v", m.showLines)
		case "3":
			m.showPolys = !m.showPolys
			m.status = fmt.Sprintf("polys: %v", m.showPolys)
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "0":
			m.zoom = 1.0
			m.offsetX, m.offsetY = 0, 0
			m.status = "view reset"
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.layout().contentH-2)
			}
		case "p":
			m.pasteMode = true
			m.ta.SetValue("")
			m.status = "paste mode"
			m.ta.Focus()
			return m, nil
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showLayers = !m.showLayers
			if m.showLayers {
				m.refreshLayers()
			}
		case "i":
			m.inspect()
		case "s":
			if m.conv == nil || !isDocument(m.selPath) {
				m.status = "save: no GeoJSON document loaded"
				return m, nil
			}
			m.status = "converting " + filepath.Base(m.selPath) + "..."
			return m, convertCmd(m.conv, m.selPath)
		case "l":
			// toggle all layers
			all := m.showPoints && m.showLines && m.showPolys
			m.showPoints = !all
			m.showLines = !all
			m.showPolys = !all
			m.status = fmt.Sprintf("layers: pts=%v ls=%v poly=%v", m.showPoints, m.showLines, m.showPolys)
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY--
		case "down":
			m.offsetY++
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		m.status = "view mode"
		return m, nil
	case "enter":
		src := strings.TrimSpace(m.ta.Value())
		if src == "" {
			m.status = "paste: empty"
			return m, nil
		}
		doc, err := parsePasted(src)
		if err != nil {
			m.status = "paste error: " + err.Error()
			return m, nil
		}
		m.selPath = ""
		m.setMap(doc)
		m.status = "rendered paste  " + summary(doc)
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

// inspect describes the element nearest to the viewport center.
func (m *Model) inspect() {
	l := m.layout()
	e, lon, lat, ok := m.inspectNearest(l.mapW, l.mapH)
	if !ok {
		m.inspectPopup = ""
		m.status = "no element nearby"
		return
	}
	name := filepath.Base(m.selPath)
	if m.selPath == "" {
		name = "<pasted>"
	}
	bb := e.BBox()
	s := e.Style()
	meta := []string{
		fmt.Sprintf("map: %s", name),
		fmt.Sprintf("class: %s (%s)", e.Category, e.Category.Key()),
		fmt.Sprintf("shape: %s, %d points", e.Geometry.Kind(), geom.NumPoints(e.Geometry)),
		fmt.Sprintf("bbox: [%.3f, %.3f, %.3f, %.3f]", bb.MinX, bb.MinY, bb.MaxX, bb.MaxY),
		fmt.Sprintf("stroke: %s  fill: %s", s.Stroke, s.Fill),
		fmt.Sprintf("center: x=%.3f y=%.3f", lon, lat),
	}
	m.inspectPopup = strings.Join(meta, "\n")
	m.status = "inspect: " + e.Category.String()
}

// hover tracks the pointer over the map area and snaps it to the nearest vertex.
func (m *Model) hover(x, y int) {
	l := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
	}
	if x < l.mapX || x >= l.mapX+l.mapW || y < l.mapY || y >= l.mapY+l.mapH {
		m.hovering = false
		return
	}
	m.hovering = true
	m.hoverCellX = x - l.mapX
	m.hoverCellY = y - l.mapY
	m.hoverLon, m.hoverLat, m.hoverHasGeo = m.cellToLonLat(m.hoverCellX, m.hoverCellY, l.mapW, l.mapH)
	m.hoverMicX, m.hoverMicY = m.nearestVertex(m.hoverCellX*2, m.hoverCellY*4, l.mapW, l.mapH)
}
