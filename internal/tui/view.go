package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l := m.layout()

	// Header
	header := titleStyle.Render(" svgmap ─ map document previewer ")
	header = lipgloss.NewStyle().Width(l.contentW).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, l.contentH-2)
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	var mapView string
	switch {
	case m.showLayers:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(l.mapW, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(l.mapH-2, len(m.tbl.Rows())+1))
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(l.mapW, l.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.pasteMode:
		m.ta.SetWidth(l.mapW)
		m.ta.SetHeight(min(l.mapH, 12))
		mapView = lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(l.mapW).Height(l.mapH).Render(m.renderAsciiMap(l.mapW, l.mapH))
	}

	// Inspect popup, placed center-left above the body
	popup := ""
	if m.inspectPopup != "" && !m.showLayers {
		maxPopupW := max(20, min(48, l.contentW/2))
		box := popupStyle.MaxWidth(maxPopupW).Render(m.inspectPopup)
		popup = lipgloss.Place(l.contentW, lipgloss.Height(box), lipgloss.Left, lipgloss.Center, box)
	}

	body := mapView
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer / help
	st := dimStyle
	if strings.Contains(m.status, "error") {
		st = statusError
	}
	status := st.Render(" " + m.status + " ")
	coords := ""
	if m.hoverHasGeo && m.hovering {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.3f y=%.3f  ", m.hoverLon, m.hoverLat))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	spacerW := max(0, l.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(l.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, popup, body, footer)
	return appStyle.Width(l.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"↑↓←→ pan",
		"+/- zoom",
		"Tab sidebar",
		"Enter open",
		"p paste",
		"a layers",
		"i inspect",
		"s save svg",
		"1/2/3 shapes",
		"h help",
		"q quit",
	}
	if m.showLayers {
		keys = []string{"↑↓ select", "Enter toggle", "a close", "q quit"}
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
