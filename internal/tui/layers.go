package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"svgmap/internal/mapel"
)

var layerColumns = []table.Column{
	{Title: "class", Width: 10},
	{Title: "key", Width: 10},
	{Title: "count", Width: 6},
	{Title: "stroke", Width: 8},
	{Title: "fill", Width: 13},
	{Title: "shown", Width: 6},
}

// layerRows lists every category in CSS order with its element count and
// static style.
func layerRows(doc *mapel.Map, hidden map[mapel.Category]bool) []table.Row {
	var counts map[mapel.Category]int
	if doc != nil {
		counts = doc.Counts()
	}
	rows := make([]table.Row, 0, len(mapel.ClassOrder))
	for _, c := range mapel.ClassOrder {
		s := c.Style()
		shown := "yes"
		if hidden[c] {
			shown = "no"
		}
		rows = append(rows, table.Row{
			c.String(),
			c.Key(),
			fmt.Sprintf("%d", counts[c]),
			s.Stroke,
			s.Fill,
			shown,
		})
	}
	return rows
}

func (m *Model) refreshLayers() {
	m.tbl.SetRows(layerRows(m.doc, m.hidden))
}

// toggleSelectedLayer flips the visibility of the category under the
// table cursor.
func (m *Model) toggleSelectedLayer() {
	i := m.tbl.Cursor()
	if i < 0 || i >= len(mapel.ClassOrder) {
		return
	}
	c := mapel.ClassOrder[i]
	m.hidden[c] = !m.hidden[c]
	m.refreshLayers()
	if m.hidden[c] {
		m.status = c.String() + ": hidden"
	} else {
		m.status = c.String() + ": shown"
	}
}

// visible reports whether the category of e is shown.
func (m Model) visible(e mapel.Element) bool {
	return !m.hidden[e.Category]
}
