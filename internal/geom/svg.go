package geom

import (
	"strconv"
	"strings"
)

// FormatNumber writes v as the shortest decimal that parses back to v.
// Nothing is rounded and no exponent is used.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (p Point) SVG(class string) string {
	var b strings.Builder
	b.WriteString(`<circle class="`)
	b.WriteString(class)
	b.WriteString(`" cx="`)
	b.WriteString(FormatNumber(p.X))
	b.WriteString(`" cy="`)
	b.WriteString(FormatNumber(p.Y))
	b.WriteString(`" />`)
	return b.String()
}

func (ls LineString) SVG(class string) string {
	return pointsElement("polyline", class, ls.Points)
}

func (pg Polygon) SVG(class string) string {
	return pointsElement("polygon", class, pg.Ring.Points)
}

// SVG concatenates the member fragments, each followed by a newline.
func (c Composite) SVG(class string) string {
	var b strings.Builder
	for _, m := range c.Members {
		b.WriteString(m.SVG(class))
		b.WriteByte('\n')
	}
	return b.String()
}

// pointsElement renders tag with a points attribute of "x,y " pairs.
func pointsElement(tag, class string, pts []Point) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	b.WriteString(` class="`)
	b.WriteString(class)
	b.WriteString(`" points="`)
	for _, p := range pts {
		b.WriteString(FormatNumber(p.X))
		b.WriteByte(',')
		b.WriteString(FormatNumber(p.Y))
		b.WriteByte(' ')
	}
	b.WriteString(`" />`)
	return b.String()
}
