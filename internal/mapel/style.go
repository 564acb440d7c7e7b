package mapel

// Style holds the presentation attributes shared by every element of a
// category.
type Style struct {
	Stroke      string
	StrokeWidth float64
	Fill        string
	Marker      string
	ZOrder      int
	Filter      string
}

// defaultStyle applies to any attribute a category does not override.
var defaultStyle = Style{
	Stroke:      "black",
	StrokeWidth: 1.0,
	Fill:        "none",
	Marker:      "none",
	ZOrder:      0,
	Filter:      "none",
}

func override(fn func(*Style)) Style {
	s := defaultStyle
	fn(&s)
	return s
}

// styles is filled once at package init and never written again.
var styles = [numCategories]Style{
	Road: override(func(s *Style) {
		s.Stroke = "#FFF2C8"
		s.StrokeWidth = 8.0
		s.ZOrder = 1
	}),
	Building: override(func(s *Style) {
		s.Stroke = "none"
		s.Fill = "#D6A36E"
		s.Filter = "url(#shadow)"
	}),
	River: override(func(s *Style) {
		s.Stroke = "#779988"
		s.StrokeWidth = 36.79280025660657
	}),
	Wall: override(func(s *Style) {
		s.Marker = "url(#wall)"
		s.Stroke = "#606661"
		s.StrokeWidth = 7.6
	}),
	Plank: override(func(s *Style) {
		s.Stroke = "#FFF2C8"
	}),
	Prism: override(func(s *Style) {
		s.Stroke = "none"
	}),
	Square: override(func(s *Style) {
		s.Fill = "#F2F2DA"
	}),
	Green: override(func(s *Style) {
		s.Stroke = "#99AA77"
		s.Fill = "url(#green)"
	}),
	Field: override(func(s *Style) {
		s.Stroke = "#99AA77"
		s.Fill = "url(#green)"
	}),
	Tree: override(func(s *Style) {
		s.Fill = "#667755"
	}),
	District: override(func(s *Style) {
		s.Stroke = "none"
	}),
	Earth: override(func(s *Style) {
		s.Stroke = "none"
	}),
	Water: override(func(s *Style) {
		s.Stroke = "none"
		s.Fill = "#779988"
	}),
}

// StyleOf returns the static style of c.
func StyleOf(c Category) Style {
	if c < 0 || c >= numCategories {
		return defaultStyle
	}
	return styles[c]
}

// Style returns the static style of c.
func (c Category) Style() Style { return StyleOf(c) }
