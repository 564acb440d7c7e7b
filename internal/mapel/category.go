package mapel

// Category classifies a map element. It selects the element's static style
// and its CSS class.
type Category int

const (
	Road Category = iota
	Building
	River
	Wall
	Plank
	Prism
	Square
	Green
	Field
	Tree
	District
	Earth
	Water

	numCategories = iota
)

var categoryNames = [numCategories]string{
	Road:     "Road",
	Building: "Building",
	River:    "River",
	Wall:     "Wall",
	Plank:    "Plank",
	Prism:    "Prism",
	Square:   "Square",
	Green:    "Green",
	Field:    "Field",
	Tree:     "Tree",
	District: "District",
	Earth:    "Earth",
	Water:    "Water",
}

// categoryKeys are the feature "id" values selecting each category.
var categoryKeys = [numCategories]string{
	Road:     "roads",
	Building: "buildings",
	River:    "rivers",
	Wall:     "walls",
	Plank:    "planks",
	Prism:    "prisms",
	Square:   "squares",
	Green:    "greens",
	Field:    "fields",
	Tree:     "trees",
	District: "districts",
	Earth:    "earth",
	Water:    "water",
}

// String returns the CSS class name of c.
func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return "Unknown"
	}
	return categoryNames[c]
}

// Key returns the feature discriminator that selects c.
func (c Category) Key() string {
	if c < 0 || c >= numCategories {
		return ""
	}
	return categoryKeys[c]
}

// ParseCategory matches key exactly against the known discriminators.
func ParseCategory(key string) (Category, bool) {
	for c, k := range categoryKeys {
		if k == key {
			return Category(c), true
		}
	}
	return 0, false
}

// Categories lists every category in declaration order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// ClassOrder is the order in which category styles are emitted as CSS.
var ClassOrder = []Category{
	Building, District, Road, Wall, Plank, Prism, Square,
	Green, Field, Tree, Earth, Water, River,
}
