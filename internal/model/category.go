package model

// Category is the fixed set of task-type tags shown as card badges.
type Category string

const (
	CategoryAssignment Category = "assignment"
	CategoryLab        Category = "lab"
	CategoryProject    Category = "project"
	CategoryMod        Category = "mod"
	CategoryUnfinished Category = "unfinished"
)

// DefaultCategory is used whenever a category is missing or unrecognized.
const DefaultCategory = CategoryProject

// Categories lists every category in display order.
var Categories = []Category{
	CategoryAssignment,
	CategoryLab,
	CategoryProject,
	CategoryMod,
	CategoryUnfinished,
}

var categoryLabels = map[Category]string{
	CategoryAssignment: "Assignment",
	CategoryLab:        "Lab",
	CategoryProject:    "Project",
	CategoryMod:        "Module",
	CategoryUnfinished: "Unfinished",
}

// ParseCategory returns the category named by s and whether s was recognized.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if _, ok := categoryLabels[c]; ok {
		return c, true
	}

	return "", false
}

// CategoryOrDefault parses s, falling back to DefaultCategory.
func CategoryOrDefault(s string) Category {
	if c, ok := ParseCategory(s); ok {
		return c
	}

	return DefaultCategory
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// Label returns the display label for the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}

	return string(c)
}

func (c Category) String() string {
	return string(c)
}
