package model

import "strings"

// Category classifies an entry. The set is closed: anything outside it is
// rejected at the parsing boundary, so the rest of the code can switch
// exhaustively.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryStudies  Category = "studies"
	CategoryShopping Category = "shopping"
)

// Categories returns all categories in selector order.
func Categories() []Category {
	return []Category{CategoryWork, CategoryStudies, CategoryShopping}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryWork, CategoryStudies, CategoryShopping:
		return true
	}
	return false
}

// Icon returns the glyph shown next to an entry. The default arm is
// unreachable while the enum stays closed; it keeps the rendering total if
// the set ever grows.
func (c Category) Icon() string {
	switch c {
	case CategoryWork:
		return "⚙"
	case CategoryStudies:
		return "✎"
	case CategoryShopping:
		return "⛁"
	default:
		return "•"
	}
}

// Next returns the category after c in selector order, wrapping around.
func (c Category) Next() Category {
	cats := Categories()
	for i, cat := range cats {
		if cat == c {
			return cats[(i+1)%len(cats)]
		}
	}
	return CategoryWork
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory maps user input ("work", "Studies", "shopping", short forms)
// to a Category.
func ParseCategory(s string) (Category, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "work", "w":
		return CategoryWork, true
	case "studies", "study", "s":
		return CategoryStudies, true
	case "shopping", "shop":
		return CategoryShopping, true
	}
	return "", false
}

// Filter selects which entries are displayed. It never affects the stored
// entry list, only the view over it.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters returns all filters in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

func (f Filter) String() string {
	return string(f)
}

// Label returns the display name for the footer controls.
func (f Filter) Label() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// ParseFilter maps user input to a Filter.
func ParseFilter(s string) (Filter, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all", "a":
		return FilterAll, true
	case "active":
		return FilterActive, true
	case "completed", "done", "c":
		return FilterCompleted, true
	}
	return "", false
}

// Entry is one task in the list.
//
// IDs are assigned monotonically from State.NextID and never reused, even
// after deletion. Editing is a UI flag but is persisted with the entry: an
// entry saved mid-edit reopens still marked editing.
type Entry struct {
	ID          int      `json:"id"`
	Description string   `json:"description"`
	Completed   bool     `json:"completed"`
	Editing     bool     `json:"editing"`
	Category    Category `json:"category"`
}
