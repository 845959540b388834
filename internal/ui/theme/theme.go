package theme

import (
	"github.com/charmbracelet/lipgloss"

	"tikkit/internal/model"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	// Category colors
	CategoryWork     lipgloss.Color
	CategoryStudies  lipgloss.Color
	CategoryShopping lipgloss.Color
}

// CategoryColor returns the accent color for a category.
func (t Theme) CategoryColor(c model.Category) lipgloss.Color {
	switch c {
	case model.CategoryWork:
		return t.CategoryWork
	case model.CategoryStudies:
		return t.CategoryStudies
	case model.CategoryShopping:
		return t.CategoryShopping
	default:
		return t.Subtle
	}
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style

	// Entry row styles
	EntryNormal   lipgloss.Style
	EntryFocused  lipgloss.Style
	EntryDone     lipgloss.Style
	EntryEditing  lipgloss.Style

	// Input styles
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Footer controls
	FilterActive   lipgloss.Style
	FilterInactive lipgloss.Style
	ControlEnabled lipgloss.Style
	ControlMuted   lipgloss.Style

	// Help styles
	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	// Status line
	Status lipgloss.Style
	Error  lipgloss.Style
	Empty  lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		EntryNormal: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		EntryFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		EntryDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true).
			Padding(0, 1),

		EntryEditing: lipgloss.NewStyle().
			Foreground(t.Warning).
			Padding(0, 1),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		FilterActive: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Bold(true).
			Padding(0, 1),

		FilterInactive: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		ControlEnabled: lipgloss.NewStyle().
			Foreground(t.Warning),

		ControlMuted: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),

		Status: lipgloss.NewStyle().
			Foreground(t.Info).
			Italic(true),

		Error: lipgloss.NewStyle().
			Foreground(t.Error),

		Empty: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Padding(2, 0),
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Gruvbox,
	}
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}
