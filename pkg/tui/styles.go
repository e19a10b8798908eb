package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/quicknotes/pkg/models"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
)

// Theme holds the styles the document renderer draws with
type Theme struct {
	Title          lipgloss.Style
	Heading        lipgloss.Style
	NoteTitle      lipgloss.Style
	Text           lipgloss.Style
	Muted          lipgloss.Style
	Button         lipgloss.Style
	FocusedButton  lipgloss.Style
	DisabledButton lipgloss.Style
	Field          lipgloss.Style
	FocusedField   lipgloss.Style
	Card           lipgloss.Style
	Panel          lipgloss.Style
	Status         lipgloss.Style
	Error          lipgloss.Style
}

// NewTheme builds the styles from the configured colours
func NewTheme(ui models.UISettings) Theme {
	accent := ui.AccentColor
	if accent == "" {
		accent = ColorActive
	}
	muted := ui.MutedColor
	if muted == "" {
		muted = ColorNormal
	}

	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(accent)),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWarning)),
		NoteTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWhite)),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim)),
		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color(muted)).
			Padding(0, 1),
		FocusedButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(accent)).
			Bold(true).
			Padding(0, 1),
		DisabledButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInactive)).
			Strikethrough(true).
			Padding(0, 1),
		Field: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorInactive)).
			Padding(0, 1),
		FocusedField: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(accent)).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorInactive)).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(accent)).
			Padding(0, 1),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim)).
			PaddingLeft(1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger)).
			Bold(true).
			PaddingLeft(1),
	}
}

// DefaultTheme uses the built-in colours
func DefaultTheme() Theme {
	return NewTheme(models.UISettings{})
}
