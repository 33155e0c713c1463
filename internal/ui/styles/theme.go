package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/tgienger/moody/internal/models"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	// Base colors
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	// Accent colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// UI element colors
	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
	Marked      lipgloss.Color

	// Per-mood accent used for cards and calendar marks
	Moods map[models.Mood]lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary:   lipgloss.Color("#7aa2f7"),
	Secondary: lipgloss.Color("#bb9af7"),
	Accent:    lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Warning: lipgloss.Color("#e0af68"),
	Error:   lipgloss.Color("#f7768e"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
	Marked:      lipgloss.Color("#292e42"),

	Moods: map[models.Mood]lipgloss.Color{
		models.MoodHappy:   lipgloss.Color("#9ece6a"),
		models.MoodSad:     lipgloss.Color("#7aa2f7"),
		models.MoodNeutral: lipgloss.Color("#a9b1d6"),
		models.MoodExcited: lipgloss.Color("#e0af68"),
		models.MoodAngry:   lipgloss.Color("#f7768e"),
		models.MoodTired:   lipgloss.Color("#565f89"),
		models.MoodAnxious: lipgloss.Color("#bb9af7"),
	},
}

// Current holds the active theme
var Current = TokyoNight

// MoodColor returns the accent for a mood, falling back to the foreground
func MoodColor(m models.Mood) lipgloss.Color {
	if c, ok := Current.Moods[m]; ok {
		return c
	}
	return Current.Foreground
}

// MaxWidth is the maximum content width for the app (classic terminal width)
const MaxWidth = 80

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	// Header
	Header     lipgloss.Style
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Tabs (Timeline / Calendar and Day / Week / Month)
	Tab       lipgloss.Style
	TabActive lipgloss.Style

	// Timeline cards
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardDate     lipgloss.Style
	CardLabel    lipgloss.Style
	CardNote     lipgloss.Style
	Empty        lipgloss.Style

	// Calendar cells
	Cell         lipgloss.Style
	CellOutside  lipgloss.Style
	CellMarked   lipgloss.Style
	CellSelected lipgloss.Style
	CellToday    lipgloss.Style
	Weekday      lipgloss.Style

	// Mood picker
	MoodOption         lipgloss.Style
	MoodOptionSelected lipgloss.Style
	MoodOptionCursor   lipgloss.Style

	// Buttons
	Button         lipgloss.Style
	ButtonFocused  lipgloss.Style
	ButtonPrimary  lipgloss.Style
	ButtonDisabled lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Label        lipgloss.Style

	// Popups
	Popup lipgloss.Style

	// Help text
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Tab: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 1).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		CardDate: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		CardLabel: lipgloss.NewStyle().
			Bold(true),

		CardNote: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Empty: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Align(lipgloss.Center).
			Padding(2, 0),

		Cell: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Width(6).
			Align(lipgloss.Center),

		CellOutside: lipgloss.NewStyle().
			Foreground(t.Border).
			Width(6).
			Align(lipgloss.Center),

		CellMarked: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Marked).
			Width(6).
			Align(lipgloss.Center),

		CellSelected: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Width(6).
			Align(lipgloss.Center).
			Bold(true),

		CellToday: lipgloss.NewStyle().
			Foreground(t.Accent).
			Width(6).
			Align(lipgloss.Center).
			Underline(true),

		Weekday: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Width(6).
			Align(lipgloss.Center),

		MoodOption: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		MoodOptionSelected: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 1).
			Bold(true),

		MoodOptionCursor: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		ButtonDisabled: lipgloss.NewStyle().
			Foreground(t.Border).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Label: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		Popup: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatusBar: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		StatusError: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),
	}
}
