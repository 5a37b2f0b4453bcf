// Package styles holds the lipgloss palette shared by the card renderer,
// the terminal UI and the profile card.
package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	SaffronOrange = lipgloss.Color("#FC8019")
	SlateDark     = lipgloss.Color("#1F2937")
	SlateLight    = lipgloss.Color("#374151")
	DimGray       = lipgloss.Color("#6B7280")
	LightGray     = lipgloss.Color("#9CA3AF")
	White         = lipgloss.Color("#F9FAFB")
	Green         = lipgloss.Color("#10B981")
	Red           = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(SaffronOrange)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(SaffronOrange).
				Padding(0, 1)

	DiscountStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SaffronOrange).
			Bold(true).
			Padding(0, 1)

	RatingStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	VegLabelStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(Green).
			Bold(true).
			Padding(0, 1)
)

// Profile card styles
var (
	ProfileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SaffronOrange).
			Padding(1, 2)

	FollowButtonStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SaffronOrange).
				Padding(0, 2)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(SaffronOrange)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(SaffronOrange)
)

// SpinnerFrames are the frames of the loading spinner
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Filter styles
var (
	FilterStyle = lipgloss.NewStyle().
			Foreground(SaffronOrange)

	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(SaffronOrange).
				Bold(true)

	FilterButtonStyle = lipgloss.NewStyle().
				Foreground(LightGray).
				Border(lipgloss.NormalBorder()).
				BorderForeground(DimGray).
				Padding(0, 1)

	FilterButtonActiveStyle = lipgloss.NewStyle().
				Foreground(SaffronOrange).
				Border(lipgloss.NormalBorder()).
				BorderForeground(SaffronOrange).
				Padding(0, 1)
)

// Match highlight style for search hits in card titles
var MatchHighlightStyle = lipgloss.NewStyle().
	Foreground(SaffronOrange).
	Bold(true).
	Underline(true)

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	if width <= 3 {
		if width > len(runes) {
			return s
		}
		return string(runes[:width])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
