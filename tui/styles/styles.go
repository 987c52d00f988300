package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/poketrade/internal/trade"
)

// Color palette
var (
	// Primary colors
	PrimaryColor = lipgloss.Color("#7C3AED") // Purple
	AccentColor  = lipgloss.Color("#F59E0B") // Amber

	// Trade status colors
	OpenColor     = lipgloss.Color("#F59E0B") // Amber
	AcceptedColor = lipgloss.Color("#10B981") // Green
	DeclinedColor = lipgloss.Color("#EF4444") // Red
	NeutralColor  = lipgloss.Color("#6B7280") // Gray

	// Background colors
	BackgroundColor  = lipgloss.Color("#1F2937")
	BorderColor      = lipgloss.Color("#374151")
	FocusBorderColor = lipgloss.Color("#7C3AED")

	// Text colors
	TextColor          = lipgloss.Color("#F9FAFB")
	TextSecondaryColor = lipgloss.Color("#9CA3AF")
	TextMutedColor     = lipgloss.Color("#6B7280")
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			Padding(0, 1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextSecondaryColor)

	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Background(lipgloss.Color("#374151"))

	DisabledRowStyle = lipgloss.NewStyle().
				Foreground(TextMutedColor).
				Strikethrough(true)
)

// Text styles
var (
	MutedStyle = lipgloss.NewStyle().
			Foreground(TextMutedColor)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(DeclinedColor)

	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AcceptedColor)

	ShinyStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor).
			Border(lipgloss.NormalBorder()).
			BorderForeground(AccentColor).
			Padding(0, 1)
)

// Input styles
var (
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(FocusBorderColor).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor)
)

// Status bar styles
var (
	StatusBarStyle = lipgloss.NewStyle().
			Background(BackgroundColor).
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	StatusBarKeyStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	StatusBarDescStyle = lipgloss.NewStyle().
				Foreground(TextSecondaryColor)
)

// RenderTitle renders a panel title, highlighted when focused.
func RenderTitle(title string, focused bool) string {
	style := TitleStyle
	if focused {
		style = style.Foreground(FocusBorderColor)
	}
	return style.Render(title)
}

// StatusStyle colors a trade status.
func StatusStyle(s trade.Status) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch s {
	case trade.StatusProposition:
		return base.Foreground(OpenColor)
	case trade.StatusAccepted:
		return base.Foreground(AcceptedColor)
	case trade.StatusDeclined:
		return base.Foreground(DeclinedColor)
	default:
		return base.Foreground(NeutralColor)
	}
}

// RenderStatus renders a status label in its color.
func RenderStatus(s trade.Status) string {
	if s == "" {
		return StatusStyle(s).Render("ALL")
	}
	return StatusStyle(s).Render(string(s))
}
