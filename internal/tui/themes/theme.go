// Package themes defines the dashboard colour schemes.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	FilterLabel   lipgloss.Style
	FilterValue   lipgloss.Style
	Panel         lipgloss.Style
	PanelFocused  lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusPending lipgloss.Style
	StatusSuccess lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Error         lipgloss.Color
	Success       lipgloss.Color
}

func build(primary, muted, border, fg, errColor, success, info lipgloss.Color, selectedFg lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Muted:      muted,
		Border:     border,
		Foreground: fg,
		Error:      errColor,
		Success:    success,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		Subtitle: lipgloss.NewStyle().Foreground(muted),
		Normal:   lipgloss.NewStyle().Foreground(fg),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(selectedFg).
			Bold(true),

		TabActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(selectedFg).
			Background(primary).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),

		FilterLabel: lipgloss.NewStyle().Foreground(muted),
		FilterValue: lipgloss.NewStyle().Bold(true).Foreground(fg),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		PanelFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		StatusError:   lipgloss.NewStyle().Foreground(errColor).Bold(true),
		StatusInfo:    lipgloss.NewStyle().Foreground(info).Bold(true),
		StatusPending: lipgloss.NewStyle().Foreground(muted).Italic(true),
		StatusSuccess: lipgloss.NewStyle().Foreground(success).Bold(true),
	}
}

// Default is the default theme.
var Default = build(
	lipgloss.Color("#8884d8"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#ef4444"),
	lipgloss.Color("#82ca9d"),
	lipgloss.Color("#3b82f6"),
	lipgloss.Color("#1a1a1a"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#f38ba8"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#89dceb"),
	lipgloss.Color("#1e1e2e"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
