// Package styles holds the dashboard palettes and the lipgloss styles built
// from them.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// Theme is one colour palette.
type Theme struct {
	Primary    lipgloss.Color // titles, selection background
	Secondary  lipgloss.Color // subtitles, the focused menu entry
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color
	Bar        lipgloss.Color // status bar background

	// Provider accents mark which service a row or screen belongs to.
	GitHub     lipgloss.Color
	Jira       lipgloss.Color
	Confluence lipgloss.Color

	// Glamour names the glamour standard style for Markdown bodies.
	Glamour string
}

// DefaultTheme returns the dark palette.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    "#7C3AED",
		Secondary:  "#06B6D4",
		Background: "#0D1117",
		Foreground: "#E6EDF3",
		Muted:      "#7D8590",
		Success:    "#3FB950",
		Warning:    "#D29922",
		Error:      "#F85149",
		Border:     "#30363D",
		Bar:        "#161B22",
		GitHub:     "#F0F6FC",
		Jira:       "#4C9AFF",
		Confluence: "#579DFF",
		Glamour:    "dark",
	}
}

// LightTheme returns the light palette.
func LightTheme() *Theme {
	return &Theme{
		Primary:    "#6D28D9",
		Secondary:  "#0E7490",
		Background: "#FFFFFF",
		Foreground: "#1F2328",
		Muted:      "#656D76",
		Success:    "#1A7F37",
		Warning:    "#9A6700",
		Error:      "#CF222E",
		Border:     "#D0D7DE",
		Bar:        "#F6F8FA",
		GitHub:     "#24292F",
		Jira:       "#0052CC",
		Confluence: "#1868DB",
		Glamour:    "light",
	}
}

// ForTheme returns the palette for a stored theme preference. Unknown
// values get the dark palette.
func ForTheme(t domain.Theme) *Theme {
	if t == domain.ThemeLight {
		return LightTheme()
	}
	return DefaultTheme()
}

// Styles are the lipgloss styles every view renders with.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles builds styles from theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	rounded := lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Border)

	return &Styles{
		theme:      theme,
		Title:      fg(theme.Primary).Bold(true),
		Subtitle:   fg(theme.Secondary).Bold(true),
		Normal:     fg(theme.Foreground),
		Muted:      fg(theme.Muted),
		Selected:   fg(theme.Foreground).Background(theme.Primary).Bold(true),
		Error:      fg(theme.Error),
		Success:    fg(theme.Success),
		Warning:    fg(theme.Warning),
		InputField: rounded.Padding(0, 1),
		StatusBar:  fg(theme.Muted).Background(theme.Bar).Padding(0, 1),
		Help:       fg(theme.Muted),
		Border:     rounded,
	}
}

// DefaultStyles returns styles for the dark palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Accent returns a bold style in the provider's colour. Unknown providers
// get Subtitle.
func (s *Styles) Accent(p domain.Provider) lipgloss.Style {
	var c lipgloss.Color
	switch p {
	case domain.ProviderGitHub:
		c = s.theme.GitHub
	case domain.ProviderJira:
		c = s.theme.Jira
	case domain.ProviderConfluence:
		c = s.theme.Confluence
	default:
		return s.Subtitle
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
