package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

func TestPalettes_Complete(t *testing.T) {
	for name, theme := range map[string]*Theme{"dark": DefaultTheme(), "light": LightTheme()} {
		t.Run(name, func(t *testing.T) {
			for field, c := range map[string]lipgloss.Color{
				"Primary": theme.Primary, "Secondary": theme.Secondary,
				"Background": theme.Background, "Foreground": theme.Foreground,
				"Muted": theme.Muted, "Success": theme.Success, "Warning": theme.Warning,
				"Error": theme.Error, "Border": theme.Border, "Bar": theme.Bar,
				"GitHub": theme.GitHub, "Jira": theme.Jira, "Confluence": theme.Confluence,
			} {
				assert.NotEmpty(t, string(c), field)
			}
			assert.Equal(t, name, theme.Glamour)
		})
	}
}

func TestPalettes_StatusColoursDistinct(t *testing.T) {
	for _, theme := range []*Theme{DefaultTheme(), LightTheme()} {
		seen := make(map[lipgloss.Color]bool)
		for _, c := range []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error} {
			assert.False(t, seen[c], "duplicate colour %s", c)
			seen[c] = true
		}
	}
}

func TestLightTheme_DiffersFromDefault(t *testing.T) {
	light, dark := LightTheme(), DefaultTheme()

	assert.NotEqual(t, dark.Background, light.Background)
	assert.NotEqual(t, dark.Foreground, light.Foreground)
	assert.NotEqual(t, dark.GitHub, light.GitHub)
}

func TestForTheme(t *testing.T) {
	assert.Equal(t, LightTheme(), ForTheme(domain.ThemeLight))
	assert.Equal(t, DefaultTheme(), ForTheme(domain.ThemeDark))
	assert.Equal(t, DefaultTheme(), ForTheme(domain.Theme("neon")))
}

func TestNewStyles(t *testing.T) {
	t.Run("keeps theme", func(t *testing.T) {
		theme := LightTheme()
		assert.Same(t, theme, NewStyles(theme).Theme())
	})

	t.Run("nil theme is dark", func(t *testing.T) {
		s := NewStyles(nil)
		require.NotNil(t, s.Theme())
		assert.Equal(t, DefaultTheme(), s.Theme())
	})
}

func TestStyles_Initialised(t *testing.T) {
	s := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"Title": s.Title, "Subtitle": s.Subtitle, "Normal": s.Normal, "Muted": s.Muted,
		"Selected": s.Selected, "Error": s.Error, "Success": s.Success, "Warning": s.Warning,
		"InputField": s.InputField, "StatusBar": s.StatusBar, "Help": s.Help, "Border": s.Border,
	} {
		assert.NotEqual(t, lipgloss.Style{}, style, name)
		assert.NotEmpty(t, style.Render("x"), name)
	}
	assert.True(t, s.Title.GetBold())
	assert.Equal(t, DefaultTheme().Bar, s.StatusBar.GetBackground())
}

func TestStyles_Accent(t *testing.T) {
	s := NewStyles(LightTheme())

	assert.Equal(t, LightTheme().Jira, s.Accent(domain.ProviderJira).GetForeground())
	assert.Equal(t, LightTheme().GitHub, s.Accent(domain.ProviderGitHub).GetForeground())
	assert.Equal(t, LightTheme().Confluence, s.Accent(domain.ProviderConfluence).GetForeground())
	assert.True(t, s.Accent(domain.ProviderJira).GetBold())
	assert.Equal(t, s.Subtitle, s.Accent(domain.Provider("gitlab")))
}
