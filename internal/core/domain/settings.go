package domain

const unknownDescription = "Unknown"

// Theme is the dashboard colour scheme.
type Theme string

// Available themes.
const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeDark, ThemeLight:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t Theme) String() string {
	return string(t)
}

// Description returns a human-readable description of the theme.
func (t Theme) Description() string {
	switch t {
	case ThemeDark:
		return "Dark"
	case ThemeLight:
		return "Light"
	default:
		return unknownDescription
	}
}

// UISettings holds the persisted dashboard preferences.
type UISettings struct {
	Theme         Theme   `json:"theme"`
	Notifications bool    `json:"notifications"`
	SoundEffects  bool    `json:"sound_effects"`
	Volume        float64 `json:"volume"`
}

// DefaultVolume is the sound volume used when none is stored.
const DefaultVolume = 0.3

// DefaultUISettings returns the settings used before anything is stored.
func DefaultUISettings() UISettings {
	return UISettings{
		Theme:         ThemeDark,
		Notifications: true,
		SoundEffects:  false,
		Volume:        DefaultVolume,
	}
}

// Normalise replaces an unknown theme with the default and clamps
// Volume to [0, 1].
func (s *UISettings) Normalise() {
	if !s.Theme.IsValid() {
		s.Theme = ThemeDark
	}
	s.Volume = ClampVolume(s.Volume)
}

// ClampVolume limits v to [0, 1].
func ClampVolume(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
