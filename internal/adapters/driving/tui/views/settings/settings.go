// Package settings provides the dashboard preferences view for the TUI.
package settings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/devsync-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
)

// Row identifies an editable setting.
type Row int

const (
	RowTheme Row = iota
	RowNotifications
	RowSoundEffects
	RowVolume
	rowCount
)

// volumeStep is how far one key press moves the volume.
const volumeStep = 0.1

// View is the settings view.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	settings driving.SettingsService
	bar      *status.Bar

	current domain.UISettings
	loaded  bool
	row     Row
	err     error
	width   int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settings driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	return &View{
		styles:   s,
		keymap:   km,
		settings: settings,
		bar:      status.NewBar(s, km),
		current:  domain.DefaultUISettings(),
		width:    80,
	}
}

// Init loads the stored settings.
func (v *View) Init() tea.Cmd {
	v.err = nil
	v.bar.SetState(status.StateLoading)
	v.bar.SetMessage("Loading settings...")
	v.bar.SetExtraHints(v.keymap.Toggle, v.keymap.Decrease)
	return func() tea.Msg {
		if v.settings == nil {
			return messages.SettingsLoaded{Err: errors.New("settings service not available")}
		}
		s, err := v.settings.Get(context.Background())
		return messages.SettingsLoaded{Settings: s, Err: err}
	}
}

func (v *View) save(next domain.UISettings) tea.Cmd {
	return func() tea.Msg {
		if v.settings == nil {
			return messages.SettingsSaved{Settings: next, Err: errors.New("settings service not available")}
		}
		err := v.settings.Save(context.Background(), next)
		return messages.SettingsSaved{Settings: next, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetWidth(msg.Width)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.current = msg.Settings
		v.loaded = true
		v.bar.SetState(status.StateReady)
		v.bar.SetMessage("")
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		previous := v.current.Theme
		msg.Settings.Normalise()
		v.current = msg.Settings
		v.bar.SetState(status.StateReady)
		v.bar.SetMessage("Saved")
		if v.current.Theme != previous {
			theme := v.current.Theme
			return v, func() tea.Msg { return messages.ThemeChanged{Theme: theme} }
		}
		return v, nil

	case messages.StoreChanged:
		return v, v.Init()
	}
	return v, nil
}

func (v *View) setError(err error) {
	v.err = err
	v.bar.SetState(status.StateError)
	v.bar.SetMessage(err.Error())
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(k, v.keymap.Up):
		if v.row > 0 {
			v.row--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.row < rowCount-1 {
			v.row++
		}
	case !v.loaded:
		return v, nil
	case keymap.Matches(k, v.keymap.Toggle):
		return v, v.save(step(v.current, v.row, 1))
	case keymap.Matches(k, v.keymap.Decrease):
		return v, v.save(step(v.current, v.row, -1))
	}
	return v, nil
}

// step returns s with the setting on row moved one notch in direction dir.
// Theme and the switches flip regardless of direction.
func step(s domain.UISettings, row Row, dir int) domain.UISettings {
	switch row {
	case RowTheme:
		if s.Theme == domain.ThemeLight {
			s.Theme = domain.ThemeDark
		} else {
			s.Theme = domain.ThemeLight
		}
	case RowNotifications:
		s.Notifications = !s.Notifications
	case RowSoundEffects:
		s.SoundEffects = !s.SoundEffects
	case RowVolume:
		v := s.Volume + float64(dir)*volumeStep
		s.Volume = domain.ClampVolume(math.Round(v*10) / 10)
	case rowCount:
	}
	return s
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Theme", v.current.Theme.Description()},
		{"Notifications", onOff(v.current.Notifications)},
		{"Sound effects", onOff(v.current.SoundEffects)},
		{"Volume", volumeBar(v.current.Volume)},
	}
	for i, r := range rows {
		label := fmt.Sprintf("%-15s", r.label)
		if Row(i) == v.row {
			b.WriteString(v.styles.Selected.Render("> " + label))
			b.WriteString(v.styles.Success.Render(r.value))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + label))
			b.WriteString(v.styles.Normal.Render(r.value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.bar.View())
	return b.String()
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

// volumeBar renders the volume as ten cells and a percentage.
func volumeBar(volume float64) string {
	filled := int(math.Round(domain.ClampVolume(volume) * 10))
	return fmt.Sprintf("[%s%s] %d%%",
		strings.Repeat("#", filled), strings.Repeat("-", 10-filled), int(math.Round(volume*100)))
}

// SetWidth sets the view width.
func (v *View) SetWidth(width int) {
	v.width = width
	v.bar.SetWidth(width)
}

// Current returns the settings on display.
func (v *View) Current() domain.UISettings {
	return v.current
}

// Row returns the selected row.
func (v *View) Row() Row {
	return v.row
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
