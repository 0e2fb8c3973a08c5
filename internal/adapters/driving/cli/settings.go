package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage dashboard preferences",
	Long: `View and change the dashboard theme, notifications and sound.

Use subcommands to change one setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsThemeCmd = &cobra.Command{
	Use:       "theme [dark|light]",
	Short:     "Set the colour theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.ThemeDark), string(domain.ThemeLight)},
	RunE:      runSettingsTheme,
}

var settingsVolumeCmd = &cobra.Command{
	Use:   "volume [0-1]",
	Short: "Set the sound volume",
	Long:  `Set the sound volume. Values outside 0 to 1 are clamped.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsVolume,
}

var settingsNotificationsCmd = &cobra.Command{
	Use:   "notifications [on|off]",
	Short: "Turn notifications on or off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettingsToggle(cmd, args[0], "Notifications", func(s *domain.UISettings, on bool) {
			s.Notifications = on
		})
	},
}

var settingsSoundCmd = &cobra.Command{
	Use:   "sound [on|off]",
	Short: "Turn sound effects on or off",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSettingsToggle(cmd, args[0], "Sound effects", func(s *domain.UISettings, on bool) {
			s.SoundEffects = on
		})
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsThemeCmd)
	settingsCmd.AddCommand(settingsVolumeCmd)
	settingsCmd.AddCommand(settingsNotificationsCmd)
	settingsCmd.AddCommand(settingsSoundCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if jsonOutput {
		return printJSON(cmd, settings)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Appearance]")
	cmd.Printf("  Theme: %s\n", settings.Theme.Description())
	cmd.Println()

	cmd.Println("[Alerts]")
	cmd.Printf("  Notifications: %s\n", onOff(settings.Notifications))
	cmd.Printf("  Sound effects: %s\n", onOff(settings.SoundEffects))
	cmd.Printf("  Volume: %d%%\n", int(settings.Volume*100+0.5))
	cmd.Println()

	cmd.Println("[GitHub]")
	ref, ok, err := settingsService.SelectedRepo(cmd.Context())
	switch {
	case err != nil:
		cmd.Printf("  Selected repository: (unreadable: %v)\n", err)
	case ok:
		cmd.Printf("  Selected repository: %s\n", ref)
	default:
		cmd.Println("  Selected repository: (none)")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("DevSync Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Theme
	cmd.Println("Step 1: Select Theme")
	cmd.Println("--------------------")
	themes := []domain.Theme{domain.ThemeDark, domain.ThemeLight}
	current := 1
	for i, theme := range themes {
		cmd.Printf("  %d. %s\n", i+1, theme.Description())
		if theme == settings.Theme {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	settings.Theme = themes[parseChoice(readLine(reader), len(themes), current)-1]
	cmd.Println()

	// Step 2: Alerts
	cmd.Println("Step 2: Alerts")
	cmd.Println("--------------")
	settings.Notifications = askYesNo(cmd, reader, "Enable notifications?", settings.Notifications)
	settings.SoundEffects = askYesNo(cmd, reader, "Enable sound effects?", settings.SoundEffects)
	if settings.SoundEffects {
		cmd.Printf("Volume 0-100 [%d]: ", int(settings.Volume*100+0.5))
		if input := readLine(reader); input != "" {
			pct, err := strconv.Atoi(input)
			if err != nil {
				return fmt.Errorf("%w: volume %q", domain.ErrInvalidInput, input)
			}
			settings.Volume = float64(pct) / 100
		}
	}
	cmd.Println()

	if err := settingsService.Save(cmd.Context(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("All settings are saved.")
	return nil
}

func runSettingsTheme(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	theme := domain.Theme(strings.ToLower(strings.TrimSpace(args[0])))
	if !theme.IsValid() {
		return fmt.Errorf("%w: theme %q (choose dark or light)", domain.ErrInvalidInput, args[0])
	}
	if err := settingsService.SetTheme(cmd.Context(), theme); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}

	cmd.Printf("Theme set to: %s\n", theme.Description())
	return nil
}

func runSettingsVolume(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	volume, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil {
		return fmt.Errorf("%w: volume %q", domain.ErrInvalidInput, args[0])
	}
	if err := settingsService.SetVolume(cmd.Context(), volume); err != nil {
		return fmt.Errorf("failed to set volume: %w", err)
	}

	cmd.Printf("Volume set to: %d%%\n", int(domain.ClampVolume(volume)*100+0.5))
	return nil
}

func runSettingsToggle(cmd *cobra.Command, arg, label string, apply func(*domain.UISettings, bool)) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	on, err := parseOnOff(arg)
	if err != nil {
		return err
	}

	settings, err := settingsService.Get(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	apply(&settings, on)
	if err := settingsService.Save(cmd.Context(), settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("%s: %s\n", label, onOff(on))
	return nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("%w: expected on or off, got %q", domain.ErrInvalidInput, s)
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func askYesNo(cmd *cobra.Command, reader *bufio.Reader, question string, current bool) bool {
	hint := "y/N"
	if current {
		hint = "Y/n"
	}
	cmd.Printf("%s [%s]: ", question, hint)
	switch strings.ToLower(readLine(reader)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return current
	}
}
