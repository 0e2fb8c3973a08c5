// Package cli implements the devsync command line.
//
// Commands reach the core through the driving ports held in package
// variables. main registers a Bootstrap that builds them once the root
// flags are parsed; tests set them directly with SetServices.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// skipSetup marks commands that run without services.
const skipSetup = "skip-setup"

// Services holds the driving ports the commands use.
type Services struct {
	Credentials driving.CredentialService
	GitHub      driving.GitHubService
	Jira        driving.JiraService
	Confluence  driving.ConfluenceService
	Settings    driving.SettingsService
	OAuth       driving.OAuthService
	Restore     driving.RestoreService

	// Config is the configuration file read at startup.
	Config driven.ConfigStore

	// WatchStore calls onChange after persisted state is changed by another
	// process. It returns a stop function. Nil when the backend cannot be watched.
	WatchStore func(onChange func()) (stop func() error, err error)

	// Close releases resources held by the services.
	Close func() error
}

// Options are the root flag values handed to the Bootstrap.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// Bootstrap builds the services after flags are parsed.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	bootstrap Bootstrap

	credentialService driving.CredentialService
	githubService     driving.GitHubService
	jiraService       driving.JiraService
	confluenceService driving.ConfluenceService
	settingsService   driving.SettingsService
	oauthService      driving.OAuthService
	restoreService    driving.RestoreService
	configStore       driven.ConfigStore
	watchStore        func(onChange func()) (func() error, error)
	closeServices     func() error
)

// Root flags.
var (
	configDir  string
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "devsync",
	Short: "Developer dashboard for GitHub, Jira and Confluence",
	Long: `DevSync brings your GitHub repositories, Jira tickets and Confluence
spaces together in one terminal dashboard.

Connect a provider with 'devsync credentials set <provider>', then browse
with the provider commands or launch the dashboard with 'devsync tui'.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.devsync)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
}

// SetBootstrap registers the function that builds the services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs the services used by the commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	credentialService = s.Credentials
	githubService = s.GitHub
	jiraService = s.Jira
	confluenceService = s.Confluence
	settingsService = s.Settings
	oauthService = s.OAuth
	restoreService = s.Restore
	configStore = s.Config
	watchStore = s.WatchStore
	closeServices = s.Close
}

// Execute runs the root command and releases the services afterwards.
func Execute(ctx context.Context) error {
	defer func() {
		if closeServices != nil {
			if err := closeServices(); err != nil {
				logger.Warn("closing services: %v", err)
			}
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

// setup builds the services on first use and restores provider sessions.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if cmd.Annotations[skipSetup] == "true" {
		return nil
	}

	if bootstrap != nil && credentialService == nil {
		svc, err := bootstrap(cmd.Context(), Options{ConfigDir: configDir, Verbose: verbose})
		if err != nil {
			return err
		}
		SetServices(svc)
	}

	if restoreService != nil {
		if err := restoreService.Restore(cmd.Context()); err != nil {
			cmd.PrintErrf("Warning: %v\n", err)
		}
	}
	return nil
}

// watchForChanges re-runs Restore whenever another process changes the
// persisted state, then calls after. It returns a function that stops watching.
func watchForChanges(cmd *cobra.Command, after func()) func() {
	if watchStore == nil || restoreService == nil {
		return func() {}
	}

	ctx := cmd.Context()
	stop, err := watchStore(func() {
		if err := restoreService.Restore(ctx); err != nil {
			logger.Warn("restoring sessions: %v", err)
		}
		if after != nil {
			after()
		}
	})
	if err != nil {
		cmd.PrintErrf("Warning: changes from other devsync processes will not be picked up: %v\n", err)
		return func() {}
	}

	return func() {
		if err := stop(); err != nil {
			logger.Warn("stopping store watcher: %v", err)
		}
	}
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withHint adds a next step to errors a user can fix.
func withHint(provider domain.Provider, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotInitialized):
		return fmt.Errorf("%s is not connected: run 'devsync credentials set %s'", provider.Description(), provider)
	case errors.Is(err, domain.ErrAuthInvalid):
		return fmt.Errorf("%w\n%s rejected the credentials: run 'devsync credentials set %s'",
			err, provider.Description(), provider)
	default:
		return err
	}
}
