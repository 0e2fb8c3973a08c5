package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	oauthcallback "github.com/custodia-labs/devsync-cli/internal/adapters/driving/oauth"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// Callback ports tried when --port is not given. They must match the
// redirect URIs registered with the OAuth apps.
const (
	callbackPortStart = 18080
	callbackPortEnd   = 18090
)

// openBrowser is replaced in tests.
var openBrowser = oauthcallback.OpenBrowser

var oauthCmd = &cobra.Command{
	Use:   "oauth",
	Short: "Sign in with OAuth instead of a personal token",
	Long: `Sign in to GitHub or Atlassian through the browser.

The OAuth app is read from the configuration file:

  [oauth.github]
  client_id = "..."
  client_secret = "..."

  [oauth.atlassian]
  client_id = "..."
  client_secret = "..."

Register http://localhost:18080/callback as the redirect URI, or pass --port
with the port you registered.

GitHub sessions use the OAuth tokens directly. Jira tokens are stored, but
Jira and Confluence commands keep using the API token set with
'devsync credentials set jira'.

Examples:
  devsync oauth login github
  devsync oauth status
  devsync oauth logout github`,
}

var oauthLoginCmd = &cobra.Command{
	Use:   "login [provider]",
	Short: "Authorise DevSync in the browser",
	Args:  cobra.ExactArgs(1),
	RunE:  runOAuthLogin,
}

var oauthLogoutCmd = &cobra.Command{
	Use:   "logout [provider]",
	Short: "Forget stored OAuth tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runOAuthLogout,
}

var oauthStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which providers hold OAuth tokens",
	Args:  cobra.NoArgs,
	RunE:  runOAuthStatus,
}

// Flags for oauth login.
var (
	oauthPort      int
	oauthNoBrowser bool
	oauthTimeout   time.Duration
)

func init() {
	oauthLoginCmd.Flags().IntVar(&oauthPort, "port", 0,
		fmt.Sprintf("callback port (default: first free port in %d-%d)", callbackPortStart, callbackPortEnd))
	oauthLoginCmd.Flags().BoolVar(&oauthNoBrowser, "no-browser", false, "print the URL instead of opening a browser")
	oauthLoginCmd.Flags().DurationVar(&oauthTimeout, "timeout", 5*time.Minute, "how long to wait for the browser")

	oauthCmd.AddCommand(oauthLoginCmd)
	oauthCmd.AddCommand(oauthLogoutCmd)
	oauthCmd.AddCommand(oauthStatusCmd)
	rootCmd.AddCommand(oauthCmd)
}

// oauthProviders are the providers with an OAuth login.
var oauthProviders = []domain.Provider{domain.ProviderGitHub, domain.ProviderJira}

func parseOAuthProvider(s string) (domain.Provider, error) {
	p, err := domain.ParseProvider(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, s)
	}
	for _, supported := range oauthProviders {
		if p == supported {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s has no OAuth login", domain.ErrUnsupportedProvider, p.Description())
}

func runOAuthLogin(cmd *cobra.Command, args []string) error {
	if oauthService == nil {
		return errors.New("oauth service not configured")
	}
	provider, err := parseOAuthProvider(args[0])
	if err != nil {
		return err
	}

	server := oauthcallback.NewCallbackServer(oauthPort)
	if oauthPort == 0 {
		err = server.StartInRange(callbackPortStart, callbackPortEnd)
	} else {
		err = server.Start()
	}
	if err != nil {
		return err
	}
	defer func() { _ = server.Stop() }()

	flow, err := oauthService.Begin(provider, server.RedirectURI())
	if err != nil {
		return fmt.Errorf("failed to start %s login: %w", provider.Description(), err)
	}

	cmd.Printf("Open this URL to authorise DevSync:\n\n  %s\n\n", flow.AuthURL)
	if !oauthNoBrowser {
		if err := openBrowser(flow.AuthURL); err != nil {
			cmd.PrintErrf("Warning: could not open browser: %v\n", err)
		}
	}
	cmd.Println("Waiting for authorisation...")

	ctx, cancel := context.WithTimeout(cmd.Context(), oauthTimeout)
	defer cancel()

	cb, err := server.Wait(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("timed out after %s waiting for the browser", oauthTimeout)
		}
		return err
	}

	if _, err := oauthService.Complete(ctx, flow, cb.Code, cb.State); err != nil {
		return fmt.Errorf("%s login failed: %w", provider.Description(), err)
	}

	// Jira sessions use API tokens; its OAuth tokens are only stored.
	if provider == domain.ProviderGitHub && githubService != nil {
		if err := githubService.InitializeWithTokens(ctx, oauthService.TokenProvider(provider)); err != nil {
			return err
		}
		user, err := githubService.TestConnection(ctx)
		if err != nil {
			return withHint(provider, err)
		}
		cmd.Printf("Signed in to %s as %s\n", provider.Description(), user.Login)
		return nil
	}

	cmd.Printf("Signed in to %s\n", provider.Description())
	cmd.PrintErrf("Note: %s commands still use the API token from 'devsync credentials set %s'; "+
		"the OAuth tokens are stored but not used yet.\n", provider.Description(), provider)
	return nil
}

func runOAuthLogout(cmd *cobra.Command, args []string) error {
	if oauthService == nil {
		return errors.New("oauth service not configured")
	}
	provider, err := parseOAuthProvider(args[0])
	if err != nil {
		return err
	}

	if err := oauthService.Logout(cmd.Context(), provider); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	if provider == domain.ProviderGitHub && githubService != nil &&
		credentialService != nil && !credentialService.Has(cmd.Context(), provider) {
		githubService.Reset()
	}

	cmd.Printf("Logged out of %s\n", provider.Description())
	return nil
}

type oauthStatus struct {
	Provider      domain.Provider `json:"provider"`
	Authenticated bool            `json:"authenticated"`
	Expiry        *time.Time      `json:"expires_at,omitempty"`
	Refreshable   bool            `json:"refreshable"`
}

func runOAuthStatus(cmd *cobra.Command, _ []string) error {
	if oauthService == nil {
		return errors.New("oauth service not configured")
	}

	statuses := make([]oauthStatus, 0, len(oauthProviders))
	for _, p := range oauthProviders {
		st := oauthStatus{Provider: p}
		token, err := oauthService.Tokens(cmd.Context(), p)
		if err != nil {
			return err
		}
		if token != nil {
			st.Authenticated = true
			st.Refreshable = token.CanRefresh()
			if !token.Expiry.IsZero() {
				expiry := token.Expiry
				st.Expiry = &expiry
			}
		}
		statuses = append(statuses, st)
	}

	if jsonOutput {
		return printJSON(cmd, statuses)
	}

	for _, st := range statuses {
		state := "not signed in"
		if st.Authenticated {
			state = "signed in"
			if st.Expiry != nil {
				state += ", expires " + st.Expiry.Local().Format(time.RFC822)
			}
			if st.Refreshable {
				state += ", refreshable"
			}
		}
		cmd.Printf("  %-18s %s\n", st.Provider.Description(), state)
	}
	return nil
}
