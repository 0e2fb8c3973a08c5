package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which providers are connected",
	Long: `Show which providers have credentials and an open session.

With --check every connected provider is contacted and the
authenticated user is shown.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

var statusCheck bool

func init() {
	statusCmd.Flags().BoolVar(&statusCheck, "check", false, "test each connection")
	rootCmd.AddCommand(statusCmd)
}

type providerStatus struct {
	Provider  domain.Provider `json:"provider"`
	Stored    bool            `json:"credentials_stored"`
	OAuth     bool            `json:"oauth"`
	Shared    domain.Provider `json:"shared_with,omitempty"`
	Connected bool            `json:"connected"`
	User      string          `json:"user,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if credentialService == nil {
		return errors.New("credential service not configured")
	}

	ctx := cmd.Context()
	statuses := make([]providerStatus, 0, len(domain.AllProviders()))
	for _, p := range domain.AllProviders() {
		st := providerStatus{
			Provider: p,
			Stored:   credentialService.Has(ctx, p),
		}
		if oauthService != nil && p == domain.ProviderGitHub {
			st.OAuth = oauthService.IsAuthenticated(ctx, p)
		}
		if p == domain.ProviderConfluence && !st.Stored && credentialService.Has(ctx, domain.ProviderJira) {
			st.Shared = domain.ProviderJira
		}
		if svc := sessionFor(p); svc != nil {
			st.Connected = svc.IsInitialized()
		}

		if statusCheck && st.Connected {
			who, err := testConnection(ctx, p)
			if err != nil {
				st.Error = err.Error()
				st.Connected = false
			} else {
				st.User = who
			}
		}
		statuses = append(statuses, st)
	}

	if jsonOutput {
		return printJSON(cmd, statuses)
	}

	for _, st := range statuses {
		state := "not connected"
		switch {
		case st.Error != "":
			state = "error: " + st.Error
		case st.Connected && st.User != "":
			state = "connected as " + st.User
		case st.Connected:
			state = "connected"
		}

		source := ""
		switch {
		case st.Stored:
			source = " (token)"
		case st.OAuth:
			source = " (oauth)"
		case st.Shared != "":
			source = " (" + string(st.Shared) + " token)"
		}
		cmd.Printf("  %-18s %s%s\n", st.Provider.Description(), state, source)
	}
	return nil
}
