package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
)

var credentialsCmd = &cobra.Command{
	Use:     "credentials",
	Aliases: []string{"creds"},
	Short:   "Manage provider credentials",
	Long: `Store, show and remove the credentials DevSync uses to reach each provider.

GitHub needs a personal access token. Jira and Confluence need the site
domain (e.g. acme.atlassian.net), your account email and an API token.`,
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set [provider]",
	Short: "Connect a provider",
	Long: `Verify and store credentials for a provider.

Missing values are prompted for. Secrets are read without echo.

Examples:
  devsync credentials set github --token ghp_xxx
  devsync credentials set jira --domain acme.atlassian.net --email me@acme.com
  devsync credentials set confluence --no-verify`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCredentialsSet,
}

var credentialsShowCmd = &cobra.Command{
	Use:   "show [provider]",
	Short: "Show stored credentials with secrets masked",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCredentialsShow,
}

var credentialsRemoveCmd = &cobra.Command{
	Use:   "remove [provider]",
	Short: "Remove a provider's credentials",
	Args:  cobra.ExactArgs(1),
	RunE:  runCredentialsRemove,
}

var credentialsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored credentials",
	RunE:  runCredentialsClear,
}

// Flags for credentials set.
var (
	credToken    string
	credDomain   string
	credEmail    string
	credAPIToken string
	credNoVerify bool
)

func init() {
	credentialsSetCmd.Flags().StringVar(&credToken, "token", "", "GitHub personal access token")
	credentialsSetCmd.Flags().StringVar(&credDomain, "domain", "", "Atlassian site domain, e.g. acme.atlassian.net")
	credentialsSetCmd.Flags().StringVar(&credEmail, "email", "", "Atlassian account email")
	credentialsSetCmd.Flags().StringVar(&credAPIToken, "api-token", "", "Atlassian API token")
	credentialsSetCmd.Flags().BoolVar(&credNoVerify, "no-verify", false, "store without testing the connection")

	credentialsCmd.AddCommand(credentialsSetCmd)
	credentialsCmd.AddCommand(credentialsShowCmd)
	credentialsCmd.AddCommand(credentialsRemoveCmd)
	credentialsCmd.AddCommand(credentialsClearCmd)
	rootCmd.AddCommand(credentialsCmd)
}

// sessionFor returns the provider's session service.
func sessionFor(provider domain.Provider) driving.Session {
	switch provider {
	case domain.ProviderGitHub:
		if githubService != nil {
			return githubService
		}
	case domain.ProviderJira:
		if jiraService != nil {
			return jiraService
		}
	case domain.ProviderConfluence:
		if confluenceService != nil {
			return confluenceService
		}
	}
	return nil
}

// testConnection calls the provider's TestConnection and describes the principal.
func testConnection(ctx context.Context, provider domain.Provider) (string, error) {
	switch provider {
	case domain.ProviderGitHub:
		user, err := githubService.TestConnection(ctx)
		if err != nil {
			return "", err
		}
		return user.Login, nil
	case domain.ProviderJira:
		user, err := jiraService.TestConnection(ctx)
		if err != nil {
			return "", err
		}
		return user.DisplayName, nil
	case domain.ProviderConfluence:
		user, err := confluenceService.TestConnection(ctx)
		if err != nil {
			return "", err
		}
		return user.DisplayName, nil
	default:
		return "", domain.ErrUnsupportedProvider
	}
}

func runCredentialsSet(cmd *cobra.Command, args []string) error {
	if credentialService == nil {
		return errors.New("credential service not configured")
	}

	ctx := cmd.Context()
	reader := bufio.NewReader(cmd.InOrStdin())

	provider, err := chooseProvider(cmd, reader, args)
	if err != nil {
		return err
	}
	fields := collectFields(cmd, reader, provider)

	if !credentialService.Validate(provider, fields) {
		return fmt.Errorf("%w: %s needs %s", domain.ErrInvalidCredentials,
			provider.Description(), strings.Join(provider.RequiredFields(), ", "))
	}

	if !credNoVerify {
		svc := sessionFor(provider)
		if svc == nil {
			return fmt.Errorf("%s service not configured", provider)
		}
		if err := svc.Initialize(ctx, fields); err != nil {
			return err
		}
		who, err := testConnection(ctx, provider)
		if err != nil {
			return fmt.Errorf("connection test failed, credentials not stored: %w", err)
		}
		cmd.Printf("Connected to %s as %s\n", provider.Description(), who)
	}

	if err := credentialService.Store(ctx, provider, fields); err != nil {
		return fmt.Errorf("failed to store credentials: %w", err)
	}
	cmd.Printf("Stored %s credentials\n", provider.Description())
	return nil
}

// chooseProvider parses the argument or asks for a provider.
func chooseProvider(cmd *cobra.Command, reader *bufio.Reader, args []string) (domain.Provider, error) {
	if len(args) == 1 {
		return domain.ParseProvider(args[0])
	}

	providers := domain.AllProviders()
	cmd.Println("Providers:")
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nSelect provider [1]: ")
	return providers[parseChoice(readLine(reader), len(providers), 1)-1], nil
}

// collectFields merges flag values with prompted ones.
func collectFields(cmd *cobra.Command, reader *bufio.Reader, provider domain.Provider) map[string]string {
	values := map[string]string{
		domain.FieldToken:    credToken,
		domain.FieldDomain:   credDomain,
		domain.FieldEmail:    credEmail,
		domain.FieldAPIToken: credAPIToken,
	}
	labels := map[string]string{
		domain.FieldToken:    "Personal access token",
		domain.FieldDomain:   "Site domain (e.g. acme.atlassian.net)",
		domain.FieldEmail:    "Account email",
		domain.FieldAPIToken: "API token",
	}
	secret := make(map[string]bool)
	for _, name := range provider.SecretFields() {
		secret[name] = true
	}

	fields := make(map[string]string)
	for _, name := range provider.RequiredFields() {
		value := strings.TrimSpace(values[name])
		if value == "" {
			cmd.Printf("%s: ", labels[name])
			if secret[name] {
				value = readSecret(reader, cmd.InOrStdin())
				cmd.Println()
			} else {
				value = readLine(reader)
			}
		}
		fields[name] = value
	}
	return fields
}

func runCredentialsShow(cmd *cobra.Command, args []string) error {
	if credentialService == nil {
		return errors.New("credential service not configured")
	}

	providers := domain.AllProviders()
	if len(args) == 1 {
		p, err := domain.ParseProvider(args[0])
		if err != nil {
			return err
		}
		providers = []domain.Provider{p}
	}

	ctx := cmd.Context()
	for _, p := range providers {
		rec, err := credentialService.Get(ctx, p)
		if err != nil {
			return fmt.Errorf("failed to read credentials: %w", err)
		}

		cmd.Printf("[%s]\n", p.Description())
		if rec == nil {
			cmd.Println("  (not configured)")
			cmd.Println()
			continue
		}

		secret := make(map[string]bool)
		for _, name := range p.SecretFields() {
			secret[name] = true
		}
		for _, name := range p.RequiredFields() {
			value := rec.Get(name)
			if secret[name] {
				value = domain.MaskSecret(value)
			}
			cmd.Printf("  %s: %s\n", name, value)
		}
		cmd.Printf("  Stored: %s\n", rec.Timestamp.Format("2006-01-02 15:04"))
		cmd.Println()
	}
	return nil
}

func runCredentialsRemove(cmd *cobra.Command, args []string) error {
	if credentialService == nil {
		return errors.New("credential service not configured")
	}

	provider, err := domain.ParseProvider(args[0])
	if err != nil {
		return err
	}
	if err := credentialService.Remove(cmd.Context(), provider); err != nil {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	if svc := sessionFor(provider); svc != nil {
		svc.Reset()
	}

	cmd.Printf("Removed %s credentials\n", provider.Description())
	return nil
}

func runCredentialsClear(cmd *cobra.Command, _ []string) error {
	if credentialService == nil {
		return errors.New("credential service not configured")
	}

	if err := credentialService.ClearAll(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	for _, p := range domain.AllProviders() {
		if svc := sessionFor(p); svc != nil {
			svc.Reset()
		}
	}

	cmd.Println("Removed all stored credentials")
	return nil
}
