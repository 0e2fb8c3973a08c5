package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// Ensure RestoreService implements the interface.
var _ driving.RestoreService = (*RestoreService)(nil)

// RestoreService rebuilds provider sessions from persisted state.
type RestoreService struct {
	credentials driving.CredentialService
	oauth       driving.OAuthService
	github      driving.GitHubService
	jira        driving.JiraService
	confluence  driving.ConfluenceService
}

// NewRestoreService creates a restore service. oauth may be nil.
func NewRestoreService(
	credentials driving.CredentialService,
	oauth driving.OAuthService,
	github driving.GitHubService,
	jira driving.JiraService,
	confluence driving.ConfluenceService,
) *RestoreService {
	return &RestoreService{
		credentials: credentials,
		oauth:       oauth,
		github:      github,
		jira:        jira,
		confluence:  confluence,
	}
}

// Restore initialises each provider from its stored record. GitHub falls back
// to OAuth tokens when no record is stored and Confluence falls back to the
// Jira record, since both share the Atlassian site. A provider whose record is
// missing or removed is reset. Errors are joined so one broken provider does
// not stop the others.
func (s *RestoreService) Restore(ctx context.Context) error {
	logger.Section("Restore")

	var errs []error
	if err := s.restoreGitHub(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := s.restore(ctx, domain.ProviderJira, s.jira); err != nil {
		errs = append(errs, err)
	}
	if err := s.restore(ctx, domain.ProviderConfluence, s.confluence, domain.ProviderJira); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *RestoreService) restoreGitHub(ctx context.Context) error {
	rec, err := s.credentials.Get(ctx, domain.ProviderGitHub)
	if err != nil {
		return fmt.Errorf("restore github: %w", err)
	}
	if rec != nil {
		return s.github.Initialize(ctx, rec.Fields)
	}
	if s.oauth != nil && s.oauth.IsAuthenticated(ctx, domain.ProviderGitHub) {
		logger.Debug("restoring github from oauth tokens")
		return s.github.InitializeWithTokens(ctx, s.oauth.TokenProvider(domain.ProviderGitHub))
	}
	s.github.Reset()
	return nil
}

// restore initialises svc from the first stored record among provider and
// its fallbacks.
func (s *RestoreService) restore(ctx context.Context, provider domain.Provider, svc driving.Session, fallbacks ...domain.Provider) error {
	if svc == nil {
		return nil
	}
	var rec *domain.CredentialsRecord
	for _, p := range append([]domain.Provider{provider}, fallbacks...) {
		r, err := s.credentials.Get(ctx, p)
		if err != nil {
			return fmt.Errorf("restore %s: %w", provider, err)
		}
		if r != nil {
			if p != provider {
				logger.Debug("restoring %s from the %s record", provider, p)
			}
			rec = r
			break
		}
	}
	if rec == nil {
		svc.Reset()
		return nil
	}
	if err := svc.Initialize(ctx, rec.Fields); err != nil {
		return fmt.Errorf("restore %s: %w", provider, err)
	}
	return nil
}
