package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// Ensure ConfluenceService implements the interface.
var _ driving.ConfluenceService = (*ConfluenceService)(nil)

// ConfluenceService holds the Confluence session and exposes documentation pages.
// It authenticates with the same Atlassian fields as Jira.
type ConfluenceService struct {
	factory driven.SessionFactory
	session session[driven.ConfluenceAPI]
}

// NewConfluenceService creates an uninitialised Confluence service.
func NewConfluenceService(factory driven.SessionFactory) *ConfluenceService {
	return &ConfluenceService{factory: factory}
}

// Initialize validates fields and opens a basic-auth session.
func (s *ConfluenceService) Initialize(ctx context.Context, fields map[string]string) error {
	if !domain.HasRequiredFields(fields, domain.ProviderConfluence.RequiredFields()) {
		return fmt.Errorf("initialise confluence: %w", domain.ErrInvalidCredentials)
	}
	api, err := s.factory.Confluence(ctx, domain.AtlassianCredentialsFrom(fields))
	if err != nil {
		return fmt.Errorf("initialise confluence: %w", err)
	}
	s.session.set(api)
	logger.Debug("confluence session initialised")
	return nil
}

// IsInitialized reports whether a session is open.
func (s *ConfluenceService) IsInitialized() bool {
	return s.session.isActive()
}

// Reset drops the session.
func (s *ConfluenceService) Reset() {
	s.session.reset()
}

// TestConnection fetches the authenticated user. Rejected credentials reset the session.
func (s *ConfluenceService) TestConnection(ctx context.Context) (*domain.ConfluenceUser, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	user, err := api.CurrentUser(ctx)
	if err != nil {
		if isAuthFailure(err) {
			s.Reset()
		}
		return nil, fmt.Errorf("confluence connection test: %w", err)
	}
	return user, nil
}

// ListSpaces lists the spaces visible to the user.
func (s *ConfluenceService) ListSpaces(ctx context.Context) ([]domain.Space, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	return api.ListSpaces(ctx)
}

// ListPages lists the pages of a space.
func (s *ConfluenceService) ListPages(ctx context.Context, spaceKey string) ([]domain.Page, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	if spaceKey == "" {
		return nil, fmt.Errorf("%w: space key is required", domain.ErrInvalidInput)
	}
	return api.ListPages(ctx, spaceKey)
}

// GetPage fetches one page with its storage body.
func (s *ConfluenceService) GetPage(ctx context.Context, id string) (*domain.Page, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	return api.GetPage(ctx, id)
}
