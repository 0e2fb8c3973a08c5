package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// Ensure JiraService implements the interface.
var _ driving.JiraService = (*JiraService)(nil)

// JiraService holds the Jira session and exposes ticket data.
type JiraService struct {
	factory driven.SessionFactory
	session session[driven.JiraAPI]
}

// NewJiraService creates an uninitialised Jira service.
func NewJiraService(factory driven.SessionFactory) *JiraService {
	return &JiraService{factory: factory}
}

// Initialize validates fields and opens a basic-auth session.
func (s *JiraService) Initialize(ctx context.Context, fields map[string]string) error {
	if !domain.HasRequiredFields(fields, domain.ProviderJira.RequiredFields()) {
		return fmt.Errorf("initialise jira: %w", domain.ErrInvalidCredentials)
	}
	creds := domain.AtlassianCredentialsFrom(fields)
	api, err := s.factory.Jira(ctx, creds)
	if err != nil {
		return fmt.Errorf("initialise jira: %w", err)
	}
	s.session.set(api)
	logger.Debug("jira session initialised for %s", creds.BaseURL())
	return nil
}

// IsInitialized reports whether a session is open.
func (s *JiraService) IsInitialized() bool {
	return s.session.isActive()
}

// Reset drops the session.
func (s *JiraService) Reset() {
	s.session.reset()
	logger.Debug("jira session reset")
}

// TestConnection fetches the authenticated user. Rejected credentials reset the session.
func (s *JiraService) TestConnection(ctx context.Context) (*domain.JiraUser, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	user, err := api.Myself(ctx)
	if err != nil {
		if isAuthFailure(err) {
			s.Reset()
		}
		return nil, fmt.Errorf("jira connection test: %w", err)
	}
	return user, nil
}

// ListProjects lists the projects visible to the user.
func (s *JiraService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	return api.ListProjects(ctx)
}

// SearchIssues returns tickets of a project.
func (s *JiraService) SearchIssues(ctx context.Context, projectKey string, maxResults int) ([]domain.Ticket, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	projectKey = strings.TrimSpace(projectKey)
	if projectKey == "" {
		return nil, fmt.Errorf("%w: project key is required", domain.ErrInvalidInput)
	}
	if maxResults <= 0 {
		maxResults = domain.DefaultSearchLimit
	}
	return api.SearchIssues(ctx, projectKey, maxResults)
}

// GetIssue fetches one ticket by key.
func (s *JiraService) GetIssue(ctx context.Context, key string) (*domain.Ticket, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	return api.GetIssue(ctx, key)
}

// CreateIssue creates a ticket. Priority defaults to Medium and the issue type to Task.
func (s *JiraService) CreateIssue(ctx context.Context, ticket domain.NewTicket) (*domain.CreatedTicket, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	if err := ticket.Validate(); err != nil {
		return nil, err
	}
	return api.CreateIssue(ctx, ticket)
}

// UpdateIssueStatus moves an issue to status. Jira only allows moves along
// the workflow edges leaving the current status, so the edge is looked up
// first; when none leads to status no change is submitted.
func (s *JiraService) UpdateIssueStatus(ctx context.Context, key, status string) error {
	api, err := s.session.get()
	if err != nil {
		return err
	}

	transitions, err := api.Transitions(ctx, key)
	if err != nil {
		return fmt.Errorf("get transitions for %s: %w", key, err)
	}

	transition, err := transitions.Resolve(key, status)
	if err != nil {
		return err
	}

	logger.Debug("jira %s: transition %s (%s) to %q", key, transition.ID, transition.Name, transition.To)
	if err := api.DoTransition(ctx, key, transition.ID); err != nil {
		return fmt.Errorf("transition %s to %q: %w", key, status, err)
	}
	return nil
}

// AddComment comments on an issue.
func (s *JiraService) AddComment(ctx context.Context, key, body string) (*domain.CreatedComment, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: comment body is required", domain.ErrInvalidInput)
	}
	return api.AddComment(ctx, key, body)
}
