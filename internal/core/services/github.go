package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// Ensure GitHubService implements the interface.
var _ driving.GitHubService = (*GitHubService)(nil)

// GitHubService holds the GitHub session and exposes repository data.
type GitHubService struct {
	factory driven.SessionFactory
	session session[driven.GitHubAPI]
}

// NewGitHubService creates an uninitialised GitHub service.
func NewGitHubService(factory driven.SessionFactory) *GitHubService {
	return &GitHubService{factory: factory}
}

// Initialize validates fields and opens a session authenticated by the token.
func (s *GitHubService) Initialize(ctx context.Context, fields map[string]string) error {
	if !domain.HasRequiredFields(fields, domain.ProviderGitHub.RequiredFields()) {
		return fmt.Errorf("initialise github: %w", domain.ErrInvalidCredentials)
	}
	creds := domain.GitHubCredentialsFrom(fields)
	return s.InitializeWithTokens(ctx, &patTokenProvider{token: creds.Token})
}

// InitializeWithTokens opens a session backed by a token provider.
func (s *GitHubService) InitializeWithTokens(ctx context.Context, tokens driven.TokenProvider) error {
	if tokens == nil {
		return fmt.Errorf("initialise github: %w", domain.ErrInvalidCredentials)
	}
	api, err := s.factory.GitHub(ctx, tokens)
	if err != nil {
		return fmt.Errorf("initialise github: %w", err)
	}
	s.session.set(api)
	logger.Debug("github session initialised (%s)", tokens.AuthMethod())
	return nil
}

// IsInitialized reports whether a session is open.
func (s *GitHubService) IsInitialized() bool {
	return s.session.isActive()
}

// Reset drops the session.
func (s *GitHubService) Reset() {
	s.session.reset()
	logger.Debug("github session reset")
}

// TestConnection fetches the authenticated user. A rejected token resets the session.
func (s *GitHubService) TestConnection(ctx context.Context) (*domain.GitHubUser, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	user, err := api.CurrentUser(ctx)
	if err != nil {
		if isAuthFailure(err) {
			s.Reset()
		}
		return nil, fmt.Errorf("github connection test: %w", err)
	}
	return user, nil
}

// GetUser fetches the authenticated user.
func (s *GitHubService) GetUser(ctx context.Context) (*domain.GitHubUser, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	return api.CurrentUser(ctx)
}

// ListRepositories lists the user's repositories, most recently updated first.
func (s *GitHubService) ListRepositories(ctx context.Context) ([]domain.RepositoryListing, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	return api.ListRepositories(ctx)
}

// GetRepository fetches one repository.
func (s *GitHubService) GetRepository(ctx context.Context, owner, repo string) (*domain.Repository, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	return api.GetRepository(ctx, owner, repo)
}

// ListIssues lists issues in state. An empty state means open.
func (s *GitHubService) ListIssues(ctx context.Context, owner, repo, state string) ([]domain.Issue, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	return api.ListIssues(ctx, owner, repo, defaultState(state))
}

// ListPullRequests lists pull requests in state. An empty state means open.
func (s *GitHubService) ListPullRequests(
	ctx context.Context, owner, repo, state string,
) ([]domain.PullRequest, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	return api.ListPullRequests(ctx, owner, repo, defaultState(state))
}

// ListCommits lists recent commits on branch.
func (s *GitHubService) ListCommits(ctx context.Context, owner, repo, branch string) ([]domain.Commit, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	return api.ListCommits(ctx, owner, repo, branch)
}

// ListBranches lists the repository's branches.
func (s *GitHubService) ListBranches(ctx context.Context, owner, repo string) ([]domain.Branch, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	return api.ListBranches(ctx, owner, repo)
}

// CreateIssue opens a new issue.
func (s *GitHubService) CreateIssue(
	ctx context.Context, owner, repo string, issue domain.NewIssue,
) (*domain.Issue, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	if issue.Title == "" {
		return nil, fmt.Errorf("%w: issue title is required", domain.ErrInvalidInput)
	}
	return api.CreateIssue(ctx, owner, repo, issue)
}

// UpdateIssueState opens or closes an issue.
func (s *GitHubService) UpdateIssueState(
	ctx context.Context, owner, repo string, number int, state string,
) (*domain.Issue, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	if state != domain.IssueStateOpen && state != domain.IssueStateClosed {
		return nil, fmt.Errorf("%w: state must be open or closed, got %q", domain.ErrInvalidInput, state)
	}
	return api.UpdateIssueState(ctx, owner, repo, number, state)
}

// AddComment comments on an issue or pull request.
func (s *GitHubService) AddComment(
	ctx context.Context, owner, repo string, number int, body string,
) (*domain.IssueComment, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is required", domain.ErrInvalidInput)
	}
	return api.AddComment(ctx, owner, repo, number, body)
}

// RepositorySummary fetches repository metadata, open issues, open pull
// requests and recent commits concurrently. The first failure cancels the
// remaining requests and fails the whole call.
func (s *GitHubService) RepositorySummary(
	ctx context.Context, owner, repo string,
) (*domain.RepositorySummary, error) {
	api, err := s.session.get()
	if err != nil {
		return nil, err
	}

	var (
		info    *domain.Repository
		issues  []domain.Issue
		prs     []domain.PullRequest
		commits []domain.Commit
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = api.GetRepository(gctx, owner, repo)
		return err
	})
	g.Go(func() error {
		var err error
		issues, err = api.ListIssues(gctx, owner, repo, domain.IssueStateOpen)
		return err
	})
	g.Go(func() error {
		var err error
		prs, err = api.ListPullRequests(gctx, owner, repo, domain.IssueStateOpen)
		return err
	})
	g.Go(func() error {
		var err error
		commits, err = api.ListCommits(gctx, owner, repo, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("repository summary %s/%s: %w", owner, repo, err)
	}

	summary := &domain.RepositorySummary{
		RepoInfo: *info,
		Issues:   domain.WithoutPullRequests(issues),
		PRs:      prs,
		Commits:  commits,
	}
	summary.RepoInfo.PullRequests = len(prs)
	return summary, nil
}

func defaultState(state string) string {
	if state == "" {
		return domain.IssueStateOpen
	}
	return state
}
