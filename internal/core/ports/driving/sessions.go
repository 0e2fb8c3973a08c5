package driving

import (
	"context"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
)

// Session is the lifecycle shared by every provider service.
type Session interface {
	// Initialize validates fields and opens a session.
	// Returns domain.ErrInvalidCredentials before any network I/O when a
	// required field is blank.
	Initialize(ctx context.Context, fields map[string]string) error

	// IsInitialized reports whether a session is open.
	IsInitialized() bool

	// Reset drops the session.
	Reset()
}

// GitHubService exposes GitHub data to the dashboard.
// Every data method returns domain.ErrNotInitialized without a session.
type GitHubService interface {
	Session

	// InitializeWithTokens opens a session backed by a token provider,
	// such as one refreshing OAuth tokens.
	InitializeWithTokens(ctx context.Context, tokens driven.TokenProvider) error

	// TestConnection fetches the authenticated user. A 401/403 resets the session.
	TestConnection(ctx context.Context) (*domain.GitHubUser, error)

	GetUser(ctx context.Context) (*domain.GitHubUser, error)
	ListRepositories(ctx context.Context) ([]domain.RepositoryListing, error)
	GetRepository(ctx context.Context, owner, repo string) (*domain.Repository, error)
	ListIssues(ctx context.Context, owner, repo, state string) ([]domain.Issue, error)
	ListPullRequests(ctx context.Context, owner, repo, state string) ([]domain.PullRequest, error)
	ListCommits(ctx context.Context, owner, repo, branch string) ([]domain.Commit, error)
	ListBranches(ctx context.Context, owner, repo string) ([]domain.Branch, error)
	CreateIssue(ctx context.Context, owner, repo string, issue domain.NewIssue) (*domain.Issue, error)
	UpdateIssueState(ctx context.Context, owner, repo string, number int, state string) (*domain.Issue, error)
	AddComment(ctx context.Context, owner, repo string, number int, body string) (*domain.IssueComment, error)

	// RepositorySummary fetches repository metadata, open issues, open pull
	// requests and recent commits concurrently. Any failure fails the call.
	RepositorySummary(ctx context.Context, owner, repo string) (*domain.RepositorySummary, error)
}

// JiraService exposes Jira data to the dashboard.
// Every data method returns domain.ErrNotInitialized without a session.
type JiraService interface {
	Session

	// TestConnection fetches the authenticated user. A 401/403 resets the session.
	TestConnection(ctx context.Context) (*domain.JiraUser, error)

	ListProjects(ctx context.Context) ([]domain.Project, error)

	// SearchIssues returns tickets of a project. maxResults <= 0 means the default of 50.
	SearchIssues(ctx context.Context, projectKey string, maxResults int) ([]domain.Ticket, error)

	GetIssue(ctx context.Context, key string) (*domain.Ticket, error)
	CreateIssue(ctx context.Context, ticket domain.NewTicket) (*domain.CreatedTicket, error)

	// UpdateIssueStatus moves an issue to the named status through the
	// workflow. Returns a *domain.TransitionError when no edge leads there.
	UpdateIssueStatus(ctx context.Context, key, status string) error

	AddComment(ctx context.Context, key, body string) (*domain.CreatedComment, error)
}

// ConfluenceService exposes Confluence data to the dashboard.
type ConfluenceService interface {
	Session

	// TestConnection fetches the authenticated user. A 401/403 resets the session.
	TestConnection(ctx context.Context) (*domain.ConfluenceUser, error)

	ListSpaces(ctx context.Context) ([]domain.Space, error)
	ListPages(ctx context.Context, spaceKey string) ([]domain.Page, error)
	GetPage(ctx context.Context, id string) (*domain.Page, error)
}

// RestoreService rebuilds provider sessions from persisted state.
type RestoreService interface {
	// Restore initialises every provider that has stored credentials or
	// OAuth tokens. Providers without either stay uninitialised.
	Restore(ctx context.Context) error
}
