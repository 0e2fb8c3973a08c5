package driven

import (
	"context"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// SessionFactory builds provider sessions.
// Building a session performs no network I/O; the first request does.
type SessionFactory interface {
	// GitHub creates a GitHub session authenticated by tokens.
	GitHub(ctx context.Context, tokens TokenProvider) (GitHubAPI, error)

	// Jira creates a Jira session using basic auth.
	Jira(ctx context.Context, creds domain.AtlassianCredentials) (JiraAPI, error)

	// Confluence creates a Confluence session using basic auth.
	Confluence(ctx context.Context, creds domain.AtlassianCredentials) (ConfluenceAPI, error)
}

// GitHubAPI is an authenticated GitHub REST v3 session.
// Errors for 401/403 responses match domain.ErrAuthInvalid and 404
// responses match domain.ErrNotFound.
type GitHubAPI interface {
	// CurrentUser fetches the authenticated user.
	CurrentUser(ctx context.Context) (*domain.GitHubUser, error)

	// ListRepositories lists the user's repositories, most recently updated first.
	ListRepositories(ctx context.Context) ([]domain.RepositoryListing, error)

	// GetRepository fetches one repository.
	GetRepository(ctx context.Context, owner, repo string) (*domain.Repository, error)

	// ListIssues lists issues in the given state. Pull requests returned by
	// the issues endpoint are flagged with IsPullRequest.
	ListIssues(ctx context.Context, owner, repo, state string) ([]domain.Issue, error)

	// ListPullRequests lists pull requests in the given state.
	ListPullRequests(ctx context.Context, owner, repo, state string) ([]domain.PullRequest, error)

	// ListCommits lists recent commits on branch. An empty branch means the
	// repository's default branch.
	ListCommits(ctx context.Context, owner, repo, branch string) ([]domain.Commit, error)

	// ListBranches lists the repository's branches.
	ListBranches(ctx context.Context, owner, repo string) ([]domain.Branch, error)

	// CreateIssue opens a new issue.
	CreateIssue(ctx context.Context, owner, repo string, issue domain.NewIssue) (*domain.Issue, error)

	// UpdateIssueState opens or closes an issue.
	UpdateIssueState(ctx context.Context, owner, repo string, number int, state string) (*domain.Issue, error)

	// AddComment comments on an issue or pull request.
	AddComment(ctx context.Context, owner, repo string, number int, body string) (*domain.IssueComment, error)
}

// JiraAPI is an authenticated Jira Cloud REST v3 session.
type JiraAPI interface {
	// Myself fetches the authenticated user.
	Myself(ctx context.Context) (*domain.JiraUser, error)

	// ListProjects lists the projects visible to the user.
	ListProjects(ctx context.Context) ([]domain.Project, error)

	// SearchIssues returns up to maxResults tickets of a project.
	SearchIssues(ctx context.Context, projectKey string, maxResults int) ([]domain.Ticket, error)

	// GetIssue fetches one ticket by key.
	GetIssue(ctx context.Context, key string) (*domain.Ticket, error)

	// CreateIssue creates a ticket.
	CreateIssue(ctx context.Context, ticket domain.NewTicket) (*domain.CreatedTicket, error)

	// Transitions lists the workflow edges available from the issue's status.
	Transitions(ctx context.Context, key string) (domain.Transitions, error)

	// DoTransition moves the issue along the edge with transitionID.
	DoTransition(ctx context.Context, key, transitionID string) error

	// AddComment comments on an issue.
	AddComment(ctx context.Context, key, body string) (*domain.CreatedComment, error)
}

// ConfluenceAPI is an authenticated Confluence Cloud REST session.
type ConfluenceAPI interface {
	// CurrentUser fetches the authenticated user.
	CurrentUser(ctx context.Context) (*domain.ConfluenceUser, error)

	// ListSpaces lists the spaces visible to the user.
	ListSpaces(ctx context.Context) ([]domain.Space, error)

	// ListPages lists the pages of a space with their storage body.
	ListPages(ctx context.Context, spaceKey string) ([]domain.Page, error)

	// GetPage fetches one page with its storage body.
	GetPage(ctx context.Context, id string) (*domain.Page, error)
}
