package mcp

import (
	"context"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
)

// mockGitHubService implements the GitHub methods the server calls.
// Other methods panic through the nil embedded interface.
type mockGitHubService struct {
	driving.GitHubService

	summary *domain.RepositorySummary
	repos   []domain.RepositoryListing
	err     error

	gotOwner, gotRepo string
}

func (m *mockGitHubService) RepositorySummary(_ context.Context, owner, repo string) (*domain.RepositorySummary, error) {
	m.gotOwner, m.gotRepo = owner, repo
	return m.summary, m.err
}

func (m *mockGitHubService) ListRepositories(_ context.Context) ([]domain.RepositoryListing, error) {
	return m.repos, m.err
}

// mockJiraService implements the Jira methods the server calls.
type mockJiraService struct {
	driving.JiraService

	projects []domain.Project
	tickets  []domain.Ticket
	comment  *domain.CreatedComment
	err      error

	gotProject string
	gotLimit   int
	gotKey     string
	gotStatus  string
	gotBody    string
}

func (m *mockJiraService) ListProjects(_ context.Context) ([]domain.Project, error) {
	return m.projects, m.err
}

func (m *mockJiraService) SearchIssues(_ context.Context, projectKey string, maxResults int) ([]domain.Ticket, error) {
	m.gotProject, m.gotLimit = projectKey, maxResults
	return m.tickets, m.err
}

func (m *mockJiraService) UpdateIssueStatus(_ context.Context, key, status string) error {
	m.gotKey, m.gotStatus = key, status
	return m.err
}

func (m *mockJiraService) AddComment(_ context.Context, key, body string) (*domain.CreatedComment, error) {
	m.gotKey, m.gotBody = key, body
	return m.comment, m.err
}

// mockConfluenceService implements the Confluence methods the server calls.
type mockConfluenceService struct {
	driving.ConfluenceService

	spaces []domain.Space
	pages  []domain.Page
	page   *domain.Page
	err    error

	gotSpace  string
	gotPageID string
}

func (m *mockConfluenceService) ListSpaces(_ context.Context) ([]domain.Space, error) {
	return m.spaces, m.err
}

func (m *mockConfluenceService) ListPages(_ context.Context, spaceKey string) ([]domain.Page, error) {
	m.gotSpace = spaceKey
	return m.pages, m.err
}

func (m *mockConfluenceService) GetPage(_ context.Context, id string) (*domain.Page, error) {
	m.gotPageID = id
	return m.page, m.err
}
