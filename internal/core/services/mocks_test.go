package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
)

// mockFactory records how many sessions were built and hands out fixed APIs.
type mockFactory struct {
	github     *mockGitHubAPI
	jira       *mockJiraAPI
	confluence *mockConfluenceAPI
	err        error

	calls      atomic.Int32
	lastTokens driven.TokenProvider
	lastCreds  domain.AtlassianCredentials
}

func (f *mockFactory) GitHub(_ context.Context, tokens driven.TokenProvider) (driven.GitHubAPI, error) {
	f.calls.Add(1)
	f.lastTokens = tokens
	if f.err != nil {
		return nil, f.err
	}
	return f.github, nil
}

func (f *mockFactory) Jira(_ context.Context, creds domain.AtlassianCredentials) (driven.JiraAPI, error) {
	f.calls.Add(1)
	f.lastCreds = creds
	if f.err != nil {
		return nil, f.err
	}
	return f.jira, nil
}

func (f *mockFactory) Confluence(
	_ context.Context, creds domain.AtlassianCredentials,
) (driven.ConfluenceAPI, error) {
	f.calls.Add(1)
	f.lastCreds = creds
	if f.err != nil {
		return nil, f.err
	}
	return f.confluence, nil
}

// mockGitHubAPI serves canned GitHub data. Fields ending in Err force failures.
type mockGitHubAPI struct {
	user    *domain.GitHubUser
	repo    *domain.Repository
	repos   []domain.RepositoryListing
	issues  []domain.Issue
	prs     []domain.PullRequest
	commits []domain.Commit

	userErr    error
	repoErr    error
	issuesErr  error
	prsErr     error
	commitsErr error

	mu            sync.Mutex
	issueStates   []string
	commitBranch  string
	createdIssue  *domain.NewIssue
	stateUpdates  map[int]string
	commentBodies []string
}

func (m *mockGitHubAPI) CurrentUser(context.Context) (*domain.GitHubUser, error) {
	return m.user, m.userErr
}

func (m *mockGitHubAPI) ListRepositories(context.Context) ([]domain.RepositoryListing, error) {
	return m.repos, nil
}

func (m *mockGitHubAPI) GetRepository(context.Context, string, string) (*domain.Repository, error) {
	if m.repoErr != nil {
		return nil, m.repoErr
	}
	return m.repo, nil
}

func (m *mockGitHubAPI) ListIssues(ctx context.Context, _, _, state string) ([]domain.Issue, error) {
	m.mu.Lock()
	m.issueStates = append(m.issueStates, state)
	m.mu.Unlock()
	return m.issues, m.issuesErr
}

func (m *mockGitHubAPI) ListPullRequests(ctx context.Context, _, _, _ string) ([]domain.PullRequest, error) {
	if m.prsErr != nil {
		return nil, m.prsErr
	}
	return m.prs, nil
}

func (m *mockGitHubAPI) ListCommits(ctx context.Context, _, _, branch string) ([]domain.Commit, error) {
	m.mu.Lock()
	m.commitBranch = branch
	m.mu.Unlock()
	if m.commitsErr != nil {
		// Block until a sibling failure cancels the group.
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.commits, nil
}

func (m *mockGitHubAPI) ListBranches(context.Context, string, string) ([]domain.Branch, error) {
	return []domain.Branch{{Name: "main"}}, nil
}

func (m *mockGitHubAPI) CreateIssue(_ context.Context, _, _ string, issue domain.NewIssue) (*domain.Issue, error) {
	m.createdIssue = &issue
	return &domain.Issue{Number: 42, Title: issue.Title, State: domain.IssueStateOpen}, nil
}

func (m *mockGitHubAPI) UpdateIssueState(
	_ context.Context, _, _ string, number int, state string,
) (*domain.Issue, error) {
	if m.stateUpdates == nil {
		m.stateUpdates = make(map[int]string)
	}
	m.stateUpdates[number] = state
	return &domain.Issue{Number: number, State: state}, nil
}

func (m *mockGitHubAPI) AddComment(
	_ context.Context, _, _ string, number int, body string,
) (*domain.IssueComment, error) {
	m.commentBodies = append(m.commentBodies, body)
	return &domain.IssueComment{ID: int64(number), Body: body}, nil
}

// mockJiraAPI serves canned Jira data and records transition POSTs.
type mockJiraAPI struct {
	user        *domain.JiraUser
	userErr     error
	projects    []domain.Project
	tickets     []domain.Ticket
	transitions domain.Transitions

	searchKey   string
	searchLimit int
	created     *domain.NewTicket
	posted      []string
	comments    []string
}

func (m *mockJiraAPI) Myself(context.Context) (*domain.JiraUser, error) {
	return m.user, m.userErr
}

func (m *mockJiraAPI) ListProjects(context.Context) ([]domain.Project, error) {
	return m.projects, nil
}

func (m *mockJiraAPI) SearchIssues(_ context.Context, projectKey string, maxResults int) ([]domain.Ticket, error) {
	m.searchKey = projectKey
	m.searchLimit = maxResults
	return m.tickets, nil
}

func (m *mockJiraAPI) GetIssue(_ context.Context, key string) (*domain.Ticket, error) {
	for i := range m.tickets {
		if m.tickets[i].Key == key {
			return &m.tickets[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockJiraAPI) CreateIssue(_ context.Context, ticket domain.NewTicket) (*domain.CreatedTicket, error) {
	m.created = &ticket
	return &domain.CreatedTicket{ID: "10001", Key: ticket.ProjectKey + "-1"}, nil
}

func (m *mockJiraAPI) Transitions(context.Context, string) (domain.Transitions, error) {
	return m.transitions, nil
}

func (m *mockJiraAPI) DoTransition(_ context.Context, _, transitionID string) error {
	m.posted = append(m.posted, transitionID)
	return nil
}

func (m *mockJiraAPI) AddComment(_ context.Context, _, body string) (*domain.CreatedComment, error) {
	m.comments = append(m.comments, body)
	return &domain.CreatedComment{ID: "1"}, nil
}

// mockConfluenceAPI serves canned Confluence data.
type mockConfluenceAPI struct {
	user    *domain.ConfluenceUser
	userErr error
	spaces  []domain.Space
	pages   []domain.Page
}

func (m *mockConfluenceAPI) CurrentUser(context.Context) (*domain.ConfluenceUser, error) {
	return m.user, m.userErr
}

func (m *mockConfluenceAPI) ListSpaces(context.Context) ([]domain.Space, error) {
	return m.spaces, nil
}

func (m *mockConfluenceAPI) ListPages(_ context.Context, spaceKey string) ([]domain.Page, error) {
	var out []domain.Page
	for _, p := range m.pages {
		if p.SpaceKey == spaceKey {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockConfluenceAPI) GetPage(_ context.Context, id string) (*domain.Page, error) {
	for i := range m.pages {
		if m.pages[i].ID == id {
			return &m.pages[i], nil
		}
	}
	return nil, domain.ErrNotFound
}
