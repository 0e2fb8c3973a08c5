package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/devsync-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
	"github.com/custodia-labs/devsync-cli/internal/core/services"
)

// mockGitHubService records calls and returns canned data.
type mockGitHubService struct {
	driving.GitHubService
	initialized bool
	fields      map[string]string
	tokens      driven.TokenProvider
	user        *domain.GitHubUser
	repos       []domain.RepositoryListing
	summary     *domain.RepositorySummary
	issues      []domain.Issue
	prs         []domain.PullRequest
	commits     []domain.Commit
	branches    []domain.Branch
	err         error

	gotRepo   domain.RepoRef
	gotState  string
	gotBranch string
	gotIssue  domain.NewIssue
	gotNumber int
	gotBody   string
}

func (m *mockGitHubService) Initialize(_ context.Context, fields map[string]string) error {
	m.fields = fields
	m.initialized = true
	return nil
}

func (m *mockGitHubService) InitializeWithTokens(_ context.Context, tokens driven.TokenProvider) error {
	m.tokens = tokens
	m.initialized = true
	return nil
}

func (m *mockGitHubService) IsInitialized() bool { return m.initialized }
func (m *mockGitHubService) Reset()              { m.initialized = false }

func (m *mockGitHubService) TestConnection(_ context.Context) (*domain.GitHubUser, error) {
	return m.user, m.err
}

func (m *mockGitHubService) GetUser(_ context.Context) (*domain.GitHubUser, error) {
	return m.user, m.err
}

func (m *mockGitHubService) ListRepositories(_ context.Context) ([]domain.RepositoryListing, error) {
	return m.repos, m.err
}

func (m *mockGitHubService) RepositorySummary(_ context.Context, owner, repo string) (*domain.RepositorySummary, error) {
	m.gotRepo = domain.RepoRef{Owner: owner, Name: repo}
	return m.summary, m.err
}

func (m *mockGitHubService) ListIssues(_ context.Context, owner, repo, state string) ([]domain.Issue, error) {
	m.gotRepo, m.gotState = domain.RepoRef{Owner: owner, Name: repo}, state
	return m.issues, m.err
}

func (m *mockGitHubService) ListPullRequests(_ context.Context, owner, repo, state string) ([]domain.PullRequest, error) {
	m.gotRepo, m.gotState = domain.RepoRef{Owner: owner, Name: repo}, state
	return m.prs, m.err
}

func (m *mockGitHubService) ListCommits(_ context.Context, owner, repo, branch string) ([]domain.Commit, error) {
	m.gotRepo, m.gotBranch = domain.RepoRef{Owner: owner, Name: repo}, branch
	return m.commits, m.err
}

func (m *mockGitHubService) ListBranches(_ context.Context, owner, repo string) ([]domain.Branch, error) {
	m.gotRepo = domain.RepoRef{Owner: owner, Name: repo}
	return m.branches, m.err
}

func (m *mockGitHubService) CreateIssue(
	_ context.Context, owner, repo string, issue domain.NewIssue,
) (*domain.Issue, error) {
	m.gotRepo, m.gotIssue = domain.RepoRef{Owner: owner, Name: repo}, issue
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Issue{Number: 42, Title: issue.Title, State: domain.IssueStateOpen,
		HTMLURL: fmt.Sprintf("https://github.com/%s/%s/issues/42", owner, repo)}, nil
}

func (m *mockGitHubService) UpdateIssueState(
	_ context.Context, owner, repo string, number int, state string,
) (*domain.Issue, error) {
	m.gotRepo, m.gotNumber, m.gotState = domain.RepoRef{Owner: owner, Name: repo}, number, state
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Issue{Number: number, State: state}, nil
}

func (m *mockGitHubService) AddComment(
	_ context.Context, owner, repo string, number int, body string,
) (*domain.IssueComment, error) {
	m.gotRepo, m.gotNumber, m.gotBody = domain.RepoRef{Owner: owner, Name: repo}, number, body
	if m.err != nil {
		return nil, m.err
	}
	return &domain.IssueComment{ID: 7, Body: body,
		HTMLURL: fmt.Sprintf("https://github.com/%s/%s/issues/%d#issuecomment-7", owner, repo, number)}, nil
}

// mockJiraService records calls and returns canned data.
type mockJiraService struct {
	driving.JiraService
	initialized bool
	user        *domain.JiraUser
	projects    []domain.Project
	tickets     []domain.Ticket
	ticket      *domain.Ticket
	err         error

	gotProject string
	gotLimit   int
	gotNew     domain.NewTicket
	gotKey     string
	gotStatus  string
	gotBody    string
}

func (m *mockJiraService) Initialize(_ context.Context, _ map[string]string) error {
	m.initialized = true
	return nil
}

func (m *mockJiraService) IsInitialized() bool { return m.initialized }
func (m *mockJiraService) Reset()              { m.initialized = false }

func (m *mockJiraService) TestConnection(_ context.Context) (*domain.JiraUser, error) {
	return m.user, m.err
}

func (m *mockJiraService) ListProjects(_ context.Context) ([]domain.Project, error) {
	return m.projects, m.err
}

func (m *mockJiraService) SearchIssues(_ context.Context, projectKey string, limit int) ([]domain.Ticket, error) {
	m.gotProject, m.gotLimit = projectKey, limit
	return m.tickets, m.err
}

func (m *mockJiraService) GetIssue(_ context.Context, key string) (*domain.Ticket, error) {
	m.gotKey = key
	return m.ticket, m.err
}

func (m *mockJiraService) CreateIssue(_ context.Context, t domain.NewTicket) (*domain.CreatedTicket, error) {
	m.gotNew = t
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CreatedTicket{ID: "10001", Key: t.ProjectKey + "-1"}, nil
}

func (m *mockJiraService) UpdateIssueStatus(_ context.Context, key, status string) error {
	m.gotKey, m.gotStatus = key, status
	return m.err
}

func (m *mockJiraService) AddComment(_ context.Context, key, body string) (*domain.CreatedComment, error) {
	m.gotKey, m.gotBody = key, body
	if m.err != nil {
		return nil, m.err
	}
	return &domain.CreatedComment{ID: "20001"}, nil
}

// mockConfluenceService returns canned data.
type mockConfluenceService struct {
	driving.ConfluenceService
	initialized bool
	user        *domain.ConfluenceUser
	spaces      []domain.Space
	pages       []domain.Page
	page        *domain.Page
	err         error
	gotSpace    string
}

func (m *mockConfluenceService) Initialize(_ context.Context, _ map[string]string) error {
	m.initialized = true
	return nil
}

func (m *mockConfluenceService) IsInitialized() bool { return m.initialized }
func (m *mockConfluenceService) Reset()              { m.initialized = false }

func (m *mockConfluenceService) TestConnection(_ context.Context) (*domain.ConfluenceUser, error) {
	return m.user, m.err
}

func (m *mockConfluenceService) ListSpaces(_ context.Context) ([]domain.Space, error) {
	return m.spaces, m.err
}

func (m *mockConfluenceService) ListPages(_ context.Context, spaceKey string) ([]domain.Page, error) {
	m.gotSpace = spaceKey
	return m.pages, m.err
}

func (m *mockConfluenceService) GetPage(_ context.Context, _ string) (*domain.Page, error) {
	return m.page, m.err
}

// mockRestoreService counts restores.
type mockRestoreService struct {
	calls int
	err   error
}

func (m *mockRestoreService) Restore(_ context.Context) error {
	m.calls++
	return m.err
}

// fakeExchanger sends the browser straight back to the redirect URI.
type fakeExchanger struct {
	code     string
	verifier string
}

func (f *fakeExchanger) AuthURL(_ domain.Provider, state, _, redirectURI string) (string, error) {
	q := url.Values{"code": {"auth-code"}, "state": {state}}
	return redirectURI + "?" + q.Encode(), nil
}

func (f *fakeExchanger) Exchange(
	_ context.Context, _ domain.Provider, code, codeVerifier, _ string,
) (*domain.OAuthToken, error) {
	f.code, f.verifier = code, codeVerifier
	return &domain.OAuthToken{AccessToken: "gho_access", RefreshToken: "ghr_refresh", TokenType: "bearer"}, nil
}

func (f *fakeExchanger) Refresh(_ context.Context, _ domain.Provider, _ string) (*domain.OAuthToken, error) {
	return &domain.OAuthToken{AccessToken: "gho_refreshed"}, nil
}

// testServices holds the services installed by setupTestServices.
type testServices struct {
	store       *memory.KVStore
	credentials *services.CredentialService
	settings    *services.SettingsService
	oauth       *services.OAuthService
	exchanger   *fakeExchanger
	github      *mockGitHubService
	jira        *mockJiraService
	confluence  *mockConfluenceService
	restore     *mockRestoreService
}

// setupTestServices installs in-memory core services and provider mocks.
// The returned function restores the previous state.
func setupTestServices() (*testServices, func()) {
	store := memory.NewKVStore()
	exchanger := &fakeExchanger{}
	ts := &testServices{
		store:       store,
		credentials: services.NewCredentialService(store),
		settings:    services.NewSettingsService(store),
		oauth:       services.NewOAuthService(store, exchanger),
		exchanger:   exchanger,
		github:      &mockGitHubService{user: &domain.GitHubUser{Login: "octocat"}},
		jira:        &mockJiraService{user: &domain.JiraUser{DisplayName: "Ada Lovelace"}},
		confluence:  &mockConfluenceService{user: &domain.ConfluenceUser{DisplayName: "Ada Lovelace"}},
		restore:     &mockRestoreService{},
	}

	SetServices(&Services{
		Credentials: ts.credentials,
		GitHub:      ts.github,
		Jira:        ts.jira,
		Confluence:  ts.confluence,
		Settings:    ts.settings,
		OAuth:       ts.oauth,
		Restore:     ts.restore,
	})

	return ts, func() {
		SetServices(nil)
		resetFlags(rootCmd)
	}
}

// resetFlags puts every flag back to its default so tests do not leak state.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCommand executes the root command with args and returns its output.
func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	var in io.Reader = strings.NewReader(stdin)
	rootCmd.SetIn(in)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
