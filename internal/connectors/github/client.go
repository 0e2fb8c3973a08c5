package github

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Client is a GitHub session backed by go-github.
type Client struct {
	cfg           Config
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter

	mu sync.Mutex
	gh *gh.Client
}

// Verify interface compliance.
var _ driven.GitHubAPI = (*Client)(nil)

// NewClient creates a GitHub session. The token is fetched on first use.
func NewClient(tokenProvider driven.TokenProvider, cfg Config) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("%w: github token provider", domain.ErrInvalidInput)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		cfg:           cfg,
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(cfg.RequestsPerSecond, cfg.Burst),
	}, nil
}

// ensureClient initialises the go-github client if not already done.
// This is called lazily so the token is only requested when needed. The
// token is re-read from the provider whenever it expires, so refreshed OAuth
// tokens reach long-running sessions.
func (c *Client) ensureClient(ctx context.Context) (*gh.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gh != nil {
		return c.gh, nil
	}

	// The HTTP client must outlive the request that created it.
	base := context.WithoutCancel(ctx)
	ts := newTokenSource(base, c.tokenProvider)
	if _, err := ts.Token(); err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	tc := oauth2.NewClient(base, ts)
	tc.Timeout = c.cfg.Timeout

	client := gh.NewClient(tc)
	if c.cfg.BaseURL != "" {
		base, err := url.Parse(c.cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: github base URL", domain.ErrInvalidInput)
		}
		client.BaseURL = base
	}
	c.gh = client
	return client, nil
}

// prepare returns the go-github client once the rate limiter allows a request.
func (c *Client) prepare(ctx context.Context) (*gh.Client, error) {
	client, err := c.ensureClient(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return client, nil
}

// CurrentUser fetches the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*domain.GitHubUser, error) {
	client, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}

	user, resp, err := client.Users.Get(ctx, "")
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "get user")
	}
	return toUser(user), nil
}

// ListRepositories returns every repository the authenticated user can
// access, most recently updated first.
func (c *Client) ListRepositories(ctx context.Context) ([]domain.RepositoryListing, error) {
	opts := &gh.RepositoryListByAuthenticatedUserOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: ListPageSize},
	}

	var out []domain.RepositoryListing
	for {
		client, err := c.prepare(ctx)
		if err != nil {
			return nil, err
		}

		repos, resp, err := client.Repositories.ListByAuthenticatedUser(ctx, opts)
		c.updateRateLimitFromResponse(resp)
		if err != nil {
			return nil, c.wrapError(err, "list repos")
		}

		for _, repo := range repos {
			out = append(out, toListing(repo))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	if out == nil {
		out = []domain.RepositoryListing{}
	}
	return out, nil
}

// GetRepository fetches a single repository.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*domain.Repository, error) {
	client, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}

	repository, resp, err := client.Repositories.Get(ctx, owner, repo)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "get repo")
	}
	return toRepository(repository), nil
}

// ListIssues fetches the first page of issues in state.
func (c *Client) ListIssues(ctx context.Context, owner, repo, state string) ([]domain.Issue, error) {
	client, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}

	opts := &gh.IssueListByRepoOptions{
		State:       state,
		ListOptions: gh.ListOptions{PerPage: ListPageSize},
	}
	issues, resp, err := client.Issues.ListByRepo(ctx, owner, repo, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "list issues")
	}

	out := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		out = append(out, toIssue(issue))
	}
	return out, nil
}

// ListPullRequests fetches the first page of pull requests in state.
func (c *Client) ListPullRequests(ctx context.Context, owner, repo, state string) ([]domain.PullRequest, error) {
	client, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}

	opts := &gh.PullRequestListOptions{
		State:       state,
		ListOptions: gh.ListOptions{PerPage: ListPageSize},
	}
	prs, resp, err := client.PullRequests.List(ctx, owner, repo, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "list pull requests")
	}

	out := make([]domain.PullRequest, 0, len(prs))
	for _, pr := range prs {
		out = append(out, toPullRequest(pr))
	}
	return out, nil
}

// ListCommits fetches the most recent commits on branch.
func (c *Client) ListCommits(ctx context.Context, owner, repo, branch string) ([]domain.Commit, error) {
	client, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}

	opts := &gh.CommitsListOptions{
		SHA:         branch,
		ListOptions: gh.ListOptions{PerPage: CommitPageSize},
	}
	commits, resp, err := client.Repositories.ListCommits(ctx, owner, repo, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "list commits")
	}

	out := make([]domain.Commit, 0, len(commits))
	for _, commit := range commits {
		out = append(out, toCommit(commit))
	}
	return out, nil
}

// ListBranches fetches the repository's branches.
func (c *Client) ListBranches(ctx context.Context, owner, repo string) ([]domain.Branch, error) {
	client, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}

	opts := &gh.BranchListOptions{ListOptions: gh.ListOptions{PerPage: ListPageSize}}
	branches, resp, err := client.Repositories.ListBranches(ctx, owner, repo, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "list branches")
	}

	out := make([]domain.Branch, 0, len(branches))
	for _, branch := range branches {
		out = append(out, toBranch(branch))
	}
	return out, nil
}

// CreateIssue opens an issue.
func (c *Client) CreateIssue(ctx context.Context, owner, repo string, issue domain.NewIssue) (*domain.Issue, error) {
	client, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}

	labels := issue.Labels
	if labels == nil {
		labels = []string{}
	}
	req := &gh.IssueRequest{
		Title:  gh.Ptr(issue.Title),
		Body:   gh.Ptr(issue.Body),
		Labels: &labels,
	}
	created, resp, err := client.Issues.Create(ctx, owner, repo, req)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "create issue")
	}

	out := toIssue(created)
	return &out, nil
}

// UpdateIssueState opens or closes an issue.
func (c *Client) UpdateIssueState(ctx context.Context, owner, repo string, number int, state string) (*domain.Issue, error) {
	client, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}

	updated, resp, err := client.Issues.Edit(ctx, owner, repo, number, &gh.IssueRequest{State: gh.Ptr(state)})
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "update issue")
	}

	out := toIssue(updated)
	return &out, nil
}

// AddComment comments on an issue or pull request.
func (c *Client) AddComment(ctx context.Context, owner, repo string, number int, body string) (*domain.IssueComment, error) {
	client, err := c.prepare(ctx)
	if err != nil {
		return nil, err
	}

	comment, resp, err := client.Issues.CreateComment(ctx, owner, repo, number, &gh.IssueComment{Body: gh.Ptr(body)})
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, c.wrapError(err, "add comment")
	}
	return toComment(comment), nil
}

// RateLimiter returns the client's rate limiter.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// updateRateLimitFromResponse records the quota reported with resp.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response) {
	c.rateLimiter.Observe(resp)
}

// wrapError converts err with the limiter's last known quota.
func (c *Client) wrapError(err error, operation string) error {
	return translate(err, operation, c.rateLimiter.Quota())
}
