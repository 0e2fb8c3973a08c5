package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// Default result limits.
const (
	defaultRepositoryLimit = 30
	maxCommitMessage       = 72
)

// RepositorySummaryInput is the input schema for github_repository_summary.
type RepositorySummaryInput struct {
	Repository string `json:"repository" jsonschema:"owner/repo or a github.com repository URL"`
}

// RepositorySummaryOutput is the output schema for github_repository_summary.
type RepositorySummaryOutput struct {
	Repository   RepositoryOutput    `json:"repository"`
	Issues       []IssueOutput       `json:"open_issues"`
	PullRequests []PullRequestOutput `json:"open_pull_requests"`
	Commits      []CommitOutput      `json:"recent_commits"`
}

// RepositoryOutput describes a repository.
type RepositoryOutput struct {
	FullName      string `json:"full_name"`
	Description   string `json:"description,omitempty"`
	Language      string `json:"language,omitempty"`
	Stars         int    `json:"stars"`
	Forks         int    `json:"forks"`
	Watchers      int    `json:"watchers"`
	OpenIssues    int    `json:"open_issues"`
	DefaultBranch string `json:"default_branch,omitempty"`
	LastCommit    string `json:"last_commit,omitempty"`
	URL           string `json:"url"`
}

// IssueOutput describes an issue.
type IssueOutput struct {
	Number    int      `json:"number"`
	Title     string   `json:"title"`
	State     string   `json:"state"`
	Author    string   `json:"author"`
	Labels    []string `json:"labels,omitempty"`
	Comments  int      `json:"comments"`
	UpdatedAt string   `json:"updated_at"`
	URL       string   `json:"url"`
}

// PullRequestOutput describes a pull request.
type PullRequestOutput struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	State     string `json:"state"`
	Author    string `json:"author"`
	UpdatedAt string `json:"updated_at"`
	URL       string `json:"url"`
}

// CommitOutput describes a commit.
type CommitOutput struct {
	SHA     string `json:"sha"`
	Message string `json:"message"`
	Author  string `json:"author"`
	Date    string `json:"date"`
}

// ListRepositoriesInput is the input schema for github_list_repositories.
type ListRepositoriesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of repositories to return (default 30)"`
}

// ListRepositoriesOutput is the output schema for github_list_repositories.
type ListRepositoriesOutput struct {
	Repositories []RepositoryListingOutput `json:"repositories"`
	Count        int                       `json:"count"`
}

// RepositoryListingOutput is one entry of the repository list.
type RepositoryListingOutput struct {
	FullName    string `json:"full_name"`
	Description string `json:"description,omitempty"`
	Language    string `json:"language,omitempty"`
	Stars       int    `json:"stars"`
	Private     bool   `json:"private"`
	UpdatedAt   string `json:"updated_at"`
	URL         string `json:"url"`
}

// SearchIssuesInput is the input schema for jira_search_issues.
type SearchIssuesInput struct {
	Project string `json:"project" jsonschema:"Jira project key, e.g. PROJ"`
	Limit   int    `json:"limit,omitempty" jsonschema:"maximum number of tickets to return (default 50)"`
}

// SearchIssuesOutput is the output schema for jira_search_issues.
type SearchIssuesOutput struct {
	Tickets []TicketOutput `json:"tickets"`
	Count   int            `json:"count"`
}

// TicketOutput describes a Jira ticket.
type TicketOutput struct {
	Key      string `json:"key"`
	Summary  string `json:"summary"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Assignee string `json:"assignee,omitempty"`
	Updated  string `json:"updated,omitempty"`
	DueDate  string `json:"due_date,omitempty"`
	Comments int    `json:"comments"`
}

// TransitionIssueInput is the input schema for jira_transition_issue.
type TransitionIssueInput struct {
	Key    string `json:"key" jsonschema:"issue key, e.g. PROJ-123"`
	Status string `json:"status" jsonschema:"name of the target status, e.g. In Progress"`
}

// TransitionIssueOutput is the output schema for jira_transition_issue.
type TransitionIssueOutput struct {
	Key    string `json:"key"`
	Status string `json:"status"`
}

// AddCommentInput is the input schema for jira_add_comment.
type AddCommentInput struct {
	Key  string `json:"key" jsonschema:"issue key, e.g. PROJ-123"`
	Body string `json:"body" jsonschema:"comment text"`
}

// AddCommentOutput is the output schema for jira_add_comment.
type AddCommentOutput struct {
	Key       string `json:"key"`
	CommentID string `json:"comment_id"`
	Created   string `json:"created,omitempty"`
}

// ListSpacesInput is the input schema for confluence_list_spaces.
type ListSpacesInput struct{}

// ListSpacesOutput is the output schema for confluence_list_spaces.
type ListSpacesOutput struct {
	Spaces []SpaceOutput `json:"spaces"`
	Count  int           `json:"count"`
}

// SpaceOutput describes a Confluence space.
type SpaceOutput struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

// ListPagesInput is the input schema for confluence_list_pages.
type ListPagesInput struct {
	SpaceKey string `json:"space_key" jsonschema:"Confluence space key"`
}

// ListPagesOutput is the output schema for confluence_list_pages.
type ListPagesOutput struct {
	Pages []PageOutput `json:"pages"`
	Count int          `json:"count"`
}

// PageOutput describes a Confluence page. Bodies are served as resources.
type PageOutput struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Version  int    `json:"version"`
	Resource string `json:"resource"`
	URL      string `json:"url,omitempty"`
}

// registerTools registers the tools of every configured service.
func (s *Server) registerTools() {
	if s.ports.GitHub != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "github_repository_summary",
			Description: "Summarise a GitHub repository: metadata, open issues, open pull requests and recent commits",
		}, s.handleRepositorySummary)
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "github_list_repositories",
			Description: "List the authenticated user's GitHub repositories, most recently updated first",
		}, s.handleListRepositories)
	}

	if s.ports.Jira != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "jira_search_issues",
			Description: "List tickets of a Jira project",
		}, s.handleSearchIssues)
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "jira_transition_issue",
			Description: "Move a Jira ticket to another status through its workflow",
		}, s.handleTransitionIssue)
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "jira_add_comment",
			Description: "Comment on a Jira ticket",
		}, s.handleAddComment)
	}

	if s.ports.Confluence != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "confluence_list_spaces",
			Description: "List Confluence spaces",
		}, s.handleListSpaces)
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "confluence_list_pages",
			Description: "List the pages of a Confluence space",
		}, s.handleListPages)
	}
}

func (s *Server) handleRepositorySummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RepositorySummaryInput,
) (*mcp.CallToolResult, RepositorySummaryOutput, error) {
	ref, err := domain.ParseRepoRef(input.Repository)
	if err != nil {
		return nil, RepositorySummaryOutput{}, err
	}

	summary, err := s.ports.GitHub.RepositorySummary(ctx, ref.Owner, ref.Name)
	if err != nil {
		return nil, RepositorySummaryOutput{}, err
	}

	output := RepositorySummaryOutput{
		Repository:   toRepositoryOutput(&summary.RepoInfo),
		Issues:       make([]IssueOutput, len(summary.Issues)),
		PullRequests: make([]PullRequestOutput, len(summary.PRs)),
		Commits:      make([]CommitOutput, len(summary.Commits)),
	}
	for i := range summary.Issues {
		output.Issues[i] = toIssueOutput(&summary.Issues[i])
	}
	for i := range summary.PRs {
		pr := &summary.PRs[i]
		output.PullRequests[i] = PullRequestOutput{
			Number:    pr.Number,
			Title:     pr.Title,
			State:     pr.State,
			Author:    pr.User.Login,
			UpdatedAt: formatTime(pr.UpdatedAt),
			URL:       pr.HTMLURL,
		}
	}
	for i := range summary.Commits {
		c := &summary.Commits[i]
		output.Commits[i] = CommitOutput{
			SHA:     c.SHA,
			Message: firstLine(c.Message, maxCommitMessage),
			Author:  c.Author.Name,
			Date:    formatTime(c.Author.Date),
		}
	}

	return nil, output, nil
}

func (s *Server) handleListRepositories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRepositoriesInput,
) (*mcp.CallToolResult, ListRepositoriesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultRepositoryLimit
	}

	repos, err := s.ports.GitHub.ListRepositories(ctx)
	if err != nil {
		return nil, ListRepositoriesOutput{}, err
	}
	if len(repos) > limit {
		repos = repos[:limit]
	}

	output := ListRepositoriesOutput{
		Repositories: make([]RepositoryListingOutput, len(repos)),
		Count:        len(repos),
	}
	for i := range repos {
		output.Repositories[i] = RepositoryListingOutput{
			FullName:    repos[i].FullName,
			Description: repos[i].Description,
			Language:    repos[i].Language,
			Stars:       repos[i].StargazersCount,
			Private:     repos[i].Private,
			UpdatedAt:   formatTime(repos[i].UpdatedAt),
			URL:         repos[i].HTMLURL,
		}
	}

	return nil, output, nil
}

func (s *Server) handleSearchIssues(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchIssuesInput,
) (*mcp.CallToolResult, SearchIssuesOutput, error) {
	tickets, err := s.ports.Jira.SearchIssues(ctx, strings.TrimSpace(input.Project), input.Limit)
	if err != nil {
		return nil, SearchIssuesOutput{}, err
	}

	output := SearchIssuesOutput{
		Tickets: make([]TicketOutput, len(tickets)),
		Count:   len(tickets),
	}
	for i := range tickets {
		t := &tickets[i]
		out := TicketOutput{
			Key:      t.Key,
			Summary:  t.Summary,
			Status:   t.Status,
			Priority: t.Priority,
			Updated:  t.Updated,
			DueDate:  t.DueDate,
			Comments: len(t.Comments),
		}
		if t.Assignee != nil {
			out.Assignee = t.Assignee.Name
		}
		output.Tickets[i] = out
	}

	return nil, output, nil
}

func (s *Server) handleTransitionIssue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TransitionIssueInput,
) (*mcp.CallToolResult, TransitionIssueOutput, error) {
	if err := s.ports.Jira.UpdateIssueStatus(ctx, input.Key, input.Status); err != nil {
		return nil, TransitionIssueOutput{}, err
	}
	return nil, TransitionIssueOutput{Key: input.Key, Status: input.Status}, nil
}

func (s *Server) handleAddComment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddCommentInput,
) (*mcp.CallToolResult, AddCommentOutput, error) {
	created, err := s.ports.Jira.AddComment(ctx, input.Key, input.Body)
	if err != nil {
		return nil, AddCommentOutput{}, err
	}
	return nil, AddCommentOutput{Key: input.Key, CommentID: created.ID, Created: created.Created}, nil
}

func (s *Server) handleListSpaces(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListSpacesInput,
) (*mcp.CallToolResult, ListSpacesOutput, error) {
	spaces, err := s.ports.Confluence.ListSpaces(ctx)
	if err != nil {
		return nil, ListSpacesOutput{}, err
	}

	output := ListSpacesOutput{
		Spaces: make([]SpaceOutput, len(spaces)),
		Count:  len(spaces),
	}
	for i := range spaces {
		output.Spaces[i] = SpaceOutput{
			Key:         spaces[i].Key,
			Name:        spaces[i].Name,
			Type:        spaces[i].Type,
			Description: spaces[i].Description,
			URL:         spaces[i].WebURL,
		}
	}

	return nil, output, nil
}

func (s *Server) handleListPages(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListPagesInput,
) (*mcp.CallToolResult, ListPagesOutput, error) {
	pages, err := s.ports.Confluence.ListPages(ctx, strings.TrimSpace(input.SpaceKey))
	if err != nil {
		return nil, ListPagesOutput{}, err
	}

	output := ListPagesOutput{
		Pages: make([]PageOutput, len(pages)),
		Count: len(pages),
	}
	for i := range pages {
		output.Pages[i] = PageOutput{
			ID:       pages[i].ID,
			Title:    pages[i].Title,
			Version:  pages[i].Version,
			Resource: pageURI(pages[i].ID),
			URL:      pages[i].WebURL,
		}
	}

	return nil, output, nil
}

func toRepositoryOutput(r *domain.Repository) RepositoryOutput {
	return RepositoryOutput{
		FullName:      r.FullName,
		Description:   r.Description,
		Language:      r.Language,
		Stars:         r.Stars,
		Forks:         r.Forks,
		Watchers:      r.Watchers,
		OpenIssues:    r.OpenIssues,
		DefaultBranch: r.DefaultBranch,
		LastCommit:    formatTime(r.LastCommit),
		URL:           r.HTMLURL,
	}
}

func toIssueOutput(i *domain.Issue) IssueOutput {
	return IssueOutput{
		Number:    i.Number,
		Title:     i.Title,
		State:     i.State,
		Author:    i.User.Login,
		Labels:    i.Labels,
		Comments:  i.Comments,
		UpdatedAt: formatTime(i.UpdatedAt),
		URL:       i.HTMLURL,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// firstLine returns the first line of s, cut to limit runes.
func firstLine(s string, limit int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	r := []rune(strings.TrimSpace(s))
	if len(r) > limit {
		return string(r[:limit-3]) + "..."
	}
	return string(r)
}
