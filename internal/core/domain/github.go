package domain

import "time"

// UserRef is a GitHub account as it appears inside another resource.
type UserRef struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// GitHubUser is the authenticated principal returned by a connection test.
type GitHubUser struct {
	Login     string `json:"login"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	HTMLURL   string `json:"html_url,omitempty"`
}

// Repository is the dashboard summary card for one repository.
type Repository struct {
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description"`
	Stars         int       `json:"stars"`
	Forks         int       `json:"forks"`
	Watchers      int       `json:"watchers"`
	Language      string    `json:"language"`
	LastCommit    time.Time `json:"last_commit"`
	OpenIssues    int       `json:"open_issues"`
	PullRequests  int       `json:"pull_requests"`
	HTMLURL       string    `json:"html_url"`
	DefaultBranch string    `json:"default_branch"`
}

// RepositoryListing is one entry of the authenticated user's repository list.
type RepositoryListing struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	Description     string    `json:"description"`
	HTMLURL         string    `json:"html_url"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	Language        string    `json:"language"`
	UpdatedAt       time.Time `json:"updated_at"`
	Private         bool      `json:"private"`
	Owner           UserRef   `json:"owner"`
}

// Issue is a GitHub issue view model.
type Issue struct {
	Number    int        `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	State     string     `json:"state"`
	User      UserRef    `json:"user"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at"`
	Labels    []string   `json:"labels"`
	Assignees []UserRef  `json:"assignees"`
	Comments  int        `json:"comments"`
	HTMLURL   string     `json:"html_url"`

	// IsPullRequest is true when the issues endpoint returned a pull request.
	// GitHub serves both from the same endpoint.
	IsPullRequest bool `json:"-"`
}

// PullRequest is a GitHub pull request view model.
type PullRequest struct {
	Number         int        `json:"id"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
	State          string     `json:"state"`
	User           UserRef    `json:"user"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ClosedAt       *time.Time `json:"closed_at"`
	MergedAt       *time.Time `json:"merged_at"`
	Labels         []string   `json:"labels"`
	Assignees      []UserRef  `json:"assignees"`
	Comments       int        `json:"comments"`
	ReviewComments int        `json:"review_comments"`
	Commits        int        `json:"commits"`
	Additions      int        `json:"additions"`
	Deletions      int        `json:"deletions"`
	ChangedFiles   int        `json:"changed_files"`
	HTMLURL        string     `json:"html_url"`
}

// CommitSignature is the author or committer of a commit.
type CommitSignature struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// Commit is a GitHub commit view model.
type Commit struct {
	SHA       string          `json:"sha"`
	Message   string          `json:"message"`
	Author    CommitSignature `json:"author"`
	Committer CommitSignature `json:"committer"`
	HTMLURL   string          `json:"html_url"`
}

// Branch is a repository branch.
type Branch struct {
	Name      string `json:"name"`
	CommitSHA string `json:"commit_sha"`
	Protected bool   `json:"protected"`
}

// IssueComment is a comment created on an issue.
type IssueComment struct {
	ID        int64     `json:"id"`
	Body      string    `json:"body"`
	User      UserRef   `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	HTMLURL   string    `json:"html_url"`
}

// NewIssue holds the fields for creating a GitHub issue.
type NewIssue struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels"`
}

// Issue states accepted by GitHub.
const (
	IssueStateOpen   = "open"
	IssueStateClosed = "closed"
	IssueStateAll    = "all"
)

// RepositorySummary joins repository metadata with its open work items.
// Issues never contain pull requests.
type RepositorySummary struct {
	RepoInfo Repository    `json:"repoInfo"`
	Issues   []Issue       `json:"issues"`
	PRs      []PullRequest `json:"prs"`
	Commits  []Commit      `json:"commits"`
}

// WithoutPullRequests returns the issues that are not pull requests.
func WithoutPullRequests(issues []Issue) []Issue {
	out := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.IsPullRequest {
			continue
		}
		out = append(out, issue)
	}
	return out
}
