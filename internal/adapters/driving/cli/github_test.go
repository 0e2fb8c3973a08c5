package cli

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

func TestGitHubCmd_Alias(t *testing.T) {
	assert.Contains(t, githubCmd.Aliases, "gh")
}

func TestGitHubUser(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.github.user = &domain.GitHubUser{Login: "octocat", Name: "The Octocat", HTMLURL: "https://github.com/octocat"}

	out, err := runCommand(t, "", "github", "user")

	require.NoError(t, err)
	assert.Contains(t, out, "Login: octocat")
	assert.Contains(t, out, "Name: The Octocat")
	assert.NotContains(t, out, "Email:")
}

func TestGitHubUser_NotConnected(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.github.err = domain.ErrNotInitialized

	_, err := runCommand(t, "", "gh", "user")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "devsync credentials set github")
}

func TestGitHubRepos(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.github.repos = []domain.RepositoryListing{
		{FullName: "octocat/Hello-World", Description: "My first repository", StargazersCount: 80, Language: "Go"},
		{FullName: "octocat/secret", Private: true},
	}

	out, err := runCommand(t, "", "github", "repos")

	require.NoError(t, err)
	assert.Contains(t, out, "octocat/Hello-World")
	assert.Contains(t, out, "My first repository")
	assert.Contains(t, out, "octocat/secret (private)")
	assert.Contains(t, out, "Total: 2 repositories")
}

func TestGitHubRepos_LimitAndJSON(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.github.repos = []domain.RepositoryListing{{FullName: "a/one"}, {FullName: "a/two"}, {FullName: "a/three"}}

	out, err := runCommand(t, "", "--json", "github", "repos", "--limit", "2")

	require.NoError(t, err)
	var repos []domain.RepositoryListing
	require.NoError(t, json.Unmarshal([]byte(out), &repos))
	assert.Len(t, repos, 2)
}

func TestGitHubRepos_Empty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "", "github", "repos")
	require.NoError(t, err)
	assert.Contains(t, out, "No repositories found.")
}

func TestGitHubSelect_RemembersRepository(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "", "github", "select", "https://github.com/octocat/Hello-World")

	require.NoError(t, err)
	assert.Contains(t, out, "Selected octocat/Hello-World")
	ref, ok, err := ts.settings.SelectedRepo(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, domain.RepoRef{Owner: "octocat", Name: "Hello-World"}, ref)
}

func TestGitHubSummary(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.github.summary = &domain.RepositorySummary{
		RepoInfo: domain.Repository{FullName: "octocat/Hello-World", Stars: 80, DefaultBranch: "main",
			LastCommit: time.Now().Add(-3 * time.Hour)},
		Issues:  []domain.Issue{{Number: 1, Title: "Found a bug", Labels: []string{"bug"}, User: domain.UserRef{Login: "hubot"}}},
		PRs:     []domain.PullRequest{{Number: 2, Title: "Fix the bug", User: domain.UserRef{Login: "octocat"}}},
		Commits: []domain.Commit{{SHA: "7fd1a60b01f91b314f59955a4e4d4e80d8edf11d", Message: "Initial commit\n\ndetails"}},
	}

	out, err := runCommand(t, "", "github", "summary", "octocat/Hello-World")

	require.NoError(t, err)
	assert.Contains(t, out, "Default branch: main  Last push: 3h ago")
	assert.Contains(t, out, "Open issues (1)")
	assert.Contains(t, out, "Found a bug [bug]")
	assert.Contains(t, out, "Open pull requests (1)")
	assert.Contains(t, out, "7fd1a60  Initial commit")
	assert.NotContains(t, out, "details")

	ref, ok, _ := ts.settings.SelectedRepo(context.Background())
	assert.True(t, ok)
	assert.Equal(t, "octocat/Hello-World", ref.String())
}

func TestGitHubIssues_UsesSelectedRepo(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, ts.settings.SetSelectedRepo(context.Background(), domain.RepoRef{Owner: "octocat", Name: "Spoon-Knife"}))
	ts.github.issues = []domain.Issue{
		{Number: 5, Title: "Real issue", User: domain.UserRef{Login: "a"}},
		{Number: 6, Title: "Actually a PR", IsPullRequest: true},
	}

	out, err := runCommand(t, "", "github", "issues", "--state", "all")

	require.NoError(t, err)
	assert.Equal(t, "octocat/Spoon-Knife", ts.github.gotRepo.String())
	assert.Equal(t, domain.IssueStateAll, ts.github.gotState)
	assert.Contains(t, out, "Real issue")
	assert.NotContains(t, out, "Actually a PR")
	assert.Contains(t, out, "Total: 1 issues")
}

func TestGitHubIssues_NoRepository(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(t, "", "github", "issues")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGitHubPulls_ShowsMerged(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	merged := time.Now()
	ts.github.prs = []domain.PullRequest{
		{Number: 3, Title: "Open one", State: "open"},
		{Number: 4, Title: "Merged one", State: "closed", MergedAt: &merged},
	}

	out, err := runCommand(t, "", "github", "prs", "-r", "octocat/Hello-World", "--state", "closed")

	require.NoError(t, err)
	assert.Equal(t, "closed", ts.github.gotState)
	assert.Contains(t, out, "Open one  [open]")
	assert.Contains(t, out, "Merged one  [merged]")
}

func TestGitHubCommits_Branch(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.github.commits = []domain.Commit{{SHA: "abc", Message: "short sha"}}

	out, err := runCommand(t, "", "github", "commits", "--repo", "octocat/Hello-World", "--branch", "dev")

	require.NoError(t, err)
	assert.Equal(t, "dev", ts.github.gotBranch)
	assert.Contains(t, out, "abc  short sha")
}

func TestGitHubBranches(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.github.branches = []domain.Branch{{Name: "main", CommitSHA: "7fd1a60b01f9", Protected: true}}

	out, err := runCommand(t, "", "github", "branches", "--repo", "octocat/Hello-World")

	require.NoError(t, err)
	assert.Contains(t, out, "7fd1a60  main (protected)")
}

func TestGitHubIssueCreate(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "", "github", "issue", "create", "--repo", "octocat/Hello-World",
		"--title", "Crash on start", "--body", "Steps...", "--label", "bug", "--label", "p1")

	require.NoError(t, err)
	assert.Equal(t, "Crash on start", ts.github.gotIssue.Title)
	assert.Equal(t, []string{"bug", "p1"}, ts.github.gotIssue.Labels)
	assert.Contains(t, out, "Created #42: https://github.com/octocat/Hello-World/issues/42")
}

func TestGitHubIssueCreate_RequiresTitle(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := runCommand(t, "", "github", "issue", "create", "--repo", "octocat/Hello-World")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--title is required")
}

func TestGitHubIssueCloseAndReopen(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "", "github", "issue", "close", "#12", "--repo", "octocat/Hello-World")
	require.NoError(t, err)
	assert.Equal(t, 12, ts.github.gotNumber)
	assert.Contains(t, out, "#12 is now closed")

	out, err = runCommand(t, "", "github", "issue", "reopen", "12", "--repo", "octocat/Hello-World")
	require.NoError(t, err)
	assert.Contains(t, out, "#12 is now open")
}

func TestGitHubIssueComment(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	out, err := runCommand(t, "", "github", "issue", "comment", "7", "Looks good", "--repo", "octocat/Hello-World")

	require.NoError(t, err)
	assert.Equal(t, "Looks good", ts.github.gotBody)
	assert.Contains(t, out, "Commented on #7")
}

func TestParseIssueNumber(t *testing.T) {
	n, err := parseIssueNumber("#15")
	require.NoError(t, err)
	assert.Equal(t, 15, n)

	for _, bad := range []string{"", "abc", "0", "-3"} {
		_, err := parseIssueNumber(bad)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, bad)
	}
}

func TestFormatAge(t *testing.T) {
	now := time.Now()
	assert.Equal(t, "never", formatAge(time.Time{}))
	assert.Equal(t, "just now", formatAge(now.Add(-10*time.Second)))
	assert.Equal(t, "5m ago", formatAge(now.Add(-5*time.Minute-time.Second)))
	assert.Equal(t, "2h ago", formatAge(now.Add(-2*time.Hour-time.Minute)))
	assert.Equal(t, "3d ago", formatAge(now.Add(-3*24*time.Hour-time.Hour)))
	old := now.AddDate(-1, 0, 0)
	assert.Equal(t, old.Format("2006-01-02"), formatAge(old))
}

func TestShortSHA(t *testing.T) {
	assert.Equal(t, "7fd1a60", shortSHA("7fd1a60b01f91b314f59955a4e4d4e80d8edf11d"))
	assert.Equal(t, "abc", shortSHA("abc"))
}
