package github

import (
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

func toUserRef(u *gh.User) domain.UserRef {
	return domain.UserRef{
		Login:     u.GetLogin(),
		AvatarURL: u.GetAvatarURL(),
	}
}

func toUserRefs(users []*gh.User) []domain.UserRef {
	out := make([]domain.UserRef, 0, len(users))
	for _, u := range users {
		out = append(out, toUserRef(u))
	}
	return out
}

func toUser(u *gh.User) *domain.GitHubUser {
	return &domain.GitHubUser{
		Login:     u.GetLogin(),
		Name:      u.GetName(),
		Email:     u.GetEmail(),
		AvatarURL: u.GetAvatarURL(),
		HTMLURL:   u.GetHTMLURL(),
	}
}

func labelNames(labels []*gh.Label) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, l.GetName())
	}
	return out
}

// optionalTime converts a nullable GitHub timestamp.
func optionalTime(ts *gh.Timestamp) *time.Time {
	if ts == nil || ts.IsZero() {
		return nil
	}
	t := ts.Time
	return &t
}

// toRepository builds the summary card. The card's last commit date is the
// repository's last update time.
func toRepository(r *gh.Repository) *domain.Repository {
	return &domain.Repository{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		Watchers:      r.GetWatchersCount(),
		Language:      r.GetLanguage(),
		LastCommit:    r.GetUpdatedAt().Time,
		OpenIssues:    r.GetOpenIssuesCount(),
		HTMLURL:       r.GetHTMLURL(),
		DefaultBranch: r.GetDefaultBranch(),
	}
}

func toListing(r *gh.Repository) domain.RepositoryListing {
	return domain.RepositoryListing{
		ID:              r.GetID(),
		Name:            r.GetName(),
		FullName:        r.GetFullName(),
		Description:     r.GetDescription(),
		HTMLURL:         r.GetHTMLURL(),
		StargazersCount: r.GetStargazersCount(),
		ForksCount:      r.GetForksCount(),
		OpenIssuesCount: r.GetOpenIssuesCount(),
		Language:        r.GetLanguage(),
		UpdatedAt:       r.GetUpdatedAt().Time,
		Private:         r.GetPrivate(),
		Owner:           toUserRef(r.GetOwner()),
	}
}

func toIssue(i *gh.Issue) domain.Issue {
	return domain.Issue{
		Number:        i.GetNumber(),
		Title:         i.GetTitle(),
		Body:          i.GetBody(),
		State:         i.GetState(),
		User:          toUserRef(i.GetUser()),
		CreatedAt:     i.GetCreatedAt().Time,
		UpdatedAt:     i.GetUpdatedAt().Time,
		ClosedAt:      optionalTime(i.ClosedAt),
		Labels:        labelNames(i.Labels),
		Assignees:     toUserRefs(i.Assignees),
		Comments:      i.GetComments(),
		HTMLURL:       i.GetHTMLURL(),
		IsPullRequest: i.IsPullRequest(),
	}
}

func toPullRequest(pr *gh.PullRequest) domain.PullRequest {
	return domain.PullRequest{
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		Body:           pr.GetBody(),
		State:          pr.GetState(),
		User:           toUserRef(pr.GetUser()),
		CreatedAt:      pr.GetCreatedAt().Time,
		UpdatedAt:      pr.GetUpdatedAt().Time,
		ClosedAt:       optionalTime(pr.ClosedAt),
		MergedAt:       optionalTime(pr.MergedAt),
		Labels:         labelNames(pr.Labels),
		Assignees:      toUserRefs(pr.Assignees),
		Comments:       pr.GetComments(),
		ReviewComments: pr.GetReviewComments(),
		Commits:        pr.GetCommits(),
		Additions:      pr.GetAdditions(),
		Deletions:      pr.GetDeletions(),
		ChangedFiles:   pr.GetChangedFiles(),
		HTMLURL:        pr.GetHTMLURL(),
	}
}

func toSignature(a *gh.CommitAuthor) domain.CommitSignature {
	return domain.CommitSignature{
		Name:  a.GetName(),
		Email: a.GetEmail(),
		Date:  a.GetDate().Time,
	}
}

func toCommit(c *gh.RepositoryCommit) domain.Commit {
	commit := c.GetCommit()
	return domain.Commit{
		SHA:       c.GetSHA(),
		Message:   commit.GetMessage(),
		Author:    toSignature(commit.GetAuthor()),
		Committer: toSignature(commit.GetCommitter()),
		HTMLURL:   c.GetHTMLURL(),
	}
}

func toBranch(b *gh.Branch) domain.Branch {
	return domain.Branch{
		Name:      b.GetName(),
		CommitSHA: b.GetCommit().GetSHA(),
		Protected: b.GetProtected(),
	}
}

func toComment(c *gh.IssueComment) *domain.IssueComment {
	return &domain.IssueComment{
		ID:        c.GetID(),
		Body:      c.GetBody(),
		User:      toUserRef(c.GetUser()),
		CreatedAt: c.GetCreatedAt().Time,
		HTMLURL:   c.GetHTMLURL(),
	}
}
