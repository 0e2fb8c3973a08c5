package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// githubURLRegex matches github.com/<owner>/<repo> anywhere in a URL.
var githubURLRegex = regexp.MustCompile(`github\.com/([^/]+)/([^/?#]+)`)

// RepoRef identifies a GitHub repository.
type RepoRef struct {
	Owner string
	Name  string
}

// String returns "owner/name".
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Name
}

// IsZero reports whether r names no repository.
func (r RepoRef) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}

// ParseRepoRef accepts "owner/repo" or a GitHub URL such as
// "https://github.com/owner/repo.git".
func ParseRepoRef(s string) (RepoRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RepoRef{}, fmt.Errorf("%w: repository is required", ErrInvalidInput)
	}

	if !strings.Contains(s, "github.com") {
		parts := strings.Split(s, "/")
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return RepoRef{Owner: parts[0], Name: parts[1]}, nil
		}
	}

	if m := githubURLRegex.FindStringSubmatch(s); m != nil {
		return RepoRef{Owner: m[1], Name: strings.TrimSuffix(m[2], ".git")}, nil
	}

	return RepoRef{}, fmt.Errorf("%w: use owner/repo or a GitHub URL, got %q", ErrInvalidInput, s)
}
