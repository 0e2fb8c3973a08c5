// Package github implements a GitHub REST v3 session for the dashboard.
//
// A Client is created per session by the session factory and implements
// [driven.GitHubAPI]. It wraps the go-github client and shapes vendor
// responses into the dashboard view models of the domain package.
//
// # Authentication
//
// Tokens come from a [driven.TokenProvider]:
//
//   - Personal Access Tokens (PAT): classic or fine-grained tokens created at
//     github.com/settings/tokens. Requires 'repo' scope for private repositories.
//
//   - OAuth App: tokens obtained via the OAuth 2.0 authorisation code flow.
//     The provider refreshes expired tokens on demand.
//
// The token is requested lazily, so creating a Client performs no I/O.
//
// # Rate Limiting
//
// The client implements a dual-strategy rate limiting approach:
//
//  1. Proactive throttling: a token bucket limits the request rate while
//     allowing short bursts, such as the four concurrent requests of a
//     repository summary.
//
//  2. Reactive handling: the client monitors X-RateLimit-Remaining and
//     X-RateLimit-Reset headers. When limits are nearly exhausted, it waits
//     until the reset time before continuing.
//
// # Error Handling
//
// API failures are returned as *APIError, which matches
// [domain.ErrAuthInvalid] for 401/403 and [domain.ErrNotFound] for 404.
// Exhausted quotas are returned as *RateLimitError, matching
// [domain.ErrRateLimited].
//
// # Example Usage
//
//	client, err := github.NewClient(tokenProvider, github.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	repos, err := client.ListRepositories(ctx)
package github
