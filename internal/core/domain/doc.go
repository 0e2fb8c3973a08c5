// Package domain defines the core business entities for DevSync.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CredentialsRecord: stored authentication fields for one provider
//   - Repository, Issue, PullRequest, Commit: GitHub view models
//   - Ticket, Project, Transition: Jira view models
//   - Space, Page: Confluence view models
//   - UISettings: persisted dashboard preferences
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
