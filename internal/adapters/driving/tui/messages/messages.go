// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewGitHub lists repositories and shows a repository summary.
	ViewGitHub
	// ViewJira lists projects, tickets and ticket details.
	ViewJira
	// ViewConfluence lists spaces, pages and page bodies.
	ViewConfluence
	// ViewSettings is the dashboard preferences view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewGitHub:
		return "github"
	case ViewJira:
		return "jira"
	case ViewConfluence:
		return "confluence"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// StoreChanged signals that persisted credentials or settings were changed
// by another process and sessions have been restored.
type StoreChanged struct{}

// ThemeChanged asks the app to restyle every view.
type ThemeChanged struct {
	Theme domain.Theme
}

// RepositoriesLoaded carries the authenticated user's repositories and the
// remembered selection, if any.
type RepositoriesLoaded struct {
	Repositories []domain.RepositoryListing
	Selected     string
	Err          error
}

// SummaryLoaded carries a repository summary.
type SummaryLoaded struct {
	Repo    domain.RepoRef
	Summary *domain.RepositorySummary
	Err     error
}

// ProjectsLoaded carries the Jira projects.
type ProjectsLoaded struct {
	Projects []domain.Project
	Err      error
}

// TicketsLoaded carries the tickets of a project.
type TicketsLoaded struct {
	ProjectKey string
	Tickets    []domain.Ticket
	Err        error
}

// TicketLoaded carries one ticket with its comments.
type TicketLoaded struct {
	Ticket *domain.Ticket
	Err    error
}

// TicketMoved signals a status change finished.
type TicketMoved struct {
	Key    string
	Status string
	Err    error
}

// SpacesLoaded carries the Confluence spaces.
type SpacesLoaded struct {
	Spaces []domain.Space
	Err    error
}

// PagesLoaded carries the pages of a space.
type PagesLoaded struct {
	SpaceKey string
	Pages    []domain.Page
	Err      error
}

// PageLoaded carries one page with its body.
type PageLoaded struct {
	Page *domain.Page
	Err  error
}

// SettingsLoaded carries the dashboard preferences.
type SettingsLoaded struct {
	Settings domain.UISettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Settings domain.UISettings
	Err      error
}
