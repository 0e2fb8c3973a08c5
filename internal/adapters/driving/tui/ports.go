// Package tui is the interactive terminal dashboard.
package tui

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
)

// ErrMissingPort is returned by Validate for each required service that
// is nil. The wrapped message names the service.
var ErrMissingPort = errors.New("tui: required service missing")

// Ports are the services the dashboard drives. Confluence is optional and
// the menu hides it when nil.
type Ports struct {
	GitHub     driving.GitHubService
	Jira       driving.JiraService
	Confluence driving.ConfluenceService
	Settings   driving.SettingsService
}

// NewPorts bundles the dashboard services.
func NewPorts(
	github driving.GitHubService,
	jira driving.JiraService,
	confluence driving.ConfluenceService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{GitHub: github, Jira: jira, Confluence: confluence, Settings: settings}
}

// Validate checks that the required services are set.
func (p *Ports) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: no ports", ErrMissingPort)
	}
	required := []struct {
		name string
		set  bool
	}{
		{"github", p.GitHub != nil},
		{"jira", p.Jira != nil},
		{"settings", p.Settings != nil},
	}
	for _, r := range required {
		if !r.set {
			return fmt.Errorf("%w: %s", ErrMissingPort, r.name)
		}
	}
	return nil
}
