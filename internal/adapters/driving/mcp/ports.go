// Package mcp serves GitHub, Jira and Confluence data to AI assistants over
// the Model Context Protocol, through the same services the dashboard uses.
package mcp

import (
	"errors"

	"github.com/custodia-labs/devsync-cli/internal/core/ports/driving"
)

// ErrNoServices is returned by NewServer when every port is nil.
var ErrNoServices = errors.New("mcp: at least one provider service is required")

// Ports are the services the server exposes. Tools and resources are
// registered only for the ports that are set.
type Ports struct {
	GitHub     driving.GitHubService
	Jira       driving.JiraService
	Confluence driving.ConfluenceService
}

// Validate fails when no provider is set.
func (p *Ports) Validate() error {
	if p == nil || (p.GitHub == nil && p.Jira == nil && p.Confluence == nil) {
		return ErrNoServices
	}
	return nil
}
