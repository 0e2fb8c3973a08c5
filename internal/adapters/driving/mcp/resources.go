package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/markup"
)

const (
	// uriScheme is the custom URI scheme for DevSync resources.
	uriScheme = "devsync://"

	mimeJSON     = "application/json"
	mimeHTML     = "text/html"
	mimeMarkdown = "text/markdown"
)

// registerResources registers the resources of every configured service.
func (s *Server) registerResources() {
	if s.ports.GitHub != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "github/repositories",
			Name:        "github-repositories",
			Description: "Repositories of the authenticated GitHub user",
			MIMEType:    mimeJSON,
		}, s.handleRepositoriesResource)
	}

	if s.ports.Jira != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "jira/projects",
			Name:        "jira-projects",
			Description: "Jira projects visible to the user",
			MIMEType:    mimeJSON,
		}, s.handleProjectsResource)

		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "jira/projects/{projectKey}/issues",
			Name:        "jira-project-issues",
			Description: "Tickets of a Jira project",
			MIMEType:    mimeJSON,
		}, s.handleProjectIssuesResource)
	}

	if s.ports.Confluence != nil {
		s.server.AddResourceTemplate(&mcp.ResourceTemplate{
			URITemplate: uriScheme + "confluence/pages/{pageId}",
			Name:        "confluence-page",
			Description: "Storage-format body of a Confluence page",
			MIMEType:    mimeHTML,
		}, s.handlePageResource)
	}
}

func (s *Server) handleRepositoriesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	repos, err := s.ports.GitHub.ListRepositories(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}
	return jsonResult(req.Params.URI, repos)
}

func (s *Server) handleProjectsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	projects, err := s.ports.Jira.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return jsonResult(req.Params.URI, projects)
}

func (s *Server) handleProjectIssuesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	key := extractProjectKey(req.Params.URI)
	if key == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	tickets, err := s.ports.Jira.SearchIssues(ctx, key, 0)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("searching issues: %w", err)
	}
	return jsonResult(req.Params.URI, tickets)
}

func (s *Server) handlePageResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractPageID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	page, err := s.ports.Confluence.GetPage(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting page: %w", err)
	}

	// Storage XHTML first, then a Markdown rendering for clients that
	// prefer it.
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{URI: req.Params.URI, MIMEType: mimeHTML, Text: page.Body},
			{URI: req.Params.URI, MIMEType: mimeMarkdown, Text: markup.Markdown(page.Body, page.WebURL)},
		},
	}, nil
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}

// pageURI returns the resource URI of a Confluence page.
func pageURI(id string) string {
	return uriScheme + "confluence/pages/" + id
}

// extractProjectKey extracts the key from devsync://jira/projects/{projectKey}/issues.
func extractProjectKey(uri string) string {
	const prefix = uriScheme + "jira/projects/"
	const suffix = "/issues"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}

// extractPageID extracts the ID from devsync://confluence/pages/{pageId}.
func extractPageID(uri string) string {
	const prefix = uriScheme + "confluence/pages/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
