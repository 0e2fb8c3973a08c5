package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/devsync-cli/internal/connectors/atlassian"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
)

// API paths.
const (
	pathMyself   = "/rest/api/3/myself"
	pathProjects = "/rest/api/3/project"
	pathSearch   = "/rest/api/3/search"
	pathIssue    = "/rest/api/3/issue"
)

// TicketFields is the field list requested for tickets.
const TicketFields = "summary,description,status,priority,assignee,created,updated,duedate,comment"

// Client is a Jira Cloud session.
type Client struct {
	rest *atlassian.Client
}

// Verify interface compliance.
var _ driven.JiraAPI = (*Client)(nil)

// NewClient creates a Jira session sending requests through fetcher.
func NewClient(creds domain.AtlassianCredentials, fetcher atlassian.Fetcher) (*Client, error) {
	rest, err := atlassian.NewClient(creds, fetcher)
	if err != nil {
		return nil, err
	}
	return &Client{rest: rest}, nil
}

// BaseURL returns the site root.
func (c *Client) BaseURL() string {
	return c.rest.BaseURL()
}

// Myself fetches the authenticated user.
func (c *Client) Myself(ctx context.Context) (*domain.JiraUser, error) {
	var user userJSON
	if err := c.rest.Get(ctx, pathMyself, nil, &user); err != nil {
		return nil, err
	}
	return toUser(&user), nil
}

// ListProjects lists the projects visible to the user.
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var projects []projectJSON
	if err := c.rest.Get(ctx, pathProjects, nil, &projects); err != nil {
		return nil, err
	}

	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProject(p))
	}
	return out, nil
}

// SearchIssues returns up to maxResults tickets of the project.
func (c *Client) SearchIssues(ctx context.Context, projectKey string, maxResults int) ([]domain.Ticket, error) {
	query := url.Values{
		"jql":        {"project = " + projectKey},
		"maxResults": {strconv.Itoa(maxResults)},
		"fields":     {TicketFields},
	}

	var result searchJSON
	if err := c.rest.Get(ctx, pathSearch, query, &result); err != nil {
		return nil, err
	}

	raw := bytes.TrimSpace(result.Issues)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: search response has no issues array", domain.ErrMalformedResponse)
	}
	var issues []issueJSON
	if err := json.Unmarshal(raw, &issues); err != nil {
		return nil, fmt.Errorf("%w: decode issues: %w", domain.ErrMalformedResponse, err)
	}

	out := make([]domain.Ticket, 0, len(issues))
	for _, issue := range issues {
		out = append(out, toTicket(issue))
	}
	return out, nil
}

// GetIssue fetches one ticket.
func (c *Client) GetIssue(ctx context.Context, key string) (*domain.Ticket, error) {
	var issue issueJSON
	query := url.Values{"fields": {TicketFields}}
	if err := c.rest.Get(ctx, issuePath(key), query, &issue); err != nil {
		return nil, err
	}
	ticket := toTicket(issue)
	return &ticket, nil
}

// CreateIssue creates a ticket. The ticket is expected to be validated.
func (c *Client) CreateIssue(ctx context.Context, ticket domain.NewTicket) (*domain.CreatedTicket, error) {
	req := createRequest{Fields: createFields{
		Project:   keyRef{Key: ticket.ProjectKey},
		Summary:   ticket.Summary,
		IssueType: nameRef{Name: ticket.IssueType},
		Priority:  nameRef{Name: ticket.Priority},
	}}
	// Jira rejects text nodes without text, so a blank description is omitted.
	if strings.TrimSpace(ticket.Description) != "" {
		doc := adfDocument(ticket.Description)
		req.Fields.Description = &doc
	}

	var created createdIssueJSON
	if err := c.rest.Post(ctx, pathIssue, req, &created); err != nil {
		return nil, err
	}
	return &domain.CreatedTicket{ID: created.ID, Key: created.Key, Self: created.Self}, nil
}

// Transitions lists the workflow edges available from the issue's status.
func (c *Client) Transitions(ctx context.Context, key string) (domain.Transitions, error) {
	var result transitionsJSON
	if err := c.rest.Get(ctx, issuePath(key)+"/transitions", nil, &result); err != nil {
		return nil, err
	}
	return toTransitions(result.Transitions), nil
}

// DoTransition moves the issue along the edge with transitionID.
func (c *Client) DoTransition(ctx context.Context, key, transitionID string) error {
	req := transitionRequest{Transition: idRef{ID: transitionID}}
	return c.rest.Post(ctx, issuePath(key)+"/transitions", req, nil)
}

// AddComment comments on an issue.
func (c *Client) AddComment(ctx context.Context, key, body string) (*domain.CreatedComment, error) {
	var created commentJSON
	if err := c.rest.Post(ctx, issuePath(key)+"/comment", commentRequest{Body: adfDocument(body)}, &created); err != nil {
		return nil, err
	}
	return &domain.CreatedComment{ID: created.ID, Self: created.Self, Created: created.Created}, nil
}

func issuePath(key string) string {
	return pathIssue + "/" + url.PathEscape(key)
}
