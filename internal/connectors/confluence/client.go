package confluence

import (
	"context"
	"net/url"
	"strconv"

	"github.com/custodia-labs/devsync-cli/internal/connectors/atlassian"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/core/ports/driven"
)

const (
	wikiPrefix  = "/wiki"
	pathUser    = wikiPrefix + "/rest/api/user/current"
	pathSpace   = wikiPrefix + "/rest/api/space"
	pathContent = wikiPrefix + "/rest/api/content"

	// PageLimit is the page size for space and content listings.
	PageLimit = 100

	expandPage = "body.storage,version,space"
)

type userJSON struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

type linksJSON struct {
	WebUI string `json:"webui"`
}

type spaceJSON struct {
	ID          int64  `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Description struct {
		Plain struct {
			Value string `json:"value"`
		} `json:"plain"`
	} `json:"description"`
	Links linksJSON `json:"_links"`
}

type pageJSON struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Title  string `json:"title"`
	Space  *struct {
		Key string `json:"key"`
	} `json:"space"`
	Version *struct {
		Number int `json:"number"`
	} `json:"version"`
	Body *struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
	Links linksJSON `json:"_links"`
}

type listJSON[T any] struct {
	Results []T `json:"results"`
	Size    int `json:"size"`
}

// Client is a Confluence Cloud session.
type Client struct {
	rest *atlassian.Client
}

// Verify interface compliance.
var _ driven.ConfluenceAPI = (*Client)(nil)

// NewClient creates a Confluence session sending requests through fetcher.
func NewClient(creds domain.AtlassianCredentials, fetcher atlassian.Fetcher) (*Client, error) {
	rest, err := atlassian.NewClient(creds, fetcher)
	if err != nil {
		return nil, err
	}
	return &Client{rest: rest}, nil
}

// CurrentUser fetches the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*domain.ConfluenceUser, error) {
	var user userJSON
	if err := c.rest.Get(ctx, pathUser, nil, &user); err != nil {
		return nil, err
	}
	return &domain.ConfluenceUser{
		AccountID:   user.AccountID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}, nil
}

// ListSpaces lists the spaces visible to the user.
func (c *Client) ListSpaces(ctx context.Context) ([]domain.Space, error) {
	query := url.Values{
		"limit":  {strconv.Itoa(PageLimit)},
		"expand": {"description.plain"},
	}
	var result listJSON[spaceJSON]
	if err := c.rest.Get(ctx, pathSpace, query, &result); err != nil {
		return nil, err
	}

	out := make([]domain.Space, 0, len(result.Results))
	for _, s := range result.Results {
		out = append(out, domain.Space{
			ID:          s.ID,
			Key:         s.Key,
			Name:        s.Name,
			Type:        s.Type,
			Status:      s.Status,
			Description: s.Description.Plain.Value,
			WebURL:      c.webURL(s.Links.WebUI),
		})
	}
	return out, nil
}

// ListPages lists the pages of a space with their storage body.
func (c *Client) ListPages(ctx context.Context, spaceKey string) ([]domain.Page, error) {
	query := url.Values{
		"spaceKey": {spaceKey},
		"type":     {"page"},
		"limit":    {strconv.Itoa(PageLimit)},
		"expand":   {expandPage},
	}
	var result listJSON[pageJSON]
	if err := c.rest.Get(ctx, pathContent, query, &result); err != nil {
		return nil, err
	}

	out := make([]domain.Page, 0, len(result.Results))
	for _, p := range result.Results {
		out = append(out, c.toPage(p))
	}
	return out, nil
}

// GetPage fetches one page with its storage body.
func (c *Client) GetPage(ctx context.Context, id string) (*domain.Page, error) {
	var page pageJSON
	query := url.Values{"expand": {expandPage}}
	if err := c.rest.Get(ctx, pathContent+"/"+url.PathEscape(id), query, &page); err != nil {
		return nil, err
	}
	out := c.toPage(page)
	return &out, nil
}

func (c *Client) toPage(p pageJSON) domain.Page {
	page := domain.Page{
		ID:     p.ID,
		Title:  p.Title,
		Type:   p.Type,
		Status: p.Status,
		WebURL: c.webURL(p.Links.WebUI),
	}
	if p.Space != nil {
		page.SpaceKey = p.Space.Key
	}
	if p.Version != nil {
		page.Version = p.Version.Number
	}
	if p.Body != nil {
		page.Body = p.Body.Storage.Value
	}
	return page
}

// webURL resolves a relative web UI link against the site's wiki root.
func (c *Client) webURL(webui string) string {
	if webui == "" {
		return ""
	}
	return c.rest.BaseURL() + wikiPrefix + webui
}
