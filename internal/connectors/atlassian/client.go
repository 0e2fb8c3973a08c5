package atlassian

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// Fetcher sends a request, falling back through alternative routes.
// *proxy.Fetcher satisfies it.
type Fetcher interface {
	FetchWithFallback(ctx context.Context, req *http.Request) (*http.Response, error)
}

// maxResponseBody bounds decoded response bodies.
const maxResponseBody = 16 << 20

// Client sends authenticated JSON requests to one Atlassian site.
type Client struct {
	baseURL    string
	authHeader string
	fetcher    Fetcher
}

// NewClient creates a client for the site named by creds.
func NewClient(creds domain.AtlassianCredentials, fetcher Fetcher) (*Client, error) {
	if !domain.HasRequiredFields(creds.Fields(), domain.ProviderJira.RequiredFields()) {
		return nil, domain.ErrInvalidCredentials
	}
	if fetcher == nil {
		return nil, fmt.Errorf("%w: fetcher is required", domain.ErrInvalidInput)
	}

	return &Client{
		baseURL:    creds.BaseURL(),
		authHeader: BasicAuth(creds.Email, creds.APIToken),
		fetcher:    fetcher,
	}, nil
}

// BasicAuth returns the Authorization header value for email and token.
func BasicAuth(email, apiToken string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(email+":"+apiToken))
}

// BaseURL returns the site root, e.g. https://acme.atlassian.net.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get sends a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends in as JSON and decodes the response into out. A nil out
// discards the response body.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, in, out)
}

// Do sends one request. Undecodable responses are domain.ErrMalformedResponse.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + encodeQuery(query)
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.fetcher.FetchWithFallback(ctx, req)
	if err != nil {
		return wrapError(err, method+" "+path, target)
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", domain.ErrMalformedResponse, method, path, err)
	}
	return nil
}

// encodeQuery encodes spaces as %20 so JQL reads the same as in a browser.
func encodeQuery(query url.Values) string {
	return strings.ReplaceAll(query.Encode(), "+", "%20")
}
