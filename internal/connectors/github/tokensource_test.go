package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// rotatingProvider hands out its tokens in order and counts the calls.
type rotatingProvider struct {
	mu     sync.Mutex
	method domain.AuthMethod
	tokens []string
	calls  int
}

func (p *rotatingProvider) GetToken(_ context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	tok := p.tokens[min(p.calls, len(p.tokens)-1)]
	p.calls++
	return tok, nil
}

func (p *rotatingProvider) AuthMethod() domain.AuthMethod { return p.method }

func (p *rotatingProvider) IsAuthenticated() bool { return true }

func (p *rotatingProvider) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestProviderTokenSource_PATNeverExpires(t *testing.T) {
	provider := &rotatingProvider{method: domain.AuthMethodPAT, tokens: []string{"ghp_a", "ghp_b"}}
	ts := newTokenSource(context.Background(), provider)

	for range 3 {
		tok, err := ts.Token()
		require.NoError(t, err)
		assert.Equal(t, "ghp_a", tok.AccessToken)
		assert.True(t, tok.Expiry.IsZero())
	}
	assert.Equal(t, 1, provider.count())
}

func TestProviderTokenSource_OAuthExpires(t *testing.T) {
	provider := &rotatingProvider{method: domain.AuthMethodOAuth, tokens: []string{"gho_a"}}
	src := &providerTokenSource{ctx: context.Background(), provider: provider, lifetime: oauthTokenLifetime}

	tok, err := src.Token()

	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(oauthTokenLifetime), tok.Expiry, 5*time.Second)
}

func TestProviderTokenSource_RefreshedTokenIsPickedUp(t *testing.T) {
	provider := &rotatingProvider{method: domain.AuthMethodOAuth, tokens: []string{"gho_old", "gho_new"}}
	// A lifetime inside oauth2's expiry margin makes every token stale at once.
	ts := oauth2.ReuseTokenSource(nil, &providerTokenSource{
		ctx:      context.Background(),
		provider: provider,
		lifetime: time.Second,
	})

	first, err := ts.Token()
	require.NoError(t, err)
	second, err := ts.Token()
	require.NoError(t, err)

	assert.Equal(t, "gho_old", first.AccessToken)
	assert.Equal(t, "gho_new", second.AccessToken)
}

func TestClient_TokenFetchedOncePerValidity(t *testing.T) {
	provider := &rotatingProvider{method: domain.AuthMethodPAT, tokens: []string{"ghp_test"}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ghp_test", r.Header.Get("Authorization"))
		writeJSON(t, w, map[string]any{"login": "octocat"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client, err := NewClient(provider, Config{BaseURL: srv.URL})
	require.NoError(t, err)

	for range 2 {
		_, err := client.CurrentUser(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 1, provider.count())
}
