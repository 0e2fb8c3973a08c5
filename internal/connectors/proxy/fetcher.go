package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
	"github.com/custodia-labs/devsync-cli/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// maxErrorBody bounds how much of a failed response body is kept.
const maxErrorBody = 2048

// HeaderRequestedWith marks relayed requests; several relays require it.
const HeaderRequestedWith = "X-Requested-With"

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher sends requests through an ordered list of strategies.
// It is safe for concurrent use.
type Fetcher struct {
	client     Doer
	strategies []Strategy

	mu    sync.Mutex
	index int

	log logger.Scoped
}

// New creates a fetcher. A nil client uses an http.Client with DefaultTimeout.
// An empty strategy list uses DefaultStrategies.
func New(client Doer, strategies []Strategy) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	copied := make([]Strategy, len(strategies))
	copy(copied, strategies)

	return &Fetcher{
		client:     client,
		strategies: copied,
		log:        logger.With("proxy"),
	}
}

// Strategies returns the configured strategies in order.
func (f *Fetcher) Strategies() []Strategy {
	out := make([]Strategy, len(f.strategies))
	copy(out, f.strategies)
	return out
}

// Current returns the active strategy.
func (f *Fetcher) Current() Strategy {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.strategies[f.index]
}

// Reset moves the cursor back to the first (direct) strategy.
func (f *Fetcher) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.index = 0
}

// advance moves the cursor past from, unless another caller already did.
func (f *Fetcher) advance(from int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.index == from {
		f.index = (from + 1) % len(f.strategies)
		f.log.Debug("switching to %s", f.strategies[f.index])
	}
}

func (f *Fetcher) cursor() (int, Strategy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.index, f.strategies[f.index]
}

func (f *Fetcher) setCursor(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.index = i
}

// Fetch makes one attempt with the active strategy. On a network error or a
// non-2xx status the cursor advances and the error is returned. The caller
// closes the response body on success.
func (f *Fetcher) Fetch(ctx context.Context, req *http.Request) (*http.Response, error) {
	body, err := bufferBody(req)
	if err != nil {
		return nil, err
	}

	i, strategy := f.cursor()
	resp, err := f.attempt(ctx, req, body, strategy)
	if err != nil {
		f.advance(i)
		return nil, err
	}
	return resp, nil
}

// FetchWithFallback tries every strategy once, starting at the active one,
// and returns the first 2xx response. A 4xx answer from the direct strategy
// (other than 408 and 429) is returned at once: it comes from the provider
// itself and relays would only repeat it. A non-idempotent request that got
// any response is not resent, since the write may already have happened.
// When every strategy fails the last error is returned wrapped in
// domain.ErrAllStrategiesFailed.
func (f *Fetcher) FetchWithFallback(ctx context.Context, req *http.Request) (*http.Response, error) {
	body, err := bufferBody(req)
	if err != nil {
		return nil, err
	}

	start, _ := f.cursor()
	var lastErr error
	for n := 0; n < len(f.strategies); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		i := (start + n) % len(f.strategies)
		strategy := f.strategies[i]

		resp, err := f.attempt(ctx, req, body, strategy)
		if err == nil {
			f.setCursor(i)
			return resp, nil
		}
		lastErr = err

		var statusErr *StatusError
		if errors.As(err, &statusErr) && (!idempotent(req.Method) || strategy.IsDirect() && statusErr.authoritative()) {
			f.setCursor(i)
			return nil, err
		}
		f.log.Debug("%s failed: %v", strategy, err)
	}

	f.advance(start)
	return nil, fmt.Errorf("%w: %w", domain.ErrAllStrategiesFailed, lastErr)
}

// attempt sends req through one strategy. Non-2xx responses are closed and
// reported as *StatusError.
func (f *Fetcher) attempt(ctx context.Context, req *http.Request, body []byte, strategy Strategy) (*http.Response, error) {
	out, err := buildRequest(ctx, req, body, strategy)
	if err != nil {
		return nil, err
	}

	f.log.Debug("%s %s via %s", req.Method, req.URL.Redacted(), strategy)
	resp, err := f.client.Do(out)
	if err != nil {
		return nil, &StrategyError{Strategy: strategy.Name, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Strategy:   strategy.Name,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(snippet),
		}
	}
	return resp, nil
}

func buildRequest(ctx context.Context, req *http.Request, body []byte, strategy Strategy) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	out, err := http.NewRequestWithContext(ctx, req.Method, strategy.Target(req.URL.String()), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", strategy, err)
	}
	out.Header = req.Header.Clone()
	if out.Header == nil {
		out.Header = make(http.Header)
	}
	if !strategy.IsDirect() {
		out.Header.Set(HeaderRequestedWith, "XMLHttpRequest")
	}
	return out, nil
}

// idempotent reports whether a request with this method can be repeated
// without changing the result.
func idempotent(method string) bool {
	switch method {
	case "", http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete, http.MethodTrace:
		return true
	}
	return false
}

// bufferBody reads the request body once so every attempt can resend it.
func bufferBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer req.Body.Close()
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return body, nil
}
