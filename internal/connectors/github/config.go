package github

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// Page sizes used by the dashboard.
const (
	ListPageSize   = 100
	CommitPageSize = 50
)

// Config holds the settings for a GitHub session.
type Config struct {
	// BaseURL is the REST API root. Empty means api.github.com.
	// GitHub Enterprise Server uses https://<host>/api/v3/.
	BaseURL string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// RequestsPerSecond and Burst configure proactive throttling.
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns the settings for github.com.
func DefaultConfig() Config {
	return Config{
		Timeout:           DefaultTimeout,
		RequestsPerSecond: ProactiveRate,
		Burst:             ProactiveBurst,
	}
}

// Validate checks the configuration and fills in defaults.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = ProactiveRate
	}
	if c.Burst <= 0 {
		c.Burst = ProactiveBurst
	}
	if c.BaseURL == "" {
		return nil
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
		return fmt.Errorf("%w: github base URL %q", domain.ErrInvalidInput, c.BaseURL)
	}
	if !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	return nil
}
