package proxy

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// DirectName is the name of the strategy that sends requests unmodified.
const DirectName = "direct"

// Strategy is one way of reaching a provider.
type Strategy struct {
	// Name identifies the strategy in logs.
	Name string
	// Prefix is prepended to the URL-encoded target. Empty means direct.
	Prefix string
}

// Direct is the strategy that sends requests unmodified.
var Direct = Strategy{Name: DirectName}

// DefaultStrategies returns the built-in strategy list, direct first.
func DefaultStrategies() []Strategy {
	return []Strategy{
		Direct,
		{Name: "allorigins", Prefix: "https://api.allorigins.win/raw?url="},
		{Name: "corsproxy", Prefix: "https://corsproxy.io/?"},
		{Name: "thingproxy", Prefix: "https://thingproxy.freeboard.io/fetch/"},
		{Name: "cors-anywhere", Prefix: "https://cors-anywhere.herokuapp.com/"},
	}
}

// IsDirect reports whether the strategy sends requests unmodified.
func (s Strategy) IsDirect() bool {
	return s.Prefix == ""
}

// Target returns the URL to request for rawURL under this strategy.
func (s Strategy) Target(rawURL string) string {
	if s.IsDirect() {
		return rawURL
	}
	return s.Prefix + encodeURIComponent(rawURL)
}

func (s Strategy) String() string {
	return s.Name
}

// encodeURIComponent percent-encodes s for embedding in another URL.
// Spaces become %20 rather than '+'.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// ParseStrategies builds a strategy list from configuration values. Each
// value is either "direct" or a relay prefix URL. The direct strategy is
// always placed first, and duplicates are dropped.
func ParseStrategies(values []string) ([]Strategy, error) {
	strategies := []Strategy{Direct}
	seen := map[string]bool{"": true}

	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, DirectName) {
			continue
		}
		u, err := url.Parse(v)
		if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
			return nil, fmt.Errorf("%w: proxy strategy %q is not an http(s) URL", domain.ErrInvalidInput, v)
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		strategies = append(strategies, Strategy{Name: u.Host, Prefix: v})
	}
	return strategies, nil
}
