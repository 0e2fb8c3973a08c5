package proxy

import (
	"fmt"
	"net/http"
)

// StatusError reports a non-2xx response received through a strategy.
type StatusError struct {
	Strategy   string
	StatusCode int
	Status     string
	// Body holds the start of the response body.
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("proxy: %s returned %s", e.Strategy, e.Status)
}

// authoritative reports whether the status is the provider's final answer
// rather than a transient or relay failure.
func (e *StatusError) authoritative() bool {
	switch {
	case e.StatusCode == http.StatusRequestTimeout, e.StatusCode == http.StatusTooManyRequests:
		return false
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return true
	default:
		return false
	}
}

// StrategyError reports a network failure of one strategy.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("proxy: %s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}
