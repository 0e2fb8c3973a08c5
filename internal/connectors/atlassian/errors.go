package atlassian

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/custodia-labs/devsync-cli/internal/connectors/proxy"
	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// APIError represents an Atlassian API error response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("atlassian: API error %d (URL: %s)", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("atlassian: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap maps the status code to a domain error.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrAuthInvalid
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusBadRequest:
		return domain.ErrInvalidInput
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		return nil
	}
}

// errorBody is the error envelope of Jira and Confluence.
type errorBody struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
	Message       string            `json:"message"`
}

// parseErrorMessage extracts a readable message from an error body.
func parseErrorMessage(body string) string {
	var parsed errorBody
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return strings.TrimSpace(body)
	}

	msgs := append([]string(nil), parsed.ErrorMessages...)
	for field, msg := range parsed.Errors {
		msgs = append(msgs, field+": "+msg)
	}
	if parsed.Message != "" {
		msgs = append(msgs, parsed.Message)
	}
	return strings.Join(msgs, "; ")
}

// wrapError converts fetcher errors to our error types. A status error from
// the provider becomes an *APIError; exhausted strategies keep their chain.
func wrapError(err error, operation, url string) error {
	if errors.Is(err, domain.ErrAllStrategiesFailed) {
		return fmt.Errorf("%s: %w", operation, err)
	}

	var statusErr *proxy.StatusError
	if errors.As(err, &statusErr) {
		return &APIError{
			StatusCode: statusErr.StatusCode,
			Message:    parseErrorMessage(statusErr.Body),
			URL:        url,
		}
	}
	return fmt.Errorf("%s: %w", operation, err)
}
