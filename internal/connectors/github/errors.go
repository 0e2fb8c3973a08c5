package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// RateLimitError is returned when the hourly quota or the secondary abuse
// limit is exhausted.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return "github: rate limit exceeded, resets at " + e.ResetAt.Format(time.RFC3339)
}

func (e *RateLimitError) Unwrap() error { return domain.ErrRateLimited }

// APIError is a non-2xx answer from the REST API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("github: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github: %d %s (%s)", e.StatusCode, e.Message, e.URL)
}

// Unwrap exposes the domain error for the status, if any.
func (e *APIError) Unwrap() error {
	return statusErrors[e.StatusCode]
}

var statusErrors = map[int]error{
	http.StatusUnauthorized:        domain.ErrAuthInvalid,
	http.StatusForbidden:           domain.ErrAuthInvalid,
	http.StatusNotFound:            domain.ErrNotFound,
	http.StatusUnprocessableEntity: domain.ErrInvalidInput,
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether err is a *RateLimitError.
func IsRateLimited(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// translate maps go-github errors onto the package error types. Rate limit
// errors are checked before ErrorResponse because they also carry one.
// quota fills in the numbers the abuse error does not report.
func translate(err error, operation string, quota gh.Rate) error {
	var rateErr *gh.RateLimitError
	var abuseErr *gh.AbuseRateLimitError
	var respErr *gh.ErrorResponse

	switch {
	case err == nil:
		return nil
	case errors.As(err, &rateErr):
		return &RateLimitError{
			ResetAt:   rateErr.Rate.Reset.Time,
			Remaining: rateErr.Rate.Remaining,
			Limit:     rateErr.Rate.Limit,
		}
	case errors.As(err, &abuseErr):
		return &RateLimitError{
			ResetAt:   time.Now().Add(abuseErr.GetRetryAfter()),
			Remaining: quota.Remaining,
			Limit:     quota.Limit,
		}
	case errors.As(err, &respErr) && respErr.Response != nil:
		apiErr := &APIError{StatusCode: respErr.Response.StatusCode, Message: respErr.Message}
		if respErr.Response.Request != nil {
			apiErr.URL = respErr.Response.Request.URL.String()
		}
		return apiErr
	}
	return fmt.Errorf("%s: %w", operation, err)
}
