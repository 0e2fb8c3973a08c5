package github

import (
	"errors"
	"net/http"
	"net/url"
	"testing"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

func TestTranslate_Nil(t *testing.T) {
	assert.NoError(t, translate(nil, "get user", gh.Rate{}))
}

func TestTranslate_AbuseLimitUsesQuota(t *testing.T) {
	retry := 30 * time.Second
	abuse := &gh.AbuseRateLimitError{RetryAfter: &retry}

	err := translate(abuse, "list repos", gh.Rate{Limit: 5000, Remaining: 12})

	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 12, rl.Remaining)
	assert.Equal(t, 5000, rl.Limit)
	assert.WithinDuration(t, time.Now().Add(retry), rl.ResetAt, 5*time.Second)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestTranslate_ErrorResponse(t *testing.T) {
	req := &http.Request{URL: &url.URL{Scheme: "https", Host: "api.github.com", Path: "/repos/o/r"}}
	resp := &gh.ErrorResponse{
		Response: &http.Response{StatusCode: http.StatusNotFound, Request: req},
		Message:  "Not Found",
	}

	err := translate(resp, "get repo", gh.Rate{})

	assert.True(t, IsNotFound(err))
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "github: 404 Not Found (https://api.github.com/repos/o/r)", err.Error())
}

func TestTranslate_OtherErrorsKeepOperation(t *testing.T) {
	cause := errors.New("connection reset")

	err := translate(cause, "list commits", gh.Rate{})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list commits: connection reset", err.Error())
	assert.False(t, IsRateLimited(err))
}

func TestAPIError_UnwrapUnknownStatus(t *testing.T) {
	err := &APIError{StatusCode: http.StatusInternalServerError, Message: "boom"}

	assert.Nil(t, err.Unwrap())
	assert.Equal(t, "github: 500 boom", err.Error())
}
