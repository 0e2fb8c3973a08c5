package github

import (
	"context"
	"sync"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/devsync-cli/internal/logger"
)

const (
	// HourlyQuota is the authenticated REST quota.
	HourlyQuota = 5000

	// ProactiveRate keeps a long dashboard session under HourlyQuota.
	ProactiveRate = 1.2

	// ProactiveBurst lets a repository summary fan out without queueing.
	ProactiveBurst = 10

	// ReserveRequests are held back for the user's next action. Below this
	// many remaining requests Wait sleeps until the quota resets.
	ReserveRequests = 100
)

// RateLimiter throttles requests with a token bucket and pauses when the
// quota reported by GitHub runs low.
type RateLimiter struct {
	bucket *rate.Limiter

	mu    sync.Mutex
	quota gh.Rate
}

// NewRateLimiter creates a limiter allowing perSecond sustained requests
// with bursts of up to burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), burst),
		quota:  gh.Rate{Limit: HourlyQuota, Remaining: HourlyQuota},
	}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	quota := r.Quota()
	if quota.Remaining >= ReserveRequests || quota.Reset.IsZero() {
		return nil
	}
	pause := time.Until(quota.Reset.Time)
	if pause <= 0 {
		return nil
	}

	logger.Warn("GitHub quota low (%d of %d left), waiting %s", quota.Remaining, quota.Limit, pause.Round(time.Second))
	timer := time.NewTimer(pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Observe records the quota go-github parsed from a response.
func (r *RateLimiter) Observe(resp *gh.Response) {
	if resp == nil || resp.Rate.Limit == 0 {
		return
	}
	r.mu.Lock()
	r.quota = resp.Rate
	r.mu.Unlock()
}

// Quota returns the last observed quota.
func (r *RateLimiter) Quota() gh.Rate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota
}
