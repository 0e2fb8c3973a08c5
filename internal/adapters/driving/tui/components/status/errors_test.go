package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

func TestErrorText(t *testing.T) {
	tests := []struct {
		name     string
		provider domain.Provider
		err      error
		want     string
	}{
		{
			name:     "not initialised",
			provider: domain.ProviderGitHub,
			err:      fmt.Errorf("list repositories: %w", domain.ErrNotInitialized),
			want:     "GitHub is not connected. Run: devsync credentials set github",
		},
		{
			name:     "auth invalid",
			provider: domain.ProviderJira,
			err:      domain.ErrAuthInvalid,
			want:     "Jira Cloud rejected the credentials. Run: devsync credentials set jira",
		},
		{
			name:     "rate limited",
			provider: domain.ProviderGitHub,
			err:      domain.ErrRateLimited,
			want:     "GitHub rate limit reached, try again later",
		},
		{
			name:     "other",
			provider: domain.ProviderConfluence,
			err:      errors.New("boom"),
			want:     "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorText(tt.provider, tt.err))
		})
	}
}
