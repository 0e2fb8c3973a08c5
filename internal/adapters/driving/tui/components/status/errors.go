package status

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/devsync-cli/internal/core/domain"
)

// ErrorText describes err for display, with a next step for errors a user can fix.
func ErrorText(provider domain.Provider, err error) string {
	switch {
	case errors.Is(err, domain.ErrNotInitialized):
		return fmt.Sprintf("%s is not connected. Run: devsync credentials set %s", provider.Description(), provider)
	case errors.Is(err, domain.ErrAuthInvalid):
		return fmt.Sprintf("%s rejected the credentials. Run: devsync credentials set %s", provider.Description(), provider)
	case errors.Is(err, domain.ErrRateLimited):
		return fmt.Sprintf("%s rate limit reached, try again later", provider.Description())
	default:
		return err.Error()
	}
}
