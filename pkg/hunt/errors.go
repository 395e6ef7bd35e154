package hunt

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel errors the tools translate into user-facing messages.
var (
	ErrAuthentication = errors.New("authentication failed: the Orca API rejected the configured token")
	ErrRateLimited    = errors.New("rate limited by the Orca API, wait before retrying")
)

// StatusError is returned for any upstream response with a failure status,
// including the 5xx responses that survive the retry budget. Body carries
// the raw upstream payload so detail messages can be surfaced.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("orca api returned status %d", e.Code)
}
