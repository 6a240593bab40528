package service

import (
	"errors"
	"fmt"

	"github.com/okian/scoutdesk/internal/adapters/repository"
)

// Sentinel kinds returned by the service. Store errors are passed through
// under the same identities so callers only need this package.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotStarted   = errors.New("service not started")
	ErrNotFound     = repository.ErrNotFound
	ErrConflict     = repository.ErrConflict
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
