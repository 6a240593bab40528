package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrMissingPath = errors.New("missing path parameter")
)

// wrap tags err with the handler operation that produced it.
func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

// wrapKind marks cause as kind for status mapping, keeping both in the chain.
func wrapKind(op string, kind, cause error) error {
	return fmt.Errorf("%s: %w: %w", op, kind, cause)
}
