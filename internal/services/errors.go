// Package services defines the business logic for generating and listing
// devotional content. This file centralizes the service-level error values
// and types so they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTemplate is returned when a generation request names a
	// template that is not registered.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrGemNotFound indicates that the requested gem does not exist.
	ErrGemNotFound = errors.New("gem not found")
)

// ExhaustedError is the terminal failure of a generation request: every
// attempt in the budget was spent without producing a unique, parseable,
// non-empty candidate. The attempt count is for logs; user-facing messages
// stay generic.
type ExhaustedError struct {
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("no unique content after %d attempts", e.Attempts)
}
