package errs

import (
	"errors"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict is a lost compare-and-swap: the caller should refetch and retry.
	ErrConflict      = errors.New("concurrent modification, refetch and retry")
	ErrInvalidState  = errors.New("operation not allowed in current state")
	ErrAlreadyOpen   = errors.New("handoff already in progress")
	ErrAlreadyQueued = errors.New("already queued for this book")
	ErrForbidden     = errors.New("forbidden")
	ErrSameParty     = errors.New("giver and receiver must differ")
	ErrMemberID      = errors.New("member id is required")
)

// Retryable reports whether re-issuing the same intent may succeed.
func Retryable(err error) bool {
	return errors.Is(err, ErrConflict)
}

// InProgress reports a duplicate user action that is safe to ignore.
func InProgress(err error) bool {
	return errors.Is(err, ErrAlreadyOpen) || errors.Is(err, ErrAlreadyQueued)
}

type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}
