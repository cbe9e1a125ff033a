// Package apperr holds the error taxonomy shared by every domain package.
// Domain packages wrap these sentinels with context; callers match with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidDueDate    = errors.New("invalid due date")
	ErrDuplicateInvite   = errors.New("duplicate invite")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrLenderUnavailable = errors.New("lender unavailable")
	ErrMissingProof      = errors.New("missing proof")
	ErrAuthFailure       = errors.New("authentication failed")
	ErrInvalidInput      = errors.New("invalid input")
)
