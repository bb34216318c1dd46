package models

import (
	"errors"
	"fmt"
)

// Error kinds. Every domain error wraps exactly one of them.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

// Validation errors
var (
	ErrInvalidInput = fmt.Errorf("%w: invalid input", ErrValidation)
	ErrEmptyText    = fmt.Errorf("%w: message text is empty", ErrValidation)
	ErrTextTooLong  = fmt.Errorf("%w: message text exceeds %d characters", ErrValidation, MaxMessageLength)
	ErrSelfFollow   = fmt.Errorf("%w: account cannot follow itself", ErrValidation)
)

// Conflict errors
var (
	ErrDuplicateUsername = fmt.Errorf("%w: username already taken", ErrConflict)
	ErrDuplicateEmail    = fmt.Errorf("%w: email already taken", ErrConflict)
	ErrAlreadyFollowing  = fmt.Errorf("%w: already following", ErrConflict)
	ErrAlreadyLiked      = fmt.Errorf("%w: message already liked", ErrConflict)
)

// Not-found errors
var (
	ErrAccountNotFound = fmt.Errorf("%w: account", ErrNotFound)
	ErrAuthorNotFound  = fmt.Errorf("%w: author", ErrNotFound)
	ErrMessageNotFound = fmt.Errorf("%w: message", ErrNotFound)
	ErrNotFollowing    = fmt.Errorf("%w: follow relationship", ErrNotFound)
	ErrNotLiked        = fmt.Errorf("%w: like", ErrNotFound)
)

// Authorization errors
var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrForbidden)
	ErrUnauthorized       = fmt.Errorf("%w: re-authentication failed", ErrForbidden)
	ErrNotOwner           = fmt.Errorf("%w: account does not own the message", ErrForbidden)
)
