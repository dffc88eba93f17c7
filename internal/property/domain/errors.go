package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Callers wrap them with fmt.Errorf("%w: ...") to add detail and
// the HTTP layer maps them to status codes with errors.Is.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthorized    = errors.New("not authorized")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrMedia           = errors.New("media store failure")
	ErrTooManyRequests = errors.New("too many requests")
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so that login never discloses which one it was.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", ErrUnauthorized)

// Token verification failures, distinguished so the HTTP layer can word its
// 401 responses.
var (
	ErrTokenInvalid = fmt.Errorf("%w: token failed", ErrUnauthorized)
	ErrAdminGone    = fmt.Errorf("%w: admin not found", ErrUnauthorized)
)
