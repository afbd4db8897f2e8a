package auth

import "errors"

var (
	// ErrCodeInvalid signals a wrong, expired, or unknown login code.
	ErrCodeInvalid = errors.New("invalid or expired login code")
	// ErrTooManyAttempts signals the verification attempt budget is spent.
	ErrTooManyAttempts = errors.New("too many verification attempts")
	// ErrInvalidEmail signals a malformed email address.
	ErrInvalidEmail = errors.New("invalid email address")
)
