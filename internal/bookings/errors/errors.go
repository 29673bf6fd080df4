package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrUserNotFound = errors.New("user not found")

	ErrNoAdmin = errors.New("no admin user configured")
)
