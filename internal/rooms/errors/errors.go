package errors

import "errors"

var (
	ErrNotFound = errors.New("meeting room not found")

	ErrInvalidID = errors.New("invalid meeting room ID format")

	ErrDuplicateName = errors.New("meeting room name already exists")
)
