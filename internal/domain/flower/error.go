package flower

import (
	"errors"
)

var (
	ErrEmptyMessage   = errors.New("message cannot be empty")
	ErrMessageTooLong = errors.New("message must be 200 characters or less")
	ErrNotFound       = errors.New("flower not found")
)
