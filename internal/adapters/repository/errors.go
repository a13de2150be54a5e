package repository

import "errors"

// Sentinel kinds for job store errors.
var (
	ErrNotFound      = errors.New("job not found")
	ErrEmptyID       = errors.New("job id required")
	ErrStoreClosed   = errors.New("store closed")
	ErrUnknownDriver = errors.New("unknown store driver")
)
