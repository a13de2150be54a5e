package conditions

import "errors"

// Sentinel kinds for condition tables.
var (
	ErrInvalidRange = errors.New("invalid condition range")
)
