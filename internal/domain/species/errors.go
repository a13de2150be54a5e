package species

import "errors"

// Sentinel kinds for species lookups.
var (
	ErrUnknownSpecies = errors.New("unknown species")
	ErrInvalidProfile = errors.New("invalid species profile")
)
