package movement

import "errors"

// Sentinel kinds for movement predictions.
var (
	ErrMissingElevation = errors.New("elevation or unit bounds required")
	ErrNoTerrainTable   = errors.New("no terrain table for activity")
)
