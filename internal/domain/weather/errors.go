package weather

import "errors"

// ErrUnknownCardinal reports a wind direction that is not one of the 16
// compass points.
var ErrUnknownCardinal = errors.New("unknown compass point")
