package worker

import "errors"

// Sentinel kinds for worker errors.
var (
	ErrAnalysisPanic = errors.New("analysis panicked")
)
