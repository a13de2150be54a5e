// Package diel computes time-of-day activity weights.
package diel

import (
	"math"
	"time"
)

// Curve parameters in fractional hours.
const (
	dawnCenter  = 6.5
	duskCenter  = 19.5
	periodWidth = 2.0
)

// Period is a portion of the 24-hour cycle.
type Period string

// Periods.
const (
	Dawn  Period = "dawn"
	Dusk  Period = "dusk"
	Day   Period = "day"
	Night Period = "night"
)

// Weights holds independent activity weights per period, each in [0,1].
// They do not sum to one.
type Weights struct {
	Dawn  float64 `json:"dawn"`
	Dusk  float64 `json:"dusk"`
	Day   float64 `json:"day"`
	Night float64 `json:"night"`
}

// Of returns the weight for p, or 0 for an unknown period.
func (w Weights) Of(p Period) float64 {
	switch p {
	case Dawn:
		return w.Dawn
	case Dusk:
		return w.Dusk
	case Day:
		return w.Day
	case Night:
		return w.Night
	default:
		return 0
	}
}

// Max returns the largest weight among periods, or 0 when periods is empty.
func (w Weights) Max(periods []Period) float64 {
	best := 0.0
	for _, p := range periods {
		if v := w.Of(p); v > best {
			best = v
		}
	}
	return best
}

// FractionalHour returns t's wall-clock hour with minutes as a fraction.
func FractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// ActivityWeights evaluates the dawn and dusk gaussians, the half-sine day
// curve between them, and night as the complement of day.
func ActivityWeights(t time.Time) Weights {
	h := FractionalHour(t)

	day := 0.0
	if h >= dawnCenter && h <= duskCenter {
		day = math.Sin(math.Pi * (h - dawnCenter) / (duskCenter - dawnCenter))
		if day < 0 {
			day = 0
		}
	}

	return Weights{
		Dawn:  gaussian(h, dawnCenter),
		Dusk:  gaussian(h, duskCenter),
		Day:   day,
		Night: 1 - day,
	}
}

func gaussian(h, center float64) float64 {
	d := h - center
	return math.Exp(-(d * d) / (2 * periodWidth * periodWidth))
}
