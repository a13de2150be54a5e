package weather

import (
	"sort"
	"time"
)

// Interpolate estimates the weather at `at` from a forecast series.
// Numeric fields are linearly interpolated between the two observations
// bracketing `at`; a field missing from either side is taken from the
// nearer one. Wind direction and precipitation come from the nearer
// observation. Outside the series the closest endpoint is returned.
// An empty series yields an empty observation stamped with `at`.
func Interpolate(series []Observation, at time.Time) Observation {
	if len(series) == 0 {
		return Observation{Timestamp: at}
	}

	sorted := make([]Observation, len(series))
	copy(sorted, series)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	first, last := sorted[0], sorted[len(sorted)-1]
	if !at.After(first.Timestamp) {
		return stamp(first, at)
	}
	if !at.Before(last.Timestamp) {
		return stamp(last, at)
	}

	idx := sort.Search(len(sorted), func(i int) bool {
		return !sorted[i].Timestamp.Before(at)
	})
	after := sorted[idx]
	before := sorted[idx-1]

	span := after.Timestamp.Sub(before.Timestamp)
	frac := 0.0
	if span > 0 {
		frac = float64(at.Sub(before.Timestamp)) / float64(span)
	}

	nearer := before
	if frac > 0.5 {
		nearer = after
	}

	return Observation{
		Temperature:   lerp(before.Temperature, after.Temperature, nearer.Temperature, frac),
		WindSpeed:     lerp(before.WindSpeed, after.WindSpeed, nearer.WindSpeed, frac),
		WindDirection: nearer.WindDirection,
		Precipitation: copyPrecip(nearer.Precipitation),
		Pressure:      lerp(before.Pressure, after.Pressure, nearer.Pressure, frac),
		Humidity:      lerp(before.Humidity, after.Humidity, nearer.Humidity, frac),
		CloudCover:    lerp(before.CloudCover, after.CloudCover, nearer.CloudCover, frac),
		Timestamp:     at,
	}
}

func lerp(a, b, fallback *float64, frac float64) *float64 {
	switch {
	case a != nil && b != nil:
		return Float(*a + (*b-*a)*frac)
	case fallback != nil:
		return Float(*fallback)
	case a != nil:
		return Float(*a)
	case b != nil:
		return Float(*b)
	default:
		return nil
	}
}

func copyPrecip(p *Precipitation) *Precipitation {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func stamp(o Observation, at time.Time) Observation {
	o.Precipitation = copyPrecip(o.Precipitation)
	o.Timestamp = at
	return o
}
