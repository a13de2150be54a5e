// Package calendar measures how far a date sits inside a recurring yearly
// interval such as a rut, birth season or migration window.
package calendar

import (
	"fmt"
	"time"
)

// daysPerWrap is added to interval ends that fall before their start.
const daysPerWrap = 365

// MonthDay is a calendar position that recurs every year.
type MonthDay struct {
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

// On returns the day-of-year of m in year. Out-of-range days roll over the
// way time.Date normalizes them.
func (m MonthDay) On(year int) int {
	return time.Date(year, m.Month, m.Day, 0, 0, 0, 0, time.UTC).YearDay()
}

// AddMonths shifts m by n months keeping the day, normalized in year.
// Oct 31 + 1 month is Dec 1; Dec 15 + 1 month is Jan 15.
func (m MonthDay) AddMonths(year, n int) MonthDay {
	t := time.Date(year, m.Month+time.Month(n), m.Day, 0, 0, 0, 0, time.UTC)
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

func (m MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(m.Month), m.Day)
}

// Interval is a yearly window that may wrap past New Year.
type Interval struct {
	Start MonthDay `json:"start"`
	End   MonthDay `json:"end"`
}

// Wraps reports whether the interval crosses New Year in year.
func (iv Interval) Wraps(year int) bool {
	return iv.End.On(year) < iv.Start.On(year)
}

// Degenerate reports a zero-length interval in year.
func (iv Interval) Degenerate(year int) bool {
	return iv.End.On(year) == iv.Start.On(year)
}

// Depth returns how deep date sits in iv: 0 at the start, rising linearly
// towards 1 at the end, and 0 outside. A degenerate interval yields 0.
func Depth(date time.Time, iv Interval) float64 {
	year := date.Year()
	if iv.Degenerate(year) {
		return 0
	}
	start := iv.Start.On(year)
	end := iv.End.On(year)
	check := date.YearDay()

	if iv.Wraps(year) {
		end += daysPerWrap
		if check < start {
			check += daysPerWrap
		}
	}
	if check < start || check > end {
		return 0
	}
	return float64(check-start) / float64(end-start)
}

// MonthWindow is the one-month interval opening at start.
func MonthWindow(year int, start MonthDay) Interval {
	return Interval{Start: start, End: start.AddMonths(year, 1)}
}

// Season is the half of the year used for elevation preference.
type Season string

// Seasons.
const (
	Summer Season = "summer"
	Winter Season = "winter"
)

// SeasonOf returns summer for April through September, winter otherwise.
func SeasonOf(t time.Time) Season {
	if t.Month() >= time.April && t.Month() <= time.September {
		return Summer
	}
	return Winter
}
