// Package conditions grades weather fields against hunting ranges and
// classifies barometric pressure trends.
package conditions

import "fmt"

// Field names a scorable weather variable.
type Field string

// Scorable fields.
const (
	Temperature   Field = "temperature"
	WindSpeed     Field = "wind_speed"
	Humidity      Field = "humidity"
	Pressure      Field = "pressure"
	CloudCover    Field = "cloud_cover"
	Precipitation Field = "precipitation"
)

// Fields returns every scorable field in iteration order. Ratings,
// completeness and recommendations all follow this order.
func Fields() []Field {
	return []Field{Temperature, WindSpeed, Humidity, Pressure, CloudCover, Precipitation}
}

// RangedFields returns the fields graded by a Range.
func RangedFields() []Field {
	return []Field{Temperature, WindSpeed, Humidity, Pressure, CloudCover}
}

// Range is an ideal band nested inside an acceptable band.
type Range struct {
	IdealMin  float64 `json:"ideal_min" koanf:"ideal_min"`
	IdealMax  float64 `json:"ideal_max" koanf:"ideal_max"`
	AcceptMin float64 `json:"accept_min" koanf:"accept_min"`
	AcceptMax float64 `json:"accept_max" koanf:"accept_max"`
}

// Validate checks that the bands are ordered and nested.
func (r Range) Validate() error {
	if r.IdealMin > r.IdealMax || r.AcceptMin > r.AcceptMax {
		return fmt.Errorf("%w: bounds out of order", ErrInvalidRange)
	}
	if r.IdealMin < r.AcceptMin || r.IdealMax > r.AcceptMax {
		return fmt.Errorf("%w: ideal band not inside acceptable band", ErrInvalidRange)
	}
	return nil
}

// Table holds the range for each ranged field.
type Table map[Field]Range

// DefaultTable returns the built-in hunting ranges.
func DefaultTable() Table {
	return Table{
		Temperature: {IdealMin: 30, IdealMax: 60, AcceptMin: 20, AcceptMax: 70},
		WindSpeed:   {IdealMin: 3, IdealMax: 10, AcceptMin: 0, AcceptMax: 15},
		Humidity:    {IdealMin: 40, IdealMax: 70, AcceptMin: 30, AcceptMax: 80},
		Pressure:    {IdealMin: 29.8, IdealMax: 30.2, AcceptMin: 29.5, AcceptMax: 30.5},
		CloudCover:  {IdealMin: 20, IdealMax: 70, AcceptMin: 0, AcceptMax: 100},
	}
}

// Merge returns a copy of t with overrides applied, validating every
// resulting range.
func (t Table) Merge(overrides map[Field]Range) (Table, error) {
	out := make(Table, len(t)+len(overrides))
	for f, r := range t {
		out[f] = r
	}
	for f, r := range overrides {
		if !isRanged(f) {
			return nil, fmt.Errorf("%w: %q is not a ranged field", ErrInvalidRange, f)
		}
		out[f] = r
	}
	for _, f := range RangedFields() {
		r, ok := out[f]
		if !ok {
			return nil, fmt.Errorf("%w: missing range for %s", ErrInvalidRange, f)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
	}
	return out, nil
}

func isRanged(f Field) bool {
	for _, r := range RangedFields() {
		if r == f {
			return true
		}
	}
	return false
}
