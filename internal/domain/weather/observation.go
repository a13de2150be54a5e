// Package weather models weather observations as consumed by the engine.
//
// Every numeric field is optional. An absent field means "not observed"
// and is excluded from scoring; the engine never substitutes a default.
package weather

import "time"

// PrecipitationType classifies falling precipitation.
type PrecipitationType string

// Precipitation types.
const (
	PrecipNone PrecipitationType = "none"
	PrecipRain PrecipitationType = "rain"
	PrecipSnow PrecipitationType = "snow"
)

// Precipitation is an amount (inches) with its type.
type Precipitation struct {
	Amount float64           `json:"amount"`
	Type   PrecipitationType `json:"type"`
}

// Wet reports rain or snow.
func (p *Precipitation) Wet() bool {
	return p != nil && (p.Type == PrecipRain || p.Type == PrecipSnow)
}

// Observation is a single weather snapshot. Units: °F, mph, inHg, percent.
type Observation struct {
	Temperature   *float64       `json:"temperature,omitempty"`
	WindSpeed     *float64       `json:"wind_speed,omitempty"`
	WindDirection Cardinal       `json:"wind_direction,omitempty"`
	Precipitation *Precipitation `json:"precipitation,omitempty"`
	Pressure      *float64       `json:"pressure,omitempty"`
	Humidity      *float64       `json:"humidity,omitempty"`
	CloudCover    *float64       `json:"cloud_cover,omitempty"`
	Timestamp     time.Time      `json:"timestamp,omitempty"`
}

// Float returns a pointer to v, for building observations.
func Float(v float64) *float64 { return &v }

// Above reports whether the field is present and greater than limit.
func Above(field *float64, limit float64) bool {
	return field != nil && *field > limit
}

// Below reports whether the field is present and less than limit.
func Below(field *float64, limit float64) bool {
	return field != nil && *field < limit
}

// PrecipitationIs reports whether the observed precipitation has type t.
func (o Observation) PrecipitationIs(t PrecipitationType) bool {
	return o.Precipitation != nil && o.Precipitation.Type == t
}
