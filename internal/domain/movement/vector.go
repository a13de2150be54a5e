package movement

import (
	"github.com/okian/huntcast/internal/domain/model"
	"github.com/okian/huntcast/internal/domain/weather"
)

// Range is a movement distance span in meters.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// baseRanges are the unmodified movement spans per activity.
var baseRanges = map[model.Activity]Range{
	model.Feeding:   {Min: 100, Max: 500},
	model.Bedding:   {Min: 0, Max: 50},
	model.Traveling: {Min: 500, Max: 2000},
}

// BaseRange returns the unmodified span for activity.
func BaseRange(a model.Activity) Range {
	return baseRanges[a]
}

// Vector is the predicted movement for one hour.
type Vector struct {
	Range                  Range                 `json:"range"`
	Direction              weather.Cardinal      `json:"direction"`
	TerrainPreferenceOrder []model.TerrainWeight `json:"terrain_preference_order"`
}

// RangeModifier shrinks movement in heat, strong wind and precipitation.
// Each condition multiplies independently.
func RangeModifier(obs weather.Observation) float64 {
	mod := 1.0
	if weather.Above(obs.Temperature, 80) {
		mod *= 0.7
	}
	if weather.Above(obs.WindSpeed, 15) {
		mod *= 0.8
	}
	if obs.Precipitation.Wet() {
		mod *= 0.6
	}
	return mod
}

// Direction returns the likely heading for activity given the wind:
// feeding crosswind, traveling downwind, bedding upwind.
func Direction(wind weather.Cardinal, a model.Activity) weather.Cardinal {
	deg, _ := wind.Degrees()
	switch a {
	case model.Feeding:
		deg = weather.Rotate(deg, 90)
	case model.Traveling:
		deg = weather.Rotate(deg, 180)
	}
	return weather.Nearest(deg)
}

// Calculate builds the movement vector for activity from adjusted terrain
// preferences and the current weather.
func Calculate(a model.Activity, prefs model.PreferenceMap, obs weather.Observation) Vector {
	base := BaseRange(a)
	mod := RangeModifier(obs)
	return Vector{
		Range:                  Range{Min: base.Min * mod, Max: base.Max * mod},
		Direction:              Direction(obs.WindDirection, a),
		TerrainPreferenceOrder: prefs.Ordered(),
	}
}
