// Package movement predicts where and how far an animal is likely to move
// for the current hour, relative to the wind.
package movement

import (
	"time"

	"github.com/okian/huntcast/internal/domain/model"
	"github.com/okian/huntcast/internal/domain/weather"
)

// Conditions under which a midday rut turns bedding into traveling.
const (
	rutTravelBreeding    = 0.7
	rutTravelTemperature = 70.0
	rutTravelWind        = 15.0
)

// SelectActivity picks the primary activity for the hour of at.
//
//	05–09, 17–21   feeding
//	10–16          bedding, or traveling deep in the rut on a cool calm day
//	22–23, 00–01   feeding
//	02–04          bedding
//
// The traveling override needs temperature and wind speed to be observed.
func SelectActivity(at time.Time, f model.BehaviorFactors, obs weather.Observation) model.Activity {
	h := at.Hour()
	switch {
	case (h >= 5 && h <= 9) || (h >= 17 && h <= 21):
		return model.Feeding
	case h >= 10 && h <= 16:
		if f.Breeding > rutTravelBreeding &&
			weather.Below(obs.Temperature, rutTravelTemperature) &&
			weather.Below(obs.WindSpeed, rutTravelWind) {
			return model.Traveling
		}
		return model.Bedding
	case h >= 22 || h <= 1:
		return model.Feeding
	default:
		return model.Bedding
	}
}
