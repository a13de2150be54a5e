package species

import (
	"time"

	"github.com/okian/huntcast/internal/domain/calendar"
	"github.com/okian/huntcast/internal/domain/diel"
	"github.com/okian/huntcast/internal/domain/model"
)

func md(m time.Month, d int) calendar.MonthDay { return calendar.MonthDay{Month: m, Day: d} }

// DefaultProfiles returns the built-in elk, deer and moose profiles.
// Elevations are meters.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Species:         model.Elk,
			Rut:             calendar.Interval{Start: md(time.September, 1), End: md(time.October, 15)},
			Birth:           calendar.Interval{Start: md(time.May, 15), End: md(time.June, 30)},
			SpringMigration: md(time.April, 1),
			FallMigration:   md(time.November, 1),
			Elevation: map[calendar.Season]ElevationBand{
				calendar.Summer: {Min: 2000, Max: 3500},
				calendar.Winter: {Min: 1500, Max: 2500},
			},
			ActivePeriods: []diel.Period{diel.Dawn, diel.Dusk},
			Terrain: map[model.Activity]model.PreferenceMap{
				model.Feeding:   {model.Meadow: 0.8, model.ForestEdge: 0.7, model.Forest: 0.4, model.Alpine: 0.3},
				model.Bedding:   {model.Forest: 0.9, model.ForestEdge: 0.6, model.Meadow: 0.2, model.Alpine: 0.3},
				model.Traveling: {model.ForestEdge: 0.7, model.Meadow: 0.6, model.Forest: 0.5, model.Alpine: 0.4},
			},
		},
		{
			Species:         model.Deer,
			Rut:             calendar.Interval{Start: md(time.October, 15), End: md(time.December, 15)},
			Birth:           calendar.Interval{Start: md(time.May, 15), End: md(time.June, 30)},
			SpringMigration: md(time.March, 15),
			FallMigration:   md(time.October, 15),
			Elevation: map[calendar.Season]ElevationBand{
				calendar.Summer: {Min: 1500, Max: 3000},
				calendar.Winter: {Min: 1000, Max: 2000},
			},
			ActivePeriods: []diel.Period{diel.Dawn, diel.Dusk, diel.Night},
			Terrain: map[model.Activity]model.PreferenceMap{
				model.Feeding:   {model.ForestEdge: 0.8, model.Meadow: 0.7, model.Forest: 0.5, model.Alpine: 0.2},
				model.Bedding:   {model.Forest: 0.9, model.ForestEdge: 0.7, model.Meadow: 0.2, model.Alpine: 0.1},
				model.Traveling: {model.ForestEdge: 0.8, model.Forest: 0.6, model.Meadow: 0.5, model.Alpine: 0.3},
			},
		},
		{
			Species:         model.Moose,
			Rut:             calendar.Interval{Start: md(time.September, 15), End: md(time.October, 31)},
			Birth:           calendar.Interval{Start: md(time.May, 1), End: md(time.June, 15)},
			SpringMigration: md(time.April, 15),
			FallMigration:   md(time.October, 31),
			Elevation: map[calendar.Season]ElevationBand{
				calendar.Summer: {Min: 2000, Max: 3000},
				calendar.Winter: {Min: 1500, Max: 2500},
			},
			ActivePeriods: []diel.Period{diel.Dawn, diel.Dusk, diel.Day},
			Terrain: map[model.Activity]model.PreferenceMap{
				model.Feeding:   {model.Riparian: 0.9, model.ForestEdge: 0.7, model.Forest: 0.6, model.Meadow: 0.4},
				model.Bedding:   {model.Forest: 0.8, model.Riparian: 0.7, model.ForestEdge: 0.6, model.Meadow: 0.3},
				model.Traveling: {model.Forest: 0.7, model.Riparian: 0.7, model.ForestEdge: 0.6, model.Meadow: 0.4},
			},
		},
	}
}
