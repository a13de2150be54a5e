// Package species holds the immutable per-species behavior profiles.
//
// Profiles are built once at startup into a Registry and shared read-only
// by every computation. Nothing in this package mutates a profile after
// construction, so concurrent reads need no locking.
package species

import (
	"fmt"

	"github.com/okian/huntcast/internal/domain/calendar"
	"github.com/okian/huntcast/internal/domain/diel"
	"github.com/okian/huntcast/internal/domain/model"
)

// ElevationBand is a preferred elevation span in meters.
type ElevationBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Factor maps elevation onto [0,1] across the band. A band with no width
// returns 1 at or above Min and 0 below it.
func (b ElevationBand) Factor(elevation float64) float64 {
	if b.Max == b.Min {
		if elevation >= b.Min {
			return 1
		}
		return 0
	}
	return clamp01((elevation - b.Min) / (b.Max - b.Min))
}

// Profile describes one species' seasonal calendar, diel habits and habitat.
type Profile struct {
	Species         model.Species                          `json:"species"`
	Rut             calendar.Interval                      `json:"rut"`
	Birth           calendar.Interval                      `json:"birth"`
	SpringMigration calendar.MonthDay                      `json:"spring_migration"`
	FallMigration   calendar.MonthDay                      `json:"fall_migration"`
	Elevation       map[calendar.Season]ElevationBand      `json:"elevation"`
	ActivePeriods   []diel.Period                          `json:"active_periods"`
	Terrain         map[model.Activity]model.PreferenceMap `json:"terrain"`
}

// TerrainFor returns a copy of the base terrain table for activity.
func (p *Profile) TerrainFor(activity model.Activity) (model.PreferenceMap, bool) {
	m, ok := p.Terrain[activity]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// validate checks the invariants the calculators rely on. referenceYear is
// a non-leap year used to resolve calendar positions.
func (p *Profile) validate(referenceYear int) error {
	if _, ok := model.ParseSpecies(string(p.Species)); !ok {
		return fmt.Errorf("%w: %q is not a modelled species", ErrInvalidProfile, p.Species)
	}
	if p.Rut.Degenerate(referenceYear) {
		return fmt.Errorf("%w: %s rut interval has zero length", ErrInvalidProfile, p.Species)
	}
	if p.Birth.Degenerate(referenceYear) {
		return fmt.Errorf("%w: %s birth interval has zero length", ErrInvalidProfile, p.Species)
	}
	for _, season := range []calendar.Season{calendar.Summer, calendar.Winter} {
		band, ok := p.Elevation[season]
		if !ok {
			return fmt.Errorf("%w: %s has no %s elevation band", ErrInvalidProfile, p.Species, season)
		}
		if band.Max < band.Min {
			return fmt.Errorf("%w: %s %s elevation band is inverted", ErrInvalidProfile, p.Species, season)
		}
	}
	if len(p.ActivePeriods) == 0 {
		return fmt.Errorf("%w: %s has no active periods", ErrInvalidProfile, p.Species)
	}
	for _, activity := range model.AllActivities() {
		table, ok := p.Terrain[activity]
		if !ok || len(table) == 0 {
			return fmt.Errorf("%w: %s has no %s terrain table", ErrInvalidProfile, p.Species, activity)
		}
		for terrain, w := range table {
			if w < 0 || w > 1 {
				return fmt.Errorf("%w: %s %s weight for %s out of [0,1]", ErrInvalidProfile, p.Species, activity, terrain)
			}
		}
	}
	return nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
