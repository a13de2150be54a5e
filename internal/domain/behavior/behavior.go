// Package behavior combines seasonal, diel and elevation signals into a
// per-species behavior factor vector.
package behavior

import (
	"time"

	"github.com/okian/huntcast/internal/domain/calendar"
	"github.com/okian/huntcast/internal/domain/diel"
	"github.com/okian/huntcast/internal/domain/model"
	"github.com/okian/huntcast/internal/domain/species"
)

// Model computes behavior factors from an injected species registry.
type Model struct {
	registry *species.Registry
}

// NewModel returns a Model reading profiles from registry.
func NewModel(registry *species.Registry) *Model {
	return &Model{registry: registry}
}

// Factors returns the behavior factors of sp at the given time and elevation.
// Unknown species return an error wrapping species.ErrUnknownSpecies.
func (m *Model) Factors(sp model.Species, at time.Time, elevation float64) (model.BehaviorFactors, error) {
	profile, err := m.registry.Lookup(sp)
	if err != nil {
		return model.BehaviorFactors{}, err
	}
	return FactorsFor(profile, at, elevation), nil
}

// FactorsFor evaluates a resolved profile.
func FactorsFor(p *species.Profile, at time.Time, elevation float64) model.BehaviorFactors {
	year := at.Year()

	spring := calendar.Depth(at, calendar.MonthWindow(year, p.SpringMigration))
	fall := calendar.Depth(at, calendar.MonthWindow(year, p.FallMigration))
	migration := spring
	if fall > migration {
		migration = fall
	}

	band := p.Elevation[calendar.SeasonOf(at)]

	return model.BehaviorFactors{
		Breeding:    calendar.Depth(at, p.Rut),
		BirthSeason: calendar.Depth(at, p.Birth),
		Migration:   migration,
		Elevation:   band.Factor(elevation),
		Activity:    diel.ActivityWeights(at).Max(p.ActivePeriods),
	}
}
