// Package terrain re-weights a species' base terrain preferences under the
// current weather and behavior, then renormalizes them to sum to one.
//
// Rules are pure functions folded in a fixed order. The order is part of
// the contract: multiplicative rules commute over the reals but not under
// floating point, so changing it changes results in the last few bits.
package terrain

import (
	"github.com/okian/huntcast/internal/domain/model"
	"github.com/okian/huntcast/internal/domain/weather"
)

// Thresholds that trigger the built-in rules.
const (
	hotTemperature     = 80.0
	strongWind         = 15.0
	breedingThreshold  = 0.5
	migrationThreshold = 0.5
)

// Rule transforms a preference map. Apply must not modify its input.
type Rule struct {
	Name  string
	Apply func(obs weather.Observation, f model.BehaviorFactors, m model.PreferenceMap) model.PreferenceMap
}

// scaling builds a rule that multiplies the named terrains when cond holds.
// Terrains absent from the map are left absent.
func scaling(name string, cond func(weather.Observation, model.BehaviorFactors) bool, factors map[model.Terrain]float64) Rule {
	return Rule{
		Name: name,
		Apply: func(obs weather.Observation, f model.BehaviorFactors, m model.PreferenceMap) model.PreferenceMap {
			out := m.Clone()
			if !cond(obs, f) {
				return out
			}
			for t, k := range factors {
				if w, ok := out[t]; ok {
					out[t] = w * k
				}
			}
			return out
		},
	}
}

// DefaultRules returns the built-in rules in application order: weather
// rules first, then behavior rules.
func DefaultRules() []Rule {
	return []Rule{
		scaling("hot",
			func(o weather.Observation, _ model.BehaviorFactors) bool { return weather.Above(o.Temperature, hotTemperature) },
			map[model.Terrain]float64{model.Forest: 1.2, model.Meadow: 0.8}),
		scaling("windy",
			func(o weather.Observation, _ model.BehaviorFactors) bool { return weather.Above(o.WindSpeed, strongWind) },
			map[model.Terrain]float64{model.Forest: 1.3, model.ForestEdge: 1.1, model.Meadow: 0.7}),
		scaling("rain",
			func(o weather.Observation, _ model.BehaviorFactors) bool { return o.PrecipitationIs(weather.PrecipRain) },
			map[model.Terrain]float64{model.Forest: 1.2, model.Meadow: 0.8}),
		scaling("breeding",
			func(_ weather.Observation, f model.BehaviorFactors) bool { return f.Breeding > breedingThreshold },
			map[model.Terrain]float64{model.Meadow: 1.2, model.ForestEdge: 1.1}),
		scaling("migration",
			func(_ weather.Observation, f model.BehaviorFactors) bool { return f.Migration > migrationThreshold },
			map[model.Terrain]float64{model.ForestEdge: 1.2, model.Meadow: 1.1}),
	}
}

// Adjuster applies an ordered rule list.
type Adjuster struct {
	rules []Rule
}

// NewAdjuster returns an Adjuster over rules. No rules means DefaultRules.
func NewAdjuster(rules ...Rule) *Adjuster {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Adjuster{rules: rules}
}

// RuleNames returns the rule names in application order.
func (a *Adjuster) RuleNames() []string {
	out := make([]string, len(a.rules))
	for i, r := range a.rules {
		out[i] = r.Name
	}
	return out
}

// Adjust folds every rule over base and renormalizes. base is not modified.
func (a *Adjuster) Adjust(base model.PreferenceMap, obs weather.Observation, f model.BehaviorFactors) model.PreferenceMap {
	m := base.Clone()
	for _, r := range a.rules {
		m = r.Apply(obs, f, m)
	}
	return Normalize(m)
}

// Normalize scales m to sum to one. Negative weights are floored at zero.
// When nothing positive remains every terrain gets an equal share.
func Normalize(m model.PreferenceMap) model.PreferenceMap {
	out := make(model.PreferenceMap, len(m))
	if len(m) == 0 {
		return out
	}
	var total float64
	for _, t := range m.Terrains() {
		w := m[t]
		if w < 0 {
			w = 0
		}
		out[t] = w
		total += w
	}
	if total <= 0 {
		share := 1 / float64(len(out))
		for t := range out {
			out[t] = share
		}
		return out
	}
	for t, w := range out {
		out[t] = w / total
	}
	return out
}
