package movement

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/okian/huntcast/internal/domain/behavior"
	"github.com/okian/huntcast/internal/domain/model"
	"github.com/okian/huntcast/internal/domain/species"
	"github.com/okian/huntcast/internal/domain/terrain"
	"github.com/okian/huntcast/internal/domain/weather"
)

// Request describes one movement prediction. Elevation wins over Bounds when
// both are set.
type Request struct {
	Species   model.Species
	At        time.Time
	Elevation *float64
	Bounds    *model.Bounds
	Weather   weather.Observation
}

// ResolveElevation returns the elevation used for behavior factors.
func (r Request) ResolveElevation() (float64, error) {
	if r.Elevation != nil {
		return *r.Elevation, nil
	}
	if r.Bounds != nil {
		return r.Bounds.CenterElevation(), nil
	}
	return 0, ErrMissingElevation
}

// Prediction is the movement outlook for one species at one instant.
type Prediction struct {
	Time               time.Time             `json:"time"`
	Species            model.Species         `json:"species"`
	PrimaryActivity    model.Activity        `json:"primary_activity"`
	Factors            model.BehaviorFactors `json:"behavior_factors"`
	TerrainPreferences model.PreferenceMap   `json:"terrain_preferences"`
	Movement           Vector                `json:"movement_vectors"`
	Confidence         float64               `json:"confidence_score"`
}

// Predictor composes behavior factors, terrain adjustment and movement vectors.
type Predictor struct {
	registry *species.Registry
	behavior *behavior.Model
	adjuster *terrain.Adjuster
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithAdjuster replaces the default terrain rule chain.
func WithAdjuster(a *terrain.Adjuster) Option {
	return func(p *Predictor) {
		if a != nil {
			p.adjuster = a
		}
	}
}

// NewPredictor returns a predictor backed by registry.
func NewPredictor(registry *species.Registry, opts ...Option) *Predictor {
	p := &Predictor{
		registry: registry,
		behavior: behavior.NewModel(registry),
		adjuster: terrain.NewAdjuster(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Predict runs the full pipeline for one request.
func (p *Predictor) Predict(req Request) (Prediction, error) {
	elev, err := req.ResolveElevation()
	if err != nil {
		return Prediction{}, err
	}
	profile, err := p.registry.Lookup(req.Species)
	if err != nil {
		return Prediction{}, err
	}
	factors := behavior.FactorsFor(profile, req.At, elev)
	activity := SelectActivity(req.At, factors, req.Weather)
	base, ok := profile.TerrainFor(activity)
	if !ok {
		return Prediction{}, fmt.Errorf("%w: %s/%s", ErrNoTerrainTable, req.Species, activity)
	}
	prefs := p.adjuster.Adjust(base, req.Weather, factors)

	return Prediction{
		Time:               req.At,
		Species:            req.Species,
		PrimaryActivity:    activity,
		Factors:            factors,
		TerrainPreferences: prefs,
		Movement:           Calculate(activity, prefs, req.Weather),
		Confidence:         Confidence(factors, req.Weather),
	}, nil
}

// Daily predicts every hour of the calendar day containing date. Weather for
// each hour is interpolated from forecast.
func (p *Predictor) Daily(req Request, forecast []weather.Observation) ([]Prediction, error) {
	y, m, d := req.At.Date()
	out := make([]Prediction, 0, 24)
	for h := 0; h < 24; h++ {
		hr := req
		hr.At = time.Date(y, m, d, h, 0, 0, 0, req.At.Location())
		if len(forecast) > 0 {
			hr.Weather = weather.Interpolate(forecast, hr.At)
		}
		pred, err := p.Predict(hr)
		if err != nil {
			return nil, err
		}
		out = append(out, pred)
	}
	return out, nil
}

// Confidence blends behavior certainty with a weather penalty:
// mean(breeding, activity, 1-migration), ×0.8 above 20 mph wind, ×0.9 in
// rain or snow, clamped to [0,1].
func Confidence(f model.BehaviorFactors, obs weather.Observation) float64 {
	base, err := stats.Mean(stats.Float64Data{f.Breeding, f.Activity, 1 - f.Migration})
	if err != nil {
		return 0
	}
	mod := 1.0
	if weather.Above(obs.WindSpeed, 20) {
		mod *= 0.8
	}
	if obs.Precipitation.Wet() {
		mod *= 0.9
	}
	c := base * mod
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}
