package service

import (
	"context"
	"errors"
	"time"

	"github.com/okian/huntcast/internal/domain/analysis"
	"github.com/okian/huntcast/internal/domain/conditions"
	"github.com/okian/huntcast/internal/domain/model"
	"github.com/okian/huntcast/internal/domain/movement"
	"github.com/okian/huntcast/internal/domain/species"
	"github.com/okian/huntcast/internal/domain/weather"
	"github.com/okian/huntcast/pkg/logger"
	"github.com/okian/huntcast/pkg/metrics"
)

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.clock.Now() }

// Species returns the catalogue in enum order.
func (s *Service) Species(_ context.Context) []*species.Profile {
	return s.registry.List()
}

// Behavior returns the behavior factors for req. req.Weather is ignored and
// a zero req.At means now.
func (s *Service) Behavior(ctx context.Context, req movement.Request) (model.BehaviorFactors, error) {
	defer s.track("behavior")()

	req, err := s.resolve(ctx, req)
	if err != nil {
		return model.BehaviorFactors{}, err
	}
	elev, err := req.ResolveElevation()
	if err != nil {
		return model.BehaviorFactors{}, err
	}
	f, err := s.behavior.Factors(req.Species, req.At, elev)
	if err != nil {
		return model.BehaviorFactors{}, err
	}
	metrics.RecordAnalysis("behavior")
	return f, nil
}

// Conditions rates a single observation.
func (s *Service) Conditions(_ context.Context, obs weather.Observation) conditions.Analysis {
	defer s.track("conditions")()
	metrics.RecordAnalysis("conditions")
	return s.scorer.Score(obs)
}

// Predict returns the movement prediction for req. A zero req.At means now.
func (s *Service) Predict(ctx context.Context, req movement.Request) (movement.Prediction, error) {
	defer s.track("movement")()

	req, err := s.resolve(ctx, req)
	if err != nil {
		return movement.Prediction{}, err
	}
	p, err := s.predictor.Predict(req)
	if err != nil {
		return movement.Prediction{}, err
	}
	metrics.RecordPrediction(string(p.Species), string(p.PrimaryActivity), p.Confidence)
	return p, nil
}

// Daily predicts every hour of req.At's calendar day. Weather is
// interpolated from forecast; without one, req.Weather applies to every hour.
func (s *Service) Daily(ctx context.Context, req movement.Request, forecast []weather.Observation) ([]movement.Prediction, error) {
	defer s.track("movement_daily")()

	req, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}
	preds, err := s.predictor.Daily(req, forecast)
	if err != nil {
		return nil, err
	}
	for _, p := range preds {
		metrics.RecordPrediction(string(p.Species), string(p.PrimaryActivity), p.Confidence)
	}
	return preds, nil
}

// Analyze builds the environmental report for current and forecast.
func (s *Service) Analyze(_ context.Context, current weather.Observation, forecast []weather.Observation) analysis.Report {
	defer s.track("analysis")()
	metrics.RecordAnalysis("report")
	return s.aggregator.Analyze(current, forecast)
}

// Windows returns the forecast periods worth hunting, best first.
func (s *Service) Windows(_ context.Context, forecast []weather.Observation) []analysis.Window {
	defer s.track("windows")()
	metrics.RecordAnalysis("windows")
	return s.aggregator.OptimalWindows(forecast)
}

// resolve normalizes the species name, checks it against the registry and
// defaults the time to now.
func (s *Service) resolve(ctx context.Context, req movement.Request) (movement.Request, error) {
	req.Species, _ = model.ParseSpecies(string(req.Species))
	if _, err := s.registry.Lookup(req.Species); err != nil {
		if errors.Is(err, species.ErrUnknownSpecies) {
			metrics.RecordUnknownSpecies()
			s.logger.Debug(ctx, "unknown species requested", logger.String("species", string(req.Species)))
		}
		return movement.Request{}, err
	}
	if req.At.IsZero() {
		req.At = s.clock.Now()
	}
	return req, nil
}

// track records the latency of operation when the returned func runs.
func (s *Service) track(operation string) func() {
	start := s.clock.Now()
	return func() {
		metrics.RecordComputationLatency(operation, float64(s.clock.Since(start).Microseconds())/1000)
	}
}
