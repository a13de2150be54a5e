// Package analysis rolls condition ratings for the current observation and a
// forecast into one hunting report.
package analysis

import (
	"github.com/montanaflynn/stats"

	"github.com/okian/huntcast/internal/domain/conditions"
	"github.com/okian/huntcast/internal/domain/weather"
)

// Defaults for the aggregation horizon.
const (
	DefaultForecastPeriods = 24
	DefaultPressureWindow  = 12
	DefaultThreshold       = 0.7
)

// TrendDirection says whether the forecast beats current conditions.
type TrendDirection string

// Trend directions.
const (
	Improving     TrendDirection = "improving"
	Deteriorating TrendDirection = "deteriorating"
)

// Scores summarizes current conditions against the forecast.
type Scores struct {
	CurrentScore  float64        `json:"current_score"`
	ForecastTrend TrendDirection `json:"forecast_trend"`
	Confidence    float64        `json:"confidence"`
}

// Report is the full environmental analysis.
type Report struct {
	Current         conditions.Analysis   `json:"current_conditions"`
	Forecast        []conditions.Analysis `json:"forecast_analysis"`
	Scores          Scores                `json:"hunting_scores"`
	PressureTrend   conditions.Trend      `json:"pressure_trend"`
	Recommendations []string              `json:"recommendations"`
}

// Aggregator produces reports and optimal windows.
type Aggregator struct {
	scorer          *conditions.Scorer
	forecastPeriods int
	pressureWindow  int
	threshold       float64
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithScorer sets the condition scorer.
func WithScorer(s *conditions.Scorer) Option {
	return func(a *Aggregator) {
		if s != nil {
			a.scorer = s
		}
	}
}

// WithForecastPeriods caps how many forecast observations are scored.
func WithForecastPeriods(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.forecastPeriods = n
		}
	}
}

// WithPressureWindow caps how many forecast pressures feed the trend.
func WithPressureWindow(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.pressureWindow = n
		}
	}
}

// WithThreshold sets the minimum period score for an optimal window.
func WithThreshold(t float64) Option {
	return func(a *Aggregator) {
		if t >= 0 && t <= 1 {
			a.threshold = t
		}
	}
}

// New returns an Aggregator with defaults overridden by opts.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		scorer:          conditions.NewScorer(nil),
		forecastPeriods: DefaultForecastPeriods,
		pressureWindow:  DefaultPressureWindow,
		threshold:       DefaultThreshold,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze scores current and the leading forecast periods and derives the
// trend, confidence, pressure trend and recommendations.
func (a *Aggregator) Analyze(current weather.Observation, forecast []weather.Observation) Report {
	cur := a.scorer.Score(current)
	horizon := a.horizon(forecast)

	periods := make([]conditions.Analysis, len(horizon))
	var means []float64
	for i, obs := range horizon {
		periods[i] = a.scorer.Score(obs)
		if m, ok := meanScore(periods[i]); ok {
			means = append(means, m)
		}
	}

	currentScore, _ := meanScore(cur)
	scores := Scores{
		CurrentScore:  currentScore,
		ForecastTrend: Deteriorating,
		Confidence:    confidence(cur, means),
	}
	if m, err := stats.Mean(means); err == nil && m > currentScore {
		scores.ForecastTrend = Improving
	}

	trend := conditions.PressureTrend(a.pressures(forecast))
	return Report{
		Current:         cur,
		Forecast:        periods,
		Scores:          scores,
		PressureTrend:   trend,
		Recommendations: recommend(cur, currentScore, trend),
	}
}

// horizon returns the scored prefix of forecast.
func (a *Aggregator) horizon(forecast []weather.Observation) []weather.Observation {
	if len(forecast) > a.forecastPeriods {
		return forecast[:a.forecastPeriods]
	}
	return forecast
}

// pressures collects up to pressureWindow observed pressures in order.
func (a *Aggregator) pressures(forecast []weather.Observation) []float64 {
	out := make([]float64, 0, a.pressureWindow)
	for _, obs := range forecast {
		if len(out) == a.pressureWindow {
			break
		}
		if obs.Pressure != nil {
			out = append(out, *obs.Pressure)
		}
	}
	return out
}

// meanScore is the unweighted mean rating score; false when nothing was scored.
func meanScore(an conditions.Analysis) (float64, bool) {
	m, err := stats.Mean(an.Scores())
	if err != nil {
		return 0, false
	}
	return m, true
}

// confidence averages data completeness with forecast consistency, clamped
// to [0,1]. Consistency is 1 minus the population standard deviation of the
// unweighted per-period mean rating scores; periods with nothing scored are
// left out, and fewer than two scored periods count as fully consistent.
// The weighted PeriodScore does not enter into it.
func confidence(cur conditions.Analysis, means []float64) float64 {
	consistency := 1.0
	if len(means) >= 2 {
		sd, err := stats.StandardDeviationPopulation(means)
		if err == nil {
			consistency = 1 - sd
		}
	}
	return clamp01((cur.Completeness() + consistency) / 2)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
