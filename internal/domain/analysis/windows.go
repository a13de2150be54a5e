package analysis

import (
	"sort"
	"time"

	"github.com/okian/huntcast/internal/domain/conditions"
	"github.com/okian/huntcast/internal/domain/weather"
)

// periodWeights weight each field in a period score. Unlisted fields weigh 1.
var periodWeights = map[conditions.Field]float64{
	conditions.Temperature:   1.0,
	conditions.WindSpeed:     1.0,
	conditions.Precipitation: 1.5,
	conditions.Pressure:      0.8,
	conditions.Humidity:      0.5,
	conditions.CloudCover:    1.0,
}

// Window is a forecast period worth hunting.
type Window struct {
	Time            time.Time           `json:"time"`
	Score           float64             `json:"score"`
	Conditions      conditions.Analysis `json:"conditions"`
	Recommendations []string            `json:"recommendations"`
}

// PeriodScore is the weighted mean of the analysis ratings; 0 when nothing
// was scored.
func PeriodScore(an conditions.Analysis) float64 {
	var sum, weights float64
	for _, r := range an.Ratings {
		w, ok := periodWeights[r.Field]
		if !ok {
			w = 1
		}
		sum += r.Score * w
		weights += w
	}
	if weights == 0 {
		return 0
	}
	return sum / weights
}

// OptimalWindows returns the forecast periods scoring above the threshold,
// best first. Ties keep the earlier period first.
func (a *Aggregator) OptimalWindows(forecast []weather.Observation) []Window {
	out := []Window{}
	for _, obs := range forecast {
		an := a.scorer.Score(obs)
		score := PeriodScore(an)
		if score <= a.threshold {
			continue
		}
		out = append(out, Window{
			Time:            obs.Timestamp,
			Score:           score,
			Conditions:      an,
			Recommendations: periodRecommendations(an),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Time.Before(out[j].Time)
	})
	return out
}

// Threshold is the minimum period score for an optimal window.
func (a *Aggregator) Threshold() float64 { return a.threshold }
