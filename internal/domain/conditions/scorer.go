package conditions

import (
	"time"

	"github.com/okian/huntcast/internal/domain/weather"
)

// Grade is the qualitative band of a rated field.
type Grade string

// Grades.
const (
	Ideal      Grade = "ideal"
	Acceptable Grade = "acceptable"
	Poor       Grade = "poor"
)

// Rating is the graded result for one field.
type Rating struct {
	Field       Field   `json:"field"`
	Value       float64 `json:"value"`
	Grade       Grade   `json:"rating"`
	Score       float64 `json:"score"`
	Implication string  `json:"implication,omitempty"`
}

// Analysis is the set of ratings for one observation.
type Analysis struct {
	Ratings []Rating `json:"ratings"`

	// WindDirection and its implication are informational and unscored.
	WindDirection            weather.Cardinal `json:"wind_direction,omitempty"`
	WindDirectionImplication string           `json:"wind_direction_implication,omitempty"`

	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Get returns the rating for f if it was scored.
func (a Analysis) Get(f Field) (Rating, bool) {
	for _, r := range a.Ratings {
		if r.Field == f {
			return r, true
		}
	}
	return Rating{}, false
}

// Scores returns the scores in field order.
func (a Analysis) Scores() []float64 {
	out := make([]float64, len(a.Ratings))
	for i, r := range a.Ratings {
		out[i] = r.Score
	}
	return out
}

// Completeness is the fraction of scorable fields that were present.
func (a Analysis) Completeness() float64 {
	return float64(len(a.Ratings)) / float64(len(Fields()))
}

// Scorer grades observations against a range table.
type Scorer struct {
	table Table
}

// NewScorer returns a Scorer over table. A nil table means DefaultTable.
func NewScorer(table Table) *Scorer {
	if table == nil {
		table = DefaultTable()
	}
	return &Scorer{table: table}
}

// Table returns the scorer's range table.
func (s *Scorer) Table() Table { return s.table }

// Score rates every present field of obs. Absent fields are skipped, and an
// observation with nothing scorable yields an empty, non-nil Ratings.
func (s *Scorer) Score(obs weather.Observation) Analysis {
	a := Analysis{Ratings: []Rating{}}
	for _, f := range Fields() {
		if f == Precipitation {
			if obs.Precipitation != nil {
				a.Ratings = append(a.Ratings, RatePrecipitation(*obs.Precipitation))
			}
			continue
		}
		v := valueOf(obs, f)
		if v == nil {
			continue
		}
		r, ok := s.table[f]
		if !ok {
			continue
		}
		a.Ratings = append(a.Ratings, RateValue(f, *v, r))
	}
	if obs.WindDirection != "" {
		a.WindDirection = obs.WindDirection
		a.WindDirectionImplication = WindDirectionImplication(obs.WindDirection)
	}
	if !obs.Timestamp.IsZero() {
		ts := obs.Timestamp
		a.Timestamp = &ts
	}
	return a
}

// RateValue grades v against r. Inside the ideal band scores 1. Inside the
// acceptable band the score falls linearly from 1 at the ideal edge to 0.5
// at the acceptable edge, on whichever side v lies. Outside scores 0.
func RateValue(f Field, v float64, r Range) Rating {
	rating := Rating{Field: f, Value: v}
	switch {
	case v >= r.IdealMin && v <= r.IdealMax:
		rating.Grade, rating.Score = Ideal, 1
	case v >= r.AcceptMin && v <= r.AcceptMax:
		rating.Grade = Acceptable
		if v < r.IdealMin {
			rating.Score = 0.5 + 0.5*ratio(v-r.AcceptMin, r.IdealMin-r.AcceptMin)
		} else {
			rating.Score = 0.5 + 0.5*ratio(r.AcceptMax-v, r.AcceptMax-r.IdealMax)
		}
	default:
		rating.Grade, rating.Score = Poor, 0
	}
	return rating
}

// RatePrecipitation applies the fixed precipitation table.
func RatePrecipitation(p weather.Precipitation) Rating {
	r := Rating{Field: Precipitation, Value: p.Amount}
	switch {
	case p.Type == weather.PrecipNone || p.Type == "":
		r.Grade, r.Score = Ideal, 1.0
		r.Implication = "Clear conditions, normal animal activity expected"
	case p.Type == weather.PrecipSnow && p.Amount < 0.5:
		r.Grade, r.Score = Ideal, 0.9
		r.Implication = "Light snow excellent for tracking"
	case p.Type == weather.PrecipRain && p.Amount < 0.1:
		r.Grade, r.Score = Acceptable, 0.7
		r.Implication = "Light rain may mask human scent"
	default:
		r.Grade, r.Score = Poor, 0.3
		r.Implication = "Heavy precipitation likely to reduce animal activity"
	}
	return r
}

// WindDirectionImplication describes what a wind from d usually means,
// keyed on its leading compass letter.
func WindDirectionImplication(d weather.Cardinal) string {
	if d == "" {
		return "Monitor wind direction for hunting approach"
	}
	switch d[0] {
	case 'N':
		return "Cold front possible, watch for weather changes"
	case 'S':
		return "Warmer temperatures likely, may affect animal activity"
	case 'E':
		return "Storm system possible, monitor conditions"
	case 'W':
		return "Weather typically stabilizing"
	default:
		return "Monitor wind direction for hunting approach"
	}
}

func valueOf(obs weather.Observation, f Field) *float64 {
	switch f {
	case Temperature:
		return obs.Temperature
	case WindSpeed:
		return obs.WindSpeed
	case Humidity:
		return obs.Humidity
	case Pressure:
		return obs.Pressure
	case CloudCover:
		return obs.CloudCover
	default:
		return nil
	}
}

// ratio divides guarding a zero-width band, which only occurs when the
// value sits on the shared edge and therefore already scores as ideal.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 1
	}
	return num / den
}
