package analysis

import "github.com/okian/huntcast/internal/domain/conditions"

// Recommendation texts.
const (
	RecExcellent = "Excellent hunting conditions. Focus on known animal patterns."
	RecGood      = "Good conditions. Pay extra attention to wind direction and scent control."
	RecPoor      = "Challenging conditions. Focus on bedding areas and travel corridors."
	RecWind      = "Strong winds: Focus on sheltered areas and avoid ridge tops."
	RecHeat      = "High temperatures: Hunt early morning or late evening near water sources."
	RecCold      = "Cold temperatures: Focus on south-facing slopes and sunny areas."
	RecRising    = "Rising pressure suggests increasing animal activity. Scout feeding areas."
	RecFalling   = "Falling pressure may indicate incoming weather. Focus on food sources."

	RecPeriodCold = "Focus on sunny, south-facing slopes where animals warm up"
	RecPeriodHot  = "Target shaded areas and water sources"
	RecPeriodWind = "Strong winds - hunt sheltered areas and use terrain for cover"
)

func recommend(cur conditions.Analysis, score float64, trend conditions.Trend) []string {
	var out []string
	switch {
	case score >= 0.8:
		out = append(out, RecExcellent)
	case score >= 0.6:
		out = append(out, RecGood)
	default:
		out = append(out, RecPoor)
	}

	for _, r := range cur.Ratings {
		if r.Score >= 0.6 {
			continue
		}
		switch r.Field {
		case conditions.WindSpeed:
			out = append(out, RecWind)
		case conditions.Temperature:
			if r.Value > 70 {
				out = append(out, RecHeat)
			} else {
				out = append(out, RecCold)
			}
		}
	}

	switch trend.Kind {
	case conditions.Rising:
		out = append(out, RecRising)
	case conditions.Falling:
		out = append(out, RecFalling)
	}
	return out
}

// periodRecommendations gives per-window advice from temperature and wind.
func periodRecommendations(an conditions.Analysis) []string {
	out := []string{}
	if r, ok := an.Get(conditions.Temperature); ok {
		switch {
		case r.Value < 30:
			out = append(out, RecPeriodCold)
		case r.Value > 70:
			out = append(out, RecPeriodHot)
		}
	}
	if r, ok := an.Get(conditions.WindSpeed); ok && r.Value > 15 {
		out = append(out, RecPeriodWind)
	}
	return out
}
