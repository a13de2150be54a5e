package conditions

// stableThreshold is the mean per-step change below which pressure counts
// as stable.
const stableThreshold = 0.02

// TrendKind classifies a pressure series.
type TrendKind string

// Trend kinds.
const (
	Stable  TrendKind = "stable"
	Rising  TrendKind = "rising"
	Falling TrendKind = "falling"
)

// Trend is a pressure classification with its mean step change.
type Trend struct {
	Kind        TrendKind `json:"trend"`
	MeanChange  float64   `json:"mean_change"`
	Implication string    `json:"implications"`
}

// PressureTrend classifies an ordered pressure series by the mean of its
// successive differences. Fewer than two points are stable.
func PressureTrend(series []float64) Trend {
	if len(series) < 2 {
		return Trend{Kind: Stable, Implication: "Stable conditions likely"}
	}

	var total float64
	for i := 1; i < len(series); i++ {
		total += series[i] - series[i-1]
	}
	mean := total / float64(len(series)-1)

	switch {
	case mean > -stableThreshold && mean < stableThreshold:
		return Trend{Kind: Stable, MeanChange: mean, Implication: "Stable conditions, typical animal activity expected"}
	case mean > 0:
		return Trend{Kind: Rising, MeanChange: mean, Implication: "Improving conditions, increased activity likely"}
	default:
		return Trend{Kind: Falling, MeanChange: mean, Implication: "Deteriorating conditions, monitor for weather changes"}
	}
}
