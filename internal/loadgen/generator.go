package loadgen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/okian/huntcast/internal/domain/weather"
	"github.com/okian/huntcast/pkg/logger"
)

// Constants for random number generation.
const randomFloatDivisor = 1000000

// Plausible hunting season weather ranges.
const (
	temperatureMin   = 5.0
	temperatureRange = 70.0
	windMax          = 30.0
	pressureMin      = 29.4
	pressureRange    = 1.2
	pressureStepMax  = 0.08
	precipMax        = 0.4
	wetChanceDivisor = 4
	snowBelow        = 32.0
	forecastStep     = 3 * time.Hour
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// getRandomInt returns a random int in [0, n).
func getRandomInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateSubmissions creates config.NumJobs submissions. Roughly
// config.DuplicateRate of them replay the request id and body of an earlier
// submission so the service's idempotency path is exercised.
func generateSubmissions(ctx context.Context, config *Config, stats *Stats) ([]Submission, error) {
	logger.Get().Info(ctx, "generating job submissions",
		logger.Int("numJobs", config.NumJobs),
		logger.Float64("duplicateRate", config.DuplicateRate))

	start := time.Now().UTC().Truncate(time.Hour)
	subs := make([]Submission, 0, config.NumJobs)
	for i := 0; i < config.NumJobs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		if i > 0 && getRandomFloat() < config.DuplicateRate {
			subs = append(subs, subs[getRandomInt(len(subs))])
			continue
		}
		subs = append(subs, generateSingleSubmission(start, config.ForecastLen))
	}

	stats.JobsGenerated = len(subs)
	logger.Get().Info(ctx, "generated submissions successfully", logger.Int("count", len(subs)))
	return subs, nil
}

// generateSingleSubmission builds a submission with a fresh request id and a
// forecast that drifts from the current observation.
func generateSingleSubmission(start time.Time, forecastLen int) Submission {
	current := randomObservation(start)
	forecast := make([]weather.Observation, forecastLen)
	prev := current
	for i := range forecast {
		next := randomObservation(start.Add(time.Duration(i+1) * forecastStep))
		if prev.Pressure != nil {
			p := *prev.Pressure + (getRandomFloat()*2-1)*pressureStepMax
			next.Pressure = &p
		}
		forecast[i] = next
		prev = next
	}
	return Submission{
		RequestID: uuid.NewString(),
		Current:   current,
		Forecast:  forecast,
	}
}

// randomObservation returns a fully populated observation at ts.
func randomObservation(ts time.Time) weather.Observation {
	temp := temperatureMin + getRandomFloat()*temperatureRange
	wind := getRandomFloat() * windMax
	pressure := pressureMin + getRandomFloat()*pressureRange
	humidity := getRandomFloat() * 100
	cloud := getRandomFloat() * 100

	precip := &weather.Precipitation{Type: weather.PrecipNone}
	if getRandomInt(wetChanceDivisor) == 0 {
		precip.Amount = getRandomFloat() * precipMax
		precip.Type = weather.PrecipRain
		if temp < snowBelow {
			precip.Type = weather.PrecipSnow
		}
	}

	compass := weather.Compass()
	return weather.Observation{
		Temperature:   &temp,
		WindSpeed:     &wind,
		WindDirection: compass[getRandomInt(len(compass))],
		Precipitation: precip,
		Pressure:      &pressure,
		Humidity:      &humidity,
		CloudCover:    &cloud,
		Timestamp:     ts,
	}
}
