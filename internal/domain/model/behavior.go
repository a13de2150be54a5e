package model

// BehaviorFactors are per-query drives, each in [0,1].
type BehaviorFactors struct {
	Breeding    float64 `json:"breeding_factor"`
	BirthSeason float64 `json:"birth_season_factor"`
	Migration   float64 `json:"migration_factor"`
	Elevation   float64 `json:"elevation_factor"`
	Activity    float64 `json:"activity_factor"`
}

// Bounds is the externally resolved extent of a game management unit.
type Bounds struct {
	North        float64 `json:"north"`
	South        float64 `json:"south"`
	East         float64 `json:"east"`
	West         float64 `json:"west"`
	ElevationMin float64 `json:"elevation_min"`
	ElevationMax float64 `json:"elevation_max"`
}

// CenterElevation is the midpoint of the unit's elevation span.
func (b Bounds) CenterElevation() float64 {
	return (b.ElevationMin + b.ElevationMax) / 2
}
