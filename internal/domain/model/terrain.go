package model

import "sort"

// Terrain is a habitat class an animal can prefer.
type Terrain string

// Terrain classes.
const (
	Meadow     Terrain = "meadow"
	ForestEdge Terrain = "forest_edge"
	Forest     Terrain = "forest"
	Alpine     Terrain = "alpine"
	Riparian   Terrain = "riparian"
)

// PreferenceMap maps a terrain class to a non-negative weight. Base tables
// need not sum to one; adjusted maps always do.
type PreferenceMap map[Terrain]float64

// Clone returns an independent copy of m.
func (m PreferenceMap) Clone() PreferenceMap {
	out := make(PreferenceMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Terrains returns the keys of m in name order. Iterating in this order
// keeps floating point sums reproducible.
func (m PreferenceMap) Terrains() []Terrain {
	out := make([]Terrain, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Sum returns the total weight.
func (m PreferenceMap) Sum() float64 {
	var total float64
	for _, k := range m.Terrains() {
		total += m[k]
	}
	return total
}

// TerrainWeight is one entry of an ordered preference list.
type TerrainWeight struct {
	Terrain Terrain `json:"terrain"`
	Weight  float64 `json:"weight"`
}

// Ordered returns the entries sorted by weight descending, terrain name
// ascending on ties.
func (m PreferenceMap) Ordered() []TerrainWeight {
	out := make([]TerrainWeight, 0, len(m))
	for k, v := range m {
		out = append(out, TerrainWeight{Terrain: k, Weight: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight == out[j].Weight {
			return out[i].Terrain < out[j].Terrain
		}
		return out[i].Weight > out[j].Weight
	})
	return out
}
