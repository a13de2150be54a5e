// Package model contains domain value types passed between layers.
package model

import "strings"

// Species identifies a modelled animal. The set is closed; profiles for each
// value live in the species registry.
type Species string

// Known species.
const (
	Elk   Species = "elk"
	Deer  Species = "deer"
	Moose Species = "moose"
)

// AllSpecies lists every modelled species in catalogue order.
func AllSpecies() []Species {
	return []Species{Elk, Deer, Moose}
}

// ParseSpecies normalizes name and reports whether it names a modelled species.
func ParseSpecies(name string) (Species, bool) {
	s := Species(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range AllSpecies() {
		if s == known {
			return s, true
		}
	}
	return s, false
}

func (s Species) String() string { return string(s) }

// Activity is the primary behavior an animal is engaged in at a given hour.
type Activity string

// Activities used by the movement model.
const (
	Feeding   Activity = "feeding"
	Bedding   Activity = "bedding"
	Traveling Activity = "traveling"
)

// AllActivities lists every activity in table order.
func AllActivities() []Activity {
	return []Activity{Feeding, Bedding, Traveling}
}

func (a Activity) String() string { return string(a) }
