package species

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/okian/huntcast/internal/domain/model"
)

// referenceYear resolves calendar positions during validation.
const referenceYear = 2023

// Registry is the read-only lookup table from species to profile.
type Registry struct {
	profiles map[model.Species]*Profile
}

// NewRegistry validates profiles and indexes them by species. Duplicate
// species are rejected.
func NewRegistry(profiles ...Profile) (*Registry, error) {
	r := &Registry{profiles: make(map[model.Species]*Profile, len(profiles))}
	for i := range profiles {
		p := profiles[i]
		if err := p.validate(referenceYear); err != nil {
			return nil, err
		}
		if _, dup := r.profiles[p.Species]; dup {
			return nil, fmt.Errorf("%w: duplicate profile for %s", ErrInvalidProfile, p.Species)
		}
		r.profiles[p.Species] = &p
	}
	return r, nil
}

// MustDefault returns the built-in registry and panics if it fails to
// validate, which would be a programming error.
func MustDefault() *Registry {
	r, err := NewRegistry(DefaultProfiles()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the profile for s. Unknown species yield an error wrapping
// ErrUnknownSpecies, with a suggestion when a close match exists.
func (r *Registry) Lookup(s model.Species) (*Profile, error) {
	if p, ok := r.profiles[s]; ok {
		return p, nil
	}
	if hint, ok := r.Suggest(string(s)); ok {
		return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownSpecies, s, hint)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, s)
}

// Resolve parses a free-form name and looks it up.
func (r *Registry) Resolve(name string) (*Profile, error) {
	s, _ := model.ParseSpecies(name)
	return r.Lookup(s)
}

// List returns profiles in catalogue order.
func (r *Registry) List() []*Profile {
	out := make([]*Profile, 0, len(r.profiles))
	for _, s := range model.AllSpecies() {
		if p, ok := r.profiles[s]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Suggest returns the registered species closest to name by edit distance,
// if any is within a length-dependent limit.
func (r *Registry) Suggest(name string) (model.Species, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}

	type candidate struct {
		species model.Species
		dist    int
	}
	var cands []candidate
	for s := range r.profiles {
		d := levenshtein.ComputeDistance(name, string(s))
		if d > suggestionLimit(len(s)) {
			continue
		}
		cands = append(cands, candidate{species: s, dist: d})
	}
	if len(cands) == 0 {
		return "", false
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].dist == cands[j].dist {
			return cands[i].species < cands[j].species
		}
		return cands[i].dist < cands[j].dist
	})
	return cands[0].species, true
}

func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
