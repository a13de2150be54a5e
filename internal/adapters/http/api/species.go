package api

import (
	"context"
	"net/http"

	"github.com/okian/huntcast/internal/domain/species"
)

// SpeciesDependencies lists the catalogue.
type SpeciesDependencies interface {
	Species(ctx context.Context) []*species.Profile
}

// SpeciesHandler handles catalogue requests.
type SpeciesHandler struct {
	deps SpeciesDependencies
}

// NewSpeciesHandler creates a new species handler.
func NewSpeciesHandler(deps SpeciesDependencies) *SpeciesHandler {
	return &SpeciesHandler{deps: deps}
}

// HandleList handles GET /species requests.
func (h *SpeciesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Species(r.Context()))
}
