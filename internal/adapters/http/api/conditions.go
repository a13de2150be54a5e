package api

import (
	"context"
	"net/http"

	"github.com/okian/huntcast/internal/domain/conditions"
	"github.com/okian/huntcast/internal/domain/weather"
)

// ConditionsDependencies rates a weather observation.
type ConditionsDependencies interface {
	Conditions(ctx context.Context, obs weather.Observation) conditions.Analysis
}

// ConditionsHandler handles condition rating requests.
type ConditionsHandler struct {
	deps ConditionsDependencies
}

// NewConditionsHandler creates a new conditions handler.
func NewConditionsHandler(deps ConditionsDependencies) *ConditionsHandler {
	return &ConditionsHandler{deps: deps}
}

type conditionsRequest struct {
	Weather weather.Observation `json:"weather"`
}

// HandleRate handles POST /conditions requests.
func (h *ConditionsHandler) HandleRate(w http.ResponseWriter, r *http.Request) {
	const op = "api.conditions"
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req conditionsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Conditions(r.Context(), req.Weather))
}
