package api

import (
	"context"
	"net/http"

	"github.com/okian/huntcast/internal/domain/model"
	"github.com/okian/huntcast/internal/domain/movement"
	"github.com/okian/huntcast/internal/domain/weather"
)

// BehaviorDependencies computes behavior factors.
type BehaviorDependencies interface {
	Behavior(ctx context.Context, req movement.Request) (model.BehaviorFactors, error)
}

// BehaviorHandler handles behavior factor requests.
type BehaviorHandler struct {
	deps BehaviorDependencies
}

// NewBehaviorHandler creates a new behavior handler.
func NewBehaviorHandler(deps BehaviorDependencies) *BehaviorHandler {
	return &BehaviorHandler{deps: deps}
}

// HandleFactors handles POST /behavior requests.
func (h *BehaviorHandler) HandleFactors(w http.ResponseWriter, r *http.Request) {
	const op = "api.behavior"
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req locationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	f, err := h.deps.Behavior(r.Context(), req.request(weather.Observation{}))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}
