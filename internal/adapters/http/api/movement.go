package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/huntcast/internal/domain/movement"
	"github.com/okian/huntcast/internal/domain/weather"
)

// dateLayout is the calendar-day format accepted by /movement/daily.
const dateLayout = "2006-01-02"

// MovementDependencies predicts animal movement.
type MovementDependencies interface {
	Predict(ctx context.Context, req movement.Request) (movement.Prediction, error)
	Daily(ctx context.Context, req movement.Request, forecast []weather.Observation) ([]movement.Prediction, error)
}

// MovementHandler handles movement prediction requests.
type MovementHandler struct {
	deps MovementDependencies
}

// NewMovementHandler creates a new movement handler.
func NewMovementHandler(deps MovementDependencies) *MovementHandler {
	return &MovementHandler{deps: deps}
}

type movementRequest struct {
	locationRequest
	Weather weather.Observation `json:"weather"`
}

type dailyRequest struct {
	locationRequest
	Date     string                `json:"date"`
	Weather  weather.Observation   `json:"weather"`
	Forecast []weather.Observation `json:"forecast"`
}

// day parses Date as a calendar day (UTC) or an RFC3339 instant, whose
// location then selects the day.
func (d dailyRequest) day() (time.Time, error) {
	raw := strings.TrimSpace(d.Date)
	if raw == "" {
		return time.Time{}, errors.New("missing date")
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.New("invalid date; must be YYYY-MM-DD or RFC3339")
	}
	return t, nil
}

// HandlePredict handles POST /movement requests.
func (h *MovementHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.movement"
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req movementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	p, err := h.deps.Predict(r.Context(), req.request(req.Weather))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// HandleDaily handles POST /movement/daily requests.
func (h *MovementHandler) HandleDaily(w http.ResponseWriter, r *http.Request) {
	const op = "api.movement_daily"
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req dailyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	day, err := req.day()
	if err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	mreq := req.request(req.Weather)
	mreq.At = day
	preds, err := h.deps.Daily(r.Context(), mreq, req.Forecast)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preds)
}
