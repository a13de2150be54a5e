// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/huntcast/internal/adapters/repository"
	service "github.com/okian/huntcast/internal/app"
	"github.com/okian/huntcast/internal/domain/model"
	"github.com/okian/huntcast/internal/domain/movement"
	"github.com/okian/huntcast/internal/domain/species"
	"github.com/okian/huntcast/internal/domain/weather"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SpeciesDependencies
	BehaviorDependencies
	ConditionsDependencies
	MovementDependencies
	AnalysisDependencies
	JobDependencies
	StatsProvider
}

// Server wires HTTP routes for the engine API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	speciesHandler    *SpeciesHandler
	behaviorHandler   *BehaviorHandler
	conditionsHandler *ConditionsHandler
	movementHandler   *MovementHandler
	analysisHandler   *AnalysisHandler
	jobsHandler       *JobsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(deps),
		speciesHandler:    NewSpeciesHandler(deps),
		behaviorHandler:   NewBehaviorHandler(deps),
		conditionsHandler: NewConditionsHandler(deps),
		movementHandler:   NewMovementHandler(deps),
		analysisHandler:   NewAnalysisHandler(deps),
		jobsHandler:       NewJobsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleMetrics, "metrics"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/species", MetricsMiddleware(s.speciesHandler.HandleList, "species"))
	mux.HandleFunc("/behavior", MetricsMiddleware(s.behaviorHandler.HandleFactors, "behavior"))
	mux.HandleFunc("/conditions", MetricsMiddleware(s.conditionsHandler.HandleRate, "conditions"))
	mux.HandleFunc("/movement", MetricsMiddleware(s.movementHandler.HandlePredict, "movement"))
	mux.HandleFunc("/movement/daily", MetricsMiddleware(s.movementHandler.HandleDaily, "movement_daily"))
	mux.HandleFunc("/analysis", MetricsMiddleware(s.analysisHandler.HandleReport, "analysis"))
	mux.HandleFunc("/analysis/windows", MetricsMiddleware(s.analysisHandler.HandleWindows, "analysis_windows"))
	mux.HandleFunc("/jobs", MetricsMiddleware(s.jobsHandler.HandleSubmit, "jobs"))
	mux.HandleFunc("/jobs/", MetricsMiddleware(s.jobsHandler.HandleGet, "jobs_get"))
}

// locationRequest is the shared shape of species queries.
type locationRequest struct {
	Species   string        `json:"species"`
	At        *time.Time    `json:"at,omitempty"`
	Elevation *float64      `json:"elevation,omitempty"`
	GMU       *model.Bounds `json:"gmu,omitempty"`
}

func (l locationRequest) validate() error {
	if strings.TrimSpace(l.Species) == "" {
		return errors.New("missing species")
	}
	if l.GMU != nil && l.GMU.ElevationMin > l.GMU.ElevationMax {
		return errors.New("gmu elevation_min exceeds elevation_max")
	}
	return nil
}

// request converts l into a movement request. A missing time stays zero and
// is filled by the service clock.
func (l locationRequest) request(obs weather.Observation) movement.Request {
	req := movement.Request{
		Species:   model.Species(l.Species),
		Elevation: l.Elevation,
		Bounds:    l.GMU,
		Weather:   obs,
	}
	if l.At != nil {
		req.At = *l.At
	}
	return req
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeJSON reads a single JSON document from r's body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	if dec.More() {
		return errors.New("trailing data after json body")
	}
	return nil
}

// allow writes 405 and reports false when r does not use method.
func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", ErrMethodNotAllowed)
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps upstream errors to HTTP status codes.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classify(err)
	writeError(w, status, code, err)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, movement.ErrMissingElevation):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, species.ErrUnknownSpecies), errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrBackpressure):
		return http.StatusTooManyRequests, "backpressure"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
