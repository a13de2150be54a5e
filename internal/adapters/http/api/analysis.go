package api

import (
	"context"
	"net/http"

	"github.com/okian/huntcast/internal/domain/analysis"
	"github.com/okian/huntcast/internal/domain/weather"
)

// AnalysisDependencies aggregates current conditions and forecasts.
type AnalysisDependencies interface {
	Analyze(ctx context.Context, current weather.Observation, forecast []weather.Observation) analysis.Report
	Windows(ctx context.Context, forecast []weather.Observation) []analysis.Window
}

// AnalysisHandler handles environmental analysis requests.
type AnalysisHandler struct {
	deps AnalysisDependencies
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(deps AnalysisDependencies) *AnalysisHandler {
	return &AnalysisHandler{deps: deps}
}

type analysisRequest struct {
	Current  weather.Observation   `json:"current"`
	Forecast []weather.Observation `json:"forecast"`
}

// HandleReport handles POST /analysis requests.
func (h *AnalysisHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.analysis"
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req analysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Analyze(r.Context(), req.Current, req.Forecast))
}

// HandleWindows handles POST /analysis/windows requests.
func (h *AnalysisHandler) HandleWindows(w http.ResponseWriter, r *http.Request) {
	const op = "api.analysis_windows"
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req analysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Windows(r.Context(), req.Forecast))
}
