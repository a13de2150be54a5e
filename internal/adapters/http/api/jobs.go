package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/huntcast/internal/domain/job"
	"github.com/okian/huntcast/internal/domain/weather"
)

// JobDependencies submits and reads asynchronous analysis jobs.
type JobDependencies interface {
	SubmitJob(ctx context.Context, requestID string, current weather.Observation, forecast []weather.Observation) (job.Receipt, error)
	Job(ctx context.Context, id string) (job.Job, error)
}

// JobsHandler handles job requests.
type JobsHandler struct {
	deps JobDependencies
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(deps JobDependencies) *JobsHandler {
	return &JobsHandler{deps: deps}
}

type jobRequest struct {
	RequestID string                `json:"request_id"`
	Current   weather.Observation   `json:"current"`
	Forecast  []weather.Observation `json:"forecast"`
}

// HandleSubmit handles POST /jobs requests. Duplicates answer 200 with the
// original job id, new jobs 202.
func (h *JobsHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit_job"
	if !allow(w, r, http.MethodPost) {
		return
	}
	var req jobRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailure(w, WrapKind(op, ErrBadRequest, err))
		return
	}

	receipt, err := h.deps.SubmitJob(r.Context(), strings.TrimSpace(req.RequestID), req.Current, req.Forecast)
	if err != nil {
		writeFailure(w, err)
		return
	}
	status := http.StatusAccepted
	if receipt.Duplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, receipt)
}

// HandleGet handles GET /jobs/{id} requests.
func (h *JobsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_job"
	if !allow(w, r, http.MethodGet) {
		return
	}
	// Extract path parameter after /jobs/
	id := strings.TrimPrefix(r.URL.Path, "/jobs/")
	if id == "" || strings.Contains(id, "/") {
		writeFailure(w, NewKind(op, ErrBadRequest))
		return
	}
	j, err := h.deps.Job(r.Context(), id)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, j)
}
