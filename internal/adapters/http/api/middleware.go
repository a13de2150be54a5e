package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/huntcast/pkg/metrics"
)

// errHandlerPanic is reported to clients when a handler panics.
var errHandlerPanic = errors.New("internal error")

// MetricsMiddleware wraps a handler to record request count, latency and
// error kind per endpoint. A panicking handler answers 500.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if p := recover(); p != nil {
				metrics.RecordErrorByComponent("api", "panic")
				if !rec.wroteHeader {
					writeError(rec, http.StatusInternalServerError, "internal_error", fmt.Errorf("%w: %s", errHandlerPanic, endpoint))
				}
			}

			durationMs := float64(time.Since(start).Microseconds()) / 1000
			code := strconv.Itoa(rec.status)
			metrics.RecordHTTPRequest(endpoint, r.Method, code)
			metrics.RecordHTTPRequestDuration(endpoint, r.Method, code, durationMs)

			if rec.status >= http.StatusBadRequest {
				kind := errorKind(rec.status)
				metrics.RecordErrorByEndpoint(endpoint, r.Method, kind)
				metrics.RecordErrorByComponent("http", kind)
			}
		}()

		next.ServeHTTP(rec, r)
	}
}

// errorKind names a status the way error bodies name it.
func errorKind(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusRequestEntityTooLarge:
		return "too_large"
	case http.StatusTooManyRequests:
		return "backpressure"
	case http.StatusServiceUnavailable:
		return "unavailable"
	}
	if status >= http.StatusInternalServerError {
		return "internal_error"
	}
	return "client_error"
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (rw *statusRecorder) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.status = code
	rw.wroteHeader = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}
