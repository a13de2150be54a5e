// Package site serves the embedded landing page.
package site

import (
	"context"
	"errors"
	"net/http"
)

// ErrServe is reported when the embedded page cannot be read.
var ErrServe = errors.New("landing page serve failed")

const indexFile = "index.html"

// Register attaches the landing page to mux. Only the exact root path is
// served; other unmatched paths stay 404.
func Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.Handle("GET /{$}", NewRootHandler())
}

// RootHandler serves the landing page.
type RootHandler struct {
	page []byte
	err  error
}

// NewRootHandler loads the embedded page once.
func NewRootHandler() *RootHandler {
	page, err := staticFS.ReadFile("static/" + indexFile)
	if err != nil {
		err = errors.Join(ErrServe, err)
	}
	return &RootHandler{page: page, err: err}
}

// HandleRoot writes the landing page.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	if h.err != nil {
		http.Error(w, h.err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.page)
}

// ServeHTTP implements http.Handler.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.HandleRoot(w, r)
}
