package handler

import (
	"net/http"

	"reposcope/internal/summary"
)

// HandleSummary returns the rendered text summary of the session's repository.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	s, ok := h.analyzedSession(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.Summary()))
}

// HandleExport returns the machine-readable analysis document.
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	s, ok := h.analyzedSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, summary.Export(s.Graph()))
}

// HandleGraphDOT returns the dependency graph in Graphviz DOT form. Graphs
// above the renderable node threshold come back 204 with no body.
func (h *Handler) HandleGraphDOT(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	s, ok := h.analyzedSession(w, r)
	if !ok {
		return
	}
	dot := summary.DOT(s.Graph())
	if dot == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(dot))
}
