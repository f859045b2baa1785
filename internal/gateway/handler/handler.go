// Package handler exposes repository analysis and chat over a JSON HTTP API.
package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"reposcope/internal/llmclient"
	"reposcope/internal/session"
)

// Handler holds the shared dependencies of every endpoint.
type Handler struct {
	store   *session.Store
	llm     llmclient.Client
	budget  int
	workDir string
}

func New(store *session.Store, llm llmclient.Client, promptBudget int, workDir string) *Handler {
	return &Handler{store: store, llm: llm, budget: promptBudget, workDir: workDir}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("handler: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// sessionFromQuery resolves ?session_id=, writing the error response itself.
func (h *Handler) sessionFromQuery(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "session_id is required")
		return nil, false
	}
	s, err := h.store.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown session")
		return nil, false
	}
	return s, true
}

// analyzedSession additionally requires that a clone + analysis has happened.
func (h *Handler) analyzedSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := h.sessionFromQuery(w, r)
	if !ok {
		return nil, false
	}
	if s.Graph() == nil {
		writeError(w, http.StatusConflict, "no repository analyzed yet; call /api/clone first")
		return nil, false
	}
	return s, true
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}
