package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"reposcope/internal/analyzer"
	"reposcope/internal/gitrepo"
	"reposcope/internal/session"
	"reposcope/internal/summary"
)

type cloneRequest struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id,omitempty"`
}

type cloneResponse struct {
	SessionID string `json:"session_id"`
	Summary   string `json:"summary"`
	FileCount int    `json:"file_count"`
	EdgeCount int    `json:"edge_count"`
}

// HandleClone clones a repository, analyzes it and binds the result to a
// session. Omitting session_id starts a new session; passing one re-clones
// into the existing session, keeping its chat history.
func (h *Handler) HandleClone(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var in cloneRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	url := strings.TrimSpace(in.URL)
	if url == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	var s *session.Session
	if id := strings.TrimSpace(in.SessionID); id != "" {
		existing, err := h.store.Get(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "unknown session")
			return
		}
		s = existing
	} else {
		s = h.store.Create()
	}

	dest := filepath.Join(h.workDir, s.ID)
	if err := gitrepo.Clone(r.Context(), url, dest); err != nil {
		log.Printf("handler: clone: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if err := s.AttachCheckout(url, dest); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	g, err := analyzer.Build(dest)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	text := summary.Render(g)
	s.SetGraph(g, text)

	writeJSON(w, http.StatusOK, cloneResponse{
		SessionID: s.ID,
		Summary:   text,
		FileCount: len(g.Nodes),
		EdgeCount: len(g.Edges),
	})
}
