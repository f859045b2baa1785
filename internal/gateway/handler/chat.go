package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"reposcope/internal/assistant"
	"reposcope/internal/session"
)

type chatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Reply        string   `json:"reply"`
	EditsApplied []string `json:"edits_applied"`
}

// HandleChat runs one chat turn: build the prompt from the session's graph
// and checkout, call the model, apply any returned file edits.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	var in chatRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	s, err := h.store.Get(strings.TrimSpace(in.SessionID))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	if s.Graph() == nil {
		writeError(w, http.StatusConflict, "no repository analyzed yet; call /api/clone first")
		return
	}

	reply, applied, err := h.chatTurn(r.Context(), s, message)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, assistant.ErrUnparseableEdits) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply, EditsApplied: applied})
}

// chatTurn is shared by the HTTP and websocket chat paths. History is only
// recorded for turns that fully succeed, so a failed turn can be retried
// without polluting the context.
func (h *Handler) chatTurn(ctx context.Context, s *session.Session, message string) (string, []string, error) {
	a := assistant.New(h.llm, h.budget)
	reply, err := a.Chat(ctx, assistant.Request{
		Graph:    s.Graph(),
		Summary:  s.Summary(),
		History:  s.History(),
		Message:  message,
		ReadFile: s.ReadFile,
	})
	if err != nil {
		return "", nil, err
	}

	applied, err := assistant.ApplyEdits(s.FS(), reply.Edits)
	s.Invalidate(applied...)
	if err != nil {
		log.Printf("handler: apply edits: %v", err)
		return "", nil, err
	}

	s.Append("user", message)
	s.Append("assistant", reply.Message)
	if applied == nil {
		applied = []string{}
	}
	return reply.Message, applied, nil
}
