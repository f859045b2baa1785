package server

import (
	"net/http"

	"reposcope/internal/gateway/handler"
	"reposcope/internal/gateway/middleware"
	"reposcope/internal/gateway/ui"
)

func NewMux(h *handler.Handler) http.Handler {
	mux := http.NewServeMux()

	// API handlers
	mux.HandleFunc("/api/clone", h.HandleClone)
	mux.HandleFunc("/api/summary", h.HandleSummary)
	mux.HandleFunc("/api/export", h.HandleExport)
	mux.HandleFunc("/api/graph.dot", h.HandleGraphDOT)
	mux.HandleFunc("/api/chat", h.HandleChat)
	mux.HandleFunc("/api/chat/ws", h.HandleChatWS)

	// Embedded frontend
	mux.Handle("/", ui.Handler())

	// Middleware
	return middleware.CORS(mux)
}
