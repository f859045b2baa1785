package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"reposcope/internal/assistant"
)

const (
	chatWSWriteWait = 10 * time.Second
	chatWSPongWait  = 60 * time.Second
	chatWSPingEvery = (chatWSPongWait * 9) / 10
)

var chatWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type chatWSInbound struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

type chatWSOutbound struct {
	Type         string   `json:"type"`
	Reply        string   `json:"reply,omitempty"`
	EditsApplied []string `json:"editsApplied,omitempty"`
	Code         string   `json:"code,omitempty"`
	Message      string   `json:"message,omitempty"`
}

// HandleChatWS serves a persistent chat connection for one session. Each
// inbound "chat" frame runs a full turn and the reply streams back as a
// single frame; pings keep idle connections alive while the model runs.
func (h *Handler) HandleChatWS(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessionFromQuery(w, r)
	if !ok {
		return
	}

	conn, err := chatWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(chatWSPongWait)); err != nil {
		log.Printf("chat ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(chatWSPongWait))
	})

	writeCh := make(chan chatWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(chatWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(chatWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	pushChatWS(writeCh, chatWSOutbound{Type: "ready"})

	for {
		var in chatWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		switch strings.ToLower(strings.TrimSpace(in.Type)) {
		case "ping":
			pushChatWS(writeCh, chatWSOutbound{Type: "pong"})
		case "chat":
			message := strings.TrimSpace(in.Message)
			if message == "" {
				pushChatWS(writeCh, chatWSOutbound{
					Type: "error", Code: "invalid_argument", Message: "message is required",
				})
				continue
			}
			if s.Graph() == nil {
				pushChatWS(writeCh, chatWSOutbound{
					Type: "error", Code: "failed_precondition", Message: "no repository analyzed yet",
				})
				continue
			}
			reply, applied, turnErr := h.chatTurn(ctx, s, message)
			if turnErr != nil {
				code := "internal"
				if errors.Is(turnErr, assistant.ErrUnparseableEdits) {
					code = "unparseable_reply"
				}
				pushChatWS(writeCh, chatWSOutbound{
					Type: "error", Code: code, Message: turnErr.Error(),
				})
				continue
			}
			pushChatWS(writeCh, chatWSOutbound{
				Type: "reply", Reply: reply, EditsApplied: applied,
			})
		default:
			pushChatWS(writeCh, chatWSOutbound{
				Type: "error", Code: "invalid_argument", Message: "unsupported type",
			})
		}
	}
}

// pushChatWS drops the oldest queued frame rather than blocking the reader.
func pushChatWS(writeCh chan chatWSOutbound, out chatWSOutbound) {
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
