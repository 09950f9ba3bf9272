package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/conversational-intent-router/internal/session"
)

// wsError is sent to the client when a turn cannot be processed; the
// connection stays open.
type wsError struct {
	Error string `json:"error"`
}

// handleWebSocketChat upgrades to a WebSocket and exchanges turns in real
// time: each text frame is a user message, each reply frame a TurnResponse.
// A conversation_id query parameter resumes an existing conversation;
// without one a fresh conversation is created and announced in the first
// frame.
func (s *Server) handleWebSocketChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()

	id := r.URL.Query().Get("conversation_id")
	if id == "" {
		newID, _, err := s.agent.CreateConversation(ctx)
		if err != nil {
			s.logger.Error("Failed to create conversation for WebSocket", zap.Error(err))
			conn.WriteJSON(wsError{Error: "failed to create conversation"})
			return
		}
		id = newID
	}

	if err := conn.WriteJSON(map[string]string{"conversation_id": id}); err != nil {
		return
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("WebSocket closed unexpectedly", zap.Error(err))
			}
			return
		}
		if msgType != websocket.TextMessage || len(data) == 0 {
			continue
		}

		result, st, err := s.agent.HandleTurn(ctx, id, string(data))
		if errors.Is(err, session.ErrNotFound) {
			conn.WriteJSON(wsError{Error: "conversation not found"})
			return
		}
		if err != nil {
			s.logger.Error("WebSocket turn failed", zap.String("conversation_id", id), zap.Error(err))
			conn.WriteJSON(wsError{Error: "turn failed"})
			continue
		}

		if err := conn.WriteJSON(TurnResponse{ConversationID: id, Phase: st.Phase, Result: result}); err != nil {
			return
		}
	}
}
