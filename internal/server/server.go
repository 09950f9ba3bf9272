// Package server exposes the intent router over HTTP and WebSocket.
package server

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/conversational-intent-router/internal/agent"
	"github.com/conversational-intent-router/internal/conversation"
	"github.com/conversational-intent-router/internal/jsonx"
	"github.com/conversational-intent-router/internal/session"
)

// Server provides HTTP and WebSocket endpoints for the agent.
type Server struct {
	agent    *agent.Agent
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewServer creates an HTTP server over the agent.
func NewServer(a *agent.Agent, logger *zap.Logger) *Server {
	return &Server{
		agent:  a,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// SetupRoutes registers the API routes.
func (s *Server) SetupRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/conversations", s.handleCreateConversation).Methods("POST")
	api.HandleFunc("/conversations/{id}/messages", s.handleMessage).Methods("POST")
	api.HandleFunc("/conversations/{id}", s.handleGetConversation).Methods("GET")
	api.HandleFunc("/conversations/{id}", s.handleResetConversation).Methods("DELETE")
	api.HandleFunc("/catalog", s.handleCatalog).Methods("GET")
	api.HandleFunc("/stats", s.handleStats).Methods("GET")

	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/ws/chat", s.handleWebSocketChat)
}

// MessageRequest is the body for posting a user turn.
type MessageRequest struct {
	Message string `json:"message"`
}

// TurnResponse pairs a turn result with the conversation it advanced.
type TurnResponse struct {
	ConversationID string                  `json:"conversation_id"`
	Phase          conversation.Phase      `json:"phase"`
	Result         conversation.TurnResult `json:"result"`
}

// ConversationResponse describes a conversation's current state.
type ConversationResponse struct {
	ConversationID string              `json:"conversation_id"`
	State          *conversation.State `json:"state"`
}

func (s *Server) handleCreateConversation(w http.ResponseWriter, r *http.Request) {
	id, st, err := s.agent.CreateConversation(r.Context())
	if err != nil {
		s.logger.Error("Failed to create conversation", zap.Error(err))
		http.Error(w, "Failed to create conversation", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusCreated, ConversationResponse{ConversationID: id, State: st})
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req MessageRequest
	if err := jsonx.Decode(r.Body, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Message == "" {
		http.Error(w, "Message is required", http.StatusBadRequest)
		return
	}

	result, st, err := s.agent.HandleTurn(r.Context(), id, req.Message)
	if errors.Is(err, session.ErrNotFound) {
		http.Error(w, "Conversation not found", http.StatusNotFound)
		return
	}
	if err != nil {
		s.logger.Error("Turn failed", zap.String("conversation_id", id), zap.Error(err))
		http.Error(w, "Turn failed", http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, TurnResponse{ConversationID: id, Phase: st.Phase, Result: result})
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	st, err := s.agent.GetConversation(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		http.Error(w, "Conversation not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load conversation", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, ConversationResponse{ConversationID: id, State: st})
}

func (s *Server) handleResetConversation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	err := s.agent.ResetConversation(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		http.Error(w, "Conversation not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to reset conversation", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	mode := conversation.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = conversation.ModeJSON
	}
	if !mode.Valid() {
		http.Error(w, "Invalid mode. Use 'json' or 'toon'.", http.StatusBadRequest)
		return
	}
	s.writeJSON(w, http.StatusOK, s.agent.Catalog(mode))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.agent.Stats())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := jsonx.Marshal(v)
	if err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
