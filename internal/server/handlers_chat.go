package server

import (
	"errors"
	"net/http"

	"github.com/sumeetk/foliox/internal/models"
	"github.com/sumeetk/foliox/internal/services/assistant"
)

// handleChat answers a free-text question via the AI assistant.
//
//	GET  /api/chat  → welcome message
//	POST /api/chat  → {question} → {response}
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// Same greeting the assistant gives for an empty question.
		answer, err := s.app.AssistantService.Ask(r.Context(), "")
		if err != nil {
			s.writeChatError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, models.ChatResponse{Response: answer})

	case http.MethodPost:
		var req models.ChatRequest
		if !DecodeJSON(w, r, &req) {
			return
		}

		answer, err := s.app.AssistantService.Ask(r.Context(), req.Question)
		if err != nil {
			s.writeChatError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, models.ChatResponse{Response: answer})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) writeChatError(w http.ResponseWriter, err error) {
	if errors.Is(err, assistant.ErrUnavailable) {
		WriteErrorWithCode(w, http.StatusServiceUnavailable,
			"AI assistant is not configured", "ASSISTANT_UNAVAILABLE")
		return
	}
	s.logger.Error().Err(err).Msg("Chat request failed")
	WriteError(w, http.StatusBadGateway, "Chat request failed: "+err.Error())
}
