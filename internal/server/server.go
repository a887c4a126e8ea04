// Package server exposes the trip-planning assistant over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
	errx "github.com/AngelitoMA11/DataProject-3/internal/core/error"
	logx "github.com/AngelitoMA11/DataProject-3/pkg/logger"
)

// Conversation is the surface the HTTP layer needs from the agent.
type Conversation interface {
	ProcessMessage(ctx context.Context, sessionID, userText string) (*model.TurnResult, error)
}

// SessionStore is the subset of the repository the HTTP layer uses directly.
type SessionStore interface {
	ClearSession(ctx context.Context, sessionID string) error
}

type Server struct {
	conv  Conversation
	store SessionStore
}

func New(conv Conversation, store SessionStore) *Server {
	return &Server{conv: conv, store: store}
}

// Handler builds the HTTP routing table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Route("/v1/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Post("/{sessionID}/messages", s.postMessage)
		r.Delete("/{sessionID}", s.deleteSession)
	})
	return r
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, createSessionResponse{SessionID: uuid.NewString()})
}

type postMessageRequest struct {
	Message string `json:"message"`
}

type postMessageResponse struct {
	Response string       `json:"response"`
	Trace    []traceEntry `json:"trace,omitempty"`
	CostUSD  float64      `json:"cost_usd"`
}

type traceEntry struct {
	Role      string `json:"role"`
	Content   string `json:"content,omitempty"`
	ToolCalls int    `json:"tool_calls,omitempty"`
}

func (s *Server) postMessage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session id")
		return
	}

	var body postMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text := strings.TrimSpace(body.Message)
	if text == "" {
		writeError(w, http.StatusBadRequest, "message must not be empty")
		return
	}

	result, err := s.conv.ProcessMessage(r.Context(), sessionID, text)
	if err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("turn processing failed")
		writeError(w, statusForError(err), "failed to process message")
		return
	}

	resp := postMessageResponse{
		Response: result.Response,
		CostUSD:  result.CostUSD,
	}
	for _, msg := range result.Trace {
		resp.Trace = append(resp.Trace, traceEntry{
			Role:      string(msg.Role),
			Content:   msg.Content,
			ToolCalls: len(msg.ToolCalls),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "missing session id")
		return
	}
	if err := s.store.ClearSession(r.Context(), sessionID); err != nil {
		logx.Error().Err(err).Str("session_id", sessionID).Msg("session delete failed")
		writeError(w, statusForError(err), "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// statusForError maps the error taxonomy onto HTTP statuses. Most recoverable
// kinds never reach here because the router converts them into assistant
// replies; this covers persistence and genuinely unexpected failures.
func statusForError(err error) int {
	switch errx.KindOf(err) {
	case errx.MissingParameter:
		return http.StatusBadRequest
	case errx.ModelTimeout:
		return http.StatusGatewayTimeout
	case errx.ModelUnavailable, errx.SearchFailed, errx.StoreFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("failed to encode response")
	}
}
