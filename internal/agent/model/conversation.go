package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// TripRepository persists per-session conversation state: the append-only
// message log and the TripState record. The store only needs key-value
// durability keyed by session id; the Redis implementation lives in
// internal/agent/repo.
type TripRepository interface {
	// AddMessage appends a message to the session's message log.
	AddMessage(ctx context.Context, sessionID string, message *schema.Message) error

	// LoadHistory retrieves the full message log for a session.
	LoadHistory(ctx context.Context, sessionID string) (*ConversationHistory, error)

	// LoadState retrieves the TripState for a session, or nil when the
	// session has no state yet.
	LoadState(ctx context.Context, sessionID string) (*TripState, error)

	// SaveState persists the TripState for its session.
	SaveState(ctx context.Context, state *TripState) error

	// ClearSession removes the message log and state for a session.
	ClearSession(ctx context.Context, sessionID string) error

	// MessageCount returns the number of messages in the session's log.
	MessageCount(ctx context.Context, sessionID string) (int, error)
}

// ConversationHistory represents loaded conversation data with metadata.
type ConversationHistory struct {
	SessionID string
	Messages  []*schema.Message
}

// TurnInput is one user message addressed to a session.
type TurnInput struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// TurnResult is everything produced while processing one turn: the final
// assistant-visible answer, the ordered message delta for the turn (the
// audit trail), and the accumulated LLM cost.
type TurnResult struct {
	Response string            `json:"response"`
	Trace    []*schema.Message `json:"trace"`
	CostUSD  float64           `json:"cost_usd"`
}
