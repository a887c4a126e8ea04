package repo

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/AngelitoMA11/DataProject-3/internal/agent/model"
)

// MemoryTripRepository is an in-process TripRepository for tests and
// keyless local runs. Sessions never expire.
type MemoryTripRepository struct {
	mu       sync.RWMutex
	messages map[string][]*schema.Message
	states   map[string][]byte
}

func NewMemoryTripRepository() *MemoryTripRepository {
	return &MemoryTripRepository{
		messages: make(map[string][]*schema.Message),
		states:   make(map[string][]byte),
	}
}

func (r *MemoryTripRepository) AddMessage(_ context.Context, sessionID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[sessionID] = append(r.messages[sessionID], message)
	return nil
}

func (r *MemoryTripRepository) LoadHistory(_ context.Context, sessionID string) (*model.ConversationHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	msgs := make([]*schema.Message, len(r.messages[sessionID]))
	copy(msgs, r.messages[sessionID])
	return &model.ConversationHistory{SessionID: sessionID, Messages: msgs}, nil
}

func (r *MemoryTripRepository) LoadState(_ context.Context, sessionID string) (*model.TripState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	raw, ok := r.states[sessionID]
	if !ok {
		return nil, nil
	}
	var state model.TripState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *MemoryTripRepository) SaveState(_ context.Context, state *model.TripState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[state.SessionID] = b
	return nil
}

func (r *MemoryTripRepository) ClearSession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, sessionID)
	delete(r.states, sessionID)
	return nil
}

func (r *MemoryTripRepository) MessageCount(_ context.Context, sessionID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages[sessionID]), nil
}

var _ model.TripRepository = (*MemoryTripRepository)(nil)
