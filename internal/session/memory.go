package session

import (
	"context"
	"sync"

	"github.com/conversational-intent-router/internal/conversation"
)

// MemoryStore keeps conversation state in process memory. Suitable for a
// single instance; state is lost on restart.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*conversation.State
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*conversation.State)}
}

// Get returns the state for id, or ErrNotFound.
func (s *MemoryStore) Get(_ context.Context, id string) (*conversation.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.states[id]
	if !ok {
		return nil, ErrNotFound
	}
	return st, nil
}

// Put stores the state for id.
func (s *MemoryStore) Put(_ context.Context, id string, st *conversation.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = st
	return nil
}

// Delete removes the state for id. Deleting an unknown id is not an error.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
	return nil
}

// Len returns the number of stored conversations.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.states)
}
