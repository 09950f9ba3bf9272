// Package session persists conversation state across turns. The core state
// machine is stateless apart from the State value it mutates; a Store gives
// that value a home between turns, keyed by conversation id.
package session

import (
	"context"
	"errors"

	"github.com/conversational-intent-router/internal/conversation"
)

// ErrNotFound is returned when no state exists for a conversation id.
var ErrNotFound = errors.New("conversation not found")

// Store persists conversation state between turns. Implementations must be
// safe for concurrent use across conversations; turns within one
// conversation are strictly sequential by contract.
type Store interface {
	Get(ctx context.Context, id string) (*conversation.State, error)
	Put(ctx context.Context, id string, st *conversation.State) error
	Delete(ctx context.Context, id string) error
}
