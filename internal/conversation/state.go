// Package conversation implements the intent-disambiguation state machine:
// per-conversation state, the ambiguity policy, the one-round clarification
// exchange, and the developer command surface.
package conversation

import (
	"github.com/conversational-intent-router/internal/classifier"
)

// Phase is the conversation's position in the disambiguation flow.
type Phase string

const (
	// PhaseInitial is the start state: the next plain message is classified.
	PhaseInitial Phase = "initial"
	// PhaseAwaitingClarification means candidates were presented and the next
	// plain message is treated as the clarification reply.
	PhaseAwaitingClarification Phase = "awaiting_clarification"
	// PhaseResolved is terminal: a routing decision has been committed.
	// Callers reset or replace the state to start a new flow.
	PhaseResolved Phase = "resolved"
)

// AmbiguityReason explains why clarification was requested. Cleared on
// resolution.
type AmbiguityReason string

const (
	ReasonNone          AmbiguityReason = ""
	ReasonNoCandidates  AmbiguityReason = "no_candidates"
	ReasonLowConfidence AmbiguityReason = "low_confidence"
	ReasonCloseScores   AmbiguityReason = "close_scores"
)

// Mode selects which catalog representation classification runs against.
// A configuration toggle, not business logic.
type Mode string

const (
	ModeJSON Mode = "json"
	ModeTOON Mode = "toon"
)

// Valid reports whether m names a known catalog mode.
func (m Mode) Valid() bool {
	return m == ModeJSON || m == ModeTOON
}

// State is the per-conversation record threaded through Advance. It is owned
// by exactly one conversation, mutated only by the transition function, and
// never discarded by the core itself; the caller decides when to reset.
type State struct {
	Phase            Phase                  `json:"phase"`
	LastUserMessage  string                 `json:"last_user_message"`
	CandidateIntents []classifier.Candidate `json:"candidate_intents"`
	SelectedIntentID string                 `json:"selected_intent_id"`
	AmbiguityReason  AmbiguityReason        `json:"ambiguity_reason"`
	Mode             Mode                   `json:"mode"`
}

// NewState creates a fresh conversation state in the initial phase.
func NewState(mode Mode) *State {
	if !mode.Valid() {
		mode = ModeJSON
	}
	return &State{
		Phase: PhaseInitial,
		Mode:  mode,
	}
}
