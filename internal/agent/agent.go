// Package agent hosts the conversational front end of the intent router: it
// owns the disambiguator and the session store, threads state through turns,
// and publishes committed routing decisions for downstream consumers.
package agent

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/conversational-intent-router/internal/cache"
	"github.com/conversational-intent-router/internal/catalog"
	"github.com/conversational-intent-router/internal/classifier"
	"github.com/conversational-intent-router/internal/conversation"
	"github.com/conversational-intent-router/internal/jsonx"
	"github.com/conversational-intent-router/internal/session"
)

// DefaultRouteSubject is the NATS subject routing decisions are published on.
const DefaultRouteSubject = "intent.route.resolved"

// Config holds agent configuration.
type Config struct {
	// NATSAddress enables decision publishing when non-empty.
	NATSAddress string
	// RouteSubject overrides DefaultRouteSubject.
	RouteSubject string
	// DefaultMode is the catalog mode new conversations start in.
	DefaultMode conversation.Mode
	// Disambiguation is the ambiguity policy passed to the state machine.
	Disambiguation conversation.Config
	// EnableResultCache turns on exact-match caching of classification
	// results.
	EnableResultCache bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		RouteSubject:      DefaultRouteSubject,
		DefaultMode:       conversation.ModeJSON,
		Disambiguation:    conversation.DefaultConfig(),
		EnableResultCache: true,
	}
}

// RoutingDecision is the payload published when a conversation resolves.
type RoutingDecision struct {
	ConversationID string    `json:"conversation_id"`
	RouteTo        string    `json:"route_to"`
	Message        string    `json:"message"`
	ResolvedAt     time.Time `json:"resolved_at"`
}

// Stats aggregates turn counters by outcome.
type Stats struct {
	TotalTurns        int64 `json:"total_turns"`
	Resolved          int64 `json:"resolved"`
	Clarifications    int64 `json:"clarifications"`
	Commands          int64 `json:"commands"`
	Errors            int64 `json:"errors"`
	CacheHits         int64 `json:"cache_hits"`
	CacheMisses       int64 `json:"cache_misses"`
	ConversationCount int64 `json:"conversations_created"`
}

// Agent serves many concurrent conversations. Isolation comes from each
// conversation owning its own State in the store; the agent itself holds no
// per-conversation mutable state.
type Agent struct {
	config   Config
	logger   *zap.Logger
	disamb   *conversation.Disambiguator
	store    session.Store
	natsConn *nats.Conn
	results  *cache.Manager[[]classifier.Candidate]

	totalTurns     atomic.Int64
	resolved       atomic.Int64
	clarifications atomic.Int64
	commands       atomic.Int64
	errors         atomic.Int64
	conversations  atomic.Int64
}

// New creates an agent over the built-in catalogs.
func New(cfg Config, store session.Store, logger *zap.Logger) (*Agent, error) {
	return newAgent(cfg, conversation.New(cfg.Disambiguation, logger), store, logger)
}

// NewWithCatalogs creates an agent over caller-supplied catalogs.
func NewWithCatalogs(cfg Config, jsonCat, toonCat catalog.Catalog, store session.Store, logger *zap.Logger) (*Agent, error) {
	disamb := conversation.NewWithCatalogs(cfg.Disambiguation, jsonCat, toonCat, logger)
	return newAgent(cfg, disamb, store, logger)
}

func newAgent(cfg Config, disamb *conversation.Disambiguator, store session.Store, logger *zap.Logger) (*Agent, error) {
	if cfg.RouteSubject == "" {
		cfg.RouteSubject = DefaultRouteSubject
	}
	if !cfg.DefaultMode.Valid() {
		cfg.DefaultMode = conversation.ModeJSON
	}

	a := &Agent{
		config: cfg,
		logger: logger,
		disamb: disamb,
		store:  store,
	}

	if cfg.EnableResultCache {
		results, err := cache.NewManager[[]classifier.Candidate](cache.DefaultConfig(), logger)
		if err != nil {
			return nil, err
		}
		a.results = results
		a.disamb.SetResultCache(results)
	}

	return a, nil
}

// Start connects to NATS when an address is configured. The connection
// retries in the background, so a temporarily unavailable broker does not
// block startup.
func (a *Agent) Start() error {
	if a.config.NATSAddress == "" {
		a.logger.Info("NATS publishing disabled, no address configured")
		return nil
	}

	conn, err := nats.Connect(a.config.NATSAddress,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(10),
	)
	if err != nil {
		return err
	}
	a.natsConn = conn
	a.logger.Info("Connected to NATS", zap.String("address", a.config.NATSAddress))
	return nil
}

// Stop releases the NATS connection and the result cache.
func (a *Agent) Stop() {
	if a.natsConn != nil {
		a.natsConn.Close()
	}
	if a.results != nil {
		a.results.Close()
	}
	a.logger.Info("Agent stopped")
}

// CreateConversation allocates a new conversation in the default mode and
// returns its id.
func (a *Agent) CreateConversation(ctx context.Context) (string, *conversation.State, error) {
	id := uuid.NewString()
	st := conversation.NewState(a.config.DefaultMode)
	if err := a.store.Put(ctx, id, st); err != nil {
		return "", nil, err
	}
	a.conversations.Add(1)
	a.logger.Debug("Conversation created", zap.String("conversation_id", id))
	return id, st, nil
}

// HandleTurn runs one user turn through the state machine and persists the
// mutated state. A resolved conversation receiving a plain message is reset
// to a fresh initial state first, preserving its catalog mode, so hosted
// conversations keep flowing; the core itself stays strict about resolved
// being terminal.
func (a *Agent) HandleTurn(ctx context.Context, id, message string) (conversation.TurnResult, *conversation.State, error) {
	st, err := a.store.Get(ctx, id)
	if err != nil {
		return conversation.TurnResult{}, nil, err
	}

	if st.Phase == conversation.PhaseResolved && !strings.HasPrefix(message, "/") {
		st = conversation.NewState(st.Mode)
	}

	result := a.disamb.Advance(message, st)

	if err := a.store.Put(ctx, id, st); err != nil {
		return conversation.TurnResult{}, nil, err
	}

	a.record(result.Status)
	if result.Status == conversation.StatusResolved {
		a.publishDecision(id, message, result)
	}
	return result, st, nil
}

// GetConversation returns the current state for id.
func (a *Agent) GetConversation(ctx context.Context, id string) (*conversation.State, error) {
	return a.store.Get(ctx, id)
}

// ResetConversation replaces the state for id with a fresh initial state,
// preserving the conversation's catalog mode.
func (a *Agent) ResetConversation(ctx context.Context, id string) error {
	st, err := a.store.Get(ctx, id)
	if err != nil {
		return err
	}
	return a.store.Put(ctx, id, conversation.NewState(st.Mode))
}

// Catalog exposes the active catalog for a mode, for inspection endpoints.
func (a *Agent) Catalog(mode conversation.Mode) catalog.Catalog {
	return a.disamb.Catalog(mode)
}

// Stats returns turn counters.
func (a *Agent) Stats() Stats {
	s := Stats{
		TotalTurns:        a.totalTurns.Load(),
		Resolved:          a.resolved.Load(),
		Clarifications:    a.clarifications.Load(),
		Commands:          a.commands.Load(),
		Errors:            a.errors.Load(),
		ConversationCount: a.conversations.Load(),
	}
	if a.results != nil {
		s.CacheHits, s.CacheMisses = a.results.Stats()
	}
	return s
}

func (a *Agent) record(status conversation.Status) {
	a.totalTurns.Add(1)
	switch status {
	case conversation.StatusResolved:
		a.resolved.Add(1)
	case conversation.StatusNeedClarification:
		a.clarifications.Add(1)
	case conversation.StatusAck, conversation.StatusDeveloperCompare:
		a.commands.Add(1)
	case conversation.StatusError:
		a.errors.Add(1)
	}
}

// publishDecision emits the routing decision to NATS. Publishing is
// best-effort: a broker outage must never fail the user's turn.
func (a *Agent) publishDecision(id, message string, result conversation.TurnResult) {
	if a.natsConn == nil {
		return
	}

	data, err := jsonx.Marshal(RoutingDecision{
		ConversationID: id,
		RouteTo:        result.RouteTo,
		Message:        message,
		ResolvedAt:     time.Now().UTC(),
	})
	if err != nil {
		a.logger.Warn("Failed to encode routing decision", zap.Error(err))
		return
	}

	if err := a.natsConn.Publish(a.config.RouteSubject, data); err != nil {
		a.logger.Warn("Failed to publish routing decision",
			zap.String("subject", a.config.RouteSubject),
			zap.Error(err))
		return
	}
	a.logger.Debug("Routing decision published",
		zap.String("conversation_id", id),
		zap.String("route_to", result.RouteTo))
}
