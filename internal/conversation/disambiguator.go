package conversation

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/conversational-intent-router/internal/cache"
	"github.com/conversational-intent-router/internal/catalog"
	"github.com/conversational-intent-router/internal/classifier"
	"github.com/conversational-intent-router/internal/scoring"
)

// User-facing reply templates.
const (
	msgRephrase = "I didn't understand that. Could you please rephrase?"
	msgClarify  = "I'm not sure what you meant. Can you clarify your intent?"
)

// Config holds the tunable ambiguity policy.
type Config struct {
	// ConfidenceMin is the minimum top-candidate confidence for an
	// unambiguous resolution.
	ConfidenceMin float64
	// ConfidenceMargin is the gap below which the top two candidates are
	// considered indistinguishable.
	ConfidenceMargin float64
	// MaxCandidates bounds how many candidates are stored and offered.
	MaxCandidates int
	// Profile is the weighting profile for the live classification path.
	Profile scoring.Profile
}

// DefaultConfig returns the reference thresholds.
func DefaultConfig() Config {
	return Config{
		ConfidenceMin:    0.30,
		ConfidenceMargin: 0.15,
		MaxCandidates:    3,
		Profile:          scoring.Primary,
	}
}

// Disambiguator runs the disambiguation flow over a pair of catalog
// representations. It holds no per-conversation state; all of that lives in
// the State value the caller threads through Advance, so one Disambiguator
// safely serves many conversations.
type Disambiguator struct {
	config   Config
	catalogs map[Mode]catalog.Catalog
	results  *cache.Manager[[]classifier.Candidate]
	logger   *zap.Logger
}

// New creates a Disambiguator over the built-in catalogs.
func New(cfg Config, logger *zap.Logger) *Disambiguator {
	toonCat, warnings := catalog.ParseTOON(catalog.BuiltinTOON)
	d := NewWithCatalogs(cfg, catalog.BuiltinJSON, toonCat, logger)
	d.logCatalogWarnings(warnings)
	return d
}

// NewWithCatalogs creates a Disambiguator over caller-supplied catalogs.
// Invalid trigger patterns are logged here once rather than silently skipped
// on every scoring pass.
func NewWithCatalogs(cfg Config, jsonCat, toonCat catalog.Catalog, logger *zap.Logger) *Disambiguator {
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = DefaultConfig().MaxCandidates
	}
	if cfg.Profile.Name == "" {
		cfg.Profile = scoring.Primary
	}
	d := &Disambiguator{
		config: cfg,
		catalogs: map[Mode]catalog.Catalog{
			ModeJSON: jsonCat,
			ModeTOON: toonCat,
		},
		logger: logger,
	}
	for mode, cat := range d.catalogs {
		for _, def := range cat {
			for _, bad := range scoring.InvalidTriggers(def.Triggers) {
				logger.Warn("Invalid trigger pattern will be skipped during scoring",
					zap.String("mode", string(mode)),
					zap.String("intent", def.ID),
					zap.String("pattern", bad))
			}
		}
	}
	return d
}

// SetResultCache enables exact-match caching of classification results.
func (d *Disambiguator) SetResultCache(c *cache.Manager[[]classifier.Candidate]) {
	d.results = c
}

// Catalog returns the catalog for a mode, defaulting to the JSON form.
func (d *Disambiguator) Catalog(mode Mode) catalog.Catalog {
	if cat, ok := d.catalogs[mode]; ok {
		return cat
	}
	return d.catalogs[ModeJSON]
}

// Advance processes one user turn against the conversation state and returns
// a tagged result. The state is mutated in place. Inputs starting with "/"
// are developer commands handled before the state machine; they update no
// conversational fields. Every other input records last_user_message before
// branching, regardless of phase.
func (d *Disambiguator) Advance(message string, st *State) TurnResult {
	if strings.HasPrefix(message, "/") {
		return d.handleCommand(message, st)
	}

	st.LastUserMessage = message

	switch st.Phase {
	case PhaseInitial:
		return d.advanceInitial(message, st)
	case PhaseAwaitingClarification:
		return d.advanceClarification(message, st)
	case PhaseResolved:
		// Strict external-reset policy: a resolved conversation does not
		// accept further plain messages.
		return TurnResult{
			Status:        StatusError,
			MessageToUser: "Conversation already resolved. Reset the conversation to start over.",
		}
	default:
		return TurnResult{
			Status:        StatusError,
			MessageToUser: "Unknown state phase.",
		}
	}
}

func (d *Disambiguator) advanceInitial(message string, st *State) TurnResult {
	candidates := d.classify(message, st.Mode, d.config.Profile)

	top := candidates
	if len(top) > d.config.MaxCandidates {
		top = top[:d.config.MaxCandidates]
	}
	st.CandidateIntents = top

	if len(top) == 0 {
		st.Phase = PhaseAwaitingClarification
		st.AmbiguityReason = ReasonNoCandidates
		return TurnResult{
			Status:        StatusNeedClarification,
			MessageToUser: msgRephrase,
			Options:       []Option{},
		}
	}

	best := top[0]
	reason := ReasonNone
	if best.Confidence < d.config.ConfidenceMin {
		reason = ReasonLowConfidence
	} else if len(top) > 1 && math.Abs(best.Confidence-top[1].Confidence) < d.config.ConfidenceMargin {
		reason = ReasonCloseScores
	}

	if reason == ReasonNone {
		st.Phase = PhaseResolved
		st.SelectedIntentID = best.ID
		st.AmbiguityReason = ReasonNone
		d.logger.Debug("Intent resolved on first pass",
			zap.String("intent", best.ID),
			zap.Float64("confidence", best.Confidence))
		return TurnResult{
			Status:        StatusResolved,
			RouteTo:       best.ID,
			MessageToUser: fmt.Sprintf("Great, I will help you with %s.", strings.ToLower(best.Label)),
		}
	}

	st.Phase = PhaseAwaitingClarification
	st.AmbiguityReason = reason
	d.logger.Debug("Ambiguity detected, requesting clarification",
		zap.String("reason", string(reason)),
		zap.Int("candidates", len(top)))

	options := make([]Option, 0, len(top))
	for _, cand := range top {
		options = append(options, Option{ID: cand.ID, Label: cand.Label})
	}
	return TurnResult{
		Status:        StatusNeedClarification,
		MessageToUser: msgClarify,
		Options:       options,
	}
}

func (d *Disambiguator) advanceClarification(message string, st *State) TurnResult {
	// Lost or empty candidate list: self-heal by reclassifying the message
	// from the initial phase instead of failing the turn.
	if len(st.CandidateIntents) == 0 {
		st.Phase = PhaseInitial
		return d.Advance(message, st)
	}

	selected := resolveClarification(message, st.CandidateIntents, d.Catalog(st.Mode))

	st.Phase = PhaseResolved
	st.SelectedIntentID = selected
	st.AmbiguityReason = ReasonNone
	return TurnResult{
		Status:        StatusResolved,
		RouteTo:       selected,
		MessageToUser: fmt.Sprintf("Thanks! I will route you to %s.", selected),
	}
}

// classify runs the classifier for a mode and profile, consulting the result
// cache when one is configured.
func (d *Disambiguator) classify(message string, mode Mode, profile scoring.Profile) []classifier.Candidate {
	key := fmt.Sprintf("classify:%s:%s:%s", mode, profile.Name, message)
	if d.results != nil {
		if cached, ok := d.results.Get(key); ok {
			return cached
		}
	}
	candidates := classifier.Classify(message, d.Catalog(mode), profile)
	if d.results != nil {
		d.results.Set(key, candidates, int64(len(message)))
	}
	return candidates
}

func (d *Disambiguator) logCatalogWarnings(warnings []string) {
	for _, w := range warnings {
		d.logger.Warn("Catalog data-quality issue", zap.String("detail", w))
	}
}
