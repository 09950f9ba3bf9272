// Package classifier ranks catalog intents against a user message by
// blending heuristic signal scores under a named weighting profile.
package classifier

import (
	"sort"

	"github.com/conversational-intent-router/internal/catalog"
	"github.com/conversational-intent-router/internal/embedding"
	"github.com/conversational-intent-router/internal/scoring"
)

// Candidate is one possible classification of a message. Candidates are
// created fresh on each pass and never mutated afterwards.
type Candidate struct {
	ID          string            `json:"id"`
	Label       string            `json:"label"`
	Confidence  float64           `json:"confidence"`
	Description string            `json:"description"`
	Breakdown   scoring.Breakdown `json:"breakdown"`
}

// Classify scores the message against every catalog entry and returns
// candidates sorted descending by combined confidence. The sort is stable:
// ties keep catalog order, which makes rankings reproducible.
func Classify(message string, cat catalog.Catalog, profile scoring.Profile) []Candidate {
	userVec := embed(message, cat.Dim())

	candidates := make([]Candidate, 0, len(cat))
	for _, def := range cat {
		b := scoring.Combined(message, def, userVec, profile)
		candidates = append(candidates, Candidate{
			ID:          def.ID,
			Label:       def.Label,
			Confidence:  b.Final,
			Description: def.Description,
			Breakdown:   b,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates
}

// embed produces the pseudo-embedding at the catalog's dimensionality,
// falling back to the default dimensionality if the catalog's is out of the
// embedder's range.
func embed(message string, dim int) []float64 {
	emb, err := embedding.NewHashEmbedder(dim)
	if err != nil {
		emb, _ = embedding.NewHashEmbedder(catalog.DefaultVectorDim)
	}
	return emb.Embed(message)
}
