package conversation

import (
	"strings"

	"github.com/conversational-intent-router/internal/catalog"
	"github.com/conversational-intent-router/internal/classifier"
)

// unknownIntentID is returned only when no candidates exist; the state
// machine's guards keep that unreachable in normal flow.
const unknownIntentID = "unknown"

// resolveClarification maps a free-text clarification reply onto one of the
// previously presented candidates. Precedence, first match wins:
//
//  1. candidate id contained in the reply (case-insensitive)
//  2. candidate label contained in the reply
//  3. any keyword of the candidate's full catalog definition contained in
//     the reply (candidates in stored order, keywords in declared order)
//  4. the first, highest-ranked candidate
func resolveClarification(clarification string, candidates []classifier.Candidate, cat catalog.Catalog) string {
	reply := strings.ToLower(strings.TrimSpace(clarification))

	for _, cand := range candidates {
		if strings.Contains(reply, strings.ToLower(cand.ID)) {
			return cand.ID
		}
	}

	for _, cand := range candidates {
		if strings.Contains(reply, strings.ToLower(cand.Label)) {
			return cand.ID
		}
	}

	for _, cand := range candidates {
		def := cat.Find(cand.ID)
		if def == nil {
			continue
		}
		for _, kw := range def.Keywords {
			if strings.Contains(reply, strings.ToLower(kw)) {
				return cand.ID
			}
		}
	}

	if len(candidates) > 0 {
		return candidates[0].ID
	}
	return unknownIntentID
}
