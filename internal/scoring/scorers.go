// Package scoring implements the heuristic signal scorers the classifier
// blends into a combined confidence: keyword containment, regex triggers,
// pseudo-semantic cosine similarity, and starter-phrase similarity.
package scoring

import (
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/conversational-intent-router/internal/embedding"
)

// regexCacheSize bounds the compiled-trigger cache. Catalogs are small and
// fixed, so this is never evicted in practice.
const regexCacheSize = 512

// compiledTrigger caches a compile result, including failures, so invalid
// patterns are only attempted once.
type compiledTrigger struct {
	re  *regexp.Regexp
	bad bool
}

var regexCache *lru.Cache[string, compiledTrigger]

func init() {
	regexCache, _ = lru.New[string, compiledTrigger](regexCacheSize)
}

// compileTrigger compiles a case-insensitive trigger pattern through the
// cache. The second return is false for patterns that do not compile.
func compileTrigger(pattern string) (*regexp.Regexp, bool) {
	if cached, ok := regexCache.Get(pattern); ok {
		return cached.re, !cached.bad
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		regexCache.Add(pattern, compiledTrigger{bad: true})
		return nil, false
	}
	regexCache.Add(pattern, compiledTrigger{re: re})
	return re, true
}

// Keyword scores case-insensitive substring containment: the fraction of
// keywords present in the message. Empty keyword lists score 0.
func Keyword(message string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(message)
	found := 0
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			found++
		}
	}
	return float64(found) / float64(len(keywords))
}

// Trigger scores case-insensitive regex matches: the fraction of trigger
// patterns matching the message. Patterns that fail to compile are skipped,
// never fatal; they still count in the divisor. Empty trigger lists score 0.
func Trigger(message string, triggers []string) float64 {
	if len(triggers) == 0 {
		return 0
	}
	matches := 0
	for _, pattern := range triggers {
		re, ok := compileTrigger(pattern)
		if !ok {
			continue
		}
		if re.MatchString(message) {
			matches++
		}
	}
	return float64(matches) / float64(len(triggers))
}

// InvalidTriggers reports which trigger patterns do not compile, with the
// compile error text. Scoring silently skips these; this side channel lets
// catalog loading surface them to authors.
func InvalidTriggers(triggers []string) []string {
	var bad []string
	for _, pattern := range triggers {
		if _, err := regexp.Compile("(?i)" + pattern); err != nil {
			bad = append(bad, pattern+": "+err.Error())
		}
	}
	return bad
}

// Semantic is the raw cosine similarity between the message embedding and an
// intent's semantic vector. The value may be negative; the combined score
// clamps it, diagnostics keep it raw.
func Semantic(userVec, intentVec []float64) float64 {
	return embedding.Cosine(userVec, intentVec)
}

// Starter scores the message against each starter phrase with a
// longest-matching-block sequence similarity ratio (case-insensitive) and
// returns the maximum. Empty phrase lists score 0.
func Starter(message string, phrases []string) float64 {
	if len(phrases) == 0 {
		return 0
	}
	lower := strings.ToLower(message)
	best := 0.0
	for _, phrase := range phrases {
		if r := similarityRatio(lower, strings.ToLower(phrase)); r > best {
			best = r
		}
	}
	return best
}

// similarityRatio is the classic diff-style ratio: 2*M/T where M is the total
// matched characters and T the combined length.
func similarityRatio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}
