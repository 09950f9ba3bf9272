package scoring

import (
	"math"

	"github.com/conversational-intent-router/internal/catalog"
)

// Breakdown carries the per-signal scores behind a combined confidence.
// Semantic is the raw cosine value (possibly negative); Final uses the
// clamped value. Starter is only computed when the profile weights it.
type Breakdown struct {
	Keyword  float64 `json:"keyword"`
	Trigger  float64 `json:"trigger"`
	Semantic float64 `json:"semantic"`
	Starter  float64 `json:"starter"`
	Final    float64 `json:"final"`
}

// Combined blends the signal scores for one intent under a weighting
// profile. The caller supplies the message embedding so one message is
// embedded once per classification pass, not once per intent.
func Combined(message string, def catalog.IntentDefinition, userVec []float64, profile Profile) Breakdown {
	b := Breakdown{
		Keyword:  Keyword(message, def.Keywords),
		Trigger:  Trigger(message, def.Triggers),
		Semantic: Semantic(userVec, def.SemanticVector),
	}
	if profile.Starter > 0 {
		b.Starter = Starter(message, def.StarterPhrases)
	}

	b.Final = profile.Keyword*b.Keyword +
		profile.Trigger*b.Trigger +
		profile.Semantic*math.Max(0, b.Semantic) +
		profile.Starter*b.Starter
	return b
}
