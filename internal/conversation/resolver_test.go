package conversation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conversational-intent-router/internal/catalog"
	"github.com/conversational-intent-router/internal/classifier"
)

func clarificationCandidates() []classifier.Candidate {
	return []classifier.Candidate{
		{ID: "send_money", Label: "Send Money"},
		{ID: "pay_bill", Label: "Pay Bill"},
		{ID: "check_balance", Label: "Check Balance"},
	}
}

func TestResolveClarificationByID(t *testing.T) {
	got := resolveClarification("I meant pay_bill", clarificationCandidates(), catalog.BuiltinJSON)
	assert.Equal(t, "pay_bill", got)
}

func TestResolveClarificationByLabel(t *testing.T) {
	got := resolveClarification("the send money one", clarificationCandidates(), catalog.BuiltinJSON)
	assert.Equal(t, "send_money", got)
}

func TestResolveClarificationByKeyword(t *testing.T) {
	// "factura" is a catalog keyword of pay_bill, not part of its id or label.
	got := resolveClarification("la factura por favor", clarificationCandidates(), catalog.BuiltinJSON)
	assert.Equal(t, "pay_bill", got)
}

func TestResolveClarificationIDBeatsLabel(t *testing.T) {
	// A reply naming one candidate's id and another's label resolves by id.
	candidates := []classifier.Candidate{
		{ID: "pay_bill", Label: "Pay Bill"},
		{ID: "send_money", Label: "Send Money"},
	}
	got := resolveClarification("send money via pay_bill", candidates, catalog.BuiltinJSON)
	assert.Equal(t, "pay_bill", got)
}

func TestResolveClarificationCandidateOrderBreaksKeywordTies(t *testing.T) {
	// "money" is a keyword of send_money only, but both candidates are
	// checked in stored order and the first keyword hit wins.
	candidates := []classifier.Candidate{
		{ID: "check_balance", Label: "Check Balance"},
		{ID: "send_money", Label: "Send Money"},
	}
	got := resolveClarification("money in my account", candidates, catalog.BuiltinJSON)
	assert.Equal(t, "check_balance", got, "\"account\" is a check_balance keyword and check_balance is stored first")
}

func TestResolveClarificationFallsBackToFirst(t *testing.T) {
	got := resolveClarification("none of those words appear here", clarificationCandidates(), catalog.BuiltinJSON)
	assert.Equal(t, "send_money", got)
}

func TestResolveClarificationNoCandidates(t *testing.T) {
	got := resolveClarification("anything", nil, catalog.BuiltinJSON)
	assert.Equal(t, unknownIntentID, got)
}

func TestResolveClarificationCaseInsensitive(t *testing.T) {
	got := resolveClarification("  CHECK BALANCE  ", clarificationCandidates(), catalog.BuiltinJSON)
	assert.Equal(t, "check_balance", got)
}
