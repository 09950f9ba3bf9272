package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTOONBuiltin(t *testing.T) {
	cat, warnings := ParseTOON(BuiltinTOON)
	require.Empty(t, warnings, "built-in catalog must parse cleanly")
	require.Len(t, cat, 5)

	assert.Equal(t, []string{"send_money", "pay_bill", "check_balance", "transaction_history", "card_management"}, cat.IDs())

	send := cat[0]
	assert.Equal(t, "Send Money", send.Label)
	assert.Equal(t, []string{"send", "transfer", "money", "cash", "enviar", "mandar", "dinero"}, send.Keywords)
	assert.Equal(t, "User wants to transfer funds.", send.Description)
	assert.Equal(t, []string{"I need to send money", "I want to transfer cash"}, send.StarterPhrases)
	assert.Equal(t, []float64{0.82, 0.10, 0.08}, send.SemanticVector)
	assert.Equal(t, []string{`\btransfer\b`, `\bsend money\b`, `\bsend\b`, `\benviar\b`, `\bmandar\b`}, send.Triggers)

	assert.Equal(t, 3, cat.Dim())
}

func TestParseTOONSkipsHeaderAndBlankLines(t *testing.T) {
	text := `
intents[1]{id,label,keywords,description,starter_phrases,semantic_vector,triggers}:

  pay_bill,Pay Bill,"pay,bill","Pay a bill.","Pay my bill",[0.1,0.2,0.3],"\bpay\b"

`
	cat, warnings := ParseTOON(text)
	assert.Empty(t, warnings)
	require.Len(t, cat, 1)
	assert.Equal(t, "pay_bill", cat[0].ID)
}

func TestParseTOONCommaProtection(t *testing.T) {
	// Commas inside quotes and inside brackets must not split fields.
	text := `  check_balance,Check Balance,"balance,check","Check funds, balance, or both.","What's my balance,How much do I have",[0.05,0.10,0.85],"\bbalance\b,\bcheck\b"`
	cat, warnings := ParseTOON(text)
	require.Empty(t, warnings)
	require.Len(t, cat, 1)

	def := cat[0]
	assert.Equal(t, "Check funds, balance, or both.", def.Description)
	assert.Equal(t, []string{"balance", "check"}, def.Keywords)
	assert.Equal(t, []float64{0.05, 0.10, 0.85}, def.SemanticVector)
	assert.Equal(t, []string{`\bbalance\b`, `\bcheck\b`}, def.Triggers)
}

func TestParseTOONSkipsMalformedRows(t *testing.T) {
	text := `
  send_money,Send Money,"send","Send.","Send money",[0.8,0.1,0.1],"\bsend\b"
  broken_row_with_too_few_fields,Oops,"only","four fields"
  pay_bill,Pay Bill,"pay","Pay.","Pay bill",[0.1,0.8,0.1],"\bpay\b"
`
	cat, warnings := ParseTOON(text)
	require.Len(t, cat, 2, "malformed row is skipped, not fatal")
	assert.Equal(t, []string{"send_money", "pay_bill"}, cat.IDs())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "expected 7 fields")
}

func TestParseTOONInvalidVector(t *testing.T) {
	text := `  send_money,Send Money,"send","Send.","Send money",[not,a,vector],"\bsend\b"`
	cat, warnings := ParseTOON(text)
	require.Len(t, cat, 1)
	assert.Equal(t, []float64{0, 0, 0}, cat[0].SemanticVector, "unparseable vector falls back to zeros")
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "semantic vector")
}

func TestParseTOONUnescapesTriggers(t *testing.T) {
	text := `  send_money,Send Money,"send","Send.","Send money",[0.8,0.1,0.1],"\\btransfer\\b,\\bsend\\s+money\\b"`
	cat, warnings := ParseTOON(text)
	require.Empty(t, warnings)
	require.Len(t, cat, 1)
	assert.Equal(t, []string{`\btransfer\b`, `\bsend\s+money\b`}, cat[0].Triggers)
}

func TestCatalogFind(t *testing.T) {
	def := BuiltinJSON.Find("pay_bill")
	require.NotNil(t, def)
	assert.Equal(t, "Pay Bill", def.Label)

	assert.Nil(t, BuiltinJSON.Find("no_such_intent"))
}

func TestCatalogDimEmpty(t *testing.T) {
	assert.Equal(t, DefaultVectorDim, Catalog{}.Dim())
}
