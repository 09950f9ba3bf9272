package catalog

// DefaultVectorDim is the dimensionality of the built-in catalogs.
const DefaultVectorDim = 3

// BuiltinJSON is the structured form of the built-in fintech catalog.
// Keywords include Spanish variants for bilingual matching.
var BuiltinJSON = Catalog{
	{
		ID:          "send_money",
		Label:       "Send Money",
		Keywords:    []string{"send", "transfer", "money", "cash", "wire", "enviar", "mandar", "dinero", "transferir"},
		Description: "User wants to send or transfer money to someone",
		StarterPhrases: []string{
			"I need to send money",
			"I want to transfer cash",
			"Can I send funds",
			"Transfer money please",
		},
		SemanticVector: []float64{0.82, 0.10, 0.08},
		Triggers:       []string{`\btransfer\b`, `\bsend money\b`, `\bsend\b`, `\bwire\b`, `\benviar\b`, `\bmandar\b`},
	},
	{
		ID:          "check_balance",
		Label:       "Check Balance",
		Keywords:    []string{"balance", "check", "available", "account", "funds", "saldo", "balance", "cuanto", "tengo"},
		Description: "User wants to check their account balance",
		StarterPhrases: []string{
			"What's my balance",
			"Check my available funds",
			"Show me my balance",
			"How much do I have",
		},
		SemanticVector: []float64{0.05, 0.10, 0.85},
		Triggers:       []string{`\bbalance\b`, `\bcheck\b`, `\bavailable\b`, `\bsaldo\b`},
	},
	{
		ID:          "pay_bill",
		Label:       "Pay Bill",
		Keywords:    []string{"bill", "pay", "payment", "due", "invoice", "pagar", "factura", "recibo", "servicio"},
		Description: "User wants to pay a bill or invoice",
		StarterPhrases: []string{
			"I need to pay my bill",
			"Can I pay services",
			"Pay invoice please",
			"I want to pay bills",
		},
		SemanticVector: []float64{0.12, 0.80, 0.08},
		Triggers:       []string{`\bpay\b`, `\bbill\b`, `\binvoice\b`, `\bpagar\b`, `\bfactura\b`},
	},
	{
		ID:             "transaction_history",
		Label:          "Transaction History",
		Keywords:       []string{"history", "transactions", "statement", "past", "recent", "historia", "movimientos", "transacciones"},
		Description:    "User wants to view their transaction history",
		StarterPhrases: []string{"Show my history", "Recent transactions"},
		SemanticVector: []float64{0.2, 0.2, 0.2},
		Triggers:       []string{`\bhistory\b`, `\btransactions\b`, `\bmovimientos\b`},
	},
	{
		ID:             "card_management",
		Label:          "Card Management",
		Keywords:       []string{"card", "debit", "credit", "block", "unblock", "replace", "tarjeta", "bloquear", "desbloquear"},
		Description:    "User wants to manage their card (block, unblock, replace, etc.)",
		StarterPhrases: []string{"Block my card", "I lost my card"},
		SemanticVector: []float64{0.3, 0.3, 0.3},
		Triggers:       []string{`\bcard\b`, `\bblock\b`, `\btarjeta\b`},
	},
}

// BuiltinTOON is the compact delimited form of the built-in catalog. Rows are
// intentionally terser than BuiltinJSON (fewer keywords per intent); the two
// forms are logically equivalent but not field-for-field identical.
const BuiltinTOON = `
intents[5]{id,label,keywords,description,starter_phrases,semantic_vector,triggers}:
  send_money,Send Money,"send,transfer,money,cash,enviar,mandar,dinero","User wants to transfer funds.","I need to send money,I want to transfer cash",[0.82,0.10,0.08],"\btransfer\b,\bsend money\b,\bsend\b,\benviar\b,\bmandar\b"
  pay_bill,Pay Bill,"pay,bill,payment,pagar,factura,recibo","User wants to pay a service.","I need to pay my bill,Can I pay services",[0.12,0.80,0.08],"\bpay\b,\bbill\b,\bpagar\b"
  check_balance,Check Balance,"balance,check,available,saldo,cuanto,tengo","User wants to check balance.","What's my balance,Check my available funds",[0.05,0.10,0.85],"\bbalance\b,\bcheck\b,\bsaldo\b"
  transaction_history,Transaction History,"history,transactions,statement,movimientos,historial","View past transactions.","Show my history",[0.2,0.2,0.2],"\bhistory\b,\bmovimientos\b"
  card_management,Card Management,"card,block,replace,tarjeta,bloquear","Manage cards.","Block my card",[0.3,0.3,0.3],"\bcard\b,\btarjeta\b"
`

// BuiltinParsedTOON parses BuiltinTOON. The built-in text is well-formed, so
// the warning list is empty.
func BuiltinParsedTOON() Catalog {
	cat, _ := ParseTOON(BuiltinTOON)
	return cat
}
