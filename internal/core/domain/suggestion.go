package domain

import "github.com/shopspring/decimal"

// SuggestionInput is what the reviewer hands the model: the transaction
// details plus any accounting codes previously used for similar spend.
type SuggestionInput struct {
	TransactionDescription string          `json:"transactionDescription"`
	TransactionAmount      decimal.Decimal `json:"transactionAmount"`
	PreviousCostCodes      []string        `json:"previousCostCodes,omitempty"`
}

// CodeSuggestion is the model's answer. Applying it to a transaction is a
// separate, explicit user action through the mutation gateway.
type CodeSuggestion struct {
	SuggestedCostCode string  `json:"suggestedCostCode"`
	ConfidenceScore   float64 `json:"confidenceScore"` // in [0, 1]
	Reasoning         string  `json:"reasoning,omitempty"`
}
