package dto

import (
	"github.com/ramplink/ramp_link_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SuggestCodeRequest carries the extra context for an AI code suggestion.
// The transaction's own description and amount come from the stored document;
// the request may override the description (e.g. user-edited text) and add
// previously used codes for similar transactions.
type SuggestCodeRequest struct {
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	PreviousCostCodes []string        `json:"previousCostCodes"`
}

// SuggestCodeResponse defines the data returned for a code suggestion.
type SuggestCodeResponse struct {
	SuggestedCostCode string  `json:"suggestedCostCode"`
	ConfidenceScore   float64 `json:"confidenceScore"`
	Reasoning         string  `json:"reasoning"`
}

// ToSuggestCodeResponse converts a domain.CodeSuggestion to its DTO.
func ToSuggestCodeResponse(s *domain.CodeSuggestion) SuggestCodeResponse {
	return SuggestCodeResponse{
		SuggestedCostCode: s.SuggestedCostCode,
		ConfidenceScore:   s.ConfidenceScore,
		Reasoning:         s.Reasoning,
	}
}
