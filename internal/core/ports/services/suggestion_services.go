package services

import (
	"context"

	"github.com/ramplink/ramp_link_app/internal/core/domain"
)

// SuggestionSvcFacade asks the hosted model for an accounting-code
// suggestion. Failures surface as apperrors.ErrSuggestionUnavailable; a
// suggestion is never applied to a transaction by this service.
type SuggestionSvcFacade interface {
	SuggestCostCode(ctx context.Context, input domain.SuggestionInput) (*domain.CodeSuggestion, error)
}
