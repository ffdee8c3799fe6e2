package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ramplink/ramp_link_app/internal/apperrors"
	"github.com/ramplink/ramp_link_app/internal/core/domain"
	portsrepo "github.com/ramplink/ramp_link_app/internal/core/ports/repositories"
	portssvc "github.com/ramplink/ramp_link_app/internal/core/ports/services"
)

// suggestionService asks the hosted model for an accounting-code suggestion.
// The prompt is constrained to the active chart of accounts so the model
// cannot invent codes. Applying a suggestion stays a separate, explicit user
// action through the mutation gateway.
type suggestionService struct {
	generator portsrepo.ContentGenerator
	reference portssvc.ReferenceSvcFacade
	logger    *slog.Logger
}

// NewSuggestionService creates the suggestion service.
func NewSuggestionService(generator portsrepo.ContentGenerator, reference portssvc.ReferenceSvcFacade, logger *slog.Logger) portssvc.SuggestionSvcFacade {
	return &suggestionService{generator: generator, reference: reference, logger: logger}
}

var _ portssvc.SuggestionSvcFacade = (*suggestionService)(nil)

func (s *suggestionService) SuggestCostCode(ctx context.Context, input domain.SuggestionInput) (*domain.CodeSuggestion, error) {
	if strings.TrimSpace(input.TransactionDescription) == "" {
		return nil, fmt.Errorf("%w: transaction description is required", apperrors.ErrValidation)
	}
	if s.generator == nil {
		return nil, fmt.Errorf("%w: no model configured", apperrors.ErrSuggestionUnavailable)
	}

	codes, err := s.reference.ActiveCostCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load cost codes for suggestion prompt: %w", err)
	}

	prompt := buildSuggestionPrompt(input, codes)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Error("Model call for cost code suggestion failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrSuggestionUnavailable, err)
	}

	var suggestion domain.CodeSuggestion
	if err := json.Unmarshal([]byte(cleanModelJSON(raw)), &suggestion); err != nil {
		s.logger.Error("Model returned unparseable suggestion", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: unparseable model output", apperrors.ErrSuggestionUnavailable)
	}
	if suggestion.SuggestedCostCode == "" {
		return nil, fmt.Errorf("%w: model returned no code", apperrors.ErrSuggestionUnavailable)
	}

	if suggestion.ConfidenceScore < 0 {
		suggestion.ConfidenceScore = 0
	}
	if suggestion.ConfidenceScore > 1 {
		suggestion.ConfidenceScore = 1
	}

	return &suggestion, nil
}

func buildSuggestionPrompt(input domain.SuggestionInput, codes []domain.CostCode) string {
	var b strings.Builder

	b.WriteString("You are an expert accounting assistant specializing in accounting code assignment.\n\n")
	b.WriteString("You will be provided with transaction details and must suggest the most appropriate accounting code.\n\n")

	b.WriteString("Use ONLY the following accounting codes:\n")
	for _, c := range codes {
		b.WriteString("- " + c.Label() + "\n")
	}
	b.WriteString("\n")

	b.WriteString("Transaction Description: " + input.TransactionDescription + "\n")
	b.WriteString("Transaction Amount: " + input.TransactionAmount.String() + "\n")

	if len(input.PreviousCostCodes) > 0 {
		b.WriteString("\nPreviously Used Accounting Codes for Similar Transactions:\n")
		for _, code := range input.PreviousCostCodes {
			b.WriteString("- " + code + "\n")
		}
	}

	b.WriteString("\nConsider all available information and provide a single, best-suited accounting code.\n")
	b.WriteString("Output STRICT JSON only (no comments, no extra text) with exactly these fields:\n")
	b.WriteString("- \"suggestedCostCode\": string, one of the codes above\n")
	b.WriteString("- \"confidenceScore\": number between 0 and 1\n")
	b.WriteString("- \"reasoning\": string\n")
	b.WriteString("Do NOT wrap the response in code fences.\n")

	return b.String()
}

// cleanModelJSON strips Markdown fences the model may emit despite the
// instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	return strings.TrimSpace(s)
}
