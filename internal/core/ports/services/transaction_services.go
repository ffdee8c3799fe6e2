package services

import (
	"context"

	"github.com/ramplink/ramp_link_app/internal/core/domain"
)

// TransactionSvcFacade is the mutation gateway plus one-shot reads. It is the
// only path that mutates transaction state; receipt attach/detach and AI
// suggestion application all funnel through UpdateTransaction.
type TransactionSvcFacade interface {
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, txnID string) (*domain.Transaction, error)
	// UpdateTransaction applies a field-level partial update. An empty patch
	// is a no-op success with zero writes. Validation failures surface as
	// apperrors.ErrValidation, unknown ids as apperrors.ErrNotFound.
	UpdateTransaction(ctx context.Context, txnID string, patch domain.TransactionPatch) (*domain.Transaction, error)
}
