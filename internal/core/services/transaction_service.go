package services

import (
	"context"
	"fmt"

	"github.com/ramplink/ramp_link_app/internal/apperrors"
	"github.com/ramplink/ramp_link_app/internal/core/domain"
	portsrepo "github.com/ramplink/ramp_link_app/internal/core/ports/repositories"
	portssvc "github.com/ramplink/ramp_link_app/internal/core/ports/services"
)

// transactionService is the mutation gateway: the single path through which
// this system writes transaction state.
type transactionService struct {
	repo portsrepo.TransactionRepository
}

// NewTransactionService creates the transaction service.
func NewTransactionService(repo portsrepo.TransactionRepository) portssvc.TransactionSvcFacade {
	return &transactionService{repo: repo}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.repo.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions in service: %w", err)
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}
	domain.SortTransactions(txns)
	return txns, nil
}

func (s *transactionService) GetTransaction(ctx context.Context, txnID string) (*domain.Transaction, error) {
	if txnID == "" {
		return nil, fmt.Errorf("%w: transaction id is required", apperrors.ErrValidation)
	}
	txn, err := s.repo.FindTransactionByID(ctx, txnID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction in service: %w", err)
	}
	return txn, nil
}

// UpdateTransaction applies a field-level partial update to one transaction.
// Keys absent from the patch are never touched; explicit nulls clear. An
// empty patch performs no write at all. Changing the job cascades a clear to
// the dependent phase and category so a stale narrower selection can never
// outlive its parent.
func (s *transactionService) UpdateTransaction(ctx context.Context, txnID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	if txnID == "" {
		return nil, fmt.Errorf("%w: transaction id is required", apperrors.ErrValidation)
	}

	current, err := s.repo.FindTransactionByID(ctx, txnID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %s for update: %w", txnID, err)
	}

	if patch.IsEmpty() {
		// No-op success, zero writes.
		return current, nil
	}

	patch = cascadeInvalidation(*current, patch)

	updated, err := s.repo.UpdateTransactionFields(ctx, txnID, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", txnID, err)
	}
	return updated, nil
}

// cascadeInvalidation enforces the one-way job -> phase -> category cascade:
// a patch that changes jobName also clears jobPhase and jobCategory, and a
// patch that changes jobPhase clears jobCategory, unless the patch itself
// supplies replacements.
func cascadeInvalidation(current domain.Transaction, patch domain.TransactionPatch) domain.TransactionPatch {
	cf := &patch.CodedFields

	if cf.JobName.Set && !ptrEqual(cf.JobName.Ptr(), current.CodedFields.JobName) {
		if !cf.JobPhase.Set {
			cf.JobPhase = domain.NullOptionalString()
		}
		if !cf.JobCategory.Set {
			cf.JobCategory = domain.NullOptionalString()
		}
	}

	if cf.JobPhase.Set && !ptrEqual(cf.JobPhase.Ptr(), current.CodedFields.JobPhase) {
		if !cf.JobCategory.Set {
			cf.JobCategory = domain.NullOptionalString()
		}
	}

	return patch
}

func ptrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
