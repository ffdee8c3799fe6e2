package repositories

import (
	"context"

	"github.com/ramplink/ramp_link_app/internal/core/domain"
)

// TransactionReader provides read access to the transaction collection.
type TransactionReader interface {
	// ListTransactions returns the whole collection; the live projection
	// always works on full snapshots, never diffs.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	// FindTransactionByID returns apperrors.ErrNotFound for a missing id.
	FindTransactionByID(ctx context.Context, txnID string) (*domain.Transaction, error)
}

// TransactionWriter applies field-level partial updates. Only keys present in
// the patch are written. The returned transaction is the row as this write
// left it, read in the same database transaction as the update, so a
// concurrent later write can never masquerade as this call's result.
type TransactionWriter interface {
	UpdateTransactionFields(ctx context.Context, txnID string, patch domain.TransactionPatch) (*domain.Transaction, error)
}

// TransactionRepository combines read and write access.
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}
