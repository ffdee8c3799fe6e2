package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ramplink/ramp_link_app/internal/apperrors"
	"github.com/ramplink/ramp_link_app/internal/core/domain"
	portsrepo "github.com/ramplink/ramp_link_app/internal/core/ports/repositories"
	"github.com/ramplink/ramp_link_app/internal/models"
	"github.com/ramplink/ramp_link_app/internal/utils/mapping"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the synced
// transaction collection.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	txn_id, vendor, description, amount, txn_date, receipt_url,
	accounting_code, memo, job_name, job_phase, job_category, synced_to_ramp`

func scanTransaction(row pgx.CollectableRow) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TxnID,
		&m.Vendor,
		&m.Description,
		&m.Amount,
		&m.Date,
		&m.ReceiptURL,
		&m.AccountingCode,
		&m.Memo,
		&m.JobName,
		&m.JobPhase,
		&m.JobCategory,
		&m.SyncedToRamp,
	)
	return m, err
}

// ListTransactions retrieves the whole collection. Ordering by id here is
// only for determinism; the projection re-sorts by normalized date.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY txn_id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Transaction{}, nil
		}
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// rowQueryer is satisfied by both *pgxpool.Pool and pgx.Tx so single-row
// lookups can run standalone or inside a transaction.
type rowQueryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func findTransactionByID(ctx context.Context, q rowQueryer, txnID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE txn_id = $1;
	`
	rows, err := q.Query(ctx, query, txnID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %s: %w", txnID, err)
	}
	defer rows.Close()

	m, err := pgx.CollectOneRow(rows, scanTransaction)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", txnID, err)
	}

	domainTxn := mapping.ToDomainTransaction(m)
	return &domainTxn, nil
}

// FindTransactionByID retrieves a single transaction by its document id.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, txnID string) (*domain.Transaction, error) {
	return findTransactionByID(ctx, r.Pool, txnID)
}

// UpdateTransactionFields applies a field-level partial update. Only keys
// present in the patch appear in the SET clause; an explicit null clears the
// column. An empty patch issues no write and returns the current row. The
// UPDATE and the reload of the written row run in one database transaction so
// the returned state is exactly what this call produced.
func (r *PgxTransactionRepository) UpdateTransactionFields(ctx context.Context, txnID string, patch domain.TransactionPatch) (*domain.Transaction, error) {
	setClauses := make([]string, 0, 6)
	args := make([]any, 0, 7)

	add := func(column string, o domain.OptionalString) {
		if !o.Set {
			return
		}
		args = append(args, o.Ptr())
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	add("receipt_url", patch.ReceiptURL)
	add("accounting_code", patch.CodedFields.AccountingCode)
	add("memo", patch.CodedFields.Memo)
	add("job_name", patch.CodedFields.JobName)
	add("job_phase", patch.CodedFields.JobPhase)
	add("job_category", patch.CodedFields.JobCategory)

	if len(setClauses) == 0 {
		return r.FindTransactionByID(ctx, txnID)
	}

	args = append(args, txnID)
	query := fmt.Sprintf(
		"UPDATE transactions SET %s WHERE txn_id = $%d;",
		strings.Join(setClauses, ", "), len(args),
	)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", txnID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}

	updated, err := findTransactionByID(ctx, tx, txnID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload transaction %s after update: %w", txnID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}
