package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ramplink/ramp_link_app/internal/core/domain"
	portsrepo "github.com/ramplink/ramp_link_app/internal/core/ports/repositories"
	"github.com/ramplink/ramp_link_app/internal/models"
	"github.com/ramplink/ramp_link_app/internal/utils/mapping"
)

// Document keys of the two reference singletons in the configuration table.
const (
	costCodesDocKey        = "costCodes"
	accountingFieldsDocKey = "accountingFields"
)

// costCodesDoc is the stored payload shape of the costCodes document; the
// array sits under a named key so the document can grow without migration.
type costCodesDoc struct {
	Codes []models.CostCode `json:"codes"`
}

type accountingFieldsDoc struct {
	Fields []models.AccountingField `json:"fields"`
}

type PgxConfigRepository struct {
	BaseRepository
}

// newPgxConfigRepository creates a new repository for the configuration
// documents holding the reference sets.
func newPgxConfigRepository(pool *pgxpool.Pool) portsrepo.ReferenceRepository {
	return &PgxConfigRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReferenceRepository = (*PgxConfigRepository)(nil)

// GetCostCodes returns the stored chart of accounts, or an empty slice when
// the document has never been written.
func (r *PgxConfigRepository) GetCostCodes(ctx context.Context) ([]domain.CostCode, error) {
	var doc costCodesDoc
	if err := r.loadDocument(ctx, costCodesDocKey, &doc); err != nil {
		return nil, err
	}
	return mapping.ToDomainCostCodeSlice(doc.Codes), nil
}

// SaveCostCodes overwrites the stored chart of accounts wholesale.
func (r *PgxConfigRepository) SaveCostCodes(ctx context.Context, codes []domain.CostCode) error {
	return r.saveDocument(ctx, costCodesDocKey, costCodesDoc{Codes: mapping.ToModelCostCodeSlice(codes)})
}

// GetAccountingFields returns the stored job/phase/category tuples, or an
// empty slice when the document has never been written.
func (r *PgxConfigRepository) GetAccountingFields(ctx context.Context) ([]domain.AccountingField, error) {
	var doc accountingFieldsDoc
	if err := r.loadDocument(ctx, accountingFieldsDocKey, &doc); err != nil {
		return nil, err
	}
	return mapping.ToDomainAccountingFieldSlice(doc.Fields), nil
}

// SaveAccountingFields overwrites the stored tuple set wholesale.
func (r *PgxConfigRepository) SaveAccountingFields(ctx context.Context, fields []domain.AccountingField) error {
	return r.saveDocument(ctx, accountingFieldsDocKey, accountingFieldsDoc{Fields: mapping.ToModelAccountingFieldSlice(fields)})
}

func (r *PgxConfigRepository) loadDocument(ctx context.Context, docKey string, target any) error {
	query := `
		SELECT payload
		FROM configuration
		WHERE doc_key = $1;
	`
	var payload []byte
	err := r.Pool.QueryRow(ctx, query, docKey).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Absent document reads as an empty set; the service layer
			// owns the default fallback.
			return nil
		}
		return fmt.Errorf("failed to load configuration document %s: %w", docKey, err)
	}

	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("failed to decode configuration document %s: %w", docKey, err)
	}
	return nil
}

func (r *PgxConfigRepository) saveDocument(ctx context.Context, docKey string, doc any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode configuration document %s: %w", docKey, err)
	}

	query := `
		INSERT INTO configuration (doc_key, payload, last_updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (doc_key) DO UPDATE SET
			payload = EXCLUDED.payload,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, docKey, payload); err != nil {
		return fmt.Errorf("failed to save configuration document %s: %w", docKey, err)
	}
	return nil
}
