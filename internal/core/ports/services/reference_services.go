package services

import (
	"context"

	"github.com/ramplink/ramp_link_app/internal/core/domain"
)

// ReferenceSvcFacade serves the two reference sets with a built-in fallback:
// the dashboard must never render an empty selector. Imports replace the
// stored set wholesale.
type ReferenceSvcFacade interface {
	CostCodes(ctx context.Context) ([]domain.CostCode, error)
	// ActiveCostCodes filters to entries offered as choices and suggestions.
	ActiveCostCodes(ctx context.Context) ([]domain.CostCode, error)
	AccountingFields(ctx context.Context) ([]domain.AccountingField, error)
	ImportCostCodes(ctx context.Context, codes []domain.CostCode) error
	ImportAccountingFields(ctx context.Context, fields []domain.AccountingField) error
	PhasesForJob(ctx context.Context, jobName string) ([]string, error)
	CategoriesForJobPhase(ctx context.Context, jobName, phaseName string) ([]string, error)
	// SyncToRamp pushes both reference sets to the configured Ramp endpoint.
	SyncToRamp(ctx context.Context) error
}
