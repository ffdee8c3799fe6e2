package repositories

import (
	"context"

	"github.com/ramplink/ramp_link_app/internal/core/domain"
)

// ReferenceRepository stores the two configuration documents. Saves are
// wholesale overwrites; reads return the stored set as-is (possibly empty,
// the service layer owns the fallback).
type ReferenceRepository interface {
	GetCostCodes(ctx context.Context) ([]domain.CostCode, error)
	SaveCostCodes(ctx context.Context, codes []domain.CostCode) error
	GetAccountingFields(ctx context.Context) ([]domain.AccountingField, error)
	SaveAccountingFields(ctx context.Context, fields []domain.AccountingField) error
}
