package mapping

import (
	"github.com/ramplink/ramp_link_app/internal/core/domain"
	"github.com/ramplink/ramp_link_app/internal/models"
)

// ToDomainCostCode converts a stored cost code to the domain shape.
func ToDomainCostCode(m models.CostCode) domain.CostCode {
	return domain.CostCode{
		ID:      m.ID,
		Account: m.Account,
		Name:    m.Name,
		Status:  domain.CostCodeStatus(m.Status),
	}
}

// ToModelCostCode converts a domain cost code to its stored shape.
func ToModelCostCode(d domain.CostCode) models.CostCode {
	return models.CostCode{
		ID:      d.ID,
		Account: d.Account,
		Name:    d.Name,
		Status:  string(d.Status),
	}
}

// ToDomainCostCodeSlice converts a stored cost-code array.
func ToDomainCostCodeSlice(ms []models.CostCode) []domain.CostCode {
	ds := make([]domain.CostCode, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCostCode(m)
	}
	return ds
}

// ToModelCostCodeSlice converts a domain cost-code set for storage.
func ToModelCostCodeSlice(ds []domain.CostCode) []models.CostCode {
	ms := make([]models.CostCode, len(ds))
	for i, d := range ds {
		ms[i] = ToModelCostCode(d)
	}
	return ms
}

// ToDomainAccountingField converts a stored tuple to the domain shape.
func ToDomainAccountingField(m models.AccountingField) domain.AccountingField {
	return domain.AccountingField(m)
}

// ToModelAccountingField converts a domain tuple to its stored shape.
func ToModelAccountingField(d domain.AccountingField) models.AccountingField {
	return models.AccountingField(d)
}

// ToDomainAccountingFieldSlice converts a stored tuple array.
func ToDomainAccountingFieldSlice(ms []models.AccountingField) []domain.AccountingField {
	ds := make([]domain.AccountingField, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccountingField(m)
	}
	return ds
}

// ToModelAccountingFieldSlice converts a domain tuple set for storage.
func ToModelAccountingFieldSlice(ds []domain.AccountingField) []models.AccountingField {
	ms := make([]models.AccountingField, len(ds))
	for i, d := range ds {
		ms[i] = ToModelAccountingField(d)
	}
	return ms
}
