package dto

import (
	"github.com/ramplink/ramp_link_app/internal/core/domain"
)

// CostCodeRequest is one row of a chart-of-accounts import.
type CostCodeRequest struct {
	ID      string `json:"id"`
	Account string `json:"account" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Status  string `json:"status" binding:"required,oneof=Active Inactive"`
}

// ImportCostCodesRequest replaces the stored chart of accounts wholesale.
type ImportCostCodesRequest struct {
	Codes []CostCodeRequest `json:"codes" binding:"required,min=1,dive"`
}

// ToDomainCostCodes converts the import rows to domain values.
func (r ImportCostCodesRequest) ToDomainCostCodes() []domain.CostCode {
	codes := make([]domain.CostCode, len(r.Codes))
	for i, c := range r.Codes {
		codes[i] = domain.CostCode{
			ID:      c.ID,
			Account: c.Account,
			Name:    c.Name,
			Status:  domain.CostCodeStatus(c.Status),
		}
	}
	return codes
}

// CostCodeResponse defines the data returned for a chart-of-accounts entry.
type CostCodeResponse struct {
	ID      string `json:"id"`
	Account string `json:"account"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Label   string `json:"label"`
}

// ToListCostCodeResponse converts a slice of domain.CostCode to response DTOs.
func ToListCostCodeResponse(codes []domain.CostCode) []CostCodeResponse {
	res := make([]CostCodeResponse, len(codes))
	for i, c := range codes {
		res[i] = CostCodeResponse{
			ID:      c.ID,
			Account: c.Account,
			Name:    c.Name,
			Status:  string(c.Status),
			Label:   c.Label(),
		}
	}
	return res
}

// ListCostCodesResponse wraps the chart of accounts.
type ListCostCodesResponse struct {
	Codes []CostCodeResponse `json:"codes"`
}

// AccountingFieldRequest is one flattened (job, phase, category) import row.
type AccountingFieldRequest struct {
	JobID        string `json:"jobId"`
	JobName      string `json:"jobName" binding:"required"`
	PhaseID      string `json:"phaseId"`
	PhaseName    string `json:"phaseName" binding:"required"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName" binding:"required"`
}

// ImportAccountingFieldsRequest replaces the stored tuple set wholesale.
type ImportAccountingFieldsRequest struct {
	Fields []AccountingFieldRequest `json:"fields" binding:"required,min=1,dive"`
}

// ToDomainAccountingFields converts the import rows to domain values.
func (r ImportAccountingFieldsRequest) ToDomainAccountingFields() []domain.AccountingField {
	fields := make([]domain.AccountingField, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = domain.AccountingField{
			JobID:        f.JobID,
			JobName:      f.JobName,
			PhaseID:      f.PhaseID,
			PhaseName:    f.PhaseName,
			CategoryID:   f.CategoryID,
			CategoryName: f.CategoryName,
		}
	}
	return fields
}

// AccountingFieldResponse defines the data returned for one tuple.
type AccountingFieldResponse struct {
	JobID        string `json:"jobId"`
	JobName      string `json:"jobName"`
	PhaseID      string `json:"phaseId"`
	PhaseName    string `json:"phaseName"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// ToListAccountingFieldResponse converts a slice of domain.AccountingField to response DTOs.
func ToListAccountingFieldResponse(fields []domain.AccountingField) []AccountingFieldResponse {
	res := make([]AccountingFieldResponse, len(fields))
	for i, f := range fields {
		res[i] = AccountingFieldResponse(f)
	}
	return res
}

// ListAccountingFieldsResponse wraps the tuple set plus the distinct job
// names the dashboard's first selector needs.
type ListAccountingFieldsResponse struct {
	Fields   []AccountingFieldResponse `json:"fields"`
	JobNames []string                  `json:"jobNames"`
}

// NameListResponse carries the valid options for a dependent selector.
type NameListResponse struct {
	Names []string `json:"names"`
}
