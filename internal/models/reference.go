package models

// CostCode is the stored row shape of one chart-of-accounts entry. The whole
// set lives as a JSONB array under the costCodes configuration document.
type CostCode struct {
	ID      string `json:"id"`
	Account string `json:"account"`
	Name    string `json:"name"`
	Status  string `json:"status"`
}

// AccountingField is the stored row shape of one job/phase/category tuple,
// kept as a JSONB array under the accountingFields configuration document.
type AccountingField struct {
	JobID        string `json:"jobId"`
	JobName      string `json:"jobName"`
	PhaseID      string `json:"phaseId"`
	PhaseName    string `json:"phaseName"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}
