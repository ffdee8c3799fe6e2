package domain

import "sort"

// CostCodeStatus marks whether a chart-of-accounts entry may be offered as a
// choice in the dashboard.
type CostCodeStatus string

const (
	CostCodeActive   CostCodeStatus = "Active"
	CostCodeInactive CostCodeStatus = "Inactive"
)

// CostCode is one entry of the imported chart of accounts.
type CostCode struct {
	ID      string         `json:"id"`
	Account string         `json:"account"`
	Name    string         `json:"name"`
	Status  CostCodeStatus `json:"status"`
}

// Label renders the form the dashboard shows and stores on transactions,
// e.g. "7210 - Software & Subscriptions".
func (c CostCode) Label() string {
	return c.Account + " - " + c.Name
}

// AccountingField is one flattened (job, phase, category) tuple of the
// imported job-costing reference set. The valid phases for a job and the
// valid categories for a (job, phase) are the tuples matching that prefix;
// there is no separate hierarchy table.
type AccountingField struct {
	JobID        string `json:"jobId"`
	JobName      string `json:"jobName"`
	PhaseID      string `json:"phaseId"`
	PhaseName    string `json:"phaseName"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
}

// PhasesForJob returns the distinct phase names valid for the given job, in
// stable sorted order.
func PhasesForJob(fields []AccountingField, jobName string) []string {
	return distinct(fields, func(f AccountingField) (string, bool) {
		return f.PhaseName, f.JobName == jobName
	})
}

// CategoriesForJobPhase returns the distinct category names valid for the
// given (job, phase) prefix, in stable sorted order.
func CategoriesForJobPhase(fields []AccountingField, jobName, phaseName string) []string {
	return distinct(fields, func(f AccountingField) (string, bool) {
		return f.CategoryName, f.JobName == jobName && f.PhaseName == phaseName
	})
}

// JobNames returns the distinct job names present in the reference set.
func JobNames(fields []AccountingField) []string {
	return distinct(fields, func(f AccountingField) (string, bool) {
		return f.JobName, true
	})
}

func distinct(fields []AccountingField, pick func(AccountingField) (string, bool)) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, f := range fields {
		v, ok := pick(f)
		if !ok || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
