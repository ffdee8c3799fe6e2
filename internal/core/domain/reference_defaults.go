package domain

// DefaultCostCodes is the built-in chart of accounts used whenever no set has
// been imported yet. Selectors must never render empty.
func DefaultCostCodes() []CostCode {
	return []CostCode{
		{ID: "7210", Account: "7210", Name: "Software & Subscriptions", Status: CostCodeActive},
		{ID: "6450", Account: "6450", Name: "Meals & Entertainment", Status: CostCodeActive},
		{ID: "6290", Account: "6290", Name: "Office Supplies", Status: CostCodeActive},
		{ID: "7855", Account: "7855", Name: "Travel & Transportation", Status: CostCodeActive},
		{ID: "6120", Account: "6120", Name: "Advertising & Marketing", Status: CostCodeActive},
		{ID: "7100", Account: "7100", Name: "Rent & Lease", Status: CostCodeActive},
		{ID: "8000", Account: "8000", Name: "Professional Services", Status: CostCodeActive},
	}
}

// DefaultAccountingFields is the built-in job/phase/category reference set
// used whenever no set has been imported yet.
func DefaultAccountingFields() []AccountingField {
	return []AccountingField{
		{JobID: "titan", JobName: "Project Titan", PhaseID: "infra", PhaseName: "Infrastructure", CategoryID: "cloud", CategoryName: "Cloud Services"},
		{JobID: "titan", JobName: "Project Titan", PhaseID: "dev", PhaseName: "Development", CategoryID: "software", CategoryName: "Software"},
		{JobID: "titan", JobName: "Project Titan", PhaseID: "dev", PhaseName: "Development", CategoryID: "ci-cd", CategoryName: "CI/CD"},
		{JobID: "comp", JobName: "Company-wide", PhaseID: "design", PhaseName: "Design", CategoryID: "software", CategoryName: "Software"},
		{JobID: "comp", JobName: "Company-wide", PhaseID: "comm", PhaseName: "Communications", CategoryID: "software", CategoryName: "Software"},
		{JobID: "hq", JobName: "HQ Maintenance", PhaseID: "q3", PhaseName: "Q3", CategoryID: "facilities", CategoryName: "Facilities"},
		{JobID: "hq", JobName: "HQ Maintenance", PhaseID: "q4", PhaseName: "Q4", CategoryID: "facilities", CategoryName: "Facilities"},
		{JobID: "team", JobName: "Team Building", PhaseID: "q3", PhaseName: "Q3", CategoryID: "morale", CategoryName: "Employee Morale"},
		{JobID: "client-sfo", JobName: "Client Visit SFO", PhaseID: "sales", PhaseName: "Sales", CategoryID: "travel", CategoryName: "Travel"},
		{JobID: "client-sfo", JobName: "Client Visit SFO", PhaseID: "sales", PhaseName: "Sales", CategoryID: "meals", CategoryName: "Client Meals"},
	}
}
