package dto

// DeductionResult reports the outcome of a best-effort stock deduction.
// Success is false only when the usage-rule lookup itself failed and no
// deductions were attempted. Insufficiency never fails the deduction; the
// affected item names are carried as data for the caller to surface.
type DeductionResult struct {
	Success           bool     `json:"success"`
	InsufficientItems []string `json:"insufficientItems"`
}
