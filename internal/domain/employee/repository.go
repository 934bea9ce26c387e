package employee

import "context"

type EmployeeRepository interface {
	// GetPayProfile looks the employee up by business identifier (employee_id).
	GetPayProfile(ctx context.Context, employeeID string) (PayProfile, error)
	// ListActive returns non-archived employees whose status is Active.
	ListActive(ctx context.Context) ([]PayProfile, error)
	// ListByIDs returns the profiles found for the given business identifiers; unknown ids are skipped.
	ListByIDs(ctx context.Context, employeeIDs []string) ([]PayProfile, error)
}
