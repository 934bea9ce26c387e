package payroll

import "context"

// PayrollRepository persists finalized payroll records.
// Every write is keyed by (employee_id, pay_period_start, pay_period_end): a repeat write for the
// same key overwrites the prior record, last write wins.
type PayrollRepository interface {
	Upsert(ctx context.Context, record Payroll) (Payroll, error)

	// UpsertMany writes all records or none of them.
	UpsertMany(ctx context.Context, records []Payroll) ([]Payroll, error)

	// List returns records with pay_period_start >= filter start and pay_period_end <= filter end,
	// newest period first.
	List(ctx context.Context, filter PayrollFilter) ([]Payroll, error)

	GetByKey(ctx context.Context, key Key) (Payroll, error)
}
