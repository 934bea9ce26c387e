package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
)

var errEmployeeIDRequired = errors.New("payroll record has no employee_id")

type payrollRepository struct {
	store *Store
}

func NewPayrollRepository(store *Store) payroll.PayrollRepository {
	return &payrollRepository{store: store}
}

func (r *payrollRepository) Upsert(ctx context.Context, record payroll.Payroll) (payroll.Payroll, error) {
	saved, err := r.UpsertMany(ctx, []payroll.Payroll{record})
	if err != nil {
		return payroll.Payroll{}, err
	}
	return saved[0], nil
}

// UpsertMany stages every record before touching the store, so a rejected record leaves the
// store unchanged.
func (r *payrollRepository) UpsertMany(ctx context.Context, records []payroll.Payroll) ([]payroll.Payroll, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	staged := make(map[string]payroll.Payroll, len(records))
	saved := make([]payroll.Payroll, 0, len(records))
	for i, rec := range records {
		if rec.EmployeeID == "" {
			return nil, fmt.Errorf("record %d: %w", i, errEmployeeIDRequired)
		}
		if rec.PayPeriodStart.After(rec.PayPeriodEnd) {
			return nil, fmt.Errorf("record %d: %w", i, payroll.ErrInvalidPeriod)
		}

		key := payrollKey(rec.Key())
		existing, ok := staged[key]
		if !ok {
			existing, ok = r.store.payrolls[key]
		}
		if ok {
			rec.ID = existing.ID
			rec.CreatedAt = existing.CreatedAt
		} else {
			rec.ID = newID()
			rec.CreatedAt = now
		}
		rec.GrossPay = rec.GrossPay.Round(2)
		rec.Deductions = rec.Deductions.Round(2)
		rec.NetPay = rec.NetPay.Round(2)

		staged[key] = rec
		saved = append(saved, rec)
	}

	for key, rec := range staged {
		r.store.payrolls[key] = rec
	}
	return saved, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	records := []payroll.Payroll{}
	for _, rec := range r.store.payrolls {
		if rec.PayPeriodStart.Before(filter.PayPeriodStart) || rec.PayPeriodEnd.After(filter.PayPeriodEnd) {
			continue
		}
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].PayPeriodStart.Equal(records[j].PayPeriodStart) {
			return records[i].PayPeriodStart.After(records[j].PayPeriodStart)
		}
		return records[i].EmployeeID < records[j].EmployeeID
	})
	return records, nil
}

func (r *payrollRepository) GetByKey(ctx context.Context, key payroll.Key) (payroll.Payroll, error) {
	if err := ctx.Err(); err != nil {
		return payroll.Payroll{}, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rec, ok := r.store.payrolls[payrollKey(key)]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return rec, nil
}
