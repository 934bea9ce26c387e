package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrollRow struct {
	ID             string          `db:"id"`
	EmployeeID     string          `db:"employee_id"`
	PayPeriodStart time.Time       `db:"pay_period_start"`
	PayPeriodEnd   time.Time       `db:"pay_period_end"`
	PayDateIssued  time.Time       `db:"pay_date_issued"`
	GrossPay       decimal.Decimal `db:"gross_pay"`
	Deductions     decimal.Decimal `db:"deductions"`
	NetPay         decimal.Decimal `db:"net_pay"`
	CreatedAt      time.Time       `db:"created_at"`
}

func toPayrollRow(p payroll.Payroll) payrollRow {
	return payrollRow{
		ID:             p.ID,
		EmployeeID:     p.EmployeeID,
		PayPeriodStart: p.PayPeriodStart,
		PayPeriodEnd:   p.PayPeriodEnd,
		PayDateIssued:  p.PayDateIssued,
		GrossPay:       p.GrossPay.Round(2),
		Deductions:     p.Deductions.Round(2),
		NetPay:         p.NetPay.Round(2),
		CreatedAt:      p.CreatedAt,
	}
}

func fromPayrollRow(r payrollRow) payroll.Payroll {
	return payroll.Payroll{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		PayPeriodStart: r.PayPeriodStart,
		PayPeriodEnd:   r.PayPeriodEnd,
		PayDateIssued:  r.PayDateIssued,
		GrossPay:       r.GrossPay,
		Deductions:     r.Deductions,
		NetPay:         r.NetPay,
		CreatedAt:      r.CreatedAt,
	}
}

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `id, employee_id, pay_period_start, pay_period_end, pay_date_issued, gross_pay, deductions, net_pay, created_at`

func (r *payrollRepository) Upsert(ctx context.Context, record payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrolls (
			employee_id, pay_period_start, pay_period_end, pay_date_issued, gross_pay, deductions, net_pay
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, pay_period_start, pay_period_end) DO UPDATE SET
			pay_date_issued = EXCLUDED.pay_date_issued,
			gross_pay = EXCLUDED.gross_pay,
			deductions = EXCLUDED.deductions,
			net_pay = EXCLUDED.net_pay
		RETURNING ` + payrollColumns

	row := toPayrollRow(record)
	rows, err := q.Query(ctx, query,
		row.EmployeeID, row.PayPeriodStart, row.PayPeriodEnd, row.PayDateIssued,
		row.GrossPay, row.Deductions, row.NetPay,
	)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to upsert payroll: %w", err)
	}

	saved, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[payrollRow])
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to upsert payroll: %w", err)
	}
	return fromPayrollRow(saved), nil
}

// UpsertMany writes every record in one transaction.
func (r *payrollRepository) UpsertMany(ctx context.Context, records []payroll.Payroll) ([]payroll.Payroll, error) {
	saved := make([]payroll.Payroll, 0, len(records))

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		for _, rec := range records {
			s, err := r.Upsert(txCtx, rec)
			if err != nil {
				return fmt.Errorf("employee %s: %w", rec.EmployeeID, err)
			}
			saved = append(saved, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + `
		FROM payrolls
		WHERE pay_period_start >= $1 AND pay_period_end <= $2
	`
	args := []interface{}{filter.PayPeriodStart, filter.PayPeriodEnd}

	if filter.EmployeeID != nil {
		query += ` AND employee_id = $3`
		args = append(args, *filter.EmployeeID)
	}
	query += ` ORDER BY pay_period_start DESC, employee_id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payrolls: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[payrollRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan payrolls: %w", err)
	}

	result := make([]payroll.Payroll, 0, len(records))
	for _, rec := range records {
		result = append(result, fromPayrollRow(rec))
	}
	return result, nil
}

func (r *payrollRepository) GetByKey(ctx context.Context, key payroll.Key) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollColumns + `
		FROM payrolls
		WHERE employee_id = $1 AND pay_period_start = $2 AND pay_period_end = $3
	`

	rows, err := q.Query(ctx, query, key.EmployeeID, key.PayPeriodStart, key.PayPeriodEnd)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	rec, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[payrollRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}
	return fromPayrollRow(rec), nil
}
