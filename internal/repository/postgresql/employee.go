package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payProfileRow struct {
	ID                        string              `db:"id"`
	EmployeeID                string              `db:"employee_id"`
	FirstName                 string              `db:"first_name"`
	LastName                  string              `db:"last_name"`
	Status                    string              `db:"status"`
	IsArchived                bool                `db:"is_archived"`
	SalaryType                *string             `db:"salary_type"`
	BasicSalary               decimal.Decimal     `db:"basic_salary"`
	HourlyRate                decimal.NullDecimal `db:"hourly_rate"`
	OvertimeMultiplier        decimal.NullDecimal `db:"overtime_multiplier"`
	RegularHolidayMultiplier  decimal.NullDecimal `db:"regular_holiday_multiplier"`
	SpecialHolidayMultiplier  decimal.NullDecimal `db:"special_holiday_multiplier"`
	RestDayOvertimeMultiplier decimal.NullDecimal `db:"rest_day_overtime_multiplier"`
	SSSDeduction              decimal.Decimal     `db:"sss_deduction"`
	PhilhealthDeduction       decimal.Decimal     `db:"philhealth_deduction"`
	HDMFDeduction             decimal.Decimal     `db:"hdmf_deduction"`
	CreatedAt                 time.Time           `db:"created_at"`
	UpdatedAt                 time.Time           `db:"updated_at"`
}

func toPayProfileRow(p employee.PayProfile) payProfileRow {
	var salaryType *string
	if p.SalaryType != employee.SalaryTypeNone {
		s := string(p.SalaryType)
		salaryType = &s
	}
	return payProfileRow{
		ID:                        p.ID,
		EmployeeID:                p.EmployeeID,
		FirstName:                 p.FirstName,
		LastName:                  p.LastName,
		Status:                    p.Status,
		IsArchived:                p.IsArchived,
		SalaryType:                salaryType,
		BasicSalary:               p.BasicSalary,
		HourlyRate:                toNullDecimal(p.HourlyRate),
		OvertimeMultiplier:        toNullDecimal(p.OvertimeMultiplier),
		RegularHolidayMultiplier:  toNullDecimal(p.RegularHolidayMultiplier),
		SpecialHolidayMultiplier:  toNullDecimal(p.SpecialHolidayMultiplier),
		RestDayOvertimeMultiplier: toNullDecimal(p.RestDayOvertimeMultiplier),
		SSSDeduction:              p.SSSDeduction,
		PhilhealthDeduction:       p.PhilhealthDeduction,
		HDMFDeduction:             p.HDMFDeduction,
		CreatedAt:                 p.CreatedAt,
		UpdatedAt:                 p.UpdatedAt,
	}
}

func fromPayProfileRow(r payProfileRow) (employee.PayProfile, error) {
	salaryType := employee.SalaryTypeNone
	if r.SalaryType != nil {
		st, err := employee.ParseSalaryType(*r.SalaryType)
		if err != nil {
			return employee.PayProfile{}, fmt.Errorf("employee %s: %w", r.EmployeeID, err)
		}
		salaryType = st
	}
	return employee.PayProfile{
		ID:                        r.ID,
		EmployeeID:                r.EmployeeID,
		FirstName:                 r.FirstName,
		LastName:                  r.LastName,
		Status:                    r.Status,
		IsArchived:                r.IsArchived,
		SalaryType:                salaryType,
		BasicSalary:               r.BasicSalary,
		HourlyRate:                fromNullDecimal(r.HourlyRate),
		OvertimeMultiplier:        fromNullDecimal(r.OvertimeMultiplier),
		RegularHolidayMultiplier:  fromNullDecimal(r.RegularHolidayMultiplier),
		SpecialHolidayMultiplier:  fromNullDecimal(r.SpecialHolidayMultiplier),
		RestDayOvertimeMultiplier: fromNullDecimal(r.RestDayOvertimeMultiplier),
		SSSDeduction:              r.SSSDeduction,
		PhilhealthDeduction:       r.PhilhealthDeduction,
		HDMFDeduction:             r.HDMFDeduction,
		CreatedAt:                 r.CreatedAt,
		UpdatedAt:                 r.UpdatedAt,
	}, nil
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const payProfileColumns = `
	id, employee_id, first_name, last_name, status, is_archived, salary_type, basic_salary, hourly_rate,
	overtime_multiplier, regular_holiday_multiplier, special_holiday_multiplier, rest_day_overtime_multiplier,
	sss_deduction, philhealth_deduction, hdmf_deduction, created_at, updated_at
`

func (e *employeeRepositoryImpl) GetPayProfile(ctx context.Context, employeeID string) (employee.PayProfile, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + payProfileColumns + ` FROM employees WHERE employee_id = $1`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return employee.PayProfile{}, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[payProfileRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.PayProfile{}, employee.ErrEmployeeNotFound
		}
		return employee.PayProfile{}, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}
	return fromPayProfileRow(row)
}

func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.PayProfile, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + payProfileColumns + `
		FROM employees
		WHERE is_archived = false AND status = $1
		ORDER BY employee_id ASC
	`

	rows, err := q.Query(ctx, query, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return collectPayProfiles(rows)
}

func (e *employeeRepositoryImpl) ListByIDs(ctx context.Context, employeeIDs []string) ([]employee.PayProfile, error) {
	if len(employeeIDs) == 0 {
		return []employee.PayProfile{}, nil
	}

	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + payProfileColumns + `
		FROM employees
		WHERE employee_id = ANY($1)
		ORDER BY employee_id ASC
	`

	rows, err := q.Query(ctx, query, employeeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return collectPayProfiles(rows)
}

func collectPayProfiles(rows pgx.Rows) ([]employee.PayProfile, error) {
	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[payProfileRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan employees: %w", err)
	}

	profiles := make([]employee.PayProfile, 0, len(records))
	for _, rec := range records {
		p, err := fromPayProfileRow(rec)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
