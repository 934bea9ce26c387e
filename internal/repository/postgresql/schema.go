package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
)

// schema creates the tables read and written by the payroll core. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		employee_id text NOT NULL UNIQUE,
		first_name text NOT NULL DEFAULT '',
		last_name text NOT NULL DEFAULT '',
		status text NOT NULL DEFAULT 'Active',
		is_archived boolean NOT NULL DEFAULT false,
		salary_type text CHECK (salary_type IN ('Monthly', 'Daily', '')),
		basic_salary numeric(12,2) NOT NULL DEFAULT 0 CHECK (basic_salary >= 0),
		hourly_rate numeric(12,2),
		overtime_multiplier numeric(6,2),
		regular_holiday_multiplier numeric(6,2),
		special_holiday_multiplier numeric(6,2),
		rest_day_overtime_multiplier numeric(6,2),
		sss_deduction numeric(12,2) NOT NULL DEFAULT 0 CHECK (sss_deduction >= 0),
		philhealth_deduction numeric(12,2) NOT NULL DEFAULT 0 CHECK (philhealth_deduction >= 0),
		hdmf_deduction numeric(12,2) NOT NULL DEFAULT 0 CHECK (hdmf_deduction >= 0),
		created_at timestamptz NOT NULL DEFAULT NOW(),
		updated_at timestamptz NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS time_logs (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		employee_id text NOT NULL,
		"timestamp" timestamp NOT NULL,
		type text NOT NULL CHECK (type IN ('Clock In', 'Clock Out')),
		method text NOT NULL CHECK (method IN ('QR', 'Manual', 'Forced Manual'))
	)`,
	`CREATE INDEX IF NOT EXISTS time_logs_employee_timestamp_idx ON time_logs (employee_id, "timestamp")`,
	`CREATE TABLE IF NOT EXISTS payrolls (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		employee_id text NOT NULL,
		pay_period_start date NOT NULL,
		pay_period_end date NOT NULL,
		pay_date_issued date NOT NULL,
		gross_pay numeric(12,2) NOT NULL,
		deductions numeric(12,2) NOT NULL,
		net_pay numeric(12,2) NOT NULL,
		created_at timestamptz NOT NULL DEFAULT NOW(),
		CHECK (pay_period_start <= pay_period_end),
		UNIQUE (employee_id, pay_period_start, pay_period_end)
	)`,
}

// Migrate creates any missing payroll tables.
func Migrate(ctx context.Context, db *database.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
