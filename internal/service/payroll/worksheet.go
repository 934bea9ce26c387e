package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Worksheet holds the in-progress payslip of one admin session: the selected employee, the pay
// period, the editable work days and the live summary. Every edit recomputes the full summary.
// A failing step leaves the previous state untouched. Not safe for concurrent use.
type Worksheet struct {
	employeeRepo employee.EmployeeRepository
	timeLogRepo  timelog.TimeLogRepository
	payrollRepo  payroll.PayrollRepository
	workDays     *WorkDayCalculator
	calculator   *PayslipCalculator

	profile    *employee.PayProfile
	period     *payroll.Period
	days       []payroll.WorkDayEntry
	earnings   payroll.Earnings
	deductions payroll.Deductions
	summary    *payroll.PayslipSummary
}

func NewWorksheet(
	employeeRepo employee.EmployeeRepository,
	timeLogRepo timelog.TimeLogRepository,
	payrollRepo payroll.PayrollRepository,
) *Worksheet {
	return &Worksheet{
		employeeRepo: employeeRepo,
		timeLogRepo:  timeLogRepo,
		payrollRepo:  payrollRepo,
		workDays:     NewWorkDayCalculator(),
		calculator:   NewPayslipCalculator(),
	}
}

// SelectEmployee loads the pay profile, seeds the statutory deductions, zeroes the earnings and
// the ad hoc deductions, and clears any generated work days.
func (w *Worksheet) SelectEmployee(ctx context.Context, employeeID string) error {
	profile, err := w.employeeRepo.GetPayProfile(ctx, employeeID)
	if err != nil {
		return fmt.Errorf("failed to load pay profile: %w", err)
	}

	w.profile = &profile
	w.earnings = payroll.Earnings{}
	w.deductions = SeedDeductions(profile)
	w.days = nil
	w.summary = nil
	return nil
}

// SetPeriod changes the pay period. Work days of a different period are dropped.
func (w *Worksheet) SetPeriod(start, end time.Time) error {
	if start.After(end) {
		return payroll.ErrInvalidPeriod
	}
	if w.period != nil && w.period.Start.Equal(start) && w.period.End.Equal(end) {
		return nil
	}
	w.period = &payroll.Period{Start: start, End: end}
	w.days = nil
	w.summary = nil
	return nil
}

// Generate derives the work days of the period from time logs, discarding earlier edits.
func (w *Worksheet) Generate(ctx context.Context) error {
	if w.profile == nil {
		return payroll.ErrEmployeeNotSelected
	}
	if w.period == nil {
		return payroll.ErrInvalidPeriod
	}

	events, err := w.timeLogRepo.ListByEmployee(ctx, w.profile.EmployeeID, w.period.Start, w.period.End)
	if err != nil {
		return fmt.Errorf("failed to fetch time logs: %w", err)
	}

	w.days = w.workDays.Derive(events, *w.period)
	w.recompute()
	return nil
}

// UpdateWorkDay replaces the hour buckets, rest-day flag and notes of one day. The date is fixed.
func (w *Worksheet) UpdateWorkDay(index int, entry payroll.WorkDayEntry) error {
	if index < 0 || index >= len(w.days) {
		return payroll.ErrWorkDayIndexOutOfRange
	}
	if !entry.Date.Equal(w.days[index].Date) {
		return payroll.ErrWorkDayDateMismatch
	}

	var errs validator.ValidationErrors
	checkNonNegative(&errs, map[string]decimal.Decimal{
		"reg_hrs":      entry.RegHrs,
		"ot_hrs":       entry.OtHrs,
		"reg_hol_hrs":  entry.RegHolHrs,
		"spec_hol_hrs": entry.SpecHolHrs,
	})
	if err := errs.OrNil(); err != nil {
		return err
	}

	w.days[index] = entry
	w.recompute()
	return nil
}

func (w *Worksheet) SetEarnings(e payroll.Earnings) error {
	var errs validator.ValidationErrors
	checkNonNegative(&errs, map[string]decimal.Decimal{
		"adjustments":          e.Adjustments,
		"bonuses":              e.Bonuses,
		"thirteenth_month_pay": e.ThirteenthMonthPay,
		"other_earnings":       e.OtherEarnings,
	})
	if err := errs.OrNil(); err != nil {
		return err
	}

	w.earnings = e
	w.recompute()
	return nil
}

func (w *Worksheet) SetDeductions(d payroll.Deductions) error {
	var errs validator.ValidationErrors
	checkNonNegative(&errs, map[string]decimal.Decimal{
		"vale_cash_advance":    d.ValeCashAdvance,
		"loan_payments":        d.LoanPayments,
		"sss_deduction":        d.SSSDeduction,
		"philhealth_deduction": d.PhilhealthDeduction,
		"hdmf_deduction":       d.HDMFDeduction,
	})
	if err := errs.OrNil(); err != nil {
		return err
	}

	w.deductions = d
	w.recompute()
	return nil
}

// WorkDays returns a copy of the current work days.
func (w *Worksheet) WorkDays() []payroll.WorkDayEntry {
	days := make([]payroll.WorkDayEntry, len(w.days))
	copy(days, w.days)
	return days
}

func (w *Worksheet) Earnings() payroll.Earnings {
	return w.earnings
}

func (w *Worksheet) Deductions() payroll.Deductions {
	return w.deductions
}

// Summary returns the live totals; ok is false until work days exist for a selected employee.
func (w *Worksheet) Summary() (payroll.PayslipSummary, bool) {
	if w.summary == nil {
		return payroll.PayslipSummary{}, false
	}
	return *w.summary, true
}

// Commit upserts the payroll record of the selected employee and period. On failure the work days
// and summary are kept so the save can be retried; on success they are cleared.
func (w *Worksheet) Commit(ctx context.Context, payDateIssued time.Time) (payroll.Payroll, error) {
	if w.profile == nil {
		return payroll.Payroll{}, payroll.ErrEmployeeNotSelected
	}
	if len(w.days) == 0 {
		return payroll.Payroll{}, payroll.ErrNoWorkDays
	}
	if w.summary == nil || w.period == nil {
		return payroll.Payroll{}, payroll.ErrSummaryNotComputed
	}

	record := payroll.Payroll{
		EmployeeID:     w.profile.EmployeeID,
		PayPeriodStart: w.period.Start,
		PayPeriodEnd:   w.period.End,
		PayDateIssued:  payDateIssued,
		GrossPay:       w.summary.Gross,
		Deductions:     w.summary.TotalDeductions,
		NetPay:         w.summary.Net,
	}

	saved, err := w.payrollRepo.Upsert(ctx, record)
	if err != nil {
		return payroll.Payroll{}, fmt.Errorf("failed to save payroll: %w", err)
	}

	w.days = nil
	w.summary = nil
	return saved, nil
}

func (w *Worksheet) recompute() {
	if w.profile == nil || len(w.days) == 0 {
		w.summary = nil
		return
	}
	summary := w.calculator.Compute(*w.profile, payroll.PayslipInput{
		WorkDays:   w.days,
		Earnings:   w.earnings,
		Deductions: w.deductions,
	})
	w.summary = &summary
}

func checkNonNegative(errs *validator.ValidationErrors, values map[string]decimal.Decimal) {
	for field, v := range values {
		if !validator.IsNonNegative(v) {
			errs.Add(field, "must be non-negative")
		}
	}
}
