package payroll

import "errors"

var (
	ErrPayrollNotFound        = errors.New("payroll record not found")
	ErrInvalidPeriod          = errors.New("invalid payroll period")
	ErrEmployeeNotSelected    = errors.New("an employee must be selected")
	ErrNoWorkDays             = errors.New("at least one work day is required")
	ErrSummaryNotComputed     = errors.New("payslip summary has not been computed")
	ErrWorkDayIndexOutOfRange = errors.New("work day index out of range")
	ErrWorkDayDateMismatch    = errors.New("work day date cannot be changed")
)
