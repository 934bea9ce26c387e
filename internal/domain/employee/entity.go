package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryType enum
type SalaryType string

const (
	SalaryTypeMonthly SalaryType = "Monthly"
	SalaryTypeDaily   SalaryType = "Daily"
	SalaryTypeNone    SalaryType = ""
)

// StatusActive is the only employment status picked up by batch payroll runs.
const StatusActive = "Active"

// Default pay-rate factors applied when a profile leaves a multiplier unset (or zero).
var (
	DefaultOvertimeMultiplier        = decimal.RequireFromString("1.25")
	DefaultRegularHolidayMultiplier  = decimal.RequireFromString("2.0")
	DefaultSpecialHolidayMultiplier  = decimal.RequireFromString("1.3")
	DefaultRestDayOvertimeMultiplier = decimal.RequireFromString("1.3")
)

// PayProfile - The pay-relevant subset of an employee record.
// Read-only for payroll; edits never touch payrolls already saved.
type PayProfile struct {
	ID         string
	EmployeeID string // Business identifier shared with time logs and payrolls
	FirstName  string
	LastName   string
	Status     string
	IsArchived bool

	SalaryType  SalaryType
	BasicSalary decimal.Decimal // Monthly amount for Monthly, daily rate for Daily
	HourlyRate  *decimal.Decimal

	OvertimeMultiplier        *decimal.Decimal
	RegularHolidayMultiplier  *decimal.Decimal
	SpecialHolidayMultiplier  *decimal.Decimal
	RestDayOvertimeMultiplier *decimal.Decimal

	SSSDeduction        decimal.Decimal
	PhilhealthDeduction decimal.Decimal
	HDMFDeduction       decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p PayProfile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// IsActive reports whether the employee takes part in batch payroll runs.
func (p PayProfile) IsActive() bool {
	return !p.IsArchived && p.Status == StatusActive
}

// ExplicitHourlyRate returns the configured hourly rate override, if set and nonzero.
func (p PayProfile) ExplicitHourlyRate() (decimal.Decimal, bool) {
	if p.HourlyRate == nil || p.HourlyRate.IsZero() {
		return decimal.Zero, false
	}
	return *p.HourlyRate, true
}

func (p PayProfile) OvertimeRate() decimal.Decimal {
	return orDefault(p.OvertimeMultiplier, DefaultOvertimeMultiplier)
}

func (p PayProfile) RegularHolidayRate() decimal.Decimal {
	return orDefault(p.RegularHolidayMultiplier, DefaultRegularHolidayMultiplier)
}

func (p PayProfile) SpecialHolidayRate() decimal.Decimal {
	return orDefault(p.SpecialHolidayMultiplier, DefaultSpecialHolidayMultiplier)
}

func (p PayProfile) RestDayOvertimeRate() decimal.Decimal {
	return orDefault(p.RestDayOvertimeMultiplier, DefaultRestDayOvertimeMultiplier)
}

// StatutoryTotal is the sum of the three recurring deductions.
func (p PayProfile) StatutoryTotal() decimal.Decimal {
	return p.SSSDeduction.Add(p.PhilhealthDeduction).Add(p.HDMFDeduction)
}

func orDefault(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v == nil || v.IsZero() {
		return fallback
	}
	return *v
}

func ParseSalaryType(s string) (SalaryType, error) {
	switch SalaryType(s) {
	case SalaryTypeMonthly, SalaryTypeDaily, SalaryTypeNone:
		return SalaryType(s), nil
	}
	return "", ErrInvalidSalaryType
}
