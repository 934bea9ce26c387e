package payroll

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var (
	// Average working days in a month
	workingDaysPerMonth   = decimal.RequireFromString("21.67")
	hoursPerDay           = decimal.NewFromInt(8)
	restDayHolidayPremium = decimal.RequireFromString("0.30")
)

type PayslipCalculator struct {
}

func NewPayslipCalculator() *PayslipCalculator {
	return &PayslipCalculator{}
}

// DailyRate is the basic salary for daily-paid employees, otherwise the monthly salary spread
// over an average month.
func (c *PayslipCalculator) DailyRate(profile employee.PayProfile) decimal.Decimal {
	if profile.SalaryType == employee.SalaryTypeDaily {
		return profile.BasicSalary
	}
	return profile.BasicSalary.Div(workingDaysPerMonth)
}

func (c *PayslipCalculator) HourlyRate(profile employee.PayProfile) decimal.Decimal {
	if rate, ok := profile.ExplicitHourlyRate(); ok {
		return rate
	}
	return c.DailyRate(profile).Div(hoursPerDay)
}

// DayGross returns the pay earned on one work day. Holiday hours only earn the premium above the
// regular rate, and a regular holiday on a rest day earns an extra 30% of the daily rate per hour.
func (c *PayslipCalculator) DayGross(profile employee.PayProfile, day payroll.WorkDayEntry) decimal.Decimal {
	dailyRate := c.DailyRate(profile)
	hourlyRate := c.HourlyRate(profile)
	one := decimal.NewFromInt(1)

	gross := day.RegHrs.Mul(hourlyRate).
		Add(day.OtHrs.Mul(hourlyRate).Mul(profile.OvertimeRate())).
		Add(day.RegHolHrs.Mul(dailyRate).Mul(profile.RegularHolidayRate().Sub(one))).
		Add(day.SpecHolHrs.Mul(dailyRate).Mul(profile.SpecialHolidayRate().Sub(one)))

	if day.IsRestDay && day.RegHolHrs.IsPositive() {
		gross = gross.Add(day.RegHolHrs.Mul(dailyRate).Mul(restDayHolidayPremium))
	}
	if day.IsRestDay && (day.RegHrs.IsPositive() || day.OtHrs.IsPositive()) {
		gross = gross.Add(day.RegHrs.Add(day.OtHrs).Mul(hourlyRate).Mul(profile.RestDayOvertimeRate().Sub(one)))
	}
	return gross
}

// Compute recomputes the full payslip summary from scratch. Net pay may be negative.
func (c *PayslipCalculator) Compute(profile employee.PayProfile, input payroll.PayslipInput) payroll.PayslipSummary {
	gross := decimal.Zero
	for _, day := range input.WorkDays {
		gross = gross.Add(c.DayGross(profile, day))
	}
	gross = gross.Add(input.Earnings.Total()).Round(2)
	deductions := input.Deductions.Total().Round(2)

	return payroll.PayslipSummary{
		Gross:           gross,
		TotalDeductions: deductions,
		Net:             gross.Sub(deductions),
	}
}

// SeedDeductions returns the payslip deductions a freshly selected employee starts with.
func SeedDeductions(profile employee.PayProfile) payroll.Deductions {
	return payroll.Deductions{
		ValeCashAdvance:     decimal.Zero,
		LoanPayments:        decimal.Zero,
		SSSDeduction:        profile.SSSDeduction,
		PhilhealthDeduction: profile.PhilhealthDeduction,
		HDMFDeduction:       profile.HDMFDeduction,
	}
}
