package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Flat full-attendance assumption of the batch estimate
var batchWorkingDays = decimal.NewFromInt(22)

// EstimateBatchPayroll builds the approximate payroll record of one employee for a batch run.
// Only the statutory deductions apply; ad hoc deductions need the detailed flow.
func EstimateBatchPayroll(profile employee.PayProfile, period payroll.Period, issued time.Time) payroll.Payroll {
	var gross decimal.Decimal
	switch profile.SalaryType {
	case employee.SalaryTypeMonthly:
		gross = profile.BasicSalary
	case employee.SalaryTypeDaily:
		gross = profile.BasicSalary.Mul(batchWorkingDays)
	default:
		hourly, ok := profile.ExplicitHourlyRate()
		if !ok {
			hourly = profile.BasicSalary.Div(hoursPerDay)
		}
		gross = hourly.Mul(batchWorkingDays).Mul(hoursPerDay)
	}

	gross = gross.Round(2)
	deductions := profile.StatutoryTotal().Round(2)

	return payroll.Payroll{
		EmployeeID:     profile.EmployeeID,
		PayPeriodStart: period.Start,
		PayPeriodEnd:   period.End,
		PayDateIssued:  issued,
		GrossPay:       gross,
		Deductions:     deductions,
		NetPay:         gross.Sub(deductions),
	}
}
