package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// dailyProfile earns 800 a day, so 100 an hour.
func dailyProfile() employee.PayProfile {
	return employee.PayProfile{
		EmployeeID:          "EMP-001",
		FirstName:           "Maria",
		LastName:            "Santos",
		Status:              employee.StatusActive,
		SalaryType:          employee.SalaryTypeDaily,
		BasicSalary:         dec("800"),
		SSSDeduction:        dec("100"),
		PhilhealthDeduction: dec("50"),
		HDMFDeduction:       dec("50"),
	}
}

func workDay(date time.Time, reg, ot, regHol, specHol string, restDay bool) payroll.WorkDayEntry {
	return payroll.WorkDayEntry{
		Date:       date,
		RegHrs:     dec(reg),
		OtHrs:      dec(ot),
		RegHolHrs:  dec(regHol),
		SpecHolHrs: dec(specHol),
		IsRestDay:  restDay,
	}
}

func TestPayslipCalculator_DailyRate(t *testing.T) {
	c := NewPayslipCalculator()

	monthly := employee.PayProfile{SalaryType: employee.SalaryTypeMonthly, BasicSalary: dec("21700")}
	assertDecimal(t, "1001.38", c.DailyRate(monthly))

	daily := employee.PayProfile{SalaryType: employee.SalaryTypeDaily, BasicSalary: dec("1000")}
	assert.True(t, dec("1000").Equal(c.DailyRate(daily)))

	unset := employee.PayProfile{SalaryType: employee.SalaryTypeNone, BasicSalary: dec("21670")}
	assertDecimal(t, "1000.00", c.DailyRate(unset))
}

func TestPayslipCalculator_HourlyRate(t *testing.T) {
	c := NewPayslipCalculator()

	p := employee.PayProfile{SalaryType: employee.SalaryTypeDaily, BasicSalary: dec("1000")}
	assertDecimal(t, "125.00", c.HourlyRate(p))

	p.HourlyRate = decPtr("150")
	assertDecimal(t, "150.00", c.HourlyRate(p))

	p.HourlyRate = decPtr("0")
	assertDecimal(t, "125.00", c.HourlyRate(p), "zero hourly rate falls back to daily rate / 8")
}

func TestPayslipCalculator_DayGross(t *testing.T) {
	c := NewPayslipCalculator()
	p := dailyProfile()

	tests := []struct {
		name string
		day  payroll.WorkDayEntry
		want string
	}{
		{"regular hours", workDay(monday, "8", "0", "0", "0", false), "800.00"},
		{"overtime at default 1.25", workDay(monday, "8", "2", "0", "0", false), "1050.00"},
		{"regular holiday premium only", workDay(monday, "0", "0", "8", "0", false), "6400.00"},
		{"special holiday premium only", workDay(monday, "0", "0", "0", "8", false), "1920.00"},
		{"rest day work", workDay(monday, "8", "0", "0", "0", true), "1040.00"},
		{"rest day overtime", workDay(monday, "8", "2", "0", "0", true), "1350.00"},
		{"regular holiday on rest day", workDay(monday, "0", "0", "4", "0", true), "4160.00"},
		{"everything stacked", workDay(monday, "8", "0", "8", "0", true), "9360.00"},
		{"empty day", workDay(monday, "0", "0", "0", "0", true), "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, c.DayGross(p, tt.day))
		})
	}
}

func TestPayslipCalculator_CustomMultipliers(t *testing.T) {
	c := NewPayslipCalculator()
	p := dailyProfile()
	p.OvertimeMultiplier = decPtr("1.5")
	p.RestDayOvertimeMultiplier = decPtr("1.5")

	assertDecimal(t, "1100.00", c.DayGross(p, workDay(monday, "8", "2", "0", "0", false)))
	// 800 + 300 + 10h * 100 * 0.5
	assertDecimal(t, "1600.00", c.DayGross(p, workDay(monday, "8", "2", "0", "0", true)))

	p.OvertimeMultiplier = decPtr("0")
	assertDecimal(t, "1050.00", c.DayGross(p, workDay(monday, "8", "2", "0", "0", false)), "zero multiplier falls back to default")
}

func TestPayslipCalculator_Compute(t *testing.T) {
	c := NewPayslipCalculator()
	p := dailyProfile()

	input := payroll.PayslipInput{
		WorkDays: []payroll.WorkDayEntry{
			workDay(monday, "8", "2", "0", "0", false),
			workDay(monday.AddDate(0, 0, 1), "8", "0", "0", "0", false),
		},
		Earnings: payroll.Earnings{Bonuses: dec("100")},
		Deductions: payroll.Deductions{
			ValeCashAdvance:     dec("200"),
			SSSDeduction:        p.SSSDeduction,
			PhilhealthDeduction: p.PhilhealthDeduction,
			HDMFDeduction:       p.HDMFDeduction,
		},
	}

	summary := c.Compute(p, input)
	assertDecimal(t, "1950.00", summary.Gross)
	assertDecimal(t, "400.00", summary.TotalDeductions)
	assertDecimal(t, "1550.00", summary.Net)

	again := c.Compute(p, input)
	assert.Equal(t, summary, again, "recompute with identical inputs is identical")
}

func TestPayslipCalculator_Compute_AllEarningsAndDeductions(t *testing.T) {
	c := NewPayslipCalculator()
	p := dailyProfile()

	summary := c.Compute(p, payroll.PayslipInput{
		WorkDays: []payroll.WorkDayEntry{workDay(monday, "1", "0", "0", "0", false)},
		Earnings: payroll.Earnings{
			Adjustments:        dec("10.10"),
			Bonuses:            dec("20.20"),
			ThirteenthMonthPay: dec("30.30"),
			OtherEarnings:      dec("40.40"),
		},
		Deductions: payroll.Deductions{
			ValeCashAdvance:     dec("1"),
			LoanPayments:        dec("2"),
			SSSDeduction:        dec("3"),
			PhilhealthDeduction: dec("4"),
			HDMFDeduction:       dec("5"),
		},
	})

	assertDecimal(t, "201.00", summary.Gross)
	assertDecimal(t, "15.00", summary.TotalDeductions)
	assertDecimal(t, "186.00", summary.Net)
}

func TestPayslipCalculator_Compute_RoundsToCents(t *testing.T) {
	c := NewPayslipCalculator()
	p := employee.PayProfile{SalaryType: employee.SalaryTypeMonthly, BasicSalary: dec("21700")}

	summary := c.Compute(p, payroll.PayslipInput{
		WorkDays: []payroll.WorkDayEntry{workDay(monday, "8", "0", "0", "0", false)},
	})
	// 8h * (21700 / 21.67 / 8)
	assertDecimal(t, "1001.38", summary.Gross)
	assert.True(t, summary.Gross.Equal(summary.Gross.Round(2)))
}

func TestPayslipCalculator_Compute_NetIsRoundedGrossLessRoundedDeductions(t *testing.T) {
	c := NewPayslipCalculator()
	summary := c.Compute(dailyProfile(), payroll.PayslipInput{
		Earnings:   payroll.Earnings{Bonuses: dec("100.005")},
		Deductions: payroll.Deductions{SSSDeduction: dec("0.004")},
	})

	assertDecimal(t, "100.01", summary.Gross)
	assertDecimal(t, "0.00", summary.TotalDeductions)
	assertDecimal(t, "100.01", summary.Net)
	assert.True(t, summary.Net.Equal(summary.Gross.Sub(summary.TotalDeductions)))
}

func TestPayslipCalculator_Compute_NegativeNetAllowed(t *testing.T) {
	c := NewPayslipCalculator()
	summary := c.Compute(dailyProfile(), payroll.PayslipInput{
		WorkDays:   []payroll.WorkDayEntry{workDay(monday, "1", "0", "0", "0", false)},
		Deductions: payroll.Deductions{LoanPayments: dec("500")},
	})

	assertDecimal(t, "100.00", summary.Gross)
	assertDecimal(t, "-400.00", summary.Net)
}

func TestSeedDeductions(t *testing.T) {
	d := SeedDeductions(dailyProfile())
	assertDecimal(t, "100.00", d.SSSDeduction)
	assertDecimal(t, "50.00", d.PhilhealthDeduction)
	assertDecimal(t, "50.00", d.HDMFDeduction)
	assert.True(t, d.ValeCashAdvance.IsZero())
	assert.True(t, d.LoanPayments.IsZero())
}
