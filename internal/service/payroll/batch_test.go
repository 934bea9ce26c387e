package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
)

func TestEstimateBatchPayroll(t *testing.T) {
	period := payroll.Period{
		Start: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
	}
	issued := time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		profile   employee.PayProfile
		wantGross string
		wantNet   string
	}{
		{
			name:      "monthly pays basic salary",
			profile:   employee.PayProfile{SalaryType: employee.SalaryTypeMonthly, BasicSalary: dec("30000")},
			wantGross: "30000.00",
			wantNet:   "28300.00",
		},
		{
			name:      "daily pays 22 days",
			profile:   employee.PayProfile{SalaryType: employee.SalaryTypeDaily, BasicSalary: dec("800")},
			wantGross: "17600.00",
			wantNet:   "15900.00",
		},
		{
			name:      "unset salary type uses explicit hourly rate",
			profile:   employee.PayProfile{SalaryType: employee.SalaryTypeNone, BasicSalary: dec("1000"), HourlyRate: decPtr("100")},
			wantGross: "17600.00",
			wantNet:   "15900.00",
		},
		{
			name:      "unset salary type falls back to basic salary / 8",
			profile:   employee.PayProfile{SalaryType: employee.SalaryTypeNone, BasicSalary: dec("1000")},
			wantGross: "22000.00",
			wantNet:   "20300.00",
		},
		{
			name:      "monthly ignores hourly rate",
			profile:   employee.PayProfile{SalaryType: employee.SalaryTypeMonthly, BasicSalary: dec("20000"), HourlyRate: decPtr("500")},
			wantGross: "20000.00",
			wantNet:   "18300.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.profile
			p.EmployeeID = "EMP-001"
			p.SSSDeduction = dec("1000")
			p.PhilhealthDeduction = dec("500")
			p.HDMFDeduction = dec("200")

			rec := EstimateBatchPayroll(p, period, issued)

			assert.Equal(t, "EMP-001", rec.EmployeeID)
			assert.Equal(t, period.Start, rec.PayPeriodStart)
			assert.Equal(t, period.End, rec.PayPeriodEnd)
			assert.Equal(t, issued, rec.PayDateIssued)
			assertDecimal(t, tt.wantGross, rec.GrossPay)
			assertDecimal(t, "1700.00", rec.Deductions)
			assertDecimal(t, tt.wantNet, rec.NetPay)
		})
	}
}

func TestEstimateBatchPayroll_NegativeNet(t *testing.T) {
	p := employee.PayProfile{
		EmployeeID:   "EMP-002",
		SalaryType:   employee.SalaryTypeMonthly,
		BasicSalary:  dec("1000"),
		SSSDeduction: dec("1500"),
	}
	rec := EstimateBatchPayroll(p, payroll.Period{Start: monday, End: monday}, monday)
	assertDecimal(t, "-500.00", rec.NetPay)
}
