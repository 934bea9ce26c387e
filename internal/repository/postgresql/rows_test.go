package postgresql

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/timelog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogRowRoundTrip(t *testing.T) {
	in := timelog.TimeLog{
		ID:         "0190a8b4-0000-7000-8000-000000000001",
		EmployeeID: "EMP-001",
		Timestamp:  time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC),
		Type:       timelog.EventTypeClockIn,
		Method:     timelog.CaptureMethodForcedManual,
	}

	row := toTimeLogRow(in)
	assert.Equal(t, "Clock In", row.Type)
	assert.Equal(t, "Forced Manual", row.Method)

	out, err := fromTimeLogRow(row)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestFromTimeLogRowRejectsUnknownValues(t *testing.T) {
	_, err := fromTimeLogRow(timeLogRow{Type: "Lunch", Method: "QR"})
	assert.ErrorIs(t, err, timelog.ErrInvalidEventType)

	_, err = fromTimeLogRow(timeLogRow{Type: "Clock Out", Method: "NFC"})
	assert.ErrorIs(t, err, timelog.ErrInvalidCaptureMethod)
}

func TestPayProfileRowRoundTrip(t *testing.T) {
	hourly := decimal.RequireFromString("150.50")
	ot := decimal.RequireFromString("1.5")
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		in   employee.PayProfile
	}{
		{
			name: "all fields",
			in: employee.PayProfile{
				ID:                  "0190a8b4-0000-7000-8000-000000000002",
				EmployeeID:          "EMP-001",
				FirstName:           "Maria",
				LastName:            "Santos",
				Status:              employee.StatusActive,
				SalaryType:          employee.SalaryTypeDaily,
				BasicSalary:         decimal.RequireFromString("800"),
				HourlyRate:          &hourly,
				OvertimeMultiplier:  &ot,
				SSSDeduction:        decimal.RequireFromString("100"),
				PhilhealthDeduction: decimal.RequireFromString("50"),
				HDMFDeduction:       decimal.RequireFromString("50"),
				CreatedAt:           created,
				UpdatedAt:           created,
			},
		},
		{
			name: "unset salary type and optional rates",
			in: employee.PayProfile{
				EmployeeID:  "EMP-002",
				Status:      "Resigned",
				IsArchived:  true,
				SalaryType:  employee.SalaryTypeNone,
				BasicSalary: decimal.Zero,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := toPayProfileRow(tt.in)
			out, err := fromPayProfileRow(row)
			require.NoError(t, err)
			assert.Equal(t, tt.in, out)
		})
	}

	row := toPayProfileRow(tests[1].in)
	assert.Nil(t, row.SalaryType, "unset salary type is stored as NULL")
	assert.False(t, row.HourlyRate.Valid)
}

func TestFromPayProfileRowRejectsUnknownSalaryType(t *testing.T) {
	weekly := "Weekly"
	_, err := fromPayProfileRow(payProfileRow{EmployeeID: "EMP-001", SalaryType: &weekly})
	assert.ErrorIs(t, err, employee.ErrInvalidSalaryType)
}

func TestPayrollRowRoundTrip(t *testing.T) {
	in := payroll.Payroll{
		ID:             "0190a8b4-0000-7000-8000-000000000003",
		EmployeeID:     "EMP-001",
		PayPeriodStart: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		PayPeriodEnd:   time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
		PayDateIssued:  time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC),
		GrossPay:       decimal.RequireFromString("15000.00"),
		Deductions:     decimal.RequireFromString("1700.00"),
		NetPay:         decimal.RequireFromString("13300.00"),
		CreatedAt:      time.Date(2024, 5, 16, 9, 30, 0, 0, time.UTC),
	}

	assert.Equal(t, in, fromPayrollRow(toPayrollRow(in)))
}

func TestToPayrollRowRoundsAmounts(t *testing.T) {
	row := toPayrollRow(payroll.Payroll{
		GrossPay:   decimal.RequireFromString("1001.3844"),
		Deductions: decimal.RequireFromString("0.005"),
		NetPay:     decimal.RequireFromString("1001.3794"),
	})
	assert.Equal(t, "1001.38", row.GrossPay.String())
	assert.Equal(t, "0.01", row.Deductions.String())
	assert.Equal(t, "1001.38", row.NetPay.String())
}
