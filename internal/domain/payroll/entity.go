package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// Period - Inclusive calendar date range [Start, End]. Both dates are midnight UTC.
type Period struct {
	Start time.Time
	End   time.Time
}

// Days returns every calendar date of the period in ascending order.
func (p Period) Days() []time.Time {
	var days []time.Time
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (p Period) String() string {
	return p.Start.Format(DateLayout) + " to " + p.End.Format(DateLayout)
}

// Key - Uniqueness tuple of a persisted payroll record.
type Key struct {
	EmployeeID     string
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
}

// Payroll - Finalized payslip summary, one per employee per pay period.
type Payroll struct {
	ID             string
	EmployeeID     string
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	PayDateIssued  time.Time
	GrossPay       decimal.Decimal
	Deductions     decimal.Decimal
	NetPay         decimal.Decimal
	CreatedAt      time.Time
}

func (p Payroll) Key() Key {
	return Key{
		EmployeeID:     p.EmployeeID,
		PayPeriodStart: p.PayPeriodStart,
		PayPeriodEnd:   p.PayPeriodEnd,
	}
}

// WorkDayEntry - Hour buckets of one calendar day. Derived from time logs, then hand-edited.
// The four buckets are independent and additive.
type WorkDayEntry struct {
	Date       time.Time
	RegHrs     decimal.Decimal
	OtHrs      decimal.Decimal
	RegHolHrs  decimal.Decimal
	SpecHolHrs decimal.Decimal
	IsRestDay  bool
	Notes      string
}

// Earnings - Ad hoc additions to gross pay.
type Earnings struct {
	Adjustments        decimal.Decimal
	Bonuses            decimal.Decimal
	ThirteenthMonthPay decimal.Decimal
	OtherEarnings      decimal.Decimal
}

func (e Earnings) Total() decimal.Decimal {
	return e.Adjustments.Add(e.Bonuses).Add(e.ThirteenthMonthPay).Add(e.OtherEarnings)
}

// Deductions - Payslip deductions. The statutory three are seeded from the pay profile.
type Deductions struct {
	ValeCashAdvance     decimal.Decimal
	LoanPayments        decimal.Decimal
	SSSDeduction        decimal.Decimal
	PhilhealthDeduction decimal.Decimal
	HDMFDeduction       decimal.Decimal
}

func (d Deductions) Total() decimal.Decimal {
	return d.ValeCashAdvance.Add(d.LoanPayments).Add(d.SSSDeduction).Add(d.PhilhealthDeduction).Add(d.HDMFDeduction)
}

// PayslipSummary - Ephemeral totals, always rounded to 2 decimal places.
type PayslipSummary struct {
	Gross           decimal.Decimal
	TotalDeductions decimal.Decimal
	Net             decimal.Decimal
}
