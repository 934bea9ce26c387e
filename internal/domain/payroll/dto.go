package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== WORK DAY DTOs ==========

type GenerateWorkDaysRequest struct {
	EmployeeID     string `json:"employee_id"`
	PayPeriodStart string `json:"pay_period_start"`
	PayPeriodEnd   string `json:"pay_period_end"`
}

// Validate checks the request and returns the parsed pay period.
func (r *GenerateWorkDaysRequest) Validate() (Period, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	}
	start, end := validator.DateRange(&errs, "pay_period_start", r.PayPeriodStart, "pay_period_end", r.PayPeriodEnd)

	if len(errs) > 0 {
		return Period{}, errs
	}
	return Period{Start: start, End: end}, nil
}

type WorkDayDTO struct {
	Date       string          `json:"date"`
	RegHrs     decimal.Decimal `json:"reg_hrs"`
	OtHrs      decimal.Decimal `json:"ot_hrs"`
	RegHolHrs  decimal.Decimal `json:"reg_hol_hrs"`
	SpecHolHrs decimal.Decimal `json:"spec_hol_hrs"`
	IsRestDay  bool            `json:"is_rest_day"`
	Notes      string          `json:"notes"`
}

type EarningsDTO struct {
	Adjustments        decimal.Decimal `json:"adjustments"`
	Bonuses            decimal.Decimal `json:"bonuses"`
	ThirteenthMonthPay decimal.Decimal `json:"thirteenth_month_pay"`
	OtherEarnings      decimal.Decimal `json:"other_earnings"`
}

type DeductionsDTO struct {
	ValeCashAdvance     decimal.Decimal `json:"vale_cash_advance"`
	LoanPayments        decimal.Decimal `json:"loan_payments"`
	SSSDeduction        decimal.Decimal `json:"sss_deduction"`
	PhilhealthDeduction decimal.Decimal `json:"philhealth_deduction"`
	HDMFDeduction       decimal.Decimal `json:"hdmf_deduction"`
}

type GenerateWorkDaysResponse struct {
	EmployeeID     string        `json:"employee_id"`
	EmployeeName   string        `json:"employee_name"`
	PayPeriodStart string        `json:"pay_period_start"`
	PayPeriodEnd   string        `json:"pay_period_end"`
	WorkDays       []WorkDayDTO  `json:"work_days"`
	Earnings       EarningsDTO   `json:"earnings"`
	Deductions     DeductionsDTO `json:"deductions"` // Statutory fields seeded from the pay profile
}

// ========== PAYSLIP DTOs ==========

type PreviewPayslipRequest struct {
	EmployeeID string        `json:"employee_id"`
	WorkDays   []WorkDayDTO  `json:"work_days"`
	Earnings   EarningsDTO   `json:"earnings"`
	Deductions DeductionsDTO `json:"deductions"`
}

// PayslipInput is the parsed, validated form of the payslip worksheet.
type PayslipInput struct {
	WorkDays   []WorkDayEntry
	Earnings   Earnings
	Deductions Deductions
}

func (r *PreviewPayslipRequest) Validate() (PayslipInput, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	}
	input := validatePayslipInput(&errs, r.WorkDays, r.Earnings, r.Deductions)

	if len(errs) > 0 {
		return PayslipInput{}, errs
	}
	return input, nil
}

type SavePayslipRequest struct {
	EmployeeID     string        `json:"employee_id"`
	PayPeriodStart string        `json:"pay_period_start"`
	PayPeriodEnd   string        `json:"pay_period_end"`
	PayDateIssued  string        `json:"pay_date_issued,omitempty"` // Defaults to today
	WorkDays       []WorkDayDTO  `json:"work_days"`
	Earnings       EarningsDTO   `json:"earnings"`
	Deductions     DeductionsDTO `json:"deductions"`
}

func (r *SavePayslipRequest) Validate() (Period, *time.Time, PayslipInput, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", ErrEmployeeNotSelected.Error())
	}
	start, end := validator.DateRange(&errs, "pay_period_start", r.PayPeriodStart, "pay_period_end", r.PayPeriodEnd)

	var payDate *time.Time
	if !validator.IsEmpty(r.PayDateIssued) {
		d, ok := validator.IsValidDate(r.PayDateIssued)
		if !ok {
			errs.Add("pay_date_issued", "must be a valid date (YYYY-MM-DD)")
		} else {
			payDate = &d
		}
	}

	if len(r.WorkDays) == 0 {
		errs.Add("work_days", ErrNoWorkDays.Error())
	}
	input := validatePayslipInput(&errs, r.WorkDays, r.Earnings, r.Deductions)

	if len(errs) > 0 {
		return Period{}, nil, PayslipInput{}, errs
	}
	return Period{Start: start, End: end}, payDate, input, nil
}

type PayslipSummaryResponse struct {
	Gross           decimal.Decimal `json:"gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	Net             decimal.Decimal `json:"net"`
}

// ========== BATCH RUN DTOs ==========

type RunBatchRequest struct {
	PayPeriodStart string `json:"pay_period_start"`
	PayPeriodEnd   string `json:"pay_period_end"`
	PayDateIssued  string `json:"pay_date_issued,omitempty"` // Defaults to today
}

func (r *RunBatchRequest) Validate() (Period, *time.Time, error) {
	var errs validator.ValidationErrors

	start, end := validator.DateRange(&errs, "pay_period_start", r.PayPeriodStart, "pay_period_end", r.PayPeriodEnd)

	var payDate *time.Time
	if !validator.IsEmpty(r.PayDateIssued) {
		d, ok := validator.IsValidDate(r.PayDateIssued)
		if !ok {
			errs.Add("pay_date_issued", "must be a valid date (YYYY-MM-DD)")
		} else {
			payDate = &d
		}
	}

	if len(errs) > 0 {
		return Period{}, nil, errs
	}
	return Period{Start: start, End: end}, payDate, nil
}

type BatchRunResponse struct {
	PayPeriodStart string            `json:"pay_period_start"`
	PayPeriodEnd   string            `json:"pay_period_end"`
	ProcessedCount int               `json:"processed_count"`
	Records        []PayrollResponse `json:"records"`
}

// ========== PAYROLL RECORD DTOs ==========

type PayrollResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	PayPeriodStart string          `json:"pay_period_start"`
	PayPeriodEnd   string          `json:"pay_period_end"`
	PayDateIssued  string          `json:"pay_date_issued"`
	GrossPay       decimal.Decimal `json:"gross_pay"`
	Deductions     decimal.Decimal `json:"deductions"`
	NetPay         decimal.Decimal `json:"net_pay"`
	CreatedAt      string          `json:"created_at"`
}

type ListPayrollsRequest struct {
	PayPeriodStart string
	PayPeriodEnd   string
	EmployeeID     string
}

func (r *ListPayrollsRequest) Validate() (PayrollFilter, error) {
	var errs validator.ValidationErrors

	start, end := validator.DateRange(&errs, "pay_period_start", r.PayPeriodStart, "pay_period_end", r.PayPeriodEnd)
	if len(errs) > 0 {
		return PayrollFilter{}, errs
	}

	filter := PayrollFilter{PayPeriodStart: start, PayPeriodEnd: end}
	if !validator.IsEmpty(r.EmployeeID) {
		id := r.EmployeeID
		filter.EmployeeID = &id
	}
	return filter, nil
}

type PayrollFilter struct {
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	EmployeeID     *string
}

type PayslipKeyRequest struct {
	EmployeeID     string
	PayPeriodStart string
	PayPeriodEnd   string
}

func (r *PayslipKeyRequest) Validate() (Key, error) {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "is required")
	}
	start, end := validator.DateRange(&errs, "pay_period_start", r.PayPeriodStart, "pay_period_end", r.PayPeriodEnd)

	if len(errs) > 0 {
		return Key{}, errs
	}
	return Key{EmployeeID: r.EmployeeID, PayPeriodStart: start, PayPeriodEnd: end}, nil
}

// ========== MAPPERS ==========

func validatePayslipInput(errs *validator.ValidationErrors, days []WorkDayDTO, earnings EarningsDTO, deductions DeductionsDTO) PayslipInput {
	input := PayslipInput{
		WorkDays: make([]WorkDayEntry, 0, len(days)),
		Earnings: Earnings{
			Adjustments:        earnings.Adjustments,
			Bonuses:            earnings.Bonuses,
			ThirteenthMonthPay: earnings.ThirteenthMonthPay,
			OtherEarnings:      earnings.OtherEarnings,
		},
		Deductions: Deductions{
			ValeCashAdvance:     deductions.ValeCashAdvance,
			LoanPayments:        deductions.LoanPayments,
			SSSDeduction:        deductions.SSSDeduction,
			PhilhealthDeduction: deductions.PhilhealthDeduction,
			HDMFDeduction:       deductions.HDMFDeduction,
		},
	}

	seen := make(map[string]bool, len(days))
	for i, d := range days {
		prefix := fmt.Sprintf("work_days[%d].", i)
		date, ok := validator.IsValidDate(d.Date)
		if !ok {
			errs.Add(prefix+"date", "must be a valid date (YYYY-MM-DD)")
		} else if seen[d.Date] {
			errs.Add(prefix+"date", "must be unique within the pay period")
		}
		seen[d.Date] = true

		hours := map[string]decimal.Decimal{
			"reg_hrs":      d.RegHrs,
			"ot_hrs":       d.OtHrs,
			"reg_hol_hrs":  d.RegHolHrs,
			"spec_hol_hrs": d.SpecHolHrs,
		}
		for field, v := range hours {
			if !validator.IsNonNegative(v) {
				errs.Add(prefix+field, "must be non-negative")
			}
		}

		input.WorkDays = append(input.WorkDays, WorkDayEntry{
			Date:       date,
			RegHrs:     d.RegHrs,
			OtHrs:      d.OtHrs,
			RegHolHrs:  d.RegHolHrs,
			SpecHolHrs: d.SpecHolHrs,
			IsRestDay:  d.IsRestDay,
			Notes:      d.Notes,
		})
	}

	amounts := map[string]decimal.Decimal{
		"earnings.adjustments":            earnings.Adjustments,
		"earnings.bonuses":                earnings.Bonuses,
		"earnings.thirteenth_month_pay":   earnings.ThirteenthMonthPay,
		"earnings.other_earnings":         earnings.OtherEarnings,
		"deductions.vale_cash_advance":    deductions.ValeCashAdvance,
		"deductions.loan_payments":        deductions.LoanPayments,
		"deductions.sss_deduction":        deductions.SSSDeduction,
		"deductions.philhealth_deduction": deductions.PhilhealthDeduction,
		"deductions.hdmf_deduction":       deductions.HDMFDeduction,
	}
	for field, v := range amounts {
		if !validator.IsNonNegative(v) {
			errs.Add(field, "must be non-negative")
		}
	}

	return input
}

func NewWorkDayDTO(d WorkDayEntry) WorkDayDTO {
	return WorkDayDTO{
		Date:       d.Date.Format(DateLayout),
		RegHrs:     d.RegHrs,
		OtHrs:      d.OtHrs,
		RegHolHrs:  d.RegHolHrs,
		SpecHolHrs: d.SpecHolHrs,
		IsRestDay:  d.IsRestDay,
		Notes:      d.Notes,
	}
}

func NewDeductionsDTO(d Deductions) DeductionsDTO {
	return DeductionsDTO{
		ValeCashAdvance:     d.ValeCashAdvance,
		LoanPayments:        d.LoanPayments,
		SSSDeduction:        d.SSSDeduction,
		PhilhealthDeduction: d.PhilhealthDeduction,
		HDMFDeduction:       d.HDMFDeduction,
	}
}

func NewPayslipSummaryResponse(s PayslipSummary) PayslipSummaryResponse {
	return PayslipSummaryResponse{
		Gross:           s.Gross,
		TotalDeductions: s.TotalDeductions,
		Net:             s.Net,
	}
}

func NewPayrollResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:             p.ID,
		EmployeeID:     p.EmployeeID,
		PayPeriodStart: p.PayPeriodStart.Format(DateLayout),
		PayPeriodEnd:   p.PayPeriodEnd.Format(DateLayout),
		PayDateIssued:  p.PayDateIssued.Format(DateLayout),
		GrossPay:       p.GrossPay,
		Deductions:     p.Deductions,
		NetPay:         p.NetPay,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}

func NewPayrollResponses(records []Payroll) []PayrollResponse {
	result := make([]PayrollResponse, 0, len(records))
	for _, r := range records {
		result = append(result, NewPayrollResponse(r))
	}
	return result
}
