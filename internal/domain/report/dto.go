package report

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", ErrUnsupportedFormat
}

// ========================================
// PAYROLL SUMMARY REPORT
// ========================================

type PayrollSummaryReportRequest struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Format string `json:"format"`
}

// Validate checks the request and returns the parsed inclusive date range and format.
func (r *PayrollSummaryReportRequest) Validate() (time.Time, time.Time, Format, error) {
	var errs validator.ValidationErrors

	start, end := validator.DateRange(&errs, "start", r.Start, "end", r.End)

	format, err := ParseFormat(r.Format)
	if err != nil {
		errs.Add("format", "must be one of json, csv, xlsx")
	}

	if len(errs) > 0 {
		return time.Time{}, time.Time{}, "", errs
	}
	return start, end, format, nil
}

type PayrollSummaryReport struct {
	PeriodStart     string          `json:"period_start"`
	PeriodEnd       string          `json:"period_end"`
	GeneratedAt     string          `json:"generated_at"`
	TotalGrossPay   decimal.Decimal `json:"total_gross_pay"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNetPay     decimal.Decimal `json:"total_net_pay"`
	TotalRecords    int             `json:"total_records"`

	Rows []PayrollSummaryRow `json:"rows"`
}

// PayrollSummaryRow is one stored payroll record joined with the employee name.
type PayrollSummaryRow struct {
	EmployeeID string          `json:"employee_id"`
	Name       string          `json:"name"`
	GrossPay   decimal.Decimal `json:"gross_pay"`
	Deductions decimal.Decimal `json:"deductions"`
	NetPay     decimal.Decimal `json:"net_pay"`
	PayPeriod  string          `json:"pay_period"`
	PayDate    string          `json:"pay_date"`
}

// ExportFile is a rendered report ready to be sent as a download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}
