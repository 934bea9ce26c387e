package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	unknownName     = "Unknown"
	noPayDate       = "N/A"
)

type ReportServiceImpl struct {
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewReportService(payrollRepo payroll.PayrollRepository, employeeRepo employee.EmployeeRepository) *ReportServiceImpl {
	return &ReportServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		now:          time.Now,
	}
}

// GeneratePayrollSummaryReport lists the payroll records of the range with employee names and totals
func (s *ReportServiceImpl) GeneratePayrollSummaryReport(ctx context.Context, req report.PayrollSummaryReportRequest) (report.PayrollSummaryReport, error) {
	start, end, _, err := req.Validate()
	if err != nil {
		return report.PayrollSummaryReport{}, err
	}

	records, err := s.payrollRepo.List(ctx, payroll.PayrollFilter{PayPeriodStart: start, PayPeriodEnd: end})
	if err != nil {
		return report.PayrollSummaryReport{}, fmt.Errorf("failed to get payroll data: %w", err)
	}

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.EmployeeID)
	}
	profiles, err := s.employeeRepo.ListByIDs(ctx, ids)
	if err != nil {
		return report.PayrollSummaryReport{}, fmt.Errorf("failed to get employee names: %w", err)
	}
	names := make(map[string]string, len(profiles))
	for _, p := range profiles {
		names[p.EmployeeID] = p.FullName()
	}

	result := report.PayrollSummaryReport{
		PeriodStart:     start.Format(payroll.DateLayout),
		PeriodEnd:       end.Format(payroll.DateLayout),
		GeneratedAt:     s.now().Format(time.RFC3339),
		TotalGrossPay:   decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNetPay:     decimal.Zero,
		TotalRecords:    len(records),
		Rows:            make([]report.PayrollSummaryRow, 0, len(records)),
	}

	for _, r := range records {
		name, ok := names[r.EmployeeID]
		if !ok || name == "" {
			name = unknownName
		}
		payDate := noPayDate
		if !r.PayDateIssued.IsZero() {
			payDate = r.PayDateIssued.Format(payroll.DateLayout)
		}

		result.Rows = append(result.Rows, report.PayrollSummaryRow{
			EmployeeID: r.EmployeeID,
			Name:       name,
			GrossPay:   r.GrossPay,
			Deductions: r.Deductions,
			NetPay:     r.NetPay,
			PayPeriod:  payroll.Period{Start: r.PayPeriodStart, End: r.PayPeriodEnd}.String(),
			PayDate:    payDate,
		})
		result.TotalGrossPay = result.TotalGrossPay.Add(r.GrossPay)
		result.TotalDeductions = result.TotalDeductions.Add(r.Deductions)
		result.TotalNetPay = result.TotalNetPay.Add(r.NetPay)
	}

	return result, nil
}

// ExportPayrollSummaryReport renders the payroll summary as a CSV or XLSX download
func (s *ReportServiceImpl) ExportPayrollSummaryReport(ctx context.Context, req report.PayrollSummaryReportRequest) (report.ExportFile, error) {
	_, _, format, err := req.Validate()
	if err != nil {
		return report.ExportFile{}, err
	}
	if format == report.FormatJSON {
		return report.ExportFile{}, report.ErrUnsupportedFormat
	}

	summary, err := s.GeneratePayrollSummaryReport(ctx, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	base := fmt.Sprintf("payroll_summary_%s_%s", summary.PeriodStart, summary.PeriodEnd)
	switch format {
	case report.FormatCSV:
		data, err := ExportCSV(summary.Rows)
		if err != nil {
			slog.Error("Failed to export payroll summary CSV", "error", err)
			return report.ExportFile{}, report.ErrReportGenerationFailed
		}
		return report.ExportFile{Filename: base + ".csv", ContentType: contentTypeCSV, Data: data}, nil
	default:
		data, err := ExportXLSX(summary)
		if err != nil {
			slog.Error("Failed to export payroll summary XLSX", "error", err)
			return report.ExportFile{}, report.ErrReportGenerationFailed
		}
		return report.ExportFile{Filename: base + ".xlsx", ContentType: contentTypeXLSX, Data: data}, nil
	}
}

type csvRow struct {
	EmployeeID string `csv:"EmployeeID"`
	Name       string `csv:"Name"`
	GrossPay   string `csv:"GrossPay"`
	Deductions string `csv:"Deductions"`
	NetPay     string `csv:"NetPay"`
	PayPeriod  string `csv:"PayPeriod"`
	PayDate    string `csv:"PayDate"`
}

// ExportCSV writes the rows with a header line; amounts carry two decimals.
func ExportCSV(rows []report.PayrollSummaryRow) ([]byte, error) {
	out := make([]csvRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, csvRow{
			EmployeeID: r.EmployeeID,
			Name:       r.Name,
			GrossPay:   r.GrossPay.StringFixed(2),
			Deductions: r.Deductions.StringFixed(2),
			NetPay:     r.NetPay.StringFixed(2),
			PayPeriod:  r.PayPeriod,
			PayDate:    r.PayDate,
		})
	}

	data, err := gocsv.MarshalBytes(&out)
	if err != nil {
		return nil, fmt.Errorf("marshal csv: %w", err)
	}
	return data, nil
}

var xlsxHeaders = []string{"Employee ID", "Name", "Gross Pay", "Deductions", "Net Pay", "Pay Period", "Pay Date"}

// ExportXLSX writes the summary to a single-sheet workbook with a totals row.
func ExportXLSX(summary report.PayrollSummaryReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Payroll Summary"
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for _, w := range []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 14},
		{"B", "B", 28},
		{"C", "E", 14},
		{"F", "F", 26},
		{"G", "G", 12},
	} {
		if err := f.SetColWidth(sheetName, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("create amount style: %w", err)
	}

	header := make([]interface{}, len(xlsxHeaders))
	for i, h := range xlsxHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", "G1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	row := 2
	for _, r := range summary.Rows {
		values := []interface{}{
			r.EmployeeID,
			r.Name,
			r.GrossPay.InexactFloat64(),
			r.Deductions.InexactFloat64(),
			r.NetPay.InexactFloat64(),
			r.PayPeriod,
			r.PayDate,
		}
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	totals := []interface{}{
		"Total",
		summary.TotalGrossPay.InexactFloat64(),
		summary.TotalDeductions.InexactFloat64(),
		summary.TotalNetPay.InexactFloat64(),
	}
	if err := f.SetSheetRow(sheetName, fmt.Sprintf("B%d", row), &totals); err != nil {
		return nil, fmt.Errorf("write totals: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "C2", fmt.Sprintf("E%d", row), amountStyle); err != nil {
		return nil, fmt.Errorf("style amounts: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
