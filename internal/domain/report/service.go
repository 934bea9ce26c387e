package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// Generate Payroll Summary Report
	GeneratePayrollSummaryReport(ctx context.Context, req PayrollSummaryReportRequest) (PayrollSummaryReport, error)

	// Export Payroll Summary Report as CSV or XLSX
	ExportPayrollSummaryReport(ctx context.Context, req PayrollSummaryReportRequest) (ExportFile, error)
}
