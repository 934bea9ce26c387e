package payroll

import "context"

type PayrollService interface {
	// Work days derived from time logs, plus statutory deduction defaults for the payslip form
	GenerateWorkDays(ctx context.Context, req GenerateWorkDaysRequest) (GenerateWorkDaysResponse, error)

	// Payslip
	PreviewPayslip(ctx context.Context, req PreviewPayslipRequest) (PayslipSummaryResponse, error)
	SavePayslip(ctx context.Context, req SavePayslipRequest) (PayrollResponse, error)
	RenderPayslipPDF(ctx context.Context, req PayslipKeyRequest) ([]byte, error)

	// Batch
	RunBatch(ctx context.Context, req RunBatchRequest) (BatchRunResponse, error)

	// Records
	ListPayrolls(ctx context.Context, req ListPayrollsRequest) ([]PayrollResponse, error)
}
