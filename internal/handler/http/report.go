package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
)

type ReportHandler interface {
	// Payroll Summary Report
	GetPayrollSummaryReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetPayrollSummaryReport handles GET /payroll/reports/summary. csv and xlsx are sent as
// downloads, anything else goes through the JSON report so validation errors surface as 422.
func (h *reportHandlerImpl) GetPayrollSummaryReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	q := r.URL.Query()
	req := report.PayrollSummaryReportRequest{
		Start:  q.Get("start"),
		End:    q.Get("end"),
		Format: q.Get("format"),
	}

	if format, err := report.ParseFormat(req.Format); err == nil && format != report.FormatJSON {
		file, err := h.reportService.ExportPayrollSummaryReport(ctx, req)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.File(w, file.Filename, file.ContentType, file.Data)
		return
	}

	result, err := h.reportService.GeneratePayrollSummaryReport(ctx, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
