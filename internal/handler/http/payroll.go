package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Work days
	GenerateWorkDays(w http.ResponseWriter, r *http.Request)

	// Payslips
	PreviewPayslip(w http.ResponseWriter, r *http.Request)
	SavePayslip(w http.ResponseWriter, r *http.Request)
	DownloadPayslipPDF(w http.ResponseWriter, r *http.Request)

	// Batch
	RunBatch(w http.ResponseWriter, r *http.Request)

	// Payroll Records
	ListPayrolls(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// GenerateWorkDays handles POST /payroll/workdays
func (h *payrollHandlerImpl) GenerateWorkDays(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateWorkDaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GenerateWorkDays(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PreviewPayslip handles POST /payroll/payslips/preview
func (h *payrollHandlerImpl) PreviewPayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.PreviewPayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.PreviewPayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SavePayslip handles POST /payroll/payslips
func (h *payrollHandlerImpl) SavePayslip(w http.ResponseWriter, r *http.Request) {
	var req payroll.SavePayslipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.SavePayslip(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll record saved successfully", result)
}

// DownloadPayslipPDF handles GET /payroll/payslips/pdf
func (h *payrollHandlerImpl) DownloadPayslipPDF(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := payroll.PayslipKeyRequest{
		EmployeeID:     q.Get("employee_id"),
		PayPeriodStart: q.Get("pay_period_start"),
		PayPeriodEnd:   q.Get("pay_period_end"),
	}

	data, err := h.payrollService.RenderPayslipPDF(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("payslip_%s_%s_%s.pdf", req.EmployeeID, req.PayPeriodStart, req.PayPeriodEnd)
	response.File(w, filename, "application/pdf", data)
}

// RunBatch handles POST /payroll/runs
func (h *payrollHandlerImpl) RunBatch(w http.ResponseWriter, r *http.Request) {
	var req payroll.RunBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.RunBatch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListPayrolls handles GET /payroll
func (h *payrollHandlerImpl) ListPayrolls(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := payroll.ListPayrollsRequest{
		PayPeriodStart: q.Get("pay_period_start"),
		PayPeriodEnd:   q.Get("pay_period_end"),
		EmployeeID:     q.Get("employee_id"),
	}

	result, err := h.payrollService.ListPayrolls(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
