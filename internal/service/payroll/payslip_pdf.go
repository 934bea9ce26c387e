package payroll

import (
	"bytes"
	"fmt"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/jung-kurt/gofpdf"
)

// PayslipRenderer lays out a stored payroll record as a one-page A4 payslip.
type PayslipRenderer struct {
	companyName string
	currency    string
}

func NewPayslipRenderer(companyName, currency string) *PayslipRenderer {
	return &PayslipRenderer{companyName: companyName, currency: currency}
}

func (r *PayslipRenderer) Render(record payroll.Payroll, employeeName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, r.companyName)
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(40, 10, "Payslip")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s (%s)", employeeName, record.EmployeeID))
	pdf.Ln(7)
	period := payroll.Period{Start: record.PayPeriodStart, End: record.PayPeriodEnd}
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", period))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Date issued: %s", record.PayDateIssued.Format(payroll.DateLayout)))
	pdf.Ln(12)

	r.amountRow(pdf, "Gross pay", record.GrossPay.StringFixed(2))
	r.amountRow(pdf, "Deductions", record.Deductions.StringFixed(2))
	pdf.SetFont("Helvetica", "B", 12)
	r.amountRow(pdf, "Net pay", record.NetPay.StringFixed(2))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render payslip pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PayslipRenderer) amountRow(pdf *gofpdf.Fpdf, label, amount string) {
	pdf.CellFormat(60, 8, label, "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, fmt.Sprintf("%s %s", amount, r.currency), "1", 1, "R", false, 0, "")
}
