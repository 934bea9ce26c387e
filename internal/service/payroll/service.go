package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	timeLogRepo  timelog.TimeLogRepository
	workDays     *WorkDayCalculator
	calculator   *PayslipCalculator
	renderer     *PayslipRenderer
	now          func() time.Time
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	timeLogRepo timelog.TimeLogRepository,
	renderer *PayslipRenderer,
) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		timeLogRepo:  timeLogRepo,
		workDays:     NewWorkDayCalculator(),
		calculator:   NewPayslipCalculator(),
		renderer:     renderer,
		now:          time.Now,
	}
}

// today is the current local calendar date, stored as midnight UTC like every other date.
func (s *PayrollServiceImpl) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ========== WORK DAYS ==========

func (s *PayrollServiceImpl) GenerateWorkDays(ctx context.Context, req payroll.GenerateWorkDaysRequest) (payroll.GenerateWorkDaysResponse, error) {
	period, err := req.Validate()
	if err != nil {
		return payroll.GenerateWorkDaysResponse{}, err
	}

	var (
		profile employee.PayProfile
		events  []timelog.TimeLog
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.employeeRepo.GetPayProfile(gCtx, req.EmployeeID)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})

	g.Go(func() error {
		e, err := s.timeLogRepo.ListByEmployee(gCtx, req.EmployeeID, period.Start, period.End)
		if err != nil {
			return fmt.Errorf("failed to fetch time logs: %w", err)
		}
		events = e
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Failed to generate work days", "employee_id", req.EmployeeID, "period", period.String(), "error", err)
		return payroll.GenerateWorkDaysResponse{}, err
	}

	days := s.workDays.Derive(events, period)
	dayDTOs := make([]payroll.WorkDayDTO, 0, len(days))
	for _, d := range days {
		dayDTOs = append(dayDTOs, payroll.NewWorkDayDTO(d))
	}

	return payroll.GenerateWorkDaysResponse{
		EmployeeID:     profile.EmployeeID,
		EmployeeName:   profile.FullName(),
		PayPeriodStart: period.Start.Format(payroll.DateLayout),
		PayPeriodEnd:   period.End.Format(payroll.DateLayout),
		WorkDays:       dayDTOs,
		Earnings: payroll.EarningsDTO{
			Adjustments:        decimal.Zero,
			Bonuses:            decimal.Zero,
			ThirteenthMonthPay: decimal.Zero,
			OtherEarnings:      decimal.Zero,
		},
		Deductions: payroll.NewDeductionsDTO(SeedDeductions(profile)),
	}, nil
}

// ========== PAYSLIP ==========

func (s *PayrollServiceImpl) PreviewPayslip(ctx context.Context, req payroll.PreviewPayslipRequest) (payroll.PayslipSummaryResponse, error) {
	input, err := req.Validate()
	if err != nil {
		return payroll.PayslipSummaryResponse{}, err
	}

	profile, err := s.employeeRepo.GetPayProfile(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayslipSummaryResponse{}, err
	}

	return payroll.NewPayslipSummaryResponse(s.calculator.Compute(profile, input)), nil
}

// SavePayslip recomputes the summary from the posted inputs and upserts the payroll record.
// Client-side totals are never trusted.
func (s *PayrollServiceImpl) SavePayslip(ctx context.Context, req payroll.SavePayslipRequest) (payroll.PayrollResponse, error) {
	period, payDate, input, err := req.Validate()
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	var errs validator.ValidationErrors
	for i, d := range input.WorkDays {
		if d.Date.Before(period.Start) || d.Date.After(period.End) {
			errs.Add(fmt.Sprintf("work_days[%d].date", i), "must fall within the pay period")
		}
	}
	if err := errs.OrNil(); err != nil {
		return payroll.PayrollResponse{}, err
	}

	profile, err := s.employeeRepo.GetPayProfile(ctx, req.EmployeeID)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	issued := s.today()
	if payDate != nil {
		issued = *payDate
	}

	summary := s.calculator.Compute(profile, input)
	record := payroll.Payroll{
		EmployeeID:     profile.EmployeeID,
		PayPeriodStart: period.Start,
		PayPeriodEnd:   period.End,
		PayDateIssued:  issued,
		GrossPay:       summary.Gross,
		Deductions:     summary.TotalDeductions,
		NetPay:         summary.Net,
	}

	saved, err := s.payrollRepo.Upsert(ctx, record)
	if err != nil {
		slog.Error("Failed to save payroll", "employee_id", record.EmployeeID, "period", period.String(), "error", err)
		return payroll.PayrollResponse{}, fmt.Errorf("failed to save payroll: %w", err)
	}

	slog.Info("Saved payroll", "employee_id", saved.EmployeeID, "period", period.String(), "net_pay", saved.NetPay.StringFixed(2))
	return payroll.NewPayrollResponse(saved), nil
}

func (s *PayrollServiceImpl) RenderPayslipPDF(ctx context.Context, req payroll.PayslipKeyRequest) ([]byte, error) {
	key, err := req.Validate()
	if err != nil {
		return nil, err
	}

	record, err := s.payrollRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	name := record.EmployeeID
	profile, err := s.employeeRepo.GetPayProfile(ctx, record.EmployeeID)
	switch {
	case err == nil:
		name = profile.FullName()
	case errors.Is(err, employee.ErrEmployeeNotFound):
		// Payslips outlive employee records
	default:
		return nil, err
	}

	return s.renderer.Render(record, name)
}

// ========== BATCH ==========

// RunBatch writes an estimated payroll record for every active employee in one atomic write,
// overwriting detailed records of the same period.
func (s *PayrollServiceImpl) RunBatch(ctx context.Context, req payroll.RunBatchRequest) (payroll.BatchRunResponse, error) {
	period, payDate, err := req.Validate()
	if err != nil {
		return payroll.BatchRunResponse{}, err
	}

	profiles, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		slog.Error("Failed to list active employees for batch payroll", "period", period.String(), "error", err)
		return payroll.BatchRunResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	issued := s.today()
	if payDate != nil {
		issued = *payDate
	}

	response := payroll.BatchRunResponse{
		PayPeriodStart: period.Start.Format(payroll.DateLayout),
		PayPeriodEnd:   period.End.Format(payroll.DateLayout),
		Records:        []payroll.PayrollResponse{},
	}
	if len(profiles) == 0 {
		return response, nil
	}

	records := make([]payroll.Payroll, 0, len(profiles))
	for _, p := range profiles {
		records = append(records, EstimateBatchPayroll(p, period, issued))
	}

	saved, err := s.payrollRepo.UpsertMany(ctx, records)
	if err != nil {
		slog.Error("Batch payroll run failed", "period", period.String(), "employee_count", len(records), "error", err)
		return payroll.BatchRunResponse{}, fmt.Errorf("batch payroll run failed: %w", err)
	}

	slog.Info("Batch payroll run completed", "period", period.String(), "employee_count", len(saved))
	response.ProcessedCount = len(saved)
	response.Records = payroll.NewPayrollResponses(saved)
	return response, nil
}

// ========== RECORDS ==========

func (s *PayrollServiceImpl) ListPayrolls(ctx context.Context, req payroll.ListPayrollsRequest) ([]payroll.PayrollResponse, error) {
	filter, err := req.Validate()
	if err != nil {
		return nil, err
	}

	records, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return payroll.NewPayrollResponses(records), nil
}
