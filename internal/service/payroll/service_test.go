package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	service  *PayrollServiceImpl
	payrolls *failingPayrollRepo
	store    *memory.Store
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	store.PutPayProfile(dailyProfile())
	store.PutPayProfile(employee.PayProfile{
		EmployeeID:          "EMP-002",
		FirstName:           "Jose",
		LastName:            "Reyes",
		Status:              employee.StatusActive,
		SalaryType:          employee.SalaryTypeMonthly,
		BasicSalary:         dec("30000"),
		SSSDeduction:        dec("1000"),
		PhilhealthDeduction: dec("500"),
		HDMFDeduction:       dec("200"),
	})
	store.PutPayProfile(employee.PayProfile{
		EmployeeID:  "EMP-003",
		Status:      employee.StatusActive,
		IsArchived:  true,
		SalaryType:  employee.SalaryTypeMonthly,
		BasicSalary: dec("50000"),
	})
	store.PutPayProfile(employee.PayProfile{
		EmployeeID:  "EMP-004",
		Status:      "Resigned",
		SalaryType:  employee.SalaryTypeMonthly,
		BasicSalary: dec("50000"),
	})

	timeLogs := memory.NewTimeLogRepository(store)
	for _, e := range []timelog.TimeLog{
		clockIn(at(monday, 8, 0)),
		clockOut(at(monday, 19, 0)),
	} {
		_, err := timeLogs.Create(ctx, e)
		require.NoError(t, err)
	}

	payrolls := &failingPayrollRepo{PayrollRepository: memory.NewPayrollRepository(store)}
	svc := NewPayrollService(payrolls, memory.NewEmployeeRepository(store), timeLogs, NewPayslipRenderer("Acme Corp", "PHP"))
	svc.now = func() time.Time { return time.Date(2024, 5, 20, 15, 30, 0, 0, time.UTC) }

	return &serviceFixture{service: svc, payrolls: payrolls, store: store}
}

func savePayslipRequest() payroll.SavePayslipRequest {
	return payroll.SavePayslipRequest{
		EmployeeID:     "EMP-001",
		PayPeriodStart: "2024-05-06",
		PayPeriodEnd:   "2024-05-07",
		WorkDays: []payroll.WorkDayDTO{
			{Date: "2024-05-06", RegHrs: dec("8"), OtHrs: dec("2"), RegHolHrs: dec("0"), SpecHolHrs: dec("0")},
			{Date: "2024-05-07", RegHrs: dec("8"), OtHrs: dec("0"), RegHolHrs: dec("0"), SpecHolHrs: dec("0")},
		},
		Deductions: payroll.DeductionsDTO{SSSDeduction: dec("100"), PhilhealthDeduction: dec("50"), HDMFDeduction: dec("50")},
	}
}

func TestPayrollService_GenerateWorkDays(t *testing.T) {
	f := newServiceFixture(t)

	resp, err := f.service.GenerateWorkDays(context.Background(), payroll.GenerateWorkDaysRequest{
		EmployeeID:     "EMP-001",
		PayPeriodStart: "2024-05-04",
		PayPeriodEnd:   "2024-05-07",
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria Santos", resp.EmployeeName)
	require.Len(t, resp.WorkDays, 4)
	assert.Equal(t, "2024-05-04", resp.WorkDays[0].Date)
	assert.True(t, resp.WorkDays[0].IsRestDay)
	assert.True(t, resp.WorkDays[1].IsRestDay)
	assert.False(t, resp.WorkDays[2].IsRestDay)
	assertDecimal(t, "8.00", resp.WorkDays[2].RegHrs)
	assertDecimal(t, "2.00", resp.WorkDays[2].OtHrs)
	assertDecimal(t, "0.00", resp.WorkDays[3].RegHrs)

	assertDecimal(t, "100.00", resp.Deductions.SSSDeduction)
	assertDecimal(t, "50.00", resp.Deductions.HDMFDeduction)
	assert.True(t, resp.Deductions.LoanPayments.IsZero())
	assert.True(t, resp.Earnings.Bonuses.IsZero())
}

func TestPayrollService_GenerateWorkDays_Errors(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.GenerateWorkDays(ctx, payroll.GenerateWorkDaysRequest{
		PayPeriodStart: "2024-05-07",
		PayPeriodEnd:   "2024-05-04",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "employee_id")
	assert.Contains(t, verrs.ToMap(), "pay_period_end")

	_, err = f.service.GenerateWorkDays(ctx, payroll.GenerateWorkDaysRequest{
		EmployeeID:     "EMP-404",
		PayPeriodStart: "2024-05-04",
		PayPeriodEnd:   "2024-05-07",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	f.service.timeLogRepo = &failingTimeLogRepo{}
	_, err = f.service.GenerateWorkDays(ctx, payroll.GenerateWorkDaysRequest{
		EmployeeID:     "EMP-001",
		PayPeriodStart: "2024-05-04",
		PayPeriodEnd:   "2024-05-07",
	})
	assert.ErrorIs(t, err, errStoreDown)
}

func TestPayrollService_PreviewPayslip(t *testing.T) {
	f := newServiceFixture(t)
	req := savePayslipRequest()

	resp, err := f.service.PreviewPayslip(context.Background(), payroll.PreviewPayslipRequest{
		EmployeeID: req.EmployeeID,
		WorkDays:   req.WorkDays,
		Earnings:   payroll.EarningsDTO{ThirteenthMonthPay: dec("150")},
		Deductions: req.Deductions,
	})
	require.NoError(t, err)
	assertDecimal(t, "2000.00", resp.Gross)
	assertDecimal(t, "200.00", resp.TotalDeductions)
	assertDecimal(t, "1800.00", resp.Net)
}

func TestPayrollService_PreviewPayslip_RejectsNegativeInputs(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.PreviewPayslip(context.Background(), payroll.PreviewPayslipRequest{
		EmployeeID: "EMP-001",
		WorkDays:   []payroll.WorkDayDTO{{Date: "2024-05-06", RegHrs: dec("-1")}},
		Earnings:   payroll.EarningsDTO{Bonuses: dec("-1")},
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "work_days[0].reg_hrs")
	assert.Contains(t, verrs.ToMap(), "earnings.bonuses")
}

func TestPayrollService_SavePayslip(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	resp, err := f.service.SavePayslip(ctx, savePayslipRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "2024-05-20", resp.PayDateIssued, "pay date defaults to today")
	assertDecimal(t, "1850.00", resp.GrossPay)
	assertDecimal(t, "200.00", resp.Deductions)
	assertDecimal(t, "1650.00", resp.NetPay)
}

func TestPayrollService_SavePayslip_UpsertsSameKey(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	first, err := f.service.SavePayslip(ctx, savePayslipRequest())
	require.NoError(t, err)

	req := savePayslipRequest()
	req.PayDateIssued = "2024-05-21"
	req.Deductions.ValeCashAdvance = dec("2000")
	second, err := f.service.SavePayslip(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	records, err := f.service.ListPayrolls(ctx, payroll.ListPayrollsRequest{
		PayPeriodStart: "2024-05-01",
		PayPeriodEnd:   "2024-05-31",
		EmployeeID:     "EMP-001",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-05-21", records[0].PayDateIssued)
	assertDecimal(t, "-350.00", records[0].NetPay, "negative net pay is saved")
}

func TestPayrollService_SavePayslip_Preconditions(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	req := savePayslipRequest()
	req.EmployeeID = ""
	req.WorkDays = nil
	_, err := f.service.SavePayslip(ctx, req)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, payroll.ErrEmployeeNotSelected.Error(), verrs.ToMap()["employee_id"])
	assert.Equal(t, payroll.ErrNoWorkDays.Error(), verrs.ToMap()["work_days"])

	req = savePayslipRequest()
	req.WorkDays[1].Date = "2024-05-09"
	_, err = f.service.SavePayslip(ctx, req)
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "work_days[1].date")

	req = savePayslipRequest()
	req.WorkDays[1].Date = "2024-05-06"
	_, err = f.service.SavePayslip(ctx, req)
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "work_days[1].date")

	records, err := f.service.ListPayrolls(ctx, payroll.ListPayrollsRequest{PayPeriodStart: "2024-05-01", PayPeriodEnd: "2024-05-31"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPayrollService_SavePayslip_PersistenceFailure(t *testing.T) {
	f := newServiceFixture(t)
	f.payrolls.fail = true

	_, err := f.service.SavePayslip(context.Background(), savePayslipRequest())
	assert.ErrorIs(t, err, errStoreDown)
}

func TestPayrollService_RunBatch(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	resp, err := f.service.RunBatch(ctx, payroll.RunBatchRequest{
		PayPeriodStart: "2024-05-01",
		PayPeriodEnd:   "2024-05-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.ProcessedCount, "archived and inactive employees are skipped")

	records, err := f.service.ListPayrolls(ctx, payroll.ListPayrollsRequest{PayPeriodStart: "2024-05-01", PayPeriodEnd: "2024-05-15"})
	require.NoError(t, err)
	require.Len(t, records, 2)

	byEmployee := map[string]payroll.PayrollResponse{}
	for _, r := range records {
		byEmployee[r.EmployeeID] = r
		assert.Equal(t, "2024-05-20", r.PayDateIssued)
	}
	assertDecimal(t, "17600.00", byEmployee["EMP-001"].GrossPay)
	assertDecimal(t, "17400.00", byEmployee["EMP-001"].NetPay)
	assertDecimal(t, "30000.00", byEmployee["EMP-002"].GrossPay)
	assertDecimal(t, "28300.00", byEmployee["EMP-002"].NetPay)
}

func TestPayrollService_RunBatch_OverwritesDetailedRecord(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	detailed, err := f.service.SavePayslip(ctx, savePayslipRequest())
	require.NoError(t, err)

	_, err = f.service.RunBatch(ctx, payroll.RunBatchRequest{
		PayPeriodStart: "2024-05-06",
		PayPeriodEnd:   "2024-05-07",
		PayDateIssued:  "2024-05-08",
	})
	require.NoError(t, err)

	records, err := f.service.ListPayrolls(ctx, payroll.ListPayrollsRequest{
		PayPeriodStart: "2024-05-06",
		PayPeriodEnd:   "2024-05-07",
		EmployeeID:     "EMP-001",
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, detailed.ID, records[0].ID)
	assertDecimal(t, "17600.00", records[0].GrossPay)
	assert.Equal(t, "2024-05-08", records[0].PayDateIssued)
}

func TestPayrollService_RunBatch_FailureWritesNothing(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()
	f.payrolls.fail = true

	_, err := f.service.RunBatch(ctx, payroll.RunBatchRequest{PayPeriodStart: "2024-05-01", PayPeriodEnd: "2024-05-15"})
	assert.ErrorIs(t, err, errStoreDown)

	f.payrolls.fail = false
	records, err := f.service.ListPayrolls(ctx, payroll.ListPayrollsRequest{PayPeriodStart: "2024-05-01", PayPeriodEnd: "2024-05-15"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPayrollService_RunBatch_NoActiveEmployees(t *testing.T) {
	store := memory.NewStore()
	svc := NewPayrollService(
		memory.NewPayrollRepository(store),
		memory.NewEmployeeRepository(store),
		memory.NewTimeLogRepository(store),
		NewPayslipRenderer("Acme Corp", "PHP"),
	)

	resp, err := svc.RunBatch(context.Background(), payroll.RunBatchRequest{PayPeriodStart: "2024-05-01", PayPeriodEnd: "2024-05-15"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ProcessedCount)
	assert.Empty(t, resp.Records)
}

func TestPayrollService_ListPayrolls_FiltersByPeriod(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	for _, p := range [][2]string{{"2024-04-16", "2024-04-30"}, {"2024-05-01", "2024-05-15"}, {"2024-05-10", "2024-05-25"}} {
		_, err := f.service.RunBatch(ctx, payroll.RunBatchRequest{PayPeriodStart: p[0], PayPeriodEnd: p[1]})
		require.NoError(t, err)
	}

	records, err := f.service.ListPayrolls(ctx, payroll.ListPayrollsRequest{PayPeriodStart: "2024-04-16", PayPeriodEnd: "2024-05-20"})
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "2024-05-01", records[0].PayPeriodStart, "newest period first")
	assert.Equal(t, "2024-04-16", records[3].PayPeriodStart)
}

func TestPayrollService_RenderPayslipPDF(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.service.SavePayslip(ctx, savePayslipRequest())
	require.NoError(t, err)

	pdf, err := f.service.RenderPayslipPDF(ctx, payroll.PayslipKeyRequest{
		EmployeeID:     "EMP-001",
		PayPeriodStart: "2024-05-06",
		PayPeriodEnd:   "2024-05-07",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	_, err = f.service.RenderPayslipPDF(ctx, payroll.PayslipKeyRequest{
		EmployeeID:     "EMP-002",
		PayPeriodStart: "2024-05-06",
		PayPeriodEnd:   "2024-05-07",
	})
	assert.ErrorIs(t, err, payroll.ErrPayrollNotFound)
}
