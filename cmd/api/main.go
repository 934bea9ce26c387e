package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/config"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/timelog"
	appHTTP "github.com/cmlabs-hris/hris-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	payrollService "github.com/cmlabs-hris/hris-payroll-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/hris-payroll-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.App.LogLevel),
	})))

	var (
		timeLogRepo  timelog.TimeLogRepository
		employeeRepo employee.EmployeeRepository
		payrollRepo  payroll.PayrollRepository
	)

	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolSize{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := postgresql.Migrate(context.Background(), db); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}

		timeLogRepo = postgresql.NewTimeLogRepository(db)
		employeeRepo = postgresql.NewEmployeeRepository(db)
		payrollRepo = postgresql.NewPayrollRepository(db)
	case config.StorageDriverMemory:
		store := memory.NewStore()
		timeLogRepo = memory.NewTimeLogRepository(store)
		employeeRepo = memory.NewEmployeeRepository(store)
		payrollRepo = memory.NewPayrollRepository(store)
		slog.Warn("using in-memory storage, records are lost on restart")
	}

	renderer := payrollService.NewPayslipRenderer(cfg.Payroll.CompanyName, cfg.Payroll.Currency)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo, timeLogRepo, renderer)
	reportSvc := reportService.NewReportService(payrollRepo, employeeRepo)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(cfg.App, JWTService, payrollHandler, reportHandler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server running", "addr", server.Addr, "storage", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}
}
