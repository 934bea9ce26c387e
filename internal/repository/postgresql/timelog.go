package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/timelog"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeLogRow struct {
	ID         string    `db:"id"`
	EmployeeID string    `db:"employee_id"`
	Timestamp  time.Time `db:"timestamp"`
	Type       string    `db:"type"`
	Method     string    `db:"method"`
}

func toTimeLogRow(l timelog.TimeLog) timeLogRow {
	return timeLogRow{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		Timestamp:  l.Timestamp,
		Type:       string(l.Type),
		Method:     string(l.Method),
	}
}

func fromTimeLogRow(r timeLogRow) (timelog.TimeLog, error) {
	eventType, err := timelog.ParseEventType(r.Type)
	if err != nil {
		return timelog.TimeLog{}, fmt.Errorf("time log %s: %w", r.ID, err)
	}
	method, err := timelog.ParseCaptureMethod(r.Method)
	if err != nil {
		return timelog.TimeLog{}, fmt.Errorf("time log %s: %w", r.ID, err)
	}
	return timelog.TimeLog{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		Timestamp:  r.Timestamp,
		Type:       eventType,
		Method:     method,
	}, nil
}

type timeLogRepositoryImpl struct {
	db *database.DB
}

func NewTimeLogRepository(db *database.DB) timelog.TimeLogRepository {
	return &timeLogRepositoryImpl{db: db}
}

// Last instant of the end date, millisecond precision like the capture clients
const endOfDay = 24*time.Hour - time.Millisecond

func (r *timeLogRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, "timestamp", type, method
		FROM time_logs
		WHERE employee_id = $1 AND "timestamp" >= $2 AND "timestamp" <= $3
		ORDER BY "timestamp" ASC
	`

	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	to := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC).Add(endOfDay)

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query time logs: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[timeLogRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan time logs: %w", err)
	}

	logs := make([]timelog.TimeLog, 0, len(records))
	for _, rec := range records {
		l, err := fromTimeLogRow(rec)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (r *timeLogRepositoryImpl) Create(ctx context.Context, log timelog.TimeLog) (timelog.TimeLog, error) {
	q := GetQuerier(ctx, r.db)

	row := toTimeLogRow(log)
	if _, err := fromTimeLogRow(row); err != nil {
		return timelog.TimeLog{}, err
	}

	query := `
		INSERT INTO time_logs (employee_id, "timestamp", type, method)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := q.QueryRow(ctx, query, row.EmployeeID, row.Timestamp, row.Type, row.Method).Scan(&log.ID)
	if err != nil {
		return timelog.TimeLog{}, fmt.Errorf("failed to create time log: %w", err)
	}
	return log, nil
}
