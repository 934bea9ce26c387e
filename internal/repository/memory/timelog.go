package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/timelog"
)

type timeLogRepository struct {
	store *Store
}

func NewTimeLogRepository(store *Store) timelog.TimeLogRepository {
	return &timeLogRepository{store: store}
}

func (r *timeLogRepository) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]timelog.TimeLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	from := start.Format("2006-01-02")
	to := end.Format("2006-01-02")

	var logs []timelog.TimeLog
	for _, l := range r.store.timeLogs {
		if l.EmployeeID != employeeID {
			continue
		}
		if key := l.DateKey(); key < from || key > to {
			continue
		}
		logs = append(logs, l)
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp.Before(logs[j].Timestamp)
	})
	return logs, nil
}

func (r *timeLogRepository) Create(ctx context.Context, log timelog.TimeLog) (timelog.TimeLog, error) {
	if err := ctx.Err(); err != nil {
		return timelog.TimeLog{}, err
	}
	if _, err := timelog.ParseEventType(string(log.Type)); err != nil {
		return timelog.TimeLog{}, err
	}
	if _, err := timelog.ParseCaptureMethod(string(log.Method)); err != nil {
		return timelog.TimeLog{}, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if log.ID == "" {
		log.ID = newID()
	}
	r.store.timeLogs = append(r.store.timeLogs, log)
	return log, nil
}
