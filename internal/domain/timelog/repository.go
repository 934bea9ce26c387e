package timelog

import (
	"context"
	"time"
)

// TimeLogRepository is the read side of the attendance capture store.
type TimeLogRepository interface {
	// ListByEmployee returns every event of the employee whose timestamp falls between
	// start 00:00:00 and end 23:59:59.999 (inclusive calendar dates), ascending by timestamp.
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]TimeLog, error)

	// Create appends an event. Events are never mutated afterwards.
	Create(ctx context.Context, log TimeLog) (TimeLog, error)
}
