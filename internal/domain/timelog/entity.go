package timelog

import "time"

// EventType enum
type EventType string

const (
	EventTypeClockIn  EventType = "Clock In"
	EventTypeClockOut EventType = "Clock Out"
)

// CaptureMethod enum
type CaptureMethod string

const (
	CaptureMethodQR           CaptureMethod = "QR"
	CaptureMethodManual       CaptureMethod = "Manual"
	CaptureMethodForcedManual CaptureMethod = "Forced Manual"
)

// TimeLog - A single clock-in or clock-out swipe.
// Timestamp carries local wall-clock time; its location is not meaningful.
type TimeLog struct {
	ID         string
	EmployeeID string
	Timestamp  time.Time
	Type       EventType
	Method     CaptureMethod
}

// DateKey returns the local calendar date of the event as YYYY-MM-DD.
func (t TimeLog) DateKey() string {
	return t.Timestamp.Format("2006-01-02")
}

func ParseEventType(s string) (EventType, error) {
	switch EventType(s) {
	case EventTypeClockIn, EventTypeClockOut:
		return EventType(s), nil
	}
	return "", ErrInvalidEventType
}

func ParseCaptureMethod(s string) (CaptureMethod, error) {
	switch CaptureMethod(s) {
	case CaptureMethodQR, CaptureMethodManual, CaptureMethodForcedManual:
		return CaptureMethod(s), nil
	}
	return "", ErrInvalidCaptureMethod
}
