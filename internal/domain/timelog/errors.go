package timelog

import "errors"

var (
	ErrInvalidEventType     = errors.New("invalid time log type")
	ErrInvalidCaptureMethod = errors.New("invalid time log method")
)
