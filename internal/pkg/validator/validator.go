package validator

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// OrNil returns nil when no error was collected, so callers can `return errs.OrNil()`.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// IsNonNegative reports whether d >= 0.
func IsNonNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}

// DateRange validates a required inclusive [start, end] pair of YYYY-MM-DD dates.
// Errors are appended to errs under the given field names.
func DateRange(errs *ValidationErrors, startField, start, endField, end string) (time.Time, time.Time) {
	startDate, startOK := IsValidDate(start)
	endDate, endOK := IsValidDate(end)

	if IsEmpty(start) {
		errs.Add(startField, "is required")
	} else if !startOK {
		errs.Add(startField, "must be a valid date (YYYY-MM-DD)")
	}
	if IsEmpty(end) {
		errs.Add(endField, "is required")
	} else if !endOK {
		errs.Add(endField, "must be a valid date (YYYY-MM-DD)")
	}

	if startOK && endOK && startDate.After(endDate) {
		errs.Add(endField, "must be on or after "+startField)
	}
	return startDate, endDate
}
