package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidSalaryType = errors.New("salary type must be Monthly, Daily or empty")
)
