package payroll

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/timelog"
	"github.com/shopspring/decimal"
)

var (
	regularHoursCap   = decimal.NewFromInt(8)
	lunchThreshold    = decimal.NewFromInt(5)
	lunchBreak        = decimal.NewFromInt(1)
	lunchBoundaryHour = 13
)

type WorkDayCalculator struct {
}

func NewWorkDayCalculator() *WorkDayCalculator {
	return &WorkDayCalculator{}
}

// Derive builds one work day per calendar date of the period, in ascending order, from the
// employee's clock events. Events outside the period are ignored.
func (c *WorkDayCalculator) Derive(events []timelog.TimeLog, period payroll.Period) []payroll.WorkDayEntry {
	byDate := make(map[string][]timelog.TimeLog)
	for _, e := range events {
		key := e.DateKey()
		byDate[key] = append(byDate[key], e)
	}

	days := period.Days()
	entries := make([]payroll.WorkDayEntry, 0, len(days))
	for _, day := range days {
		entries = append(entries, c.deriveDay(day, byDate[day.Format(payroll.DateLayout)]))
	}
	return entries
}

func (c *WorkDayCalculator) deriveDay(day time.Time, events []timelog.TimeLog) payroll.WorkDayEntry {
	sorted := make([]timelog.TimeLog, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	regHrs := decimal.Zero
	otHrs := decimal.Zero

	var pending *time.Time
	for _, e := range sorted {
		switch e.Type {
		case timelog.EventTypeClockIn:
			// A later clock-in replaces an unresolved one
			ts := e.Timestamp
			pending = &ts
		case timelog.EventTypeClockOut:
			if pending == nil {
				continue
			}
			reg, ot := c.splitInterval(*pending, e.Timestamp)
			regHrs = regHrs.Add(reg)
			otHrs = otHrs.Add(ot)
			pending = nil
		}
	}

	return payroll.WorkDayEntry{
		Date:       day,
		RegHrs:     regHrs.Round(2),
		OtHrs:      otHrs.Round(2),
		RegHolHrs:  decimal.Zero,
		SpecHolHrs: decimal.Zero,
		IsRestDay:  IsRestDay(day),
	}
}

// splitInterval returns the regular and overtime hours of one clock-in/clock-out pair.
func (c *WorkDayCalculator) splitInterval(clockIn, clockOut time.Time) (decimal.Decimal, decimal.Decimal) {
	hours := elapsedHours(clockIn, clockOut)

	if hours.GreaterThan(lunchThreshold) && clockIn.Hour() < lunchBoundaryHour && clockOut.Hour() >= lunchBoundaryHour {
		hours = hours.Sub(lunchBreak)
	}
	if hours.IsNegative() {
		hours = decimal.Zero
	}

	if hours.GreaterThan(regularHoursCap) {
		return regularHoursCap, hours.Sub(regularHoursCap)
	}
	return hours, decimal.Zero
}

func elapsedHours(from, to time.Time) decimal.Decimal {
	return decimal.NewFromInt(int64(to.Sub(from))).Div(decimal.NewFromInt(int64(time.Hour)))
}

// IsRestDay reports whether the date falls on a weekend.
func IsRestDay(day time.Time) bool {
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
