package maintenance

import (
	"time"

	"github.com/alexanderramin/mainstay/internal/domain"
)

// CalendarDue returns the next due date for a calendar policy anchored at
// lastService, or nil for hours-based or absent policies. Used by the
// registry to store next_maintenance_date eagerly when a service is recorded.
func CalendarDue(lastService time.Time, mi *domain.MaintenanceInterval) *time.Time {
	if mi == nil || mi.Unit == domain.UnitHours {
		return nil
	}
	due := addCalendarInterval(lastService, mi.Value, mi.Unit)
	return &due
}

// addCalendarInterval advances a date by a day- or month-based interval.
// Day intervals may be fractional and are added as a duration. Month
// intervals clamp to the last valid day of the target month (Jan 31 plus one
// month is Feb 28, never Mar 3); fractional month values truncate since a
// calendar month has no stable fractional length.
func addCalendarInterval(t time.Time, value float64, unit domain.IntervalUnit) time.Time {
	if unit == domain.UnitMonths {
		return addMonthsClamped(t, int(value))
	}
	return t.Add(time.Duration(value * 24 * float64(time.Hour)))
}

func addMonthsClamped(t time.Time, months int) time.Time {
	// Anchor on the first of the month so AddDate cannot roll over.
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, months, 0)

	day := t.Day()
	if last := lastDayOfMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
