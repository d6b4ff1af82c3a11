package maintenance

import (
	"math"
	"time"

	"github.com/alexanderramin/mainstay/internal/domain"
)

// Axis is the dimension a maintenance policy is measured against.
type Axis string

const (
	AxisNone     Axis = "none"
	AxisCalendar Axis = "calendar"
	AxisHours    Axis = "hours"
)

// ProjectionInput carries everything a projection needs. Now is explicit so
// results are deterministic under test.
type ProjectionInput struct {
	Interval     *domain.MaintenanceInterval
	LastService  *domain.LastService
	CurrentHours *float64
	Now          time.Time
}

// Projection is the computed next-due estimate for a piece of equipment.
// Exactly one of NextDueDate / NextDueHours is set, or both are absent when
// the required inputs are missing. Absence is a valid, observable state: it
// means "cannot be computed", not "due now".
type Projection struct {
	Axis             Axis
	NextDueDate      *time.Time
	NextDueHours     *float64
	DaysRemaining    *int
	HoursRemaining   *float64
	PercentRemaining float64
}

// HasDuePoint reports whether the projection produced a concrete due point.
func (p Projection) HasDuePoint() bool {
	return p.NextDueDate != nil || p.NextDueHours != nil
}

// Project computes the maintenance projection for one piece of equipment.
// Missing optional inputs never raise an error; the affected fields simply
// stay empty and PercentRemaining stays at 100.
func Project(input ProjectionInput) Projection {
	if input.Interval == nil {
		return Projection{Axis: AxisNone, PercentRemaining: 100}
	}

	switch input.Interval.Unit {
	case domain.UnitHours:
		return projectHours(input)
	default:
		return projectCalendar(input)
	}
}

func projectCalendar(input ProjectionInput) Projection {
	proj := Projection{Axis: AxisCalendar, PercentRemaining: 100}
	if input.LastService == nil {
		// No anchor: cannot project.
		return proj
	}

	nextDue := addCalendarInterval(input.LastService.Date, input.Interval.Value, input.Interval.Unit)
	proj.NextDueDate = &nextDue

	days := int(math.Ceil(nextDue.Sub(input.Now).Hours() / 24))
	proj.DaysRemaining = &days

	interval := nextDue.Sub(input.LastService.Date)
	if interval <= 0 {
		// Malformed policy: treat as fully consumed.
		proj.PercentRemaining = 0
		return proj
	}
	remaining := nextDue.Sub(input.Now)
	proj.PercentRemaining = clampPercent(float64(remaining) / float64(interval) * 100)
	return proj
}

func projectHours(input ProjectionInput) Projection {
	proj := Projection{Axis: AxisHours, PercentRemaining: 100}
	if input.LastService == nil || input.LastService.HoursAtService == nil || input.CurrentHours == nil {
		return proj
	}

	anchor := *input.LastService.HoursAtService
	nextDue := anchor + input.Interval.Value
	proj.NextDueHours = &nextDue

	remaining := nextDue - *input.CurrentHours
	proj.HoursRemaining = &remaining

	if input.Interval.Value <= 0 {
		proj.PercentRemaining = 0
		return proj
	}
	used := *input.CurrentHours - anchor
	proj.PercentRemaining = clampPercent((input.Interval.Value - used) / input.Interval.Value * 100)
	return proj
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
