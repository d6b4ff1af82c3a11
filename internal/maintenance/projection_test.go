package maintenance

import (
	"testing"
	"time"

	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func floatPtr(v float64) *float64 { return &v }

func TestProject_NoPolicy(t *testing.T) {
	proj := Project(ProjectionInput{Now: testNow})

	assert.Equal(t, AxisNone, proj.Axis)
	assert.Nil(t, proj.NextDueDate)
	assert.Nil(t, proj.NextDueHours)
	assert.Nil(t, proj.DaysRemaining)
	assert.Nil(t, proj.HoursRemaining)
	assert.Equal(t, 100.0, proj.PercentRemaining)
	assert.False(t, proj.HasDuePoint())
}

func TestProject_Calendar_NoAnchor(t *testing.T) {
	proj := Project(ProjectionInput{
		Interval: &domain.MaintenanceInterval{Value: 30, Unit: domain.UnitDays},
		Now:      testNow,
	})

	assert.Equal(t, AxisCalendar, proj.Axis)
	assert.Nil(t, proj.NextDueDate, "no last service date, nothing to project from")
	assert.Nil(t, proj.DaysRemaining)
	assert.Equal(t, 100.0, proj.PercentRemaining)
}

func TestProject_Calendar_Days(t *testing.T) {
	last := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	proj := Project(ProjectionInput{
		Interval:    &domain.MaintenanceInterval{Value: 30, Unit: domain.UnitDays},
		LastService: &domain.LastService{Date: last},
		Now:         time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
	})

	require.NotNil(t, proj.NextDueDate)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), *proj.NextDueDate)
	require.NotNil(t, proj.DaysRemaining)
	assert.Equal(t, 15, *proj.DaysRemaining)
	assert.InDelta(t, 50.0, proj.PercentRemaining, 0.001)
	assert.Nil(t, proj.NextDueHours, "calendar axis must not set hours fields")
}

func TestProject_Calendar_MonthEndClamping(t *testing.T) {
	last := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	proj := Project(ProjectionInput{
		Interval:    &domain.MaintenanceInterval{Value: 1, Unit: domain.UnitMonths},
		LastService: &domain.LastService{Date: last},
		Now:         time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NotNil(t, proj.NextDueDate)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), *proj.NextDueDate,
		"Jan 31 + 1 month clamps to Feb 28, never rolls into March")
}

func TestProject_Calendar_MonthEndClamping_LeapYear(t *testing.T) {
	last := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	proj := Project(ProjectionInput{
		Interval:    &domain.MaintenanceInterval{Value: 1, Unit: domain.UnitMonths},
		LastService: &domain.LastService{Date: last},
		Now:         time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NotNil(t, proj.NextDueDate)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *proj.NextDueDate)
}

func TestProject_Calendar_Overdue(t *testing.T) {
	last := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	proj := Project(ProjectionInput{
		Interval:    &domain.MaintenanceInterval{Value: 30, Unit: domain.UnitDays},
		LastService: &domain.LastService{Date: last},
		Now:         testNow,
	})

	require.NotNil(t, proj.DaysRemaining)
	assert.Negative(t, *proj.DaysRemaining)
	assert.Equal(t, 0.0, proj.PercentRemaining, "overdue clamps to zero, never negative")
}

func TestProject_Calendar_MalformedInterval(t *testing.T) {
	last := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	proj := Project(ProjectionInput{
		Interval:    &domain.MaintenanceInterval{Value: 0, Unit: domain.UnitDays},
		LastService: &domain.LastService{Date: last},
		Now:         testNow,
	})

	assert.Equal(t, 0.0, proj.PercentRemaining, "zero-length interval counts as fully consumed")
}

func TestProject_Hours(t *testing.T) {
	proj := Project(ProjectionInput{
		Interval:     &domain.MaintenanceInterval{Value: 500, Unit: domain.UnitHours},
		LastService:  &domain.LastService{Date: testNow.AddDate(0, -1, 0), HoursAtService: floatPtr(100)},
		CurrentHours: floatPtr(250),
		Now:          testNow,
	})

	assert.Equal(t, AxisHours, proj.Axis)
	require.NotNil(t, proj.NextDueHours)
	assert.Equal(t, 600.0, *proj.NextDueHours)
	require.NotNil(t, proj.HoursRemaining)
	assert.Equal(t, 350.0, *proj.HoursRemaining)
	assert.InDelta(t, 70.0, proj.PercentRemaining, 0.001)
	assert.Nil(t, proj.NextDueDate, "hours axis must not set calendar fields")
}

func TestProject_Hours_Overdue(t *testing.T) {
	proj := Project(ProjectionInput{
		Interval:     &domain.MaintenanceInterval{Value: 500, Unit: domain.UnitHours},
		LastService:  &domain.LastService{Date: testNow.AddDate(0, -3, 0), HoursAtService: floatPtr(100)},
		CurrentHours: floatPtr(700),
		Now:          testNow,
	})

	require.NotNil(t, proj.HoursRemaining)
	assert.Equal(t, -100.0, *proj.HoursRemaining)
	assert.Equal(t, 0.0, proj.PercentRemaining)
}

func TestProject_Hours_MissingInputs(t *testing.T) {
	cases := []struct {
		name  string
		input ProjectionInput
	}{
		{
			name: "no last service",
			input: ProjectionInput{
				Interval:     &domain.MaintenanceInterval{Value: 500, Unit: domain.UnitHours},
				CurrentHours: floatPtr(250),
				Now:          testNow,
			},
		},
		{
			name: "no hours at service",
			input: ProjectionInput{
				Interval:     &domain.MaintenanceInterval{Value: 500, Unit: domain.UnitHours},
				LastService:  &domain.LastService{Date: testNow.AddDate(0, -1, 0)},
				CurrentHours: floatPtr(250),
				Now:          testNow,
			},
		},
		{
			name: "no current hours",
			input: ProjectionInput{
				Interval:    &domain.MaintenanceInterval{Value: 500, Unit: domain.UnitHours},
				LastService: &domain.LastService{Date: testNow.AddDate(0, -1, 0), HoursAtService: floatPtr(100)},
				Now:         testNow,
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			proj := Project(tc.input)
			assert.Equal(t, AxisHours, proj.Axis)
			assert.Nil(t, proj.NextDueHours, "missing inputs mean no data, not zero")
			assert.Nil(t, proj.HoursRemaining)
			assert.Equal(t, 100.0, proj.PercentRemaining)
		})
	}
}

func TestCalendarDue(t *testing.T) {
	anchor := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

	due := CalendarDue(anchor, &domain.MaintenanceInterval{Value: 1, Unit: domain.UnitMonths})
	require.NotNil(t, due)
	assert.Equal(t, time.Date(2025, 4, 30, 12, 0, 0, 0, time.UTC), *due)

	assert.Nil(t, CalendarDue(anchor, nil))
	assert.Nil(t, CalendarDue(anchor, &domain.MaintenanceInterval{Value: 500, Unit: domain.UnitHours}),
		"hours-based due points are never precomputed")
}
