package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func validEquipment() *Equipment {
	return &Equipment{
		ID:           "eq-1",
		SerialNumber: "SN-1000",
		Name:         "Generator A",
		Type:         "generator",
		Status:       EquipmentOperational,
	}
}

func TestEquipment_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Equipment)
		field  string
	}{
		{name: "missing serial", mutate: func(e *Equipment) { e.SerialNumber = " " }, field: "serialNumber"},
		{name: "missing name", mutate: func(e *Equipment) { e.Name = "" }, field: "name"},
		{name: "bad status", mutate: func(e *Equipment) { e.Status = "broken" }, field: "status"},
		{
			name:   "non-positive interval",
			mutate: func(e *Equipment) { e.Interval = &MaintenanceInterval{Value: 0, Unit: UnitDays} },
			field:  "interval.value",
		},
		{
			name:   "bad interval unit",
			mutate: func(e *Equipment) { e.Interval = &MaintenanceInterval{Value: 30, Unit: "weeks"} },
			field:  "interval.unit",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := validEquipment()
			tc.mutate(e)

			var verr *ValidationError
			require.ErrorAs(t, e.Validate(), &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}

	e := validEquipment()
	e.Interval = &MaintenanceInterval{Value: 0.5, Unit: UnitMonths}
	assert.NoError(t, e.Validate(), "fractional interval values are allowed")
}

func TestEquipment_RecordService(t *testing.T) {
	nextDue := testNow.AddDate(0, 1, 0)

	t.Run("explicit service hours", func(t *testing.T) {
		e := validEquipment()
		e.CurrentHours = floatPtr(900)

		e.RecordService(testNow, floatPtr(850), &nextDue)

		require.NotNil(t, e.LastService)
		assert.Equal(t, testNow, e.LastService.Date)
		require.NotNil(t, e.LastService.HoursAtService)
		assert.Equal(t, 850.0, *e.LastService.HoursAtService)
		assert.Equal(t, &nextDue, e.NextMaintenanceDate)
	})

	t.Run("falls back to current reading", func(t *testing.T) {
		e := validEquipment()
		e.CurrentHours = floatPtr(900)

		e.RecordService(testNow, nil, nil)

		require.NotNil(t, e.LastService.HoursAtService)
		assert.Equal(t, 900.0, *e.LastService.HoursAtService)
		assert.Nil(t, e.NextMaintenanceDate)
	})

	t.Run("no reading anywhere anchors at zero", func(t *testing.T) {
		e := validEquipment()

		e.RecordService(testNow, nil, nil)

		require.NotNil(t, e.LastService.HoursAtService)
		assert.Equal(t, 0.0, *e.LastService.HoursAtService)
	})
}

func TestEquipment_ApplyHoursReading(t *testing.T) {
	e := validEquipment()
	e.CurrentHours = floatPtr(500)

	e.ApplyHoursReading(650, testNow)
	require.NotNil(t, e.CurrentHours)
	assert.Equal(t, 650.0, *e.CurrentHours)

	// Meter replaced in the field, reading goes backwards.
	e.ApplyHoursReading(10, testNow)
	assert.Equal(t, 10.0, *e.CurrentHours)
}
