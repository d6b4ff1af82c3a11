package domain

import (
	"strings"
	"time"
)

// MaintenanceInterval is the service policy for a piece of equipment:
// "every Value Unit" since the last service.
type MaintenanceInterval struct {
	Value float64
	Unit  IntervalUnit
}

// Validate checks the interval at the constructor boundary.
func (mi *MaintenanceInterval) Validate() error {
	if mi.Value <= 0 {
		return &ValidationError{Field: "interval.value", Msg: "must be a positive number"}
	}
	if !ValidIntervalUnits[mi.Unit] {
		return &ValidationError{Field: "interval.unit", Msg: "must be one of days, months, hours"}
	}
	return nil
}

// LastService anchors maintenance projection. HoursAtService is only
// meaningful for hours-based policies and may be absent.
type LastService struct {
	Date           time.Time
	HoursAtService *float64
}

type Equipment struct {
	ID           string
	SerialNumber string
	Name         string
	Type         string
	Model        string
	Manufacturer string
	Location     string
	Status       EquipmentStatus

	// Interval is optional: equipment without a policy has no projection.
	Interval    *MaintenanceInterval
	LastService *LastService

	// CurrentHours is the latest meter reading, updated externally.
	CurrentHours *float64

	// NextMaintenanceDate is stored eagerly for calendar policies when a
	// service is recorded. Hours-based due points are never stored.
	NextMaintenanceDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks required fields and enum membership.
func (e *Equipment) Validate() error {
	if strings.TrimSpace(e.SerialNumber) == "" {
		return &ValidationError{Field: "serialNumber", Msg: "is required"}
	}
	if strings.TrimSpace(e.Name) == "" {
		return &ValidationError{Field: "name", Msg: "is required"}
	}
	if !ValidEquipmentStatuses[e.Status] {
		return &ValidationError{Field: "status", Msg: "must be one of operational, maintenance, out_of_service, decommissioned"}
	}
	if e.Interval != nil {
		if err := e.Interval.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// RecordService marks the equipment as serviced at now. For hours-based
// policies the anchor meter reading is serviceHours when supplied, falling
// back to the current reading, then zero. The stored next maintenance date
// is refreshed for calendar policies and cleared otherwise; hours due points
// are always recomputed on read.
func (e *Equipment) RecordService(now time.Time, serviceHours *float64, nextDue *time.Time) {
	hours := 0.0
	switch {
	case serviceHours != nil:
		hours = *serviceHours
	case e.CurrentHours != nil:
		hours = *e.CurrentHours
	}
	e.LastService = &LastService{Date: now, HoursAtService: &hours}
	e.NextMaintenanceDate = nextDue
	e.UpdatedAt = now
}

// ApplyHoursReading records a new meter reading. Decreases are accepted:
// meters get reset or replaced in the field. A lower reading retroactively
// shrinks "used" hours, which can make the projection look less urgent.
func (e *Equipment) ApplyHoursReading(hours float64, now time.Time) {
	e.CurrentHours = &hours
	e.UpdatedAt = now
}
