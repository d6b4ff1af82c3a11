package service

import (
	"context"

	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/alexanderramin/mainstay/internal/maintenance"
	"github.com/alexanderramin/mainstay/internal/repository"
	"github.com/google/uuid"
)

type equipmentService struct {
	equipment  repository.EquipmentRepo
	clock      Clock
	classifier maintenance.Classifier
	observer   OperationObserver
}

// NewEquipmentService creates the equipment registry. A nil clock falls back
// to the system clock.
func NewEquipmentService(equipment repository.EquipmentRepo, clock Clock, classifier maintenance.Classifier, observers ...OperationObserver) EquipmentService {
	return &equipmentService{
		equipment:  equipment,
		clock:      clockOrSystem(clock),
		classifier: classifier,
		observer:   operationObserverOrNoop(observers),
	}
}

func (s *equipmentService) Create(ctx context.Context, e *domain.Equipment) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := s.clock.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	if e.Status == "" {
		e.Status = domain.EquipmentOperational
	}
	if err := e.Validate(); err != nil {
		return err
	}
	return s.equipment.Create(ctx, e)
}

func (s *equipmentService) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	return s.equipment.GetByID(ctx, id)
}

func (s *equipmentService) List(ctx context.Context) ([]*domain.Equipment, error) {
	return s.equipment.List(ctx)
}

func (s *equipmentService) Update(ctx context.Context, e *domain.Equipment) error {
	if err := e.Validate(); err != nil {
		return err
	}
	e.UpdatedAt = s.clock.Now()
	return s.equipment.Update(ctx, e)
}

func (s *equipmentService) Delete(ctx context.Context, id string) error {
	return s.equipment.Delete(ctx, id)
}

func (s *equipmentService) RecordService(ctx context.Context, id string, serviceHours *float64) (*domain.Equipment, error) {
	e, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	e.RecordService(now, serviceHours, maintenance.CalendarDue(now, e.Interval))
	if err := s.equipment.Update(ctx, e); err != nil {
		return nil, err
	}

	s.observer.ObserveOperation(ctx, OperationEvent{
		Name:      "equipment.record_service",
		Success:   true,
		StartedAt: now,
		Fields:    map[string]any{"equipment_id": e.ID, "serial": e.SerialNumber},
	})
	return e, nil
}

func (s *equipmentService) UpdateCurrentHours(ctx context.Context, id string, hours float64) (*domain.Equipment, error) {
	e, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	fields := map[string]any{"equipment_id": e.ID, "hours": hours}
	if e.CurrentHours != nil && hours < *e.CurrentHours {
		// Permitted (meter reset/replacement) but worth an audit trail.
		fields["previous_hours"] = *e.CurrentHours
		fields["decreased"] = true
	}
	e.ApplyHoursReading(hours, now)
	if err := s.equipment.Update(ctx, e); err != nil {
		return nil, err
	}

	s.observer.ObserveOperation(ctx, OperationEvent{
		Name:      "equipment.update_hours",
		Success:   true,
		StartedAt: now,
		Fields:    fields,
	})
	return e, nil
}

func (s *equipmentService) Projection(e *domain.Equipment) maintenance.Projection {
	return maintenance.Project(maintenance.ProjectionInput{
		Interval:     e.Interval,
		LastService:  e.LastService,
		CurrentHours: e.CurrentHours,
		Now:          s.clock.Now(),
	})
}

func (s *equipmentService) IsUrgent(e *domain.Equipment) bool {
	return s.classifier.IsUrgent(s.Projection(e))
}

func (s *equipmentService) ListUrgent(ctx context.Context, limit int) ([]maintenance.UrgentEquipment, error) {
	candidates, err := s.equipment.ListWithPolicy(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	var urgent []maintenance.UrgentEquipment
	for _, e := range candidates {
		proj := maintenance.Project(maintenance.ProjectionInput{
			Interval:     e.Interval,
			LastService:  e.LastService,
			CurrentHours: e.CurrentHours,
			Now:          now,
		})
		if s.classifier.IsUrgent(proj) {
			urgent = append(urgent, maintenance.UrgentEquipment{Equipment: e, Projection: proj})
		}
	}

	maintenance.SortByUrgency(urgent)
	if limit > 0 && len(urgent) > limit {
		urgent = urgent[:limit]
	}
	return urgent, nil
}
