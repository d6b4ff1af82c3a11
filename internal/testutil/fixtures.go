package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var serialCounter atomic.Int64

// Equipment options
type EquipmentOption func(*domain.Equipment)

func WithEquipmentStatus(s domain.EquipmentStatus) EquipmentOption {
	return func(e *domain.Equipment) {
		e.Status = s
	}
}

func WithInterval(value float64, unit domain.IntervalUnit) EquipmentOption {
	return func(e *domain.Equipment) {
		e.Interval = &domain.MaintenanceInterval{Value: value, Unit: unit}
	}
}

func WithLastService(date time.Time, hoursAtService *float64) EquipmentOption {
	return func(e *domain.Equipment) {
		e.LastService = &domain.LastService{Date: date, HoursAtService: hoursAtService}
	}
}

func WithCurrentHours(hours float64) EquipmentOption {
	return func(e *domain.Equipment) {
		e.CurrentHours = &hours
	}
}

func NewTestEquipment(name string, opts ...EquipmentOption) *domain.Equipment {
	now := time.Now().UTC()
	e := &domain.Equipment{
		ID:           uuid.New().String(),
		SerialNumber: fmt.Sprintf("SN-%04d", serialCounter.Add(1)),
		Name:         name,
		Type:         "generator",
		Status:       domain.EquipmentOperational,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Inventory options
type InventoryOption func(*domain.InventoryItem)

func WithQuantity(qty int) InventoryOption {
	return func(i *domain.InventoryItem) {
		i.QuantityOnHand = qty
	}
}

func WithMinQuantity(min int) InventoryOption {
	return func(i *domain.InventoryItem) {
		i.MinQuantity = min
	}
}

func WithUnitCost(cost string) InventoryOption {
	return func(i *domain.InventoryItem) {
		i.UnitCost = decimal.RequireFromString(cost)
	}
}

func NewTestInventoryItem(sku string, opts ...InventoryOption) *domain.InventoryItem {
	now := time.Now().UTC()
	i := &domain.InventoryItem{
		ID:        uuid.New().String(),
		SKU:       domain.NormalizeSKU(sku),
		Name:      "Part " + sku,
		UnitCost:  decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Work order options
type WorkOrderOption func(*domain.WorkOrder)

func WithWorkOrderStatus(s domain.WorkOrderStatus) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.Status = s
	}
}

func WithPriority(p domain.WorkOrderPriority) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.Priority = p
	}
}

func WithEquipmentID(id string) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.EquipmentID = &id
	}
}

func WithPart(inventoryID string, qty int) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.Parts = append(w.Parts, domain.PartLine{InventoryID: inventoryID, QuantityRequested: qty})
	}
}

func WithCreatedAt(t time.Time) WorkOrderOption {
	return func(w *domain.WorkOrder) {
		w.CreatedAt = t
		w.UpdatedAt = t
	}
}

func NewTestWorkOrder(title string, opts ...WorkOrderOption) *domain.WorkOrder {
	now := time.Now().UTC()
	w := &domain.WorkOrder{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    domain.WorkOrderPending,
		Priority:  domain.PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// FixedClock is a Clock implementation pinned to a single instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }
