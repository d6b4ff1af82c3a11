package service

import (
	"context"

	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/alexanderramin/mainstay/internal/maintenance"
	"github.com/shopspring/decimal"
)

// EquipmentService is the equipment registry: it owns equipment mutation and
// enriches reads with maintenance projections.
type EquipmentService interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	List(ctx context.Context) ([]*domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) error
	Delete(ctx context.Context, id string) error

	// RecordService marks equipment as serviced now. serviceHours anchors
	// hours-based policies; nil falls back to the current meter reading.
	RecordService(ctx context.Context, id string, serviceHours *float64) (*domain.Equipment, error)
	// UpdateCurrentHours stores a new meter reading. Decreases are accepted.
	UpdateCurrentHours(ctx context.Context, id string, hours float64) (*domain.Equipment, error)

	Projection(e *domain.Equipment) maintenance.Projection
	IsUrgent(e *domain.Equipment) bool
	// ListUrgent returns the most urgent equipment with a maintenance
	// policy, ranked per maintenance.SortByUrgency, capped at limit.
	ListUrgent(ctx context.Context, limit int) ([]maintenance.UrgentEquipment, error)
}

// InventoryService is the inventory ledger: the single choke point for all
// stock quantity changes.
type InventoryService interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)
	List(ctx context.Context) ([]*domain.InventoryItem, error)
	ListBelowMin(ctx context.Context) ([]*domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	Delete(ctx context.Context, id string) error

	// Adjust applies a signed quantity delta (positive receives, negative
	// issues) and returns the new quantity. A delta that would go negative
	// returns *domain.InsufficientStockError without mutating.
	Adjust(ctx context.Context, id string, delta int) (int, error)
	TotalStockValue(ctx context.Context) (decimal.Decimal, error)
}

// WorkOrderService orchestrates the work order lifecycle, including
// best-effort inventory deduction on completion.
type WorkOrderService interface {
	// Create persists the order. Part shortages are advisory: the order is
	// created regardless and every short line is reported as a warning.
	Create(ctx context.Context, w *domain.WorkOrder) ([]domain.PartShortage, error)
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	// List returns all work orders in display order: priority rank first,
	// newest first within a rank.
	List(ctx context.Context) ([]*domain.WorkOrder, error)
	ListByEquipment(ctx context.Context, equipmentID string) ([]*domain.WorkOrder, error)
	Update(ctx context.Context, w *domain.WorkOrder) error
	// Transition applies a status change. Completing deducts parts at most
	// once, best effort per line; shortages come back as warnings.
	Transition(ctx context.Context, id string, to domain.WorkOrderStatus) (*domain.WorkOrder, []domain.PartShortage, error)
	Delete(ctx context.Context, id string) error
}
