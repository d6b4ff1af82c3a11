package repository

import (
	"context"

	"github.com/alexanderramin/mainstay/internal/domain"
)

type EquipmentRepo interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	GetBySerial(ctx context.Context, serial string) (*domain.Equipment, error)
	List(ctx context.Context) ([]*domain.Equipment, error)
	// ListWithPolicy returns non-decommissioned equipment that has a
	// maintenance interval, the candidate set for urgency ranking.
	ListWithPolicy(ctx context.Context) ([]*domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) error
	Delete(ctx context.Context, id string) error
}

type InventoryRepo interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error)
	List(ctx context.Context) ([]*domain.InventoryItem, error)
	ListBelowMin(ctx context.Context) ([]*domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	// AdjustQuantity applies a signed delta to quantity_on_hand as a single
	// atomic statement and returns the new quantity. A delta that would
	// drive the quantity negative returns *domain.InsufficientStockError
	// and leaves the row unchanged.
	AdjustQuantity(ctx context.Context, id string, delta int) (int, error)
	Delete(ctx context.Context, id string) error
}

type WorkOrderRepo interface {
	Create(ctx context.Context, w *domain.WorkOrder) error
	GetByID(ctx context.Context, id string) (*domain.WorkOrder, error)
	List(ctx context.Context) ([]*domain.WorkOrder, error)
	ListByEquipment(ctx context.Context, equipmentID string) ([]*domain.WorkOrder, error)
	Update(ctx context.Context, w *domain.WorkOrder) error
	Delete(ctx context.Context, id string) error
}
