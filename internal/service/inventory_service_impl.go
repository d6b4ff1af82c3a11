package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/alexanderramin/mainstay/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type inventoryService struct {
	inventory repository.InventoryRepo
	clock     Clock
	observer  OperationObserver
}

// NewInventoryService creates the inventory ledger. A nil clock falls back
// to the system clock.
func NewInventoryService(inventory repository.InventoryRepo, clock Clock, observers ...OperationObserver) InventoryService {
	return &inventoryService{
		inventory: inventory,
		clock:     clockOrSystem(clock),
		observer:  operationObserverOrNoop(observers),
	}
}

func (s *inventoryService) Create(ctx context.Context, item *domain.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.SKU = domain.NormalizeSKU(item.SKU)
	now := s.clock.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := item.Validate(); err != nil {
		return err
	}

	// SKU uniqueness is enforced here, not by the ledger's adjust path.
	existing, err := s.inventory.GetBySKU(ctx, item.SKU)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if existing != nil {
		return &domain.ValidationError{Field: "sku", Msg: fmt.Sprintf("%q already exists", item.SKU)}
	}
	return s.inventory.Create(ctx, item)
}

func (s *inventoryService) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return s.inventory.GetByID(ctx, id)
}

func (s *inventoryService) GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	return s.inventory.GetBySKU(ctx, sku)
}

func (s *inventoryService) List(ctx context.Context) ([]*domain.InventoryItem, error) {
	return s.inventory.List(ctx)
}

func (s *inventoryService) ListBelowMin(ctx context.Context) ([]*domain.InventoryItem, error) {
	return s.inventory.ListBelowMin(ctx)
}

func (s *inventoryService) Update(ctx context.Context, item *domain.InventoryItem) error {
	item.SKU = domain.NormalizeSKU(item.SKU)
	if err := item.Validate(); err != nil {
		return err
	}
	item.UpdatedAt = s.clock.Now()
	return s.inventory.Update(ctx, item)
}

func (s *inventoryService) Delete(ctx context.Context, id string) error {
	return s.inventory.Delete(ctx, id)
}

func (s *inventoryService) Adjust(ctx context.Context, id string, delta int) (int, error) {
	started := s.clock.Now()
	quantity, err := s.inventory.AdjustQuantity(ctx, id, delta)

	s.observer.ObserveOperation(ctx, OperationEvent{
		Name:      "inventory.adjust",
		Success:   err == nil,
		Err:       err,
		StartedAt: started,
		Fields:    map[string]any{"inventory_id": id, "delta": delta, "quantity": quantity},
	})
	return quantity, err
}

func (s *inventoryService) TotalStockValue(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.StockValue())
	}
	return total, nil
}
