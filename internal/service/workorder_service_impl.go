package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/mainstay/internal/db"
	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/alexanderramin/mainstay/internal/repository"
	"github.com/google/uuid"
)

type workOrderService struct {
	workOrders repository.WorkOrderRepo
	inventory  repository.InventoryRepo
	uow        db.UnitOfWork
	clock      Clock
	observer   OperationObserver
}

// NewWorkOrderService creates the work order lifecycle service. A nil clock
// falls back to the system clock.
func NewWorkOrderService(workOrders repository.WorkOrderRepo, inventory repository.InventoryRepo, uow db.UnitOfWork, clock Clock, observers ...OperationObserver) WorkOrderService {
	return &workOrderService{
		workOrders: workOrders,
		inventory:  inventory,
		uow:        uow,
		clock:      clockOrSystem(clock),
		observer:   operationObserverOrNoop(observers),
	}
}

func (s *workOrderService) Create(ctx context.Context, w *domain.WorkOrder) ([]domain.PartShortage, error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := s.clock.Now()
	w.CreatedAt = now
	w.UpdatedAt = now
	if w.Status == "" {
		w.Status = domain.WorkOrderPending
	}
	if w.Priority == "" {
		w.Priority = domain.PriorityMedium
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}

	// Availability is advisory at creation: a short part never blocks the
	// order (the shop runs on backorders), the caller just gets warned.
	shortages, err := s.checkAvailability(ctx, s.inventory, w.Parts)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteWorkOrderRepo(tx).Create(ctx, w)
	})
	if err != nil {
		return nil, err
	}

	s.observer.ObserveOperation(ctx, OperationEvent{
		Name:      "workorder.create",
		Success:   true,
		StartedAt: now,
		Fields:    map[string]any{"work_order_id": w.ID, "parts": len(w.Parts), "short_lines": len(shortages)},
	})
	return shortages, nil
}

func (s *workOrderService) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	return s.workOrders.GetByID(ctx, id)
}

func (s *workOrderService) List(ctx context.Context) ([]*domain.WorkOrder, error) {
	orders, err := s.workOrders.List(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortForDisplay(orders)
	return orders, nil
}

func (s *workOrderService) ListByEquipment(ctx context.Context, equipmentID string) ([]*domain.WorkOrder, error) {
	orders, err := s.workOrders.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, err
	}
	domain.SortForDisplay(orders)
	return orders, nil
}

func (s *workOrderService) Update(ctx context.Context, w *domain.WorkOrder) error {
	current, err := s.workOrders.GetByID(ctx, w.ID)
	if err != nil {
		return err
	}
	if current.IsTerminal() {
		// Part lines on a terminal order are immutable: a completed order
		// has already deducted (or warned about) them.
		return &domain.ValidationError{Field: "status", Msg: "cannot modify a completed or cancelled work order"}
	}

	// Status and completion only change through Transition.
	w.Status = current.Status
	w.CompletedAt = current.CompletedAt
	if err := w.Validate(); err != nil {
		return err
	}
	w.UpdatedAt = s.clock.Now()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteWorkOrderRepo(tx).Update(ctx, w)
	})
}

func (s *workOrderService) Transition(ctx context.Context, id string, to domain.WorkOrderStatus) (*domain.WorkOrder, []domain.PartShortage, error) {
	now := s.clock.Now()

	var order *domain.WorkOrder
	var warnings []domain.PartShortage
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txOrders := repository.NewSQLiteWorkOrderRepo(tx)
		txInventory := repository.NewSQLiteInventoryRepo(tx)

		w, err := txOrders.GetByID(ctx, id)
		if err != nil {
			return err
		}

		wasCompleted := w.Status == domain.WorkOrderCompleted
		if err := w.Transition(to, now); err != nil {
			return err
		}

		// Deduction happens exactly once: only a successful transition into
		// completed reaches this point, and completed is terminal.
		if to == domain.WorkOrderCompleted && !wasCompleted {
			warnings, err = s.deductParts(ctx, txInventory, w)
			if err != nil {
				return err
			}
		}

		if err := txOrders.Update(ctx, w); err != nil {
			return err
		}
		order = w
		return nil
	})

	s.observer.ObserveOperation(ctx, OperationEvent{
		Name:      "workorder.transition",
		Success:   err == nil,
		Err:       err,
		StartedAt: now,
		Fields:    map[string]any{"work_order_id": id, "to": string(to), "short_lines": len(warnings)},
	})
	if err != nil {
		return nil, nil, err
	}
	return order, warnings, nil
}

func (s *workOrderService) Delete(ctx context.Context, id string) error {
	return s.workOrders.Delete(ctx, id)
}

// checkAvailability reports every part line whose request exceeds current
// stock. It never mutates anything.
func (s *workOrderService) checkAvailability(ctx context.Context, inventory repository.InventoryRepo, parts []domain.PartLine) ([]domain.PartShortage, error) {
	var shortages []domain.PartShortage
	for _, line := range parts {
		item, err := inventory.GetByID(ctx, line.InventoryID)
		if err != nil {
			return nil, err
		}
		if item.QuantityOnHand < line.QuantityRequested {
			shortages = append(shortages, domain.PartShortage{
				InventoryID: item.ID,
				SKU:         item.SKU,
				Name:        item.Name,
				Requested:   line.QuantityRequested,
				Available:   item.QuantityOnHand,
			})
		}
	}
	return shortages, nil
}

// deductParts is best-effort: a short line is skipped and reported, it never
// blocks the other lines or the completion itself.
func (s *workOrderService) deductParts(ctx context.Context, inventory repository.InventoryRepo, w *domain.WorkOrder) ([]domain.PartShortage, error) {
	var warnings []domain.PartShortage
	for _, line := range w.Parts {
		_, err := inventory.AdjustQuantity(ctx, line.InventoryID, -line.QuantityRequested)
		if err == nil {
			continue
		}

		var short *domain.InsufficientStockError
		if !errors.As(err, &short) {
			return nil, err
		}
		warning := domain.PartShortage{
			InventoryID: line.InventoryID,
			Requested:   line.QuantityRequested,
			Available:   short.Available,
		}
		// SKU and name are display sugar on the warning; skip them if the
		// lookup fails rather than failing the completion.
		if item, lookupErr := inventory.GetByID(ctx, line.InventoryID); lookupErr == nil {
			warning.SKU = item.SKU
			warning.Name = item.Name
		}
		warnings = append(warnings, warning)
	}
	return warnings, nil
}
