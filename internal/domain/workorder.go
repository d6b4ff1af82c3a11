package domain

import (
	"sort"
	"strings"
	"time"
)

// PartLine is one requested bill-of-materials line on a work order.
// Lines are immutable once the order has reached a terminal state.
type PartLine struct {
	InventoryID       string
	QuantityRequested int
}

// PartShortage is an advisory warning: a requested part line could not be
// covered by current stock. It never blocks creation or completion.
type PartShortage struct {
	InventoryID string
	SKU         string
	Name        string
	Requested   int
	Available   int
}

type WorkOrder struct {
	ID          string
	EquipmentID *string
	Title       string
	Description string
	Status      WorkOrderStatus
	// Priority orders listings only; there is no scheduling preemption.
	Priority WorkOrderPriority
	Parts    []PartLine
	// CompletedAt is set exactly once, the first time the order completes.
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks required fields, enum membership and part line quantities.
func (w *WorkOrder) Validate() error {
	if strings.TrimSpace(w.Title) == "" {
		return &ValidationError{Field: "title", Msg: "is required"}
	}
	if !ValidWorkOrderStatuses[w.Status] {
		return &ValidationError{Field: "status", Msg: "must be one of pending, in_progress, completed, cancelled"}
	}
	if !ValidWorkOrderPriorities[w.Priority] {
		return &ValidationError{Field: "priority", Msg: "must be one of low, medium, high, critical"}
	}
	for _, line := range w.Parts {
		if line.InventoryID == "" {
			return &ValidationError{Field: "parts.inventoryId", Msg: "is required"}
		}
		if line.QuantityRequested <= 0 {
			return &ValidationError{Field: "parts.quantityRequested", Msg: "must be positive"}
		}
	}
	return nil
}

// IsTerminal reports whether the order can accept no further transitions.
func (w *WorkOrder) IsTerminal() bool {
	return w.Status == WorkOrderCompleted || w.Status == WorkOrderCancelled
}

// Start moves the order from pending to in_progress.
func (w *WorkOrder) Start(now time.Time) error {
	if w.Status != WorkOrderPending {
		return &InvalidTransitionError{From: w.Status, To: WorkOrderInProgress}
	}
	w.Status = WorkOrderInProgress
	w.UpdatedAt = now
	return nil
}

// Complete moves the order to completed and stamps CompletedAt once.
// Inventory deduction is the lifecycle service's side effect, keyed off a
// successful call here so it can never run twice.
func (w *WorkOrder) Complete(now time.Time) error {
	if w.Status != WorkOrderPending && w.Status != WorkOrderInProgress {
		return &InvalidTransitionError{From: w.Status, To: WorkOrderCompleted}
	}
	w.Status = WorkOrderCompleted
	if w.CompletedAt == nil {
		w.CompletedAt = &now
	}
	w.UpdatedAt = now
	return nil
}

// Cancel moves the order to cancelled. Nothing was ever deducted, so there
// is no inventory effect.
func (w *WorkOrder) Cancel(now time.Time) error {
	if w.Status != WorkOrderPending && w.Status != WorkOrderInProgress {
		return &InvalidTransitionError{From: w.Status, To: WorkOrderCancelled}
	}
	w.Status = WorkOrderCancelled
	w.UpdatedAt = now
	return nil
}

// Transition dispatches to the matching state change method.
func (w *WorkOrder) Transition(to WorkOrderStatus, now time.Time) error {
	switch to {
	case WorkOrderInProgress:
		return w.Start(now)
	case WorkOrderCompleted:
		return w.Complete(now)
	case WorkOrderCancelled:
		return w.Cancel(now)
	default:
		return &InvalidTransitionError{From: w.Status, To: to}
	}
}

// SortForDisplay orders work orders by priority rank (critical first),
// tie-broken by creation time descending. Presentation ordering only.
func SortForDisplay(orders []*WorkOrder) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		rankA, rankB := PriorityRank(a.Priority), PriorityRank(b.Priority)
		if rankA != rankB {
			return rankA < rankB
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
