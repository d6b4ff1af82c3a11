package domain

import "fmt"

// ValidationError reports a field that failed constructor-boundary validation.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// InvalidTransitionError reports an illegal work order status change.
type InvalidTransitionError struct {
	From WorkOrderStatus
	To   WorkOrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid work order transition from %q to %q", e.From, e.To)
}

// InsufficientStockError reports a stock adjustment that would drive an
// item's quantity negative. The item is left unchanged.
type InsufficientStockError struct {
	InventoryID string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %s: requested %d, available %d",
		e.InventoryID, e.Requested, e.Available)
}
