package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a spare-part catalog entry. QuantityOnHand is only ever
// mutated through the ledger's adjust operation.
type InventoryItem struct {
	ID             string
	SKU            string
	Name           string
	Description    string
	Location       string
	QuantityOnHand int
	// MinQuantity is a reorder threshold, not a hard floor.
	MinQuantity int
	UnitCost    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeSKU canonicalizes a SKU for storage and lookup.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// Validate checks required fields and quantity bounds.
func (i *InventoryItem) Validate() error {
	if NormalizeSKU(i.SKU) == "" {
		return &ValidationError{Field: "sku", Msg: "is required"}
	}
	if strings.TrimSpace(i.Name) == "" {
		return &ValidationError{Field: "name", Msg: "is required"}
	}
	if i.QuantityOnHand < 0 {
		return &ValidationError{Field: "quantityOnHand", Msg: "cannot be negative"}
	}
	if i.MinQuantity < 0 {
		return &ValidationError{Field: "minQuantity", Msg: "cannot be negative"}
	}
	if i.UnitCost.IsNegative() {
		return &ValidationError{Field: "unitCost", Msg: "cannot be negative"}
	}
	return nil
}

// BelowMin reports whether the item is at or under its reorder threshold.
func (i *InventoryItem) BelowMin() bool {
	return i.QuantityOnHand <= i.MinQuantity
}

// StockValue returns unit cost times quantity on hand.
func (i *InventoryItem) StockValue() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.QuantityOnHand)))
}
