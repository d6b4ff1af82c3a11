package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/mainstay/internal/db"
	"github.com/alexanderramin/mainstay/internal/domain"
	"github.com/shopspring/decimal"
)

// inventoryColumns is the canonical SELECT column list for inventory_items.
const inventoryColumns = `id, sku, name, description, location,
		quantity_on_hand, min_quantity, unit_cost, created_at, updated_at`

// SQLiteInventoryRepo implements InventoryRepo using a SQLite database.
type SQLiteInventoryRepo struct {
	db db.DBTX
}

// NewSQLiteInventoryRepo creates a new SQLiteInventoryRepo.
func NewSQLiteInventoryRepo(db db.DBTX) *SQLiteInventoryRepo {
	return &SQLiteInventoryRepo{db: db}
}

func (r *SQLiteInventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	query := `INSERT INTO inventory_items (` + inventoryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.SKU,
		item.Name,
		item.Description,
		item.Location,
		item.QuantityOnHand,
		item.MinQuantity,
		item.UnitCost.String(),
		item.CreatedAt.Format(time.RFC3339),
		item.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting inventory item: %w", err)
	}
	return nil
}

func (r *SQLiteInventoryRepo) GetByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE id = ?`
	return scanInventoryRow(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteInventoryRepo) GetBySKU(ctx context.Context, sku string) (*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items WHERE sku = ?`
	return scanInventoryRow(r.db.QueryRowContext(ctx, query, domain.NormalizeSKU(sku)))
}

func (r *SQLiteInventoryRepo) List(ctx context.Context) ([]*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items ORDER BY sku`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing inventory items: %w", err)
	}
	defer rows.Close()
	return scanInventoryRows(rows)
}

func (r *SQLiteInventoryRepo) ListBelowMin(ctx context.Context) ([]*domain.InventoryItem, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_items
		WHERE quantity_on_hand <= min_quantity ORDER BY sku`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing low stock items: %w", err)
	}
	defer rows.Close()
	return scanInventoryRows(rows)
}

func (r *SQLiteInventoryRepo) Update(ctx context.Context, item *domain.InventoryItem) error {
	// quantity_on_hand is deliberately absent: all quantity changes go
	// through AdjustQuantity.
	query := `UPDATE inventory_items SET sku = ?, name = ?, description = ?, location = ?,
		min_quantity = ?, unit_cost = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		item.SKU,
		item.Name,
		item.Description,
		item.Location,
		item.MinQuantity,
		item.UnitCost.String(),
		item.UpdatedAt.Format(time.RFC3339),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating inventory item: %w", err)
	}
	return nil
}

// AdjustQuantity applies delta in a single conditional UPDATE so the
// check-and-write is atomic per item: concurrent adjustments on the same
// item serialize on the statement, adjustments on different items do not
// block each other.
func (r *SQLiteInventoryRepo) AdjustQuantity(ctx context.Context, id string, delta int) (int, error) {
	query := `UPDATE inventory_items
		SET quantity_on_hand = quantity_on_hand + ?, updated_at = ?
		WHERE id = ? AND quantity_on_hand + ? >= 0`
	res, err := r.db.ExecContext(ctx, query, delta, time.Now().UTC().Format(time.RFC3339), id, delta)
	if err != nil {
		return 0, fmt.Errorf("adjusting inventory quantity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("adjusting inventory quantity: %w", err)
	}
	if affected == 0 {
		// Either the item is missing or the delta would go negative.
		item, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			return 0, getErr
		}
		return item.QuantityOnHand, &domain.InsufficientStockError{
			InventoryID: id,
			Available:   item.QuantityOnHand,
			Requested:   -delta,
		}
	}

	var quantity int
	row := r.db.QueryRowContext(ctx, `SELECT quantity_on_hand FROM inventory_items WHERE id = ?`, id)
	if err := row.Scan(&quantity); err != nil {
		return 0, fmt.Errorf("reading adjusted quantity: %w", err)
	}
	return quantity, nil
}

func (r *SQLiteInventoryRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM inventory_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting inventory item: %w", err)
	}
	return nil
}

func scanInventoryItem(row rowScanner) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	var unitCostStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&item.ID, &item.SKU, &item.Name, &item.Description, &item.Location,
		&item.QuantityOnHand, &item.MinQuantity, &unitCostStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	cost, err := decimal.NewFromString(unitCostStr)
	if err != nil {
		return nil, fmt.Errorf("parsing unit_cost: %w", err)
	}
	item.UnitCost = cost

	item.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	item.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &item, nil
}

func scanInventoryRow(row *sql.Row) (*domain.InventoryItem, error) {
	item, err := scanInventoryItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("inventory item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning inventory item: %w", err)
	}
	return item, nil
}

func scanInventoryRows(rows *sql.Rows) ([]*domain.InventoryItem, error) {
	var items []*domain.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning inventory item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating inventory items: %w", err)
	}
	return items, nil
}
