package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/mainstay/internal/db"
	"github.com/alexanderramin/mainstay/internal/domain"
)

// workOrderColumns is the canonical SELECT column list for work_orders.
const workOrderColumns = `id, equipment_id, title, description, status, priority,
		completed_at, created_at, updated_at`

// SQLiteWorkOrderRepo implements WorkOrderRepo using a SQLite database.
// Pass a transaction-backed DBTX to make order-plus-parts writes atomic.
type SQLiteWorkOrderRepo struct {
	db db.DBTX
}

// NewSQLiteWorkOrderRepo creates a new SQLiteWorkOrderRepo.
func NewSQLiteWorkOrderRepo(db db.DBTX) *SQLiteWorkOrderRepo {
	return &SQLiteWorkOrderRepo{db: db}
}

func (r *SQLiteWorkOrderRepo) Create(ctx context.Context, w *domain.WorkOrder) error {
	query := `INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		nullableStringToValue(w.EquipmentID),
		w.Title,
		w.Description,
		string(w.Status),
		string(w.Priority),
		nullableTimeToString(w.CompletedAt, time.RFC3339),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work order: %w", err)
	}
	return r.insertParts(ctx, w)
}

func (r *SQLiteWorkOrderRepo) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE id = ?`
	w, err := scanWorkOrder(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("work order: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work order: %w", err)
	}
	if err := r.loadParts(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *SQLiteWorkOrderRepo) List(ctx context.Context) ([]*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders ORDER BY created_at`
	return r.listOrders(ctx, query)
}

func (r *SQLiteWorkOrderRepo) ListByEquipment(ctx context.Context, equipmentID string) ([]*domain.WorkOrder, error) {
	query := `SELECT ` + workOrderColumns + ` FROM work_orders WHERE equipment_id = ? ORDER BY created_at`
	return r.listOrders(ctx, query, equipmentID)
}

func (r *SQLiteWorkOrderRepo) Update(ctx context.Context, w *domain.WorkOrder) error {
	query := `UPDATE work_orders SET equipment_id = ?, title = ?, description = ?,
		status = ?, priority = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		nullableStringToValue(w.EquipmentID),
		w.Title,
		w.Description,
		string(w.Status),
		string(w.Priority),
		nullableTimeToString(w.CompletedAt, time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work order: %w", err)
	}
	// Part lines are replaced wholesale; the service layer refuses updates
	// once an order is terminal, which keeps deducted lines immutable.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_order_parts WHERE work_order_id = ?`, w.ID); err != nil {
		return fmt.Errorf("clearing work order parts: %w", err)
	}
	return r.insertParts(ctx, w)
}

func (r *SQLiteWorkOrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM work_orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work order: %w", err)
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) insertParts(ctx context.Context, w *domain.WorkOrder) error {
	query := `INSERT INTO work_order_parts (work_order_id, position, inventory_id, quantity_requested)
		VALUES (?, ?, ?, ?)`
	for i, line := range w.Parts {
		if _, err := r.db.ExecContext(ctx, query, w.ID, i, line.InventoryID, line.QuantityRequested); err != nil {
			return fmt.Errorf("inserting work order part %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) loadParts(ctx context.Context, w *domain.WorkOrder) error {
	query := `SELECT inventory_id, quantity_requested FROM work_order_parts
		WHERE work_order_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, w.ID)
	if err != nil {
		return fmt.Errorf("loading work order parts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.PartLine
		if err := rows.Scan(&line.InventoryID, &line.QuantityRequested); err != nil {
			return fmt.Errorf("scanning work order part: %w", err)
		}
		w.Parts = append(w.Parts, line)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating work order parts: %w", err)
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) listOrders(ctx context.Context, query string, args ...any) ([]*domain.WorkOrder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing work orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.WorkOrder
	for rows.Next() {
		w, err := scanWorkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning work order row: %w", err)
		}
		orders = append(orders, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work orders: %w", err)
	}

	for _, w := range orders {
		if err := r.loadParts(ctx, w); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func scanWorkOrder(row rowScanner) (*domain.WorkOrder, error) {
	var w domain.WorkOrder
	var equipmentID, completedAtStr sql.NullString
	var statusStr, priorityStr string
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&w.ID, &equipmentID, &w.Title, &w.Description, &statusStr, &priorityStr,
		&completedAtStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	w.EquipmentID = parseNullableString(equipmentID)
	w.Status = domain.WorkOrderStatus(statusStr)
	w.Priority = domain.WorkOrderPriority(priorityStr)
	w.CompletedAt = parseNullableTime(completedAtStr, time.RFC3339)

	var parseErr error
	w.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	w.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &w, nil
}
