package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/mainstay/internal/db"
	"github.com/alexanderramin/mainstay/internal/domain"
)

// equipmentColumns is the canonical SELECT column list for equipment.
const equipmentColumns = `id, serial_number, name, type, model, manufacturer, location, status,
		interval_value, interval_unit, last_service_date, last_service_hours,
		current_hours, next_maintenance_date, created_at, updated_at`

// SQLiteEquipmentRepo implements EquipmentRepo using a SQLite database.
type SQLiteEquipmentRepo struct {
	db db.DBTX
}

// NewSQLiteEquipmentRepo creates a new SQLiteEquipmentRepo.
func NewSQLiteEquipmentRepo(db db.DBTX) *SQLiteEquipmentRepo {
	return &SQLiteEquipmentRepo{db: db}
}

func (r *SQLiteEquipmentRepo) Create(ctx context.Context, e *domain.Equipment) error {
	query := `INSERT INTO equipment (` + equipmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, equipmentArgs(e)...)
	if err != nil {
		return fmt.Errorf("inserting equipment: %w", err)
	}
	return nil
}

func (r *SQLiteEquipmentRepo) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = ?`
	return scanEquipmentRow(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEquipmentRepo) GetBySerial(ctx context.Context, serial string) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE serial_number = ?`
	return scanEquipmentRow(r.db.QueryRowContext(ctx, query, serial))
}

func (r *SQLiteEquipmentRepo) List(ctx context.Context) ([]*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing equipment: %w", err)
	}
	defer rows.Close()
	return scanEquipmentRows(rows)
}

func (r *SQLiteEquipmentRepo) ListWithPolicy(ctx context.Context) ([]*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment
		WHERE interval_value IS NOT NULL
		  AND interval_unit IS NOT NULL
		  AND status != 'decommissioned'
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing equipment with policy: %w", err)
	}
	defer rows.Close()
	return scanEquipmentRows(rows)
}

func (r *SQLiteEquipmentRepo) Update(ctx context.Context, e *domain.Equipment) error {
	query := `UPDATE equipment SET serial_number = ?, name = ?, type = ?, model = ?,
		manufacturer = ?, location = ?, status = ?, interval_value = ?, interval_unit = ?,
		last_service_date = ?, last_service_hours = ?, current_hours = ?,
		next_maintenance_date = ?, updated_at = ?
		WHERE id = ?`
	var intervalValue, intervalUnit interface{}
	if e.Interval != nil {
		intervalValue = e.Interval.Value
		intervalUnit = string(e.Interval.Unit)
	}
	var lastServiceDate, lastServiceHours interface{}
	if e.LastService != nil {
		lastServiceDate = e.LastService.Date.Format(time.RFC3339)
		lastServiceHours = nullableFloatToValue(e.LastService.HoursAtService)
	}
	_, err := r.db.ExecContext(ctx, query,
		e.SerialNumber,
		e.Name,
		e.Type,
		e.Model,
		e.Manufacturer,
		e.Location,
		string(e.Status),
		intervalValue,
		intervalUnit,
		lastServiceDate,
		lastServiceHours,
		nullableFloatToValue(e.CurrentHours),
		nullableTimeToString(e.NextMaintenanceDate, time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating equipment: %w", err)
	}
	return nil
}

func (r *SQLiteEquipmentRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting equipment: %w", err)
	}
	return nil
}

// equipmentArgs returns insert arguments in equipmentColumns order.
func equipmentArgs(e *domain.Equipment) []interface{} {
	var intervalValue, intervalUnit interface{}
	if e.Interval != nil {
		intervalValue = e.Interval.Value
		intervalUnit = string(e.Interval.Unit)
	}
	var lastServiceDate, lastServiceHours interface{}
	if e.LastService != nil {
		lastServiceDate = e.LastService.Date.Format(time.RFC3339)
		lastServiceHours = nullableFloatToValue(e.LastService.HoursAtService)
	}
	return []interface{}{
		e.ID,
		e.SerialNumber,
		e.Name,
		e.Type,
		e.Model,
		e.Manufacturer,
		e.Location,
		string(e.Status),
		intervalValue,
		intervalUnit,
		lastServiceDate,
		lastServiceHours,
		nullableFloatToValue(e.CurrentHours),
		nullableTimeToString(e.NextMaintenanceDate, time.RFC3339),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEquipment(row rowScanner) (*domain.Equipment, error) {
	var e domain.Equipment
	var statusStr string
	var intervalValue sql.NullFloat64
	var intervalUnit, lastServiceDate, nextMaintenanceDate sql.NullString
	var lastServiceHours, currentHours sql.NullFloat64
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&e.ID, &e.SerialNumber, &e.Name, &e.Type, &e.Model, &e.Manufacturer,
		&e.Location, &statusStr, &intervalValue, &intervalUnit,
		&lastServiceDate, &lastServiceHours, &currentHours,
		&nextMaintenanceDate, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	e.Status = domain.EquipmentStatus(statusStr)
	if intervalValue.Valid && intervalUnit.Valid {
		e.Interval = &domain.MaintenanceInterval{
			Value: intervalValue.Float64,
			Unit:  domain.IntervalUnit(intervalUnit.String),
		}
	}
	if date := parseNullableTime(lastServiceDate, time.RFC3339); date != nil {
		e.LastService = &domain.LastService{
			Date:           *date,
			HoursAtService: parseNullableFloat(lastServiceHours),
		}
	}
	e.CurrentHours = parseNullableFloat(currentHours)
	e.NextMaintenanceDate = parseNullableTime(nextMaintenanceDate, time.RFC3339)

	var parseErr error
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	e.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return &e, nil
}

func scanEquipmentRow(row *sql.Row) (*domain.Equipment, error) {
	e, err := scanEquipment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("equipment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning equipment: %w", err)
	}
	return e, nil
}

func scanEquipmentRows(rows *sql.Rows) ([]*domain.Equipment, error) {
	var items []*domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning equipment row: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating equipment: %w", err)
	}
	return items, nil
}
