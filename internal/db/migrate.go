package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are idempotent schema statements, re-run in order on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS equipment (
		id                    TEXT PRIMARY KEY,
		serial_number         TEXT NOT NULL UNIQUE,
		name                  TEXT NOT NULL,
		type                  TEXT NOT NULL DEFAULT '',
		model                 TEXT NOT NULL DEFAULT '',
		manufacturer          TEXT NOT NULL DEFAULT '',
		location              TEXT NOT NULL DEFAULT '',
		status                TEXT NOT NULL
		                      CHECK(status IN ('operational','maintenance','out_of_service','decommissioned')),
		interval_value        REAL,
		interval_unit         TEXT CHECK(interval_unit IS NULL OR interval_unit IN ('days','months','hours')),
		last_service_date     TEXT,
		last_service_hours    REAL,
		current_hours         REAL,
		next_maintenance_date TEXT,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_equipment_status ON equipment(status)`,

	`CREATE TABLE IF NOT EXISTS inventory_items (
		id               TEXT PRIMARY KEY,
		sku              TEXT NOT NULL UNIQUE,
		name             TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		location         TEXT NOT NULL DEFAULT '',
		quantity_on_hand INTEGER NOT NULL DEFAULT 0 CHECK(quantity_on_hand >= 0),
		min_quantity     INTEGER NOT NULL DEFAULT 0 CHECK(min_quantity >= 0),
		unit_cost        TEXT NOT NULL DEFAULT '0',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS work_orders (
		id           TEXT PRIMARY KEY,
		equipment_id TEXT REFERENCES equipment(id) ON DELETE SET NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL
		             CHECK(status IN ('pending','in_progress','completed','cancelled')),
		priority     TEXT NOT NULL
		             CHECK(priority IN ('low','medium','high','critical')),
		completed_at TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_orders_status ON work_orders(status)`,

	`CREATE TABLE IF NOT EXISTS work_order_parts (
		work_order_id      TEXT NOT NULL REFERENCES work_orders(id) ON DELETE CASCADE,
		position           INTEGER NOT NULL,
		inventory_id       TEXT NOT NULL REFERENCES inventory_items(id),
		quantity_requested INTEGER NOT NULL CHECK(quantity_requested > 0),
		PRIMARY KEY (work_order_id, position)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_order_parts_inventory ON work_order_parts(inventory_id)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
