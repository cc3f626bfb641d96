package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

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
	if err := migrateBackfillHolidayYears(db); err != nil {
		return fmt.Errorf("backfilling holiday years: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS works (
		id                    TEXT PRIMARY KEY,
		title                 TEXT NOT NULL,
		status                TEXT NOT NULL DEFAULT 'not_started'
		                      CHECK(status IN ('not_started','in_progress','done','on_hold')),
		start_date            TEXT NOT NULL,
		deadline              TEXT,
		units_json            TEXT NOT NULL DEFAULT '[]',
		stage_workloads_json  TEXT NOT NULL DEFAULT '[]',
		total_units           INTEGER NOT NULL DEFAULT 0 CHECK(total_units >= 0),
		unit_estimated_hours  REAL NOT NULL DEFAULT 0,
		total_estimated_hours REAL NOT NULL DEFAULT 0,
		estimate_overridden   INTEGER NOT NULL DEFAULT 0,
		created_at            TEXT NOT NULL,
		updated_at            TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_works_status ON works(status)`,
	`CREATE INDEX IF NOT EXISTS idx_works_deadline ON works(deadline)`,

	`CREATE TABLE IF NOT EXISTS availability_profile (
		id         TEXT PRIMARY KEY DEFAULT 'default',
		monday     REAL NOT NULL DEFAULT 0 CHECK(monday >= 0),
		tuesday    REAL NOT NULL DEFAULT 0 CHECK(tuesday >= 0),
		wednesday  REAL NOT NULL DEFAULT 0 CHECK(wednesday >= 0),
		thursday   REAL NOT NULL DEFAULT 0 CHECK(thursday >= 0),
		friday     REAL NOT NULL DEFAULT 0 CHECK(friday >= 0),
		saturday   REAL NOT NULL DEFAULT 0 CHECK(saturday >= 0),
		sunday     REAL NOT NULL DEFAULT 0 CHECK(sunday >= 0),
		holiday    REAL NOT NULL DEFAULT 0 CHECK(holiday >= 0),
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS custom_date_overrides (
		date       TEXT PRIMARY KEY,
		hours      REAL NOT NULL CHECK(hours >= 0),
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS holidays (
		date       TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		kind       TEXT NOT NULL DEFAULT 'official'
		           CHECK(kind IN ('statutory','substitute','citizens','official')),
		source     TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`,

	// Tree focus and per-work granularity labels
	`ALTER TABLE works ADD COLUMN primary_unit_id TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE works ADD COLUMN granularities_json TEXT NOT NULL DEFAULT '[]'`,

	// Free-text reason for a date override
	`ALTER TABLE custom_date_overrides ADD COLUMN note TEXT NOT NULL DEFAULT ''`,

	// Year column for cached holiday lookups
	`ALTER TABLE holidays ADD COLUMN year INTEGER NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_holidays_year ON holidays(year)`,
}

// migrateBackfillHolidayYears fills the year column for holiday rows cached
// before it existed. Idempotent: only rows with year = 0 are touched.
func migrateBackfillHolidayYears(db *sql.DB) error {
	ctx := context.Background()
	_, err := db.ExecContext(ctx,
		`UPDATE holidays SET year = CAST(substr(date, 1, 4) AS INTEGER) WHERE year = 0`)
	if err != nil {
		return fmt.Errorf("updating holiday years: %w", err)
	}
	return nil
}
