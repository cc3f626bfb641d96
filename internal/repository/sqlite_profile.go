package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pagepace/internal/db"
	"github.com/alexanderramin/pagepace/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database. The
// profile is a single row keyed 'default'.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context) (*domain.AvailabilityProfile, error) {
	query := `SELECT monday, tuesday, wednesday, thursday, friday, saturday, sunday, holiday
		FROM availability_profile WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var p domain.AvailabilityProfile
	err := row.Scan(
		&p.Monday,
		&p.Tuesday,
		&p.Wednesday,
		&p.Thursday,
		&p.Friday,
		&p.Saturday,
		&p.Sunday,
		&p.Holiday,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("availability profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning availability profile: %w", err)
	}
	return &p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.AvailabilityProfile) error {
	query := `INSERT OR REPLACE INTO availability_profile (id, monday, tuesday, wednesday,
		thursday, friday, saturday, sunday, holiday, updated_at)
		VALUES ('default', ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		domain.SanitizeHours(p.Monday),
		domain.SanitizeHours(p.Tuesday),
		domain.SanitizeHours(p.Wednesday),
		domain.SanitizeHours(p.Thursday),
		domain.SanitizeHours(p.Friday),
		domain.SanitizeHours(p.Saturday),
		domain.SanitizeHours(p.Sunday),
		domain.SanitizeHours(p.Holiday),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting availability profile: %w", err)
	}
	return nil
}
