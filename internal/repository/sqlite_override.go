package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pagepace/internal/db"
	"github.com/alexanderramin/pagepace/internal/domain"
)

// SQLiteOverrideRepo implements OverrideRepo using a SQLite database.
type SQLiteOverrideRepo struct {
	db db.DBTX
}

// NewSQLiteOverrideRepo creates a new SQLiteOverrideRepo.
func NewSQLiteOverrideRepo(conn db.DBTX) *SQLiteOverrideRepo {
	return &SQLiteOverrideRepo{db: conn}
}

func (r *SQLiteOverrideRepo) List(ctx context.Context) ([]domain.CustomDateOverride, error) {
	return r.query(ctx, `SELECT date, hours, note FROM custom_date_overrides ORDER BY date`)
}

// ListRange returns overrides in [from, to] inclusive.
func (r *SQLiteOverrideRepo) ListRange(ctx context.Context, from, to time.Time) ([]domain.CustomDateOverride, error) {
	return r.query(ctx,
		`SELECT date, hours, note FROM custom_date_overrides WHERE date >= ? AND date <= ? ORDER BY date`,
		from.Format(dateLayout), to.Format(dateLayout))
}

func (r *SQLiteOverrideRepo) query(ctx context.Context, query string, args ...any) ([]domain.CustomDateOverride, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing date overrides: %w", err)
	}
	defer rows.Close()

	var out []domain.CustomDateOverride
	for rows.Next() {
		var o domain.CustomDateOverride
		var date string
		if err := rows.Scan(&date, &o.Hours, &o.Note); err != nil {
			return nil, fmt.Errorf("scanning date override: %w", err)
		}
		if o.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parsing override date %q: %w", date, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating date overrides: %w", err)
	}
	return out, nil
}

// Upsert stores o, replacing any override for the same date.
func (r *SQLiteOverrideRepo) Upsert(ctx context.Context, o domain.CustomDateOverride) error {
	query := `INSERT INTO custom_date_overrides (date, hours, note, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET hours = excluded.hours, note = excluded.note`
	_, err := r.db.ExecContext(ctx, query,
		o.Date.Format(dateLayout),
		domain.SanitizeHours(o.Hours),
		o.Note,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting date override: %w", err)
	}
	return nil
}

func (r *SQLiteOverrideRepo) Delete(ctx context.Context, date time.Time) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM custom_date_overrides WHERE date = ?`, date.Format(dateLayout))
	if err != nil {
		return fmt.Errorf("deleting date override: %w", err)
	}
	return requireAffected(res, "date override "+date.Format(dateLayout))
}
