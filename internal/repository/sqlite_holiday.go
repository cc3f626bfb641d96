package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pagepace/internal/db"
	"github.com/alexanderramin/pagepace/internal/domain"
)

// SQLiteHolidayRepo implements HolidayRepo using a SQLite database.
type SQLiteHolidayRepo struct {
	db db.DBTX
}

// NewSQLiteHolidayRepo creates a new SQLiteHolidayRepo.
func NewSQLiteHolidayRepo(conn db.DBTX) *SQLiteHolidayRepo {
	return &SQLiteHolidayRepo{db: conn}
}

func (r *SQLiteHolidayRepo) ListByYear(ctx context.Context, year int) ([]domain.Holiday, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, name, kind FROM holidays WHERE year = ? ORDER BY date`, year)
	if err != nil {
		return nil, fmt.Errorf("listing holidays for %d: %w", year, err)
	}
	defer rows.Close()

	var out []domain.Holiday
	for rows.Next() {
		var h domain.Holiday
		var date, kind string
		if err := rows.Scan(&date, &h.Name, &kind); err != nil {
			return nil, fmt.Errorf("scanning holiday: %w", err)
		}
		if h.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parsing holiday date %q: %w", date, err)
		}
		h.Kind = domain.HolidayKind(kind)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holidays: %w", err)
	}
	return out, nil
}

func (r *SQLiteHolidayRepo) ReplaceYear(ctx context.Context, year int, source string, hs []domain.Holiday, fetchedAt time.Time) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE year = ?`, year); err != nil {
		return fmt.Errorf("clearing holidays for %d: %w", year, err)
	}
	query := `INSERT OR REPLACE INTO holidays (date, year, name, kind, source, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	fetched := fetchedAt.UTC().Format(time.RFC3339)
	for _, h := range hs {
		if h.Date.Year() != year {
			return fmt.Errorf("holiday %s outside year %d", h.Date.Format(dateLayout), year)
		}
		kind := h.Kind
		if kind == "" {
			kind = domain.HolidayOfficial
		}
		if _, err := r.db.ExecContext(ctx, query,
			h.Date.Format(dateLayout), year, h.Name, string(kind), source, fetched,
		); err != nil {
			return fmt.Errorf("inserting holiday %s: %w", h.Date.Format(dateLayout), err)
		}
	}
	return nil
}

func (r *SQLiteHolidayRepo) CachedYears(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT year FROM holidays ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("listing cached holiday years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scanning holiday year: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating holiday years: %w", err)
	}
	return years, nil
}
