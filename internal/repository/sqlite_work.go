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

// SQLiteWorkRepo implements WorkRepo using a SQLite database. The unit
// tree, stage workloads and granularities are stored as JSON columns.
type SQLiteWorkRepo struct {
	db db.DBTX
}

// NewSQLiteWorkRepo creates a new SQLiteWorkRepo.
func NewSQLiteWorkRepo(conn db.DBTX) *SQLiteWorkRepo {
	return &SQLiteWorkRepo{db: conn}
}

const workColumns = `id, title, status, start_date, deadline, units_json, stage_workloads_json,
	granularities_json, primary_unit_id, total_units, unit_estimated_hours, total_estimated_hours,
	estimate_overridden, created_at, updated_at`

type workJSON struct {
	units, stages, granularities string
}

func encodeWorkJSON(w *domain.Work) (workJSON, error) {
	var out workJSON
	var err error
	if out.units, err = jsonColumn(w.Units); err != nil {
		return out, fmt.Errorf("encoding units: %w", err)
	}
	if out.stages, err = jsonColumn(w.StageWorkloads); err != nil {
		return out, fmt.Errorf("encoding stage workloads: %w", err)
	}
	if out.granularities, err = jsonColumn(w.Granularities); err != nil {
		return out, fmt.Errorf("encoding granularities: %w", err)
	}
	return out, nil
}

func (r *SQLiteWorkRepo) Create(ctx context.Context, w *domain.Work) error {
	cols, err := encodeWorkJSON(w)
	if err != nil {
		return err
	}
	query := `INSERT INTO works (` + workColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		w.ID,
		w.Title,
		string(w.Status),
		w.StartDate.Format(dateLayout),
		nullableTimeToString(w.Deadline, dateLayout),
		cols.units,
		cols.stages,
		cols.granularities,
		w.PrimaryUnitID,
		w.TotalUnits,
		w.UnitEstimatedHours,
		w.TotalEstimatedHours,
		boolToInt(w.EstimateOverridden),
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work: %w", err)
	}
	return nil
}

func (r *SQLiteWorkRepo) GetByID(ctx context.Context, id string) (*domain.Work, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workColumns+` FROM works WHERE id = ?`, id)
	w, err := scanWork(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return w, nil
}

// List returns works ordered by deadline (undated last), then creation.
func (r *SQLiteWorkRepo) List(ctx context.Context, includeDone bool) ([]*domain.Work, error) {
	query := `SELECT ` + workColumns + ` FROM works`
	if !includeDone {
		query += ` WHERE status != 'done'`
	}
	query += ` ORDER BY deadline IS NULL, deadline, created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing works: %w", err)
	}
	defer rows.Close()

	var works []*domain.Work
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, err
		}
		works = append(works, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating works: %w", err)
	}
	return works, nil
}

func (r *SQLiteWorkRepo) Update(ctx context.Context, w *domain.Work) error {
	cols, err := encodeWorkJSON(w)
	if err != nil {
		return err
	}
	query := `UPDATE works SET title = ?, status = ?, start_date = ?, deadline = ?, units_json = ?,
		stage_workloads_json = ?, granularities_json = ?, primary_unit_id = ?, total_units = ?,
		unit_estimated_hours = ?, total_estimated_hours = ?, estimate_overridden = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		w.Title,
		string(w.Status),
		w.StartDate.Format(dateLayout),
		nullableTimeToString(w.Deadline, dateLayout),
		cols.units,
		cols.stages,
		cols.granularities,
		w.PrimaryUnitID,
		w.TotalUnits,
		w.UnitEstimatedHours,
		w.TotalEstimatedHours,
		boolToInt(w.EstimateOverridden),
		w.UpdatedAt.Format(time.RFC3339),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("updating work: %w", err)
	}
	return requireAffected(res, "work "+w.ID)
}

func (r *SQLiteWorkRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM works WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work: %w", err)
	}
	return requireAffected(res, "work "+id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWork(row rowScanner) (*domain.Work, error) {
	var w domain.Work
	var status, startDate, unitsJSON, stagesJSON, granularitiesJSON, createdAt, updatedAt string
	var deadline sql.NullString
	var overridden int

	err := row.Scan(
		&w.ID, &w.Title, &status, &startDate, &deadline,
		&unitsJSON, &stagesJSON, &granularitiesJSON, &w.PrimaryUnitID,
		&w.TotalUnits, &w.UnitEstimatedHours, &w.TotalEstimatedHours, &overridden,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work: %w", err)
	}

	w.Status = domain.WorkStatus(status)
	w.EstimateOverridden = intToBool(overridden)
	w.Deadline = parseNullableTime(deadline, dateLayout)

	var parseErr error
	if w.StartDate, parseErr = time.Parse(dateLayout, startDate); parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	if w.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAt); parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	if w.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAt); parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	if w.Units, parseErr = decodeJSONColumn[domain.Unit]("units_json", unitsJSON); parseErr != nil {
		return nil, fmt.Errorf("work %s: %w", w.ID, parseErr)
	}
	if w.StageWorkloads, parseErr = decodeJSONColumn[domain.StageWorkload]("stage_workloads_json", stagesJSON); parseErr != nil {
		return nil, fmt.Errorf("work %s: %w", w.ID, parseErr)
	}
	if w.Granularities, parseErr = decodeJSONColumn[domain.Granularity]("granularities_json", granularitiesJSON); parseErr != nil {
		return nil, fmt.Errorf("work %s: %w", w.ID, parseErr)
	}
	return &w, nil
}

// requireAffected maps a zero-row write to ErrNotFound.
func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows for %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
