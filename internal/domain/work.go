package domain

import (
	"fmt"
	"math"
	"time"
)

// Work is one serialized production (a volume, a series arc) tracked
// against a deadline.
type Work struct {
	ID        string
	Title     string
	Status    WorkStatus
	StartDate time.Time
	Deadline  *time.Time

	Units          []Unit
	StageWorkloads []StageWorkload
	Granularities  []Granularity
	// PrimaryUnitID is the unit the user is currently focused on. Empty
	// means no primary unit.
	PrimaryUnitID string

	TotalUnits          int
	UnitEstimatedHours  float64
	TotalEstimatedHours float64
	// EstimateOverridden marks TotalEstimatedHours as set by hand at
	// creation rather than derived from TotalUnits x UnitEstimatedHours.
	EstimateOverridden bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsComplete reports whether the work is marked done.
func (w *Work) IsComplete() bool {
	return w.Status == WorkDone
}

// DeriveTotalEstimate recomputes TotalEstimatedHours from the per-unit
// estimate unless the total was overridden.
func (w *Work) DeriveTotalEstimate() {
	if w.EstimateOverridden {
		return
	}
	w.TotalEstimatedHours = float64(w.TotalUnits) * w.UnitEstimatedHours
}

// EstimateConsistent checks the derived-total invariant. Overridden totals
// are always consistent.
func (w *Work) EstimateConsistent() bool {
	if w.EstimateOverridden {
		return true
	}
	want := float64(w.TotalUnits) * w.UnitEstimatedHours
	return math.Abs(w.TotalEstimatedHours-want) < 1e-9
}

// SetStatus transitions the work to s.
func (w *Work) SetStatus(s WorkStatus, now time.Time) error {
	if !ValidWorkStatuses[string(s)] {
		return fmt.Errorf("invalid work status %q (want not_started|in_progress|done|on_hold)", s)
	}
	w.Status = s
	w.UpdatedAt = now
	return nil
}

// GranularityLabel returns the label for units at the given tree depth
// (0 = root level), or "Unit" when no granularity is configured for it.
func (w *Work) GranularityLabel(depth int) string {
	if depth >= 0 && depth < len(w.Granularities) {
		return CoalesceStr(w.Granularities[depth].Label, w.Granularities[depth].ID, "Unit")
	}
	return "Unit"
}
