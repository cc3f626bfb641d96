package testutil

import (
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/google/uuid"
)

// DefaultStages is a three-stage manga page pipeline with hour weights.
func DefaultStages() []domain.StageWorkload {
	return []domain.StageWorkload{
		{ID: "name", Label: "Storyboard", BaseHours: Hours(1)},
		{ID: "pencil", Label: "Pencils", BaseHours: Hours(2)},
		{ID: "ink", Label: "Inks", BaseHours: Hours(1)},
	}
}

// Hours returns a pointer to h for optional hour fields.
func Hours(h float64) *float64 { return &h }

// Work options
type WorkOption func(*domain.Work)

func WithDeadline(d time.Time) WorkOption {
	return func(w *domain.Work) {
		w.Deadline = &d
	}
}

func WithoutDeadline() WorkOption {
	return func(w *domain.Work) {
		w.Deadline = nil
	}
}

func WithWorkStatus(s domain.WorkStatus) WorkOption {
	return func(w *domain.Work) {
		w.Status = s
	}
}

func WithStages(stages ...domain.StageWorkload) WorkOption {
	return func(w *domain.Work) {
		w.StageWorkloads = stages
	}
}

func WithUnitTree(units ...domain.Unit) WorkOption {
	return func(w *domain.Work) {
		w.Units = nil
		for _, u := range units {
			w.AddRootUnit(u, w.UpdatedAt)
		}
	}
}

// WithPages adds a single root branch holding n leaf pages at stage.
func WithPages(n, stage int) WorkOption {
	return func(w *domain.Work) {
		pages := make([]domain.Unit, n)
		for i := range pages {
			pages[i] = domain.NewLeafUnit(uuid.New().String(), stage)
		}
		w.AddRootUnit(domain.NewBranchUnit(uuid.New().String(), pages...), w.UpdatedAt)
	}
}

func WithEstimate(units int, unitHours float64) WorkOption {
	return func(w *domain.Work) {
		w.TotalUnits = units
		w.UnitEstimatedHours = unitHours
		w.EstimateOverridden = false
		w.DeriveTotalEstimate()
	}
}

func WithGranularities(labels ...string) WorkOption {
	return func(w *domain.Work) {
		w.Granularities = make([]domain.Granularity, len(labels))
		for i, l := range labels {
			w.Granularities[i] = domain.Granularity{ID: l, Label: l}
		}
	}
}

// NewTestWork builds a work due 30 days from now with the default stage
// table and no units. Timestamps are truncated to whole seconds so they
// survive a storage round trip.
func NewTestWork(title string, opts ...WorkOption) *domain.Work {
	now := time.Now().UTC().Truncate(time.Second)
	deadline := domain.DateOf(now).AddDate(0, 0, 30)
	w := &domain.Work{
		ID:             uuid.New().String(),
		Title:          title,
		Status:         domain.WorkInProgress,
		StartDate:      domain.DateOf(now).AddDate(0, 0, -7),
		Deadline:       &deadline,
		StageWorkloads: DefaultStages(),
		Granularities:  []domain.Granularity{},
		Units:          []domain.Unit{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Profile options
type ProfileOption func(*domain.AvailabilityProfile)

func WithWeekdayHours(h float64) ProfileOption {
	return func(p *domain.AvailabilityProfile) {
		p.Monday, p.Tuesday, p.Wednesday, p.Thursday, p.Friday = h, h, h, h, h
	}
}

func WithWeekendHours(h float64) ProfileOption {
	return func(p *domain.AvailabilityProfile) {
		p.Saturday, p.Sunday = h, h
	}
}

// NewTestProfile returns 4h weekdays, 2h weekends and 1h holidays.
func NewTestProfile(opts ...ProfileOption) *domain.AvailabilityProfile {
	p := &domain.AvailabilityProfile{
		Monday: 4, Tuesday: 4, Wednesday: 4, Thursday: 4, Friday: 4,
		Saturday: 2, Sunday: 2, Holiday: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
