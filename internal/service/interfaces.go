package service

import (
	"context"
	"time"

	"github.com/alexanderramin/pagepace/internal/app"
	"github.com/alexanderramin/pagepace/internal/domain"
)

type WorkService interface {
	Create(ctx context.Context, w *domain.Work) error
	GetByID(ctx context.Context, id string) (*domain.Work, error)
	// Resolve finds a work by exact ID or unique ID prefix.
	Resolve(ctx context.Context, ref string) (*domain.Work, error)
	List(ctx context.Context, includeDone bool) ([]*domain.Work, error)
	Update(ctx context.Context, w *domain.Work) error
	SetStatus(ctx context.Context, id string, status domain.WorkStatus) error
	Delete(ctx context.Context, id string) error
}

// UnitService edits a work's unit tree. Unit references accept a full ID
// or a unique prefix. Every call returns the updated work.
type UnitService interface {
	AddRoot(ctx context.Context, workID string, spec app.UnitSpec) (*domain.Work, error)
	AddChild(ctx context.Context, workID, parentRef string, spec app.UnitSpec) (*domain.Work, error)
	SetChildrenCount(ctx context.Context, workID, parentRef string, count int) (*domain.Work, error)
	Remove(ctx context.Context, workID, unitRef string) (*domain.Work, error)
	SetStage(ctx context.Context, workID, unitRef string, stage int) (*domain.Work, error)
	SetPrimary(ctx context.Context, workID, unitRef string) (*domain.Work, error)
}

type ProfileService interface {
	Get(ctx context.Context) (*domain.AvailabilityProfile, error)
	Update(ctx context.Context, p *domain.AvailabilityProfile) error
	ListOverrides(ctx context.Context) ([]domain.CustomDateOverride, error)
	OverridesBetween(ctx context.Context, from, to time.Time) ([]domain.CustomDateOverride, error)
	SetOverride(ctx context.Context, o domain.CustomDateOverride) error
	RemoveOverride(ctx context.Context, date time.Time) error
}

type HolidayService interface {
	// ForYear returns cached authoritative holidays, fetching them from the
	// configured source on a cache miss. Source failures fall back to the
	// calculated calendar.
	ForYear(ctx context.Context, year int) ([]domain.Holiday, error)
	// ForRange returns holidays of every year touched by [from, to].
	ForRange(ctx context.Context, from, to time.Time) ([]domain.Holiday, error)
	// Refresh re-fetches year from the source and replaces the cache.
	// Source failures are returned.
	Refresh(ctx context.Context, year int) ([]domain.Holiday, error)
	SourceName() string
}

type StatusService interface {
	app.StatusUseCase
	app.PaceUseCase
	app.AvailabilityUseCase
}
