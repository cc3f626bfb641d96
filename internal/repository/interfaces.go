package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
)

type WorkRepo interface {
	Create(ctx context.Context, w *domain.Work) error
	GetByID(ctx context.Context, id string) (*domain.Work, error)
	List(ctx context.Context, includeDone bool) ([]*domain.Work, error)
	Update(ctx context.Context, w *domain.Work) error
	Delete(ctx context.Context, id string) error
}

type ProfileRepo interface {
	Get(ctx context.Context) (*domain.AvailabilityProfile, error)
	Upsert(ctx context.Context, p *domain.AvailabilityProfile) error
}

type OverrideRepo interface {
	List(ctx context.Context) ([]domain.CustomDateOverride, error)
	ListRange(ctx context.Context, from, to time.Time) ([]domain.CustomDateOverride, error)
	Upsert(ctx context.Context, o domain.CustomDateOverride) error
	Delete(ctx context.Context, date time.Time) error
}

// HolidayRepo caches authoritative holiday lists per year.
type HolidayRepo interface {
	ListByYear(ctx context.Context, year int) ([]domain.Holiday, error)
	// ReplaceYear swaps the cached rows of year for hs. Run it inside a
	// transaction so readers never see a partial year.
	ReplaceYear(ctx context.Context, year int, source string, hs []domain.Holiday, fetchedAt time.Time) error
	CachedYears(ctx context.Context) ([]int, error)
}
