package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/repository"
)

type profileService struct {
	profiles  repository.ProfileRepo
	overrides repository.OverrideRepo
	fallback  domain.AvailabilityProfile
	observer  UseCaseObserver
}

// NewProfileService returns a ProfileService. fallback is served until a
// profile has been saved.
func NewProfileService(profiles repository.ProfileRepo, overrides repository.OverrideRepo, fallback domain.AvailabilityProfile, observers ...UseCaseObserver) ProfileService {
	return &profileService{
		profiles:  profiles,
		overrides: overrides,
		fallback:  fallback,
		observer:  useCaseObserverOrNoop(observers),
	}
}

func (s *profileService) Get(ctx context.Context) (*domain.AvailabilityProfile, error) {
	p, err := s.profiles.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		fb := s.fallback
		return &fb, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading availability profile: %w", err)
	}
	return p, nil
}

func (s *profileService) Update(ctx context.Context, p *domain.AvailabilityProfile) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"weekly_hours": p.WeeklyHours()}
	defer func() { observe(ctx, s.observer, "update-profile", startedAt, fields, err) }()

	return s.profiles.Upsert(ctx, p)
}

func (s *profileService) ListOverrides(ctx context.Context) ([]domain.CustomDateOverride, error) {
	return s.overrides.List(ctx)
}

func (s *profileService) OverridesBetween(ctx context.Context, from, to time.Time) ([]domain.CustomDateOverride, error) {
	return s.overrides.ListRange(ctx, domain.DateOf(from), domain.DateOf(to))
}

func (s *profileService) SetOverride(ctx context.Context, o domain.CustomDateOverride) (err error) {
	startedAt := time.Now().UTC()
	o.Date = domain.DateOf(o.Date)
	fields := map[string]any{"date": o.Date.Format(domain.DateLayout), "hours": o.Hours}
	defer func() { observe(ctx, s.observer, "set-override", startedAt, fields, err) }()

	if o.Hours < 0 {
		return fmt.Errorf("override hours must be >= 0, got %g", o.Hours)
	}
	return s.overrides.Upsert(ctx, o)
}

func (s *profileService) RemoveOverride(ctx context.Context, date time.Time) error {
	return s.overrides.Delete(ctx, domain.DateOf(date))
}
