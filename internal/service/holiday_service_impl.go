package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pagepace/internal/db"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/holiday"
	"github.com/alexanderramin/pagepace/internal/repository"
)

type holidayService struct {
	holidays repository.HolidayRepo
	uow      db.UnitOfWork
	source   holiday.Source
	observer UseCaseObserver
}

// NewHolidayService returns a HolidayService backed by source. A nil
// source serves the calculated calendar without touching the cache.
func NewHolidayService(holidays repository.HolidayRepo, uow db.UnitOfWork, source holiday.Source, observers ...UseCaseObserver) HolidayService {
	return &holidayService{
		holidays: holidays,
		uow:      uow,
		source:   source,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *holidayService) SourceName() string {
	if s.calculated() {
		return holiday.CalculatedSource{}.Name()
	}
	return s.source.Name()
}

func (s *holidayService) calculated() bool {
	if s.source == nil {
		return true
	}
	_, ok := s.source.(holiday.CalculatedSource)
	return ok
}

func (s *holidayService) ForYear(ctx context.Context, year int) ([]domain.Holiday, error) {
	if s.calculated() {
		return holiday.HolidaysForYear(year), nil
	}

	cached, err := s.holidays.ListByYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("reading holiday cache for %d: %w", year, err)
	}
	if len(cached) > 0 {
		return cached, nil
	}

	startedAt := time.Now().UTC()
	fetched, err := s.fetchAndStore(ctx, year)
	if err != nil {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "holiday-fallback",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   true,
			Degraded:  true,
			Err:       err,
			Fields:    map[string]any{"year": year, "source": s.source.Name()},
		})
		return holiday.HolidaysForYear(year), nil
	}
	return fetched, nil
}

func (s *holidayService) ForRange(ctx context.Context, from, to time.Time) ([]domain.Holiday, error) {
	from, to = domain.DateOf(from), domain.DateOf(to)
	if to.Before(from) {
		return nil, nil
	}
	var out []domain.Holiday
	for year := from.Year(); year <= to.Year(); year++ {
		hs, err := s.ForYear(ctx, year)
		if err != nil {
			return nil, err
		}
		for _, h := range hs {
			if d := domain.DateOf(h.Date); !d.Before(from) && !d.After(to) {
				out = append(out, h)
			}
		}
	}
	return out, nil
}

func (s *holidayService) Refresh(ctx context.Context, year int) (hs []domain.Holiday, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"year": year, "source": s.SourceName()}
	defer func() { observe(ctx, s.observer, "refresh-holidays", startedAt, fields, err) }()

	if s.calculated() {
		return holiday.HolidaysForYear(year), nil
	}
	hs, err = s.fetchAndStore(ctx, year)
	if err != nil {
		return nil, err
	}
	fields["count"] = len(hs)
	return hs, nil
}

// fetchAndStore pulls year from the source and replaces the cached rows.
func (s *holidayService) fetchAndStore(ctx context.Context, year int) ([]domain.Holiday, error) {
	hs, err := s.source.Fetch(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("fetching %d holidays from %s: %w", year, s.source.Name(), err)
	}
	if len(hs) == 0 {
		return nil, fmt.Errorf("source %s returned no holidays for %d", s.source.Name(), year)
	}

	fetchedAt := time.Now().UTC().Truncate(time.Second)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteHolidayRepo(tx).ReplaceYear(ctx, year, s.source.Name(), hs, fetchedAt)
	})
	if err != nil {
		return nil, fmt.Errorf("caching %d holidays: %w", year, err)
	}
	return hs, nil
}
