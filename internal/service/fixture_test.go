package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/pagepace/internal/db"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/repository"
	"github.com/alexanderramin/pagepace/internal/testutil"
)

type repos struct {
	db        *sql.DB
	works     repository.WorkRepo
	profiles  repository.ProfileRepo
	overrides repository.OverrideRepo
	holidays  repository.HolidayRepo
	uow       db.UnitOfWork
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repos{
		db:        database,
		works:     repository.NewSQLiteWorkRepo(database),
		profiles:  repository.NewSQLiteProfileRepo(database),
		overrides: repository.NewSQLiteOverrideRepo(database),
		holidays:  repository.NewSQLiteHolidayRepo(database),
		uow:       testutil.NewTestUoW(database),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// stubSource serves canned holidays or a fixed error and counts fetches.
type stubSource struct {
	byYear map[int][]domain.Holiday
	err    error
	calls  int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Fetch(_ context.Context, year int) ([]domain.Holiday, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.byYear[year], nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) named(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}
