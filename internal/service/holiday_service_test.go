package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/holiday"
	"github.com/alexanderramin/pagepace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func officialHolidays2026() map[int][]domain.Holiday {
	return map[int][]domain.Holiday{
		2026: {
			{Name: "New Year's Day", Date: day(2026, 1, 1), Kind: domain.HolidayStatutory},
			{Name: "Special Day", Date: day(2026, 7, 1), Kind: domain.HolidayOfficial},
		},
	}
}

func TestHolidayService_CalculatedSourceSkipsCache(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewHolidayService(r.holidays, r.uow, nil)

	hs, err := svc.ForYear(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, holiday.HolidaysForYear(2026), hs)
	assert.Equal(t, "calculated", svc.SourceName())

	years, err := r.holidays.CachedYears(ctx)
	require.NoError(t, err)
	assert.Empty(t, years)
}

func TestHolidayService_FetchesOnceThenServesCache(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	src := &stubSource{byYear: officialHolidays2026()}
	svc := NewHolidayService(r.holidays, r.uow, src)

	first, err := svc.ForYear(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := svc.ForYear(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.calls)

	years, err := r.holidays.CachedYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2026}, years)
}

func TestHolidayService_FallsBackToCalculatedOnSourceError(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	obs := &recordingObserver{}
	src := &stubSource{err: errors.New("connection refused")}
	svc := NewHolidayService(r.holidays, r.uow, src, obs)

	hs, err := svc.ForYear(ctx, 2026)
	require.NoError(t, err)
	assert.Equal(t, holiday.HolidaysForYear(2026), hs)

	events := obs.named("holiday-fallback")
	require.Len(t, events, 1)
	assert.True(t, events[0].Success)
	assert.True(t, events[0].Degraded)
	assert.ErrorContains(t, events[0].Err, "connection refused")
	assert.Equal(t, 2026, events[0].Fields["year"])

	years, err := r.holidays.CachedYears(ctx)
	require.NoError(t, err)
	assert.Empty(t, years, "fallback results are not cached")
}

func TestHolidayService_EmptySourceResultFallsBack(t *testing.T) {
	r := setupRepos(t)
	src := &stubSource{byYear: map[int][]domain.Holiday{}}
	svc := NewHolidayService(r.holidays, r.uow, src)

	hs, err := svc.ForYear(context.Background(), 2030)
	require.NoError(t, err)
	assert.Equal(t, holiday.HolidaysForYear(2030), hs)
}

func TestHolidayService_ForRangeSpansYears(t *testing.T) {
	r := setupRepos(t)
	svc := NewHolidayService(r.holidays, r.uow, nil)

	hs, err := svc.ForRange(context.Background(), day(2025, 12, 30), day(2026, 1, 15))
	require.NoError(t, err)
	require.Len(t, hs, 2)
	assert.Equal(t, day(2026, 1, 1), hs[0].Date)
	assert.Equal(t, day(2026, 1, 12), hs[1].Date)
	assert.Equal(t, "Coming of Age Day", hs[1].Name)

	hs, err = svc.ForRange(context.Background(), day(2026, 2, 1), day(2026, 1, 1))
	require.NoError(t, err)
	assert.Empty(t, hs)
}

func TestHolidayService_RefreshReplacesCache(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	src := &stubSource{byYear: officialHolidays2026()}
	svc := NewHolidayService(r.holidays, r.uow, src)

	_, err := svc.ForYear(ctx, 2026)
	require.NoError(t, err)

	src.byYear[2026] = []domain.Holiday{{Name: "Only Day", Date: day(2026, 3, 3)}}
	hs, err := svc.Refresh(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, hs, 1)

	cached, err := r.holidays.ListByYear(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "Only Day", cached[0].Name)
	assert.Equal(t, domain.HolidayOfficial, cached[0].Kind)
}

func TestHolidayService_RefreshSurfacesSourceErrors(t *testing.T) {
	r := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewHolidayService(r.holidays, r.uow, &stubSource{err: errors.New("503")}, obs)

	_, err := svc.Refresh(context.Background(), 2026)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching 2026 holidays from stub")

	events := obs.named("refresh-holidays")
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
}

func TestHolidayService_RefreshRollsBackPartialWrite(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	src := &stubSource{byYear: officialHolidays2026()}

	_, err := NewHolidayService(r.holidays, r.uow, src).ForYear(ctx, 2026)
	require.NoError(t, err)

	injected := errors.New("write failed")
	failing := NewHolidayService(r.holidays, &testutil.FailOnNthExecUoW{DB: r.db, FailOn: 2, Err: injected}, src)
	src.byYear[2026] = []domain.Holiday{{Name: "Replacement", Date: day(2026, 4, 1)}}

	_, err = failing.Refresh(ctx, 2026)
	require.ErrorIs(t, err, injected)

	cached, err := r.holidays.ListByYear(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, cached, 2, "the previous year stays intact")
	assert.Equal(t, "New Year's Day", cached[0].Name)
}
