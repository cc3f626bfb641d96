package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/pagepace/internal/db"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fetchedAt = time.Date(2026, time.January, 2, 3, 4, 5, 0, time.UTC)

func TestHolidayRepo_ReplaceYear(t *testing.T) {
	repo := NewSQLiteHolidayRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := []domain.Holiday{
		{Name: "元日", Date: date(2026, 1, 1), Kind: domain.HolidayOfficial},
		{Name: "成人の日", Date: date(2026, 1, 12)},
	}
	require.NoError(t, repo.ReplaceYear(ctx, 2026, "cabinet", first, fetchedAt))
	require.NoError(t, repo.ReplaceYear(ctx, 2027, "cabinet",
		[]domain.Holiday{{Name: "元日", Date: date(2027, 1, 1)}}, fetchedAt))

	got, err := repo.ListByYear(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, domain.HolidayOfficial, got[1].Kind)

	require.NoError(t, repo.ReplaceYear(ctx, 2026, "gcal",
		[]domain.Holiday{{Name: "New Year's Day", Date: date(2026, 1, 1)}}, fetchedAt))
	got, err = repo.ListByYear(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "New Year's Day", got[0].Name)

	years, err := repo.CachedYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2026, 2027}, years)
}

func TestHolidayRepo_RejectsForeignYear(t *testing.T) {
	repo := NewSQLiteHolidayRepo(testutil.NewTestDB(t))

	err := repo.ReplaceYear(context.Background(), 2026, "cabinet",
		[]domain.Holiday{{Name: "stray", Date: date(2025, 12, 31)}}, fetchedAt)
	require.Error(t, err)
}

func TestHolidayRepo_ReplaceYearRollsBackInTx(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	seed := []domain.Holiday{{Name: "元日", Date: date(2026, 1, 1)}}
	require.NoError(t, NewSQLiteHolidayRepo(database).ReplaceYear(ctx, 2026, "cabinet", seed, fetchedAt))

	// Exec #1 is the delete, #2 the first insert.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: errors.New("disk full")}
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return NewSQLiteHolidayRepo(tx).ReplaceYear(ctx, 2026, "gcal",
			[]domain.Holiday{{Name: "New Year's Day", Date: date(2026, 1, 1)}}, fetchedAt)
	})
	require.Error(t, err)

	got, err := NewSQLiteHolidayRepo(database).ListByYear(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "元日", got[0].Name)
}
