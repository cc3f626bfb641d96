package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkRepo_CreateAndGetRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(db)
	ctx := context.Background()

	w := testutil.NewTestWork("Volume 3",
		testutil.WithUnitTree(
			domain.NewBranchUnit("ch1", domain.NewLeafUnit("p1", 0), domain.NewLeafUnit("p2", 2)),
			domain.NewBranchUnit("ch2"),
		),
		testutil.WithGranularities("Chapter", "Page"),
		testutil.WithEstimate(40, 3.5),
	)
	require.NoError(t, w.SetPrimaryUnit("p2", w.UpdatedAt))
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, w, got)

	ch2, ok := got.FindUnit("ch2")
	require.True(t, ok)
	assert.True(t, ch2.IsBranch())
	assert.NotNil(t, ch2.Children())
}

func TestWorkRepo_NilDeadlineAndNullStageHours(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(db)
	ctx := context.Background()

	w := testutil.NewTestWork("Oneshot",
		testutil.WithoutDeadline(),
		testutil.WithStages(domain.StageWorkload{ID: "draft", Label: "Draft"}),
	)
	require.NoError(t, repo.Create(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Deadline)
	require.Len(t, got.StageWorkloads, 1)
	assert.Nil(t, got.StageWorkloads[0].BaseHours)
}

func TestWorkRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteWorkRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWorkRepo_ListOrdersByDeadlineAndFiltersDone(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(db)
	ctx := context.Background()

	base := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	late := testutil.NewTestWork("late", testutil.WithDeadline(base.AddDate(0, 1, 0)))
	early := testutil.NewTestWork("early", testutil.WithDeadline(base))
	undated := testutil.NewTestWork("undated", testutil.WithoutDeadline())
	done := testutil.NewTestWork("done", testutil.WithWorkStatus(domain.WorkDone))
	for _, w := range []*domain.Work{late, undated, early, done} {
		require.NoError(t, repo.Create(ctx, w))
	}

	active, err := repo.List(ctx, false)
	require.NoError(t, err)
	titles := make([]string, len(active))
	for i, w := range active {
		titles[i] = w.Title
	}
	assert.Equal(t, []string{"early", "late", "undated"}, titles)

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestWorkRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(db)
	ctx := context.Background()

	w := testutil.NewTestWork("Volume 1", testutil.WithPages(3, 0))
	require.NoError(t, repo.Create(ctx, w))

	leaves := w.Units[0].Children()
	require.NoError(t, w.SetUnitStage(leaves[0].ID, 2, w.UpdatedAt.Add(time.Minute)))
	w.Title = "Volume 1 (revised)"
	require.NoError(t, repo.Update(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Volume 1 (revised)", got.Title)
	stage, ok := got.Units[0].Children()[0].StageIndex()
	require.True(t, ok)
	assert.Equal(t, 2, stage)
	assert.Equal(t, w.UpdatedAt, got.UpdatedAt)
}

func TestWorkRepo_UpdateAndDeleteMissing(t *testing.T) {
	repo := NewSQLiteWorkRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.ErrorIs(t, repo.Update(ctx, testutil.NewTestWork("ghost")), ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, "ghost"), ErrNotFound)
}

func TestWorkRepo_RejectsCorruptUnitJSON(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteWorkRepo(db)
	ctx := context.Background()

	w := testutil.NewTestWork("Broken")
	require.NoError(t, repo.Create(ctx, w))
	_, err := db.Exec(`UPDATE works SET units_json = '[{"id":"x","index":1,"stageIndex":0,"children":[]}]' WHERE id = ?`, w.ID)
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, w.ID)
	require.ErrorIs(t, err, domain.ErrInvalidUnit)
}
