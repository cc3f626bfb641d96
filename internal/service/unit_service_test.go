package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/pagepace/internal/app"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/repository"
	"github.com/alexanderramin/pagepace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitService_AddRootBranch(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewUnitService(r.uow)

	w := testutil.NewTestWork("Volume 1")
	require.NoError(t, r.works.Create(ctx, w))

	updated, err := svc.AddRoot(ctx, w.ID, app.UnitSpec{Children: 3, Stage: 1})
	require.NoError(t, err)
	require.Len(t, updated.Units, 1)

	chapter := updated.Units[0]
	assert.True(t, chapter.IsBranch())
	assert.Equal(t, 1, chapter.Index)
	require.Len(t, chapter.Children(), 3)
	for i, page := range chapter.Children() {
		stage, ok := page.StageIndex()
		assert.True(t, ok)
		assert.Equal(t, 1, stage)
		assert.Equal(t, i+1, page.Index)
	}

	stored, err := r.works.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Units, stored.Units)
}

func TestUnitService_AddChildByPrefix(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewUnitService(r.uow)

	chapter := domain.NewBranchUnit("chapter-one")
	w := testutil.NewTestWork("Volume 1", testutil.WithUnitTree(chapter))
	require.NoError(t, r.works.Create(ctx, w))

	updated, err := svc.AddChild(ctx, w.ID, "chapter-o", app.UnitSpec{Leaf: true, Stage: 2})
	require.NoError(t, err)

	got, ok := updated.FindUnit("chapter-one")
	require.True(t, ok)
	require.Len(t, got.Children(), 1)
	stage, _ := got.Children()[0].StageIndex()
	assert.Equal(t, 2, stage)
}

func TestUnitService_AmbiguousAndMissingRefs(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewUnitService(r.uow)

	w := testutil.NewTestWork("Volume 1", testutil.WithUnitTree(
		domain.NewLeafUnit("page-1", 0),
		domain.NewLeafUnit("page-2", 0),
	))
	require.NoError(t, r.works.Create(ctx, w))

	_, err := svc.SetStage(ctx, w.ID, "page-", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = svc.Remove(ctx, w.ID, "cover")
	assert.ErrorIs(t, err, domain.ErrUnitNotFound)

	_, err = svc.AddRoot(ctx, "missing", app.UnitSpec{Leaf: true})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUnitService_SetChildrenCount(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewUnitService(r.uow)

	chapter := domain.NewBranchUnit("ch", domain.NewLeafUnit("p1", 2), domain.NewLeafUnit("p2", 1))
	w := testutil.NewTestWork("Volume 1", testutil.WithUnitTree(chapter))
	require.NoError(t, r.works.Create(ctx, w))

	updated, err := svc.SetChildrenCount(ctx, w.ID, "ch", 4)
	require.NoError(t, err)
	got, _ := updated.FindUnit("ch")
	require.Len(t, got.Children(), 4)
	assert.Equal(t, "p1", got.Children()[0].ID)
	for _, added := range got.Children()[2:] {
		stage, ok := added.StageIndex()
		assert.True(t, ok)
		assert.Zero(t, stage)
	}

	updated, err = svc.SetChildrenCount(ctx, w.ID, "ch", 1)
	require.NoError(t, err)
	got, _ = updated.FindUnit("ch")
	require.Len(t, got.Children(), 1)
	assert.Equal(t, "p1", got.Children()[0].ID)

	_, err = svc.SetChildrenCount(ctx, w.ID, "ch", -1)
	assert.Error(t, err)
}

func TestUnitService_SetStage(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewUnitService(r.uow)

	w := testutil.NewTestWork("Volume 1", testutil.WithUnitTree(
		domain.NewBranchUnit("ch", domain.NewLeafUnit("p1", 0)),
	))
	require.NoError(t, r.works.Create(ctx, w))

	updated, err := svc.SetStage(ctx, w.ID, "p1", 2)
	require.NoError(t, err)
	got, _ := updated.FindUnit("p1")
	stage, _ := got.StageIndex()
	assert.Equal(t, 2, stage)

	_, err = svc.SetStage(ctx, w.ID, "p1", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	_, err = svc.SetStage(ctx, w.ID, "ch", 1)
	assert.ErrorIs(t, err, domain.ErrNotLeaf)
}

func TestUnitService_RemovingPrimaryAncestorClearsPrimary(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	svc := NewUnitService(r.uow)

	w := testutil.NewTestWork("Volume 1", testutil.WithUnitTree(
		domain.NewBranchUnit("ch1", domain.NewLeafUnit("p1", 0)),
		domain.NewBranchUnit("ch2", domain.NewLeafUnit("p2", 0)),
	))
	require.NoError(t, r.works.Create(ctx, w))

	updated, err := svc.SetPrimary(ctx, w.ID, "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", updated.PrimaryUnitID)

	updated, err = svc.Remove(ctx, w.ID, "ch1")
	require.NoError(t, err)
	assert.Empty(t, updated.PrimaryUnitID)
	require.Len(t, updated.Units, 1)
	assert.Equal(t, "ch2", updated.Units[0].ID)
	assert.Equal(t, 1, updated.Units[0].Index)

	stored, err := r.works.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.PrimaryUnitID)
}

func TestUnitService_RollsBackOnWriteFailure(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()

	w := testutil.NewTestWork("Volume 1", testutil.WithUnitTree(domain.NewLeafUnit("p1", 0)))
	require.NoError(t, r.works.Create(ctx, w))

	injected := errors.New("disk full")
	obs := &recordingObserver{}
	svc := NewUnitService(&testutil.FailOnNthExecUoW{DB: r.db, FailOn: 1, Err: injected}, obs)

	_, err := svc.SetStage(ctx, w.ID, "p1", 2)
	require.ErrorIs(t, err, injected)

	stored, err := r.works.GetByID(ctx, w.ID)
	require.NoError(t, err)
	got, _ := stored.FindUnit("p1")
	stage, _ := got.StageIndex()
	assert.Zero(t, stage)

	events := obs.named("set-unit-stage")
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
}
