package service

import (
	"testing"

	"github.com/alexanderramin/pagepace/internal/app"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterWorksByScope(t *testing.T) {
	a := testutil.NewTestWork("A")
	a.ID = "abc-111"
	b := testutil.NewTestWork("B")
	b.ID = "abd-222"
	works := []*domain.Work{a, b}

	all, err := filterWorksByScope(works, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	both, err := filterWorksByScope(works, []string{"ab"})
	require.NoError(t, err)
	assert.Len(t, both, 2)

	one, err := filterWorksByScope(works, []string{"abd", "abd-222"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "B", one[0].Title)

	_, err = filterWorksByScope(works, []string{"abc", "zzz"})
	var se *app.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, app.StatusErrInvalidScope, se.Code)
	assert.Contains(t, se.Message, `"zzz"`)
}

func TestPacingHorizon(t *testing.T) {
	today := day(2026, 3, 2)

	assert.Equal(t, day(2026, 3, 1), pacingHorizon(nil, today))

	undated := testutil.NewTestWork("undated", testutil.WithoutDeadline())
	done := testutil.NewTestWork("done", testutil.WithDeadline(day(2026, 9, 1)), testutil.WithWorkStatus(domain.WorkDone))
	assert.Equal(t, day(2026, 3, 1), pacingHorizon([]*domain.Work{undated, done}, today))

	passed := testutil.NewTestWork("passed", testutil.WithDeadline(day(2026, 2, 1)))
	assert.Equal(t, today, pacingHorizon([]*domain.Work{passed}, today))

	later := testutil.NewTestWork("later", testutil.WithDeadline(day(2026, 4, 10)))
	assert.Equal(t, day(2026, 4, 10), pacingHorizon([]*domain.Work{passed, later, done}, today))
}

func TestWorkNotes(t *testing.T) {
	today := day(2026, 3, 2)

	clean := testutil.NewTestWork("clean", testutil.WithDeadline(day(2026, 3, 9)))
	assert.Empty(t, workNotes(clean, today))

	late := testutil.NewTestWork("late", testutil.WithDeadline(day(2026, 2, 27)))
	assert.Equal(t, []string{"deadline passed 3 days ago"}, workNotes(late, today))

	late.Status = domain.WorkDone
	assert.Empty(t, workNotes(late, today), "finished works are not late")

	drift := testutil.NewTestWork("drift", testutil.WithoutDeadline())
	drift.TotalUnits, drift.UnitEstimatedHours, drift.TotalEstimatedHours = 4, 2, 10
	assert.Equal(t, []string{
		"estimate 10.0h differs from 4 units x 2.0h",
		"no deadline set",
	}, workNotes(drift, today))
}

func TestBuildStatusSummary(t *testing.T) {
	d := "2026-03-09"
	paced := func(s domain.PaceStatus) app.WorkStatusView {
		return app.WorkStatusView{Deadline: &d, Pace: &domain.WorkPaceCalculation{PaceStatus: s}}
	}
	now := statusNow

	empty := buildStatusSummary(nil, now)
	assert.Equal(t, "No works tracked", empty.PolicyMessage)
	assert.Equal(t, now, empty.GeneratedAt)

	s := buildStatusSummary([]app.WorkStatusView{
		paced(domain.PaceAhead), paced(domain.PaceOnTrack), paced(domain.PaceBehind), {},
	}, now)
	assert.Equal(t, 4, s.CountsTotal)
	assert.Equal(t, 1, s.CountsAhead)
	assert.Equal(t, 1, s.CountsOnTrack)
	assert.Equal(t, 1, s.CountsBehind)
	assert.Equal(t, 0, s.CountsCritical)
	assert.Equal(t, 1, s.CountsUndated)
	assert.Equal(t, "Some works are behind pace", s.PolicyMessage)

	calm := buildStatusSummary([]app.WorkStatusView{paced(domain.PaceAhead)}, now)
	assert.Equal(t, "All dated works on pace", calm.PolicyMessage)
}

func TestStatusWarnings(t *testing.T) {
	stuck := app.WorkStatusView{
		Title:          "Stuck",
		RemainingHours: 5,
		Pace:           &domain.WorkPaceCalculation{DaysUntilDeadline: 2},
	}
	finished := app.WorkStatusView{
		Title: "Finished",
		Pace:  &domain.WorkPaceCalculation{DaysUntilDeadline: 2},
	}
	overdue := app.WorkStatusView{
		Title:          "Overdue",
		RemainingHours: 5,
		Pace:           &domain.WorkPaceCalculation{},
	}

	assert.Equal(t,
		[]string{"Stuck: no workable hours before the deadline"},
		statusWarnings([]app.WorkStatusView{stuck, finished, overdue, {Title: "Undated"}}))
}
