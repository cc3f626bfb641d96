package progress

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hours(h float64) *float64 { return &h }

func stages(hs ...*float64) []domain.StageWorkload {
	out := make([]domain.StageWorkload, len(hs))
	for i, h := range hs {
		out[i] = domain.StageWorkload{ID: string(rune('a' + i)), BaseHours: h}
	}
	return out
}

func workOf(units ...domain.Unit) *domain.Work {
	return &domain.Work{ID: "w", Units: units}
}

func ids(units []domain.Unit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.ID
	}
	return out
}

func TestLeafUnits_DepthThreeMixed(t *testing.T) {
	units := []domain.Unit{
		domain.NewBranchUnit("v1",
			domain.NewBranchUnit("c1", domain.NewLeafUnit("p1", 0), domain.NewLeafUnit("p2", 1)),
			domain.NewLeafUnit("c2", 2),
			domain.NewBranchUnit("c3"),
		),
		domain.NewLeafUnit("v2", 0),
		domain.NewBranchUnit("v3", domain.NewBranchUnit("c4", domain.NewLeafUnit("p3", 3))),
	}
	assert.Equal(t, []string{"p1", "p2", "c2", "v2", "p3"}, ids(LeafUnits(units)))
}

func TestLeafUnits_SkipsMalformed(t *testing.T) {
	var units []domain.Unit
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":"ok","index":1,"stageIndex":0},
		{"id":"broken","index":2},
		{"id":"ch","index":3,"children":[{"id":"inner","index":1},{"id":"leaf","index":2,"stageIndex":1}]}
	]`), &units))
	assert.Equal(t, []string{"ok", "leaf"}, ids(LeafUnits(units)))
}

func TestOverallProgress_NoStagesOrLeaves(t *testing.T) {
	assert.Equal(t, 0, OverallProgress(workOf(domain.NewLeafUnit("p", 3)), nil))
	assert.Equal(t, 0, OverallProgress(workOf(domain.NewBranchUnit("empty")), stages(hours(1))))
	assert.Equal(t, 0, OverallProgress(workOf(), stages(hours(1))))
}

func TestOverallProgress_AllFinalIsHundred(t *testing.T) {
	st := stages(hours(1), hours(2.5), hours(0.5))
	w := workOf(domain.NewLeafUnit("a", 2), domain.NewBranchUnit("b", domain.NewLeafUnit("c", 2)))
	assert.Equal(t, 100, OverallProgress(w, st))
}

func TestOverallProgress_AllAtStageZeroIsNotZero(t *testing.T) {
	st := stages(hours(1), hours(2), hours(1))
	w := workOf(domain.NewLeafUnit("a", 0), domain.NewLeafUnit("b", 0))
	// cumulative = [1, 3, 4] -> 100 * 1 / 4
	assert.Equal(t, 25, OverallProgress(w, st))
}

func TestSummarize_CountModeNeedsExactFinalStage(t *testing.T) {
	st := stages(nil, nil, nil, nil)
	w := workOf(domain.NewLeafUnit("done", 3), domain.NewLeafUnit("beyond", 7))
	w.TotalEstimatedHours = 10

	s := Summarize(w, st)
	assert.False(t, s.Weighted)
	assert.Equal(t, 1, s.CompletedLeaves)
	assert.Equal(t, 50, s.Percent)
	assert.Equal(t, 5.0, s.RemainingHours)
}

func TestOverallProgress_WeightedMixed(t *testing.T) {
	st := stages(hours(2), hours(3), hours(5))
	w := workOf(
		domain.NewLeafUnit("a", 0), // 2
		domain.NewLeafUnit("b", 1), // 5
		domain.NewLeafUnit("c", 9), // capped at 10, but not a finished leaf
	)
	s := Summarize(w, st)
	assert.True(t, s.Weighted)
	assert.Equal(t, 3, s.LeafCount)
	assert.Equal(t, 0, s.CompletedLeaves)
	assert.Equal(t, 30.0, s.EstimatedHours)
	assert.Equal(t, 17.0, s.CompletedHours)
	assert.Equal(t, 13.0, s.RemainingHours)
	assert.Equal(t, 57, s.Percent)
}

func TestOverallProgress_NilAndNonFiniteHoursCountAsZero(t *testing.T) {
	st := stages(nil, hours(math.NaN()), hours(4))
	w := workOf(domain.NewLeafUnit("a", 1), domain.NewLeafUnit("b", 2))
	s := Summarize(w, st)
	assert.True(t, s.Weighted)
	assert.Equal(t, 50, s.Percent)
	assert.Equal(t, []float64{0, 0, 4}, CumulativeHours(st))
}

func TestOverallProgress_WeightedZeroTotal(t *testing.T) {
	st := stages(hours(0), hours(0))
	assert.Equal(t, 0, OverallProgress(workOf(domain.NewLeafUnit("a", 1)), st))
}

func TestOverallProgress_CountFallback(t *testing.T) {
	st := stages(nil, nil, nil)
	w := workOf(
		domain.NewLeafUnit("a", 2),
		domain.NewLeafUnit("b", 1),
		domain.NewLeafUnit("c", 0),
	)
	w.TotalEstimatedHours = 30

	s := Summarize(w, st)
	assert.False(t, s.Weighted)
	assert.Equal(t, 33, s.Percent)
	assert.Equal(t, 1, s.CompletedLeaves)
	assert.Equal(t, 30.0, s.EstimatedHours)
	assert.InDelta(t, 10.0, s.CompletedHours, 1e-9)
	assert.InDelta(t, 20.0, s.RemainingHours, 1e-9)
}

func TestOverallProgress_FallbackNeverAveragesModes(t *testing.T) {
	// One configured stage switches the whole computation to weighted mode.
	st := stages(nil, hours(1))
	w := workOf(domain.NewLeafUnit("a", 0), domain.NewLeafUnit("b", 1))
	s := Summarize(w, st)
	assert.True(t, s.Weighted)
	assert.Equal(t, 50, s.Percent)
}

func TestSummarize_NoLeavesUsesWorkEstimate(t *testing.T) {
	w := workOf()
	w.TotalEstimatedHours = 12
	s := Summarize(w, stages(hours(1)))
	assert.Equal(t, 0, s.Percent)
	assert.Equal(t, 12.0, s.EstimatedHours)
	assert.Equal(t, 12.0, s.RemainingHours)
}
