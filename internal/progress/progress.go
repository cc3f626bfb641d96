// Package progress derives completion figures from a work's unit tree and
// its stage workload table.
package progress

import (
	"math"

	"github.com/alexanderramin/pagepace/internal/domain"
)

// LeafUnits flattens units depth-first, left to right, keeping only leaves.
// Malformed units are skipped.
func LeafUnits(units []domain.Unit) []domain.Unit {
	var out []domain.Unit
	var walk func([]domain.Unit)
	walk = func(us []domain.Unit) {
		for _, u := range us {
			switch {
			case u.IsLeaf():
				out = append(out, u)
			case u.IsBranch():
				walk(u.Children())
			}
		}
	}
	walk(units)
	return out
}

// Summary is the completion picture of one work.
type Summary struct {
	Percent         int
	LeafCount       int
	CompletedLeaves int
	EstimatedHours  float64
	CompletedHours  float64
	RemainingHours  float64
	// Weighted is true when the percentage came from stage hours rather
	// than the count of finished leaves.
	Weighted bool
}

// OverallProgress returns the completion percentage 0..100 of work given
// stages, which is normally work.StageWorkloads.
func OverallProgress(work *domain.Work, stages []domain.StageWorkload) int {
	return Summarize(work, stages).Percent
}

// Summarize computes progress and hour figures. When any stage carries
// BaseHours, leaves contribute the cumulative stage hours up to their stage
// index, with indexes past the table capped at its last row. Otherwise a
// leaf counts only when its stage index is exactly the final stage and hours
// are prorated from the work's TotalEstimatedHours.
func Summarize(work *domain.Work, stages []domain.StageWorkload) Summary {
	leaves := LeafUnits(work.Units)
	s := Summary{LeafCount: len(leaves)}

	if len(stages) == 0 || len(leaves) == 0 {
		s.EstimatedHours = domain.SanitizeHours(work.TotalEstimatedHours)
		s.RemainingHours = s.EstimatedHours
		return s
	}

	last := len(stages) - 1
	for _, leaf := range leaves {
		if stage, _ := leaf.StageIndex(); stage == last {
			s.CompletedLeaves++
		}
	}

	if hasWorkloadData(stages) {
		return weighted(s, leaves, stages)
	}

	s.Percent = percent(float64(s.CompletedLeaves), float64(s.LeafCount))
	s.EstimatedHours = domain.SanitizeHours(work.TotalEstimatedHours)
	s.CompletedHours = s.EstimatedHours * float64(s.CompletedLeaves) / float64(s.LeafCount)
	s.RemainingHours = s.EstimatedHours - s.CompletedHours
	return s
}

func weighted(s Summary, leaves []domain.Unit, stages []domain.StageWorkload) Summary {
	cumulative := CumulativeHours(stages)
	last := len(cumulative) - 1

	for _, leaf := range leaves {
		s.CompletedHours += cumulative[stageOf(leaf, last)]
	}
	s.EstimatedHours = cumulative[last] * float64(s.LeafCount)
	s.RemainingHours = math.Max(0, s.EstimatedHours-s.CompletedHours)
	s.Percent = percent(s.CompletedHours, s.EstimatedHours)
	s.Weighted = true
	return s
}

// CumulativeHours returns the running total of stage hours; element i is
// the effort to take one leaf through stages 0..i. Missing or non-finite
// hours count as zero.
func CumulativeHours(stages []domain.StageWorkload) []float64 {
	out := make([]float64, len(stages))
	var sum float64
	for i, st := range stages {
		sum += st.Hours()
		out[i] = sum
	}
	return out
}

func hasWorkloadData(stages []domain.StageWorkload) bool {
	for _, st := range stages {
		if st.BaseHours != nil {
			return true
		}
	}
	return false
}

// stageOf returns the leaf's stage clamped to [0, last] for cumulative lookups.
func stageOf(leaf domain.Unit, last int) int {
	stage, _ := leaf.StageIndex()
	return max(0, min(stage, last))
}

func percent(part, whole float64) int {
	if whole <= 0 {
		return 0
	}
	p := int(math.Round(100 * part / whole))
	return max(0, min(100, p))
}
