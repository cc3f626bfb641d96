package scheduler

import (
	"math"
	"sort"

	"github.com/alexanderramin/pagepace/internal/domain"
)

// UrgencyCandidate pairs a work with its remaining effort and pace.
type UrgencyCandidate struct {
	Work           *domain.Work
	RemainingHours float64
	Pace           domain.WorkPaceCalculation
}

// Eligible reports whether the candidate takes part in ranking: it needs a
// deadline and must not be done.
func (c UrgencyCandidate) Eligible() bool {
	return c.Work != nil && c.Work.Deadline != nil && !c.Work.IsComplete()
}

// Pressure is the tie-break ratio. Remaining workable hours are floored at
// one to keep the ratio finite.
func (c UrgencyCandidate) Pressure() float64 {
	return c.RemainingHours / math.Max(c.Pace.RemainingWorkableHours, 1)
}

// moreUrgent orders by days until deadline ascending, then pressure
// descending.
func moreUrgent(a, b UrgencyCandidate) bool {
	if a.Pace.DaysUntilDeadline != b.Pace.DaysUntilDeadline {
		return a.Pace.DaysUntilDeadline < b.Pace.DaysUntilDeadline
	}
	return a.Pressure() > b.Pressure()
}

// PickMostUrgent returns the most urgent eligible candidate. On a full tie
// the earlier candidate wins, matching the first element of SortByUrgency.
func PickMostUrgent(candidates []UrgencyCandidate) (UrgencyCandidate, bool) {
	var best UrgencyCandidate
	found := false
	for _, c := range candidates {
		if !c.Eligible() {
			continue
		}
		if !found || moreUrgent(c, best) {
			best = c
			found = true
		}
	}
	return best, found
}

// SortByUrgency stable-sorts candidates most urgent first. Ineligible
// candidates keep their relative order after all eligible ones.
func SortByUrgency(candidates []UrgencyCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Eligible() != b.Eligible() {
			return a.Eligible()
		}
		if !a.Eligible() {
			return false
		}
		return moreUrgent(a, b)
	})
}
