package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pagepace/internal/app"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/progress"
	"github.com/alexanderramin/pagepace/internal/scheduler"
)

// flattenUnits returns every unit of the tree in depth-first order.
func flattenUnits(units []domain.Unit) []domain.Unit {
	var out []domain.Unit
	for _, u := range units {
		out = append(out, u)
		if u.IsBranch() {
			out = append(out, flattenUnits(u.Children())...)
		}
	}
	return out
}

// filterWorksByScope keeps works whose ID equals or starts with a scope
// entry. Every entry must match at least one work. An empty scope keeps all.
func filterWorksByScope(works []*domain.Work, scope []string) ([]*domain.Work, error) {
	if len(scope) == 0 {
		return works, nil
	}
	keep := make(map[string]bool, len(works))
	for _, ref := range scope {
		ref = strings.TrimSpace(ref)
		matched := false
		for _, w := range works {
			if ref != "" && strings.HasPrefix(w.ID, ref) {
				keep[w.ID] = true
				matched = true
			}
		}
		if !matched {
			return nil, &app.StatusError{
				Code:    app.StatusErrInvalidScope,
				Message: fmt.Sprintf("no work matches %q", ref),
			}
		}
	}
	filtered := make([]*domain.Work, 0, len(keep))
	for _, w := range works {
		if keep[w.ID] {
			filtered = append(filtered, w)
		}
	}
	return filtered, nil
}

// pacingHorizon is the latest deadline among paced works, never earlier
// than today. It returns a day before today when nothing needs pacing.
func pacingHorizon(works []*domain.Work, today time.Time) time.Time {
	horizon := today.AddDate(0, 0, -1)
	for _, w := range works {
		if w.Deadline == nil || w.IsComplete() {
			continue
		}
		d := domain.DateOf(*w.Deadline)
		if d.Before(today) {
			d = today
		}
		if d.After(horizon) {
			horizon = d
		}
	}
	return horizon
}

func computeWorkPace(w *domain.Work, sum progress.Summary, today time.Time, avail scheduler.Availability) domain.WorkPaceCalculation {
	return scheduler.ComputePace(scheduler.PaceInput{
		Today:           today,
		Deadline:        *w.Deadline,
		RemainingHours:  sum.RemainingHours,
		CurrentProgress: float64(sum.Percent) / 100,
		Availability:    avail,
	})
}

// buildWorkView summarizes one work. Works that are done or undated get no
// pace.
func buildWorkView(w *domain.Work, today time.Time, avail scheduler.Availability) (app.WorkStatusView, scheduler.UrgencyCandidate) {
	sum := progress.Summarize(w, w.StageWorkloads)
	cand := scheduler.UrgencyCandidate{Work: w, RemainingHours: sum.RemainingHours}

	view := app.WorkStatusView{
		WorkID:          w.ID,
		Title:           w.Title,
		Status:          w.Status,
		PercentComplete: sum.Percent,
		LeafCount:       sum.LeafCount,
		CompletedLeaves: sum.CompletedLeaves,
		EstimatedHours:  sum.EstimatedHours,
		RemainingHours:  sum.RemainingHours,
		Weighted:        sum.Weighted,
	}
	if w.Deadline != nil {
		ds := w.Deadline.Format(domain.DateLayout)
		view.Deadline = &ds
	}

	if cand.Eligible() {
		cand.Pace = computeWorkPace(w, sum, today, avail)
		pace := cand.Pace
		view.Pace = &pace
		view.Pressure = cand.Pressure()
	}
	view.Notes = workNotes(w, today)
	return view, cand
}

func workNotes(w *domain.Work, today time.Time) []string {
	var notes []string
	if !w.EstimateConsistent() {
		notes = append(notes, fmt.Sprintf("estimate %.1fh differs from %d units x %.1fh",
			w.TotalEstimatedHours, w.TotalUnits, w.UnitEstimatedHours))
	}
	switch {
	case w.Deadline == nil:
		notes = append(notes, "no deadline set")
	case !w.IsComplete() && domain.DateOf(*w.Deadline).Before(today):
		notes = append(notes, fmt.Sprintf("deadline passed %d days ago", domain.DaysBetween(*w.Deadline, today)))
	}
	return notes
}

func buildStatusSummary(views []app.WorkStatusView, now time.Time) app.StatusSummary {
	sum := app.StatusSummary{GeneratedAt: now, CountsTotal: len(views)}
	for _, v := range views {
		switch v.PaceStatus() {
		case domain.PaceAhead:
			sum.CountsAhead++
		case domain.PaceOnTrack:
			sum.CountsOnTrack++
		case domain.PaceBehind:
			sum.CountsBehind++
		case domain.PaceCritical:
			sum.CountsCritical++
		}
		if v.Deadline == nil {
			sum.CountsUndated++
		}
	}

	switch {
	case sum.CountsTotal == 0:
		sum.PolicyMessage = "No works tracked"
	case sum.CountsCritical > 0:
		sum.PolicyMessage = "Critical works need attention"
	case sum.CountsBehind > 0:
		sum.PolicyMessage = "Some works are behind pace"
	default:
		sum.PolicyMessage = "All dated works on pace"
	}
	return sum
}

func statusWarnings(views []app.WorkStatusView) []string {
	var warnings []string
	for _, v := range views {
		if v.Pace != nil && v.Pace.DaysUntilDeadline > 0 && v.Pace.WorkableDaysUntilDeadline == 0 && v.RemainingHours > 0 {
			warnings = append(warnings, fmt.Sprintf("%s: no workable hours before the deadline", v.Title))
		}
	}
	return warnings
}
