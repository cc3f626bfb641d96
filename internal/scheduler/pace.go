package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
)

type PaceInput struct {
	Today          time.Time
	Deadline       time.Time
	RemainingHours float64
	// CurrentProgress is the completion ratio in [0, 1]. It is reported
	// alongside the pace but does not influence classification.
	CurrentProgress float64
	Availability    Availability
}

// ComputePace derives the deadline pace for one work over [Today, Deadline]
// inclusive. A deadline before today yields a zero result classified
// critical.
func ComputePace(in PaceInput) domain.WorkPaceCalculation {
	today, deadline := domain.DateOf(in.Today), domain.DateOf(in.Deadline)
	if deadline.Before(today) {
		return domain.WorkPaceCalculation{PaceStatus: domain.PaceCritical}
	}

	remaining := domain.SanitizeHours(in.RemainingHours)
	days := DailyHours(today, deadline, in.Availability)

	var workable float64
	var workableDays int
	for _, d := range days {
		workable += d.Hours
		if d.Hours > 0 {
			workableDays++
		}
	}

	var daily float64
	if workableDays > 0 {
		daily = remaining / float64(workableDays)
	}

	ratio := PaceRatio(remaining, workable)

	return domain.WorkPaceCalculation{
		TotalWorkableHours:        workable,
		RemainingWorkableHours:    workable,
		DailyRequiredHours:        daily,
		TodayRequiredHours:        math.Min(daily, days[0].Hours),
		DaysUntilDeadline:         len(days),
		WorkableDaysUntilDeadline: workableDays,
		IsOnSchedule:              ratio <= 1.0,
		PaceStatus:                ClassifyPace(remaining, workable),
	}
}

// PaceRatio is remaining effort over remaining workable time. It is 0 when
// both are zero and +Inf when only workable time is exhausted.
func PaceRatio(remainingHours, remainingWorkableHours float64) float64 {
	if remainingWorkableHours == 0 {
		if remainingHours > 0 {
			return math.Inf(1)
		}
		return 0
	}
	return remainingHours / remainingWorkableHours
}

// ClassifyPace applies the pace thresholds. With no workable hours left the
// ratio is not consulted: remaining work is critical, nothing left is on
// track.
func ClassifyPace(remainingHours, remainingWorkableHours float64) domain.PaceStatus {
	if remainingWorkableHours == 0 {
		if remainingHours > 0 {
			return domain.PaceCritical
		}
		return domain.PaceOnTrack
	}
	return PaceStatusForRatio(PaceRatio(remainingHours, remainingWorkableHours))
}

// PaceStatusForRatio maps a pace ratio to a status. Boundaries: 1.2 is
// behind, 1.0 and 0.8 are on track.
func PaceStatusForRatio(ratio float64) domain.PaceStatus {
	switch {
	case ratio > 1.2:
		return domain.PaceCritical
	case ratio > 1.0:
		return domain.PaceBehind
	case ratio < 0.8:
		return domain.PaceAhead
	default:
		return domain.PaceOnTrack
	}
}

// PaceRank orders statuses by severity (lower = more severe).
func PaceRank(s domain.PaceStatus) int {
	switch s {
	case domain.PaceCritical:
		return 0
	case domain.PaceBehind:
		return 1
	case domain.PaceOnTrack:
		return 2
	default:
		return 3
	}
}
