package domain

// WorkPaceCalculation is the derived deadline pace for one work. It is
// recomputed on demand and never persisted.
type WorkPaceCalculation struct {
	TotalWorkableHours        float64
	RemainingWorkableHours    float64
	DailyRequiredHours        float64
	TodayRequiredHours        float64
	DaysUntilDeadline         int
	WorkableDaysUntilDeadline int
	IsOnSchedule              bool
	PaceStatus                PaceStatus
}
