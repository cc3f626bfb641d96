package app

import (
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
)

type StatusRequest struct {
	Now *time.Time
	// WorkScope restricts the report to these work IDs or ID prefixes.
	WorkScope   []string
	IncludeDone bool
}

func NewStatusRequest() StatusRequest {
	return StatusRequest{}
}

type WorkStatusView struct {
	WorkID          string
	Title           string
	Status          domain.WorkStatus
	Deadline        *string
	PercentComplete int
	LeafCount       int
	CompletedLeaves int
	EstimatedHours  float64
	RemainingHours  float64
	// Weighted reports whether progress came from stage hours rather than
	// finished-leaf counts.
	Weighted bool
	// Pace is nil for works without a deadline.
	Pace *domain.WorkPaceCalculation
	// Pressure is remaining hours per remaining workable hour, floored at
	// one workable hour.
	Pressure float64
	Notes    []string
}

// PaceStatus returns the view's pace, or "" when it has no deadline.
func (v WorkStatusView) PaceStatus() domain.PaceStatus {
	if v.Pace == nil {
		return ""
	}
	return v.Pace.PaceStatus
}

type StatusSummary struct {
	GeneratedAt    time.Time
	CountsTotal    int
	CountsAhead    int
	CountsOnTrack  int
	CountsBehind   int
	CountsCritical int
	CountsUndated  int
	PolicyMessage  string
}

type StatusResponse struct {
	Summary StatusSummary
	// Works are ordered most urgent first; undated and done works trail.
	Works      []WorkStatusView
	MostUrgent *WorkStatusView
	Warnings   []string
}

type StatusErrorCode string

const (
	StatusErrInvalidScope StatusErrorCode = "INVALID_SCOPE"
	StatusErrNoDeadline   StatusErrorCode = "NO_DEADLINE"
)

type StatusError struct {
	Code    StatusErrorCode
	Message string
}

func (e *StatusError) Error() string {
	return string(e.Code) + ": " + e.Message
}
