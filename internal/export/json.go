package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/pagepace/internal/app"
)

type jsonReport struct {
	GeneratedAt string      `json:"generated_at"`
	Summary     jsonSummary `json:"summary"`
	MostUrgent  string      `json:"most_urgent,omitempty"`
	Works       []jsonWork  `json:"works"`
	Warnings    []string    `json:"warnings,omitempty"`
}

type jsonSummary struct {
	Total    int    `json:"total"`
	Ahead    int    `json:"ahead"`
	OnTrack  int    `json:"on_track"`
	Behind   int    `json:"behind"`
	Critical int    `json:"critical"`
	Undated  int    `json:"undated"`
	Policy   string `json:"policy"`
}

type jsonWork struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Status          string    `json:"status"`
	Deadline        *string   `json:"deadline"`
	PercentComplete int       `json:"percent_complete"`
	LeafCount       int       `json:"leaf_count"`
	CompletedLeaves int       `json:"completed_leaves"`
	EstimatedHours  float64   `json:"estimated_hours"`
	RemainingHours  float64   `json:"remaining_hours"`
	Weighted        bool      `json:"weighted"`
	Pace            *jsonPace `json:"pace"`
	Notes           []string  `json:"notes,omitempty"`
}

type jsonPace struct {
	Status                 string  `json:"status"`
	TotalWorkableHours     float64 `json:"total_workable_hours"`
	RemainingWorkableHours float64 `json:"remaining_workable_hours"`
	DailyRequiredHours     float64 `json:"daily_required_hours"`
	TodayRequiredHours     float64 `json:"today_required_hours"`
	DaysUntilDeadline      int     `json:"days_until_deadline"`
	WorkableDays           int     `json:"workable_days"`
	OnSchedule             bool    `json:"on_schedule"`
	Pressure               float64 `json:"pressure"`
}

// WriteStatusJSON writes the report as indented JSON.
func WriteStatusJSON(out io.Writer, resp *app.StatusResponse) error {
	report := jsonReport{
		GeneratedAt: resp.Summary.GeneratedAt.UTC().Format(time.RFC3339),
		Summary: jsonSummary{
			Total:    resp.Summary.CountsTotal,
			Ahead:    resp.Summary.CountsAhead,
			OnTrack:  resp.Summary.CountsOnTrack,
			Behind:   resp.Summary.CountsBehind,
			Critical: resp.Summary.CountsCritical,
			Undated:  resp.Summary.CountsUndated,
			Policy:   resp.Summary.PolicyMessage,
		},
		Works:    make([]jsonWork, 0, len(resp.Works)),
		Warnings: resp.Warnings,
	}
	if resp.MostUrgent != nil {
		report.MostUrgent = resp.MostUrgent.WorkID
	}

	for _, v := range resp.Works {
		jw := jsonWork{
			ID:              v.WorkID,
			Title:           v.Title,
			Status:          string(v.Status),
			Deadline:        v.Deadline,
			PercentComplete: v.PercentComplete,
			LeafCount:       v.LeafCount,
			CompletedLeaves: v.CompletedLeaves,
			EstimatedHours:  v.EstimatedHours,
			RemainingHours:  v.RemainingHours,
			Weighted:        v.Weighted,
			Notes:           v.Notes,
		}
		if p := v.Pace; p != nil {
			jw.Pace = &jsonPace{
				Status:                 string(p.PaceStatus),
				TotalWorkableHours:     p.TotalWorkableHours,
				RemainingWorkableHours: p.RemainingWorkableHours,
				DailyRequiredHours:     p.DailyRequiredHours,
				TodayRequiredHours:     p.TodayRequiredHours,
				DaysUntilDeadline:      p.DaysUntilDeadline,
				WorkableDays:           p.WorkableDaysUntilDeadline,
				OnSchedule:             p.IsOnSchedule,
				Pressure:               v.Pressure,
			}
		}
		report.Works = append(report.Works, jw)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
