package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pagepace/internal/app"
	"github.com/alexanderramin/pagepace/internal/domain"
)

const statusProgressBarWidth = 10

// FormatStatus renders the status report as a boxed table, most urgent
// work first.
func FormatStatus(resp *app.StatusResponse) string {
	var b strings.Builder
	today := domain.DateOf(resp.Summary.GeneratedAt)

	headers := []string{"ID", "TITLE", "PROGRESS", "PACE", "REMAINING", "WORKABLE", "DEADLINE"}
	rows := make([][]string, 0, len(resp.Works))
	for _, v := range resp.Works {
		workable := Dim("--")
		if v.Pace != nil {
			workable = FormatHoursFixed(v.Pace.RemainingWorkableHours)
		}
		rows = append(rows, []string{
			TruncID(v.WorkID),
			Bold(v.Title),
			RenderProgress(v.PercentComplete, statusProgressBarWidth),
			PaceIndicator(v.PaceStatus()),
			FormatHoursFixed(v.RemainingHours),
			workable,
			deadlineCell(v.Deadline, v.Status, today),
		})
	}
	if len(rows) == 0 {
		b.WriteString(Dim("No works yet. Add one with: pagepace work add \"Title\" --deadline YYYY-MM-DD") + "\n")
	} else {
		b.WriteString(RenderTable(headers, rows))
	}

	s := resp.Summary
	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		StyleRed.Render(fmt.Sprintf("%d Critical", s.CountsCritical)),
		StyleYellow.Render(fmt.Sprintf("%d Behind", s.CountsBehind)),
		StyleBlue.Render(fmt.Sprintf("%d On Track", s.CountsOnTrack)),
		StyleGreen.Render(fmt.Sprintf("%d Ahead", s.CountsAhead)),
		Dim(fmt.Sprintf("%d Undated", s.CountsUndated)),
	}, ", ") + "\n")

	if resp.MostUrgent != nil {
		b.WriteString("\n" + StyleHeader.Render("Most urgent: ") + Bold(resp.MostUrgent.Title))
		if p := resp.MostUrgent.Pace; p != nil {
			b.WriteString(Dim(fmt.Sprintf("  (%s today, %s/day)",
				FormatHoursFixed(p.TodayRequiredHours), FormatHoursFixed(p.DailyRequiredHours))))
		}
		b.WriteString("\n")
	}

	if s.PolicyMessage != "" {
		b.WriteString("\n" + Dim(s.PolicyMessage) + "\n")
	}
	writeWarnings(&b, resp.Warnings)
	for _, v := range resp.Works {
		for _, n := range v.Notes {
			b.WriteString(Dim(fmt.Sprintf("  %s: %s", v.Title, n)) + "\n")
		}
	}

	return RenderBox("Status", b.String())
}

func deadlineCell(deadline *string, status domain.WorkStatus, today time.Time) string {
	if deadline == nil {
		return Dim("--")
	}
	parsed, err := domain.ParseDate(*deadline)
	if err != nil {
		return StyleFg.Render(*deadline)
	}
	if status == domain.WorkDone {
		return Dim(parsed.Format("Jan 2"))
	}
	return DeadlineStyled(parsed, today)
}

func writeWarnings(b *strings.Builder, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	b.WriteString("\n")
	for _, w := range warnings {
		b.WriteString(StyleYellow.Render("  WARNING: "+w) + "\n")
	}
}

// FormatPace renders the pace breakdown of a single work.
func FormatPace(resp *app.PaceResponse) string {
	var b strings.Builder
	v := resp.Summary

	b.WriteString(Bold(v.Title) + "  " + TruncID(v.WorkID) + "\n")
	b.WriteString(RenderProgress(v.PercentComplete, 20) + "\n\n")

	lines := [][2]string{
		{"Pace", PaceIndicator(v.PaceStatus())},
		{"Remaining effort", FormatHoursFixed(v.RemainingHours) + Dim(fmt.Sprintf(" of %s", FormatHoursFixed(v.EstimatedHours)))},
	}
	if p := v.Pace; p != nil {
		lines = append(lines,
			[2]string{"Workable until deadline", fmt.Sprintf("%s over %d days (%d workable)",
				FormatHoursFixed(p.RemainingWorkableHours), p.DaysUntilDeadline, p.WorkableDaysUntilDeadline)},
			[2]string{"Required per workable day", FormatHoursFixed(p.DailyRequiredHours)},
			[2]string{"Required today", FormatHoursFixed(p.TodayRequiredHours)},
		)
	}
	today := resp.Today
	avail := FormatHoursFixed(today.Hours) + Dim(" ("+string(today.Source))
	if today.HolidayName != "" {
		avail += Dim(": " + today.HolidayName)
	}
	avail += Dim(")")
	lines = append(lines, [2]string{"Available today", avail})

	for _, l := range lines {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleDim.Width(26).Render(l[0]), l[1]))
	}
	mode := "finished leaves"
	if v.Weighted {
		mode = "stage hours"
	}
	b.WriteString("\n" + Dim(fmt.Sprintf("Progress from %s, %d/%d leaves finished", mode, v.CompletedLeaves, v.LeafCount)) + "\n")
	for _, n := range v.Notes {
		b.WriteString(StyleYellow.Render("  NOTE: "+n) + "\n")
	}

	return RenderBox("Pace", b.String())
}
