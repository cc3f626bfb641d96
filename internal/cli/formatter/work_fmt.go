package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/progress"
)

// FormatWorkList renders works as a table with progress and deadlines.
func FormatWorkList(works []*domain.Work, today time.Time) string {
	if len(works) == 0 {
		return Dim("No works found.") + "\n"
	}
	headers := []string{"ID", "TITLE", "STATUS", "PROGRESS", "ESTIMATE", "DEADLINE"}
	rows := make([][]string, 0, len(works))
	for _, w := range works {
		var deadline *string
		if w.Deadline != nil {
			d := w.Deadline.Format(domain.DateLayout)
			deadline = &d
		}
		rows = append(rows, []string{
			TruncID(w.ID),
			Bold(w.Title),
			StatusPill(w.Status),
			RenderProgress(progress.OverallProgress(w, w.StageWorkloads), statusProgressBarWidth),
			FormatHoursFixed(w.TotalEstimatedHours),
			deadlineCell(deadline, w.Status, today),
		})
	}
	return RenderTable(headers, rows)
}

// FormatWorkDetail renders one work with its stage table and unit tree.
func FormatWorkDetail(w *domain.Work, today time.Time) string {
	var b strings.Builder
	sum := progress.Summarize(w, w.StageWorkloads)

	b.WriteString(Bold(w.Title) + "  " + StyleDim.Render(w.ID) + "\n")
	b.WriteString(StatusPill(w.Status) + "\n\n")

	deadline := Dim("none")
	if w.Deadline != nil {
		deadline = DeadlineStyled(*w.Deadline, today)
	}
	estimate := fmt.Sprintf("%s (%d units x %s)", FormatHoursFixed(w.TotalEstimatedHours), w.TotalUnits, FormatHours(w.UnitEstimatedHours))
	if w.EstimateOverridden {
		estimate = FormatHoursFixed(w.TotalEstimatedHours) + Dim(" (set by hand)")
	}
	for _, l := range [][2]string{
		{"Started", w.StartDate.Format(domain.DateLayout)},
		{"Deadline", deadline},
		{"Estimate", estimate},
		{"Progress", RenderProgress(sum.Percent, 20)},
		{"Remaining", FormatHoursFixed(sum.RemainingHours)},
	} {
		b.WriteString(fmt.Sprintf("%s %s\n", StyleDim.Width(12).Render(l[0]), l[1]))
	}

	if len(w.StageWorkloads) > 0 {
		b.WriteString("\n" + Header("Stages") + "\n")
		rows := make([][]string, 0, len(w.StageWorkloads))
		cumulative := progress.CumulativeHours(w.StageWorkloads)
		for i, st := range w.StageWorkloads {
			hours := Dim("--")
			if st.BaseHours != nil {
				hours = FormatHours(st.Hours())
			}
			rows = append(rows, []string{fmt.Sprintf("%d", i), domain.CoalesceStr(st.Label, st.ID), hours, FormatHours(cumulative[i])})
		}
		b.WriteString(RenderTable([]string{"#", "STAGE", "HOURS", "CUMULATIVE"}, rows))
	}

	b.WriteString("\n" + Header("Units") + "\n")
	if len(w.Units) == 0 {
		b.WriteString(Dim("No units yet. Add some with: pagepace unit add-root") + "\n")
	} else {
		b.WriteString(RenderTree(UnitTreeItems(w)))
		b.WriteString(Dim(fmt.Sprintf("%d/%d leaves finished", sum.CompletedLeaves, sum.LeafCount)) + "\n")
	}

	return RenderBox("Work", b.String())
}
