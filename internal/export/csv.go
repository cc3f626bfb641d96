package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/pagepace/internal/app"
)

var csvHeader = []string{
	"Work ID", "Title", "Status", "Deadline", "Pace", "Progress (%)",
	"Leaves", "Completed Leaves", "Estimated (h)", "Remaining (h)",
	"Workable (h)", "Days Left", "Workable Days", "Daily Required (h)",
	"Today Required (h)", "Pressure", "Notes",
}

// WriteStatusCSV writes one row per work, in report order.
func WriteStatusCSV(out io.Writer, resp *app.StatusResponse) error {
	w := csv.NewWriter(out)

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, v := range resp.Works {
		deadline := ""
		if v.Deadline != nil {
			deadline = *v.Deadline
		}
		row := []string{
			v.WorkID,
			v.Title,
			string(v.Status),
			deadline,
			string(v.PaceStatus()),
			strconv.Itoa(v.PercentComplete),
			strconv.Itoa(v.LeafCount),
			strconv.Itoa(v.CompletedLeaves),
			formatHours(v.EstimatedHours),
			formatHours(v.RemainingHours),
		}
		if p := v.Pace; p != nil {
			row = append(row,
				formatHours(p.RemainingWorkableHours),
				strconv.Itoa(p.DaysUntilDeadline),
				strconv.Itoa(p.WorkableDaysUntilDeadline),
				formatHours(p.DailyRequiredHours),
				formatHours(p.TodayRequiredHours),
				strconv.FormatFloat(v.Pressure, 'f', 3, 64),
			)
		} else {
			row = append(row, "", "", "", "", "", "")
		}
		row = append(row, strings.Join(v.Notes, "; "))
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', 2, 64)
}
