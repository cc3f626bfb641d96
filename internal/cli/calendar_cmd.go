package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pagepace/internal/cli/formatter"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/spf13/cobra"
)

const (
	defaultCalendarDays = 14
	chartHeight         = 10
)

func newCalendarCmd(app *App) *cobra.Command {
	var (
		days      int
		from, now *time.Time
		noChart   bool
	)

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show resolved workable hours for upcoming days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			start := domain.DateOf(referenceTime(app, now))
			if from != nil {
				start = *from
			}
			end := start.AddDate(0, 0, days-1)

			avail, err := app.Status.DailyAvailability(context.Background(), start, end)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatAvailability(avail))
			if !noChart {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.RenderAvailabilityChart(avail, days*4, chartHeight))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", defaultCalendarDays, "Number of days to show")
	addDateFlag(cmd.Flags(), &from, "from", "First day, defaults to today")
	addDateFlag(cmd.Flags(), &now, "now", "Reference date")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "Skip the bar chart")

	return cmd
}
