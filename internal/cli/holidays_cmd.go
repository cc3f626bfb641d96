package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/alexanderramin/pagepace/internal/cli/formatter"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/holiday"
	"github.com/spf13/cobra"
)

func newHolidaysCmd(app *App) *cobra.Command {
	var calculated, refresh bool

	cmd := &cobra.Command{
		Use:   "holidays [YEAR]",
		Short: "List national holidays for a year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := app.now().Year()
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil || y < 1 {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = y
			}
			if calculated && refresh {
				return fmt.Errorf("--calculated and --refresh are mutually exclusive")
			}

			var (
				hs     []domain.Holiday
				source = app.Holidays.SourceName()
				err    error
			)
			switch {
			case calculated:
				hs, source = holiday.HolidaysForYear(year), holiday.CalculatedSource{}.Name()
			case refresh:
				stop := func() {}
				if app.interactive() {
					stop = formatter.StartSpinner(os.Stderr, fmt.Sprintf("Fetching %d holidays from %s", year, source))
				}
				hs, err = app.Holidays.Refresh(context.Background(), year)
				stop()
			default:
				hs, err = app.Holidays.ForYear(context.Background(), year)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHolidays(year, source, hs))
			return nil
		},
	}

	cmd.Flags().BoolVar(&calculated, "calculated", false, "Use the built-in calendar rules only")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Fetch the year again from the configured source")
	return cmd
}
