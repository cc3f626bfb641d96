package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/pagepace/internal/cli/formatter"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/spf13/cobra"
)

func newOverrideCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "override",
		Aliases: []string{"ov"},
		Short:   "Replace the hours of specific dates",
	}

	cmd.AddCommand(
		newOverrideListCmd(app),
		newOverrideSetCmd(app),
		newOverrideRemoveCmd(app),
	)

	return cmd
}

func newOverrideListCmd(app *App) *cobra.Command {
	var from, to *time.Time

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List date overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var (
				overrides []domain.CustomDateOverride
				err       error
			)
			if from == nil && to == nil {
				overrides, err = app.Profiles.ListOverrides(ctx)
			} else {
				lo, hi := domain.DateOf(app.now()), domain.DateOf(app.now()).AddDate(1, 0, 0)
				if from != nil {
					lo = *from
				}
				if to != nil {
					hi = *to
				}
				overrides, err = app.Profiles.OverridesBetween(ctx, lo, hi)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatOverrides(overrides))
			return nil
		},
	}

	addDateFlag(cmd.Flags(), &from, "from", "First date")
	addDateFlag(cmd.Flags(), &to, "to", "Last date")
	return cmd
}

func newOverrideSetCmd(app *App) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:     "set DATE HOURS",
		Short:   "Set the hours available on DATE",
		Example: "  pagepace override set 2026-05-03 0 --note \"convention\"",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(args[0])
			if err != nil {
				return err
			}
			hours, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid hours %q", args[1])
			}
			o := domain.CustomDateOverride{Date: date, Hours: hours, Note: note}
			if err := app.Profiles.SetOverride(context.Background(), o); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n",
				date.Format(domain.DateLayout), formatter.FormatHours(hours))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Reason for the override")
	return cmd
}

func newOverrideRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove DATE",
		Aliases: []string{"rm"},
		Short:   "Remove the override on DATE",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDateArg(args[0])
			if err != nil {
				return err
			}
			if err := app.Profiles.RemoveOverride(context.Background(), date); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed override on %s\n", date.Format(domain.DateLayout))
			return nil
		},
	}
}
