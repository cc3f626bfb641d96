package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pagepace/internal/cli/formatter"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/spf13/cobra"
)

func newWorkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "work",
		Aliases: []string{"w"},
		Short:   "Manage works",
	}

	cmd.AddCommand(
		newWorkAddCmd(app),
		newWorkListCmd(app),
		newWorkInspectCmd(app),
		newWorkUpdateCmd(app),
		newWorkStatusCmd(app),
		newWorkRemoveCmd(app),
	)

	return cmd
}

func newWorkAddCmd(app *App) *cobra.Command {
	var (
		deadline, start *time.Time
		units           int
		unitHours       float64
		totalHours      float64
		status          string
	)

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Create a work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := &domain.Work{
				Title:      strings.TrimSpace(args[0]),
				Status:     domain.WorkStatus(status),
				Deadline:   deadline,
				TotalUnits: units,
			}
			if start != nil {
				w.StartDate = *start
			}
			if cmd.Flags().Changed("unit-hours") {
				w.UnitEstimatedHours = unitHours
			}
			if cmd.Flags().Changed("total-hours") {
				w.TotalEstimatedHours = totalHours
				w.EstimateOverridden = true
			}
			if units < 0 || unitHours < 0 || totalHours < 0 {
				return fmt.Errorf("units and hours must be >= 0")
			}

			if err := app.Works.Create(context.Background(), w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created work %s %s\n", formatter.Bold(w.Title), formatter.TruncID(w.ID))
			return nil
		},
	}

	addDateFlag(cmd.Flags(), &deadline, "deadline", "Deadline")
	addDateFlag(cmd.Flags(), &start, "start", "Start date, defaults to today")
	cmd.Flags().IntVar(&units, "units", 0, "Planned number of units")
	cmd.Flags().Float64Var(&unitHours, "unit-hours", 0, "Estimated hours per unit (default from config)")
	cmd.Flags().Float64Var(&totalHours, "total-hours", 0, "Set the total estimate by hand instead of units x unit-hours")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (not_started|in_progress|done|on_hold)")

	return cmd
}

func newWorkListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List works by deadline",
		RunE: func(cmd *cobra.Command, args []string) error {
			works, err := app.Works.List(context.Background(), all)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatWorkList(works, domain.DateOf(app.now())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include done works")
	return cmd
}

func newWorkInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect WORK",
		Short: "Show a work with its stages and unit tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := resolveWork(context.Background(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWorkDetail(w, domain.DateOf(app.now())))
			return nil
		},
	}
}

func newWorkUpdateCmd(app *App) *cobra.Command {
	var (
		title           string
		deadline, start *time.Time
		clearDeadline   bool
		units           int
		unitHours       float64
		totalHours      float64
		derive          bool
	)

	cmd := &cobra.Command{
		Use:   "update WORK",
		Short: "Change a work's title, dates or estimate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWork(ctx, app, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				w.Title = strings.TrimSpace(title)
			}
			if deadline != nil && clearDeadline {
				return fmt.Errorf("--deadline and --clear-deadline are mutually exclusive")
			}
			if deadline != nil {
				w.Deadline = deadline
			}
			if clearDeadline {
				w.Deadline = nil
			}
			if start != nil {
				w.StartDate = *start
			}
			if flags.Changed("units") {
				if units < 0 {
					return fmt.Errorf("units must be >= 0")
				}
				w.TotalUnits = units
			}
			if flags.Changed("unit-hours") {
				if unitHours < 0 {
					return fmt.Errorf("unit-hours must be >= 0")
				}
				w.UnitEstimatedHours = unitHours
			}
			if flags.Changed("total-hours") && derive {
				return fmt.Errorf("--total-hours and --derive are mutually exclusive")
			}
			if flags.Changed("total-hours") {
				if totalHours < 0 {
					return fmt.Errorf("total-hours must be >= 0")
				}
				w.TotalEstimatedHours = totalHours
				w.EstimateOverridden = true
			}
			if derive {
				w.EstimateOverridden = false
			}

			if err := app.Works.Update(ctx, w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated work %s (estimate %s)\n",
				formatter.Bold(w.Title), formatter.FormatHoursFixed(w.TotalEstimatedHours))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	addDateFlag(cmd.Flags(), &deadline, "deadline", "New deadline")
	cmd.Flags().BoolVar(&clearDeadline, "clear-deadline", false, "Remove the deadline")
	addDateFlag(cmd.Flags(), &start, "start", "New start date")
	cmd.Flags().IntVar(&units, "units", 0, "Planned number of units")
	cmd.Flags().Float64Var(&unitHours, "unit-hours", 0, "Estimated hours per unit")
	cmd.Flags().Float64Var(&totalHours, "total-hours", 0, "Set the total estimate by hand")
	cmd.Flags().BoolVar(&derive, "derive", false, "Derive the total from units x unit-hours again")

	return cmd
}

func newWorkStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "status WORK STATUS",
		Short:     "Set a work's status",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"not_started", "in_progress", "done", "on_hold"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWork(ctx, app, args[0])
			if err != nil {
				return err
			}
			status := domain.WorkStatus(strings.ToLower(args[1]))
			if err := app.Works.SetStatus(ctx, w.ID, status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", formatter.Bold(w.Title), formatter.StatusPill(status))
			return nil
		},
	}
}

func newWorkRemoveCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "remove WORK",
		Aliases: []string{"rm"},
		Short:   "Delete a work and its unit tree",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWork(ctx, app, args[0])
			if err != nil {
				return err
			}
			if !force {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %q without --force in a non-interactive session", w.Title)
				}
				confirmed := false
				if err := confirmForm(fmt.Sprintf("Delete %q?", w.Title), &confirmed).Run(); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			if err := app.Works.Delete(ctx, w.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted work %s\n", formatter.Bold(w.Title))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}
