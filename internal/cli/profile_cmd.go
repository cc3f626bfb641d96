package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/pagepace/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change weekly availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProfile(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the availability profile",
			RunE: func(cmd *cobra.Command, args []string) error {
				return showProfile(cmd, app)
			},
		},
		newProfileSetCmd(app),
		newProfileEditCmd(app),
	)

	return cmd
}

func showProfile(cmd *cobra.Command, app *App) error {
	p, err := app.Profiles.Get(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
	return nil
}

func newProfileSetCmd(app *App) *cobra.Command {
	var (
		days               [7]float64
		holiday            float64
		weekdays, weekends float64
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set hours for individual days",
		Example: "  pagepace profile set --weekdays 6 --weekends 2\n" +
			"  pagepace profile set --wednesday 0 --holiday 3",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Profiles.Get(ctx)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			hours := profileHours(p)
			changed := false
			set := func(name string, v float64, targets ...*float64) error {
				if !flags.Changed(name) {
					return nil
				}
				if v < 0 || v > 24 {
					return fmt.Errorf("--%s must be between 0 and 24", name)
				}
				for _, t := range targets {
					*t = v
				}
				changed = true
				return nil
			}

			// Group flags first so per-day flags can refine them.
			if err := set("weekdays", weekdays, hours[0], hours[1], hours[2], hours[3], hours[4]); err != nil {
				return err
			}
			if err := set("weekends", weekends, hours[5], hours[6]); err != nil {
				return err
			}
			for i, name := range profileDayNames {
				if err := set(strings.ToLower(name), days[i], hours[i]); err != nil {
					return err
				}
			}
			if err := set("holiday", holiday, &p.Holiday); err != nil {
				return err
			}
			if !changed {
				return fmt.Errorf("no hours given; see --help")
			}

			if err := app.Profiles.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}

	for i, name := range profileDayNames {
		cmd.Flags().Float64Var(&days[i], strings.ToLower(name), 0, name+" hours")
	}
	cmd.Flags().Float64Var(&holiday, "holiday", 0, "Hours on national holidays")
	cmd.Flags().Float64Var(&weekdays, "weekdays", 0, "Hours for Monday to Friday")
	cmd.Flags().Float64Var(&weekends, "weekends", 0, "Hours for Saturday and Sunday")

	return cmd
}

func newProfileEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the profile in an interactive form",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("profile edit needs a terminal; use 'profile set' instead")
			}
			ctx := context.Background()
			p, err := app.Profiles.Get(ctx)
			if err != nil {
				return err
			}
			fields := newProfileFields(p)
			if err := profileForm(fields).Run(); err != nil {
				return err
			}
			fields.apply(p)
			if err := app.Profiles.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProfile(p))
			return nil
		},
	}
}
