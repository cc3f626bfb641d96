package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pagepace/internal/app"
	"github.com/alexanderramin/pagepace/internal/cli/formatter"
	"github.com/alexanderramin/pagepace/internal/export"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var (
		works  []string
		now    *time.Time
		format string
		out    string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show deadline pace for all works",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if out != "" && f == export.FormatTable {
				return fmt.Errorf("--out needs --format csv or json")
			}

			req := newStatusRequest(app, now)
			req.WorkScope = works
			req.IncludeDone = all

			resp, err := app.Status.GetStatus(context.Background(), req)
			if err != nil {
				return err
			}

			switch {
			case out != "":
				if err := export.ToFile(out, f, resp); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d works to %s\n", len(resp.Works), out)
			case f == export.FormatTable:
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(resp))
			default:
				return export.Write(cmd.OutOrStdout(), f, resp)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&works, "work", nil, "Limit to these work IDs or ID prefixes")
	addDateFlag(cmd.Flags(), &now, "now", "Reference date")
	cmd.Flags().StringVar(&format, "format", "table", "Output format (table|csv|json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the report to a file")
	cmd.Flags().BoolVar(&all, "all", false, "Include done works")

	return cmd
}

func newStatusRequest(a *App, now *time.Time) app.StatusRequest {
	req := app.NewStatusRequest()
	t := referenceTime(a, now)
	req.Now = &t
	return req
}

func newPaceCmd(a *App) *cobra.Command {
	var now *time.Time

	cmd := &cobra.Command{
		Use:   "pace WORK",
		Short: "Show the detailed pace of one work",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWork(ctx, a, args[0])
			if err != nil {
				return err
			}
			t := referenceTime(a, now)
			resp, err := a.Status.GetWorkPace(ctx, app.PaceRequest{WorkID: w.ID, Now: &t})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPace(resp))
			return nil
		},
	}

	addDateFlag(cmd.Flags(), &now, "now", "Reference date")
	return cmd
}
