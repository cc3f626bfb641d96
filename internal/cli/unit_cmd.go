package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/pagepace/internal/app"
	"github.com/alexanderramin/pagepace/internal/cli/formatter"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/spf13/cobra"
)

func newUnitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unit",
		Aliases: []string{"u"},
		Short:   "Edit a work's unit tree",
	}

	cmd.AddCommand(
		newUnitAddRootCmd(app),
		newUnitAddChildCmd(app),
		newUnitSetChildrenCmd(app),
		newUnitRemoveCmd(app),
		newUnitStageCmd(app),
		newUnitPrimaryCmd(app),
	)

	return cmd
}

// unitSpecFlags registers --leaf, --children and --stage. The stage flag
// accepts an index, stage ID or label and is resolved against the work.
func unitSpecFlags(cmd *cobra.Command, spec *app.UnitSpec, stage *string) {
	cmd.Flags().BoolVar(&spec.Leaf, "leaf", false, "Create a leaf instead of a branch")
	cmd.Flags().IntVar(&spec.Children, "children", 0, "Number of leaf children for a branch")
	cmd.Flags().StringVar(stage, "stage", "0", "Stage for the new leaves (index, ID or label)")
}

func resolveUnitSpec(w *domain.Work, spec app.UnitSpec, stageArg string) (app.UnitSpec, error) {
	if spec.Leaf && spec.Children > 0 {
		return spec, fmt.Errorf("--leaf and --children are mutually exclusive")
	}
	if spec.Children < 0 {
		return spec, fmt.Errorf("children must be >= 0")
	}
	stage, err := resolveStage(w, stageArg)
	if err != nil {
		return spec, err
	}
	spec.Stage = stage
	return spec, nil
}

// printTree writes the work's unit tree after an edit.
func printTree(cmd *cobra.Command, w *domain.Work, msg string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, msg)
	if tree := formatter.RenderTree(formatter.UnitTreeItems(w)); tree != "" {
		fmt.Fprint(out, tree)
	}
}

func newUnitAddRootCmd(a *App) *cobra.Command {
	var (
		spec     app.UnitSpec
		stageArg string
	)

	cmd := &cobra.Command{
		Use:   "add-root WORK",
		Short: "Append a unit at the top level",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWork(ctx, a, args[0])
			if err != nil {
				return err
			}
			resolved, err := resolveUnitSpec(w, spec, stageArg)
			if err != nil {
				return err
			}
			w, err = a.Units.AddRoot(ctx, w.ID, resolved)
			if err != nil {
				return err
			}
			printTree(cmd, w, fmt.Sprintf("Added %s to %s", w.GranularityLabel(0), formatter.Bold(w.Title)))
			return nil
		},
	}

	unitSpecFlags(cmd, &spec, &stageArg)
	return cmd
}

func newUnitAddChildCmd(a *App) *cobra.Command {
	var (
		spec     app.UnitSpec
		stageArg string
	)

	cmd := &cobra.Command{
		Use:   "add-child WORK PARENT",
		Short: "Append a unit under a branch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWork(ctx, a, args[0])
			if err != nil {
				return err
			}
			resolved, err := resolveUnitSpec(w, spec, stageArg)
			if err != nil {
				return err
			}
			w, err = a.Units.AddChild(ctx, w.ID, args[1], resolved)
			if err != nil {
				return err
			}
			printTree(cmd, w, fmt.Sprintf("Added unit under %s", args[1]))
			return nil
		},
	}

	unitSpecFlags(cmd, &spec, &stageArg)
	return cmd
}

func newUnitSetChildrenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-children WORK PARENT COUNT",
		Short: "Grow or shrink a branch to COUNT children",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid count %q", args[2])
			}
			ctx := context.Background()
			w, err := resolveWork(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err = app.Units.SetChildrenCount(ctx, w.ID, args[1], count)
			if err != nil {
				return err
			}
			printTree(cmd, w, fmt.Sprintf("%s now has %d children", args[1], count))
			return nil
		},
	}
}

func newUnitRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove WORK UNIT",
		Aliases: []string{"rm"},
		Short:   "Remove a unit and its descendants",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWork(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err = app.Units.Remove(ctx, w.ID, args[1])
			if err != nil {
				return err
			}
			printTree(cmd, w, fmt.Sprintf("Removed %s", args[1]))
			return nil
		},
	}
}

func newUnitStageCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stage WORK UNIT STAGE",
		Short: "Move a leaf to a production stage",
		Long: "Move a leaf to a production stage. STAGE is a 0-based index, a stage ID\n" +
			"or a stage label. A leaf at the last stage counts as finished.",
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWork(ctx, app, args[0])
			if err != nil {
				return err
			}
			stage, err := resolveStage(w, args[2])
			if err != nil {
				return err
			}
			w, err = app.Units.SetStage(ctx, w.ID, args[1], stage)
			if err != nil {
				return err
			}
			printTree(cmd, w, fmt.Sprintf("%s moved to stage %s", args[1], args[2]))
			return nil
		},
	}
}

func newUnitPrimaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "primary WORK UNIT",
		Short: "Mark the unit you are working on",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			w, err := resolveWork(ctx, app, args[0])
			if err != nil {
				return err
			}
			w, err = app.Units.SetPrimary(ctx, w.ID, args[1])
			if err != nil {
				return err
			}
			printTree(cmd, w, fmt.Sprintf("Primary unit set to %s", formatter.TruncID(w.PrimaryUnitID)))
			return nil
		},
	}
}
