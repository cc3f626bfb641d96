package cli

import (
	"time"

	"github.com/alexanderramin/pagepace/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Works    service.WorkService
	Units    service.UnitService
	Profiles service.ProfileService
	Holidays service.HolidayService
	Status   service.StatusService

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// dashboard refuse to start otherwise.
	IsInteractive func() bool
	// Now is the clock used when a command has no --now flag.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "pagepace" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pagepace",
		Short:         "Deadline pacing for serialized manga and comic work",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newWorkCmd(app),
		newUnitCmd(app),
		newProfileCmd(app),
		newOverrideCmd(app),
		newHolidaysCmd(app),
		newStatusCmd(app),
		newPaceCmd(app),
		newCalendarCmd(app),
		newDashboardCmd(app),
	)

	return root
}
