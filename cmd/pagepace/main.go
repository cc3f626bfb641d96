package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/pagepace/internal/cli"
	"github.com/alexanderramin/pagepace/internal/config"
	"github.com/alexanderramin/pagepace/internal/db"
	"github.com/alexanderramin/pagepace/internal/repository"
	"github.com/alexanderramin/pagepace/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	workRepo := repository.NewSQLiteWorkRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)
	overrideRepo := repository.NewSQLiteOverrideRepo(database)
	holidayRepo := repository.NewSQLiteHolidayRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	var sourceObserver service.UseCaseObserver = service.NoopUseCaseObserver{}
	if len(observers) > 0 {
		sourceObserver = observers[0]
	}
	source := holidaySource(context.Background(), cfg, sourceObserver)

	profileSvc := service.NewProfileService(profileRepo, overrideRepo, cfg.Defaults.Profile.Domain(), observers...)
	holidaySvc := service.NewHolidayService(holidayRepo, uow, source, observers...)

	app := &cli.App{
		Works:    service.NewWorkService(workRepo, cfg.Defaults, observers...),
		Units:    service.NewUnitService(uow, observers...),
		Profiles: profileSvc,
		Holidays: holidaySvc,
		Status:   service.NewStatusService(workRepo, profileSvc, holidaySvc, observers...),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
