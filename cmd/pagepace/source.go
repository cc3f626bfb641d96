package main

import (
	"context"
	"time"

	"github.com/alexanderramin/pagepace/internal/config"
	"github.com/alexanderramin/pagepace/internal/holiday"
	"github.com/alexanderramin/pagepace/internal/service"
)

// dialGoogleSource connects to the Google public holiday calendar.
var dialGoogleSource = func(ctx context.Context, cfg config.Config) (holiday.Source, error) {
	srv, err := holiday.DialGoogleCalendar(ctx, cfg.GCalAPIKey)
	if err != nil {
		return nil, err
	}
	return holiday.NewGoogleCalendarSource(srv, cfg.GCalCalendarID), nil
}

// holidaySource builds the configured authoritative holiday source. A source
// that cannot be set up degrades to the calculated calendar.
func holidaySource(ctx context.Context, cfg config.Config, obs service.UseCaseObserver) holiday.Source {
	switch cfg.HolidaySource {
	case config.SourceCabinet:
		return holiday.NewCabinetOfficeSource(cfg.CabinetURL, nil, cfg.FetchTimeout())
	case config.SourceGoogle:
		startedAt := time.Now().UTC()
		src, err := dialGoogleSource(ctx, cfg)
		if err != nil {
			obs.ObserveUseCase(ctx, service.UseCaseEvent{
				Name:      "holiday-source-dial",
				StartedAt: startedAt,
				Duration:  time.Since(startedAt),
				Success:   true,
				Degraded:  true,
				Err:       err,
				Fields:    map[string]any{"source": string(cfg.HolidaySource)},
			})
			return holiday.CalculatedSource{}
		}
		return src
	}
	return holiday.CalculatedSource{}
}
