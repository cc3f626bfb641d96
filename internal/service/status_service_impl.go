package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pagepace/internal/app"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/progress"
	"github.com/alexanderramin/pagepace/internal/repository"
	"github.com/alexanderramin/pagepace/internal/scheduler"
)

type statusService struct {
	works    repository.WorkRepo
	profiles ProfileService
	holidays HolidayService
	observer UseCaseObserver
}

func NewStatusService(
	works repository.WorkRepo,
	profiles ProfileService,
	holidays HolidayService,
	observers ...UseCaseObserver,
) StatusService {
	return &statusService{
		works:    works,
		profiles: profiles,
		holidays: holidays,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *statusService) GetStatus(ctx context.Context, req app.StatusRequest) (resp *app.StatusResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"scope": len(req.WorkScope), "include_done": req.IncludeDone}
	defer func() { observe(ctx, s.observer, "get-status", startedAt, fields, err) }()

	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}
	today := domain.DateOf(now)

	works, err := s.works.List(ctx, req.IncludeDone)
	if err != nil {
		return nil, fmt.Errorf("loading works: %w", err)
	}
	works, err = filterWorksByScope(works, req.WorkScope)
	if err != nil {
		return nil, err
	}
	fields["work_count"] = len(works)

	avail, err := s.availability(ctx, today, pacingHorizon(works, today))
	if err != nil {
		return nil, err
	}

	candidates := make([]scheduler.UrgencyCandidate, 0, len(works))
	views := make(map[string]app.WorkStatusView, len(works))
	for _, w := range works {
		view, cand := buildWorkView(w, today, avail)
		views[w.ID] = view
		candidates = append(candidates, cand)
	}

	var mostUrgent *app.WorkStatusView
	if top, ok := scheduler.PickMostUrgent(candidates); ok {
		v := views[top.Work.ID]
		mostUrgent = &v
		fields["most_urgent"] = top.Work.ID
	}

	scheduler.SortByUrgency(candidates)
	ordered := make([]app.WorkStatusView, 0, len(candidates))
	for _, c := range candidates {
		ordered = append(ordered, views[c.Work.ID])
	}

	return &app.StatusResponse{
		Summary:    buildStatusSummary(ordered, now),
		Works:      ordered,
		MostUrgent: mostUrgent,
		Warnings:   statusWarnings(ordered),
	}, nil
}

func (s *statusService) GetWorkPace(ctx context.Context, req app.PaceRequest) (*app.PaceResponse, error) {
	now := time.Now().UTC()
	if req.Now != nil {
		now = *req.Now
	}
	today := domain.DateOf(now)

	w, err := s.works.GetByID(ctx, req.WorkID)
	if err != nil {
		return nil, err
	}
	if w.Deadline == nil {
		return nil, &app.StatusError{
			Code:    app.StatusErrNoDeadline,
			Message: fmt.Sprintf("work %q has no deadline", w.Title),
		}
	}

	horizon := domain.DateOf(*w.Deadline)
	if horizon.Before(today) {
		horizon = today
	}
	avail, err := s.availability(ctx, today, horizon)
	if err != nil {
		return nil, err
	}

	view, _ := buildWorkView(w, today, avail)
	if view.Pace == nil {
		// Done works are not paced in listings; a direct request still is.
		pace := computeWorkPace(w, progress.Summarize(w, w.StageWorkloads), today, avail)
		view.Pace = &pace
	}

	return &app.PaceResponse{
		Work:    w,
		Summary: view,
		Today:   toDayAvailability(scheduler.HoursOn(today, avail)),
	}, nil
}

func (s *statusService) DailyAvailability(ctx context.Context, from, to time.Time) ([]app.DayAvailability, error) {
	from, to = domain.DateOf(from), domain.DateOf(to)
	if to.Before(from) {
		return nil, fmt.Errorf("range end %s is before start %s", to.Format(domain.DateLayout), from.Format(domain.DateLayout))
	}
	avail, err := s.availability(ctx, from, to)
	if err != nil {
		return nil, err
	}
	days := scheduler.DailyHours(from, to, avail)
	out := make([]app.DayAvailability, 0, len(days))
	for _, d := range days {
		out = append(out, toDayAvailability(d))
	}
	return out, nil
}

// availability loads the profile plus the holidays and overrides that fall
// in [from, to]. Holidays and overrides are read once per call.
func (s *statusService) availability(ctx context.Context, from, to time.Time) (scheduler.Availability, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return scheduler.Availability{}, err
	}
	avail := scheduler.Availability{Profile: *profile}
	if to.Before(from) {
		return avail, nil
	}

	avail.Holidays, err = s.holidays.ForRange(ctx, from, to)
	if err != nil {
		return scheduler.Availability{}, fmt.Errorf("loading holidays: %w", err)
	}
	avail.Overrides, err = s.profiles.OverridesBetween(ctx, from, to)
	if err != nil {
		return scheduler.Availability{}, fmt.Errorf("loading overrides: %w", err)
	}
	return avail, nil
}

func toDayAvailability(d scheduler.DayHours) app.DayAvailability {
	return app.DayAvailability{
		Date:        d.Date,
		Hours:       d.Hours,
		Source:      d.Source,
		HolidayName: d.HolidayName,
	}
}
