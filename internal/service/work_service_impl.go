package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pagepace/internal/config"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/repository"
	"github.com/google/uuid"
)

type workService struct {
	works    repository.WorkRepo
	defaults config.Defaults
	observer UseCaseObserver
}

func NewWorkService(works repository.WorkRepo, defaults config.Defaults, observers ...UseCaseObserver) WorkService {
	return &workService{
		works:    works,
		defaults: defaults,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *workService) Create(ctx context.Context, w *domain.Work) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"title": w.Title}
	defer func() { observe(ctx, s.observer, "create-work", startedAt, fields, err) }()

	if strings.TrimSpace(w.Title) == "" {
		return fmt.Errorf("work title is required")
	}
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	fields["work_id"] = w.ID
	if w.Status == "" {
		w.Status = domain.WorkNotStarted
	}
	if !domain.ValidWorkStatuses[string(w.Status)] {
		return fmt.Errorf("invalid work status %q", w.Status)
	}

	now := time.Now().UTC().Truncate(time.Second)
	if w.StartDate.IsZero() {
		w.StartDate = domain.DateOf(now)
	}
	if w.Deadline != nil && domain.DateOf(*w.Deadline).Before(domain.DateOf(w.StartDate)) {
		return fmt.Errorf("deadline %s is before start date %s",
			w.Deadline.Format(domain.DateLayout), w.StartDate.Format(domain.DateLayout))
	}
	s.applyDefaults(w)
	w.DeriveTotalEstimate()
	w.CreatedAt = now
	w.UpdatedAt = now

	return s.works.Create(ctx, w)
}

// applyDefaults fills unset stage, granularity and unit-estimate fields
// from the configured defaults. Slices are copied so works never share
// backing arrays with the config.
func (s *workService) applyDefaults(w *domain.Work) {
	if len(w.StageWorkloads) == 0 {
		w.StageWorkloads = append([]domain.StageWorkload(nil), s.defaults.Stages...)
	}
	if len(w.Granularities) == 0 {
		w.Granularities = append([]domain.Granularity(nil), s.defaults.Granularities...)
	}
	if w.UnitEstimatedHours == 0 && !w.EstimateOverridden {
		w.UnitEstimatedHours = s.defaults.UnitEstimatedHours
	}
	if w.Units == nil {
		w.Units = []domain.Unit{}
	}
}

func (s *workService) GetByID(ctx context.Context, id string) (*domain.Work, error) {
	return s.works.GetByID(ctx, id)
}

func (s *workService) Resolve(ctx context.Context, ref string) (*domain.Work, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("work reference is empty")
	}
	w, err := s.works.GetByID(ctx, ref)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	all, err := s.works.List(ctx, true)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Work
	for _, candidate := range all {
		if strings.HasPrefix(candidate.ID, ref) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("work %q: %w", ref, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	}
	return nil, fmt.Errorf("work prefix %q is ambiguous (%d matches)", ref, len(matches))
}

func (s *workService) List(ctx context.Context, includeDone bool) ([]*domain.Work, error) {
	return s.works.List(ctx, includeDone)
}

func (s *workService) Update(ctx context.Context, w *domain.Work) error {
	if strings.TrimSpace(w.Title) == "" {
		return fmt.Errorf("work title is required")
	}
	if w.Deadline != nil && domain.DateOf(*w.Deadline).Before(domain.DateOf(w.StartDate)) {
		return fmt.Errorf("deadline %s is before start date %s",
			w.Deadline.Format(domain.DateLayout), w.StartDate.Format(domain.DateLayout))
	}
	w.DeriveTotalEstimate()
	w.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	return s.works.Update(ctx, w)
}

func (s *workService) SetStatus(ctx context.Context, id string, status domain.WorkStatus) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"work_id": id, "status": string(status)}
	defer func() { observe(ctx, s.observer, "set-work-status", startedAt, fields, err) }()

	w, err := s.works.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err = w.SetStatus(status, time.Now().UTC().Truncate(time.Second)); err != nil {
		return err
	}
	return s.works.Update(ctx, w)
}

func (s *workService) Delete(ctx context.Context, id string) error {
	return s.works.Delete(ctx, id)
}
