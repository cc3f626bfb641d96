package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pagepace/internal/app"
	"github.com/alexanderramin/pagepace/internal/db"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/repository"
	"github.com/google/uuid"
)

type unitService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewUnitService(uow db.UnitOfWork, observers ...UseCaseObserver) UnitService {
	return &unitService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// mutate loads the work, applies fn and saves it in one transaction.
func (s *unitService) mutate(ctx context.Context, name, workID string, fields map[string]any, fn func(w *domain.Work, now time.Time) error) (updated *domain.Work, err error) {
	startedAt := time.Now().UTC()
	fields["work_id"] = workID
	defer func() { observe(ctx, s.observer, name, startedAt, fields, err) }()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txWorks := repository.NewSQLiteWorkRepo(tx)

		w, err := txWorks.GetByID(ctx, workID)
		if err != nil {
			return err
		}
		now := time.Now().UTC().Truncate(time.Second)
		if err := fn(w, now); err != nil {
			return err
		}
		if err := txWorks.Update(ctx, w); err != nil {
			return err
		}
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *unitService) AddRoot(ctx context.Context, workID string, spec app.UnitSpec) (*domain.Work, error) {
	return s.mutate(ctx, "add-root-unit", workID, map[string]any{"leaf": spec.Leaf},
		func(w *domain.Work, now time.Time) error {
			if err := checkStage(w, spec.Stage); err != nil {
				return err
			}
			w.AddRootUnit(buildUnit(spec), now)
			return nil
		})
}

func (s *unitService) AddChild(ctx context.Context, workID, parentRef string, spec app.UnitSpec) (*domain.Work, error) {
	return s.mutate(ctx, "add-child-unit", workID, map[string]any{"parent": parentRef, "leaf": spec.Leaf},
		func(w *domain.Work, now time.Time) error {
			if err := checkStage(w, spec.Stage); err != nil {
				return err
			}
			parentID, err := resolveUnitRef(w, parentRef)
			if err != nil {
				return err
			}
			return w.AddChildUnit(parentID, buildUnit(spec), now)
		})
}

func (s *unitService) SetChildrenCount(ctx context.Context, workID, parentRef string, count int) (*domain.Work, error) {
	return s.mutate(ctx, "set-children-count", workID, map[string]any{"parent": parentRef, "count": count},
		func(w *domain.Work, now time.Time) error {
			if count < 0 {
				return fmt.Errorf("children count must be >= 0, got %d", count)
			}
			parentID, err := resolveUnitRef(w, parentRef)
			if err != nil {
				return err
			}
			return w.SetChildrenCount(parentID, count, func() domain.Unit {
				return domain.NewLeafUnit(uuid.New().String(), 0)
			}, now)
		})
}

func (s *unitService) Remove(ctx context.Context, workID, unitRef string) (*domain.Work, error) {
	return s.mutate(ctx, "remove-unit", workID, map[string]any{"unit": unitRef},
		func(w *domain.Work, now time.Time) error {
			id, err := resolveUnitRef(w, unitRef)
			if err != nil {
				return err
			}
			return w.RemoveUnit(id, now)
		})
}

func (s *unitService) SetStage(ctx context.Context, workID, unitRef string, stage int) (*domain.Work, error) {
	return s.mutate(ctx, "set-unit-stage", workID, map[string]any{"unit": unitRef, "stage": stage},
		func(w *domain.Work, now time.Time) error {
			if err := checkStage(w, stage); err != nil {
				return err
			}
			id, err := resolveUnitRef(w, unitRef)
			if err != nil {
				return err
			}
			return w.SetUnitStage(id, stage, now)
		})
}

func (s *unitService) SetPrimary(ctx context.Context, workID, unitRef string) (*domain.Work, error) {
	return s.mutate(ctx, "set-primary-unit", workID, map[string]any{"unit": unitRef},
		func(w *domain.Work, now time.Time) error {
			id, err := resolveUnitRef(w, unitRef)
			if err != nil {
				return err
			}
			return w.SetPrimaryUnit(id, now)
		})
}

func checkStage(w *domain.Work, stage int) error {
	if stage < 0 {
		return fmt.Errorf("stage must be >= 0, got %d", stage)
	}
	if n := len(w.StageWorkloads); n > 0 && stage >= n {
		return fmt.Errorf("stage %d out of range (work has %d stages)", stage, n)
	}
	return nil
}

// buildUnit creates a fresh unit with new IDs. A branch spec gets
// spec.Children leaves, all at spec.Stage.
func buildUnit(spec app.UnitSpec) domain.Unit {
	if spec.Leaf {
		return domain.NewLeafUnit(uuid.New().String(), spec.Stage)
	}
	children := make([]domain.Unit, 0, spec.Children)
	for i := 0; i < spec.Children; i++ {
		children = append(children, domain.NewLeafUnit(uuid.New().String(), spec.Stage))
	}
	return domain.NewBranchUnit(uuid.New().String(), children...)
}

// resolveUnitRef maps a full unit ID or unique ID prefix to a unit ID.
func resolveUnitRef(w *domain.Work, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("unit reference is empty")
	}
	if _, ok := w.FindUnit(ref); ok {
		return ref, nil
	}
	var matches []string
	for _, u := range flattenUnits(w.Units) {
		if strings.HasPrefix(u.ID, ref) {
			matches = append(matches, u.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unit %q: %w", ref, domain.ErrUnitNotFound)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("unit prefix %q is ambiguous (%d matches)", ref, len(matches))
}
