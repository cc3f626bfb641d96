package holiday

import (
	"context"

	"github.com/alexanderramin/pagepace/internal/domain"
)

// Source supplies an authoritative holiday list for a year. Implementations
// perform network I/O; callers fall back to HolidaysForYear on error.
type Source interface {
	Name() string
	Fetch(ctx context.Context, year int) ([]domain.Holiday, error)
}

// CalculatedSource serves the locally computed calendar. It never fails.
type CalculatedSource struct{}

func (CalculatedSource) Name() string { return "calculated" }

func (CalculatedSource) Fetch(_ context.Context, year int) ([]domain.Holiday, error) {
	return HolidaysForYear(year), nil
}

// filterYear keeps holidays in year and sorts them by date.
func filterYear(hs []domain.Holiday, year int) []domain.Holiday {
	var out []domain.Holiday
	for _, h := range hs {
		if h.Date.Year() == year {
			out = append(out, h)
		}
	}
	sortByDate(out)
	return out
}
