package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pagepace/internal/domain"
)

// resolveWork finds a work by full ID or unique ID prefix.
func resolveWork(ctx context.Context, app *App, ref string) (*domain.Work, error) {
	return app.Works.Resolve(ctx, ref)
}

// resolveStage maps a stage argument to an index. It accepts a 0-based
// index, a stage ID or a stage label (case-insensitive).
func resolveStage(w *domain.Work, arg string) (int, error) {
	arg = strings.TrimSpace(arg)
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("stage index must be >= 0, got %d", n)
		}
		return n, nil
	}
	for i, st := range w.StageWorkloads {
		if strings.EqualFold(st.ID, arg) || strings.EqualFold(st.Label, arg) {
			return i, nil
		}
	}
	names := make([]string, len(w.StageWorkloads))
	for i, st := range w.StageWorkloads {
		names[i] = domain.CoalesceStr(st.ID, st.Label)
	}
	return 0, fmt.Errorf("unknown stage %q (stages: %s)", arg, strings.Join(names, ", "))
}
