package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/spf13/pflag"
)

// dateValue is a pflag.Value for optional YYYY-MM-DD flags. The target
// stays nil until the flag is set.
type dateValue struct {
	target **time.Time
}

var _ pflag.Value = dateValue{}

func newDateValue(target **time.Time) dateValue {
	return dateValue{target: target}
}

func (v dateValue) String() string {
	if v.target == nil || *v.target == nil {
		return ""
	}
	return (*v.target).Format(domain.DateLayout)
}

func (v dateValue) Set(s string) error {
	d, err := parseDateArg(s)
	if err != nil {
		return err
	}
	*v.target = &d
	return nil
}

func (dateValue) Type() string { return "date" }

// addDateFlag registers a YYYY-MM-DD flag on fs.
func addDateFlag(fs *pflag.FlagSet, target **time.Time, name, usage string) {
	fs.Var(newDateValue(target), name, usage+" (YYYY-MM-DD)")
}

// parseDateArg accepts YYYY-MM-DD plus the words "today" and "tomorrow".
func parseDateArg(s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "today":
		return domain.DateOf(time.Now()), nil
	case "tomorrow":
		return domain.DateOf(time.Now()).AddDate(0, 0, 1), nil
	}
	d, err := domain.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return d, nil
}

// referenceTime returns the --now flag value or the app clock.
func referenceTime(app *App, flagNow *time.Time) time.Time {
	if flagNow != nil {
		return *flagNow
	}
	return app.now()
}
