package domain

import "time"

// Holiday is a single non-working day on the national calendar. Within a
// year a holiday is identified by its date.
type Holiday struct {
	Name string
	Date time.Time
	Kind HolidayKind
}
