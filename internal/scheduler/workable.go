package scheduler

import (
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/alexanderramin/pagepace/internal/holiday"
)

// Availability bundles everything needed to resolve a day's work hours.
// Holidays may be a partial list; dates missing from it are still checked
// against the calculated calendar.
type Availability struct {
	Profile   domain.AvailabilityProfile
	Holidays  []domain.Holiday
	Overrides []domain.CustomDateOverride
}

// DayHours is the resolved availability for one calendar day.
type DayHours struct {
	Date        time.Time
	Hours       float64
	Source      domain.DaySource
	HolidayName string
}

type WorkableResult struct {
	Total        float64
	WorkableDays int
}

// WorkableHours sums available hours over [start, end] inclusive and counts
// the days with nonzero hours. An inverted range yields zero.
func WorkableHours(start, end time.Time, a Availability) WorkableResult {
	var res WorkableResult
	for _, d := range DailyHours(start, end, a) {
		res.Total += d.Hours
		if d.Hours > 0 {
			res.WorkableDays++
		}
	}
	return res
}

// HoursOn resolves a single day.
func HoursOn(day time.Time, a Availability) DayHours {
	return newDayResolver(a).resolve(domain.DateOf(day))
}

// DailyHours resolves every day in [start, end] inclusive, in order.
func DailyHours(start, end time.Time, a Availability) []DayHours {
	from, to := domain.DateOf(start), domain.DateOf(end)
	if to.Before(from) {
		return nil
	}

	r := newDayResolver(a)
	out := make([]DayHours, 0, domain.DaysBetween(from, to)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, r.resolve(d))
	}
	return out
}

// dayResolver applies override > holiday > weekday resolution. Calculated
// calendars are computed lazily once per year.
type dayResolver struct {
	profile    domain.AvailabilityProfile
	overrides  map[int]float64
	supplied   map[int]string
	calculated map[int]map[int]string
}

func newDayResolver(a Availability) *dayResolver {
	r := &dayResolver{
		profile:    a.Profile,
		overrides:  make(map[int]float64, len(a.Overrides)),
		supplied:   make(map[int]string, len(a.Holidays)),
		calculated: make(map[int]map[int]string),
	}
	for _, o := range a.Overrides {
		r.overrides[domain.DayKey(o.Date)] = o.Hours
	}
	for _, h := range a.Holidays {
		r.supplied[domain.DayKey(h.Date)] = h.Name
	}
	return r
}

func (r *dayResolver) resolve(day time.Time) DayHours {
	key := domain.DayKey(day)

	if h, ok := r.overrides[key]; ok {
		return DayHours{Date: day, Hours: domain.SanitizeHours(h), Source: domain.DayOverride}
	}
	if name, ok := r.holidayName(day, key); ok {
		return DayHours{
			Date:        day,
			Hours:       r.profile.HolidayHours(),
			Source:      domain.DayHoliday,
			HolidayName: name,
		}
	}
	return DayHours{Date: day, Hours: r.profile.WeekdayHours(day.Weekday()), Source: domain.DayWeekday}
}

func (r *dayResolver) holidayName(day time.Time, key int) (string, bool) {
	if name, ok := r.supplied[key]; ok {
		return name, true
	}
	year := day.Year()
	cal, ok := r.calculated[year]
	if !ok {
		hs := holiday.HolidaysForYear(year)
		cal = make(map[int]string, len(hs))
		for _, h := range hs {
			cal[domain.DayKey(h.Date)] = h.Name
		}
		r.calculated[year] = cal
	}
	name, ok := cal[key]
	return name, ok
}
