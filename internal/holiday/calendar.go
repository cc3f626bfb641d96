// Package holiday computes the Japanese national holiday calendar and
// fetches the official list from external sources.
package holiday

import (
	"sort"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
)

const substituteName = "Substitute Holiday"
const citizensName = "Citizens' Holiday"

// HolidaysForYear returns the national holidays of year, including
// substitute and citizens' holidays, sorted by date. It is pure and total:
// years outside the supported range degrade to best-effort fixed dates.
func HolidaysForYear(year int) []domain.Holiday {
	base := statutoryHolidays(year)

	taken := make(map[int]bool, len(base)+4)
	for _, h := range base {
		taken[domain.DayKey(h.Date)] = true
	}

	out := make([]domain.Holiday, 0, len(base)+4)
	out = append(out, base...)
	out = append(out, substituteHolidays(base, taken)...)
	out = append(out, citizensHolidays(year, base, taken)...)

	sortByDate(out)
	return out
}

// IsHoliday reports whether day is a calculated national holiday.
func IsHoliday(day time.Time) (domain.Holiday, bool) {
	key := domain.DayKey(day)
	for _, h := range HolidaysForYear(day.Year()) {
		if domain.DayKey(h.Date) == key {
			return h, true
		}
	}
	return domain.Holiday{}, false
}

func statutoryHolidays(year int) []domain.Holiday {
	moved := relocations[year]
	seen := make(map[int]bool)
	var out []domain.Holiday

	add := func(name string, d time.Time) {
		key := domain.DayKey(d)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, domain.Holiday{Name: name, Date: d, Kind: domain.HolidayStatutory})
	}

	for _, r := range statutoryRules {
		if !r.appliesTo(year) {
			continue
		}
		if md, ok := moved[r.name]; ok {
			add(r.name, date(year, md.month, md.day))
			continue
		}
		add(r.name, r.date(year))
	}
	for _, o := range oneOffHolidays[year] {
		add(o.name, date(year, o.at.month, o.at.day))
	}

	sortByDate(out)
	return out
}

// substituteHolidays assigns each Sunday holiday the nearest following day
// that is neither a holiday nor an already-assigned substitute. taken is
// updated with every assigned date.
func substituteHolidays(base []domain.Holiday, taken map[int]bool) []domain.Holiday {
	var out []domain.Holiday
	for _, h := range base {
		if h.Date.Weekday() != time.Sunday || h.Date.Before(substitutesFrom) {
			continue
		}
		d := h.Date.AddDate(0, 0, 1)
		for taken[domain.DayKey(d)] {
			d = d.AddDate(0, 0, 1)
		}
		taken[domain.DayKey(d)] = true
		out = append(out, domain.Holiday{Name: substituteName, Date: d, Kind: domain.HolidaySubstitute})
	}
	return out
}

// citizensHolidays returns free non-Sunday days whose previous and next
// days are both statutory holidays.
func citizensHolidays(year int, base []domain.Holiday, taken map[int]bool) []domain.Holiday {
	if year < citizensHolidayFrom {
		return nil
	}
	var out []domain.Holiday
	for i := 1; i < len(base); i++ {
		prev, next := base[i-1].Date, base[i].Date
		if next.Sub(prev) != 48*time.Hour {
			continue
		}
		mid := prev.AddDate(0, 0, 1)
		if mid.Weekday() == time.Sunday || taken[domain.DayKey(mid)] {
			continue
		}
		taken[domain.DayKey(mid)] = true
		out = append(out, domain.Holiday{Name: citizensName, Date: mid, Kind: domain.HolidayCitizens})
	}
	return out
}

func sortByDate(hs []domain.Holiday) {
	sort.SliceStable(hs, func(i, j int) bool {
		return hs[i].Date.Before(hs[j].Date)
	})
}
