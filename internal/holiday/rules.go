package holiday

import (
	"math"
	"time"
)

// rule places one statutory holiday for the years in [from, to]. A zero
// bound is open, so the earliest row of each holiday also covers years
// before the 1948 holiday law as a best-effort fixed date.
type rule struct {
	name string
	from int
	to   int
	date func(year int) time.Time
}

func (r rule) appliesTo(year int) bool {
	return (r.from == 0 || year >= r.from) && (r.to == 0 || year <= r.to)
}

// statutoryRules is the holiday table. Renames and moves are separate rows
// keyed by year range.
var statutoryRules = []rule{
	{name: "New Year's Day", date: fixed(time.January, 1)},
	{name: "Coming of Age Day", to: 1999, date: fixed(time.January, 15)},
	{name: "Coming of Age Day", from: 2000, date: nthWeekday(time.January, time.Monday, 2)},
	{name: "National Foundation Day", from: 1967, date: fixed(time.February, 11)},
	{name: "Emperor's Birthday", from: 2020, date: fixed(time.February, 23)},
	{name: "Vernal Equinox Day", date: vernalEquinox},
	{name: "Emperor's Birthday", to: 1988, date: fixed(time.April, 29)},
	{name: "Greenery Day", from: 1989, to: 2006, date: fixed(time.April, 29)},
	{name: "Showa Day", from: 2007, date: fixed(time.April, 29)},
	{name: "Constitution Memorial Day", date: fixed(time.May, 3)},
	{name: "Greenery Day", from: 2007, date: fixed(time.May, 4)},
	{name: "Children's Day", date: fixed(time.May, 5)},
	{name: "Marine Day", from: 1996, to: 2002, date: fixed(time.July, 20)},
	{name: "Marine Day", from: 2003, date: nthWeekday(time.July, time.Monday, 3)},
	{name: "Mountain Day", from: 2016, date: fixed(time.August, 11)},
	{name: "Respect for the Aged Day", from: 1966, to: 2002, date: fixed(time.September, 15)},
	{name: "Respect for the Aged Day", from: 2003, date: nthWeekday(time.September, time.Monday, 3)},
	{name: "Autumnal Equinox Day", date: autumnalEquinox},
	{name: "Health and Sports Day", from: 1966, to: 1999, date: fixed(time.October, 10)},
	{name: "Health and Sports Day", from: 2000, to: 2019, date: nthWeekday(time.October, time.Monday, 2)},
	{name: "Sports Day", from: 2020, date: nthWeekday(time.October, time.Monday, 2)},
	{name: "Culture Day", date: fixed(time.November, 3)},
	{name: "Labor Thanksgiving Day", date: fixed(time.November, 23)},
	{name: "Emperor's Birthday", from: 1989, to: 2018, date: fixed(time.December, 23)},
}

type monthDay struct {
	month time.Month
	day   int
}

// relocations moves named holidays to fixed dates in specific years. The
// Tokyo Olympics special measures law moved three holidays in 2020 and
// again in 2021.
var relocations = map[int]map[string]monthDay{
	2020: {
		"Marine Day":   {time.July, 23},
		"Sports Day":   {time.July, 24},
		"Mountain Day": {time.August, 10},
	},
	2021: {
		"Marine Day":   {time.July, 22},
		"Sports Day":   {time.July, 23},
		"Mountain Day": {time.August, 8},
	},
}

// oneOffHolidays are single-day holidays declared by special laws.
var oneOffHolidays = map[int][]struct {
	name string
	at   monthDay
}{
	1959: {{"Crown Prince Akihito's Wedding", monthDay{time.April, 10}}},
	1989: {{"Funeral of Emperor Showa", monthDay{time.February, 24}}},
	1990: {{"Enthronement Ceremony", monthDay{time.November, 12}}},
	1993: {{"Crown Prince Naruhito's Wedding", monthDay{time.June, 9}}},
	2019: {
		{"Emperor's Accession Day", monthDay{time.May, 1}},
		{"Enthronement Ceremony", monthDay{time.October, 22}},
	},
}

var (
	// substitutesFrom is the first date whose Sunday holiday earns a
	// substitute (1973 amendment).
	substitutesFrom = time.Date(1973, time.April, 12, 0, 0, 0, 0, time.UTC)
	// citizensHolidayFrom is the first year of the sandwiched-day rule
	// (1985 amendment).
	citizensHolidayFrom = 1986
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func fixed(month time.Month, day int) func(int) time.Time {
	return func(year int) time.Time {
		return date(year, month, day)
	}
}

// nthWeekday returns the n-th occurrence of wd in month: the first
// occurrence plus (n-1) weeks.
func nthWeekday(month time.Month, wd time.Weekday, n int) func(int) time.Time {
	return func(year int) time.Time {
		first := date(year, month, 1)
		offset := (int(wd) - int(first.Weekday()) + 7) % 7
		return first.AddDate(0, 0, offset+(n-1)*7)
	}
}

func vernalEquinox(year int) time.Time {
	switch {
	case year >= 1900 && year <= 1999:
		return date(year, time.March, equinoxDay(21.4471, 0.242377, year-1900))
	case year >= 2000 && year <= 2099:
		return date(year, time.March, equinoxDay(20.646, 0.242377, year-2000))
	}
	return date(year, time.March, 20)
}

func autumnalEquinox(year int) time.Time {
	switch {
	case year >= 1900 && year <= 1999:
		return date(year, time.September, equinoxDay(23.8896, 0.242032, year-1900))
	case year >= 2000 && year <= 2099:
		return date(year, time.September, equinoxDay(23.042, 0.242032, year-2000))
	}
	return date(year, time.September, 23)
}

// equinoxDay is the linear approximation floor(base + drift*n - floor(n/4))
// where n is the offset from the start of the coefficient's century.
func equinoxDay(base, drift float64, n int) int {
	return int(math.Floor(base + drift*float64(n) - math.Floor(float64(n)/4)))
}
