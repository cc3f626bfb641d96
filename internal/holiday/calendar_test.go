package holiday

import (
	"testing"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func byDate(hs []domain.Holiday) map[string]domain.Holiday {
	out := make(map[string]domain.Holiday, len(hs))
	for _, h := range hs {
		out[h.Date.Format(domain.DateLayout)] = h
	}
	return out
}

func TestHolidaysForYear_2026(t *testing.T) {
	hs := HolidaysForYear(2026)
	want := []string{
		"2026-01-01", "2026-01-12", "2026-02-11", "2026-02-23", "2026-03-20",
		"2026-04-29", "2026-05-03", "2026-05-04", "2026-05-05", "2026-05-06",
		"2026-07-20", "2026-08-11", "2026-09-21", "2026-09-22", "2026-09-23",
		"2026-10-12", "2026-11-03", "2026-11-23",
	}
	got := make([]string, len(hs))
	for i, h := range hs {
		got[i] = h.Date.Format(domain.DateLayout)
	}
	assert.Equal(t, want, got)

	m := byDate(hs)
	assert.Equal(t, domain.HolidaySubstitute, m["2026-05-06"].Kind)
	assert.Equal(t, domain.HolidayCitizens, m["2026-09-22"].Kind)
	assert.Equal(t, "Coming of Age Day", m["2026-01-12"].Name)
}

func TestHolidaysForYear_NthMondayRulesRespectAdoptionYear(t *testing.T) {
	m1999 := byDate(HolidaysForYear(1999))
	assert.Equal(t, "Coming of Age Day", m1999["1999-01-15"].Name)
	assert.Equal(t, "Health and Sports Day", m1999["1999-10-10"].Name)

	m2000 := byDate(HolidaysForYear(2000))
	assert.Equal(t, "Coming of Age Day", m2000["2000-01-10"].Name)
	_, stillFixed := m2000["2000-01-15"]
	assert.False(t, stillFixed)

	m2002 := byDate(HolidaysForYear(2002))
	assert.Contains(t, m2002, "2002-07-20")
	assert.Contains(t, m2002, "2002-09-15")
	m2003 := byDate(HolidaysForYear(2003))
	assert.Contains(t, m2003, "2003-07-21")
	assert.Contains(t, m2003, "2003-09-15", "third Monday of September 2003")
}

func TestHolidaysForYear_HistoricalNames(t *testing.T) {
	assert.Equal(t, "Emperor's Birthday", byDate(HolidaysForYear(1988))["1988-04-29"].Name)
	assert.Equal(t, "Greenery Day", byDate(HolidaysForYear(1990))["1990-04-29"].Name)
	assert.Equal(t, "Showa Day", byDate(HolidaysForYear(2007))["2007-04-29"].Name)
	assert.Equal(t, "Emperor's Birthday", byDate(HolidaysForYear(2018))["2018-12-23"].Name)

	m2019 := byDate(HolidaysForYear(2019))
	assert.NotContains(t, m2019, "2019-12-23")
	assert.NotContains(t, m2019, "2019-02-23")
	assert.Equal(t, "Emperor's Birthday", byDate(HolidaysForYear(2020))["2020-02-23"].Name)
}

func TestHolidaysForYear_OlympicRelocations(t *testing.T) {
	m2020 := byDate(HolidaysForYear(2020))
	assert.Equal(t, "Marine Day", m2020["2020-07-23"].Name)
	assert.Equal(t, "Sports Day", m2020["2020-07-24"].Name)
	assert.Equal(t, "Mountain Day", m2020["2020-08-10"].Name)
	assert.NotContains(t, m2020, "2020-08-11")
	assert.NotContains(t, m2020, "2020-10-12")

	m2021 := byDate(HolidaysForYear(2021))
	assert.Equal(t, "Marine Day", m2021["2021-07-22"].Name)
	assert.Equal(t, "Sports Day", m2021["2021-07-23"].Name)
	assert.Equal(t, "Mountain Day", m2021["2021-08-08"].Name)
	assert.Equal(t, domain.HolidaySubstitute, m2021["2021-08-09"].Kind)
}

func TestHolidaysForYear_2019Accession(t *testing.T) {
	m := byDate(HolidaysForYear(2019))
	assert.Equal(t, "Emperor's Accession Day", m["2019-05-01"].Name)
	assert.Equal(t, domain.HolidayCitizens, m["2019-04-30"].Kind)
	assert.Equal(t, domain.HolidayCitizens, m["2019-05-02"].Kind)
	assert.Equal(t, domain.HolidaySubstitute, m["2019-05-06"].Kind)
	assert.Equal(t, "Enthronement Ceremony", m["2019-10-22"].Name)
}

func TestHolidaysForYear_SubstituteSkipsTakenDays(t *testing.T) {
	// Greenery Day 2008 fell on a Sunday followed by Children's Day.
	m := byDate(HolidaysForYear(2008))
	assert.Equal(t, domain.HolidayStatutory, m["2008-05-05"].Kind)
	assert.Equal(t, domain.HolidaySubstitute, m["2008-05-06"].Kind)
}

func TestHolidaysForYear_SubstituteRuleStartsIn1973(t *testing.T) {
	m := byDate(HolidaysForYear(1973))
	assert.Equal(t, domain.HolidaySubstitute, m["1973-04-30"].Kind)

	for _, h := range HolidaysForYear(1972) {
		assert.NotEqual(t, domain.HolidaySubstitute, h.Kind)
	}
}

func TestEquinoxApproximation(t *testing.T) {
	cases := []struct {
		year             int
		vernal, autumnal time.Time
	}{
		{1979, d(1979, time.March, 21), d(1979, time.September, 24)},
		{1999, d(1999, time.March, 21), d(1999, time.September, 23)},
		{2020, d(2020, time.March, 20), d(2020, time.September, 22)},
		{2024, d(2024, time.March, 20), d(2024, time.September, 22)},
		{2025, d(2025, time.March, 20), d(2025, time.September, 23)},
		{2150, d(2150, time.March, 20), d(2150, time.September, 23)},
		{1850, d(1850, time.March, 20), d(1850, time.September, 23)},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.vernal, vernalEquinox(tc.year), "vernal %d", tc.year)
		assert.Equal(t, tc.autumnal, autumnalEquinox(tc.year), "autumnal %d", tc.year)
	}
}

func TestNthWeekday(t *testing.T) {
	assert.Equal(t, d(2026, time.January, 12), nthWeekday(time.January, time.Monday, 2)(2026))
	// Month starting on the target weekday.
	assert.Equal(t, d(2024, time.January, 8), nthWeekday(time.January, time.Monday, 2)(2024))
	assert.Equal(t, d(2025, time.September, 15), nthWeekday(time.September, time.Monday, 3)(2025))
}

func TestHolidaysForYear_SortedUniqueDeterministic(t *testing.T) {
	for year := 1900; year <= 2150; year++ {
		hs := HolidaysForYear(year)
		require.NotEmpty(t, hs, "year %d", year)
		assert.Equal(t, hs, HolidaysForYear(year), "year %d not deterministic", year)

		seen := make(map[int]bool)
		for i, h := range hs {
			assert.Equal(t, year, h.Date.Year(), "year %d: %s outside year", year, h.Name)
			key := domain.DayKey(h.Date)
			assert.False(t, seen[key], "year %d: duplicate date %s", year, h.Date.Format(domain.DateLayout))
			seen[key] = true
			if i > 0 {
				assert.True(t, hs[i-1].Date.Before(h.Date), "year %d: not sorted at %d", year, i)
			}
		}
	}
}

func TestHolidaysForYear_SubstitutesNeverFallOnSundayOrHoliday(t *testing.T) {
	for year := 1973; year <= 2099; year++ {
		for _, h := range HolidaysForYear(year) {
			if h.Kind != domain.HolidaySubstitute {
				continue
			}
			assert.NotEqual(t, time.Sunday, h.Date.Weekday(), "%s", h.Date.Format(domain.DateLayout))
		}
	}
}

func TestIsHoliday(t *testing.T) {
	h, ok := IsHoliday(time.Date(2026, time.November, 3, 15, 0, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, "Culture Day", h.Name)

	_, ok = IsHoliday(d(2026, time.November, 4))
	assert.False(t, ok)
}
