package domain

import "time"

// AvailabilityProfile is the user's weekly work-hour plan. Holiday applies
// to any national holiday regardless of its weekday.
type AvailabilityProfile struct {
	Monday    float64
	Tuesday   float64
	Wednesday float64
	Thursday  float64
	Friday    float64
	Saturday  float64
	Sunday    float64
	Holiday   float64
}

// WeekdayHours returns the configured hours for wd, sanitized.
func (p AvailabilityProfile) WeekdayHours(wd time.Weekday) float64 {
	var h float64
	switch wd {
	case time.Monday:
		h = p.Monday
	case time.Tuesday:
		h = p.Tuesday
	case time.Wednesday:
		h = p.Wednesday
	case time.Thursday:
		h = p.Thursday
	case time.Friday:
		h = p.Friday
	case time.Saturday:
		h = p.Saturday
	case time.Sunday:
		h = p.Sunday
	}
	return SanitizeHours(h)
}

// HolidayHours returns the sanitized hours available on a holiday.
func (p AvailabilityProfile) HolidayHours() float64 {
	return SanitizeHours(p.Holiday)
}

// WeeklyHours sums the seven weekday allocations.
func (p AvailabilityProfile) WeeklyHours() float64 {
	var total float64
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		total += p.WeekdayHours(wd)
	}
	return total
}

// CustomDateOverride replaces the profile's hours for one exact date. It
// takes precedence over both weekday and holiday hours.
type CustomDateOverride struct {
	Date  time.Time
	Hours float64
	Note  string
}
