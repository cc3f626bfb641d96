package app

import (
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
)

// PaceRequest asks for the pace of a single work.
type PaceRequest struct {
	WorkID string
	Now    *time.Time
}

type PaceResponse struct {
	Work    *domain.Work
	Summary WorkStatusView
	// Today is the resolved availability for the reference day.
	Today DayAvailability
}

// DayAvailability is one day of the availability calendar.
type DayAvailability struct {
	Date        time.Time
	Hours       float64
	Source      domain.DaySource
	HolidayName string
}

// UnitSpec describes a unit to create. A branch gets Children leaves at
// Stage; a leaf is created at Stage.
type UnitSpec struct {
	Leaf     bool
	Stage    int
	Children int
}
