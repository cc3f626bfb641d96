package domain

type WorkStatus string

const (
	WorkNotStarted WorkStatus = "not_started"
	WorkInProgress WorkStatus = "in_progress"
	WorkDone       WorkStatus = "done"
	WorkOnHold     WorkStatus = "on_hold"
)

// ValidWorkStatuses is the canonical set of accepted work status strings.
var ValidWorkStatuses = map[string]bool{
	"not_started": true, "in_progress": true, "done": true, "on_hold": true,
}

type PaceStatus string

const (
	PaceAhead    PaceStatus = "ahead"
	PaceOnTrack  PaceStatus = "on_track"
	PaceBehind   PaceStatus = "behind"
	PaceCritical PaceStatus = "critical"
)

// DaySource records which availability rule decided a day's hours.
type DaySource string

const (
	DayWeekday  DaySource = "weekday"
	DayHoliday  DaySource = "holiday"
	DayOverride DaySource = "override"
)

type HolidayKind string

const (
	HolidayStatutory  HolidayKind = "statutory"
	HolidaySubstitute HolidayKind = "substitute"
	HolidayCitizens   HolidayKind = "citizens"
	HolidayOfficial   HolidayKind = "official"
)
