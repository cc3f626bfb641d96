package domain

// StageWorkload is one ordered production stage. BaseHours is the effort to
// move a single leaf unit through the stage; nil means no estimate is
// configured.
type StageWorkload struct {
	ID        string   `json:"id" yaml:"id"`
	Label     string   `json:"label" yaml:"label"`
	BaseHours *float64 `json:"baseHours" yaml:"base_hours"`
}

// Hours returns BaseHours, treating nil, negative and non-finite values as
// zero.
func (s StageWorkload) Hours() float64 {
	return SanitizeHours(HoursOrZero(s.BaseHours))
}

// Granularity names one level of the unit tree (volume, chapter, page).
// Granularities are ordered from the root level down.
type Granularity struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}
