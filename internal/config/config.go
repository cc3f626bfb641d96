// Package config loads pagepace settings from PAGEPACE_* environment
// variables and an optional YAML defaults file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
	"gopkg.in/yaml.v3"
)

// HolidaySource selects where authoritative holiday lists come from.
type HolidaySource string

const (
	SourceCalculated HolidaySource = "calculated"
	SourceCabinet    HolidaySource = "cabinet"
	SourceGoogle     HolidaySource = "gcal"
)

// Config holds runtime settings.
type Config struct {
	DBPath         string
	ConfigFile     string
	HolidaySource  HolidaySource
	CabinetURL     string
	GCalAPIKey     string
	GCalCalendarID string
	FetchTimeoutMs int
	LogUseCases    bool
	Defaults       Defaults
}

// Defaults seeds new works and the first availability profile.
type Defaults struct {
	Stages             []domain.StageWorkload `yaml:"stages"`
	Granularities      []domain.Granularity   `yaml:"granularities"`
	UnitEstimatedHours float64                `yaml:"unit_estimated_hours"`
	Profile            ProfileDefaults        `yaml:"profile"`
}

// ProfileDefaults is the YAML shape of an availability profile.
type ProfileDefaults struct {
	Monday    float64 `yaml:"monday"`
	Tuesday   float64 `yaml:"tuesday"`
	Wednesday float64 `yaml:"wednesday"`
	Thursday  float64 `yaml:"thursday"`
	Friday    float64 `yaml:"friday"`
	Saturday  float64 `yaml:"saturday"`
	Sunday    float64 `yaml:"sunday"`
	Holiday   float64 `yaml:"holiday"`
}

func (p ProfileDefaults) Domain() domain.AvailabilityProfile {
	return domain.AvailabilityProfile{
		Monday: p.Monday, Tuesday: p.Tuesday, Wednesday: p.Wednesday, Thursday: p.Thursday,
		Friday: p.Friday, Saturday: p.Saturday, Sunday: p.Sunday, Holiday: p.Holiday,
	}
}

// FetchTimeout returns the holiday source timeout.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

// DefaultConfig returns a Config rooted at dir (normally ~/.pagepace).
// Holidays are calculated locally by default.
func DefaultConfig(dir string) Config {
	return Config{
		DBPath:         filepath.Join(dir, "pagepace.db"),
		ConfigFile:     filepath.Join(dir, "config.yaml"),
		HolidaySource:  SourceCalculated,
		FetchTimeoutMs: 5000,
		Defaults:       DefaultDefaults(),
	}
}

// DefaultDefaults is a manga page pipeline: storyboard, pencils, inks,
// finishing, with volume/chapter/page granularities.
func DefaultDefaults() Defaults {
	h := func(v float64) *float64 { return &v }
	return Defaults{
		Stages: []domain.StageWorkload{
			{ID: "storyboard", Label: "Storyboard", BaseHours: h(0.5)},
			{ID: "pencils", Label: "Pencils", BaseHours: h(2)},
			{ID: "inks", Label: "Inks", BaseHours: h(1.5)},
			{ID: "finish", Label: "Finishing", BaseHours: h(1)},
		},
		Granularities: []domain.Granularity{
			{ID: "volume", Label: "Volume"},
			{ID: "chapter", Label: "Chapter"},
			{ID: "page", Label: "Page"},
		},
		UnitEstimatedHours: 5,
		Profile: ProfileDefaults{
			Monday: 4, Tuesday: 4, Wednesday: 4, Thursday: 4, Friday: 4,
			Saturday: 6, Sunday: 0, Holiday: 2,
		},
	}
}

// Load reads environment variables over DefaultConfig and then merges the
// YAML defaults file if it exists. A missing file is not an error.
func Load() (Config, error) {
	dir := os.Getenv("PAGEPACE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		dir = filepath.Join(home, ".pagepace")
	}
	cfg := DefaultConfig(dir)

	if v := os.Getenv("PAGEPACE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PAGEPACE_CONFIG"); v != "" {
		cfg.ConfigFile = v
	}
	if v := os.Getenv("PAGEPACE_HOLIDAY_SOURCE"); v != "" {
		src, err := ParseHolidaySource(v)
		if err != nil {
			return Config{}, err
		}
		cfg.HolidaySource = src
	}
	if v := os.Getenv("PAGEPACE_CABINET_URL"); v != "" {
		cfg.CabinetURL = v
	}
	if v := os.Getenv("PAGEPACE_GCAL_API_KEY"); v != "" {
		cfg.GCalAPIKey = v
	}
	if v := os.Getenv("PAGEPACE_GCAL_CALENDAR_ID"); v != "" {
		cfg.GCalCalendarID = v
	}
	if v := os.Getenv("PAGEPACE_FETCH_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeoutMs = n
		}
	}
	if v := os.Getenv("PAGEPACE_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}

	defaults, err := LoadDefaultsFile(cfg.ConfigFile, cfg.Defaults)
	if err != nil {
		return Config{}, err
	}
	cfg.Defaults = defaults
	return cfg, nil
}

// ParseHolidaySource validates a holiday source name.
func ParseHolidaySource(s string) (HolidaySource, error) {
	switch src := HolidaySource(strings.ToLower(strings.TrimSpace(s))); src {
	case SourceCalculated, SourceCabinet, SourceGoogle:
		return src, nil
	}
	return "", fmt.Errorf("invalid holiday source %q (want calculated|cabinet|gcal)", s)
}

// LoadDefaultsFile overlays the YAML file at path on base. Keys absent from
// the file keep base's values.
func LoadDefaultsFile(path string, base Defaults) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return Defaults{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseDefaultsYAML(data, base)
}

// ParseDefaultsYAML decodes a defaults document over base.
func ParseDefaultsYAML(data []byte, base Defaults) (Defaults, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return base, nil
	}
	out := base
	if err := yaml.Unmarshal(data, &out); err != nil {
		return Defaults{}, fmt.Errorf("config: decode defaults: %w", err)
	}
	if err := out.Validate(); err != nil {
		return Defaults{}, err
	}
	return out, nil
}

// Validate rejects stage tables with duplicate or empty IDs and negative
// hours anywhere.
func (d Defaults) Validate() error {
	seen := make(map[string]bool, len(d.Stages))
	for i, st := range d.Stages {
		if strings.TrimSpace(st.ID) == "" {
			return fmt.Errorf("config: stage %d has no id", i)
		}
		if seen[st.ID] {
			return fmt.Errorf("config: duplicate stage id %q", st.ID)
		}
		seen[st.ID] = true
		if st.BaseHours != nil && *st.BaseHours < 0 {
			return fmt.Errorf("config: stage %q has negative base_hours", st.ID)
		}
	}
	if d.UnitEstimatedHours < 0 {
		return fmt.Errorf("config: negative unit_estimated_hours")
	}
	p := d.Profile.Domain()
	for _, h := range []float64{p.Monday, p.Tuesday, p.Wednesday, p.Thursday, p.Friday, p.Saturday, p.Sunday, p.Holiday} {
		if h < 0 {
			return fmt.Errorf("config: profile hours must be non-negative")
		}
	}
	return nil
}
