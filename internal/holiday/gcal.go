package holiday

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// DefaultGoogleCalendarID is Google's public Japanese holiday calendar.
const DefaultGoogleCalendarID = "ja.japanese#holiday@group.v.calendar.google.com"

// GoogleCalendarSource lists all-day events of a public holiday calendar.
type GoogleCalendarSource struct {
	srv        *calendar.Service
	calendarID string
}

// NewGoogleCalendarSource wraps an existing Calendar service.
func NewGoogleCalendarSource(srv *calendar.Service, calendarID string) *GoogleCalendarSource {
	if calendarID == "" {
		calendarID = DefaultGoogleCalendarID
	}
	return &GoogleCalendarSource{srv: srv, calendarID: calendarID}
}

// DialGoogleCalendar builds a Calendar service. With an API key the public
// calendar is read anonymously; otherwise application default credentials
// are used.
func DialGoogleCalendar(ctx context.Context, apiKey string, opts ...option.ClientOption) (*calendar.Service, error) {
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	} else {
		client, err := google.DefaultClient(ctx, calendar.CalendarReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("loading default google credentials: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(client))
	}
	srv, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}
	return srv, nil
}

func (s *GoogleCalendarSource) Name() string { return "gcal" }

func (s *GoogleCalendarSource) Fetch(ctx context.Context, year int) ([]domain.Holiday, error) {
	timeMin := date(year, time.January, 1)
	timeMax := date(year+1, time.January, 1)

	var out []domain.Holiday
	call := s.srv.Events.List(s.calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime")
	err := call.Pages(ctx, func(events *calendar.Events) error {
		for _, ev := range events.Items {
			if ev.Start == nil || ev.Start.Date == "" || !isDayOff(ev) {
				continue
			}
			d, err := domain.ParseDate(ev.Start.Date)
			if err != nil {
				return fmt.Errorf("parsing event %q date %q: %w", ev.Summary, ev.Start.Date, err)
			}
			out = append(out, domain.Holiday{Name: ev.Summary, Date: d, Kind: domain.HolidayOfficial})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing holiday calendar events: %w", err)
	}
	return filterYear(out, year), nil
}

// isDayOff keeps national holidays. The public holiday calendars mark them
// "祝日" (ja) or "Public holiday" (en) in the description and list
// observances such as 節分 or 七夕 alongside them. Events with no description
// are kept so calendars that do not annotate entries still work.
func isDayOff(ev *calendar.Event) bool {
	desc := strings.TrimSpace(ev.Description)
	switch {
	case desc == "":
		return true
	case strings.HasPrefix(desc, "祝日"):
		return true
	case strings.HasPrefix(strings.ToLower(desc), "public holiday"):
		return true
	}
	return false
}
