package formatter

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/alexanderramin/pagepace/internal/app"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatProfile renders the weekly availability plan.
func FormatProfile(p *domain.AvailabilityProfile) string {
	days := []struct {
		name  string
		hours float64
	}{
		{"Monday", p.Monday}, {"Tuesday", p.Tuesday}, {"Wednesday", p.Wednesday},
		{"Thursday", p.Thursday}, {"Friday", p.Friday}, {"Saturday", p.Saturday},
		{"Sunday", p.Sunday}, {"Holiday", p.Holiday},
	}
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		rows = append(rows, []string{d.name, FormatHours(domain.SanitizeHours(d.hours))})
	}
	out := RenderTable([]string{"DAY", "HOURS"}, rows)
	out += "\n" + Dim(fmt.Sprintf("Weekly total: %s", FormatHours(p.WeeklyHours())))
	return RenderBox("Availability", out)
}

func FormatOverrides(overrides []domain.CustomDateOverride) string {
	if len(overrides) == 0 {
		return Dim("No date overrides.") + "\n"
	}
	rows := make([][]string, 0, len(overrides))
	for _, o := range overrides {
		rows = append(rows, []string{
			o.Date.Format(domain.DateLayout),
			o.Date.Format("Mon"),
			FormatHours(o.Hours),
			o.Note,
		})
	}
	return RenderTable([]string{"DATE", "DAY", "HOURS", "NOTE"}, rows)
}

// FormatHolidays lists a year's holidays with their source.
func FormatHolidays(year int, source string, hs []domain.Holiday) string {
	rows := make([][]string, 0, len(hs))
	for _, h := range hs {
		kind := string(h.Kind)
		if h.Kind == domain.HolidaySubstitute || h.Kind == domain.HolidayCitizens {
			kind = StylePurple.Render(kind)
		}
		rows = append(rows, []string{h.Date.Format(domain.DateLayout), h.Date.Format("Mon"), h.Name, kind})
	}
	out := RenderTable([]string{"DATE", "DAY", "NAME", "KIND"}, rows)
	out += "\n" + Dim(fmt.Sprintf("%d holidays from %s", len(hs), source)) + "\n"
	return RenderBox(fmt.Sprintf("Holidays %d", year), out)
}

// FormatAvailability lists resolved days and their total.
func FormatAvailability(days []app.DayAvailability) string {
	var total float64
	rows := make([][]string, 0, len(days))
	for _, d := range days {
		total += d.Hours
		source := string(d.Source)
		if d.HolidayName != "" {
			source += ": " + d.HolidayName
		}
		hours := FormatHoursFixed(d.Hours)
		if d.Hours == 0 {
			hours = Dim(hours)
		}
		rows = append(rows, []string{d.Date.Format(domain.DateLayout), d.Date.Format("Mon"), hours, daySourceStyle(d.Source).Render(source)})
	}
	var b strings.Builder
	b.WriteString(RenderTable([]string{"DATE", "DAY", "HOURS", "SOURCE"}, rows))
	b.WriteString("\n" + Dim(fmt.Sprintf("Total: %s over %d days", FormatHoursFixed(total), len(days))) + "\n")
	return b.String()
}

func daySourceStyle(s domain.DaySource) lipgloss.Style {
	switch s {
	case domain.DayHoliday:
		return StylePurple
	case domain.DayOverride:
		return StyleYellow
	default:
		return StyleDim
	}
}

// RenderAvailabilityChart draws one bar per day, colored by the rule that
// decided the day's hours.
func RenderAvailabilityChart(days []app.DayAvailability, width, height int) string {
	if len(days) == 0 {
		return ""
	}
	chart := barchart.New(max(width, 20), max(height, 6))

	bars := make([]barchart.BarData, 0, len(days))
	for _, d := range days {
		bars = append(bars, barchart.BarData{
			Label: d.Date.Format("02"),
			Values: []barchart.BarValue{{
				Name:  string(d.Source),
				Value: d.Hours,
				Style: lipgloss.NewStyle().Foreground(daySourceColor(d.Source)),
			}},
		})
	}
	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

func daySourceColor(s domain.DaySource) lipgloss.Color {
	switch s {
	case domain.DayHoliday:
		return ColorPurple
	case domain.DayOverride:
		return ColorYellow
	default:
		return ColorGreen
	}
}
