package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pagepace/internal/cli/formatter"
	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pagepaceHuhTheme maps the Gruvbox palette onto huh's base theme.
func pagepaceHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateHours accepts a number in [0, 24].
func validateHours(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number of hours")
	}
	if v < 0 || v > 24 {
		return fmt.Errorf("hours must be between 0 and 24")
	}
	return nil
}

func parseHours(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func hoursInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(validateHours)
}

// profileFields holds the string-backed form values for a profile.
type profileFields struct {
	days    [7]string // Monday first
	holiday string
}

var profileDayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func newProfileFields(p *domain.AvailabilityProfile) *profileFields {
	f := &profileFields{}
	for i, h := range profileHours(p) {
		f.days[i] = strconv.FormatFloat(*h, 'f', -1, 64)
	}
	f.holiday = strconv.FormatFloat(p.Holiday, 'f', -1, 64)
	return f
}

// apply writes the parsed form values back into p.
func (f *profileFields) apply(p *domain.AvailabilityProfile) {
	for i, h := range profileHours(p) {
		*h = parseHours(f.days[i])
	}
	p.Holiday = parseHours(f.holiday)
}

// profileHours returns pointers to p's weekday fields, Monday first.
func profileHours(p *domain.AvailabilityProfile) [7]*float64 {
	return [7]*float64{&p.Monday, &p.Tuesday, &p.Wednesday, &p.Thursday, &p.Friday, &p.Saturday, &p.Sunday}
}

// profileForm builds a two-page form: weekdays, then weekend and holidays.
func profileForm(f *profileFields) *huh.Form {
	weekdays := make([]huh.Field, 0, 5)
	for i := 0; i < 5; i++ {
		weekdays = append(weekdays, hoursInput(profileDayNames[i], &f.days[i]))
	}
	return huh.NewForm(
		huh.NewGroup(weekdays...).Title("Weekday hours"),
		huh.NewGroup(
			hoursInput(profileDayNames[5], &f.days[5]),
			hoursInput(profileDayNames[6], &f.days[6]),
			hoursInput("National holidays", &f.holiday).
				Description("Used for holidays on any weekday"),
		).Title("Weekend and holidays"),
	).WithTheme(pagepaceHuhTheme()).WithShowHelp(false)
}

// confirmForm creates a huh form for a yes/no confirmation.
func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(pagepaceHuhTheme()).WithShowHelp(false)
}
