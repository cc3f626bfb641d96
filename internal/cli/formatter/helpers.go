package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDays describes a calendar-day distance from today, e.g. "In 3d".
func RelativeDays(days int) string {
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// DeadlineStyled renders a deadline relative to today with urgency coloring:
// red within two days or overdue, yellow within a week.
func DeadlineStyled(deadline, today time.Time) string {
	days := domain.DaysBetween(today, deadline)
	text := fmt.Sprintf("%s (%s)", deadline.Format("Jan 2"), RelativeDays(days))
	switch {
	case days <= 2:
		return StyleRed.Render(text)
	case days <= 7:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// StatusPill returns a colored indicator for a work status.
func StatusPill(status domain.WorkStatus) string {
	switch status {
	case domain.WorkNotStarted:
		return StyleBlue.Render("○ Not started")
	case domain.WorkInProgress:
		return StyleGreen.Render("● In progress")
	case domain.WorkOnHold:
		return StyleYellow.Render("◌ On hold")
	case domain.WorkDone:
		return StyleDim.Render("✔ Done")
	default:
		return StyleDim.Render(string(status))
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatHours renders an hour amount with at most one decimal, e.g. "4.5h".
func FormatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + "h"
}

// FormatHoursFixed renders hours with one decimal, for aligned columns.
func FormatHoursFixed(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}
