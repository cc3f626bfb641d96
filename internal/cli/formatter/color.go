package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pagepace/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorOrange = lipgloss.Color("#fe8019")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = ColorOrange
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PaceColor returns the style for a pace status. Unpaced works are dim.
func PaceColor(s domain.PaceStatus) lipgloss.Style {
	switch s {
	case domain.PaceCritical:
		return StyleRed
	case domain.PaceBehind:
		return StyleYellow
	case domain.PaceOnTrack:
		return StyleBlue
	case domain.PaceAhead:
		return StyleGreen
	default:
		return StyleDim
	}
}

// PaceIndicator returns a colored pace label such as "● BEHIND".
func PaceIndicator(s domain.PaceStatus) string {
	switch s {
	case domain.PaceCritical:
		return StyleRed.Render("▲ CRITICAL")
	case domain.PaceBehind:
		return StyleYellow.Render("● BEHIND")
	case domain.PaceOnTrack:
		return StyleBlue.Render("● ON TRACK")
	case domain.PaceAhead:
		return StyleGreen.Render("● AHEAD")
	default:
		return StyleDim.Render("○ UNDATED")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
