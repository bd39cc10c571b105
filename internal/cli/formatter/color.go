package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pmerrell/atrium/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua       = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// calendarStyles maps the color names accepted in config and calendar
// records to palette styles.
var calendarStyles = map[string]lipgloss.Style{
	"green":  StyleGreen,
	"yellow": StyleYellow,
	"red":    StyleRed,
	"blue":   StyleBlue,
	"purple": StylePurple,
	"aqua":   StyleAqua,
}

// CalendarDot returns a colored bullet for a calendar's named color,
// falling back to the dim style for unknown names.
func CalendarDot(color string) string {
	if style, ok := calendarStyles[strings.ToLower(color)]; ok {
		return style.Render("●")
	}
	return StyleDim.Render("●")
}

// LevelIndicator returns a colored alert-level indicator such as "▲ URGENT".
func LevelIndicator(level domain.AlertLevel) string {
	switch level {
	case domain.AlertUrgent:
		return StyleRed.Render("▲ URGENT")
	case domain.AlertWarn:
		return StyleYellow.Render("● WARN")
	case domain.AlertInfo:
		return StyleBlue.Render("○ INFO")
	default:
		return StyleDim.Render("○ " + strings.ToUpper(string(level)))
	}
}

// StatusPill returns a colored status indicator for an event status.
func StatusPill(status domain.EventStatus) string {
	switch status {
	case domain.EventConfirmed:
		return StyleGreen.Render("● Confirmed")
	case domain.EventTentative:
		return StyleYellow.Render("○ Tentative")
	case domain.EventCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
