package formatter

import (
	"fmt"
	"strings"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/service"
)

// FormatDayAgenda formats one day's laid-out grid as a CLI agenda.
// Overlapping events carry a lane marker such as "2/3" so the reader can
// see they run side by side.
func FormatDayAgenda(grid *service.DayGrid, calendars map[string]*domain.Calendar) string {
	var b strings.Builder

	for _, ev := range grid.AllDay {
		b.WriteString(calendarBullet(ev, calendars) + " " + Bold(ev.Title) + Dim(" — all day") + "\n")
	}
	if len(grid.AllDay) > 0 && len(grid.Items) > 0 {
		b.WriteString("\n")
	}

	if len(grid.Items) == 0 && len(grid.AllDay) == 0 {
		b.WriteString(Dim("No events scheduled.") + "\n")
		return RenderBox(DayHeading(grid.Day), b.String())
	}

	if len(grid.Items) > 0 {
		headers := []string{"TIME", "EVENT", "WHERE", "CALENDAR"}
		rows := make([][]string, 0, len(grid.Items))
		for _, item := range grid.Items {
			ev := item.Event

			timeCell := StyleFg.Render(ClockRange(ev.Start, ev.End))
			if item.TotalColumns > 1 {
				timeCell += " " + Dim(fmt.Sprintf("%d/%d", item.Column+1, item.TotalColumns))
			}

			where := Dim("--")
			if ev.Location != "" {
				where = StyleFg.Render(ev.Location)
			}

			title := Bold(ev.Title)
			if ev.Status == domain.EventCancelled {
				title = StyleDim.Render(ev.Title)
			}

			rows = append(rows, []string{
				timeCell,
				title,
				where,
				calendarCell(ev, calendars),
			})
		}
		b.WriteString(RenderTable(headers, rows))
	}

	return RenderBox(DayHeading(grid.Day), b.String())
}

// FormatWeekAgenda formats a week grid as stacked day sections.
func FormatWeekAgenda(week *service.WeekGrid, calendars map[string]*domain.Calendar) string {
	var b strings.Builder

	for i := range week.Days {
		day := &week.Days[i]
		b.WriteString(Header(DayHeading(day.Day)) + "\n")

		if len(day.AllDay) == 0 && len(day.Items) == 0 {
			b.WriteString(Dim("  —") + "\n\n")
			continue
		}

		for _, ev := range day.AllDay {
			b.WriteString("  " + calendarBullet(ev, calendars) + " " + Bold(ev.Title) + Dim(" (all day)") + "\n")
		}
		for _, item := range day.Items {
			ev := item.Event
			line := "  " + StyleFg.Render(ClockRange(ev.Start, ev.End)) + "  " + Bold(ev.Title)
			if item.TotalColumns > 1 {
				line += " " + Dim(fmt.Sprintf("(%d/%d)", item.Column+1, item.TotalColumns))
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func calendarBullet(ev *domain.Event, calendars map[string]*domain.Calendar) string {
	if cal, ok := calendars[ev.CalendarID]; ok {
		return CalendarDot(cal.Color)
	}
	return CalendarDot("")
}

func calendarCell(ev *domain.Event, calendars map[string]*domain.Calendar) string {
	cal, ok := calendars[ev.CalendarID]
	if !ok {
		return Dim("--")
	}
	return CalendarDot(cal.Color) + " " + StyleFg.Render(cal.Name)
}
