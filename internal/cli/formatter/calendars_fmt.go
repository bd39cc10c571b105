package formatter

import (
	"github.com/pmerrell/atrium/internal/domain"
)

// FormatCalendarList renders calendars as a table with source and last
// sync information.
func FormatCalendarList(calendars []*domain.Calendar) string {
	if len(calendars) == 0 {
		return Dim("No calendars.") + "\n"
	}

	headers := []string{"", "NAME", "SOURCE", "SYNCED"}
	rows := make([][]string, 0, len(calendars))
	for _, c := range calendars {
		source := Dim("manual")
		if c.IsFeed() {
			source = StyleAqua.Render("feed")
		}

		synced := Dim("--")
		if c.LastSyncedAt != nil {
			synced = StyleFg.Render(HumanTimestamp(*c.LastSyncedAt))
		}

		rows = append(rows, []string{
			CalendarDot(c.Color),
			Bold(c.Name),
			source,
			synced,
		})
	}
	return RenderTable(headers, rows)
}
