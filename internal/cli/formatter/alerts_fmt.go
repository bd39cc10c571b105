package formatter

import (
	"strings"
	"time"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/service"
)

// FormatAlertList renders all alerts as a table: level, title, and when
// they fire (or fired).
func FormatAlertList(alerts []*domain.Alert, now time.Time) string {
	if len(alerts) == 0 {
		return Dim("No alerts.") + "\n"
	}

	headers := []string{"LEVEL", "TITLE", "WHEN", "STATE"}
	rows := make([][]string, 0, len(alerts))
	for _, a := range alerts {
		var when string
		switch {
		case a.Recurring():
			when = StylePurple.Render(a.Schedule)
		case a.DueAt != nil:
			when = StyleFg.Render(RelativeDateFrom(*a.DueAt, now))
		default:
			when = Dim("--")
		}

		state := StyleGreen.Render("armed")
		if a.Acked() {
			state = Dim("acked")
		} else if a.DueAt != nil && a.DueAt.Before(now) {
			state = StyleRed.Render("due")
		}

		rows = append(rows, []string{
			LevelIndicator(a.Level),
			Bold(a.Title),
			when,
			state,
		})
	}
	return RenderTable(headers, rows)
}

// FormatDueAlerts renders fired alerts as attention lines for `alert due`.
func FormatDueAlerts(due []*domain.Alert, upcoming []service.UpcomingAlert) string {
	var b strings.Builder

	if len(due) == 0 {
		b.WriteString(Dim("Nothing needs attention.") + "\n")
	}
	for _, a := range due {
		b.WriteString(LevelIndicator(a.Level) + "  " + Bold(a.Title))
		if a.Message != "" {
			b.WriteString("  " + Dim(a.Message))
		}
		b.WriteString("\n")
	}

	if len(upcoming) > 0 {
		b.WriteString("\n" + Header("Coming up") + "\n")
		for _, u := range upcoming {
			b.WriteString("  " + Dim(u.At.Format("15:04")) + "  " + StyleFg.Render(u.Alert.Title) + "\n")
		}
	}
	return b.String()
}
