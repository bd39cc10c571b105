package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pmerrell/atrium/internal/service"
)

const briefMeterWidth = 12

// FormatBrief formats the daily brief: schedule, utilization, alerts,
// and quick-access documents.
func FormatBrief(brief *service.Brief) string {
	var b strings.Builder

	b.WriteString(Header("Schedule") + "\n")
	for _, ev := range brief.AllDay {
		b.WriteString("  " + Bold(ev.Title) + Dim(" (all day)") + "\n")
	}
	if len(brief.Events) == 0 {
		b.WriteString(Dim("  Nothing scheduled.") + "\n")
	}
	for _, item := range brief.Events {
		line := "  " + StyleFg.Render(ClockRange(item.Event.Start, item.Event.End)) + "  " + Bold(item.Event.Title)
		if item.TotalColumns > 1 {
			line += " " + Dim(fmt.Sprintf("(%d/%d)", item.Column+1, item.TotalColumns))
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n" + busyLine(brief) + "\n")
	if next := nextFreeSlot(brief); next != "" {
		b.WriteString(Dim("Next free: ") + StyleGreen.Render(next) + "\n")
	}

	if len(brief.DueAlerts) > 0 || len(brief.Upcoming) > 0 {
		b.WriteString("\n" + Header("Alerts") + "\n")
		for _, a := range brief.DueAlerts {
			b.WriteString("  " + LevelIndicator(a.Level) + "  " + Bold(a.Title) + "\n")
		}
		for _, u := range brief.Upcoming {
			b.WriteString("  " + Dim(u.At.Format("15:04")) + "  " + StyleFg.Render(u.Alert.Title) + "\n")
		}
	}

	if len(brief.Pinned) > 0 || len(brief.Recent) > 0 {
		b.WriteString("\n" + Header("Notes") + "\n")
		for _, d := range brief.Pinned {
			b.WriteString("  " + StyleYellow.Render("📌") + " " + Bold(d.Title) + "  " + Dim(d.Snippet(40)) + "\n")
		}
		for _, d := range brief.Recent {
			if d.Pinned {
				continue
			}
			b.WriteString("  " + StyleFg.Render(d.Title) + "  " + Dim(HumanTimestamp(d.UpdatedAt)) + "\n")
		}
	}

	return RenderBox("Brief — "+DayHeading(brief.Day), b.String())
}

// busyLine renders working-hours utilization as a meter.
func busyLine(brief *service.Brief) string {
	var busy, free time.Duration
	for _, s := range brief.Free {
		free += s.End.Sub(s.Start)
	}
	for _, s := range brief.Busy {
		busy += s.End.Sub(s.Start)
	}

	total := busy + free
	if total <= 0 {
		return Dim("Booked: ") + RenderMeter(0, briefMeterWidth)
	}
	pct := float64(busy) / float64(total)
	return Dim("Booked: ") + RenderMeter(pct, briefMeterWidth) + Dim(" of working hours")
}

func nextFreeSlot(brief *service.Brief) string {
	for _, s := range brief.Free {
		if s.End.After(brief.GeneratedAt) {
			start := s.Start
			if start.Before(brief.GeneratedAt) {
				start = brief.GeneratedAt
			}
			return ClockRange(start, s.End) + " (" + FormatDuration(s.End.Sub(start)) + ")"
		}
	}
	return ""
}
