package formatter

import (
	"strings"

	"github.com/pmerrell/atrium/internal/domain"
)

// FormatEvent formats a single event as a boxed detail view.
func FormatEvent(e *domain.Event, cal *domain.Calendar) string {
	var b strings.Builder

	if e.AllDay {
		b.WriteString(Dim("When      ") + StyleFg.Render(HumanDate(e.Start)) + Dim(" (all day)") + "\n")
	} else {
		b.WriteString(Dim("When      ") + StyleFg.Render(HumanDate(e.Start)+" "+ClockRange(e.Start, e.End)) + "\n")
		b.WriteString(Dim("Length    ") + StyleFg.Render(FormatDuration(e.Duration())) + "\n")
	}

	if cal != nil {
		b.WriteString(Dim("Calendar  ") + CalendarDot(cal.Color) + " " + StyleFg.Render(cal.Name) + "\n")
	}
	b.WriteString(Dim("Status    ") + StatusPill(e.Status) + "\n")

	if e.Location != "" {
		b.WriteString(Dim("Where     ") + StyleFg.Render(e.Location) + "\n")
	}
	if e.Imported() {
		b.WriteString(Dim("Source    ") + Dim("imported from feed") + "\n")
	}
	b.WriteString(Dim("ID        ") + Dim(TruncID(e.ID)) + "\n")

	if e.Notes != "" {
		b.WriteString("\n" + StyleFg.Render(e.Notes) + "\n")
	}

	return RenderBox(e.Title, b.String())
}
