package service

import (
	"time"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/layout"
)

// dayBounds returns the half-open [midnight, next midnight) window of the
// calendar day containing t in the given location.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// weekStart returns midnight of the first day of the week containing day.
// weekStartDay is "sunday" or "monday"; anything else means monday.
func weekStart(day time.Time, weekStartDay string) time.Time {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

	first := time.Monday
	if weekStartDay == "sunday" {
		first = time.Sunday
	}
	for start.Weekday() != first {
		start = start.AddDate(0, 0, -1)
	}
	return start
}

// intersectsWindow reports whether the event touches the half-open window
// [from, to). Zero-duration events count when their instant lies inside.
func intersectsWindow(ev *domain.Event, from, to time.Time) bool {
	if ev.Start.Equal(ev.End) {
		return !ev.Start.Before(from) && ev.Start.Before(to)
	}
	return ev.Start.Before(to) && from.Before(ev.End)
}

// freeSlots inverts busy spans inside the working window [from, to).
// Busy time outside the window is clipped; spans are assumed sorted and
// non-overlapping, which layout.Spans guarantees.
func freeSlots(busy []layout.Span, from, to time.Time) []layout.Span {
	var free []layout.Span
	cursor := from
	for _, b := range busy {
		if !b.End.After(cursor) || !b.Start.Before(to) {
			continue
		}
		if b.Start.After(cursor) {
			free = append(free, layout.Span{Start: cursor, End: b.Start})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(to) {
		free = append(free, layout.Span{Start: cursor, End: to})
	}
	return free
}
