package domain

import (
	"fmt"
	"strings"
	"time"
)

// Event is a scheduled entry on a calendar. Times are stored as instants;
// the interval is half-open [Start, End), so an event ending at 10:00 does
// not overlap one starting at 10:00.
type Event struct {
	ID         string
	CalendarID string
	Title      string
	Location   string
	Notes      string

	Start  time.Time
	End    time.Time
	AllDay bool
	Status EventStatus

	// FeedUID / InstanceKey identify an imported ICS occurrence.
	// Empty for locally created events.
	FeedUID     string
	InstanceKey string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks structural invariants before persistence.
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event title is required")
	}
	if e.CalendarID == "" {
		return fmt.Errorf("event requires a calendar")
	}
	if e.End.Before(e.Start) {
		return fmt.Errorf("event end %s is before start %s",
			e.End.Format(time.RFC3339), e.Start.Format(time.RFC3339))
	}
	if !ValidEventStatuses[string(e.Status)] {
		return fmt.Errorf("invalid event status: %q", e.Status)
	}
	return nil
}

// Duration returns the event length. Zero-duration events are valid.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Overlaps reports whether two events' intervals intersect under half-open
// semantics. A zero-duration event overlaps only events whose interval
// strictly contains its instant.
func (e *Event) Overlaps(other *Event) bool {
	return e.Start.Before(other.End) && other.Start.Before(e.End)
}

// OnDay reports whether any part of the event falls on the given calendar
// day in that day's location.
func (e *Event) OnDay(day time.Time) bool {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	if e.Start.Equal(e.End) {
		return !e.Start.Before(dayStart) && e.Start.Before(dayEnd)
	}
	return e.Start.Before(dayEnd) && dayStart.Before(e.End)
}

// Imported reports whether the event came from an ICS feed.
func (e *Event) Imported() bool {
	return e.FeedUID != ""
}
