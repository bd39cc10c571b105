package domain

import (
	"fmt"
	"strings"
	"time"
)

// Calendar is a named collection of events. Manual calendars hold events
// created locally; feed calendars mirror an external ICS subscription and
// have their imported occurrences replaced wholesale on each sync.
type Calendar struct {
	ID     string
	Name   string
	Color  string
	Source CalendarSource

	// FeedURL is set only for ICS-backed calendars.
	FeedURL string

	// LastSyncedAt records the most recent successful feed import.
	LastSyncedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks structural invariants before persistence.
func (c *Calendar) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("calendar name is required")
	}
	if !ValidCalendarSources[string(c.Source)] {
		return fmt.Errorf("invalid calendar source: %q", c.Source)
	}
	if c.Source == SourceFeed && strings.TrimSpace(c.FeedURL) == "" {
		return fmt.Errorf("feed calendar requires a URL")
	}
	if c.Source == SourceManual && c.FeedURL != "" {
		return fmt.Errorf("manual calendar must not have a feed URL")
	}
	return nil
}

// IsFeed reports whether the calendar mirrors an external ICS source.
func (c *Calendar) IsFeed() bool {
	return c.Source == SourceFeed
}
