package domain

import (
	"fmt"
	"strings"
	"time"
)

// Alert is a dashboard reminder. One-shot alerts carry a DueAt instant;
// recurring alerts carry a standard five-field cron Schedule instead.
// Exactly one of the two must be set.
type Alert struct {
	ID      string
	Title   string
	Message string
	Level   AlertLevel

	DueAt    *time.Time
	Schedule string

	// AckedAt silences a one-shot alert permanently and a recurring alert
	// until its next scheduled occurrence.
	AckedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks structural invariants before persistence.
// Cron expression syntax is validated by the service layer, which owns
// the schedule parser.
func (a *Alert) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("alert title is required")
	}
	if !ValidAlertLevels[string(a.Level)] {
		return fmt.Errorf("invalid alert level: %q", a.Level)
	}
	hasDue := a.DueAt != nil
	hasSchedule := strings.TrimSpace(a.Schedule) != ""
	if hasDue == hasSchedule {
		return fmt.Errorf("alert requires exactly one of due time or schedule")
	}
	return nil
}

// Recurring reports whether the alert fires on a cron schedule.
func (a *Alert) Recurring() bool {
	return strings.TrimSpace(a.Schedule) != ""
}

// Acked reports whether the alert has been acknowledged at or after the
// given reference instant's relevance window. For one-shot alerts any
// acknowledgement counts.
func (a *Alert) Acked() bool {
	return a.AckedAt != nil
}
