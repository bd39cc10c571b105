package domain

type CalendarSource string

const (
	SourceManual CalendarSource = "manual"
	SourceFeed   CalendarSource = "ics"
)

type EventStatus string

const (
	EventConfirmed EventStatus = "confirmed"
	EventTentative EventStatus = "tentative"
	EventCancelled EventStatus = "cancelled"
)

type AlertLevel string

const (
	AlertInfo   AlertLevel = "info"
	AlertWarn   AlertLevel = "warn"
	AlertUrgent AlertLevel = "urgent"
)

// ValidEventStatuses is the canonical set of accepted event status strings.
var ValidEventStatuses = map[string]bool{
	"confirmed": true, "tentative": true, "cancelled": true,
}

// ValidAlertLevels is the canonical set of accepted alert level strings.
var ValidAlertLevels = map[string]bool{
	"info": true, "warn": true, "urgent": true,
}

// ValidCalendarSources is the canonical set of accepted calendar source strings.
var ValidCalendarSources = map[string]bool{
	"manual": true, "ics": true,
}
