package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/layout"
	"github.com/pmerrell/atrium/internal/service"
)

func TestFormatBrief_AllSections(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	now := day.Add(8 * time.Hour)

	brief := &service.Brief{
		GeneratedAt: now,
		Day:         day,
		Events: []service.GridItem{
			{
				Event: &domain.Event{
					Title: "Standup",
					Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour),
				},
				Column: 0, TotalColumns: 1,
			},
		},
		DueAlerts: []*domain.Alert{
			{Title: "Submit report", Level: domain.AlertUrgent, Message: "due yesterday"},
		},
		Pinned: []*domain.Document{
			{Title: "Packing list", Body: "socks and chargers", Pinned: true, UpdatedAt: now},
		},
		Busy: []layout.Span{{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)}},
		Free: []layout.Span{
			{Start: day.Add(7 * time.Hour), End: day.Add(9 * time.Hour)},
			{Start: day.Add(10 * time.Hour), End: day.Add(22 * time.Hour)},
		},
	}

	out := FormatBrief(brief)
	assert.Contains(t, out, "SCHEDULE")
	assert.Contains(t, out, "Standup")
	assert.Contains(t, out, "URGENT")
	assert.Contains(t, out, "Submit report")
	assert.Contains(t, out, "Packing list")
	assert.Contains(t, out, "Booked:")
	assert.Contains(t, out, "Next free:")
	assert.Contains(t, out, "08:00–09:00")
}

func TestFormatBrief_EmptyDay(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	brief := &service.Brief{
		GeneratedAt: day.Add(8 * time.Hour),
		Day:         day,
		Free:        []layout.Span{{Start: day.Add(7 * time.Hour), End: day.Add(22 * time.Hour)}},
	}

	out := FormatBrief(brief)
	assert.Contains(t, out, "Nothing scheduled")
	assert.NotContains(t, out, "ALERTS")
}
