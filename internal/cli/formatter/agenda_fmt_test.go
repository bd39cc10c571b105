package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/layout"
	"github.com/pmerrell/atrium/internal/service"
)

func sampleCalendars() map[string]*domain.Calendar {
	return map[string]*domain.Calendar{
		"cal-1": {ID: "cal-1", Name: "Personal", Color: "blue"},
	}
}

func TestFormatDayAgenda_ShowsLaneMarkersForOverlaps(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	grid := &service.DayGrid{
		Day: day,
		Items: []service.GridItem{
			{
				Event: &domain.Event{
					CalendarID: "cal-1", Title: "Planning", Location: "Room 2",
					Start: day.Add(9 * time.Hour), End: day.Add(11 * time.Hour),
					Status: domain.EventConfirmed,
				},
				Column: 0, TotalColumns: 2,
			},
			{
				Event: &domain.Event{
					CalendarID: "cal-1", Title: "1:1",
					Start: day.Add(10 * time.Hour), End: day.Add(12 * time.Hour),
					Status: domain.EventConfirmed,
				},
				Column: 1, TotalColumns: 2,
			},
		},
	}

	out := FormatDayAgenda(grid, sampleCalendars())
	assert.Contains(t, out, "Planning")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "Room 2")
	assert.Contains(t, out, "Personal")
	assert.Contains(t, out, "09:00–11:00")
}

func TestFormatDayAgenda_EmptyDay(t *testing.T) {
	grid := &service.DayGrid{Day: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)}
	out := FormatDayAgenda(grid, nil)
	assert.Contains(t, out, "No events scheduled")
}

func TestFormatDayAgenda_AllDayBanner(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	grid := &service.DayGrid{
		Day: day,
		AllDay: []*domain.Event{
			{CalendarID: "cal-1", Title: "Conference", AllDay: true, Start: day, End: day.AddDate(0, 0, 1)},
		},
	}

	out := FormatDayAgenda(grid, sampleCalendars())
	assert.Contains(t, out, "Conference")
	assert.Contains(t, out, "all day")
}

func TestFormatWeekAgenda_ListsEachDay(t *testing.T) {
	start := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	week := &service.WeekGrid{Start: start}
	for i := 0; i < 7; i++ {
		week.Days = append(week.Days, service.DayGrid{Day: start.AddDate(0, 0, i)})
	}
	week.Days[1].Items = []service.GridItem{
		{
			Event: &domain.Event{
				CalendarID: "cal-1", Title: "Standup",
				Start: start.AddDate(0, 0, 1).Add(9 * time.Hour),
				End:   start.AddDate(0, 0, 1).Add(10 * time.Hour),
			},
			Column: 0, TotalColumns: 1,
		},
	}
	week.Days[1].Busy = []layout.Span{}

	out := FormatWeekAgenda(week, sampleCalendars())
	assert.Contains(t, out, "MON, JUN 9")
	assert.Contains(t, out, "SUN, JUN 15")
	assert.Contains(t, out, "Standup")
}
