package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmerrell/atrium/internal/config"
	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/repository"
	"github.com/pmerrell/atrium/internal/testutil"
)

func utcConfig() *config.Config {
	cfg := config.Default()
	cfg.Timezone = "UTC"
	return cfg
}

func setupEventService(t *testing.T) (EventService, *domain.Calendar, repository.EventRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	events := repository.NewSQLiteEventRepo(database)
	calendars := repository.NewSQLiteCalendarRepo(database)
	cal := testutil.MakeCalendar(t, database, "Personal")
	return NewEventService(events, calendars, utcConfig()), cal, events
}

func TestEventService_CreateAssignsDefaults(t *testing.T) {
	svc, cal, _ := setupEventService(t)
	ctx := context.Background()

	e := &domain.Event{
		CalendarID: cal.ID,
		Title:      "Dentist",
		Start:      time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC),
		End:        time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.Create(ctx, e))

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, domain.EventConfirmed, e.Status)
	assert.False(t, e.CreatedAt.IsZero())
}

func TestEventService_CreateRejectsUnknownCalendar(t *testing.T) {
	svc, _, _ := setupEventService(t)

	e := &domain.Event{
		CalendarID: "no-such-calendar",
		Title:      "Orphan",
		Start:      time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC),
		End:        time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC),
	}
	assert.Error(t, svc.Create(context.Background(), e))
}

func TestEventService_DayGridPlacesOverlapsSideBySide(t *testing.T) {
	svc, cal, events := setupEventService(t)
	ctx := context.Background()

	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	e1 := &domain.Event{
		CalendarID: cal.ID, Title: "Planning", Status: domain.EventConfirmed,
		Start: day.Add(9 * time.Hour), End: day.Add(11 * time.Hour),
	}
	e2 := &domain.Event{
		CalendarID: cal.ID, Title: "1:1", Status: domain.EventConfirmed,
		Start: day.Add(10 * time.Hour), End: day.Add(12 * time.Hour),
	}
	require.NoError(t, svc.Create(ctx, e1))
	require.NoError(t, svc.Create(ctx, e2))

	banner := &domain.Event{
		ID: "banner", CalendarID: cal.ID, Title: "Conference day",
		Status: domain.EventConfirmed, AllDay: true,
		Start: day, End: day.AddDate(0, 0, 1),
		CreatedAt: testutil.FixtureClock, UpdatedAt: testutil.FixtureClock,
	}
	require.NoError(t, events.Create(ctx, banner))

	grid, err := svc.DayGrid(ctx, day)
	require.NoError(t, err)

	require.Len(t, grid.AllDay, 1)
	assert.Equal(t, "Conference day", grid.AllDay[0].Title)

	require.Len(t, grid.Items, 2)
	assert.Equal(t, "Planning", grid.Items[0].Event.Title)
	assert.Equal(t, 0, grid.Items[0].Column)
	assert.Equal(t, "1:1", grid.Items[1].Event.Title)
	assert.Equal(t, 1, grid.Items[1].Column)
	for _, item := range grid.Items {
		assert.Equal(t, 2, item.TotalColumns)
	}

	require.Len(t, grid.Busy, 1)
	assert.True(t, grid.Busy[0].Start.Equal(day.Add(9*time.Hour)))
	assert.True(t, grid.Busy[0].End.Equal(day.Add(12*time.Hour)))
}

func TestEventService_DayGridBackToBackShareColumn(t *testing.T) {
	svc, cal, _ := setupEventService(t)
	ctx := context.Background()

	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"First", "Second"} {
		e := &domain.Event{
			CalendarID: cal.ID, Title: title,
			Start: day.Add(time.Duration(9+i) * time.Hour),
			End:   day.Add(time.Duration(10+i) * time.Hour),
		}
		require.NoError(t, svc.Create(ctx, e))
	}

	grid, err := svc.DayGrid(ctx, day)
	require.NoError(t, err)
	require.Len(t, grid.Items, 2)
	for _, item := range grid.Items {
		assert.Equal(t, 0, item.Column)
		assert.Equal(t, 1, item.TotalColumns)
	}
}

func TestEventService_WeekGridStartsOnConfiguredDay(t *testing.T) {
	database := testutil.NewTestDB(t)
	events := repository.NewSQLiteEventRepo(database)
	calendars := repository.NewSQLiteCalendarRepo(database)
	cal := testutil.MakeCalendar(t, database, "Personal")

	cfg := utcConfig()
	cfg.WeekStart = "sunday"
	svc := NewEventService(events, calendars, cfg)
	ctx := context.Background()

	// 2025-06-10 is a Tuesday; the sunday-start week begins 2025-06-08.
	e := &domain.Event{
		CalendarID: cal.ID, Title: "Midweek",
		Start: time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.Create(ctx, e))

	grid, err := svc.WeekGrid(ctx, time.Date(2025, 6, 10, 13, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, time.Sunday, grid.Start.Weekday())
	assert.True(t, grid.Start.Equal(time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)))
	require.Len(t, grid.Days, 7)

	var found int
	for i, dayGrid := range grid.Days {
		if len(dayGrid.Items) > 0 {
			found++
			assert.Equal(t, 3, i, "wednesday is the fourth day of a sunday week")
			assert.Equal(t, "Midweek", dayGrid.Items[0].Event.Title)
		}
	}
	assert.Equal(t, 1, found)
}

func TestEventService_WeekGridSpanningEventAppearsEachDay(t *testing.T) {
	svc, cal, _ := setupEventService(t)
	ctx := context.Background()

	e := &domain.Event{
		CalendarID: cal.ID, Title: "Overnight shift",
		Start: time.Date(2025, 6, 10, 22, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 11, 6, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.Create(ctx, e))

	grid, err := svc.WeekGrid(ctx, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var daysWithEvent int
	for _, dayGrid := range grid.Days {
		if len(dayGrid.Items) > 0 {
			daysWithEvent++
		}
	}
	assert.Equal(t, 2, daysWithEvent)
}
