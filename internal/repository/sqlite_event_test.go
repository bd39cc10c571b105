package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmerrell/atrium/internal/repository"
	"github.com/pmerrell/atrium/internal/testutil"
)

func TestEventRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	cal := testutil.MakeCalendar(t, database, "Personal")
	repo := repository.NewSQLiteEventRepo(database)
	ctx := context.Background()

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	ev := testutil.MakeEvent(t, database, cal.ID, "Standup", start, start.Add(30*time.Minute))

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Title)
	assert.Equal(t, cal.ID, got.CalendarID)
	assert.True(t, got.Start.Equal(start))
	assert.True(t, got.End.Equal(start.Add(30*time.Minute)))
}

func TestEventRepo_GetMissing(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteEventRepo(database)

	_, err := repo.GetByID(context.Background(), "no-such-event")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventRepo_ListBetween(t *testing.T) {
	database := testutil.NewTestDB(t)
	cal := testutil.MakeCalendar(t, database, "Personal")
	repo := repository.NewSQLiteEventRepo(database)
	ctx := context.Background()

	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	h := func(hour int) time.Time { return day.Add(time.Duration(hour) * time.Hour) }

	testutil.MakeEvent(t, database, cal.ID, "Before", h(6), h(7))
	testutil.MakeEvent(t, database, cal.ID, "Spanning", h(8), h(10))
	testutil.MakeEvent(t, database, cal.ID, "Inside", h(11), h(12))
	testutil.MakeEvent(t, database, cal.ID, "EndsAtWindowStart", h(7), h(9))
	testutil.MakeEvent(t, database, cal.ID, "StartsAtWindowEnd", h(14), h(15))

	got, err := repo.ListBetween(ctx, h(9), h(14))
	require.NoError(t, err)

	titles := make([]string, len(got))
	for i, e := range got {
		titles[i] = e.Title
	}
	// Half-open window: an event ending exactly at window start is out,
	// an event starting exactly at window end is out.
	assert.Equal(t, []string{"Spanning", "Inside"}, titles)
}

func TestEventRepo_ListBetween_ZeroDuration(t *testing.T) {
	database := testutil.NewTestDB(t)
	cal := testutil.MakeCalendar(t, database, "Personal")
	repo := repository.NewSQLiteEventRepo(database)

	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	point := day.Add(9 * time.Hour)
	testutil.MakeEvent(t, database, cal.ID, "Marker", point, point)

	got, err := repo.ListBetween(context.Background(), day.Add(8*time.Hour), day.Add(10*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Marker", got[0].Title)
}

func TestEventRepo_DeleteImported(t *testing.T) {
	database := testutil.NewTestDB(t)
	cal := testutil.MakeCalendar(t, database, "Feed")
	repo := repository.NewSQLiteEventRepo(database)
	ctx := context.Background()

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	local := testutil.MakeEvent(t, database, cal.ID, "Local", start, start.Add(time.Hour))

	imported := testutil.MakeEvent(t, database, cal.ID, "Imported", start, start.Add(time.Hour))
	imported.FeedUID = "uid-1"
	imported.InstanceKey = "2025-06-10T09:00:00Z"
	require.NoError(t, repo.Delete(ctx, imported.ID))
	require.NoError(t, repo.Create(ctx, imported))

	require.NoError(t, repo.DeleteImported(ctx, cal.ID))

	remaining, err := repo.ListByCalendar(ctx, cal.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1, "only the local event survives")
	assert.Equal(t, local.ID, remaining[0].ID)
}

func TestEventRepo_CascadeOnCalendarDelete(t *testing.T) {
	database := testutil.NewTestDB(t)
	cal := testutil.MakeCalendar(t, database, "Doomed")
	calRepo := repository.NewSQLiteCalendarRepo(database)
	evRepo := repository.NewSQLiteEventRepo(database)
	ctx := context.Background()

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	ev := testutil.MakeEvent(t, database, cal.ID, "Goes with it", start, start.Add(time.Hour))

	require.NoError(t, calRepo.Delete(ctx, cal.ID))

	_, err := evRepo.GetByID(ctx, ev.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEventRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	cal := testutil.MakeCalendar(t, database, "Personal")
	repo := repository.NewSQLiteEventRepo(database)
	ctx := context.Background()

	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	ev := testutil.MakeEvent(t, database, cal.ID, "Draft", start, start.Add(time.Hour))

	ev.Title = "Final"
	ev.Location = "Room 2"
	require.NoError(t, repo.Update(ctx, ev))

	got, err := repo.GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, "Room 2", got.Location)
}
