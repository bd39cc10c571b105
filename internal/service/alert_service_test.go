package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/repository"
	"github.com/pmerrell/atrium/internal/testutil"
)

func setupAlertService(t *testing.T) AlertService {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewAlertService(repository.NewSQLiteAlertRepo(database))
}

func TestAlertService_CreateAssignsDefaults(t *testing.T) {
	svc := setupAlertService(t)
	ctx := context.Background()

	due := testutil.FixtureClock.Add(time.Hour)
	a := &domain.Alert{Title: "Water plants", DueAt: &due}
	require.NoError(t, svc.Create(ctx, a))

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, domain.AlertInfo, a.Level)
}

func TestAlertService_CreateRejectsBadSchedule(t *testing.T) {
	svc := setupAlertService(t)

	a := &domain.Alert{Title: "Standup", Schedule: "every morning"}
	err := svc.Create(context.Background(), a)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule")
}

func TestAlertService_DueOneShot(t *testing.T) {
	svc := setupAlertService(t)
	ctx := context.Background()
	now := testutil.FixtureClock

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	overdue := &domain.Alert{Title: "Overdue", DueAt: &past, Level: domain.AlertWarn}
	pending := &domain.Alert{Title: "Later", DueAt: &future}
	require.NoError(t, svc.Create(ctx, overdue))
	require.NoError(t, svc.Create(ctx, pending))

	due, err := svc.Due(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Overdue", due[0].Title)
}

func TestAlertService_AckSilencesOneShot(t *testing.T) {
	svc := setupAlertService(t)
	ctx := context.Background()
	now := testutil.FixtureClock

	past := now.Add(-time.Hour)
	a := &domain.Alert{Title: "Done already", DueAt: &past}
	require.NoError(t, svc.Create(ctx, a))
	require.NoError(t, svc.Ack(ctx, a.ID))

	due, err := svc.Due(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestAlertService_RecurringFiresAfterBaseline(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteAlertRepo(database)
	svc := NewAlertService(repo)
	ctx := context.Background()

	// Created at 08:00; fires every day at 09:00.
	a := &domain.Alert{
		ID:        "recurring",
		Title:     "Morning review",
		Level:     domain.AlertInfo,
		Schedule:  "0 9 * * *",
		CreatedAt: testutil.FixtureClock,
		UpdatedAt: testutil.FixtureClock,
	}
	require.NoError(t, repo.Create(ctx, a))

	due, err := svc.Due(ctx, testutil.FixtureClock.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Empty(t, due, "not due before 09:00")

	due, err = svc.Due(ctx, testutil.FixtureClock.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Morning review", due[0].Title)
}

func TestAlertService_AckRearmsRecurring(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteAlertRepo(database)
	svc := NewAlertService(repo)
	ctx := context.Background()

	a := &domain.Alert{
		ID:        "recurring",
		Title:     "Morning review",
		Level:     domain.AlertInfo,
		Schedule:  "0 9 * * *",
		CreatedAt: testutil.FixtureClock,
		UpdatedAt: testutil.FixtureClock,
	}
	require.NoError(t, repo.Create(ctx, a))

	// Fired at 09:00, acknowledged at 09:30.
	require.NoError(t, repo.Ack(ctx, a.ID, testutil.FixtureClock.Add(90*time.Minute)))

	due, err := svc.Due(ctx, testutil.FixtureClock.Add(3*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, due, "silenced until tomorrow 09:00")

	due, err = svc.Due(ctx, testutil.FixtureClock.Add(26*time.Hour))
	require.NoError(t, err)
	assert.Len(t, due, 1, "re-armed at the next occurrence")
}

func TestAlertService_DueOrdersByUrgency(t *testing.T) {
	svc := setupAlertService(t)
	ctx := context.Background()
	now := testutil.FixtureClock

	early := now.Add(-2 * time.Hour)
	late := now.Add(-time.Hour)
	info := &domain.Alert{Title: "FYI", DueAt: &early, Level: domain.AlertInfo}
	urgent := &domain.Alert{Title: "Pay rent", DueAt: &late, Level: domain.AlertUrgent}
	require.NoError(t, svc.Create(ctx, info))
	require.NoError(t, svc.Create(ctx, urgent))

	due, err := svc.Due(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "Pay rent", due[0].Title)
	assert.Equal(t, "FYI", due[1].Title)
}

func TestAlertService_Upcoming(t *testing.T) {
	svc := setupAlertService(t)
	ctx := context.Background()
	now := testutil.FixtureClock

	soon := now.Add(30 * time.Minute)
	later := now.Add(30 * time.Hour)
	a1 := &domain.Alert{Title: "Soon", DueAt: &soon}
	a2 := &domain.Alert{Title: "Beyond window", DueAt: &later}
	a3 := &domain.Alert{Title: "Hourly", Schedule: "0 * * * *"}
	require.NoError(t, svc.Create(ctx, a1))
	require.NoError(t, svc.Create(ctx, a2))
	require.NoError(t, svc.Create(ctx, a3))

	upcoming, err := svc.Upcoming(ctx, now, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Soon", upcoming[0].Alert.Title)
	assert.Equal(t, "Hourly", upcoming[1].Alert.Title)
}
