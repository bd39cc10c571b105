package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "atrium", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "monday", cfg.WeekStart)
	assert.Equal(t, 60, cfg.HorizonDays)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Timezone = "Europe/Berlin"
	cfg.WeekStart = "sunday"
	cfg.Feeds = []Feed{{URL: "https://example.com/cal.ics", Name: "Team", Color: "green"}}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", got.Timezone)
	assert.Equal(t, "sunday", got.WeekStart)
	require.Len(t, got.Feeds, 1)
	assert.Equal(t, "Team", got.Feeds[0].Name)
}

func TestNormalize_RepairsBadValues(t *testing.T) {
	cfg := &Config{
		WeekStart:    "wednesday",
		DayStartHour: -3,
		DayEndHour:   1,
		RefreshCron:  "not a cron expression",
	}
	cfg.Normalize()

	assert.Equal(t, "monday", cfg.WeekStart)
	assert.Equal(t, 7, cfg.DayStartHour)
	assert.Equal(t, 22, cfg.DayEndHour)
	assert.Equal(t, "*/30 * * * *", cfg.RefreshCron)
}

func TestValidate_RejectsIncompleteFeeds(t *testing.T) {
	cfg := Default()
	cfg.Feeds = []Feed{{URL: "", Name: "Nameless"}}
	assert.Error(t, cfg.Validate())

	cfg.Feeds = []Feed{{URL: "https://example.com/cal.ics", Name: ""}}
	assert.Error(t, cfg.Validate())
}

func TestValidate_RejectsUnknownTimezone(t *testing.T) {
	cfg := Default()
	cfg.Timezone = "Mars/Olympus_Mons"
	assert.Error(t, cfg.Validate())
}
