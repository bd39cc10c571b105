package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeDateFrom(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		t    time.Time
		want string
	}{
		{"today", now.Add(2 * time.Hour), "Today"},
		{"tomorrow", now.AddDate(0, 0, 1), "Tomorrow"},
		{"yesterday", now.AddDate(0, 0, -1), "Yesterday"},
		{"in days", now.AddDate(0, 0, 5), "In 5d"},
		{"in weeks", now.AddDate(0, 0, 21), "In 3w"},
		{"in months", now.AddDate(0, 0, 90), "In 3mo"},
		{"days ago", now.AddDate(0, 0, -5), "5d ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RelativeDateFrom(tc.t, now))
		})
	}
}

func TestClockRange(t *testing.T) {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 10, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "09:00–10:30", ClockRange(start, end))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0m", FormatDuration(0))
	assert.Equal(t, "45m", FormatDuration(45*time.Minute))
	assert.Equal(t, "2h", FormatDuration(2*time.Hour))
	assert.Equal(t, "1h 30m", FormatDuration(90*time.Minute))
}

func TestTruncID(t *testing.T) {
	out := TruncID("0123456789abcdef")
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "89abcdef")
}

func TestRenderBox_IncludesTitleAndContent(t *testing.T) {
	out := RenderBox("Agenda", "hello")
	assert.Contains(t, out, "AGENDA")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "╭")
}
