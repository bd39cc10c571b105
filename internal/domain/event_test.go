package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkEvent(start, end time.Time) *Event {
	return &Event{
		ID:         "ev-1",
		CalendarID: "cal-1",
		Title:      "Standup",
		Start:      start,
		End:        end,
		Status:     EventConfirmed,
	}
}

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 10, hour, min, 0, 0, time.UTC)
}

func TestEventValidate(t *testing.T) {
	ev := mkEvent(at(9, 0), at(10, 0))
	require.NoError(t, ev.Validate())

	t.Run("missing title", func(t *testing.T) {
		bad := mkEvent(at(9, 0), at(10, 0))
		bad.Title = "  "
		assert.Error(t, bad.Validate())
	})

	t.Run("missing calendar", func(t *testing.T) {
		bad := mkEvent(at(9, 0), at(10, 0))
		bad.CalendarID = ""
		assert.Error(t, bad.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		bad := mkEvent(at(10, 0), at(9, 0))
		assert.Error(t, bad.Validate())
	})

	t.Run("zero duration allowed", func(t *testing.T) {
		ok := mkEvent(at(9, 0), at(9, 0))
		assert.NoError(t, ok.Validate())
	})

	t.Run("bad status", func(t *testing.T) {
		bad := mkEvent(at(9, 0), at(10, 0))
		bad.Status = "maybe"
		assert.Error(t, bad.Validate())
	})
}

func TestEventOverlaps_HalfOpen(t *testing.T) {
	a := mkEvent(at(9, 0), at(10, 0))
	b := mkEvent(at(10, 0), at(11, 0))
	c := mkEvent(at(9, 30), at(10, 30))

	assert.False(t, a.Overlaps(b), "back-to-back events must not overlap")
	assert.False(t, b.Overlaps(a))
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(b))
}

func TestEventOverlaps_ZeroDuration(t *testing.T) {
	point := mkEvent(at(9, 30), at(9, 30))
	covering := mkEvent(at(9, 0), at(10, 0))
	after := mkEvent(at(9, 30), at(10, 0))

	assert.True(t, point.Overlaps(covering), "instant inside interval overlaps")
	assert.True(t, covering.Overlaps(point))
	assert.False(t, point.Overlaps(after), "instant at another event's start does not overlap it")
}

func TestEventOnDay(t *testing.T) {
	ev := mkEvent(at(23, 0), at(23, 30).Add(time.Hour)) // 23:00 → 00:30 next day
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	assert.True(t, ev.OnDay(day))
	assert.True(t, ev.OnDay(next), "event spilling past midnight appears on both days")
	assert.False(t, ev.OnDay(day.AddDate(0, 0, 2)))
}
