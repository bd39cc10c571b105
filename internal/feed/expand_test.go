package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utcWindow() ExpandConfig {
	return ExpandConfig{
		Location:   time.UTC,
		RangeStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		RangeEnd:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestExpand_SingleEventInsideWindow(t *testing.T) {
	ev := ParsedEvent{
		UID:     "one@example.com",
		Summary: "One-off",
		Start:   time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		End:     time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
	}

	occs, err := Expand([]ParsedEvent{ev}, utcWindow())
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, "one@example.com", occs[0].UID)
	assert.Equal(t, ev.Start.Format(time.RFC3339Nano), occs[0].InstanceKey)
	assert.True(t, occs[0].End.Equal(ev.End))
}

func TestExpand_SingleEventOutsideWindow(t *testing.T) {
	ev := ParsedEvent{
		UID:   "later@example.com",
		Start: time.Date(2025, 8, 1, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC),
	}

	occs, err := Expand([]ParsedEvent{ev}, utcWindow())
	require.NoError(t, err)
	assert.Empty(t, occs)
}

func TestExpand_DailyRuleWithExDate(t *testing.T) {
	ev := ParsedEvent{
		UID:      "daily@example.com",
		Summary:  "Morning run",
		Start:    time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 10, 7, 30, 0, 0, time.UTC),
		RawRRule: "FREQ=DAILY;COUNT=5",
		ExDates:  []time.Time{time.Date(2025, 6, 11, 7, 0, 0, 0, time.UTC)},
	}

	occs, err := Expand([]ParsedEvent{ev}, utcWindow())
	require.NoError(t, err)
	require.Len(t, occs, 4)

	for _, occ := range occs {
		assert.NotEqual(t, 11, occ.Start.Day(), "excluded date must not appear")
		assert.Equal(t, 30*time.Minute, occ.End.Sub(occ.Start))
	}
}

func TestExpand_OverrideReplacesInstance(t *testing.T) {
	rid := time.Date(2025, 6, 12, 7, 0, 0, 0, time.UTC)
	base := ParsedEvent{
		UID:      "daily@example.com",
		Summary:  "Morning run",
		Start:    time.Date(2025, 6, 10, 7, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 10, 7, 30, 0, 0, time.UTC),
		RawRRule: "FREQ=DAILY;COUNT=3",
	}
	override := ParsedEvent{
		UID:          "daily@example.com",
		Summary:      "Morning run (moved)",
		Start:        time.Date(2025, 6, 12, 18, 0, 0, 0, time.UTC),
		End:          time.Date(2025, 6, 12, 18, 30, 0, 0, time.UTC),
		RecurrenceID: &rid,
		IsOverride:   true,
	}

	occs, err := Expand([]ParsedEvent{base, override}, utcWindow())
	require.NoError(t, err)
	require.Len(t, occs, 3)

	var moved int
	for _, occ := range occs {
		if occ.Summary == "Morning run (moved)" {
			moved++
			assert.Equal(t, 18, occ.Start.Hour())
		}
	}
	assert.Equal(t, 1, moved)
}

func TestExpand_AllDayRecurring(t *testing.T) {
	ev := ParsedEvent{
		UID:      "chore@example.com",
		Summary:  "Bins out",
		AllDay:   true,
		Start:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		RawRRule: "FREQ=WEEKLY;COUNT=4",
	}

	occs, err := Expand([]ParsedEvent{ev}, utcWindow())
	require.NoError(t, err)
	require.Len(t, occs, 4)
	for _, occ := range occs {
		assert.True(t, occ.AllDay)
		assert.Equal(t, 24*time.Hour, occ.End.Sub(occ.Start))
		assert.Equal(t, 0, occ.Start.Hour())
	}
}

func TestExpand_UnparseableRuleFallsBackToBase(t *testing.T) {
	ev := ParsedEvent{
		UID:      "broken@example.com",
		Summary:  "Odd rule",
		Start:    time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
		RawRRule: "FREQ=SOMETIMES",
	}

	occs, err := Expand([]ParsedEvent{ev}, utcWindow())
	require.NoError(t, err)
	require.Len(t, occs, 1)
}

func TestExpand_InvertedRangeRejected(t *testing.T) {
	cfg := utcWindow()
	cfg.RangeStart, cfg.RangeEnd = cfg.RangeEnd, cfg.RangeStart

	_, err := Expand(nil, cfg)
	assert.Error(t, err)
}
