package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/service"
)

func gridItem(title string, start, end time.Time, column, total int) service.GridItem {
	return service.GridItem{
		Event: &domain.Event{
			Title: title,
			Start: start,
			End:   end,
		},
		Column:       column,
		TotalColumns: total,
	}
}

func TestRenderDayGrid_LanesAndGutter(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h*60+m) * time.Minute) }

	grid := &service.DayGrid{
		Day: day,
		Items: []service.GridItem{
			gridItem("Standup", at(9, 0), at(10, 0), 0, 2),
			gridItem("Review", at(9, 30), at(10, 30), 1, 2),
		},
	}

	lines := renderDayGrid(grid, 9, 11, 14)
	require.Len(t, lines, 4, "two hours at half-hour resolution")

	assert.Contains(t, lines[0], "09:00")
	assert.Contains(t, lines[0], "Standup")
	assert.NotContains(t, lines[0], "Review", "review starts in the second slot")
	assert.Contains(t, lines[1], "Review")
	assert.Contains(t, lines[2], "10:00")
}

func TestRenderDayGrid_EmptyDay(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	lines := renderDayGrid(&service.DayGrid{Day: day}, 7, 9, 14)
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Contains(t, line, "·")
	}
}

func TestRenderDayGrid_ZeroDurationEvent(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	at := day.Add(9*time.Hour + 15*time.Minute)

	grid := &service.DayGrid{
		Day: day,
		Items: []service.GridItem{
			gridItem("Ping", at, at, 0, 1),
		},
	}

	lines := renderDayGrid(grid, 9, 10, 14)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Ping", "instant shows in its containing slot")
	assert.NotContains(t, lines[1], "Ping")
}

func TestLaneCount(t *testing.T) {
	day := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, laneCount(nil))
	assert.Equal(t, 3, laneCount([]service.GridItem{
		gridItem("a", day, day.Add(time.Hour), 0, 1),
		gridItem("b", day, day.Add(time.Hour), 2, 3),
	}))
}

func TestGridLaneWidth_Bounds(t *testing.T) {
	assert.Equal(t, 40, gridLaneWidth(200, 1), "capped for readability")
	assert.Equal(t, 36, gridLaneWidth(80, 2))
	assert.Equal(t, 12, gridLaneWidth(40, 4), "floor keeps titles legible")
	assert.Equal(t, 36, gridLaneWidth(0, 2), "zero width falls back to 80 cols")
}

func TestTruncateCell(t *testing.T) {
	assert.Equal(t, "Standup", truncateCell("Standup", 10))
	assert.Equal(t, "Planning…", truncateCell("Planning session", 9))
	assert.Equal(t, "", truncateCell("anything", 0))
}

func TestRenderSlotCell_ContinuationRule(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	items := []service.GridItem{
		gridItem("Workshop", day.Add(9*time.Hour), day.Add(11*time.Hour), 0, 1),
	}

	first := renderSlotCell(items, 0, day.Add(9*time.Hour), day.Add(9*time.Hour+30*time.Minute), 14)
	later := renderSlotCell(items, 0, day.Add(10*time.Hour), day.Add(10*time.Hour+30*time.Minute), 14)

	assert.Contains(t, first, "Workshop")
	assert.Contains(t, later, "▍")
	assert.NotContains(t, later, "Workshop")

	otherLane := renderSlotCell(items, 1, day.Add(9*time.Hour), day.Add(9*time.Hour+30*time.Minute), 14)
	assert.True(t, strings.Contains(otherLane, "·"))
}
