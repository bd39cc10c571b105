package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pmerrell/atrium/internal/cli/formatter"
	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ── messages ─────────────────────────────────────────────────────────────────

// dayGridLoadedMsg signals that the focused day's grid has been loaded.
type dayGridLoadedMsg struct {
	grid      *service.DayGrid
	calendars map[string]*domain.Calendar
	err       error
}

// ── view ─────────────────────────────────────────────────────────────────────

// commandCenterView renders one day as a time grid. Overlapping events are
// laid out in side-by-side lanes so collisions stay readable.
type commandCenterView struct {
	state   *SharedState
	grid    *service.DayGrid
	cals    map[string]*domain.Calendar
	loading bool
	err     error
}

func newCommandCenterView(state *SharedState) *commandCenterView {
	return &commandCenterView{
		state:   state,
		loading: true,
	}
}

func (v *commandCenterView) ID() ViewID    { return ViewCommandCenter }
func (v *commandCenterView) Title() string { return "Day" }

func (v *commandCenterView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "day")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "new event")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
}

func (v *commandCenterView) Init() tea.Cmd {
	return v.loadData()
}

func (v *commandCenterView) loadData() tea.Cmd {
	app := v.state.App
	day := v.state.FocusDay
	return func() tea.Msg {
		ctx := context.Background()

		grid, err := app.Events.DayGrid(ctx, day)
		if err != nil {
			return dayGridLoadedMsg{err: err}
		}
		calendars, err := calendarsByID(ctx, app)
		if err != nil {
			return dayGridLoadedMsg{err: err}
		}
		return dayGridLoadedMsg{grid: grid, calendars: calendars}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *commandCenterView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dayGridLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.grid = msg.grid
		v.cals = msg.calendars
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			v.state.FocusDay = v.state.FocusDay.AddDate(0, 0, -1)
			v.loading = true
			return v, v.loadData()
		case "right", "l":
			v.state.FocusDay = v.state.FocusDay.AddDate(0, 0, 1)
			v.loading = true
			return v, v.loadData()
		case "t":
			v.state.FocusDay = v.state.Today()
			v.loading = true
			return v, v.loadData()
		case "m":
			return v, replaceView(newMonthView(v.state))
		case "e":
			return v, startEventWizard(v.state)
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *commandCenterView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if v.grid == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleBold.Render(formatter.DayHeading(v.grid.Day)) + "\n\n")

	for _, ev := range v.grid.AllDay {
		dot := formatter.CalendarDot("")
		if cal, ok := v.cals[ev.CalendarID]; ok {
			dot = formatter.CalendarDot(cal.Color)
		}
		b.WriteString("  " + dot + " " + formatter.Bold(ev.Title) + formatter.Dim(" — all day") + "\n")
	}
	if len(v.grid.AllDay) > 0 {
		b.WriteString("\n")
	}

	cfg := v.state.App.Config
	laneWidth := gridLaneWidth(v.state.Width, laneCount(v.grid.Items))
	for _, line := range renderDayGrid(v.grid, cfg.DayStartHour, cfg.DayEndHour, laneWidth) {
		b.WriteString("  " + line + "\n")
	}

	return b.String()
}

// gridSlotMinutes is the vertical resolution of the day grid.
const gridSlotMinutes = 30

// laneCount returns the widest collision group in the day's items.
func laneCount(items []service.GridItem) int {
	lanes := 1
	for _, item := range items {
		if item.TotalColumns > lanes {
			lanes = item.TotalColumns
		}
	}
	return lanes
}

// gridLaneWidth splits the available width (minus the 6-cell time gutter
// and the two-cell left margin) evenly across lanes.
func gridLaneWidth(termWidth, lanes int) int {
	if termWidth <= 0 {
		termWidth = 80
	}
	w := (termWidth - 8) / lanes
	if w < 12 {
		w = 12
	}
	if w > 40 {
		w = 40
	}
	return w
}

// renderDayGrid renders the timed portion of a day grid as rows of
// half-hour slots. Each event occupies its assigned lane: the slot where
// it starts shows its title, later covered slots show a continuation rule.
func renderDayGrid(grid *service.DayGrid, startHour, endHour, laneWidth int) []string {
	lanes := laneCount(grid.Items)
	day := grid.Day

	var lines []string
	for minute := startHour * 60; minute < endHour*60; minute += gridSlotMinutes {
		slotStart := day.Add(time.Duration(minute) * time.Minute)
		slotEnd := day.Add(time.Duration(minute+gridSlotMinutes) * time.Minute)

		gutter := "     "
		if minute%60 == 0 {
			gutter = fmt.Sprintf("%02d:00", minute/60)
		}

		cells := make([]string, lanes)
		for lane := 0; lane < lanes; lane++ {
			cells[lane] = renderSlotCell(grid.Items, lane, slotStart, slotEnd, laneWidth)
		}

		lines = append(lines, formatter.Dim(gutter)+" "+strings.Join(cells, " "))
	}
	return lines
}

// inSlot reports whether the event occupies the half-open slot. A
// zero-duration event occupies the slot containing its instant.
func inSlot(ev *domain.Event, slotStart, slotEnd time.Time) bool {
	if ev.Start.Equal(ev.End) {
		return !ev.Start.Before(slotStart) && ev.Start.Before(slotEnd)
	}
	return ev.Start.Before(slotEnd) && slotStart.Before(ev.End)
}

// renderSlotCell renders one lane's cell for a slot.
func renderSlotCell(items []service.GridItem, lane int, slotStart, slotEnd time.Time, width int) string {
	for _, item := range items {
		if item.Column != lane || !inSlot(item.Event, slotStart, slotEnd) {
			continue
		}
		ev := item.Event
		if !ev.Start.Before(slotStart) {
			// Event starts in this slot: show its title.
			label := truncateCell(ev.Title, width-1)
			pad := width - 1 - len([]rune(label))
			return formatter.StyleGreen.Render("▍") + formatter.Bold(label) + strings.Repeat(" ", max(0, pad))
		}
		return formatter.StyleGreen.Render("▍") + strings.Repeat(" ", width-1)
	}
	return formatter.Dim("·") + strings.Repeat(" ", width-1)
}

// truncateCell shortens s to fit in width runes.
func truncateCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-1]) + "…"
}
