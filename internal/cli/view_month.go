package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pmerrell/atrium/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ── messages ─────────────────────────────────────────────────────────────────

// monthLoadedMsg signals that the visible month's events have been loaded.
type monthLoadedMsg struct {
	counts map[string]int // day key "2006-01-02" -> event count
	err    error
}

// ── view ─────────────────────────────────────────────────────────────────────

// monthView is a month-at-a-glance calendar with per-day event counts.
type monthView struct {
	state   *SharedState
	counts  map[string]int
	loading bool
	err     error
}

func newMonthView(state *SharedState) *monthView {
	return &monthView{
		state:   state,
		loading: true,
	}
}

func (v *monthView) ID() ViewID    { return ViewMonth }
func (v *monthView) Title() string { return "Month" }

func (v *monthView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("arrows"), key.WithHelp("↑↓←→", "move")),
		key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "month")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open day")),
		key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	}
}

func (v *monthView) Init() tea.Cmd {
	return v.loadData()
}

func (v *monthView) loadData() tea.Cmd {
	app := v.state.App
	weeks := monthMatrix(v.state.FocusDay, app.Config.WeekStart)
	from := weeks[0][0]
	to := weeks[len(weeks)-1][6].AddDate(0, 0, 1)

	return func() tea.Msg {
		events, err := app.Events.ListBetween(context.Background(), from, to)
		if err != nil {
			return monthLoadedMsg{err: err}
		}

		counts := make(map[string]int)
		for _, ev := range events {
			for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
				if ev.OnDay(day) {
					counts[day.Format("2006-01-02")]++
				}
			}
		}
		return monthLoadedMsg{counts: counts}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *monthView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case monthLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.counts = msg.counts
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		move := func(days int) (tea.Model, tea.Cmd) {
			prev := v.state.FocusDay
			v.state.FocusDay = prev.AddDate(0, 0, days)
			if v.state.FocusDay.Month() != prev.Month() {
				v.loading = true
				return v, v.loadData()
			}
			return v, nil
		}

		switch msg.String() {
		case "left":
			return move(-1)
		case "right":
			return move(1)
		case "up":
			return move(-7)
		case "down":
			return move(7)
		case "pgup":
			v.state.FocusDay = v.state.FocusDay.AddDate(0, -1, 0)
			v.loading = true
			return v, v.loadData()
		case "pgdown":
			v.state.FocusDay = v.state.FocusDay.AddDate(0, 1, 0)
			v.loading = true
			return v, v.loadData()
		case "t":
			v.state.FocusDay = v.state.Today()
			v.loading = true
			return v, v.loadData()
		case "enter":
			return v, replaceView(newCommandCenterView(v.state))
		}
	}

	return v, nil
}

// ── view rendering ───────────────────────────────────────────────────────────

func (v *monthView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}

	focus := v.state.FocusDay
	today := v.state.Today()
	weeks := monthMatrix(focus, v.state.App.Config.WeekStart)

	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleBold.Render(focus.Format("January 2006")) + "\n\n")

	b.WriteString("  ")
	for _, day := range weeks[0] {
		b.WriteString(formatter.Dim(fmt.Sprintf("%-5s", day.Format("Mon")[:2])))
	}
	b.WriteString("\n")

	for _, week := range weeks {
		b.WriteString("  ")
		for _, day := range week {
			b.WriteString(v.renderDayCell(day, focus, today))
		}
		b.WriteString("\n")
	}

	dayKey := focus.Format("2006-01-02")
	if n := v.counts[dayKey]; n > 0 {
		b.WriteString("\n  " + formatter.Dim(fmt.Sprintf("%d events on %s", n, formatter.HumanDate(focus))) + "\n")
	}

	return b.String()
}

// renderDayCell renders one 5-cell day: day number plus an event marker.
func (v *monthView) renderDayCell(day, focus, today time.Time) string {
	num := fmt.Sprintf("%2d", day.Day())

	marker := " "
	if v.counts[day.Format("2006-01-02")] > 0 {
		marker = formatter.StyleAqua.Render("•")
	}

	sameDay := func(a, b time.Time) bool {
		return a.Year() == b.Year() && a.YearDay() == b.YearDay()
	}

	switch {
	case sameDay(day, focus):
		return formatter.StyleHeader.Render(num) + marker + "  "
	case sameDay(day, today):
		return formatter.StyleGreen.Render(num) + marker + "  "
	case day.Month() != focus.Month():
		return formatter.Dim(num) + marker + "  "
	default:
		return formatter.StyleFg.Render(num) + marker + "  "
	}
}

// monthMatrix returns the weeks covering the month of day, each week a
// row of seven midnights starting on the configured week-start day.
// Leading and trailing cells spill into the adjacent months.
func monthMatrix(day time.Time, weekStartDay string) [][7]time.Time {
	loc := day.Location()
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, loc)

	startWeekday := time.Monday
	if weekStartDay == "sunday" {
		startWeekday = time.Sunday
	}

	cur := first
	for cur.Weekday() != startWeekday {
		cur = cur.AddDate(0, 0, -1)
	}

	var weeks [][7]time.Time
	for {
		var week [7]time.Time
		for i := 0; i < 7; i++ {
			week[i] = cur
			cur = cur.AddDate(0, 0, 1)
		}
		weeks = append(weeks, week)
		if cur.Month() != day.Month() && cur.After(first) {
			break
		}
	}
	return weeks
}
