package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmerrell/atrium/internal/cli/formatter"
	"github.com/pmerrell/atrium/internal/domain"
	"github.com/pmerrell/atrium/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── messages ─────────────────────────────────────────────────────────────────

// dashboardLoadedMsg signals that the daily brief has been loaded.
type dashboardLoadedMsg struct {
	brief     *service.Brief
	calendars map[string]*domain.Calendar
	err       error
}

// syncDoneMsg signals that a feed sync finished.
type syncDoneMsg struct {
	imported int
	feeds    int
	err      error
}

// ── view ─────────────────────────────────────────────────────────────────────

// dashboardView is the home screen of the TUI: the daily brief rendered as
// a split pane, schedule on the left, alerts and notes on the right.
type dashboardView struct {
	state   *SharedState
	brief   *service.Brief
	cals    map[string]*domain.Calendar
	loading bool
	syncing bool
	err     error
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{
		state:   state,
		loading: true,
	}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Brief" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "day")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "docs")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "new event")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "ack alerts")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

// ── data loading ─────────────────────────────────────────────────────────────

func (v *dashboardView) loadData() tea.Cmd {
	app := v.state.App
	now := v.state.Today()
	return func() tea.Msg {
		ctx := context.Background()

		brief, err := app.Brief.Generate(ctx, now)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}
		calendars, err := calendarsByID(ctx, app)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		return dashboardLoadedMsg{brief: brief, calendars: calendars}
	}
}

func (v *dashboardView) syncFeeds() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		results, err := app.Importer.SyncAll(context.Background(), app.Config)
		total := 0
		for _, r := range results {
			total += r.Imported
		}
		return syncDoneMsg{imported: total, feeds: len(results), err: err}
	}
}

// ── update ───────────────────────────────────────────────────────────────────

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.err = msg.err
			return v, nil
		}
		v.err = nil
		v.brief = msg.brief
		v.cals = msg.calendars
		return v, nil

	case syncDoneMsg:
		v.syncing = false
		if msg.err != nil {
			return v, flashStatus(formatter.StyleRed.Render("Sync failed: " + msg.err.Error()))
		}
		flash := flashStatus(formatter.StyleGreen.Render(
			fmt.Sprintf("Synced %d feeds, %d occurrences", msg.feeds, msg.imported)))
		return v, tea.Batch(flash, v.loadData())

	case refreshViewMsg:
		v.state.FocusDay = v.state.Today()
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "c", "enter":
			v.state.FocusDay = v.state.Today()
			return v, pushView(newCommandCenterView(v.state))
		case "m":
			v.state.FocusDay = v.state.Today()
			return v, pushView(newMonthView(v.state))
		case "d":
			return v, pushView(newDocumentsView(v.state))
		case "e":
			return v, startEventWizard(v.state)
		case "a":
			return v, v.ackAllDue()
		case "s":
			if v.syncing {
				return v, nil
			}
			v.syncing = true
			return v, v.syncFeeds()
		case "r":
			v.loading = true
			return v, v.loadData()
		}
	}

	return v, nil
}

// ackAllDue acknowledges every currently due alert and reloads.
func (v *dashboardView) ackAllDue() tea.Cmd {
	if v.brief == nil || len(v.brief.DueAlerts) == 0 {
		return nil
	}
	app := v.state.App
	ids := make([]string, len(v.brief.DueAlerts))
	for i, a := range v.brief.DueAlerts {
		ids[i] = a.ID
	}
	return func() tea.Msg {
		ctx := context.Background()
		for _, id := range ids {
			if err := app.Alerts.Ack(ctx, id); err != nil {
				return dashboardLoadedMsg{err: err}
			}
		}
		return refreshViewMsg{}
	}
}

// ── view rendering ───────────────────────────────────────────────────────────

const dashLeftPaneWidth = 46

func (v *dashboardView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+v.err.Error())
	}
	if v.brief == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + formatter.StyleBold.Render(formatter.DayHeading(v.brief.Day)))
	if v.syncing {
		b.WriteString("  " + formatter.Dim("syncing..."))
	}
	b.WriteString("\n\n")

	leftPane := v.renderSchedulePane()
	rightPane := v.renderAttentionPane()

	// Split pane only when the terminal is wide enough.
	if v.state.Width < 80 {
		b.WriteString(leftPane)
		b.WriteString("\n")
		b.WriteString(rightPane)
		return b.String()
	}

	rightWidth := v.state.Width - dashLeftPaneWidth - 3
	if rightWidth < 20 {
		rightWidth = 20
	}

	leftCol := lipgloss.NewStyle().Width(dashLeftPaneWidth).Render(leftPane)
	divider := lipgloss.NewStyle().
		Foreground(formatter.ColorDim).
		Render("│")
	rightCol := lipgloss.NewStyle().Width(rightWidth).Render(rightPane)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, leftCol, " "+divider+" ", rightCol))

	return b.String()
}

// ── left pane: today's schedule ──────────────────────────────────────────────

func (v *dashboardView) renderSchedulePane() string {
	var b strings.Builder
	b.WriteString(formatter.StyleHeader.Render("SCHEDULE") + "\n\n")

	brief := v.brief

	for _, ev := range brief.AllDay {
		b.WriteString(v.calDot(ev) + " " + formatter.Bold(ev.Title) + formatter.Dim(" — all day") + "\n")
	}
	if len(brief.AllDay) > 0 {
		b.WriteString("\n")
	}

	if len(brief.Events) == 0 {
		b.WriteString(formatter.Dim("Nothing scheduled today.") + "\n")
	}
	for _, item := range brief.Events {
		ev := item.Event
		line := formatter.StyleFg.Render(formatter.ClockRange(ev.Start, ev.End)) + "  " + formatter.Bold(ev.Title)
		if item.TotalColumns > 1 {
			line += " " + formatter.Dim(fmt.Sprintf("%d/%d", item.Column+1, item.TotalColumns))
		}
		b.WriteString(line + "\n")
	}

	// Free-time summary for the working hours.
	if len(brief.Free) > 0 {
		next := brief.Free[0]
		b.WriteString("\n" + formatter.Dim("Next free ") +
			formatter.StyleGreen.Render(formatter.ClockRange(next.Start, next.End)) + "\n")
	}

	return b.String()
}

// ── right pane: alerts and notes ─────────────────────────────────────────────

func (v *dashboardView) renderAttentionPane() string {
	var b strings.Builder
	brief := v.brief

	b.WriteString(formatter.StyleHeader.Render("ALERTS") + "\n\n")
	if len(brief.DueAlerts) == 0 && len(brief.Upcoming) == 0 {
		b.WriteString(formatter.Dim("All clear.") + "\n")
	}
	for _, a := range brief.DueAlerts {
		b.WriteString(formatter.LevelIndicator(a.Level) + "  " + formatter.Bold(a.Title) + "\n")
		if a.Message != "" {
			b.WriteString("  " + formatter.Dim(a.Message) + "\n")
		}
	}
	for _, ua := range brief.Upcoming {
		b.WriteString(formatter.Dim(ua.At.Format("15:04")) + "  " + formatter.StyleFg.Render(ua.Alert.Title) + "\n")
	}

	if len(brief.Pinned) > 0 {
		b.WriteString("\n" + formatter.StyleHeader.Render("PINNED") + "\n\n")
		for _, d := range brief.Pinned {
			b.WriteString("📌 " + formatter.StyleFg.Render(d.Title) + "\n")
		}
	}

	if len(brief.Recent) > 0 {
		b.WriteString("\n" + formatter.StyleHeader.Render("RECENT") + "\n\n")
		for _, d := range brief.Recent {
			b.WriteString(formatter.Dim("· ") + formatter.StyleFg.Render(d.Title) + "\n")
		}
	}

	return b.String()
}

func (v *dashboardView) calDot(ev *domain.Event) string {
	if cal, ok := v.cals[ev.CalendarID]; ok {
		return formatter.CalendarDot(cal.Color)
	}
	return formatter.CalendarDot("")
}
