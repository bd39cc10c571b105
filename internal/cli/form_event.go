package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmerrell/atrium/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// startEventWizard chains two forms: calendar selection, then event
// details. The event lands on the day currently in focus.
func startEventWizard(state *SharedState) tea.Cmd {
	app := state.App
	calendarID := new(string)

	selectForm := wizardSelectCalendar(context.Background(), app, calendarID)
	if selectForm == nil {
		return formErrorFlash(errors.New("no calendars yet, create one with 'atrium cal add'"))
	}

	return startWizardCmd(state, "New Event", selectForm, func() tea.Cmd {
		return startEventDetailsWizard(state, *calendarID)
	})
}

func startEventDetailsWizard(state *SharedState, calendarID string) tea.Cmd {
	app := state.App
	loc := state.Location()

	title := new(string)
	date := new(string)
	start := new(string)
	end := new(string)
	location := new(string)

	*date = state.FocusDay.Format("2006-01-02")

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(title).
				Validate(validateRequired("title")),
			huh.NewInput().
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(date).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Start").
				Placeholder("HH:MM").
				Value(start).
				Validate(validateClock),
			huh.NewInput().
				Title("End").
				Placeholder("HH:MM").
				Value(end).
				Validate(validateClock),
			huh.NewInput().
				Title("Location").
				Value(location),
		),
	).WithTheme(atriumHuhTheme()).WithShowHelp(false)

	return startWizardCmd(state, "New Event", form, func() tea.Cmd {
		day, err := parseDay(*date, loc)
		if err != nil {
			return formErrorFlash(err)
		}
		startAt, err := parseInstant(day.Format("2006-01-02")+" "+*start, loc)
		if err != nil {
			return formErrorFlash(err)
		}
		endAt, err := parseInstant(day.Format("2006-01-02")+" "+*end, loc)
		if err != nil {
			return formErrorFlash(err)
		}
		// An end at or before the start means the event runs past
		// midnight into the next day.
		if !endAt.After(startAt) && *end != *start {
			endAt = endAt.AddDate(0, 0, 1)
		}

		e := &domain.Event{
			CalendarID: calendarID,
			Title:      *title,
			Location:   *location,
			Start:      startAt,
			End:        endAt,
			Status:     domain.EventConfirmed,
		}

		return func() tea.Msg {
			if err := app.Events.Create(context.Background(), e); err != nil {
				return statusFlashMsg{text: formErrorText(err)}
			}
			return statusFlashMsg{text: formSuccessText(fmt.Sprintf("Created event %s at %s",
				e.Title, e.Start.Format("15:04 Jan 2")))}
		}
	})
}
