package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pmerrell/atrium/internal/cli/formatter"
	"github.com/pmerrell/atrium/internal/domain"
	"github.com/spf13/cobra"
)

// resolveEventID matches an event ID prefix against events within a year
// around today. Truncated IDs come from the agenda listings.
func resolveEventID(ctx context.Context, app *App, input string) (string, error) {
	now := time.Now().In(app.Config.Location())
	events, err := app.Events.ListBetween(ctx, now.AddDate(0, 0, -90), now.AddDate(1, 0, 0))
	if err != nil {
		return "", err
	}
	ids := make([]string, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	return resolveID("event", input, ids)
}

func newEventCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage events",
	}

	cmd.AddCommand(
		newEventAddCmd(app),
		newEventShowCmd(app),
		newEventUpdateCmd(app),
		newEventRemoveCmd(app),
	)

	return cmd
}

func newEventAddCmd(app *App) *cobra.Command {
	var title, calendar, start, end, date, location, notes string
	var allDay bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			loc := app.Config.Location()

			cal, err := resolveCalendar(ctx, app, calendar)
			if err != nil {
				return err
			}

			e := &domain.Event{
				CalendarID: cal.ID,
				Title:      title,
				Location:   location,
				Notes:      notes,
				Status:     domain.EventConfirmed,
			}

			if allDay {
				day, err := parseDay(date, loc)
				if err != nil {
					return err
				}
				e.AllDay = true
				e.Start = day
				e.End = day.AddDate(0, 0, 1)
			} else {
				if start == "" || end == "" {
					return fmt.Errorf("--start and --end are required for timed events")
				}
				e.Start, err = parseInstant(start, loc)
				if err != nil {
					return err
				}
				e.End, err = parseInstant(end, loc)
				if err != nil {
					return err
				}
			}

			if err := app.Events.Create(ctx, e); err != nil {
				return err
			}

			fmt.Printf("Created event %s [%s]\n", e.Title, formatter.TruncID(e.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().StringVar(&calendar, "calendar", "", "Calendar name or ID")
	cmd.Flags().StringVar(&start, "start", "", "Start time (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&date, "date", "", "Day for --all-day events (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&allDay, "all-day", false, "Create an all-day event")
	cmd.Flags().StringVar(&location, "location", "", "Event location")
	cmd.Flags().StringVar(&notes, "notes", "", "Event notes")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("calendar")

	return cmd
}

func newEventShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show event details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Events.GetByID(ctx, id)
			if err != nil {
				return err
			}
			calendars, err := calendarsByID(ctx, app)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatEvent(e, calendars[e.CalendarID]))
			return nil
		},
	}
}

func newEventUpdateCmd(app *App) *cobra.Command {
	var title, start, end, location, notes, status string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			loc := app.Config.Location()

			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			e, err := app.Events.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				e.Title = title
			}
			if cmd.Flags().Changed("start") {
				if e.Start, err = parseInstant(start, loc); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("end") {
				if e.End, err = parseInstant(end, loc); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("location") {
				e.Location = location
			}
			if cmd.Flags().Changed("notes") {
				e.Notes = notes
			}
			if cmd.Flags().Changed("status") {
				e.Status = domain.EventStatus(status)
			}

			if err := app.Events.Update(ctx, e); err != nil {
				return err
			}

			fmt.Printf("Updated event %s [%s]\n", e.Title, formatter.TruncID(e.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Event title")
	cmd.Flags().StringVar(&start, "start", "", "Start time (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&end, "end", "", "End time (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&location, "location", "", "Event location")
	cmd.Flags().StringVar(&notes, "notes", "", "Event notes")
	cmd.Flags().StringVar(&status, "status", "", "Event status (confirmed|tentative|cancelled)")

	return cmd
}

func newEventRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveEventID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Events.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed event %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
