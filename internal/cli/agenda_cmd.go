package cli

import (
	"context"
	"fmt"

	"github.com/pmerrell/atrium/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAgendaCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show the agenda for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			day, err := parseDay(date, app.Config.Location())
			if err != nil {
				return err
			}

			grid, err := app.Events.DayGrid(ctx, day)
			if err != nil {
				return err
			}
			calendars, err := calendarsByID(ctx, app)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatDayAgenda(grid, calendars))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD, default today)")

	return cmd
}

func newWeekCmd(app *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the agenda for a week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			day, err := parseDay(date, app.Config.Location())
			if err != nil {
				return err
			}

			week, err := app.Events.WeekGrid(ctx, day)
			if err != nil {
				return err
			}
			calendars, err := calendarsByID(ctx, app)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatWeekAgenda(week, calendars))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any day in the week to show (YYYY-MM-DD, default today)")

	return cmd
}
