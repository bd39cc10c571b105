package cli

import (
	"context"
	"fmt"

	"github.com/pmerrell/atrium/internal/cli/formatter"
	"github.com/pmerrell/atrium/internal/domain"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cal",
		Short: "Manage calendars",
	}

	cmd.AddCommand(
		newCalendarAddCmd(app),
		newCalendarListCmd(app),
		newCalendarUpdateCmd(app),
		newCalendarRemoveCmd(app),
	)

	return cmd
}

func newCalendarAddCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a manual calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Calendar{
				Name:   name,
				Color:  color,
				Source: domain.SourceManual,
			}
			if err := app.Calendars.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Printf("Created calendar %s [%s]\n", c.Name, formatter.TruncID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Calendar name")
	cmd.Flags().StringVar(&color, "color", "", "Display color (green|yellow|red|blue|purple|aqua)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newCalendarListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List calendars",
		RunE: func(cmd *cobra.Command, args []string) error {
			calendars, err := app.Calendars.List(context.Background())
			if err != nil {
				return err
			}
			if len(calendars) == 0 {
				fmt.Println("No calendars found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatCalendarList(calendars))
			return nil
		},
	}
}

func newCalendarUpdateCmd(app *App) *cobra.Command {
	var name, color string

	cmd := &cobra.Command{
		Use:   "update NAME",
		Short: "Update a calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveCalendar(ctx, app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				c.Name = name
			}
			if cmd.Flags().Changed("color") {
				c.Color = color
			}

			if err := app.Calendars.Update(ctx, c); err != nil {
				return err
			}
			fmt.Printf("Updated calendar %s [%s]\n", c.Name, formatter.TruncID(c.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Calendar name")
	cmd.Flags().StringVar(&color, "color", "", "Display color (green|yellow|red|blue|purple|aqua)")

	return cmd
}

func newCalendarRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a calendar and its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			c, err := resolveCalendar(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Calendars.Delete(ctx, c.ID); err != nil {
				return err
			}
			fmt.Printf("Removed calendar %s\n", c.Name)
			return nil
		},
	}
}
