package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/pmerrell/atrium/internal/cli/formatter"
	"github.com/pmerrell/atrium/internal/domain"
	"github.com/spf13/cobra"
)

func newAlertCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alert",
		Short: "Manage alerts",
	}

	cmd.AddCommand(
		newAlertAddCmd(app),
		newAlertListCmd(app),
		newAlertDueCmd(app),
		newAlertAckCmd(app),
		newAlertRemoveCmd(app),
	)

	return cmd
}

func newAlertAddCmd(app *App) *cobra.Command {
	var title, message, level, due, schedule string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an alert",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := &domain.Alert{
				Title:    title,
				Message:  message,
				Level:    domain.AlertLevel(level),
				Schedule: schedule,
			}

			if due != "" {
				at, err := parseInstant(due, app.Config.Location())
				if err != nil {
					return err
				}
				a.DueAt = &at
			}

			if err := app.Alerts.Create(context.Background(), a); err != nil {
				return err
			}
			fmt.Printf("Created alert %s [%s]\n", a.Title, formatter.TruncID(a.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Alert title")
	cmd.Flags().StringVar(&message, "message", "", "Alert message")
	cmd.Flags().StringVar(&level, "level", "info", "Alert level (info|warn|urgent)")
	cmd.Flags().StringVar(&due, "due", "", "One-shot due time (YYYY-MM-DD HH:MM)")
	cmd.Flags().StringVar(&schedule, "cron", "", "Recurring schedule (five-field cron)")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newAlertListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			alerts, err := app.Alerts.List(context.Background())
			if err != nil {
				return err
			}
			if len(alerts) == 0 {
				fmt.Println("No alerts found.")
				return nil
			}
			now := time.Now().In(app.Config.Location())
			fmt.Printf("%s\n", formatter.FormatAlertList(alerts, now))
			return nil
		},
	}
}

func newAlertDueCmd(app *App) *cobra.Command {
	var within time.Duration

	cmd := &cobra.Command{
		Use:   "due",
		Short: "Show due and upcoming alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now().In(app.Config.Location())

			due, err := app.Alerts.Due(ctx, now)
			if err != nil {
				return err
			}
			upcoming, err := app.Alerts.Upcoming(ctx, now, within)
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatDueAlerts(due, upcoming))
			return nil
		},
	}

	cmd.Flags().DurationVar(&within, "within", 24*time.Hour, "Upcoming window (e.g. 4h, 48h)")

	return cmd
}

func newAlertAckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "ack ID",
		Short: "Acknowledge an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveAlertID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Alerts.Ack(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Acknowledged alert %s\n", formatter.TruncID(id))
			return nil
		},
	}
}

func newAlertRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveAlertID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Alerts.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Removed alert %s\n", formatter.TruncID(id))
			return nil
		},
	}
}
