package cli

import (
	"github.com/pmerrell/atrium/internal/config"
	"github.com/pmerrell/atrium/internal/feed"
	"github.com/pmerrell/atrium/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Calendars service.CalendarService
	Events    service.EventService
	Documents service.DocumentService
	Alerts    service.AlertService
	Brief     service.BriefService

	Importer *feed.Importer
	Config   *config.Config

	// IsInteractive reports whether stdin is a terminal. When true and no
	// subcommand is given, the root command opens the dashboard TUI.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "atrium" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "atrium",
		Short: "Personal dashboard: calendars, notes, and alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runDashboard(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newAgendaCmd(app),
		newWeekCmd(app),
		newBriefCmd(app),
		newEventCmd(app),
		newCalendarCmd(app),
		newDocCmd(app),
		newAlertCmd(app),
		newSyncCmd(app),
		newDashboardCmd(app),
	)

	return root
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(app)
		},
	}
}
