package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"

	"github.com/pmerrell/atrium/internal/cli"
	"github.com/pmerrell/atrium/internal/config"
	"github.com/pmerrell/atrium/internal/db"
	"github.com/pmerrell/atrium/internal/feed"
	"github.com/pmerrell/atrium/internal/repository"
	"github.com/pmerrell/atrium/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local .env files can override ATRIUM_* variables during development.
	_ = godotenv.Load()

	// Determine DB path: env var or default ~/.atrium/atrium.db
	dbPath := os.Getenv("ATRIUM_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".atrium", "atrium.db")
	}

	// Determine config path: env var or default ~/.atrium/config.yaml
	cfgPath := os.Getenv("ATRIUM_CONFIG")
	if cfgPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		cfgPath = filepath.Join(home, ".atrium", "config.yaml")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	calendarRepo := repository.NewSQLiteCalendarRepo(database)
	eventRepo := repository.NewSQLiteEventRepo(database)
	folderRepo := repository.NewSQLiteFolderRepo(database)
	documentRepo := repository.NewSQLiteDocumentRepo(database)
	alertRepo := repository.NewSQLiteAlertRepo(database)

	// Wire unit of work for transactional feed imports
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire services
	eventSvc := service.NewEventService(eventRepo, calendarRepo, cfg)
	alertSvc := service.NewAlertService(alertRepo)
	documentSvc := service.NewDocumentService(folderRepo, documentRepo)

	var briefObservers []service.UseCaseObserver
	if os.Getenv("ATRIUM_LOG") != "" {
		briefObservers = append(briefObservers, service.NewLogUseCaseObserver(os.Stderr))
	}

	var syncObserver feed.Observer = feed.NoopObserver{}
	if os.Getenv("ATRIUM_LOG") != "" {
		syncObserver = feed.NewLogObserver(os.Stderr)
	}
	importer := feed.NewImporter(feed.NewFetcher(), uow, calendarRepo, syncObserver)

	app := &cli.App{
		Calendars: service.NewCalendarService(calendarRepo, eventRepo),
		Events:    eventSvc,
		Documents: documentSvc,
		Alerts:    alertSvc,
		Brief:     service.NewBriefService(eventSvc, alertSvc, documentSvc, cfg, briefObservers...),

		Importer: importer,
		Config:   cfg,
	}

	// Detect interactive terminal for the dashboard entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
