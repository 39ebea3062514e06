package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jmertens/billsight/internal/cli"
	"github.com/jmertens/billsight/internal/config"
	"github.com/jmertens/billsight/internal/db"
	"github.com/jmertens/billsight/internal/importer"
	"github.com/jmertens/billsight/internal/repository"
	"github.com/jmertens/billsight/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	setupLogging()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// BILLSIGHT_DB overrides the configured path for one invocation.
	dbPath := os.Getenv("BILLSIGHT_DB")
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	recordRepo := repository.NewSQLiteRecordRepo(database)
	caseRepo := repository.NewSQLiteCaseRepo(database)

	identity := service.Identity{
		UserID:   cfg.Identity.UserID,
		Role:     cfg.Identity.Role,
		ReadOnly: cfg.Identity.ReadOnly,
		TeamIDs:  cfg.Identity.TeamIDs,
	}

	var observer service.UseCaseObserver
	if os.Getenv("BILLSIGHT_TRACE") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Reports:        service.NewReportService(recordRepo, caseRepo, identity, observer),
		Importer:       importer.New(recordRepo, caseRepo),
		DefaultGroupBy: cfg.Report.GroupBy,
		PageSize:       cfg.Report.PageSize,
	}

	return cli.NewRootCmd(app).Execute()
}

// setupLogging routes zerolog through a console writer on a terminal
// and keeps plain JSON otherwise. Ingest progress is the only chatty
// path; everything else stays at warn.
func setupLogging() {
	level := zerolog.InfoLevel
	if lv, err := zerolog.ParseLevel(os.Getenv("BILLSIGHT_LOG_LEVEL")); err == nil && lv != zerolog.NoLevel {
		level = lv
	}
	zerolog.SetGlobalLevel(level)

	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
