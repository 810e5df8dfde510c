package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/contrack/internal/cli"
	"github.com/alexanderramin/contrack/internal/config"
	"github.com/alexanderramin/contrack/internal/db"
	"github.com/alexanderramin/contrack/internal/repository"
	"github.com/alexanderramin/contrack/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr so they never mix with list --json output.
	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}).Level(cfg.Level()).With().Timestamp().Logger()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	opts := []service.TrackerOption{
		service.WithLogger(logger),
		service.WithTickInterval(cfg.TickInterval),
	}
	if cfg.LogCalls {
		opts = append(opts, service.WithObserver(service.NewLoggerUseCaseObserver(logger)))
	}

	repo := repository.NewKVHistoryRepo(repository.NewSQLiteKVStore(database), cfg.HistoryKey)
	tracker := service.NewTracker(context.Background(), repo, opts...)
	defer tracker.Close()

	app := &cli.App{
		Tracker: tracker,
		Config:  cfg,
		Now:     time.Now,
	}

	// A bare invocation opens the TUI only on a terminal.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
