package main

import (
	"context"
	"database/sql"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/tubecli/internal/repositories"
	"github.com/desertthunder/tubecli/internal/session"
	"github.com/desertthunder/tubecli/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := godotenv.Load(); err == nil {
		logger.Debug("loaded .env overlay")
	}
	if os.Getenv("TUBE_DEBUG") != "" {
		shared.SetLogLevel(logger, log.DebugLevel)
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	// the local store is optional: without it sessions live only in memory
	var db *sql.DB
	var store session.Store
	if opened, err := shared.NewDatabase(config.Database.Path); err != nil {
		logger.Warn("local database unavailable", "error", err)
	} else if err := shared.RunMigrations(opened); err != nil {
		logger.Warn("failed to run migrations", "error", err)
		opened.Close()
	} else {
		shared.ConfigureDatabase(opened, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		db = opened
		store = repositories.NewSessionRepository(db)
	}

	sessions := session.NewManager(store, logger)
	if err := sessions.Load(); err != nil {
		logger.Warn("failed to restore session", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:   config,
		Sessions: sessions,
		DB:       db,
		Logger:   logger,
	})

	app := &cli.Command{
		Name:     "tubecli",
		Usage:    "Watch, comment on, and manage Tube videos from the terminal",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
