package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/saeidalz13/battleship-tracker/api"
	"github.com/saeidalz13/battleship-tracker/db"
	"github.com/saeidalz13/battleship-tracker/internal/config"
	mc "github.com/saeidalz13/battleship-tracker/models/connection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("main", "err", err)
	}
	log.SetLevel(cfg.LogLevel)
	log.SetReportTimestamp(true)

	opts := []api.Option{
		api.WithPort(cfg.Port),
		api.WithStage(cfg.Stage),
		api.WithMatchDefaults(cfg.MatchDefaults),
		api.WithAllowedOrigins(cfg.AllowedOrigins...),
		api.WithSessionManager(mc.NewBattleshipSessionManager(cfg.SessionCleanupInterval, cfg.SessionGracePeriod)),
	}

	// analytics are optional; without a database the server still runs
	if cfg.DatabaseUrl != "" {
		database := db.MustConnectToDb(cfg.DatabaseUrl, db.DefaultMigrationDir)
		defer database.Close()
		opts = append(opts, api.WithDb(database))
	} else {
		log.Warn("main", "msg", "DATABASE_URL not set, analytics disabled")
	}

	server, err := api.NewServer(opts...)
	if err != nil {
		log.Fatal("main", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx); err != nil {
		log.Error("main", "err", err)
		os.Exit(1)
	}
}
