package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	_ "time/tzdata"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/habitpair/cliparse"
	"github.com/danielhkuo/habitpair/db"
	"github.com/danielhkuo/habitpair/metrics"
	"github.com/danielhkuo/habitpair/pwa"
	"github.com/danielhkuo/habitpair/router"
	"github.com/danielhkuo/habitpair/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	build := pwa.FromEnv(os.Getenv, time.Now())

	// Build step: emit version.json for the static bundle and stop
	if cfg.WriteVersion != "" {
		if err := pwa.WriteDescriptor(cfg.WriteVersion, build.Descriptor()); err != nil {
			slog.Error("failed to write version file", "error", err)
			os.Exit(1)
		}
		slog.Info("version file written", "path", cfg.WriteVersion, "deployment_id", build.DeploymentID)
		return
	}

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Cold start: seed the default habit from legacy rows
	res, err := store.New(dbConn).InitializeDefaultHabit(ctx, store.DefaultHabit{
		Person1Name: cfg.Person1Name,
		Person2Name: cfg.Person2Name,
	})
	if err != nil {
		slog.Error("default habit initialization failed", "error", err)
		os.Exit(1)
	}
	if res.Initialized {
		metrics.RecordMigration(res.MigratedEntries)
		slog.Info("default habit initialized", "habit_id", res.HabitID, "migrated_entries", res.MigratedEntries)
	}

	// Create server
	server := &http.Server{
		Handler:           router.NewRouter(dbConn, cfg, build),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port, "deployment_id", build.DeploymentID, "time_zone", cfg.TimeZone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}
