// Package main is the entry point for the Hedgewise portfolio analysis
// service. It wires the pure analysis core to its serving shell: HTTP
// API, snapshot store, event stream and maintenance scheduler.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hedgewise/hedgewise/internal/config"
	"github.com/hedgewise/hedgewise/internal/database"
	"github.com/hedgewise/hedgewise/internal/events"
	"github.com/hedgewise/hedgewise/internal/modules/analysis"
	"github.com/hedgewise/hedgewise/internal/modules/scoring"
	"github.com/hedgewise/hedgewise/internal/modules/snapshots"
	"github.com/hedgewise/hedgewise/internal/scheduler"
	"github.com/hedgewise/hedgewise/internal/server"
	"github.com/hedgewise/hedgewise/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Hedgewise")

	// Snapshot database: append-mostly history, archive profile.
	snapshotDB, err := database.New(database.Config{
		Path:    cfg.SnapshotDBPath(),
		Profile: database.ProfileArchive,
		Name:    "snapshots",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open snapshot database")
	}
	defer snapshotDB.Close()

	snapshotRepo := snapshots.NewRepository(snapshotDB.Conn(), log)
	if err := snapshotRepo.InitSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize snapshot schema")
	}

	bus := events.NewBus(log)
	snapshotService := snapshots.NewService(snapshotRepo, bus, log)

	// The analysis core is pure; the cached decorator memoizes repeat
	// requests for identical inputs.
	analysisService := analysis.NewService(scoring.NewStaticPerformanceProvider())
	cachedAnalyzer, err := analysis.NewCachedAnalyzer(analysisService, cfg.CacheMaxEntries, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize analysis cache")
	}

	srv := server.New(server.Config{
		Log:        log,
		Config:     cfg,
		SnapshotDB: snapshotDB,
		Analyzer:   cachedAnalyzer,
		Service:    analysisService,
		Cache:      cachedAnalyzer,
		Snapshots:  snapshotService,
		Bus:        bus,
		Port:       cfg.Port,
		DevMode:    cfg.DevMode,
	})

	// Background maintenance: retention daily at 04:00, WAL and cache
	// stats hourly.
	sched := scheduler.New(bus, log)

	retentionJob := scheduler.NewSnapshotRetentionJob(snapshotService, cfg.SnapshotRetentionDays)
	retentionJob.SetLogger(log)
	if err := sched.AddJob("0 0 4 * * *", retentionJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register snapshot retention job")
	}

	maintenanceJob := scheduler.NewDatabaseMaintenanceJob(snapshotDB, cachedAnalyzer)
	maintenanceJob.SetLogger(log)
	if err := sched.AddJob("@hourly", maintenanceJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register database maintenance job")
	}

	sched.Start()

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")

	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
