package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"github.com/TheCodeHarbor/valvoline-pds-api/internal/common"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/drive"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/export"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/extract"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/index"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/ingest"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/pdfsource"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/pipeline/docindex"
	"github.com/TheCodeHarbor/valvoline-pds-api/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *common.Config, logger *slog.Logger) error {
	for _, dir := range []string{cfg.Storage.DataDir, cfg.Storage.ParsedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	src := pdfsource.New(logger)
	ex := extract.NewExtractor(src, logger)
	pipe := docindex.NewPipeline(ex, store, cfg.Storage.ParsedDir, logger)
	exporter := export.NewService(logger)

	var syncer *drive.Syncer
	if cfg.Drive.ServiceAccountJSON != "" {
		client, err := drive.NewClient(ctx, []byte(cfg.Drive.ServiceAccountJSON))
		if err != nil {
			return err
		}
		syncer = drive.NewSyncer(client, pipe, cfg.Storage.DataDir, logger)
	}

	metrics := server.NewMetrics(prometheus.DefaultRegisterer)
	svc := server.New(cfg, ex, pipe, store, syncer, exporter, metrics, logger)

	if cfg.Ingest.WatchEnabled {
		events, watchErrs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
			Roots:       []string{cfg.Storage.DataDir},
			InitialScan: true,
			Debounce:    cfg.Ingest.Debounce,
		}, logger)
		if err != nil {
			return err
		}
		go func() {
			for events != nil || watchErrs != nil {
				select {
				case path, ok := <-events:
					if !ok {
						events = nil
						continue
					}
					if _, err := pipe.Run(ctx, path); err != nil {
						logger.Warn("watched file failed pipeline", "path", path, "error", err)
					}
				case err, ok := <-watchErrs:
					if !ok {
						watchErrs = nil
						continue
					}
					logger.Error("watcher error", "error", err)
				}
			}
		}()
	}

	if syncer != nil && cfg.Drive.SyncCron != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.Drive.SyncCron, func() {
			if _, err := syncer.Sync(ctx, cfg.Drive.FolderID); err != nil {
				logger.Error("scheduled drive sync failed", "error", err)
			}
		}); err != nil {
			return err
		}
		c.Start()
		defer c.Stop()
		logger.Info("drive sync scheduled", "cron", cfg.Drive.SyncCron)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: svc.Router(),
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr, "index_backend", cfg.Index.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg *common.Config, logger *slog.Logger) (index.Store, func(), error) {
	switch cfg.Index.Backend {
	case "sqlite":
		s, err := index.OpenSQLite(ctx, cfg.Index.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "postgres":
		s, err := index.OpenPostgres(ctx, index.PostgresConfig{DSN: cfg.Index.DSN}, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return index.NewFileStore(cfg.Index.Path), func() {}, nil
	}
}
