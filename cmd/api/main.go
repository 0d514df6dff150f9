package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bryanwahyu/factory-save-analyzer/internal/application"
	appai "github.com/bryanwahyu/factory-save-analyzer/internal/application/ai"
	appsaves "github.com/bryanwahyu/factory-save-analyzer/internal/application/saves"
	"github.com/bryanwahyu/factory-save-analyzer/internal/config"
	domai "github.com/bryanwahyu/factory-save-analyzer/internal/domain/ai"
	"github.com/bryanwahyu/factory-save-analyzer/internal/domain/saves"
	"github.com/bryanwahyu/factory-save-analyzer/internal/infra/ai/openai"
	"github.com/bryanwahyu/factory-save-analyzer/internal/infra/ai/prompt"
	"github.com/bryanwahyu/factory-save-analyzer/internal/infra/archive"
	"github.com/bryanwahyu/factory-save-analyzer/internal/infra/codec"
	mysqlp "github.com/bryanwahyu/factory-save-analyzer/internal/infra/db/mysql"
	pgp "github.com/bryanwahyu/factory-save-analyzer/internal/infra/db/postgres"
	"github.com/bryanwahyu/factory-save-analyzer/internal/infra/httpserver"
	"github.com/bryanwahyu/factory-save-analyzer/internal/infra/storage"
	"github.com/bryanwahyu/factory-save-analyzer/internal/logging"
	"github.com/bryanwahyu/factory-save-analyzer/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		logging.Fatal().Err(err).Str("path", path).Msg("config load error")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx := context.Background()
	health := map[string]middleware.HealthChecker{
		"storage": &middleware.StorageHealthChecker{Root: cfg.Storage.Root},
	}

	// header codec
	exec, err := codec.NewExec(cfg.Codec.Command, cfg.Codec.Env)
	if err != nil {
		logging.Fatal().Err(err).Msg("codec init error")
	}

	svc := &appsaves.Service{
		Store:    storage.NewLocal(cfg.Storage.Root),
		Decoder:  archive.NewDecoder(exec),
		Clock:    application.SystemClock{},
		MaxFiles: cfg.Storage.MaxFiles,
	}

	// optional event log
	db, events, err := openEventLog(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("database init error")
	}
	if db != nil {
		defer db.Close()
		svc.Events = events
		health["database"] = &middleware.DatabaseHealthChecker{DB: db}
	}

	// optional minio mirror
	if cfg.Minio.Enabled {
		mirror, err := storage.NewMinioMirror(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			logging.Fatal().Err(err).Msg("minio init error")
		}
		svc.Mirror = mirror
	}

	// advisor
	var client domai.Client = prompt.Heuristic{}
	source := "heuristic"
	if cfg.OpenAI.APIKey != "" {
		if cfg.OpenAI.BaseURL != "" {
			client = openai.NewClientWithBaseURL(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
		} else {
			client = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		}
		source = "openai"
	}

	handler := httpserver.NewRouter(svc, httpserver.Options{
		Advisor:        appai.NewService(svc, client, source),
		Health:         health,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RateLimit:      cfg.RateLimit.Requests,
		RateWindow:     cfg.RateLimit.Window,
		MaxUploadBytes: maxUpload(cfg),
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout * 2,
	}

	// run server
	go func() {
		logging.Info().Str("addr", addr).Str("storage_root", cfg.Storage.Root).Str("advisor", source).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logging.Info().Msg("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logging.Error().Err(err).Msg("shutdown error")
	}
}

func openEventLog(ctx context.Context, cfg *config.Config) (*sql.DB, saves.EventRepository, error) {
	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, err
		}
		repo := mysqlp.NewEventRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, repo, nil
	case "postgres":
		db, err := pgp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, err
		}
		repo := pgp.NewEventRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, repo, nil
	}
	return nil, nil, nil
}

func maxUpload(cfg *config.Config) int64 {
	if cfg.Storage.MaxUploadBytes > 0 && cfg.Storage.MaxUploadBytes < saves.MaxUploadBytes {
		return cfg.Storage.MaxUploadBytes
	}
	return saves.MaxUploadBytes
}
