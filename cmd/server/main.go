package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/rfogaca/vigia/internal/config"
	"github.com/rfogaca/vigia/pkg/api"
	"github.com/rfogaca/vigia/pkg/db"
	"github.com/rfogaca/vigia/pkg/db/memstore"
	"github.com/rfogaca/vigia/pkg/postgres"
	"github.com/rfogaca/vigia/pkg/utils/logging"
)

func main() {
	memory := pflag.Bool("memory", false, "Use the in-memory store instead of Postgres (development only)")
	configPath := pflag.String("config", "", "Path to the config file (defaults to vigia_config.yaml lookup)")
	pflag.Parse()

	logger, err := logging.InitLogger("server")
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.Config
	if *configPath != "" {
		cfg, err = config.LoadFromPath(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	var database db.Database
	if *memory {
		logger.Warn("Using the in-memory store, nothing will be persisted")
		database = memstore.New()
	} else {
		pg, err := postgres.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer pg.Close()

		if err := pg.RunMigrations(ctx); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		database = pg
	}

	handler := api.NewHandler(database, logger)
	handler.DefaultShiftStart = cfg.DefaultShiftStart
	handler.DefaultShiftEnd = cfg.DefaultShiftEnd
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("addr", cfg.ListenAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}
