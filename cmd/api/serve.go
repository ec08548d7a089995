package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"videos-api/internal/handlers"
	"videos-api/internal/repository"
	"videos-api/internal/routes"
	"videos-api/internal/services"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "Apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// STEP 1: Initialize Database Connection Pool
	dbPool, err := openPool(ctx)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if migrateOnStart {
		if err := runMigrations(ctx, dbPool); err != nil {
			return err
		}
	}

	// STEP 2: Initialize Application Layers (Dependency Injection)
	categoryRepo := repository.NewCategoryRepository(dbPool)
	videoRepo := repository.NewVideoRepository(dbPool)

	categoryService := services.NewCategoryService(categoryRepo, videoRepo)
	videoService := services.NewVideoService(videoRepo, categoryRepo, cfg.Videos.PageSize)

	h := routes.Handlers{
		Category: handlers.NewCategoryHandler(categoryService),
		Video:    handlers.NewVideoHandler(videoService),
		Health:   handlers.NewHealthHandler(dbPool),
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// STEP 3: Setup Router and Routes
	router := routes.NewRouter(cfg, h, registry)

	// STEP 4: Create HTTP Server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Str("environment", cfg.Server.Environment).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// STEP 5: Graceful Shutdown
	// SIGINT = Ctrl+C, SIGTERM = kill command or container orchestrator
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server exited gracefully")
	return nil
}
