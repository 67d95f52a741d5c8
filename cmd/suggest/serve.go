package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-suggest/api"
	"github.com/gcbaptista/go-suggest/config"
	"github.com/gcbaptista/go-suggest/internal/metrics"
	"github.com/gcbaptista/go-suggest/internal/watch"
)

const serviceName = "go-suggest"

func (app *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API. Collections that declare a dataset_path are loaded
from that file on start and reloaded whenever it changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().String("host", "localhost", "interface to listen on")
	cmd.Flags().String("port", "8080", "port to listen on")
	cmd.Flags().Bool("watch", true, "reload collections when their dataset files change")
	_ = app.v.BindPFlag("host", cmd.Flags().Lookup("host"))
	_ = app.v.BindPFlag("port", cmd.Flags().Lookup("port"))
	_ = app.v.BindPFlag("watch.enabled", cmd.Flags().Lookup("watch"))
	return cmd
}

func serve(parent context.Context, cfg *config.AppConfig) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	log.Printf("Info: Using data directory: %s", cfg.DataDir)
	cat, backend := openCatalog(cfg)
	defer func() {
		if err := backend.Close(); err != nil {
			log.Printf("Warning: Failed to close recent store: %v", err)
		}
	}()

	var watcher *watch.Watcher
	if cfg.Watch.Enabled {
		w, err := watch.New(cat, cfg.Watch.Debounce)
		if err != nil {
			log.Printf("Warning: Dataset watching disabled: %v", err)
		} else {
			watcher = w
			if err := watcher.Sync(); err != nil {
				log.Printf("Warning: %v", err)
			}
			watcher.Start()
			defer func() { _ = watcher.Stop() }()
		}
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	api.SetupRoutes(router, cat, cat, api.Options{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		Burst:             cfg.RateLimit.Burst,
		MaxRequestBytes:   cfg.MaxRequestBytes,
		SettingsChanged: func(settings config.CollectionSettings) {
			if watcher == nil || settings.DatasetPath == "" {
				return
			}
			target := watch.Target{Collection: settings.Name, Path: settings.DatasetPath, Fields: settings.DatasetFields}
			if err := watcher.Add(target); err != nil {
				log.Printf("Warning: Could not watch dataset for collection '%s': %v", settings.Name, err)
				return
			}
			if err := watcher.Reload(target); err != nil {
				log.Printf("Warning: %v", err)
			}
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.WithTracing(router, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Info: Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Info: Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Printf("Info: Server stopped")
	return nil
}
