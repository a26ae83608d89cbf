package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/systemshift/pngmark/internal/pngmark"
	"github.com/systemshift/pngmark/internal/pngmark/config"
	"github.com/systemshift/pngmark/internal/pngmark/logger"
	"github.com/systemshift/pngmark/internal/server/api"
	"github.com/systemshift/pngmark/internal/server/index"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "YAML config file")
	addr := flag.String("addr", "", "HTTP service address (overrides config)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Println(pngmark.BuildInfo())
		os.Exit(0)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	log := logger.New(cfg.LogLevel)

	// Open scan index
	ctx := context.Background()
	idx, err := index.Open(ctx, cfg.IndexPath)
	if err != nil {
		log.WithError(err).Fatal("opening scan index")
	}
	defer idx.Close()

	log.WithField("path", cfg.IndexPath).Info("scan index ready")

	// Initialize API server
	apiServer := api.New(idx, log, cfg.MaxUploadBytes)

	// Setup HTTP router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Routes
	apiServer.Routes(r)

	// HTTP server
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("addr", cfg.Addr).Info("starting pngmarkd")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
