// Package main is the entry point for the interior media library server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interiorlib/internal/cache"
	"interiorlib/internal/config"
	"interiorlib/internal/database"
	"interiorlib/internal/handlers"
	"interiorlib/internal/locator"
	"interiorlib/internal/reconciler"
	"interiorlib/internal/recovery"
	"interiorlib/internal/router"
	"interiorlib/internal/session"
	"interiorlib/internal/storage"
	"interiorlib/internal/store"
	"interiorlib/internal/uploader"
)

func main() {
	// Structured logger — outputs JSON in production, text in development.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (Redis-compatible cache + session store).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// In non-development environments, mark session cookies as Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessionStore := session.NewStore(valkeyClient, secureCookies)

	// Initialize data stores.
	categoryStore := store.NewCategoryStore(db)
	mediaStore := store.NewMediaStore(db)
	userStore := store.NewUserStore(db)

	// Connect to S3-compatible object storage (optional — app works without it).
	var storageClient *storage.Client
	if cfg.S3Endpoint != "" && cfg.S3AccessKey != "" {
		storageClient, err = storage.New(
			cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
			cfg.S3Bucket, cfg.S3PublicURL,
		)
		if err != nil {
			slog.Error("failed to initialize S3 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", cfg.S3Bucket,
		)
	} else {
		slog.Warn("s3 storage not configured — uploads and recovery disabled")
	}

	// Category reconciler: merged view of the static catalog and the
	// stored counters. The initial sync is best effort; the catalog is
	// served either way.
	rec := reconciler.New(categoryStore, valkeyClient)
	defer rec.Close()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := rec.Sync(ctx); err != nil {
			slog.Warn("initial category sync failed, serving catalog defaults", "error", err)
		}
		cancel()
	}

	// Maintenance jobs and storage-backed components. The recovery job is
	// always constructed; without storage only Recount works.
	var loc *locator.Locator
	var up *uploader.Uploader
	var remover handlers.ObjectRemover
	var objects recovery.ObjectStore
	if storageClient != nil {
		loc = locator.New(storageClient, valkeyClient)
		up = uploader.New(storageClient, mediaStore, rec)
		remover = storageClient
		objects = storageClient
	}
	job := recovery.NewJob(objects, mediaStore, categoryStore)

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(sessionStore, userStore)
	categoryHandlers := handlers.NewCategories(rec)
	mediaHandlers := handlers.NewMedia(mediaStore, loc, up, remover)
	jobHandlers := handlers.NewJobs(job, rec)
	favoriteHandlers := handlers.NewFavorites(userStore)
	userHandlers := handlers.NewUsers(userStore)

	// Set up the Chi router with all middleware and routes.
	r := router.New(sessionStore, authHandlers, categoryHandlers, mediaHandlers,
		jobHandlers, favoriteHandlers, userHandlers)

	// Create the HTTP server. WriteTimeout must accommodate batch uploads
	// and the synchronous recovery job.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
