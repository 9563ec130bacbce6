// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/container"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/caching"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/email"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/persistence/database"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/server"
	"github.com/VRCMedia/vrcsite-go/pkg/config"
)

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	log.Println("Initializing VRC content backend...")

	// Step 1: Channeled logging
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.Startup().Info("Channeled logging initialized")

	// Step 2: Content store connection
	logger.Startup().Info("Opening content store...")
	db, err := database.NewConnection(logger)
	if err != nil {
		return fmt.Errorf("failed to open content store: %w", err)
	}

	// Step 3: Schema and seed content
	logger.Startup().Info("Ensuring schema...")
	tableCreator := database.NewTableCreator()
	if err := tableCreator.CreateSchema(db.DB); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	if err := tableCreator.SeedInitialContent(db.DB); err != nil {
		return fmt.Errorf("content seeding failed: %w", err)
	}
	logger.Startup().Info("Schema ready")

	// Step 4: Content cache
	cache := caching.NewContentStore()
	logger.Startup().Info("Content cache initialized", "ttl", config.ContentCacheTTL)

	// Step 5: Email client. The contact endpoint degrades gracefully when
	// RESEND_API_KEY is absent, so a missing key is not fatal.
	emailService, err := email.NewService()
	if err != nil {
		logger.Startup().Warn("Email service unavailable, contact form disabled", "error", err.Error())
		emailService = nil
	}

	// Step 6: Dependency injection container
	appContainer := container.NewContainer(db, cache, emailService, logger)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 7: Admin content-change broadcaster
	go appContainer.Broadcaster.Run()
	logger.Startup().Info("Content broadcaster started")

	// Step 8: HTTP server
	port := config.Port
	httpServer := server.New(port, appContainer)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", port,
		"turso", db.UseTurso)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Closing content store...")
	if err := db.Close(); err != nil {
		logger.Shutdown().Error("Error closing content store", "error", err.Error())
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
