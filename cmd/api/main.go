package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"github.com/joshua-takyi/eventrentals/internal/config"
	"github.com/joshua-takyi/eventrentals/internal/connect"
	"github.com/joshua-takyi/eventrentals/internal/container"
	"github.com/joshua-takyi/eventrentals/internal/routes"
	"github.com/supabase-community/supabase-go"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Load environment variables
	_ = godotenv.Load(".env.local")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg)
	logger.Info("Starting event rentals API server", "environment", cfg.Environment)

	// Initialize database connections
	var supaClient *supabase.Client
	if cfg.HasRemoteStore() {
		supaClient, err = connect.InitSupabase(cfg)
		if err != nil {
			logger.Error("Failed to create Supabase client", "error", err)
			os.Exit(1)
		}
		logger.Info("Remote store configured", "data_file", cfg.DataFile)
	} else {
		logger.Warn("Supabase is not configured, running on the local store only", "data_file", cfg.DataFile)
	}

	var mongoClient *mongo.Client
	if cfg.HasMongoDB() {
		mongoClient, err = connect.MongoDBConnect(context.Background(), cfg)
		if err != nil {
			// store events are an audit trail; the API works without them
			logger.Error("Failed to connect to MongoDB, store events disabled", "error", err)
			mongoClient = nil
		} else {
			logger.Info("Connected to MongoDB successfully")
		}
	}

	// Image hosting is optional; without it image fields must already be URLs
	var cld *cloudinary.Cloudinary
	if cfg.HasCloudinary() {
		cld, err = connect.CloudinaryCredentials(cfg)
		if err != nil {
			logger.Error("Failed to connect to Cloudinary", "error", err)
			os.Exit(1)
		}
		logger.Info("Cloudinary configured")
	}

	// Initialize dependency container
	appContainer := container.NewContainer(cfg, logger, supaClient, mongoClient, cld)

	// Prepare indexes and the first admin account
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	if appContainer.StoreEvents != nil {
		if err := appContainer.StoreEvents.EnsureIndexes(startupCtx); err != nil {
			logger.Error("Failed to create store event indexes", "error", err)
		}
	}
	if err := appContainer.UserService.EnsureAdmin(startupCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Error("Failed to bootstrap admin user", "error", err)
	}
	cancelStartup()

	// Setup routes
	router := routes.SetupRoutes(appContainer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port, "store", appContainer.Stores.Mode())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown server
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Close database connections
	if err := connect.MongoDBDisconnect(mongoClient); err != nil {
		logger.Error("Error disconnecting from MongoDB", "error", err)
	}

	logger.Info("Server exited")
}

func setupLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	if cfg.IsProduction() {
		// JSON logging for production
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: parseLevel(cfg.LogLevel),
		})
	} else {
		// Human-readable logging for development
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
