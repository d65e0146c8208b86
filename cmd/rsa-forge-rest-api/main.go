// cmd/rsa-forge-rest-api/main.go
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "rsa_forge_service/internal/api/rest/v1"
	"rsa_forge_service/internal/app"
	"rsa_forge_service/internal/domain/keys"
	rsaDomain "rsa_forge_service/internal/domain/rsa"
	"rsa_forge_service/internal/infrastructure/cryptography"
	"rsa_forge_service/internal/infrastructure/persistence"
	"rsa_forge_service/internal/infrastructure/persistence/models"
	"rsa_forge_service/internal/infrastructure/vault"
	"rsa_forge_service/internal/pkg/config"
	"rsa_forge_service/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services        *appServices
	keyCodec        rsaDomain.KeyCodec
	transformEngine rsaDomain.TransformEngine
}

type appServices struct {
	keyGeneration keys.KeyGenerationService
	keyDownload   keys.KeyDownloadService
	keyMetadata   keys.KeyMetadataService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(&models.KeyMetaModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repository
	keyRepo, err := persistence.NewGormKeyRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key repository: %w", err)
	}

	// Initialize vault
	keyVault, err := vault.NewFileVault(cfg.Vault.Directory, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create file vault: %w", err)
	}

	// Initialize cryptographic components
	tester, err := cryptography.NewSolovayStrassen(rand.Reader, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create primality tester: %w", err)
	}

	keyGenerator, err := cryptography.NewRSAKeyGenerator(rand.Reader, tester, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key generator: %w", err)
	}

	transformEngine, err := cryptography.NewTransformEngine(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create transform engine: %w", err)
	}

	keyCodec := cryptography.NewKeyCodec()

	// Initialize services
	services, err := initializeApplicationServices(keyGenerator, keyCodec, keyVault, keyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		services:        services,
		keyCodec:        keyCodec,
		transformEngine: transformEngine,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.keyGeneration,
		deps.services.keyDownload,
		deps.services.keyMetadata,
		deps.keyCodec,
		deps.transformEngine,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if shutdownTimeout == 0 {
		shutdownTimeout = 15 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	keyGenerator rsaDomain.KeyGenerator,
	keyCodec rsaDomain.KeyCodec,
	keyVault keys.KeyVault,
	keyRepo keys.KeyRepository,
	log logger.Logger,
) (*appServices, error) {
	keyGenerationService, err := app.NewKeyGenerationService(keyGenerator, keyCodec, keyVault, keyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key generation service: %w", err)
	}

	keyDownloadService, err := app.NewKeyDownloadService(keyVault, keyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key download service: %w", err)
	}

	keyMetadataService, err := app.NewKeyMetadataService(keyVault, keyRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key metadata service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		keyGeneration: keyGenerationService,
		keyDownload:   keyDownloadService,
		keyMetadata:   keyMetadataService,
	}, nil
}
