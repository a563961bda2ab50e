package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-marketplace-v2/internal/adapter"
	"github.com/feral-file/ff-marketplace-v2/internal/api/middleware"
	"github.com/feral-file/ff-marketplace-v2/internal/api/server"
	"github.com/feral-file/ff-marketplace-v2/internal/config"
	"github.com/feral-file/ff-marketplace-v2/internal/ledger"
	"github.com/feral-file/ff-marketplace-v2/internal/logger"
	"github.com/feral-file/ff-marketplace-v2/internal/providers/collection"
	"github.com/feral-file/ff-marketplace-v2/internal/providers/jetstream"
	"github.com/feral-file/ff-marketplace-v2/internal/registry"
	"github.com/feral-file/ff-marketplace-v2/internal/store"
	"github.com/feral-file/ff-marketplace-v2/internal/uploads"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "api-server",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Marketplace API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	fs := adapter.NewFileSystem()
	ioAdapter := adapter.NewIO()
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

	// Connect to the collection contract endpoint
	ethClient, err := adapter.NewEthClientDialer().Dial(ctx, cfg.Ethereum.RPCURL)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Ethereum RPC", zap.Error(err), zap.String("rpc_url", cfg.Ethereum.RPCURL))
	}
	defer ethClient.Close()

	gateway, err := collection.NewGateway(ethClient, clock, cfg.Ledger.EscrowPrivateKey)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create collection gateway", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Collection gateway ready", zap.String("escrow_account", gateway.EscrowAddress()))

	// Connect to NATS JetStream for event publishing
	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
	}, adapter.NewNatsJetStream(), jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create event publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))

	// Load approved-collections registry
	var collectionRegistry registry.CollectionRegistry
	if cfg.Ledger.AllowlistPath != "" {
		loader := registry.NewAllowlistRegistryLoader(fs, jsonAdapter)
		collectionRegistry, err = loader.Load(cfg.Ledger.AllowlistPath)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load collection allowlist",
				zap.Error(err),
				zap.String("path", cfg.Ledger.AllowlistPath))
		}
		logger.InfoCtx(ctx, "Loaded collection allowlist", zap.String("path", cfg.Ledger.AllowlistPath))
	} else {
		logger.WarnCtx(ctx, "Collection allowlist not configured, all collections will be accepted")
	}

	// Create the ledger engine and seed counters and the listing fee
	engine, err := ledger.NewLedger(dataStore, gateway, publisher, collectionRegistry, ledger.Config{
		FeeBeneficiary:    cfg.Ledger.FeeBeneficiary,
		DefaultListingFee: cfg.Ledger.DefaultListingFee,
	}, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create ledger", zap.Error(err))
	}
	if err := engine.Bootstrap(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to bootstrap ledger", zap.Error(err))
	}

	// Create the upload service
	uploadSvc, err := uploads.NewService(uploads.Config{
		StorageDir:    cfg.Uploads.StorageDir,
		PublicBaseURL: cfg.Uploads.PublicBaseURL,
		MaxFileSize:   cfg.Uploads.MaxFileSize,
	}, fs, ioAdapter, jsonAdapter, adapter.NewJCS(), clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create upload service", zap.Error(err))
	}

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		UploadsDir:   cfg.Uploads.StorageDir,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, engine, uploadSvc, dataStore)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
