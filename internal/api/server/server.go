package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-v2/internal/api/middleware"
	"github.com/feral-file/ff-marketplace-v2/internal/api/rest"
	"github.com/feral-file/ff-marketplace-v2/internal/ledger"
	"github.com/feral-file/ff-marketplace-v2/internal/logger"
	"github.com/feral-file/ff-marketplace-v2/internal/store"
	"github.com/feral-file/ff-marketplace-v2/internal/uploads"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// UploadsDir is served read-only under /uploads so stored objects are
	// retrievable at the URLs the upload endpoints return
	UploadsDir string

	Auth middleware.AuthConfig
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	ledger     ledger.Ledger
	uploads    uploads.Service
	store      store.Store
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, engine ledger.Ledger, uploadSvc uploads.Service, st store.Store) *Server {
	return &Server{
		config:  cfg,
		ledger:  engine,
		uploads: uploadSvc,
		store:   st,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Setup middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	// Create REST handler around the marketplace engine
	restHandler := rest.NewHandler(s.config.Debug, s.ledger, s.uploads, s.store)

	// Setup REST routes
	rest.SetupRoutes(router, restHandler, s.config.Auth)

	// Serve stored uploads
	if s.config.UploadsDir != "" {
		router.Static("/uploads", s.config.UploadsDir)
	}

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}
