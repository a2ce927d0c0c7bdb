package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alkime/vaultlaunch/internal/config"
	"github.com/alkime/vaultlaunch/internal/palette"
	"github.com/alkime/vaultlaunch/internal/service"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Launcher starts launches in the background. *service.Launcher satisfies it.
type Launcher interface {
	Start(ctx context.Context, req service.Request) (string, <-chan service.Result, error)
}

// Deps are the services the HTTP surface exposes.
type Deps struct {
	Launcher Launcher
	Palette  *palette.Palette
	Notices  *service.NoticeBoard
	Settings service.SettingsSource
	// DefaultDir is opened when a request names no directory.
	DefaultDir string
}

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *slog.Logger
	router *gin.Engine
	deps   Deps
}

// New creates a new Server instance
func New(cfg *config.Config, logger *slog.Logger, deps Deps) *Server {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	server := &Server{
		config: cfg,
		logger: logger,
		router: router,
		deps:   deps,
	}

	setupSecurityMiddleware(router, cfg, logger)
	server.setupRoutes()

	return server
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on localhost until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              "127.0.0.1:" + s.config.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	s.logger.Info("Server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api/v1")
	{
		api.GET("/editors", s.handleEditors)
		api.POST("/launch", s.handleLaunch)
		api.GET("/commands", s.handleCommands)
		api.POST("/commands/:id", s.handleRunCommand)
		api.GET("/notices", s.handleNotices)
	}

	// Optional status page; NoRoute keeps the API routes authoritative.
	if s.config.PublicDir != "" {
		s.router.NoRoute(static.Serve("/", static.LocalFile(s.config.PublicDir, true)))
	}
}

// handleHealth handles the health check endpoint
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "vaultlaunch",
	})
}

