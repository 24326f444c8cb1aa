// Package http provides the public HTTP server and its router.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/streamgate/internal/auth/http"
	"github.com/allisson/streamgate/internal/config"
	"github.com/allisson/streamgate/internal/metrics"
)

const readinessCheckTimeout = 2 * time.Second

// ReadinessCheck reports whether a backing component can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Server represents the public HTTP server.
type Server struct {
	server       *http.Server
	logger       *slog.Logger
	router       *gin.Engine
	checks       map[string]ReadinessCheck
	shuttingDown atomic.Bool
}

// NewServer creates a new HTTP server. checks are evaluated on every /ready request.
func NewServer(
	host string,
	port int,
	logger *slog.Logger,
	checks map[string]ReadinessCheck,
) *Server {
	return &Server{
		logger: logger,
		checks: checks,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the gin engine with middleware and all routes.
// ctx bounds the lifetime of background goroutines owned by middleware.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	hlsAuthHandler *authHTTP.HLSAuthHandler,
	otpHandler *authHTTP.OTPHandler,
	playbackHandler *authHTTP.PlaybackHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	{
		v1.GET("/hls-auth", hlsAuthHandler.AuthorizeHandler)

		otp := v1.Group("/otp")
		if cfg.RateLimitIPEnabled {
			otp.Use(authHTTP.ClientIPRateLimitMiddleware(
				ctx,
				cfg.RateLimitIPRequestsPerSec,
				cfg.RateLimitIPBurst,
				s.logger,
			))
		}
		otp.POST("/issue", otpHandler.IssueHandler)
		otp.POST("/verify", otpHandler.VerifyHandler)

		v1.POST("/playback/:id/sign", playbackHandler.SignHandler)
	}

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		if s.router == nil {
			return fmt.Errorf("router not configured")
		}
		s.server.Handler = s.router
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown marks the server as not ready and gracefully shuts it down.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shuttingDown.Store(true)
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if s.shuttingDown.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessCheckTimeout)
	defer cancel()

	ready := true
	components := gin.H{}
	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.String("component", name), slog.Any("error", err))
			components[name] = "error"
			ready = false
			continue
		}
		components[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
