// Package server assembles the HTTP server from its parts.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/filedash/filedash/internal/api/http"
	"github.com/filedash/filedash/internal/api/middleware"
	"github.com/filedash/filedash/internal/fs"
	"github.com/filedash/filedash/internal/infrastructure/config"
	"github.com/filedash/filedash/internal/infrastructure/logging"
	"github.com/filedash/filedash/internal/infrastructure/monitoring"
	"github.com/filedash/filedash/internal/session"
)

// Server is the assembled backend.
type Server struct {
	cfg    *config.Config
	logger *logging.Logger
	http   *http.Server
}

// New builds the server from configuration.
func New(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, err
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := monitoring.NewMetrics()
	filesystem := fs.NewService(cfg.Browse.Root, logger)
	sessions := session.NewManager(filesystem, filesystem.Root()).WithMetrics(metrics)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(filesystem, sessions, metrics, logger)
	handlers.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	return &Server{
		cfg:    cfg,
		logger: logger,
		http: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}, nil
}

// Logger exposes the server's logger for the entrypoint.
func (s *Server) Logger() *logging.Logger { return s.logger }

// Run starts serving and blocks until the listener fails.
func (s *Server) Run() error {
	s.logger.Info("server listening",
		zap.String("addr", s.http.Addr),
		zap.String("root", s.cfg.Browse.Root),
	)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	err := s.http.Shutdown(ctx)
	_ = s.logger.Sync()
	return err
}
