// internal/interfaces/http/server.go
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/restaurant-site/internal/config"
	"github.com/your-org/restaurant-site/internal/interfaces/http/middleware"
	"github.com/your-org/restaurant-site/internal/interfaces/http/routes"
	"github.com/your-org/restaurant-site/internal/pkg/kv"
	"github.com/your-org/restaurant-site/internal/pkg/metrics"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	log         *logrus.Logger
	gin         *gin.Engine
	httpServer  *http.Server
	storage     kv.Store
	storageName string
	redisClient *redis.Client
	metrics     *metrics.Metrics
	handlers    routes.Handlers
	startedAt   time.Time
}

// Dependencies are the components the server exposes over HTTP
type Dependencies struct {
	Storage     kv.Store
	StorageName string
	// RedisClient enables rate limiting when set.
	RedisClient *redis.Client
	Metrics     *metrics.Metrics
	Handlers    routes.Handlers
}

// NewServer creates a new HTTP server instance with middleware and routes
func NewServer(cfg *config.Config, log *logrus.Logger, deps Dependencies) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:      cfg,
		log:         log,
		gin:         gin.New(),
		storage:     deps.Storage,
		storageName: deps.StorageName,
		redisClient: deps.RedisClient,
		metrics:     deps.Metrics,
		handlers:    deps.Handlers,
		startedAt:   time.Now(),
	}

	if len(cfg.Security.TrustedProxies) > 0 {
		if err := s.gin.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
			log.WithError(err).Warn("Invalid trusted proxies, ignoring")
		}
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.config.GetServerAddr(),
		Handler:      s.gin,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  s.config.Server.IdleTimeout,
	}

	s.log.WithFields(logrus.Fields{
		"addr":    s.httpServer.Addr,
		"storage": s.storageName,
	}).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	s.log.Info("Shutting down HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.log.Info("HTTP server stopped gracefully")
	return nil
}

func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.log))
	if s.metrics != nil {
		s.gin.Use(middleware.Metrics(s.metrics))
	}
	s.gin.Use(middleware.CORS(s.config))
	s.gin.Use(middleware.SecurityHeaders(s.config.Restaurant.Name))
	if s.redisClient != nil && s.config.Security.RateLimitPerMinute > 0 {
		s.gin.Use(middleware.RateLimit(s.config.Security.RateLimitPerMinute, s.redisClient))
	}
	s.gin.Use(middleware.RequestSizeLimit(1 << 20))
	if s.config.Server.RequestTimeout > 0 {
		s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
	}
}

func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)
	if s.metrics != nil {
		s.gin.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	apiV1 := s.gin.Group("/api/v1")
	routes.SetupRoutes(apiV1, s.handlers)

	// The static site is served for everything else.
	if dir := s.config.Server.StaticDir; dir != "" {
		s.gin.NoRoute(gin.WrapH(http.FileServer(http.Dir(dir))))
	}
}

// healthCheck pings the cart storage backend
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := s.storage.Ping(ctx); err != nil {
		s.log.WithError(err).Warn("Storage health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"storage": s.storageName,
			"error":   "storage ping failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"storage":     s.storageName,
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

func (s *Server) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	})
}
