// Package server wires middleware, handlers and routes into the HTTP server.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/julianacmsantos/recipes-project/config"
	"github.com/julianacmsantos/recipes-project/internal/api"
	"github.com/julianacmsantos/recipes-project/internal/cache"
	"github.com/julianacmsantos/recipes-project/internal/engine"
	"github.com/julianacmsantos/recipes-project/internal/middleware"
)

// Server represents the HTTP server. The engine may be nil when startup
// loading failed; the server then serves health endpoints and reports not
// ready until restarted with valid artifacts.
type Server struct {
	router *gin.Engine
	http   *http.Server
	engine *engine.Engine
	logger zerolog.Logger
}

// New creates a server instance. redisClient may be nil to run without
// caching and rate limiting.
func New(cfg *config.Config, eng *engine.Engine, redisClient *redis.Client, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	s := &Server{
		router: router,
		engine: eng,
		logger: logger.With().Str("component", "server").Logger(),
	}

	router.GET("/health", s.health)
	router.GET("/ready", s.ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// respCache stays a nil interface without Redis; assigning a nil
	// *cache.ResponseCache here would defeat the handler's nil check.
	var respCache api.ResponseCache
	v1 := router.Group("/api/v1")
	if redisClient != nil {
		respCache = cache.New(redisClient, cfg.CacheTTL, logger)
		limiter := middleware.NewRecommendRateLimiter(redisClient, cfg.RateLimitPerMinute)
		v1.Use(limiter.Middleware())
	}
	api.NewRecommendHandler(eng, respCache, logger).RegisterRoutes(v1)

	s.http = &http.Server{
		Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
		Handler: router,
	}
	return s
}

// Start begins serving and blocks until the listener fails or is shut down.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.http.Addr).Msg("server listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ready reports 503 until the engine initialized successfully, so a
// degraded process is visible to orchestration without crashing.
func (s *Server) ready(c *gin.Context) {
	if s.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "reason": "engine not initialized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"model":   s.engine.ModelID(),
		"recipes": s.engine.Catalog().Size(),
	})
}
