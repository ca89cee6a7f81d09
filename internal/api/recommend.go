package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/julianacmsantos/recipes-project/internal/cache"
	"github.com/julianacmsantos/recipes-project/internal/engine"
	"github.com/julianacmsantos/recipes-project/internal/metrics"
	"github.com/julianacmsantos/recipes-project/internal/model"
)

// ResponseCache is the caching interface the handler consumes. A lookup
// failure is a miss, never an error.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]model.SearchResult, bool)
	Set(ctx context.Context, key string, results []model.SearchResult)
}

var _ ResponseCache = (*cache.ResponseCache)(nil)

// RecommendHandler serves recommendation and recipe lookups. The engine may
// be nil when artifact loading failed at startup; the handler then reports
// the service unavailable instead of crashing.
type RecommendHandler struct {
	engine *engine.Engine
	cache  ResponseCache
	logger zerolog.Logger
}

// NewRecommendHandler creates the handler. respCache may be nil to disable
// response caching.
func NewRecommendHandler(eng *engine.Engine, respCache ResponseCache, logger zerolog.Logger) *RecommendHandler {
	return &RecommendHandler{
		engine: eng,
		cache:  respCache,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// RegisterRoutes mounts the handler's routes on router.
func (h *RecommendHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/recommend", h.Recommend)
	router.GET("/recipes/:id", h.GetRecipe)
}

// Recommend handles POST /recommend.
func (h *RecommendHandler) Recommend(c *gin.Context) {
	if h.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recommendation engine not ready"})
		return
	}

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := strings.ToLower(strings.TrimSpace(req.Ingredients))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients must not be blank"})
		return
	}
	if req.TopK == 0 {
		req.TopK = DefaultTopK
	}
	if req.TopK < 1 || req.TopK > MaxTopK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "top_k must be between 1 and 50"})
		return
	}

	key := cache.Key(h.engine.ModelID(), query, req.TopK, req.ExactMatch)
	if h.cache != nil {
		if results, ok := h.cache.Get(c.Request.Context(), key); ok {
			metrics.CacheHits.Inc()
			c.JSON(http.StatusOK, RecommendResponse{Query: query, Count: len(results), Results: results})
			return
		}
		metrics.CacheMisses.Inc()
	}

	start := time.Now()
	results, err := h.engine.Recommend(query, req.TopK, req.ExactMatch)
	if err != nil {
		h.logger.Error().Err(err).Str("query", query).Msg("recommendation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "recommendation failed"})
		return
	}
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())

	if h.cache != nil {
		h.cache.Set(c.Request.Context(), key, results)
	}

	c.JSON(http.StatusOK, RecommendResponse{Query: query, Count: len(results), Results: results})
}

// GetRecipe handles GET /recipes/:id.
func (h *RecommendHandler) GetRecipe(c *gin.Context) {
	if h.engine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "recommendation engine not ready"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, ok := h.engine.Catalog().GetByID(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}
