package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"videos-api/internal/config"
	"videos-api/internal/handlers"
	"videos-api/internal/middleware"
)

// Handlers groups everything the router dispatches to
type Handlers struct {
	Category *handlers.CategoryHandler
	Video    *handlers.VideoHandler
	Health   *handlers.HealthHandler
}

func NewRouter(cfg *config.Config, h Handlers, registry *prometheus.Registry) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// CREATE ROUTER
	// gin.New: access logging comes from middleware.DefaultLogger
	router := gin.New()
	metrics := middleware.NewMetrics(registry)

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.DefaultLogger(),
		metrics.Handler(),
	)

	// ==========================================================================
	// OPERATIONAL ROUTES
	// ==========================================================================
	// Outside the rate-limited group
	router.GET("/health", h.Health.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := router.Group("")
	if cfg.RateLimit.RPS > 0 {
		api.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Handler())
	}

	// ======================================================================
	// CATEGORY ROUTES
	// ======================================================================
	categories := api.Group("/categories")
	{
		categories.GET("", h.Category.ListCategories)
		categories.POST("", h.Category.CreateCategory)
		categories.GET("/:id", h.Category.GetCategory)
		categories.PUT("/:id", h.Category.UpdateCategory)
		categories.DELETE("/:id", h.Category.DeleteCategory)

		// Nested resource: the videos belonging to one category
		categories.GET("/:id/videos", h.Category.ListCategoryVideos)
	}

	// ======================================================================
	// VIDEO ROUTES
	// ======================================================================
	videos := api.Group("/videos")
	{
		// GET /videos?search=&page= - paginated, optionally filtered by title
		videos.GET("", h.Video.ListVideos)
		videos.POST("", h.Video.CreateVideo)
		videos.GET("/:id", h.Video.GetVideo)
		videos.PUT("/:id", h.Video.UpdateVideo)
		videos.DELETE("/:id", h.Video.DeleteVideo)
	}

	return router
}
