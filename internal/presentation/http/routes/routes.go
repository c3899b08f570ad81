package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sangkips/developerstore-sales/internal/config"
	domainRepo "github.com/sangkips/developerstore-sales/internal/domain/repository"
	"github.com/sangkips/developerstore-sales/internal/presentation/http/handler"
	"github.com/sangkips/developerstore-sales/internal/presentation/http/middleware"
	"github.com/sangkips/developerstore-sales/pkg/logger"
	"github.com/sangkips/developerstore-sales/pkg/utils"
)

const manageSalesPermission = "manage-sales"

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Sale     *handler.SaleHandler
	Checkout *handler.CheckoutHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Log             *logger.Logger
	Registry        *prometheus.Registry
}

// Setup creates the Gin router and registers all routes. ctx bounds the
// background work started by the middleware.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	httpMetrics := middleware.NewHTTPMetrics(deps.Registry)

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(httpMetrics.Middleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(ctx, rateLimiterConfig(&deps.Cfg.RateLimit))
		protected.Use(rateLimiter.Middleware())

		registerSaleRoutes(protected, h, deps)
	}

	return router
}

func rateLimiterConfig(cfg *config.RateLimitConfig) middleware.RateLimiterConfig {
	rlCfg := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rlCfg.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rlCfg.BurstSize = cfg.Requests
	}
	rlCfg.CleanupInterval = 5 * time.Minute
	rlCfg.EntryTTL = 10 * time.Minute
	return rlCfg
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Creation endpoints replay on a repeated Idempotency-Key so a retry
	// does not produce a second sale
	idempotent := middleware.IdempotencyRequired(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
		TTL:  deps.Cfg.Idempotency.TTL,
		Log:  deps.Log,
	})

	sales := protected.Group("/sales")
	sales.Use(middleware.RequirePermission(manageSalesPermission))
	{
		sales.GET("", h.Sale.List)
		sales.POST("", idempotent, h.Sale.Create)
		sales.POST("/checkout/:cart_id", idempotent, h.Checkout.Checkout)
		sales.GET("/:id", h.Sale.Get)
		sales.PUT("/:id", h.Sale.Update)
		sales.DELETE("/:id", h.Sale.Cancel)
		sales.DELETE("/:id/items/:item_id", h.Sale.CancelItem)
	}
}
