package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/property_management_app/cmd/docs"
	portssvc "github.com/SscSPs/property_management_app/internal/core/ports/services"
	"github.com/SscSPs/property_management_app/internal/middleware"
	"github.com/SscSPs/property_management_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteOptions carries the optional collaborators of the router.
type RouteOptions struct {
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	// Limiter throttles the /api/v1 group per client IP when set.
	Limiter *limiter.Limiter
	// Now evaluates time-dependent response fields; defaults to time.Now.
	Now func() time.Time
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	registerValidators()
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	if opts.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	setupAPIV1Routes(r, cfg, services, opts)

	// Gateway callbacks are authenticated by body signature, not bearer token
	webhooks := r.Group("/webhooks", middleware.WebhookSignature(cfg.PaymentWebhookSecret))
	registerWebhookRoutes(webhooks, services.Payment)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	opts RouteOptions,
) {
	var chain []gin.HandlerFunc
	if opts.Limiter != nil {
		chain = append(chain, middleware.RateLimit(opts.Limiter))
	}
	chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	v1 := r.Group("/api/v1", chain...)

	registerBuildingRoutes(v1, service.Building)
	registerHouseRoutes(v1, service.House)
	registerTenantRoutes(v1, service.Tenant)
	registerPaymentRoutes(v1, service.Payment, cfg.LateFeeDailyRate, opts.Now)
	registerReportingRoutes(v1, service.Reporting, opts.Now)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
