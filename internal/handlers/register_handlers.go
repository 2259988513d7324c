package handlers

import (
	"github.com/SscSPs/nonprofit_ledger/cmd/docs"
	portssvc "github.com/SscSPs/nonprofit_ledger/internal/core/ports/services"
	"github.com/SscSPs/nonprofit_ledger/internal/middleware"
	"github.com/SscSPs/nonprofit_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// maintenanceLimiter throttles the replay and cleanup routes.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	maintenanceLimiter *limiter.Limiter,
) {
	registerStatusRoutes(r, cfg)

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	RegisterAPIV1Routes(v1, services, middleware.RateLimit(maintenanceLimiter))

	setupSwaggerRoutes(r, cfg)
}

// RegisterAPIV1Routes registers the authenticated API onto an existing group.
func RegisterAPIV1Routes(v1 *gin.RouterGroup, services *portssvc.ServiceContainer, limit gin.HandlerFunc) {
	maintenance := newMaintenanceHandler(services.Replay, services.Cleanup)
	v1.POST("/maintenance/replay-all", limit, maintenance.runReplayForTenants)

	tenant := v1.Group("/tenants/:tenantID")
	registerAccountRoutes(tenant, services.Account)
	registerJournalRoutes(tenant, services.Journal, services.Account)
	registerMaintenanceRoutes(tenant, maintenance, limit)
	registerReportingRoutes(tenant, services.Reporting)
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
