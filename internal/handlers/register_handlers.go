package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/library_circulation/cmd/docs"
	portssvc "github.com/SscSPs/library_circulation/internal/core/ports/services"
	"github.com/SscSPs/library_circulation/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// now is the clock used whenever a request omits its reference date. Extra middleware
// (rate limiting) applies to the /api/v1 group only.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	now func() time.Time,
	apiMiddleware ...gin.HandlerFunc,
) {
	r.GET("/health", getHealth)

	setupAPIV1Routes(r, cfg, services, now, apiMiddleware...)

	setupSwaggerRoutes(r, cfg)
}

// RegisterMetrics exposes a Prometheus handler at /metrics.
func RegisterMetrics(r *gin.Engine, h http.Handler) {
	r.GET("/metrics", gin.WrapH(h))
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	now func() time.Time,
	apiMiddleware ...gin.HandlerFunc,
) {
	v1 := r.Group("/api/v1", apiMiddleware...)

	v1.GET("/", getHome)
	registerLoanRoutes(v1, service.Lending, cfg.LoanFreeDays, now)
	registerItemRoutes(v1, service.Catalog, service.Lending)
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
