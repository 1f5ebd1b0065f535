package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/psbook/cmd/docs"
	portssvc "github.com/SscSPs/psbook/internal/core/ports/services"
	"github.com/SscSPs/psbook/internal/middleware"
	"github.com/SscSPs/psbook/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Signed by the auth provider, so no bearer auth.
	RegisterWebhookRoutes(r, cfg.WebhookSecret, services.Employee)

	setupAPIV1Routes(r, cfg, services)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.AuthIssuerDomain, service.Employee))

	registerEmployeeRoutes(v1, service.Employee)
	registerShopRoutes(v1, service.Shop, service.Ledger)
	RegisterTransactionRoutes(v1, service.Transaction)
	registerInvoiceRoutes(v1, service.Invoice)
	registerSettlementRoutes(v1, service.Settlement, service.Handover)
	registerRouteRoutes(v1, service.Route)
	registerAssignmentRoutes(v1, service.Assignment)
	registerReportingRoutes(v1, service.Reporting)
	registerMaintenanceRoutes(v1, service.Route)
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
