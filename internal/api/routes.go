package api

import (
	"net/http"

	"github.com/Alkhemd/SistemaH2-sub000/internal/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controllers bundles everything SetupRoutes mounts.
type Controllers struct {
	WorkOrders  *WorkOrderController
	Catalog     *CatalogController
	Statistics  *StatisticsController
	ActivityLog *ActivityLogController
}

// SetupRoutes builds the engine with the standard middleware chain and
// mounts all endpoints.
func SetupRoutes(cfg *config.Config, db *gorm.DB, ctrl *Controllers) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware())
	router.Use(SecurityHeadersMiddleware())
	router.Use(CORSMiddleware(&cfg.CORS))
	if cfg.Server.RateLimitRPS > 0 {
		router.Use(RateLimitMiddleware(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))
	}

	healthController := NewHealthController(db)
	router.GET("/health", healthController.Check)
	router.GET("/metrics", MetricsHandler)

	v1 := router.Group("/api/v1")
	{
		ordenes := v1.Group("/ordenes")
		{
			ordenes.POST("", ctrl.WorkOrders.Create)
			ordenes.GET("", ctrl.WorkOrders.ListActive)
			ordenes.GET("/:id", ctrl.WorkOrders.Get)
			ordenes.PUT("/:id/estado", ctrl.WorkOrders.ChangeStatus)
			ordenes.PUT("/:id/posponer", ctrl.WorkOrders.Postpone)
			ordenes.GET("/:id/historial", ctrl.WorkOrders.GetHistory)
		}

		equipos := v1.Group("/equipos")
		{
			equipos.GET("", ctrl.Catalog.ListEquipment)
			equipos.GET("/:id", ctrl.Catalog.GetEquipment)
		}

		clientes := v1.Group("/clientes")
		{
			clientes.GET("", ctrl.Catalog.ListClients)
			clientes.GET("/:id", ctrl.Catalog.GetClient)
		}

		v1.GET("/estadisticas", ctrl.Statistics.GetDashboard)
		v1.GET("/actividad", ctrl.ActivityLog.List)
	}

	// Unmatched routes answer JSON, not the gin HTML page.
	router.NoRoute(func(c *gin.Context) {
		Error(c, http.StatusNotFound, "route not found")
	})

	return router
}
