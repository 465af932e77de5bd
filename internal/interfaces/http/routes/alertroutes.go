package routes

import (
	"github.com/gin-gonic/gin"

	alerthandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/alerting"
	"github.com/shopfloor-io/shopfloor/internal/interfaces/http/middleware"
)

type AlertRouteConfig struct {
	AlertHandler   *alerthandlers.AlertHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupAlertRoutes(engine *gin.Engine, config *AlertRouteConfig) {
	alerts := engine.Group("/alerts")
	alerts.Use(config.AuthMiddleware.RequireAuth())
	{
		alerts.GET("",
			config.AlertHandler.ListActive)
		alerts.POST("/:sid/ack",
			config.AlertHandler.Acknowledge)
	}

	// Manual dispatch lives under the machine it sweeps.
	machines := engine.Group("/machines")
	machines.Use(config.AuthMiddleware.RequireAuth())
	{
		machines.POST("/:sid/alerts/dispatch",
			config.AuthMiddleware.RequireRole("quality_manager", "plant_manager"),
			config.AlertHandler.Dispatch)
	}
}
