package routes

import (
	"github.com/gin-gonic/gin"

	oeehandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/oee"
	"github.com/shopfloor-io/shopfloor/internal/interfaces/http/middleware"
)

type OEERouteConfig struct {
	OEEHandler     *oeehandlers.OEEHandler
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupOEERoutes(engine *gin.Engine, config *OEERouteConfig) {
	oee := engine.Group("/oee")
	oee.Use(config.AuthMiddleware.RequireAuth())
	{
		oee.POST("/fleet",
			config.OEEHandler.GetFleet)
	}
}
