package routes

import (
	"github.com/gin-gonic/gin"

	rotationhandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/rotation"
	"github.com/shopfloor-io/shopfloor/internal/interfaces/http/middleware"
)

type RotationRouteConfig struct {
	RotationHandler *rotationhandlers.RotationHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

func SetupRotationRoutes(engine *gin.Engine, config *RotationRouteConfig) {
	rotation := engine.Group("/rotation")
	rotation.Use(config.AuthMiddleware.RequireAuth())
	{
		rotation.GET("/teams/:code/shift",
			config.RotationHandler.GetTeamShift)
		rotation.GET("/teams/:code/schedule",
			config.RotationHandler.GetSchedule)
	}
}
