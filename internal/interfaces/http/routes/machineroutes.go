package routes

import (
	"github.com/gin-gonic/gin"

	machinehandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/machine"
	oeehandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/oee"
	productionhandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/production"
	qualityhandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/quality"
	"github.com/shopfloor-io/shopfloor/internal/interfaces/http/middleware"
)

type MachineRouteConfig struct {
	MachineHandler    *machinehandlers.MachineHandler
	ProductionHandler *productionhandlers.ProductionHandler
	QualityHandler    *qualityhandlers.QualityHandler
	OEEHandler        *oeehandlers.OEEHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

func SetupMachineRoutes(engine *gin.Engine, config *MachineRouteConfig) {
	machines := engine.Group("/machines")
	machines.Use(config.AuthMiddleware.RequireAuth())
	{
		machines.POST("",
			config.AuthMiddleware.RequireRole("plant_manager"),
			config.MachineHandler.Register)
		machines.GET("",
			config.MachineHandler.List)

		// Specific paths before the bare /:sid route.
		machines.POST("/:sid/start",
			config.ProductionHandler.StartMachine)
		machines.PATCH("/:sid/status",
			config.MachineHandler.ChangeStatus)

		machines.POST("/:sid/shift/resolve",
			config.ProductionHandler.ResolveShift)
		machines.POST("/:sid/deltas",
			config.ProductionHandler.RecordDelta)
		machines.PUT("/:sid/handover-note",
			config.ProductionHandler.SetHandoverNote)

		machines.GET("/:sid/gate-status",
			config.QualityHandler.EvaluateGate)
		machines.POST("/:sid/quality-tests",
			config.QualityHandler.RecordTest)
		machines.POST("/:sid/gate-configs",
			config.AuthMiddleware.RequireRole("quality_manager", "plant_manager"),
			config.QualityHandler.CreateGateConfig)

		machines.GET("/:sid/oee",
			config.OEEHandler.GetRange)
		machines.GET("/:sid/oee/current",
			config.OEEHandler.GetCurrentShift)

		machines.GET("/:sid",
			config.MachineHandler.Get)
	}
}
