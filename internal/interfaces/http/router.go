package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	alertingUC "github.com/shopfloor-io/shopfloor/internal/application/alerting/usecases"
	machineUC "github.com/shopfloor-io/shopfloor/internal/application/machine/usecases"
	oeeUC "github.com/shopfloor-io/shopfloor/internal/application/oee/usecases"
	productionSvc "github.com/shopfloor-io/shopfloor/internal/application/production/services"
	productionUC "github.com/shopfloor-io/shopfloor/internal/application/production/usecases"
	qualitySvc "github.com/shopfloor-io/shopfloor/internal/application/quality/services"
	qualityUC "github.com/shopfloor-io/shopfloor/internal/application/quality/usecases"
	rotationUC "github.com/shopfloor-io/shopfloor/internal/application/rotation/usecases"
	"github.com/shopfloor-io/shopfloor/internal/domain/shared/events"
	"github.com/shopfloor-io/shopfloor/internal/domain/shift"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/auth"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/cache"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/config"
	"github.com/shopfloor-io/shopfloor/internal/infrastructure/repository"
	alerthandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/alerting"
	machinehandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/machine"
	oeehandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/oee"
	productionhandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/production"
	qualityhandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/quality"
	rotationhandlers "github.com/shopfloor-io/shopfloor/internal/interfaces/http/handlers/rotation"
	"github.com/shopfloor-io/shopfloor/internal/interfaces/http/middleware"
	"github.com/shopfloor-io/shopfloor/internal/interfaces/http/routes"
	"github.com/shopfloor-io/shopfloor/internal/shared/db"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
	"github.com/shopfloor-io/shopfloor/internal/shared/services/markdown"
)

// Router wires repositories, services, use cases and handlers into a gin
// engine. The alert dispatch use case it builds is shared with the
// background sweeper, so the CLI can reach both through the same wiring.
type Router struct {
	engine            *gin.Engine
	cfg               *config.Config
	logger            logger.Interface
	machineHandler    *machinehandlers.MachineHandler
	productionHandler *productionhandlers.ProductionHandler
	qualityHandler    *qualityhandlers.QualityHandler
	alertHandler      *alerthandlers.AlertHandler
	oeeHandler        *oeehandlers.OEEHandler
	rotationHandler   *rotationhandlers.RotationHandler
	authMiddleware    *middleware.AuthMiddleware

	machineRepo *repository.MachineRepository
	dispatchUC  alertingUC.DispatchAlertsExecutor
	archiveUC   productionUC.ArchiveElapsedShiftsExecutor
}

func NewRouter(
	database *gorm.DB,
	redisClient *redis.Client,
	schedule *shift.RotationSchedule,
	eventDispatcher events.EventDispatcher,
	cfg *config.Config,
	log logger.Interface,
) (*Router, error) {
	engine := gin.New()

	machineRepo := repository.NewMachineRepository(database)
	recordRepo := repository.NewShiftRecordRepository(database)
	deltaRepo := repository.NewProductionDeltaRepository(database)
	configRepo := repository.NewGateConfigRepository(database)
	testRepo := repository.NewTestRecordRepository(database)
	alertRepo := repository.NewAlertRepository(database)

	resolver, err := shift.NewResolver(
		cfg.Shift.DayStartHour,
		cfg.Shift.DayEndHour,
		time.Duration(cfg.Shift.TransitionGraceMinutes)*time.Minute,
	)
	if err != nil {
		return nil, err
	}

	txMgr := db.NewTransactionManager(database)
	sessions := productionSvc.NewShiftSessionService(recordRepo, resolver, txMgr, log)
	gateStates := qualitySvc.NewGateStateService(configRepo, testRepo, deltaRepo, log)

	dispatchLock := cache.NewAlertDispatchLock(redisClient)
	gateStatusCache := cache.NewGateStatusCache(redisClient)

	registerMachineUC := machineUC.NewRegisterMachineUseCase(machineRepo, log)
	getMachineUC := machineUC.NewGetMachineUseCase(machineRepo, log)
	listMachinesUC := machineUC.NewListMachinesUseCase(machineRepo, log)
	changeStatusUC := machineUC.NewChangeMachineStatusUseCase(machineRepo, log)

	resolveShiftUC := productionUC.NewResolveShiftUseCase(machineRepo, sessions, log)
	recordDeltaUC := productionUC.NewRecordProductionDeltaUseCase(
		machineRepo, recordRepo, deltaRepo, sessions, txMgr, eventDispatcher, log)
	startMachineUC := productionUC.NewStartMachineUseCase(machineRepo, gateStates, log)
	setHandoverUC := productionUC.NewSetHandoverNoteUseCase(
		machineRepo, recordRepo, markdown.NewMarkdownService(), log)
	archiveUC := productionUC.NewArchiveElapsedShiftsUseCase(recordRepo, resolver, eventDispatcher, log)

	evaluateGateUC := qualityUC.NewEvaluateQualityGateUseCase(machineRepo, gateStates, log)
	recordTestUC := qualityUC.NewRecordQualityTestUseCase(
		machineRepo, configRepo, testRepo, recordRepo, alertRepo, log)
	createConfigUC := qualityUC.NewCreateGateConfigUseCase(machineRepo, configRepo, log)

	dispatchUC := alertingUC.NewDispatchAlertsUseCase(
		machineRepo, alertRepo, gateStates, dispatchLock,
		time.Duration(cfg.Alert.DispatchLockTTLMinutes)*time.Minute,
		cfg.Alert.TargetRoles, eventDispatcher, log)
	acknowledgeUC := alertingUC.NewAcknowledgeAlertUseCase(alertRepo, log)
	listAlertsUC := alertingUC.NewListActiveAlertsUseCase(machineRepo, alertRepo, log)

	rangeOEEUC := oeeUC.NewCalculateOEEUseCase(machineRepo, recordRepo, log)
	currentShiftOEEUC := oeeUC.NewCalculateCurrentShiftOEEUseCase(machineRepo, recordRepo, log)
	fleetOEEUC := oeeUC.NewCalculateFleetOEEUseCase(
		machineRepo, recordRepo,
		cfg.OEE.FanoutWorkers,
		time.Duration(cfg.OEE.MachineTimeoutSec)*time.Second,
		log)

	teamShiftUC := rotationUC.NewGetTeamShiftUseCase(schedule, log)
	scheduleUC := rotationUC.NewGetRotationScheduleUseCase(schedule, log)

	verifier := auth.NewIdentityVerifier(cfg.Auth.JWTSecret)

	return &Router{
		engine:            engine,
		cfg:               cfg,
		logger:            log,
		machineHandler:    machinehandlers.NewMachineHandler(registerMachineUC, getMachineUC, listMachinesUC, changeStatusUC),
		productionHandler: productionhandlers.NewProductionHandler(resolveShiftUC, recordDeltaUC, startMachineUC, setHandoverUC),
		qualityHandler:    qualityhandlers.NewQualityHandler(evaluateGateUC, recordTestUC, createConfigUC, gateStatusCache),
		alertHandler:      alerthandlers.NewAlertHandler(dispatchUC, acknowledgeUC, listAlertsUC),
		oeeHandler:        oeehandlers.NewOEEHandler(rangeOEEUC, currentShiftOEEUC, fleetOEEUC),
		rotationHandler:   rotationhandlers.NewRotationHandler(teamShiftUC, scheduleUC),
		authMiddleware:    middleware.NewAuthMiddleware(verifier, log),
		machineRepo:       machineRepo,
		dispatchUC:        dispatchUC,
		archiveUC:         archiveUC,
	}, nil
}

// SetupRoutes configures middleware and all HTTP routes.
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupMachineRoutes(r.engine, &routes.MachineRouteConfig{
		MachineHandler:    r.machineHandler,
		ProductionHandler: r.productionHandler,
		QualityHandler:    r.qualityHandler,
		OEEHandler:        r.oeeHandler,
		AuthMiddleware:    r.authMiddleware,
	})
	routes.SetupAlertRoutes(r.engine, &routes.AlertRouteConfig{
		AlertHandler:   r.alertHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupOEERoutes(r.engine, &routes.OEERouteConfig{
		OEEHandler:     r.oeeHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupRotationRoutes(r.engine, &routes.RotationRouteConfig{
		RotationHandler: r.rotationHandler,
		AuthMiddleware:  r.authMiddleware,
	})
}

// GetEngine returns the gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// MachineRepo exposes the machine repository for the background sweeper.
func (r *Router) MachineRepo() *repository.MachineRepository {
	return r.machineRepo
}

// DispatchUC exposes the alert dispatch use case for the background sweeper.
func (r *Router) DispatchUC() alertingUC.DispatchAlertsExecutor {
	return r.dispatchUC
}

// ArchiveUC exposes the shift archiver for the background worker.
func (r *Router) ArchiveUC() productionUC.ArchiveElapsedShiftsExecutor {
	return r.archiveUC
}
