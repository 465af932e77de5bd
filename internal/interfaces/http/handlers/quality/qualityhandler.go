package quality

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor-io/shopfloor/internal/application/quality/usecases"
	"github.com/shopfloor-io/shopfloor/internal/interfaces/http/middleware"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
	"github.com/shopfloor-io/shopfloor/internal/shared/utils"
)

// GateStatusCache is a short-lived read-through cache for gate evaluations.
// A nil cache disables caching entirely.
type GateStatusCache interface {
	Get(ctx context.Context, machineSID string) (*usecases.EvaluateQualityGateResult, error)
	Set(ctx context.Context, machineSID string, result *usecases.EvaluateQualityGateResult) error
	Invalidate(ctx context.Context, machineSID string) error
}

type QualityHandler struct {
	evaluateUC     usecases.EvaluateQualityGateExecutor
	recordTestUC   usecases.RecordQualityTestExecutor
	createConfigUC usecases.CreateGateConfigExecutor
	statusCache    GateStatusCache
	logger         logger.Interface
}

func NewQualityHandler(
	evaluateUC usecases.EvaluateQualityGateExecutor,
	recordTestUC usecases.RecordQualityTestExecutor,
	createConfigUC usecases.CreateGateConfigExecutor,
	statusCache GateStatusCache,
) *QualityHandler {
	return &QualityHandler{
		evaluateUC:     evaluateUC,
		recordTestUC:   recordTestUC,
		createConfigUC: createConfigUC,
		statusCache:    statusCache,
		logger:         logger.NewLogger(),
	}
}

// EvaluateGate handles GET /machines/:sid/gate-status
func (h *QualityHandler) EvaluateGate(c *gin.Context) {
	machineSID, err := parseMachineSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ctx := c.Request.Context()

	if h.statusCache != nil {
		cached, err := h.statusCache.Get(ctx, machineSID)
		if err != nil {
			h.logger.Warnw("gate status cache read failed", "error", err, "machine_sid", machineSID)
		}
		if cached != nil {
			utils.SuccessResponse(c, http.StatusOK, "", cached)
			return
		}
	}

	result, err := h.evaluateUC.Execute(ctx, usecases.EvaluateQualityGateQuery{MachineSID: machineSID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if h.statusCache != nil {
		if err := h.statusCache.Set(ctx, machineSID, result); err != nil {
			h.logger.Warnw("gate status cache write failed", "error", err, "machine_sid", machineSID)
		}
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RecordTest handles POST /machines/:sid/quality-tests
func (h *QualityHandler) RecordTest(c *gin.Context) {
	machineSID, err := parseMachineSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RecordTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for record quality test", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	ctx := c.Request.Context()

	result, err := h.recordTestUC.Execute(ctx, req.ToCommand(machineSID, middleware.OperatorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	// The recorded test changes the gate baseline, so the cached
	// evaluation is stale.
	if h.statusCache != nil {
		if err := h.statusCache.Invalidate(ctx, machineSID); err != nil {
			h.logger.Warnw("gate status cache invalidation failed", "error", err, "machine_sid", machineSID)
		}
	}

	utils.CreatedResponse(c, result, "Quality test recorded")
}

// CreateGateConfig handles POST /machines/:sid/gate-configs
func (h *QualityHandler) CreateGateConfig(c *gin.Context) {
	machineSID, err := parseMachineSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreateGateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create gate config", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createConfigUC.Execute(c.Request.Context(), req.ToCommand(machineSID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if h.statusCache != nil {
		if err := h.statusCache.Invalidate(c.Request.Context(), machineSID); err != nil {
			h.logger.Warnw("gate status cache invalidation failed", "error", err, "machine_sid", machineSID)
		}
	}

	utils.CreatedResponse(c, result, "Gate config created")
}

func parseMachineSID(c *gin.Context) (string, error) {
	sid := c.Param("sid")
	if sid == "" {
		return "", errors.NewValidationError("machine SID is required")
	}
	return sid, nil
}
