package production

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor-io/shopfloor/internal/application/production/usecases"
	"github.com/shopfloor-io/shopfloor/internal/interfaces/http/middleware"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
	"github.com/shopfloor-io/shopfloor/internal/shared/utils"
)

type ProductionHandler struct {
	resolveShiftUC usecases.ResolveShiftExecutor
	recordDeltaUC  usecases.RecordProductionDeltaExecutor
	startMachineUC usecases.StartMachineExecutor
	setHandoverUC  usecases.SetHandoverNoteExecutor
	logger         logger.Interface
}

func NewProductionHandler(
	resolveShiftUC usecases.ResolveShiftExecutor,
	recordDeltaUC usecases.RecordProductionDeltaExecutor,
	startMachineUC usecases.StartMachineExecutor,
	setHandoverUC usecases.SetHandoverNoteExecutor,
) *ProductionHandler {
	return &ProductionHandler{
		resolveShiftUC: resolveShiftUC,
		recordDeltaUC:  recordDeltaUC,
		startMachineUC: startMachineUC,
		setHandoverUC:  setHandoverUC,
		logger:         logger.NewLogger(),
	}
}

// ResolveShift handles POST /machines/:sid/shift/resolve
func (h *ProductionHandler) ResolveShift(c *gin.Context) {
	machineSID, err := parseMachineSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ResolveShiftCommand{
		MachineSID: machineSID,
		OperatorID: middleware.OperatorID(c),
	}

	result, err := h.resolveShiftUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// RecordDelta handles POST /machines/:sid/deltas
func (h *ProductionHandler) RecordDelta(c *gin.Context) {
	machineSID, err := parseMachineSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RecordDeltaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for record delta", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := req.ToCommand(machineSID, middleware.OperatorID(c))

	result, err := h.recordDeltaUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Production delta recorded", result)
}

// StartMachine handles POST /machines/:sid/start
func (h *ProductionHandler) StartMachine(c *gin.Context) {
	machineSID, err := parseMachineSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.StartMachineCommand{
		MachineSID: machineSID,
		OperatorID: middleware.OperatorID(c),
	}

	result, err := h.startMachineUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Machine started", result)
}

// SetHandoverNote handles PUT /machines/:sid/handover-note
func (h *ProductionHandler) SetHandoverNote(c *gin.Context) {
	machineSID, err := parseMachineSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetHandoverNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for handover note", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setHandoverUC.Execute(c.Request.Context(), req.ToCommand(machineSID, middleware.OperatorID(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Handover note saved", result)
}

func parseMachineSID(c *gin.Context) (string, error) {
	sid := c.Param("sid")
	if sid == "" {
		return "", errors.NewValidationError("machine SID is required")
	}
	return sid, nil
}
