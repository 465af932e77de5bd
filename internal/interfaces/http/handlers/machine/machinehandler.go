package machine

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor-io/shopfloor/internal/application/machine/usecases"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
	"github.com/shopfloor-io/shopfloor/internal/shared/utils"
)

type MachineHandler struct {
	registerUC     usecases.RegisterMachineExecutor
	getUC          usecases.GetMachineExecutor
	listUC         usecases.ListMachinesExecutor
	changeStatusUC usecases.ChangeMachineStatusExecutor
	logger         logger.Interface
}

func NewMachineHandler(
	registerUC usecases.RegisterMachineExecutor,
	getUC usecases.GetMachineExecutor,
	listUC usecases.ListMachinesExecutor,
	changeStatusUC usecases.ChangeMachineStatusExecutor,
) *MachineHandler {
	return &MachineHandler{
		registerUC:     registerUC,
		getUC:          getUC,
		listUC:         listUC,
		changeStatusUC: changeStatusUC,
		logger:         logger.NewLogger(),
	}
}

// Register handles POST /machines
func (h *MachineHandler) Register(c *gin.Context) {
	var req RegisterMachineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register machine", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Machine registered successfully")
}

// Get handles GET /machines/:sid
func (h *MachineHandler) Get(c *gin.Context) {
	sid, err := parseMachineSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetMachineQuery{MachineSID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// List handles GET /machines
func (h *MachineHandler) List(c *gin.Context) {
	req, err := parseListMachinesRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), req.ToQuery())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Machines, result.Total, req.Page, req.PageSize)
}

// ChangeStatus handles PATCH /machines/:sid/status
func (h *MachineHandler) ChangeStatus(c *gin.Context) {
	sid, err := parseMachineSID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for change machine status", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.ChangeMachineStatusCommand{
		MachineSID: sid,
		Target:     req.Status,
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Machine status updated", result)
}

func parseMachineSID(c *gin.Context) (string, error) {
	sid := c.Param("sid")
	if sid == "" {
		return "", errors.NewValidationError("machine SID is required")
	}
	return sid, nil
}
