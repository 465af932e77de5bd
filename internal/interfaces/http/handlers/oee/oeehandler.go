package oee

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor-io/shopfloor/internal/application/oee/usecases"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
	"github.com/shopfloor-io/shopfloor/internal/shared/utils"
)

type OEEHandler struct {
	rangeUC        usecases.CalculateOEEExecutor
	currentShiftUC usecases.CalculateCurrentShiftOEEExecutor
	fleetUC        usecases.CalculateFleetOEEExecutor
	logger         logger.Interface
}

func NewOEEHandler(
	rangeUC usecases.CalculateOEEExecutor,
	currentShiftUC usecases.CalculateCurrentShiftOEEExecutor,
	fleetUC usecases.CalculateFleetOEEExecutor,
) *OEEHandler {
	return &OEEHandler{
		rangeUC:        rangeUC,
		currentShiftUC: currentShiftUC,
		fleetUC:        fleetUC,
		logger:         logger.NewLogger(),
	}
}

// GetRange handles GET /machines/:sid/oee with start and end query
// parameters in RFC 3339 form.
func (h *OEEHandler) GetRange(c *gin.Context) {
	machineSID := c.Param("sid")
	if machineSID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("machine SID is required"))
		return
	}

	start, end, err := parseRange(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	query := usecases.CalculateOEEQuery{
		MachineSID: machineSID,
		Start:      start,
		End:        end,
	}

	result, err := h.rangeUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetCurrentShift handles GET /machines/:sid/oee/current
func (h *OEEHandler) GetCurrentShift(c *gin.Context) {
	machineSID := c.Param("sid")
	if machineSID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("machine SID is required"))
		return
	}

	// Without an explicit operator the metric covers every open record on
	// the machine.
	operatorID := uint(0)
	if opStr := c.Query("operator_id"); opStr != "" {
		parsed, err := strconv.ParseUint(opStr, 10, 32)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("operator_id must be a positive integer"))
			return
		}
		operatorID = uint(parsed)
	}

	query := usecases.CalculateCurrentShiftOEEQuery{
		MachineSID: machineSID,
		OperatorID: operatorID,
	}

	result, err := h.currentShiftUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

type FleetOEERequest struct {
	MachineSIDs []string `json:"machine_sids" binding:"required,min=1"`
	Start       string   `json:"start" binding:"required"`
	End         string   `json:"end" binding:"required"`
}

// GetFleet handles POST /oee/fleet
func (h *OEEHandler) GetFleet(c *gin.Context) {
	var req FleetOEERequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for fleet OEE", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid start timestamp"))
		return
	}
	end, err := time.Parse(time.RFC3339, req.End)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid end timestamp"))
		return
	}

	query := usecases.CalculateFleetOEEQuery{
		MachineSIDs: req.MachineSIDs,
		Start:       start,
		End:         end,
	}

	result, err := h.fleetUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewValidationError("invalid start timestamp")
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.NewValidationError("invalid end timestamp")
	}
	return start, end, nil
}
