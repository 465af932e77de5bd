package rotation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor-io/shopfloor/internal/application/rotation/usecases"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
	"github.com/shopfloor-io/shopfloor/internal/shared/utils"
)

const defaultScheduleDays = 14

type RotationHandler struct {
	teamShiftUC usecases.GetTeamShiftExecutor
	scheduleUC  usecases.GetRotationScheduleExecutor
	logger      logger.Interface
}

func NewRotationHandler(
	teamShiftUC usecases.GetTeamShiftExecutor,
	scheduleUC usecases.GetRotationScheduleExecutor,
) *RotationHandler {
	return &RotationHandler{
		teamShiftUC: teamShiftUC,
		scheduleUC:  scheduleUC,
		logger:      logger.NewLogger(),
	}
}

// GetTeamShift handles GET /rotation/teams/:code/shift with an optional
// date query parameter (YYYY-MM-DD, defaults to today).
func (h *RotationHandler) GetTeamShift(c *gin.Context) {
	teamCode := c.Param("code")
	if teamCode == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("team code is required"))
		return
	}

	query := usecases.GetTeamShiftQuery{
		TeamCode: teamCode,
		Date:     c.Query("date"),
	}

	result, err := h.teamShiftUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetSchedule handles GET /rotation/teams/:code/schedule with optional
// from (YYYY-MM-DD) and days query parameters.
func (h *RotationHandler) GetSchedule(c *gin.Context) {
	teamCode := c.Param("code")
	if teamCode == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("team code is required"))
		return
	}

	days := defaultScheduleDays
	if daysStr := c.Query("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid days parameter"))
			return
		}
		days = parsed
	}

	query := usecases.GetRotationScheduleQuery{
		TeamCode: teamCode,
		From:     c.Query("from"),
		Days:     days,
	}

	result, err := h.scheduleUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
