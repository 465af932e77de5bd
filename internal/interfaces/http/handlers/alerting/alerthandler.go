package alerting

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor-io/shopfloor/internal/application/alerting/usecases"
	"github.com/shopfloor-io/shopfloor/internal/interfaces/http/middleware"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
	"github.com/shopfloor-io/shopfloor/internal/shared/logger"
	"github.com/shopfloor-io/shopfloor/internal/shared/utils"
)

type AlertHandler struct {
	dispatchUC    usecases.DispatchAlertsExecutor
	acknowledgeUC usecases.AcknowledgeAlertExecutor
	listActiveUC  usecases.ListActiveAlertsExecutor
	logger        logger.Interface
}

func NewAlertHandler(
	dispatchUC usecases.DispatchAlertsExecutor,
	acknowledgeUC usecases.AcknowledgeAlertExecutor,
	listActiveUC usecases.ListActiveAlertsExecutor,
) *AlertHandler {
	return &AlertHandler{
		dispatchUC:    dispatchUC,
		acknowledgeUC: acknowledgeUC,
		listActiveUC:  listActiveUC,
		logger:        logger.NewLogger(),
	}
}

// ListActive handles GET /alerts. An optional machine_sid query parameter
// narrows the listing to one machine.
func (h *AlertHandler) ListActive(c *gin.Context) {
	query := usecases.ListActiveAlertsQuery{
		MachineSID: c.Query("machine_sid"),
	}

	result, err := h.listActiveUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Acknowledge handles POST /alerts/:sid/ack
func (h *AlertHandler) Acknowledge(c *gin.Context) {
	alertSID := c.Param("sid")
	if alertSID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("alert SID is required"))
		return
	}

	cmd := usecases.AcknowledgeAlertCommand{
		AlertSID:   alertSID,
		OperatorID: middleware.OperatorID(c),
	}

	result, err := h.acknowledgeUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Alert acknowledged", result)
}

// Dispatch handles POST /machines/:sid/alerts/dispatch. The background
// sweeper covers the fleet; this endpoint forces an immediate pass for one
// machine.
func (h *AlertHandler) Dispatch(c *gin.Context) {
	machineSID := c.Param("sid")
	if machineSID == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("machine SID is required"))
		return
	}

	result, err := h.dispatchUC.Execute(c.Request.Context(), usecases.DispatchAlertsCommand{MachineSID: machineSID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
