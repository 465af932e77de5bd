package machine

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shopfloor-io/shopfloor/internal/application/machine/usecases"
	"github.com/shopfloor-io/shopfloor/internal/shared/constants"
	"github.com/shopfloor-io/shopfloor/internal/shared/errors"
)

type RegisterMachineRequest struct {
	Name             string  `json:"name" binding:"required,max=100"`
	ProductionSpeed  float64 `json:"production_speed" binding:"required,gt=0"`
	TargetProduction int     `json:"target_production" binding:"required,gt=0"`
	TeamCode         string  `json:"team_code" binding:"required,max=10"`
}

func (r *RegisterMachineRequest) ToCommand() usecases.RegisterMachineCommand {
	return usecases.RegisterMachineCommand{
		Name:             r.Name,
		ProductionSpeed:  r.ProductionSpeed,
		TargetProduction: r.TargetProduction,
		TeamCode:         r.TeamCode,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=stopped maintenance error off_shift"`
}

type ListMachinesRequest struct {
	Page     int
	PageSize int
}

func parseListMachinesRequest(c *gin.Context) (*ListMachinesRequest, error) {
	req := &ListMachinesRequest{Page: 1, PageSize: constants.DefaultPageSize}

	if pageStr := c.Query("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return nil, errors.NewValidationError("invalid page parameter")
		}
		req.Page = page
	}

	if sizeStr := c.Query("page_size"); sizeStr != "" {
		size, err := strconv.Atoi(sizeStr)
		if err != nil || size < 1 || size > constants.MaxPageSize {
			return nil, errors.NewValidationError("invalid page_size parameter")
		}
		req.PageSize = size
	}

	return req, nil
}

func (r *ListMachinesRequest) ToQuery() usecases.ListMachinesQuery {
	return usecases.ListMachinesQuery{
		Limit:  r.PageSize,
		Offset: (r.Page - 1) * r.PageSize,
	}
}
