package api

import (
	"net/http"
	"strconv"

	"github.com/Alkhemd/SistemaH2-sub000/internal/service"
	"github.com/Alkhemd/SistemaH2-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// ActivityLogController exposes the read side of the audit trail.
type ActivityLogController struct {
	activity service.ActivityLogService
}

// NewActivityLogController creates an activity-log controller.
func NewActivityLogController(activity service.ActivityLogService) *ActivityLogController {
	return &ActivityLogController{activity: activity}
}

// List returns recent audit rows, optionally scoped to one entity via
// the entidad and entidad_id query parameters.
// @Router /actividad [get]
func (c *ActivityLogController) List(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	entityName := ctx.Query("entidad")
	entityIDRaw := ctx.Query("entidad_id")

	if entityName != "" && entityIDRaw != "" {
		entityID, err := utils.ParseID(entityIDRaw)
		if err != nil {
			Error(ctx, http.StatusBadRequest, "entidad_id must be a positive integer")
			return
		}
		entries, err := c.activity.ListByEntity(entityName, entityID, limit)
		if err != nil {
			Error(ctx, http.StatusInternalServerError, utils.SanitizeString(err.Error()))
			return
		}
		Success(ctx, entries)
		return
	}

	entries, err := c.activity.ListRecent(limit)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, utils.SanitizeString(err.Error()))
		return
	}
	Success(ctx, entries)
}
