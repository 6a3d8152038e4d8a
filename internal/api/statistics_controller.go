package api

import (
	"net/http"

	"github.com/Alkhemd/SistemaH2-sub000/internal/service"
	"github.com/Alkhemd/SistemaH2-sub000/internal/utils"
	"github.com/gin-gonic/gin"
)

// StatisticsController serves the cached dashboard aggregates.
type StatisticsController struct {
	stats service.StatisticsService
}

// NewStatisticsController creates a statistics controller.
func NewStatisticsController(stats service.StatisticsService) *StatisticsController {
	return &StatisticsController{stats: stats}
}

// GetDashboard returns the work-order aggregates.
// @Router /estadisticas [get]
func (c *StatisticsController) GetDashboard(ctx *gin.Context) {
	stats, err := c.stats.GetDashboard()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, utils.SanitizeString(err.Error()))
		return
	}
	Success(ctx, stats)
}
