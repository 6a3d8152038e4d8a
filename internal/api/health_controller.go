package api

import (
	"net/http"
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/database"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthController answers liveness probes.
type HealthController struct {
	db *gorm.DB
}

// NewHealthController creates a health controller.
func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Check pings the database and reports overall health.
func (c *HealthController) Check(ctx *gin.Context) {
	status := "healthy"
	checks := make(map[string]string)

	if c.db != nil {
		if database.CheckHealth(c.db) {
			checks["database"] = "healthy"
		} else {
			status = "unhealthy"
			checks["database"] = "unhealthy"
		}
	} else {
		checks["database"] = "not configured"
	}

	httpStatus := http.StatusOK
	if status == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	ctx.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	})
}
