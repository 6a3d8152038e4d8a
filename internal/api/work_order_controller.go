package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"github.com/Alkhemd/SistemaH2-sub000/internal/repository"
	"github.com/Alkhemd/SistemaH2-sub000/internal/service"
	"github.com/Alkhemd/SistemaH2-sub000/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WorkOrderController routes the guarded work-order operations.
type WorkOrderController struct {
	orders service.WorkOrderService
	query  service.OrderQueryService
}

// NewWorkOrderController creates a work-order controller.
func NewWorkOrderController(orders service.WorkOrderService, query service.OrderQueryService) *WorkOrderController {
	return &WorkOrderController{orders: orders, query: query}
}

// ChangeStatusRequest is the body of a status-change call.
type ChangeStatusRequest struct {
	NewStatus     string `json:"estado_nuevo"`
	Justification string `json:"justificacion"`
}

// PostponeRequest is the body of a due-date postponement call.
type PostponeRequest struct {
	NewDueDate    string `json:"nueva_fecha"`
	Justification string `json:"justificacion"`
}

// Create opens a new work order.
// @Router /ordenes [post]
func (c *WorkOrderController) Create(ctx *gin.Context) {
	var req service.CreateWorkOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	order, err := c.orders.Create(ctx.Request.Context(), &req)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	Success(ctx, order)
}

// Get returns one work order.
// @Router /ordenes/{id} [get]
func (c *WorkOrderController) Get(ctx *gin.Context) {
	id, ok := c.pathID(ctx)
	if !ok {
		return
	}

	order, err := c.orders.Get(id)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	Success(ctx, order)
}

// ListActive returns the prioritized page of non-terminal orders.
// @Router /ordenes [get]
func (c *WorkOrderController) ListActive(ctx *gin.Context) {
	filter := &repository.ActiveOrderFilter{}

	if estado := ctx.Query("estado"); estado != "" {
		status := model.Status(estado)
		filter.Status = &status
	}
	if prioridad := ctx.Query("prioridad"); prioridad != "" {
		priority := model.Priority(prioridad)
		filter.Priority = &priority
	}
	if search := ctx.Query("search"); search != "" {
		id, err := utils.ParseID(search)
		if err != nil {
			Error(ctx, http.StatusBadRequest, "search must be a numeric order ID")
			return
		}
		filter.SearchID = &id
	}
	if page, err := utils.ParseID(ctx.DefaultQuery("page", "1")); err == nil {
		filter.Page = int(page)
	}
	if limit, err := utils.ParseID(ctx.DefaultQuery("limit", "20")); err == nil {
		filter.Limit = int(limit)
	}

	views, pagination, err := c.query.ListActive(filter)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	Paginated(ctx, views, pagination)
}

// ChangeStatus applies a justified status transition.
// @Router /ordenes/{id}/estado [put]
func (c *WorkOrderController) ChangeStatus(ctx *gin.Context) {
	id, ok := c.pathID(ctx)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	order, err := c.orders.ChangeStatus(ctx.Request.Context(), id,
		model.Status(req.NewStatus), req.Justification, ActorFromRequest(ctx))
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	Success(ctx, order)
}

// Postpone applies a justified due-date change.
// @Router /ordenes/{id}/posponer [put]
func (c *WorkOrderController) Postpone(ctx *gin.Context) {
	id, ok := c.pathID(ctx)
	if !ok {
		return
	}

	var req PostponeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		Error(ctx, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.NewDueDate == "" {
		Error(ctx, http.StatusBadRequest, "nueva_fecha is required")
		return
	}
	dueDate, err := time.ParseInLocation("2006-01-02", req.NewDueDate, time.Local)
	if err != nil {
		Error(ctx, http.StatusBadRequest, "nueva_fecha must be a date in YYYY-MM-DD format")
		return
	}

	order, err := c.orders.PostponeDueDate(ctx.Request.Context(), id,
		dueDate, req.Justification, ActorFromRequest(ctx))
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	Success(ctx, order)
}

// GetHistory returns the order's history, most recent first.
// @Router /ordenes/{id}/historial [get]
func (c *WorkOrderController) GetHistory(ctx *gin.Context) {
	id, ok := c.pathID(ctx)
	if !ok {
		return
	}

	history, err := c.orders.GetHistory(id)
	if err != nil {
		c.writeError(ctx, err)
		return
	}
	Success(ctx, history)
}

func (c *WorkOrderController) pathID(ctx *gin.Context) (uint, bool) {
	id, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid work order ID")
		return 0, false
	}
	return id, true
}

// writeError maps service errors to the response taxonomy: validation
// errors are 400s with their message intact, missing rows are 404s, and
// store failures are 500s with the driver message sanitized.
func (c *WorkOrderController) writeError(ctx *gin.Context, err error) {
	if service.IsValidationError(err) {
		Error(ctx, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		Error(ctx, http.StatusNotFound, "work order not found")
		return
	}
	Error(ctx, http.StatusInternalServerError, utils.SanitizeString(err.Error()))
}
