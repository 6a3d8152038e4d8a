package api

import (
	"errors"
	"net/http"

	"github.com/Alkhemd/SistemaH2-sub000/internal/repository"
	"github.com/Alkhemd/SistemaH2-sub000/internal/service"
	"github.com/Alkhemd/SistemaH2-sub000/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CatalogController serves the read-only equipment and client catalogs
// the web client renders alongside work orders.
type CatalogController struct {
	equipment repository.EquipmentRepository
	clients   repository.ClientRepository
}

// NewCatalogController creates a catalog controller.
func NewCatalogController(equipment repository.EquipmentRepository, clients repository.ClientRepository) *CatalogController {
	return &CatalogController{equipment: equipment, clients: clients}
}

// ListEquipment returns a page of the equipment catalog.
func (c *CatalogController) ListEquipment(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	items, total, err := c.equipment.List(page, limit)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, utils.SanitizeString(err.Error()))
		return
	}
	Paginated(ctx, items, paginationFor(page, limit, total))
}

// GetEquipment returns one piece of equipment with its modality.
func (c *CatalogController) GetEquipment(ctx *gin.Context) {
	id, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid equipment ID")
		return
	}
	item, err := c.equipment.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Error(ctx, http.StatusNotFound, "equipment not found")
			return
		}
		Error(ctx, http.StatusInternalServerError, utils.SanitizeString(err.Error()))
		return
	}
	Success(ctx, item)
}

// ListClients returns a page of the client catalog.
func (c *CatalogController) ListClients(ctx *gin.Context) {
	page, limit := pageParams(ctx)
	items, total, err := c.clients.List(page, limit)
	if err != nil {
		Error(ctx, http.StatusInternalServerError, utils.SanitizeString(err.Error()))
		return
	}
	Paginated(ctx, items, paginationFor(page, limit, total))
}

// GetClient returns one client.
func (c *CatalogController) GetClient(ctx *gin.Context) {
	id, err := utils.ParseID(ctx.Param("id"))
	if err != nil {
		Error(ctx, http.StatusBadRequest, "invalid client ID")
		return
	}
	item, err := c.clients.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Error(ctx, http.StatusNotFound, "client not found")
			return
		}
		Error(ctx, http.StatusInternalServerError, utils.SanitizeString(err.Error()))
		return
	}
	Success(ctx, item)
}

func pageParams(ctx *gin.Context) (int, int) {
	page := 1
	if v, err := utils.ParseID(ctx.DefaultQuery("page", "1")); err == nil {
		page = int(v)
	}
	limit := 20
	if v, err := utils.ParseID(ctx.DefaultQuery("limit", "20")); err == nil {
		limit = int(v)
	}
	return page, limit
}

func paginationFor(page, limit int, total int64) *service.Pagination {
	return &service.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
}
