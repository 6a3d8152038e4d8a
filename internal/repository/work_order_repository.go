package repository

import (
	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"gorm.io/gorm"
)

// ActiveOrderFilter narrows the active-order listing. Filtering and
// pagination happen in the store, before scoring.
type ActiveOrderFilter struct {
	Status   *model.Status
	Priority *model.Priority
	SearchID *uint
	Page     int
	Limit    int
}

// WorkOrderRepository is the persistence port for work orders.
type WorkOrderRepository interface {
	Create(order *model.WorkOrder) error
	FindByID(id uint) (*model.WorkOrder, error)
	Save(order *model.WorkOrder) error
	ListActive(filter *ActiveOrderFilter) ([]*model.WorkOrder, int64, error)
	CountByStatus() (map[model.Status]int64, error)
	CountByPriority() (map[model.Priority]int64, error)
	CountOverdue() (int64, error)
}

type workOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a work-order repository.
func NewWorkOrderRepository(db *gorm.DB) WorkOrderRepository {
	return &workOrderRepository{db: db}
}

// Create inserts a new work order.
func (r *workOrderRepository) Create(order *model.WorkOrder) error {
	return r.db.Create(order).Error
}

// FindByID loads one work order with its equipment, modality and client.
func (r *workOrderRepository) FindByID(id uint) (*model.WorkOrder, error) {
	var order model.WorkOrder
	err := r.db.Preload("Equipment.Modality").Preload("Client").
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Save persists all fields of an existing work order.
func (r *workOrderRepository) Save(order *model.WorkOrder) error {
	return r.db.Save(order).Error
}

// ListActive returns the requested page of non-terminal orders plus the
// total count of rows matching the filter. Terminal statuses are excluded
// case-insensitively.
func (r *workOrderRepository) ListActive(filter *ActiveOrderFilter) ([]*model.WorkOrder, int64, error) {
	query := r.activeQuery()

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Priority != nil {
		query = query.Where("manual_priority = ?", string(*filter.Priority))
	}
	if filter.SearchID != nil {
		query = query.Where("id = ?", *filter.SearchID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}

	var orders []*model.WorkOrder
	err := query.Preload("Equipment.Modality").Preload("Client").
		Order("opened_at ASC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// CountByStatus groups all orders by status.
func (r *workOrderRepository) CountByStatus() (map[model.Status]int64, error) {
	var rows []struct {
		Status model.Status
		Count  int64
	}
	err := r.db.Model(&model.WorkOrder{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// CountByPriority groups active orders by manual priority.
func (r *workOrderRepository) CountByPriority() (map[model.Priority]int64, error) {
	var rows []struct {
		ManualPriority model.Priority
		Count          int64
	}
	err := r.activeQuery().
		Select("manual_priority, COUNT(*) as count").
		Group("manual_priority").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[model.Priority]int64, len(rows))
	for _, row := range rows {
		out[row.ManualPriority] = row.Count
	}
	return out, nil
}

// CountOverdue counts active orders whose due date is strictly in the past.
func (r *workOrderRepository) CountOverdue() (int64, error) {
	var count int64
	err := r.activeQuery().
		Where("due_date IS NOT NULL AND due_date < CURRENT_TIMESTAMP").
		Count(&count).Error
	return count, err
}

func (r *workOrderRepository) activeQuery() *gorm.DB {
	return r.db.Model(&model.WorkOrder{}).
		Where("LOWER(status) NOT IN ?", model.TerminalStatusStrings())
}
