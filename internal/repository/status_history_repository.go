package repository

import (
	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"gorm.io/gorm"
)

// StatusHistoryRepository is the persistence port for the append-only
// work-order history. There is deliberately no update or delete.
type StatusHistoryRepository interface {
	Append(entry *model.StatusHistoryEntry) error
	FindByWorkOrderID(orderID uint) ([]*model.StatusHistoryEntry, error)
}

type statusHistoryRepository struct {
	db *gorm.DB
}

// NewStatusHistoryRepository creates a status-history repository.
func NewStatusHistoryRepository(db *gorm.DB) StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

// Append inserts one history row.
func (r *statusHistoryRepository) Append(entry *model.StatusHistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return r.db.Create(entry).Error
}

// FindByWorkOrderID returns a work order's history, most recent first.
func (r *statusHistoryRepository) FindByWorkOrderID(orderID uint) ([]*model.StatusHistoryEntry, error) {
	var entries []*model.StatusHistoryEntry
	err := r.db.Where("work_order_id = ?", orderID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}
