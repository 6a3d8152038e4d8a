package repository

import (
	"github.com/Alkhemd/SistemaH2-sub000/internal/model"
	"gorm.io/gorm"
)

// ActivityLogRepository is the persistence port for the generic audit
// trail. Append-only.
type ActivityLogRepository interface {
	Append(entry *model.ActivityLogEntry) error
	FindByEntity(entityName string, entityID uint, limit int) ([]*model.ActivityLogEntry, error)
	FindRecent(limit int) ([]*model.ActivityLogEntry, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates an activity-log repository.
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

// Append inserts one audit row.
func (r *activityLogRepository) Append(entry *model.ActivityLogEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	return r.db.Create(entry).Error
}

// FindByEntity returns the audit rows for one entity, most recent first.
func (r *activityLogRepository) FindByEntity(entityName string, entityID uint, limit int) ([]*model.ActivityLogEntry, error) {
	var entries []*model.ActivityLogEntry
	err := r.db.Where("entity_name = ? AND entity_id = ?", entityName, entityID).
		Order("created_at DESC, id DESC").
		Limit(normalizeLimit(limit)).
		Find(&entries).Error
	return entries, err
}

// FindRecent returns the newest audit rows across all entities.
func (r *activityLogRepository) FindRecent(limit int) ([]*model.ActivityLogEntry, error) {
	var entries []*model.ActivityLogEntry
	err := r.db.Order("created_at DESC, id DESC").
		Limit(normalizeLimit(limit)).
		Find(&entries).Error
	return entries, err
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 50
	}
	return limit
}
