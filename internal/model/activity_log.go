package model

import (
	"errors"
	"time"
)

// Operation is the kind of mutation an activity-log row describes.
type Operation string

const (
	OperationCreate Operation = "CREATE"
	OperationUpdate Operation = "UPDATE"
	OperationDelete Operation = "DELETE"
)

// ActivityLogEntry is one generic audit row for any mutation in the
// system. Writes are best-effort: a failed insert is logged server-side
// and never fails the mutation it describes. Append-only.
type ActivityLogEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequestID   string    `gorm:"type:varchar(64);index" json:"request_id"`
	Operation   Operation `gorm:"type:varchar(16);not null;index" json:"operacion"`
	EntityName  string    `gorm:"type:varchar(64);not null;index" json:"entidad"`
	EntityID    uint      `gorm:"not null;index" json:"entidad_id"`
	Title       string    `gorm:"type:varchar(255)" json:"titulo"`
	Description string    `gorm:"type:text" json:"descripcion"`
	Before      []byte    `gorm:"type:text" json:"antes,omitempty"`
	After       []byte    `gorm:"type:text" json:"despues,omitempty"`
	Actor       string    `gorm:"type:varchar(64);not null" json:"actor"`
	SourceIP    string    `gorm:"type:varchar(45)" json:"ip_origen"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
}

// TableName overrides the default table name.
func (ActivityLogEntry) TableName() string {
	return "registro_actividad"
}

// Validate checks required fields before persisting.
func (a *ActivityLogEntry) Validate() error {
	if a.Operation == "" {
		return errors.New("operation is required")
	}
	if a.EntityName == "" {
		return errors.New("entity name is required")
	}
	if a.EntityID == 0 {
		return errors.New("entity ID is required")
	}
	if a.Actor == "" {
		return errors.New("actor is required")
	}
	return nil
}
