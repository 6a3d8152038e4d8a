package model

import (
	"errors"
	"time"
)

// Modality is the medical-imaging category of a piece of equipment
// (CT, MRI, X-ray, ...). The high-priority flag feeds the urgency scorer.
type Modality struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"nombre"`
	HighPriority bool      `gorm:"not null;default:false" json:"alta_prioridad"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// TableName overrides the default table name.
func (Modality) TableName() string {
	return "modalidades"
}

// Equipment is one piece of medical equipment under maintenance.
// Read-only from the core's point of view.
type Equipment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ModalityID   uint      `gorm:"not null;index" json:"modalidad_id"`
	ClientID     uint      `gorm:"not null;index" json:"cliente_id"`
	SerialNumber string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"numero_serie"`
	Brand        string    `gorm:"type:varchar(64)" json:"marca"`
	Model        string    `gorm:"type:varchar(64)" json:"modelo"`
	Location     string    `gorm:"type:varchar(128)" json:"ubicacion"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`

	Modality *Modality `gorm:"foreignKey:ModalityID" json:"modalidad,omitempty"`
}

// TableName overrides the default table name.
func (Equipment) TableName() string {
	return "equipos"
}

// Validate checks required fields before persisting.
func (e *Equipment) Validate() error {
	if e.ModalityID == 0 {
		return errors.New("modality ID is required")
	}
	if e.SerialNumber == "" {
		return errors.New("serial number is required")
	}
	return nil
}
