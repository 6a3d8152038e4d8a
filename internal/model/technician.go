package model

import "time"

// Technician is a field engineer who can be assigned to work orders.
// Assignment optimization is out of scope; the record exists so views can
// render a display name.
type Technician struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(128);not null" json:"nombre"`
	Specialty string    `gorm:"type:varchar(64)" json:"especialidad"`
	Phone     string    `gorm:"type:varchar(32)" json:"telefono"`
	Active    bool      `gorm:"not null;default:true" json:"activo"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName overrides the default table name.
func (Technician) TableName() string {
	return "tecnicos"
}
