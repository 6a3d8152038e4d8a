package model

import "time"

// Client is the owning organization of one or more pieces of equipment.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(128);not null;index" json:"nombre"`
	Contact   string    `gorm:"type:varchar(128)" json:"contacto"`
	Phone     string    `gorm:"type:varchar(32)" json:"telefono"`
	Email     string    `gorm:"type:varchar(128)" json:"email"`
	Address   string    `gorm:"type:text" json:"direccion"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName overrides the default table name.
func (Client) TableName() string {
	return "clientes"
}
