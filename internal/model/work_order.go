package model

import (
	"errors"
	"strings"
	"time"
)

// Status is the lifecycle state of a work order. The set is open by
// convention: any status may move to any other as long as a justification
// is supplied, so no transition table is enforced here.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusAssigned   Status = "Assigned"
	StatusInProgress Status = "InProgress"
	StatusOnHold     Status = "OnHold"
	StatusClosed     Status = "Closed"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

// terminalStatuses are the states from which a work order is considered
// finished. Matching is case-insensitive because legacy rows carry
// free-text casing.
var terminalStatuses = []Status{StatusClosed, StatusCompleted, StatusCancelled}

// IsTerminal reports whether s ends the work-order lifecycle.
func (s Status) IsTerminal() bool {
	for _, t := range terminalStatuses {
		if strings.EqualFold(string(s), string(t)) {
			return true
		}
	}
	return false
}

// TerminalStatusStrings returns the lowercase terminal statuses, for
// case-insensitive SQL exclusion.
func TerminalStatusStrings() []string {
	out := make([]string, 0, len(terminalStatuses))
	for _, t := range terminalStatuses {
		out = append(out, strings.ToLower(string(t)))
	}
	return out
}

// Priority is the manually assigned priority of a work order.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// WorkOrder is the central record of the service: one unit of repair or
// maintenance work against one piece of equipment for one client.
// Status and due date are mutated only through the guarded service
// operations; OpenedAt is set at creation and never changes.
type WorkOrder struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	EquipmentID    uint       `gorm:"not null;index" json:"equipo_id"`
	ClientID       uint       `gorm:"not null;index" json:"cliente_id"`
	ContractID     *uint      `gorm:"index" json:"contrato_id,omitempty"`
	TechnicianID   *uint      `gorm:"index" json:"tecnico_id,omitempty"`
	Status         Status     `gorm:"type:varchar(32);not null;index" json:"estado"`
	ManualPriority Priority   `gorm:"type:varchar(16);not null" json:"prioridad"`
	OpenedAt       time.Time  `gorm:"not null" json:"fecha_apertura"`
	ClosedAt       *time.Time `json:"fecha_cierre,omitempty"`
	DueDate        *time.Time `gorm:"index" json:"fecha_compromiso,omitempty"`
	ReportedFault  string     `gorm:"type:text" json:"falla_reportada"`
	Origin         string     `gorm:"type:varchar(64)" json:"origen"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`

	Equipment *Equipment `gorm:"foreignKey:EquipmentID" json:"equipo,omitempty"`
	Client    *Client    `gorm:"foreignKey:ClientID" json:"cliente,omitempty"`
}

// TableName overrides the default table name.
func (WorkOrder) TableName() string {
	return "ordenes_trabajo"
}

// Validate checks the invariants a row must satisfy before persisting.
func (o *WorkOrder) Validate() error {
	if o.EquipmentID == 0 {
		return errors.New("equipment ID is required")
	}
	if o.ClientID == 0 {
		return errors.New("client ID is required")
	}
	if o.Status == "" {
		return errors.New("status is required")
	}
	if o.ManualPriority == "" {
		return errors.New("manual priority is required")
	}
	if o.OpenedAt.IsZero() {
		return errors.New("opened-at timestamp is required")
	}
	if (o.ClosedAt != nil) != o.Status.IsTerminal() {
		return errors.New("closed-at must be set exactly when the status is terminal")
	}
	return nil
}
