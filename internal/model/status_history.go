package model

import (
	"errors"
	"strings"
	"time"
)

// HistoryKind distinguishes the two events that land in a work order's
// history: a status change and a due-date postponement.
type HistoryKind string

const (
	HistoryKindStatusChange HistoryKind = "status_change"
	HistoryKindPostponement HistoryKind = "postponement"
)

// StatusHistoryEntry is one immutable row per accepted guarded mutation of
// a work order. For a status change From/To hold statuses; for a
// postponement they hold the prior and new due-date strings. Rows are
// append-only: the core never updates or deletes them.
type StatusHistoryEntry struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	WorkOrderID   uint        `gorm:"not null;index" json:"orden_id"`
	Kind          HistoryKind `gorm:"type:varchar(32);not null;default:status_change" json:"tipo"`
	FromValue     string      `gorm:"type:varchar(64)" json:"valor_anterior"`
	ToValue       string      `gorm:"type:varchar(64);not null" json:"valor_nuevo"`
	Justification string      `gorm:"type:text;not null" json:"justificacion"`
	Actor         string      `gorm:"type:varchar(64);not null" json:"actor"`
	CreatedAt     time.Time   `gorm:"not null;index" json:"created_at"`
}

// TableName overrides the default table name.
func (StatusHistoryEntry) TableName() string {
	return "historial_estados"
}

// Validate enforces the append-time invariants, in particular the
// non-empty-justification rule.
func (h *StatusHistoryEntry) Validate() error {
	if h.WorkOrderID == 0 {
		return errors.New("work order ID is required")
	}
	if h.ToValue == "" {
		return errors.New("new value is required")
	}
	if strings.TrimSpace(h.Justification) == "" {
		return errors.New("justification is required")
	}
	if h.Actor == "" {
		return errors.New("actor is required")
	}
	return nil
}
